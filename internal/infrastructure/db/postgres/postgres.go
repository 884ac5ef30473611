package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 5 * time.Second

// Connect opens a pgx pool and verifies connectivity with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// schema creates the appointments table. The partial unique index is what
// finally guarantees one live appointment per (doctor, clinic, instant).
const schema = `
CREATE TABLE IF NOT EXISTS citas (
	id_cita             BIGSERIAL    PRIMARY KEY,
	fecha               TIMESTAMP    NOT NULL,
	motivo              VARCHAR(100) NOT NULL,
	estado              VARCHAR(20)  NOT NULL,
	id_paciente         BIGINT       NOT NULL,
	id_doctor           BIGINT       NOT NULL,
	id_centro           BIGINT       NOT NULL,
	id_usuario_registra BIGINT       NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS citas_live_slot_uidx
	ON citas (id_doctor, id_centro, fecha)
	WHERE estado <> 'Cancelada';

CREATE INDEX IF NOT EXISTS citas_fecha_idx ON citas (fecha);
CREATE INDEX IF NOT EXISTS citas_paciente_idx ON citas (id_paciente);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
