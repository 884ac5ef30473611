package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

const uniqueViolation = "23505"

const appointmentColumns = `id_cita, fecha, motivo, estado, id_paciente, id_doctor, id_centro, id_usuario_registra`

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	var status string

	err := row.Scan(
		&a.ID,
		&a.ScheduledAt,
		&a.Reason,
		&status,
		&a.PatientID,
		&a.DoctorID,
		&a.ClinicID,
		&a.RegisteredBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Status = domain.AppointmentStatus(status)
	a.ScheduledAt = domain.Naive(a.ScheduledAt)
	return &a, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO citas (fecha, motivo, estado, id_paciente, id_doctor, id_centro, id_usuario_registra)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+appointmentColumns,
		a.ScheduledAt, a.Reason, string(a.Status), a.PatientID, a.DoctorID, a.ClinicID, a.RegisteredBy,
	)
	created, err := scanAppointment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrSlotTaken
		}
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return created, nil
}

func (r *AppointmentRepository) FindActiveInSlot(ctx context.Context, slot domain.Slot) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM citas
		WHERE id_doctor = $1 AND id_centro = $2 AND fecha = $3 AND estado <> $4
		LIMIT 1`,
		slot.DoctorID, slot.ClinicID, slot.At, string(domain.StatusCancelled),
	)
	return scanAppointment(row)
}

// searchQuery renders the filter as a parameterised WHERE clause.
func searchQuery(f ports.AppointmentFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.PatientID != 0 {
		add("id_paciente = $%d", f.PatientID)
	}
	if f.DoctorID != 0 {
		add("id_doctor = $%d", f.DoctorID)
	}
	if f.ClinicID != 0 {
		add("id_centro = $%d", f.ClinicID)
	}
	if f.Status != "" {
		add("estado = $%d", string(f.Status))
	}
	if !f.Day.IsZero() {
		add("fecha >= $%d", f.Day)
		add("fecha < $%d", f.Day.Add(24*time.Hour))
	}

	q := "SELECT " + appointmentColumns + " FROM citas"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	return q + " ORDER BY fecha ASC, id_cita ASC", args
}

func (r *AppointmentRepository) Search(ctx context.Context, f ports.AppointmentFilter) ([]*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q, args := searchQuery(f)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search appointments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return out, nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, id int64) (domain.CancelOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE citas SET estado = $1 WHERE id_cita = $2 AND estado <> $1`,
		string(domain.StatusCancelled), id,
	)
	if err != nil {
		return 0, fmt.Errorf("cancel appointment: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return domain.Cancelled, nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM citas WHERE id_cita = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("cancel appointment: %w", err)
	}
	if !exists {
		return 0, domain.ErrAppointmentNotFound
	}
	return domain.AlreadyCancelled, nil
}
