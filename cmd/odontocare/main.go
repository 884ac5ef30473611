package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/odontocare/clinic-network/internal/api"
	"github.com/odontocare/clinic-network/internal/api/handler"
	"github.com/odontocare/clinic-network/internal/api/metrics"
	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/service"
	"github.com/odontocare/clinic-network/internal/infrastructure/config"
	"github.com/odontocare/clinic-network/internal/infrastructure/db/mongo"
	"github.com/odontocare/clinic-network/internal/infrastructure/db/postgres"
	"github.com/odontocare/clinic-network/internal/infrastructure/db/redis"
	"github.com/odontocare/clinic-network/internal/infrastructure/identityclient"
	"github.com/odontocare/clinic-network/internal/pkg/token"
	"github.com/odontocare/clinic-network/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "odontocare",
		Short: "OdontoCare clinic network services",
	}

	rootCmd.AddCommand(identityCmd())
	rootCmd.AddCommand(appointmentsCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func identityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Start the identity and administration service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentity(cmd.Context())
		},
	}
}

func appointmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "appointments",
		Short: "Start the appointments service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppointments(cmd.Context())
		},
	}
}

// bootstrap loads configuration and initialises the process logger.
func bootstrap(ctx context.Context, svc string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: svc,
	})
	return cfg, log, nil
}

func runIdentity(ctx context.Context) error {
	cfg, log, err := bootstrap(ctx, "identity")
	if err != nil {
		return err
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to mongodb")
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Error().Err(err).Msg("failed to create mongodb indexes")
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	passwords, err := service.PasswordSchemeByName(cfg.Identity.PasswordScheme)
	if err != nil {
		return err
	}

	users := mongo.NewUserRepository(db)
	doctors := mongo.NewDoctorRepository(db)
	patients := mongo.NewPatientRepository(db)
	clinics := mongo.NewClinicRepository(db)
	codec := token.NewCodec(cfg.JWTSecret)

	e := api.NewIdentityRouter(api.IdentityDeps{
		Auth:       service.NewAuthService(users, patients, codec, passwords, cfg.Identity.UserTokenTTL, log),
		Directory:  service.NewDirectoryService(users, doctors, patients, clinics, passwords, log),
		Codec:      codec,
		Checks:     map[string]handler.DependencyCheck{"mongodb": handler.MongoCheck(db)},
		Log:        log,
		LoginRate:  cfg.Identity.LoginRate,
		LoginBurst: cfg.Identity.LoginBurst,
	})

	return serve(e, ":"+cfg.Identity.Port, log)
}

func runAppointments(ctx context.Context) error {
	cfg, log, err := bootstrap(ctx, "appointments")
	if err != nil {
		return err
	}

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to postgres")
		return err
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Error().Err(err).Msg("failed to create appointments schema")
		return err
	}
	log.Info().Msg("connected to postgres")

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to redis")
		return err
	}
	defer func() { _ = rdb.Close() }()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	codec := token.NewCodec(cfg.JWTSecret)
	tokens := token.NewServiceTokenCache(codec, cfg.Appointments.ServiceTokenTTL, cfg.Appointments.ServiceTokenMargin,
		token.WithMintObserver(func(proxied domain.Role) {
			metrics.ServiceTokensMintedTotal.WithLabelValues(string(proxied)).Inc()
		}),
	)
	directory := identityclient.New(cfg.Appointments.IdentityServiceURL, tokens, cfg.Appointments.LookupTimeout, logger.Component("identityclient"),
		identityclient.WithFailureObserver(func(entity, reason string) {
			metrics.LookupFailuresTotal.WithLabelValues(entity, reason).Inc()
		}),
	)

	appointments := service.NewAppointmentService(
		postgres.NewAppointmentRepository(pool),
		redis.NewSlotLocker(rdb, cfg.Appointments.SlotLockTTL),
		directory,
		log,
	)

	e := api.NewAppointmentsRouter(api.AppointmentsDeps{
		Appointments: appointments,
		Codec:        codec,
		Checks: map[string]handler.DependencyCheck{
			"postgres": handler.PostgresCheck(pool),
			"redis":    handler.RedisCheck(rdb),
		},
		Log: log,
	})

	return serve(e, ":"+cfg.Appointments.Port, log)
}

// serve runs e until SIGINT or SIGTERM, then drains in-flight requests.
func serve(e *echo.Echo, addr string, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
