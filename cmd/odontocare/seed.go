package main

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
	"github.com/odontocare/clinic-network/internal/core/service"
	"github.com/odontocare/clinic-network/internal/infrastructure/db/mongo"
)

var specialties = []string{
	"Odontologia general",
	"Ortodoncia",
	"Endodoncia",
	"Periodoncia",
	"Odontopediatria",
	"Cirugia oral",
}

type seedOptions struct {
	clinics  int
	doctors  int
	patients int
	admin    string
}

func seedCmd() *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fake clinics, doctors and patients into the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.clinics, "clinics", 3, "Number of clinics to create")
	cmd.Flags().IntVar(&opts.doctors, "doctors", 5, "Number of doctors to create")
	cmd.Flags().IntVar(&opts.patients, "patients", 20, "Number of patients to create")
	cmd.Flags().StringVar(&opts.admin, "admin", "", "Also create an administrator with this username")
	return cmd
}

func runSeed(ctx context.Context, opts seedOptions) error {
	cfg, log, err := bootstrap(ctx, "seed")
	if err != nil {
		return err
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	passwords, err := service.PasswordSchemeByName(cfg.Identity.PasswordScheme)
	if err != nil {
		return err
	}
	dir := service.NewDirectoryService(
		mongo.NewUserRepository(db),
		mongo.NewDoctorRepository(db),
		mongo.NewPatientRepository(db),
		mongo.NewClinicRepository(db),
		passwords,
		log,
	)

	if opts.admin != "" {
		password := service.GeneratePassword(12)
		if _, err := dir.CreateUser(ctx, ports.NewUserInput{Username: opts.admin, Password: password, Role: domain.RoleAdmin}); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		fmt.Printf("admin %s created with password %s\n", opts.admin, password)
	}

	if err := dir.CreateClinics(ctx, fakeClinics(opts.clinics)); err != nil {
		return fmt.Errorf("seed clinics: %w", err)
	}
	log.Info().Int("count", opts.clinics).Msg("clinics seeded")

	if err := dir.CreateDoctors(ctx, fakeDoctors(opts.doctors)); err != nil {
		return fmt.Errorf("seed doctors: %w", err)
	}
	log.Info().Int("count", opts.doctors).Msg("doctors seeded")

	if err := dir.CreatePatients(ctx, fakePatients(opts.patients)); err != nil {
		return fmt.Errorf("seed patients: %w", err)
	}
	log.Info().Int("count", opts.patients).Msg("patients seeded")

	return nil
}

func fakeClinics(n int) []ports.NewClinicInput {
	out := make([]ports.NewClinicInput, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ports.NewClinicInput{
			Name:    "Clinica " + gofakeit.LastName(),
			Address: gofakeit.Street() + ", " + gofakeit.City(),
		})
	}
	return out
}

// fakeDoctors and fakePatients suffix the last name with the index so the
// derived account names stay unique within a batch.
func fakeDoctors(n int) []ports.NewDoctorInput {
	out := make([]ports.NewDoctorInput, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ports.NewDoctorInput{
			FirstName: gofakeit.FirstName(),
			LastName:  fmt.Sprintf("%s%d", gofakeit.LastName(), i),
			Specialty: gofakeit.RandomString(specialties),
		})
	}
	return out
}

func fakePatients(n int) []ports.NewPatientInput {
	out := make([]ports.NewPatientInput, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ports.NewPatientInput{
			FirstName: gofakeit.FirstName(),
			LastName:  fmt.Sprintf("%s%d", gofakeit.LastName(), i),
			Phone:     int64(gofakeit.Number(600000000, 699999999)),
			State:     domain.PatientActive,
		})
	}
	return out
}
