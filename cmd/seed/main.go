package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"

	"fleetflow/internal/app"
	"fleetflow/internal/config"
	"fleetflow/internal/domain"
	"fleetflow/internal/repository/postgres"
)

// Demo dataset for local development: a small fleet, its drivers and the
// dashboard users. Running the seeder twice is a no-op.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := ensureSchema(ctx, db); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}

	if err := seed(ctx, db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("Seed complete")
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS vehicles (
			id UUID PRIMARY KEY,
			model TEXT NOT NULL,
			license_plate TEXT NOT NULL UNIQUE,
			max_capacity DOUBLE PRECISION NOT NULL,
			odometer DOUBLE PRECISION NOT NULL DEFAULT 0,
			acquisition_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS drivers (
			id UUID PRIMARY KEY,
			name TEXT,
			license_expiry TIMESTAMPTZ NOT NULL,
			safety_score INT NOT NULL DEFAULT 0,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS trips (
			id UUID PRIMARY KEY,
			vehicle_id UUID NOT NULL REFERENCES vehicles(id),
			driver_id UUID NOT NULL REFERENCES drivers(id),
			cargo_weight DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			dispatched_at TIMESTAMPTZ NOT NULL,
			completed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trips_status ON trips(status)`,
		`CREATE INDEX IF NOT EXISTS idx_trips_vehicle ON trips(vehicle_id)`,
		`CREATE TABLE IF NOT EXISTS maintenance_logs (
			id UUID PRIMARY KEY,
			vehicle_id UUID NOT NULL REFERENCES vehicles(id),
			type TEXT NOT NULL,
			cost DOUBLE PRECISION NOT NULL,
			logged_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_maintenance_logs_vehicle ON maintenance_logs(vehicle_id)`,
		`CREATE INDEX IF NOT EXISTS idx_maintenance_logs_logged_at ON maintenance_logs(logged_at DESC)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func seed(ctx context.Context, db *sql.DB) error {
	vehicleRepo := postgres.NewVehicleRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	userRepo := postgres.NewUserRepository(db)

	vehicles := []*domain.Vehicle{
		{
			Model:           "Volvo FH16",
			LicensePlate:    "TRK-001",
			MaxCapacity:     25000,
			Odometer:        125000,
			AcquisitionCost: 180000,
			Status:          domain.VehicleStatusAvailable,
		},
		{
			Model:           "Mercedes Actros",
			LicensePlate:    "TRK-002",
			MaxCapacity:     18000,
			Odometer:        89000,
			AcquisitionCost: 145000,
			Status:          domain.VehicleStatusAvailable,
		},
		{
			Model:           "Ford Transit",
			LicensePlate:    "VAN-003",
			MaxCapacity:     1500,
			Odometer:        45000,
			AcquisitionCost: 42000,
			Status:          domain.VehicleStatusInShop,
		},
	}

	for _, v := range vehicles {
		existing, err := vehicleRepo.GetByPlate(ctx, v.LicensePlate)
		if err == nil && existing != nil {
			continue
		}
		v.ID = uuid.New().String()
		if err := vehicleRepo.Create(ctx, v); err != nil {
			return err
		}
		log.Printf("seeded vehicle %s (%s)", v.LicensePlate, v.Model)
	}

	now := time.Now()
	drivers := []*domain.Driver{
		{
			Name:          "Sarah Mitchell",
			LicenseExpiry: now.AddDate(2, 0, 0),
			SafetyScore:   95,
			Status:        domain.DriverStatusOffDuty,
		},
		{
			Name:          "James Okafor",
			LicenseExpiry: now.AddDate(1, 6, 0),
			SafetyScore:   88,
			Status:        domain.DriverStatusOffDuty,
		},
		{
			Name:          "Elena Petrova",
			LicenseExpiry: now.AddDate(0, -1, 0), // expired, for testing dispatch checks
			SafetyScore:   72,
			Status:        domain.DriverStatusOffDuty,
		},
	}

	existingDrivers, err := driverRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existingDrivers))
	for _, d := range existingDrivers {
		seen[d.Name] = true
	}

	for _, d := range drivers {
		if seen[d.Name] {
			continue
		}
		d.ID = uuid.New().String()
		if err := driverRepo.Create(ctx, d); err != nil {
			return err
		}
		log.Printf("seeded driver %s", d.Name)
	}

	users := []*domain.User{
		{Name: "Fleet Manager", Email: "manager@fleetflow.local", Role: domain.UserRoleManager},
		{Name: "Dispatch Desk", Email: "dispatch@fleetflow.local", Role: domain.UserRoleDispatcher},
	}

	for _, u := range users {
		existing, err := userRepo.GetByEmail(ctx, u.Email)
		if err == nil && existing != nil {
			continue
		}
		u.ID = uuid.New().String()
		if err := userRepo.Create(ctx, u); err != nil {
			return err
		}
		log.Printf("seeded user %s (%s)", u.Email, u.Role)
	}

	return nil
}
