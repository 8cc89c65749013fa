/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/car-service/apiserver/config"
	"github.com/car-service/apiserver/internal/auth"
	"github.com/car-service/apiserver/internal/db"
	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
)

// seedCmd represents the seed command. It clears and repopulates the
// database with a small sample data set for local development.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		ctx := cmd.Context()

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			_ = dbConn.Close()
		}()

		tables := []string{"appointments", "documents", "cars", "services", "mechanics", "users"}
		for _, table := range tables {
			if _, err := dbConn.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		if err := seedData(ctx, dbConn); err != nil {
			return err
		}

		fmt.Println("sample data loaded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedData(ctx context.Context, dbConn *sql.DB) error {
	userRepo := store.NewUserRepository(dbConn)
	carRepo := store.NewCarRepository(dbConn)
	mechanicRepo := store.NewMechanicRepository(dbConn)
	serviceRepo := store.NewServiceRepository(dbConn)
	appointmentRepo := store.NewAppointmentRepository(dbConn)

	if _, err := createSeedUser(ctx, userRepo, "Alice Admin", "alice@example.com", types.RoleAdmin, "admin-password"); err != nil {
		return err
	}
	customer, err := createSeedUser(ctx, userRepo, "Bob Customer", "bob@example.com", types.RoleCustomer, "customer-password")
	if err != nil {
		return err
	}

	car, err := carRepo.Create(ctx, types.Car{
		Brand:       "Toyota",
		Model:       "Corolla",
		Year:        2019,
		PlateNumber: "AB123CD",
		VIN:         "JTDBU4EE9A9123456",
		UserID:      customer.ID,
	})
	if err != nil {
		return fmt.Errorf("seed car: %w", err)
	}

	oilChange, err := serviceRepo.Create(ctx, types.Service{
		Name:        "Oil Change",
		Description: "Engine oil and filter replacement",
		Price:       59.90,
		Duration:    45,
	})
	if err != nil {
		return fmt.Errorf("seed service: %w", err)
	}
	if _, err := serviceRepo.Create(ctx, types.Service{
		Name:        "Brake Inspection",
		Description: "Full brake system check",
		Price:       39.00,
		Duration:    30,
	}); err != nil {
		return fmt.Errorf("seed service: %w", err)
	}

	mechanicHash, err := auth.HashPassword("mechanic-password")
	if err != nil {
		return fmt.Errorf("hash mechanic password: %w", err)
	}
	mechanic, err := mechanicRepo.Create(ctx, types.Mechanic{
		Name:         "Mike Wrench",
		Login:        "mike",
		Role:         types.RoleMechanic,
		Position:     "senior technician",
		BirthDate:    time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC),
		PasswordHash: mechanicHash,
	})
	if err != nil {
		return fmt.Errorf("seed mechanic: %w", err)
	}

	if _, err := appointmentRepo.Create(ctx, types.Appointment{
		UserID:     customer.ID,
		CarID:      car.ID,
		ServiceID:  oilChange.ID,
		MechanicID: &mechanic.ID,
		Date:       time.Now().UTC().Add(72 * time.Hour).Truncate(time.Hour),
		Status:     types.StatusPending,
	}); err != nil {
		return fmt.Errorf("seed appointment: %w", err)
	}

	return nil
}

func createSeedUser(ctx context.Context, repo *store.UserRepository, name, email, role, password string) (types.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password for %s: %w", email, err)
	}
	user, err := repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		return types.User{}, fmt.Errorf("seed user %s: %w", email, err)
	}
	return user, nil
}
