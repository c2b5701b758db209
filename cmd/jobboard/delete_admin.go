package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daniel/jobboard/internal/config"
	"github.com/daniel/jobboard/internal/db"
)

var deleteAdminEmail string

var deleteAdminCmd = &cobra.Command{
	Use:   "delete-admin",
	Short: "Delete an administrator account",
	Long:  `Delete an administrator account directly in the database, e.g. when offboarding a moderator.`,
	RunE:  runDeleteAdmin,
}

func init() {
	deleteAdminCmd.Flags().StringVar(&deleteAdminEmail, "email", "", "Administrator email")
	_ = deleteAdminCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(deleteAdminCmd)
}

func runDeleteAdmin(_ *cobra.Command, _ []string) error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	admin, err := database.GetAdminByEmail(ctx, deleteAdminEmail)
	if err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil {
		return fmt.Errorf("no administrator with email %s", deleteAdminEmail)
	}

	if err := database.DeleteAdmin(ctx, admin.ID); err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}

	fmt.Printf("Deleted administrator %s (%s)\n", admin.Email, admin.ID)
	return nil
}
