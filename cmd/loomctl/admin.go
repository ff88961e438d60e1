package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loomhouse/internal/services"
)

var (
	adminEmail     string
	adminPassword  string
	adminFirstName string
	adminLastName  string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the first admin account",
	Long: `create-admin registers an admin who can then sign in and add others
through the API. The password may also be passed in LOOMHOUSE_ADMIN_PASSWORD.`,
	Args: cobra.NoArgs,
	RunE: runCreateAdmin,
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminEmail, "email", "", "admin email (required)")
	f.StringVar(&adminPassword, "password", "", "admin password, at least 8 characters")
	f.StringVar(&adminFirstName, "first-name", "", "first name")
	f.StringVar(&adminLastName, "last-name", "", "last name")
	_ = createAdminCmd.MarkFlagRequired("email")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	password := adminPassword
	if password == "" {
		password = os.Getenv("LOOMHOUSE_ADMIN_PASSWORD")
	}
	if password == "" {
		return errors.New("a password is required (--password or LOOMHOUSE_ADMIN_PASSWORD)")
	}

	m, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(m)

	if err := m.Migrate(); err != nil {
		return err
	}

	user, err := services.NewUserService(m.DB()).CreateUser(cmd.Context(), adminEmail, password, adminFirstName, adminLastName)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
	return nil
}
