package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var createUserCmdFlags struct {
	Username string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account from the terminal",
	Long:  `Create a user account without going through the signup page. The password is read from the terminal without echo.`,
	RunE:  createUser,
}

func init() {
	createUserCmd.Flags().StringVarP(&createUserCmdFlags.Username, "username", "u", "", "Username for the new account")
	_ = createUserCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(createUserCmd)
}

func createUser(cmd *cobra.Command, _ []string) error {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	if _, err := db.CreateUser(cmd.Context(), createUserCmdFlags.Username, string(hash)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created", "username", createUserCmdFlags.Username)
	return nil
}
