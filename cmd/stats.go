package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display the number of registered users and stored notes.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck

		users, err := db.CountUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		notes, err := db.CountNotes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count notes: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Users: %d\n", users)
		fmt.Printf("Notes: %d\n", notes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
