package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var resetCmdFlags struct {
	Yes bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all notes",
	Long:  `This command deletes every stored note. User accounts are kept.`,
	RunE:  reset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCmdFlags.Yes, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(resetCmd)
}

func reset(cmd *cobra.Command, _ []string) error {
	if !resetCmdFlags.Yes {
		fmt.Print("Delete ALL notes? Type 'yes' to continue: ")
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil || answer != "yes" {
			log.Info("reset aborted")
			return nil
		}
	}

	_, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	deleted, err := db.DeleteAllNotes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}

	log.Info("notes deleted", "count", deleted)
	return nil
}
