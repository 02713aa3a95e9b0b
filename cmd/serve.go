package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/notemark/notemark/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the notemark server",
	Long:  `Start the notemark server to serve the note pages and handle logins.`,
	Example: `notemark serve --config config.yml
notemark serve -c /path/to/config.yml --log-level debug
`,
	RunE: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(_ *cobra.Command, _ []string) error {
	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	server, err := api.New(cfg, db, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	// Start the API server in a goroutine
	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("notemark started successfully")
	<-c
	log.Info("shutting down gracefully...")

	// Give time for graceful shutdown
	time.Sleep(2 * time.Second)
	return nil
}
