package cmd

import (
	"context"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stonksbot/stonksbot/config"
)

func init() {
	rootCmd.AddCommand(remindersCmd)
}

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Runs a single due-reminder pass and exits",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.FromEnvfile()
		setupLogging(cfg)

		ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer done()

		bot := newBot(ctx, cfg)
		defer bot.db.Disconnect()

		if err := bot.responder.ProcessDueReminders(ctx); err != nil {
			log.Fatalf("reminder pass failed: %v", err)
		}
	},
}
