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
	rootCmd.AddCommand(mentionsCmd)
}

// One-shot entry point for external schedulers (cron, ECS scheduled tasks)
// that prefer short-lived processes over the long-running server.
var mentionsCmd = &cobra.Command{
	Use:   "mentions",
	Short: "Runs a single mention-processing pass and exits",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.FromEnvfile()
		setupLogging(cfg)

		ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer done()

		bot := newBot(ctx, cfg)
		defer bot.db.Disconnect()

		if err := bot.watcher.ProcessNewMentions(ctx); err != nil {
			log.Fatalf("mention pass failed: %v", err)
		}
	},
}
