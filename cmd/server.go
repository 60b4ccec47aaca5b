package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stonksbot/stonksbot/config"
	"github.com/stonksbot/stonksbot/service"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Runs the stonksbot server",
	Long:  `Runs the stonksbot server: the mention and reminder passes on their cron schedules, plus a healthcheck endpoint`,
	Run: func(cmd *cobra.Command, args []string) {

		cfg := config.FromEnvfile()

		setupLogging(cfg)

		if cfg.TestModeEnabled {
			log.Info("TEST MODE ENABLED")
		}

		/*
			Graceful shutdown is possible with errgroup + signal.NotifyContext
			NotifyContext returns a context that will close on OS signals to terminate the process
			errgroup uses that context, and also closes it in case a goroutine errors out
		*/
		ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGKILL)
		defer done()
		g, gCtx := errgroup.WithContext(ctx)

		bot := newBot(gCtx, cfg)
		defer bot.db.Disconnect()

		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.MentionSchedule, func() {
			if err := bot.watcher.ProcessNewMentions(gCtx); err != nil {
				log.Errorf("mention pass failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("bad mention schedule %q: %v", cfg.MentionSchedule, err)
		}
		if _, err := scheduler.AddFunc(cfg.ReminderSchedule, func() {
			if err := bot.responder.ProcessDueReminders(gCtx); err != nil {
				log.Errorf("reminder pass failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("bad reminder schedule %q: %v", cfg.ReminderSchedule, err)
		}
		log.WithField("mentions", cfg.MentionSchedule).WithField("reminders", cfg.ReminderSchedule).Info("starting scheduler")
		scheduler.Start()

		g.Go(func() error {
			<-gCtx.Done()
			defer log.Info("exiting scheduler")
			// Wait for any in-flight pass to finish
			<-scheduler.Stop().Done()
			return nil
		})

		healthchecker := service.NewHealthchecker(8080)

		// For deployed instances, provide a basic healthcheck endpoint to show it's online
		g.Go(func() error {
			if err := healthchecker.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		// ...and shut down the server if the bot needs to terminate
		g.Go(func() error {
			<-gCtx.Done()
			defer log.Info("exiting healthchecker")
			return healthchecker.Server.Shutdown(context.Background())
		})

		err := g.Wait()
		if err != nil {
			log.Errorf("caught error: %v", err)
		}
	},
}
