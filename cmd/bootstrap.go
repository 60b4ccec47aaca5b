package cmd

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	log "github.com/sirupsen/logrus"
	"github.com/stonksbot/stonksbot/config"
	"github.com/stonksbot/stonksbot/database"
	"github.com/stonksbot/stonksbot/responder"
	"github.com/stonksbot/stonksbot/service"
	"github.com/stonksbot/stonksbot/watcher"
)

type bot struct {
	cfg       config.Config
	db        *database.Database
	watcher   *watcher.Watcher
	responder *responder.Responder
}

func setupLogging(cfg config.Config) {
	log.SetLevel(cfg.LogLevel)

	switch cfg.LogFormat {
	case config.LogFormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{})
	}
}

// Shared startup for the server and the one-shot passes: config, secrets,
// collaborators, database (with migrations), and the two processors.
// Startup failures are fatal; there is nothing sensible to do without them.
func newBot(ctx context.Context, cfg config.Config) *bot {
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}
	secretsManagerClient := secretsmanager.NewFromConfig(awsConfig)

	databaseURL := cfg.PostgresURL
	if databaseURL == "" {
		// Get the DB secrets from AWS Secrets Manager
		result, err := secretsManagerClient.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(cfg.PostgresSecretPath)})
		if err != nil {
			log.Fatal(err.Error())
		}
		var pgSecrets config.PostgresSecretData
		err = json.Unmarshal([]byte(*result.SecretString), &pgSecrets)
		if err != nil {
			log.Fatalf("postgres secrets read error: %v", err)
		}
		databaseURL = pgSecrets.ConnectionString
	}

	twitterService := service.NewTwitterService(ctx, cfg, secretsManagerClient)
	quoteService := service.NewQuoteService(ctx, cfg, secretsManagerClient)

	db := database.NewDatabase(databaseURL)
	if err = db.Connect(ctx); err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}
	if err = db.Migrate(); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	return &bot{
		cfg:       cfg,
		db:        db,
		watcher:   watcher.NewWatcher(twitterService, quoteService, db, cfg.TestModeEnabled),
		responder: responder.NewResponder(twitterService, quoteService, db, cfg.TestModeEnabled),
	}
}
