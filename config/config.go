package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Twitter      TwitterConfig
	AlphaVantage AlphaVantageConfig

	PostgresURL        string
	PostgresSecretPath string

	// Cron specs driving the two batch passes in server mode
	MentionSchedule  string
	ReminderSchedule string

	LogLevel        log.Level
	LogFormat       LogFormat
	TestModeEnabled bool
}

type TwitterConfig struct {
	BotUserName      string
	SecretPath       string
	TimelinePageSize int
}

type AlphaVantageConfig struct {
	ApiURL     url.URL
	SecretPath string
}

type LogFormat string

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type EnvfileKey string

const (
	// Postgres connection string to use for database connections
	EnvfileKeyPostgresURL = "POSTGRES_URL"
	// AWS Secrets Manager path where Postgres connection string can be found
	EnvfileKeyPostgresSecretsPath = "POSTGRES_SECRETS_PATH"

	// Base URL to the Alpha Vantage query endpoint
	EnvfileKeyAlphaVantageAPI = "ALPHAVANTAGE_API"
	// AWS Secrets Manager path where the Alpha Vantage API key can be found
	EnvfileKeyAlphaVantageSecretPath = "ALPHAVANTAGE_SECRETS_PATH"

	// AWS Secrets Manager path where Twitter secrets can be found
	EnvfileKeyTwitterSecretPath = "TWITTER_SECRETS_PATH"
	// Twitter username of the bot, used for tracking mentions
	// NOTE: the bot posts under the account configured in twitter secrets
	EnvfileKeyTwitterUserName = "TWITTER_USERNAME"
	// Number of tweets to request per call to the timeline mentions endpoint
	EnvfileKeyTwitterTimelinePageSize = "TWITTER_TIMELINE_PAGE_SIZE"

	// Cron spec for the mention-processing pass (e.g. "@every 5m")
	EnvfileKeyMentionSchedule = "MENTION_POLL_SCHEDULE"
	// Cron spec for the due-reminder pass (e.g. "0 12 * * *")
	EnvfileKeyReminderSchedule = "REMINDER_SCHEDULE"

	// Log level (e.g. "debug", "info", "warn", "error")
	EnvfileKeyLogLevel = "LOG_LEVEL"
	// Log output format (e.g. "text", "json")
	EnvfileKeyLogFormat = "LOG_FORMAT"
	// Enables "test mode" (server simulates posting, etc.)
	EnvfileKeyTestMode = "TEST_MODE"
)

const (
	defaultAlphaVantageAPI  = "https://www.alphavantage.co/query"
	defaultMentionSchedule  = "@every 5m"
	defaultReminderSchedule = "0 12 * * *"
)

func FromEnvfile() Config {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("dotenv")

	err := viper.ReadInConfig()
	if err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	alphaVantageAPI := getConfigString(EnvfileKeyAlphaVantageAPI)
	if alphaVantageAPI == "" {
		alphaVantageAPI = defaultAlphaVantageAPI
	}
	alphaVantageURL, err := url.Parse(alphaVantageAPI)
	if err != nil {
		log.Fatalf("error parsing Alpha Vantage URL: %v", err)
	}

	twitterUsername := getConfigString(EnvfileKeyTwitterUserName)
	if twitterUsername == "" {
		log.Fatalf("must supply username for bot")
	}

	twitterTimelineSize := getConfigInt(EnvfileKeyTwitterTimelinePageSize)
	if twitterTimelineSize == 0 {
		// Default to 5 if not set
		twitterTimelineSize = 5
	}

	mentionSchedule := getConfigString(EnvfileKeyMentionSchedule)
	if mentionSchedule == "" {
		mentionSchedule = defaultMentionSchedule
	}
	reminderSchedule := getConfigString(EnvfileKeyReminderSchedule)
	if reminderSchedule == "" {
		reminderSchedule = defaultReminderSchedule
	}

	logLevel, err := log.ParseLevel(getConfigString(EnvfileKeyLogLevel))
	if err != nil {
		// Default to info level but log a warning
		log.Warnf("unable to parse log level: %v", err)
		logLevel = log.InfoLevel
	}

	logFormat, err := parseLogFormat(getConfigString(EnvfileKeyLogFormat))
	if err != nil {
		// Default to text formatter but log a warning
		log.Warnf("unable to parse log format: %v", err)
		logFormat = LogFormatText
	}

	postgresURL := getConfigString(EnvfileKeyPostgresURL)
	postgresSecretsPath := getConfigString(EnvfileKeyPostgresSecretsPath)
	if postgresURL == "" && postgresSecretsPath == "" {
		log.Fatal("postgres not configured")
	}

	isTestMode := viper.GetBool(EnvfileKeyTestMode)

	return Config{
		AlphaVantage: AlphaVantageConfig{
			ApiURL:     *alphaVantageURL,
			SecretPath: getConfigString(EnvfileKeyAlphaVantageSecretPath),
		},
		Twitter: TwitterConfig{
			BotUserName:      twitterUsername,
			SecretPath:       getConfigString(EnvfileKeyTwitterSecretPath),
			TimelinePageSize: twitterTimelineSize,
		},
		PostgresURL:        postgresURL,
		PostgresSecretPath: postgresSecretsPath,
		MentionSchedule:    mentionSchedule,
		ReminderSchedule:   reminderSchedule,
		LogLevel:           logLevel,
		LogFormat:          logFormat,
		TestModeEnabled:    isTestMode,
	}
}

func parseLogFormat(raw string) (LogFormat, error) {
	switch strings.ToLower(raw) {
	case LogFormatJSON:
		return LogFormatJSON, nil
	case LogFormatText:
		return LogFormatText, nil
	default:
		return "", fmt.Errorf("unidentified log format: %s", raw)
	}
}

// Gets a config value as a string from env vars or a .env file
func getConfigString(key string) string {
	value := os.Getenv(key)
	if value == "" {
		value = viper.GetString(key)
	}
	return value
}

// Gets a config value as an int from env vars or a .env file
func getConfigInt(key string) int {
	envVarValue := os.Getenv(key)
	if envVarValue == "" {
		return viper.GetInt(key)
	}
	value, err := strconv.Atoi(envVarValue)
	if err != nil {
		return 0
	}
	return value
}
