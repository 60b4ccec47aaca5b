package service

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/stonksbot/stonksbot/alphavantage"
	"github.com/stonksbot/stonksbot/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	log "github.com/sirupsen/logrus"
)

type QuoteService struct {
	client *alphavantage.Client
}

func NewQuoteService(ctx context.Context, cfg config.Config, secretsManagerClient *secretsmanager.Client) *QuoteService {
	// Get the Alpha Vantage API key from AWS Secrets Manager
	result, err := secretsManagerClient.GetSecretValue(
		ctx,
		&secretsmanager.GetSecretValueInput{
			SecretId: aws.String(cfg.AlphaVantage.SecretPath),
		},
	)
	if err != nil {
		log.Fatal(err.Error())
	}
	var alphaVantageSecrets config.AlphaVantageSecretData
	err = json.Unmarshal([]byte(*result.SecretString), &alphaVantageSecrets)
	if err != nil {
		log.Panicf("alphavantage secrets read error: %v", err)
	}

	client := alphavantage.NewClient(alphaVantageSecrets.ApiKey, cfg.AlphaVantage.ApiURL)
	log.Infof("Alpha Vantage client initialized. Host: %s", cfg.AlphaVantage.ApiURL.String())

	return &QuoteService{
		client: client,
	}
}

// Returns the latest price for a symbol, rounded to 2 decimal places.
// Surfaces alphavantage.ErrSymbolNotFound and alphavantage.ErrRateLimitExceeded
// so callers can skip the affected item rather than crash the run.
func (s *QuoteService) GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	quote, err := s.client.GetQuote(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	price, err := decimal.NewFromString(quote.Price)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Round(2), nil
}
