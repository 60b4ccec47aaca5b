package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stonksbot/stonksbot/alphavantage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuoteService(t *testing.T, handler http.HandlerFunc) *QuoteService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	return &QuoteService{client: alphavantage.NewClient("test-key", *baseURL)}
}

func quoteHandler(price string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"Global Quote": {"01. symbol": "AMZN", "05. price": "%s"}}`, price)
	}
}

func TestGetCurrentPrice(t *testing.T) {
	t.Run("rounds the provider price to two decimal places", func(t *testing.T) {
		testCases := []struct {
			providerPrice string
			expected      string
		}{
			{"3201.6500", "3201.65"},
			{"3112.7000", "3112.70"},
			{"3112.7049", "3112.70"},
			{"3112.7051", "3112.71"},
		}
		for _, testCase := range testCases {
			t.Run(testCase.providerPrice, func(t *testing.T) {
				quotes := newQuoteService(t, quoteHandler(testCase.providerPrice))

				price, err := quotes.GetCurrentPrice(context.Background(), "AMZN")
				require.NoError(t, err)
				assert.Equal(t, testCase.expected, price.StringFixed(2))
				// rounded for real, not just displayed to two places
				assert.True(t, price.Exponent() >= -2, "expected at most 2 decimal places, got exponent %d", price.Exponent())
			})
		}
	})

	t.Run("surfaces the symbol-not-found condition", func(t *testing.T) {
		quotes := newQuoteService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"Global Quote": {}}`)
		})

		_, err := quotes.GetCurrentPrice(context.Background(), "NOPE")
		assert.ErrorIs(t, err, alphavantage.ErrSymbolNotFound)
	})

	t.Run("surfaces the rate-limit condition", func(t *testing.T) {
		quotes := newQuoteService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute and 500 calls per day."}`)
		})

		_, err := quotes.GetCurrentPrice(context.Background(), "AMZN")
		assert.ErrorIs(t, err, alphavantage.ErrRateLimitExceeded)
	})
}
