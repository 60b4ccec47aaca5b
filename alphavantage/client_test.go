package alphavantage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteBody = `{
	"Global Quote": {
		"01. symbol": "AMZN",
		"02. open": "3243.9900",
		"03. high": "3249.4200",
		"04. low": "3171.6000",
		"05. price": "3201.6500",
		"06. volume": "5995713",
		"07. latest trading day": "2020-12-18",
		"08. previous close": "3236.0800",
		"09. change": "-34.4300",
		"10. change percent": "-1.0639%"
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	return NewClient("test-key", *baseURL)
}

func TestGetQuote(t *testing.T) {
	t.Run("returns the quote for a known symbol", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
			assert.Equal(t, "AMZN", r.URL.Query().Get("symbol"))
			assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
			fmt.Fprint(w, quoteBody)
		})

		quote, err := client.GetQuote(context.Background(), "AMZN")
		require.NoError(t, err)
		assert.Equal(t, "AMZN", quote.Symbol)
		assert.Equal(t, "3201.6500", quote.Price)
		assert.Equal(t, "2020-12-18", quote.LatestTradingDay)
	})

	t.Run("returns ErrSymbolNotFound for an empty quote object", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"Global Quote": {}}`)
		})

		_, err := client.GetQuote(context.Background(), "NOPE")
		assert.ErrorIs(t, err, ErrSymbolNotFound)
	})

	t.Run("returns ErrRateLimitExceeded when the quota note is present", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute and 500 calls per day."}`)
		})

		_, err := client.GetQuote(context.Background(), "AMZN")
		assert.ErrorIs(t, err, ErrRateLimitExceeded)
	})

	t.Run("returns ErrRateLimitExceeded for the premium information payload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"Information": "API rate limit exceeded"}`)
		})

		_, err := client.GetQuote(context.Background(), "AMZN")
		assert.ErrorIs(t, err, ErrRateLimitExceeded)
	})
}
