package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
)

var (
	// The provider has no data for the requested symbol.
	ErrSymbolNotFound = errors.New("alphavantage: symbol not found")
	// The provider's call frequency quota is exhausted.
	ErrRateLimitExceeded = errors.New("alphavantage: rate limit exceeded")
)

type Client struct {
	baseURL    string
	apiKey     string
	HTTPClient *http.Client
}

func NewClient(apiKey string, baseURL url.URL) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL.String(),
		HTTPClient: http.DefaultClient,
	}
}

func (c Client) GetQuote(ctx context.Context, symbol string) (*GlobalQuote, error) {
	url, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	q := url.Query()
	q.Add("function", "GLOBAL_QUOTE")
	q.Add("symbol", symbol)
	q.Add("apikey", c.apiKey)
	url.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var qr QuoteResponse
	if err = json.Unmarshal(body, &qr); err != nil {
		return nil, err
	}

	if qr.Note != "" || qr.Information != "" {
		return nil, ErrRateLimitExceeded
	}
	if qr.GlobalQuote.Price == "" {
		return nil, ErrSymbolNotFound
	}

	return &qr.GlobalQuote, nil
}
