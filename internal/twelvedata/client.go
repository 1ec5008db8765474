package twelvedata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.twelvedata.com"

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetCandles fetches the most recent candles for a symbol, newest first.
// May return fewer candles than requested when the provider has less data.
func (c *Client) GetCandles(symbol, interval string, count int) ([]Candle, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("outputsize", strconv.Itoa(count))
	params.Set("apikey", c.apiKey)

	endpoint := fmt.Sprintf("%s/time_series?%s", c.baseURL, params.Encode())

	body, err := c.get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("error fetching candles: %w", err)
	}

	var resp timeSeriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("error parsing candles: %w", err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("provider error: %s", resp.Message)
	}

	return resp.Values, nil
}

// GetRSI fetches the latest RSI reading for a symbol. The zero NullDecimal
// signals that no reading is available.
func (c *Client) GetRSI(symbol, interval string) (decimal.NullDecimal, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("apikey", c.apiKey)

	endpoint := fmt.Sprintf("%s/rsi?%s", c.baseURL, params.Encode())

	body, err := c.get(endpoint)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("error fetching rsi: %w", err)
	}

	var resp rsiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("error parsing rsi: %w", err)
	}
	if resp.Status == "error" {
		return decimal.NullDecimal{}, fmt.Errorf("provider error: %s", resp.Message)
	}
	if len(resp.Values) == 0 {
		return decimal.NullDecimal{}, fmt.Errorf("no rsi values for %s %s", symbol, interval)
	}

	return decimal.NullDecimal{Decimal: resp.Values[0].RSI, Valid: true}, nil
}

func (c *Client) get(endpoint string) ([]byte, error) {
	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	return body, nil
}
