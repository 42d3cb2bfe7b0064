// Package yahoo provides a client for the Yahoo Finance public API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/NawraaSayed/RiskSheet/internal/common"
	"github.com/NawraaSayed/RiskSheet/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// Yahoo rejects requests without a browser-like user agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

// Client implements the MarketDataProvider interface against Yahoo's
// chart and quoteSummary endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// chartResponse mirrors the v8 chart payload. OHLC arrays are nullable
// per element on halted or partial days.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory retrieves the maximum available daily history for a
// ticker, ordered chronologically with calendar-naive dates.
func (c *Client) FetchHistory(ctx context.Context, ticker string) ([]models.PriceBar, error) {
	ticker = models.NormalizeTicker(ticker)

	params := url.Values{}
	params.Set("range", "max")
	params.Set("interval", "1d")

	var data chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(ticker), params, &data); err != nil {
		return nil, fmt.Errorf("chart request for %s: %w", ticker, err)
	}

	if data.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", models.ErrDataUnavailable, ticker, data.Chart.Error.Code)
	}
	if len(data.Chart.Result) == 0 || len(data.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrDataUnavailable, ticker)
	}

	result := data.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]models.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) {
			continue
		}
		if quote.Close[i] == nil || quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil {
			continue
		}
		day := time.Unix(ts, 0).UTC()
		bars = append(bars, models.PriceBar{
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:  *quote.Open[i],
			High:  *quote.High[i],
			Low:   *quote.Low[i],
			Close: *quote.Close[i],
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrDataUnavailable, ticker)
	}

	c.logger.Debug().Str("ticker", ticker).Int("bars", len(bars)).Msg("History fetched")
	return bars, nil
}

// rawValue is Yahoo's {raw, fmt} number wrapper.
type rawValue struct {
	Raw float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile *struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
			Price *struct {
				MarketCap *rawValue `json:"marketCap"`
			} `json:"price"`
			TopHoldings *struct {
				SectorWeightings []map[string]rawValue `json:"sectorWeightings"`
			} `json:"topHoldings"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchMetadata retrieves sector and market cap for a ticker. Sector
// defaults to "Unknown" when the profile has none.
func (c *Client) FetchMetadata(ctx context.Context, ticker string) (*models.IssuerMetadata, error) {
	ticker = models.NormalizeTicker(ticker)

	params := url.Values{}
	params.Set("modules", "assetProfile,price")

	var data quoteSummaryResponse
	if err := c.get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), params, &data); err != nil {
		return nil, fmt.Errorf("quote summary for %s: %w", ticker, err)
	}

	meta := &models.IssuerMetadata{Sector: "Unknown"}
	if len(data.QuoteSummary.Result) == 0 {
		return meta, nil
	}

	result := data.QuoteSummary.Result[0]
	if result.AssetProfile != nil && result.AssetProfile.Sector != "" {
		meta.Sector = result.AssetProfile.Sector
	}
	if result.Price != nil && result.Price.MarketCap != nil && result.Price.MarketCap.Raw > 0 {
		marketCap := result.Price.MarketCap.Raw
		meta.MarketCap = &marketCap
	}
	return meta, nil
}

// FetchSectorWeights retrieves an index fund's sector weight breakdown.
// Best effort: any failure yields an empty map, never an error.
func (c *Client) FetchSectorWeights(ctx context.Context, proxyTicker string) map[string]float64 {
	proxyTicker = models.NormalizeTicker(proxyTicker)

	params := url.Values{}
	params.Set("modules", "topHoldings")

	var data quoteSummaryResponse
	if err := c.get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(proxyTicker), params, &data); err != nil {
		c.logger.Warn().Err(err).Str("ticker", proxyTicker).Msg("Sector weights unavailable")
		return map[string]float64{}
	}

	weights := map[string]float64{}
	if len(data.QuoteSummary.Result) == 0 || data.QuoteSummary.Result[0].TopHoldings == nil {
		return weights
	}
	for _, entry := range data.QuoteSummary.Result[0].TopHoldings.SectorWeightings {
		for sector, value := range entry {
			weights[sector] = value.Raw
		}
	}
	return weights
}
