package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NawraaSayed/RiskSheet/internal/models"
)

const chartFixture = `{
	"chart": {
		"result": [{
			"timestamp": [1704153600, 1704240000, 1704326400],
			"indicators": {
				"quote": [{
					"open":  [184.2, 183.9, null],
					"high":  [186.1, 185.5, 184.0],
					"low":   [183.5, 182.8, 182.0],
					"close": [185.6, 184.2, 183.1]
				}]
			}
		}],
		"error": null
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithRateLimit(1000), WithTimeout(5*time.Second))
}

func TestFetchHistory_ParsesBars(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "max", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Write([]byte(chartFixture))
	})

	bars, err := c.FetchHistory(context.Background(), "aapl")
	require.NoError(t, err)

	// The third timestamp has a null open and is skipped.
	require.Len(t, bars, 2)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, 185.6, bars[0].Close)
	assert.Equal(t, 186.1, bars[0].High)
	assert.Equal(t, 183.5, bars[0].Low)
	assert.Equal(t, 184.2, bars[1].Close)
}

func TestFetchHistory_UnknownTicker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	})

	_, err := c.FetchHistory(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))
}

func TestFetchHistory_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := c.FetchHistory(context.Background(), "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestFetchMetadata(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/finance/quoteSummary/AAPL", r.URL.Path)
		w.Write([]byte(`{
			"quoteSummary": {
				"result": [{
					"assetProfile": {"sector": "Technology"},
					"price": {"marketCap": {"raw": 2890000000000}}
				}],
				"error": null
			}
		}`))
	})

	meta, err := c.FetchMetadata(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Technology", meta.Sector)
	require.NotNil(t, meta.MarketCap)
	assert.Equal(t, 2.89e12, *meta.MarketCap)
}

func TestFetchMetadata_MissingProfileDefaultsUnknown(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{}],"error":null}}`))
	})

	meta, err := c.FetchMetadata(context.Background(), "SPY")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", meta.Sector)
	assert.Nil(t, meta.MarketCap)
}

func TestFetchSectorWeights(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"quoteSummary": {
				"result": [{
					"topHoldings": {
						"sectorWeightings": [
							{"technology": {"raw": 0.31}},
							{"healthcare": {"raw": 0.13}}
						]
					}
				}],
				"error": null
			}
		}`))
	})

	weights := c.FetchSectorWeights(context.Background(), "SPY")
	assert.Equal(t, map[string]float64{"technology": 0.31, "healthcare": 0.13}, weights)
}

func TestFetchSectorWeights_BestEffortOnFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	weights := c.FetchSectorWeights(context.Background(), "SPY")
	assert.NotNil(t, weights)
	assert.Empty(t, weights)
}
