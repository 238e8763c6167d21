package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/weilun/chipscan/internal/scoring"
	"github.com/weilun/chipscan/pkg/config"
	"github.com/weilun/chipscan/pkg/httputil"
	"github.com/weilun/chipscan/pkg/logger"
	"github.com/weilun/chipscan/pkg/redis"
)

// ErrSeriesUnavailable means no market suffix produced a usable series. The
// caller continues with degraded technical labels; this is never fatal for a
// scan.
var ErrSeriesUnavailable = errors.New("market: series unavailable")

// marketSuffixes are tried in order: main board first, then OTC.
// 上市 .TW, 上櫃 .TWO
var marketSuffixes = []string{".TW", ".TWO"}

// Client fetches one-year daily close/volume series from the Yahoo Finance
// chart API. Yahoo Finance 行情呼叫只在這個客戶端
type Client struct {
	httpClient *httputil.Client
	cache      SeriesCache
	limiter    *rate.Limiter
	logger     *logger.Logger
	baseURL    string
	cacheTTL   time.Duration
}

// NewClient creates a Yahoo chart client. The cache is injectable so tests
// can substitute a deterministic fake.
func NewClient(cfg *config.Config, log *logger.Logger, cache SeriesCache) *Client {
	return &Client{
		// Transport errors degrade single records; one retry pass is enough.
		httpClient: httputil.NewWithTimeout(log, cfg.Yahoo.Timeout).WithRetry(1, 200*time.Millisecond),
		cache:      cache,
		limiter:    rate.NewLimiter(rate.Limit(cfg.Yahoo.RequestsSec), 1),
		logger:     log,
		baseURL:    cfg.Yahoo.BaseURL,
		cacheTTL:   cfg.Scan.CacheTTL,
	}
}

// chartEnvelope is the Yahoo v8 chart API response shape. Close and volume
// arrive as interface slices because delisted sessions are JSON nulls.
type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchSeries returns up to one year of daily observations for a 4-digit
// security code, trying each market suffix before giving up. Results are
// cached per code; repeated scans within the TTL never hit the network.
func (c *Client) FetchSeries(ctx context.Context, code string) (scoring.Series, error) {
	key := redis.SeriesKey(code)

	var cached scoring.Series
	if found, err := c.cache.Get(ctx, key, &cached); err == nil && found {
		c.logger.WithField("code", code).Debug("Series served from cache")
		return cached, nil
	}

	for _, suffix := range marketSuffixes {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		series, err := c.fetchChart(ctx, code+suffix)
		if err != nil {
			c.logger.WithFields(map[string]interface{}{
				"code":   code,
				"suffix": suffix,
				"error":  err.Error(),
			}).Debug("Chart fetch failed, trying next suffix")
			continue
		}

		if err := c.cache.Set(ctx, key, series, c.cacheTTL); err != nil {
			// Cache failures never block a scan.
			c.logger.WithError(err).Warn("Series cache write failed")
		}

		c.logger.WithFields(map[string]interface{}{
			"code":   code,
			"suffix": suffix,
			"count":  len(series),
		}).Debug("Fetched series")
		return series, nil
	}

	return nil, ErrSeriesUnavailable
}

// fetchChart calls the chart endpoint for one fully-suffixed symbol.
func (c *Client) fetchChart(ctx context.Context, symbol string) (scoring.Series, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=1y&interval=1d", c.baseURL, symbol)

	resp, err := c.httpClient.GetWithHeaders(ctx, url, map[string]string{
		"User-Agent": "Mozilla/5.0",
	})
	if err != nil {
		return nil, fmt.Errorf("chart request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	return parseChart(body)
}

// parseChart extracts the (close, volume) series from a chart response,
// dropping sessions where either value is null.
func parseChart(body []byte) (scoring.Series, error) {
	var envelope chartEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode chart response: %w", err)
	}

	if envelope.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s", envelope.Chart.Error.Description)
	}

	if len(envelope.Chart.Result) == 0 || len(envelope.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart response carries no quotes")
	}

	result := envelope.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	var series scoring.Series
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}

		closeVal, okClose := toFloat(quote.Close[i])
		volumeVal, okVolume := toFloat(quote.Volume[i])
		if !okClose || !okVolume {
			continue // null session
		}

		series = append(series, scoring.Observation{
			Date:   time.Unix(ts, 0).UTC(),
			Close:  closeVal,
			Volume: volumeVal,
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("chart response carries no usable sessions")
	}
	return series, nil
}

// toFloat converts a JSON number cell, reporting nulls and odd types.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
