package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/ekurt/newspulse/internal/contracts"
)

// candleResponse is the raw stock/candle payload. Finnhub signals "no
// data" in-band via the s field.
type candleResponse struct {
	Closes  []float64 `json:"c"`
	Times   []int64   `json:"t"`
	Volumes []int64   `json:"v"`
	Status  string    `json:"s"`
}

// DailyCandles fetches the daily close series for [from, to].
// A no_data status returns (nil, nil): the symbol has no candles, which
// is not an error.
func (c *Client) DailyCandles(ctx context.Context, symbol string, from, to time.Time) (*contracts.CandleSeries, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("resolution", "D")
	params.Set("from", strconv.FormatInt(from.Unix(), 10))
	params.Set("to", strconv.FormatInt(to.Unix(), 10))

	var raw candleResponse
	if err := c.getJSON(ctx, "/stock/candle", params, &raw); err != nil {
		return nil, err
	}

	if raw.Status == "no_data" || len(raw.Times) == 0 {
		c.logger.WithField("symbol", symbol).Debug("No candle data")
		return nil, nil
	}
	if raw.Status != "ok" {
		return nil, fmt.Errorf("candle request for %s returned status %q", symbol, raw.Status)
	}

	series, err := contracts.NewCandleSeries(raw.Times, raw.Closes, raw.Volumes)
	if err != nil {
		return nil, fmt.Errorf("candle response for %s malformed: %w", symbol, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  series.Len(),
	}).Debug("Fetched daily candles")

	return series, nil
}
