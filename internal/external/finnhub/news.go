package finnhub

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/ekurt/newspulse/internal/contracts"
)

// newsItem is the raw company-news response row
type newsItem struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"` // unix seconds
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// CompanyNews fetches headlines for a symbol in [from, to].
// Rows without a headline or timestamp are dropped rather than scored
// as empty events.
func (c *Client) CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]contracts.NewsEvent, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var items []newsItem
	if err := c.getJSON(ctx, "/company-news", params, &items); err != nil {
		return nil, err
	}

	events := make([]contracts.NewsEvent, 0, len(items))
	for _, item := range items {
		headline := strings.TrimSpace(item.Headline)
		if headline == "" || item.Datetime <= 0 {
			continue
		}

		events = append(events, contracts.NewsEvent{
			Symbol:      symbol,
			Headline:    headline,
			Category:    strings.ToLower(strings.TrimSpace(item.Category)),
			PublishedAt: time.Unix(item.Datetime, 0).UTC(),
			URL:         item.URL,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(events),
	}).Debug("Fetched company news")

	return events, nil
}
