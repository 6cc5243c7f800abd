// Package yahoo scrapes headline listings as a fallback when the
// primary news provider returns nothing for a symbol.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ekurt/newspulse/internal/contracts"
	"github.com/ekurt/newspulse/pkg/config"
	"github.com/ekurt/newspulse/pkg/httputil"
	"github.com/ekurt/newspulse/pkg/logger"
)

// Client scrapes Yahoo Finance news pages
// SSOT: all Yahoo Finance access goes through this client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a Yahoo Finance scraper client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.Yahoo.BaseURL,
	}
}

// Headlines scrapes the news listing for a symbol.
// Scraped items carry no publication timestamp, so they are stamped with
// the scrape time; dedup still works because the headline text is part
// of the event key.
func (c *Client) Headlines(ctx context.Context, symbol string, limit int) ([]contracts.NewsEvent, error) {
	pageURL := fmt.Sprintf("%s/quote/%s/news", c.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	events := c.parseHeadlines(doc, symbol, limit, time.Now().UTC())

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(events),
	}).Debug("Scraped fallback headlines")

	return events, nil
}

// parseHeadlines extracts headline anchors from the news listing
func (c *Client) parseHeadlines(doc *goquery.Document, symbol string, limit int, now time.Time) []contracts.NewsEvent {
	var events []contracts.NewsEvent
	seen := make(map[string]struct{})

	doc.Find("h3 a, li.stream-item a.subtle-link").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		headline := strings.TrimSpace(sel.Text())
		if headline == "" {
			return true
		}
		if _, dup := seen[strings.ToLower(headline)]; dup {
			return true
		}
		seen[strings.ToLower(headline)] = struct{}{}

		href, _ := sel.Attr("href")
		if strings.HasPrefix(href, "/") {
			href = c.baseURL + href
		}

		events = append(events, contracts.NewsEvent{
			Symbol:      symbol,
			Headline:    headline,
			PublishedAt: now,
			URL:         href,
		})

		return len(events) < limit
	})

	return events
}
