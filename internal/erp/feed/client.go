package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
)

// Client fetches and parses the ledger feed, caching the parse result until
// it is invalidated. A sync pass always invalidates first so each run
// reflects the latest feed content; the reconciliation view reuses the cache.
// The cache is an injected concern of the client (not package state) so tests
// control freshness directly.
type Client struct {
	source Source
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	cached *domain.ParsedFeed
}

// NewClient creates a feed client over the given source.
func NewClient(source Source, cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{source: source, cfg: cfg, logger: logger}
}

// Fetch invalidates the cache and parses the feed fresh. Sync passes use
// this entry point.
func (c *Client) Fetch(ctx context.Context) (*domain.ParsedFeed, error) {
	c.Invalidate()
	return c.Parsed(ctx)
}

// Parsed returns the cached parse result, parsing the feed on a cache miss.
func (c *Client) Parsed(ctx context.Context) (*domain.ParsedFeed, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil {
		return c.cached, nil
	}
	raw, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger feed: %w", err)
	}
	c.cached = Parse(raw, c.cfg, c.logger)
	c.logger.Debug("Parsed ledger feed",
		slog.Int("customers", len(c.cached.Customers)),
		slog.Int("invoices", len(c.cached.Invoices)),
		slog.Int("offers", len(c.cached.Offers)))
	return c.cached, nil
}

// Invalidate discards the cached parse result.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// InvoicesForPeriod filters the ledger invoice view to one customer code and
// one calendar month ("YYYY-MM"). The whole month is included; customer and
// user ids on the returned invoices are left blank for the caller to resolve.
func (c *Client) InvoicesForPeriod(ctx context.Context, customerCode string, period string) ([]domain.Invoice, error) {
	periodStart, err := time.Parse("2006-01", period)
	if err != nil {
		return nil, fmt.Errorf("invalid period %q: %w", period, apperrors.ErrValidation)
	}

	parsed, err := c.Parsed(ctx)
	if err != nil {
		return nil, err
	}

	invoices := []domain.Invoice{}
	for _, inv := range parsed.Invoices {
		if inv.CustomerCode != customerCode {
			continue
		}
		if inv.Date.Year() != periodStart.Year() || inv.Date.Month() != periodStart.Month() {
			continue
		}
		invoices = append(invoices, domain.Invoice{
			InvoiceID:   inv.InvoiceID,
			Date:        inv.Date,
			TotalAmount: inv.TotalAmount,
			Items:       inv.Items,
			Description: inv.Description,
		})
	}
	return invoices, nil
}
