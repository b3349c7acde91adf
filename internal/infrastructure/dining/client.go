// Package dining is the HTTP client for the dining-service XML feed.
package dining

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dinetrack/backend/internal/domain"
	"github.com/dinetrack/backend/internal/xmltree"
)

// Client talks to the feed's /recipe, /menu, /menu/list and /nutrient/list
// endpoints and returns normalized documents.
type Client struct {
	http        *resty.Client
	rateLimiter *rate.Limiter
	log         *zap.Logger
}

// Config holds client settings.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second against the feed
	Burst     int
}

// NewClient creates a feed client with retries, a request timeout, and a
// rate limiter in front of the feed.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("User-Agent", "dinetrack/1.0")

	return &Client{
		http:        httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		log:         log,
	}
}

// RecipeDetail fetches the detail document for one recipe identifier.
func (c *Client) RecipeDetail(ctx context.Context, id string, opts domain.RecipeDetailOptions) (map[string]interface{}, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty recipe id", domain.ErrInvalidRequest)
	}

	params := map[string]string{
		"id":             id,
		"nutrients":      defaultString(opts.Nutrients, "none"),
		"roundingmethod": defaultString(opts.Rounding, "raw"),
	}
	if opts.IncludeIngredients {
		params["ingredients"] = "True"
	}
	if opts.IncludeMethod {
		params["methods"] = "text"
	}
	if opts.IncludeLDAs {
		params["ldas"] = "True"
	}

	return c.fetch(ctx, "/recipe", params)
}

// MenuDetail fetches the detail document for one menu identifier.
func (c *Client) MenuDetail(ctx context.Context, id string, opts domain.MenuDetailOptions) (map[string]interface{}, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty menu id", domain.ErrInvalidRequest)
	}

	excludeSub := "f"
	if opts.ExcludeSubingredients {
		excludeSub = "t"
	}
	params := map[string]string{
		"id":                     id,
		"exclude_subingredients": excludeSub,
		"nutrients":              defaultString(opts.Nutrients, "none"),
		"roundingmethod":         defaultString(opts.Rounding, "raw"),
	}

	return c.fetch(ctx, "/menu", params)
}

// Menus lists the menus for a date, optionally narrowed by meal and menu
// type. Dates are normalized by stripping dashes (2026-08-23 → 20260823).
func (c *Client) Menus(ctx context.Context, date string, filter domain.MenuFilter) (map[string]interface{}, error) {
	d := formatDate(date)
	if d == "" {
		return nil, fmt.Errorf("%w: empty menu date", domain.ErrInvalidRequest)
	}

	params := map[string]string{"date": d}
	if filter.MealID != 0 {
		params["meal"] = strconv.Itoa(filter.MealID)
	}
	if filter.MenuTypeID != "" {
		params["menutype"] = filter.MenuTypeID
	}

	return c.fetch(ctx, "/menu/list", params)
}

// Nutrients lists the nutrient names the feed can report.
func (c *Client) Nutrients(ctx context.Context) (map[string]interface{}, error) {
	return c.fetch(ctx, "/nutrient/list", nil)
}

// fetch executes one GET against the feed and normalizes the XML response.
// Transport failures, non-200 statuses, and unparsable bodies all come back
// as ErrUpstreamUnavailable.
func (c *Client) fetch(ctx context.Context, path string, params map[string]string) (map[string]interface{}, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		c.log.Warn("feed request failed",
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.Warn("feed returned non-OK status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode())
	}

	root, err := xmltree.Parse(resp.Body())
	if err != nil {
		c.log.Warn("feed response not parsable",
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	return xmltree.Document(root), nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func formatDate(date string) string {
	return strings.ReplaceAll(strings.TrimSpace(date), "-", "")
}
