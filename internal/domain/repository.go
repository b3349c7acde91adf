package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RecipeDetailOptions mirrors the feed's /recipe query flags.
type RecipeDetailOptions struct {
	IncludeIngredients bool
	IncludeMethod      bool
	IncludeLDAs        bool
	Nutrients          string // nutrient mode, e.g. "none", "all"
	Rounding           string // rounding method, e.g. "raw"
}

// MenuDetailOptions mirrors the feed's /menu query flags.
type MenuDetailOptions struct {
	ExcludeSubingredients bool
	Nutrients             string
	Rounding              string
}

// MenuFilter narrows a menu listing to a meal and menu type.
type MenuFilter struct {
	MealID     int    // 0 means unset
	MenuTypeID string // empty means unset
}

// FeedClient defines the interface for the dining feed. Every method returns
// the normalized document as {rootTag: record}; transport and status
// failures come back as ErrUpstreamUnavailable so callers can degrade.
type FeedClient interface {
	RecipeDetail(ctx context.Context, id string, opts RecipeDetailOptions) (map[string]interface{}, error)
	MenuDetail(ctx context.Context, id string, opts MenuDetailOptions) (map[string]interface{}, error)
	Menus(ctx context.Context, date string, filter MenuFilter) (map[string]interface{}, error)
	Nutrients(ctx context.Context) (map[string]interface{}, error)
}
