package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dinetrack/backend/internal/cart"
	"github.com/dinetrack/backend/internal/catalog"
	"github.com/dinetrack/backend/internal/domain"
	"github.com/dinetrack/backend/internal/nutrient"
)

// MenuServiceConfig holds configuration for the menu service.
type MenuServiceConfig struct {
	DetailCacheTTL time.Duration
	NutrientMode   string // nutrient mode requested for cart detail fetches
	RoundingMethod string
	SearchDebug    bool // log ranked search outcomes at debug level
}

// MenuService answers catalog queries and runs the cart flow: resolve an
// identifier, fetch its detail upstream, extract nutrients, merge into the
// cart. A missing upstream detail never blocks adding an item; the line
// falls back to catalog fields with no nutrients.
type MenuService struct {
	index          *catalog.Index
	feed           domain.FeedClient
	cart           *cart.Store
	cache          domain.CacheRepository
	log            *zap.Logger
	detailCacheTTL time.Duration
	nutrientMode   string
	roundingMethod string
	searchDebug    bool
}

// NewMenuService creates a menu service with dependencies.
func NewMenuService(
	index *catalog.Index,
	feed domain.FeedClient,
	cartStore *cart.Store,
	cacheRepo domain.CacheRepository,
	log *zap.Logger,
	config MenuServiceConfig,
) *MenuService {
	ttl := config.DetailCacheTTL
	if ttl == 0 {
		ttl = 6 * time.Hour
	}

	return &MenuService{
		index:          index,
		feed:           feed,
		cart:           cartStore,
		cache:          cacheRepo,
		log:            log,
		detailCacheTTL: ttl,
		nutrientMode:   defaultString(config.NutrientMode, "all"),
		roundingMethod: defaultString(config.RoundingMethod, "raw"),
		searchDebug:    config.SearchDebug,
	}
}

// Categories returns the sorted distinct category paths.
func (s *MenuService) Categories() []string {
	return s.index.Categories()
}

// ItemsByCategory returns catalog entries matching a category path. An
// unknown path yields an empty list, not an error; an empty path is
// rejected.
func (s *MenuService) ItemsByCategory(path string) ([]domain.CatalogEntry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty category path", domain.ErrInvalidRequest)
	}
	return s.index.ItemsByCategory(path), nil
}

// SearchItems returns the ranked fuzzy matches for a free-text query.
func (s *MenuService) SearchItems(query string) ([]domain.MatchResult, error) {
	matches, err := s.index.FindByName(query)
	if err != nil {
		return nil, err
	}
	if s.searchDebug {
		fields := []zap.Field{
			zap.String("query", query),
			zap.Int("matches", len(matches)),
		}
		if len(matches) > 0 {
			fields = append(fields,
				zap.String("best", matches[0].Entry.Name),
				zap.Float64("score", matches[0].Score))
		}
		s.log.Debug("search ranked", fields...)
	}
	return matches, nil
}

// AddToCart resolves an identifier against the catalog and merges quantity
// of it into the cart. Unknown identifiers are surfaced to the caller;
// upstream detail failures are absorbed and the line uses catalog fields
// with no nutrients.
func (s *MenuService) AddToCart(ctx context.Context, id string, quantity float64) (domain.CartLine, error) {
	if strings.TrimSpace(id) == "" {
		return domain.CartLine{}, fmt.Errorf("%w: empty item identifier", domain.ErrInvalidRequest)
	}

	entry, ok := s.index.EntryByID(id)
	if !ok {
		return domain.CartLine{}, fmt.Errorf("%w: %q", domain.ErrItemNotFound, id)
	}

	detail, ok := s.lookupDetail(ctx, id)
	if !ok {
		detail = domain.ItemDetail{
			Name:        entry.Name,
			Category:    entry.Category,
			PortionSize: entry.PortionSize,
			Nutrients:   map[string]float64{},
		}
	} else {
		// Feed details can omit display fields the catalog has.
		if detail.Name == "" {
			detail.Name = entry.Name
		}
		if detail.Category == "" {
			detail.Category = entry.Category
		}
		if detail.PortionSize == "" {
			detail.PortionSize = entry.PortionSize
		}
	}

	return s.cart.Add(id, quantity, detail)
}

// lookupDetail returns the extracted detail for an identifier, or false when
// the feed or the extraction failed. Successful extractions are cached. The
// returned detail is always a copy; the cached object is shared across
// concurrent requests and must never be written through.
func (s *MenuService) lookupDetail(ctx context.Context, id string) (domain.ItemDetail, bool) {
	key := "detail:" + id
	if value, err := s.cache.Get(ctx, key); err == nil {
		if detail, ok := value.(*domain.ItemDetail); ok {
			return cloneDetail(detail), true
		}
	}

	doc, err := s.feed.RecipeDetail(ctx, id, domain.RecipeDetailOptions{
		Nutrients: s.nutrientMode,
		Rounding:  s.roundingMethod,
	})
	if err != nil {
		s.log.Warn("recipe detail fetch failed, using catalog fallback",
			zap.String("id", id),
			zap.Error(err))
		return domain.ItemDetail{}, false
	}

	detail, err := nutrient.Extract(doc)
	if err != nil {
		s.log.Warn("recipe detail not extractable, using catalog fallback",
			zap.String("id", id),
			zap.Error(err))
		return domain.ItemDetail{}, false
	}

	if err := s.cache.Set(ctx, key, detail, s.detailCacheTTL); err != nil {
		s.log.Warn("detail cache write failed", zap.String("id", id), zap.Error(err))
	}
	return cloneDetail(detail), true
}

func cloneDetail(d *domain.ItemDetail) domain.ItemDetail {
	out := *d
	out.Nutrients = make(map[string]float64, len(d.Nutrients))
	for name, amount := range d.Nutrients {
		out.Nutrients[name] = amount
	}
	return out
}

// CartLines returns the cart lines in insertion order.
func (s *MenuService) CartLines() []domain.CartLine {
	return s.cart.Snapshot()
}

// CartEmpty reports whether the cart has no lines.
func (s *MenuService) CartEmpty() bool {
	return s.cart.IsEmpty()
}

// CartSummary reduces the cart to its display form: lines, summed nutrient
// totals, and the same totals bucketed by category.
func (s *MenuService) CartSummary() domain.CartSummary {
	lines := s.cart.Snapshot()

	byCategory := make(map[string]map[string]float64)
	for _, line := range lines {
		bucket, ok := byCategory[line.Category]
		if !ok {
			bucket = make(map[string]float64)
			byCategory[line.Category] = bucket
		}
		for name, amount := range line.TotalNutrients {
			bucket[name] += amount
		}
	}

	return domain.CartSummary{
		Lines:          lines,
		Totals:         s.cart.AggregateTotals(),
		CategoryTotals: byCategory,
	}
}

// RecipeDetail passes a detail request through to the feed.
func (s *MenuService) RecipeDetail(ctx context.Context, id string, opts domain.RecipeDetailOptions) (map[string]interface{}, error) {
	return s.feed.RecipeDetail(ctx, id, opts)
}

// MenuDetail passes a menu detail request through to the feed.
func (s *MenuService) MenuDetail(ctx context.Context, id string, opts domain.MenuDetailOptions) (map[string]interface{}, error) {
	return s.feed.MenuDetail(ctx, id, opts)
}

// Menus passes a menu listing request through to the feed.
func (s *MenuService) Menus(ctx context.Context, date string, filter domain.MenuFilter) (map[string]interface{}, error) {
	return s.feed.Menus(ctx, date, filter)
}

// NutrientNames passes a nutrient listing request through to the feed.
func (s *MenuService) NutrientNames(ctx context.Context) (map[string]interface{}, error) {
	return s.feed.Nutrients(ctx)
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
