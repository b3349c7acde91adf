package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dinetrack/backend/internal/domain"
	"github.com/dinetrack/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	menu *usecase.MenuService
}

// NewHandler creates a new HTTP handler
func NewHandler(menu *usecase.MenuService) *Handler {
	return &Handler{menu: menu}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dinetrack-backend",
		"version": "1.0.0",
	})
}

// Categories returns all distinct category paths.
func (h *Handler) Categories(c *gin.Context) {
	categories := h.menu.Categories()
	c.JSON(http.StatusOK, gin.H{
		"count":      len(categories),
		"categories": categories,
	})
}

// ItemsByCategory returns catalog entries matching the category query
// parameter. Unknown paths answer with an empty list.
func (h *Handler) ItemsByCategory(c *gin.Context) {
	path := c.Query("category")
	items, err := h.menu.ItemsByCategory(path)
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []domain.CatalogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"category": path,
		"count":    len(items),
		"items":    items,
	})
}

// SearchItems returns the ranked fuzzy matches for the q query parameter.
func (h *Handler) SearchItems(c *gin.Context) {
	query := c.Query("q")
	matches, err := h.menu.SearchItems(query)
	if err != nil {
		respondError(c, err)
		return
	}
	if matches == nil {
		matches = []domain.MatchResult{}
	}
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(matches),
		"matches": matches,
	})
}

// RecipeDetail passes a recipe detail request through to the feed, with the
// feed's own flags as query parameters.
func (h *Handler) RecipeDetail(c *gin.Context) {
	opts := domain.RecipeDetailOptions{
		IncludeIngredients: c.Query("ingredients") == "true",
		IncludeMethod:      c.Query("methods") == "true",
		IncludeLDAs:        c.Query("ldas") == "true",
		Nutrients:          c.Query("nutrients"),
		Rounding:           c.Query("rounding"),
	}

	detail, err := h.menu.RecipeDetail(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// MenuDetail passes a menu detail request through to the feed.
func (h *Handler) MenuDetail(c *gin.Context) {
	opts := domain.MenuDetailOptions{
		ExcludeSubingredients: c.Query("exclude_subingredients") == "true",
		Nutrients:             c.Query("nutrients"),
		Rounding:              c.Query("rounding"),
	}

	menu, err := h.menu.MenuDetail(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// Menus lists the feed's menus for the date query parameter, optionally
// narrowed by meal and menutype.
func (h *Handler) Menus(c *gin.Context) {
	filter := domain.MenuFilter{MenuTypeID: c.Query("menutype")}
	if meal := c.Query("meal"); meal != "" {
		id, err := strconv.Atoi(meal)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "meal must be an integer"})
			return
		}
		filter.MealID = id
	}

	menus, err := h.menu.Menus(c.Request.Context(), c.Query("date"), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

// NutrientNames lists the nutrient names the feed can report.
func (h *Handler) NutrientNames(c *gin.Context) {
	names, err := h.menu.NutrientNames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// addToCartRequest is the body of POST /cart/items.
type addToCartRequest struct {
	ID       string  `json:"id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
}

// AddToCart merges an item into the cart and returns the resulting line.
func (h *Handler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and quantity are required"})
		return
	}

	line, err := h.menu.AddToCart(c.Request.Context(), req.ID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// Cart returns every cart line in insertion order.
func (h *Handler) Cart(c *gin.Context) {
	lines := h.menu.CartLines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	c.JSON(http.StatusOK, gin.H{
		"empty": h.menu.CartEmpty(),
		"count": len(lines),
		"lines": lines,
	})
}

// CartTotals returns the cart summary: lines, aggregate nutrient totals,
// and per-category buckets.
func (h *Handler) CartTotals(c *gin.Context) {
	c.JSON(http.StatusOK, h.menu.CartSummary())
}

// respondError maps domain sentinel errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
