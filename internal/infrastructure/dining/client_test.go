package dining

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dinetrack/backend/internal/domain"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, RateLimit: 1000, Burst: 1000}, zap.NewNop())
}

func TestNewClient_defaults(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://feed.example.com/hsws/"}, zap.NewNop())

	assert.NotNil(t, client.http)
	assert.NotNil(t, client.rateLimiter)
}

func TestRecipeDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipe", r.URL.Path)
		assert.Equal(t, "1032", r.URL.Query().Get("id"))
		assert.Equal(t, "all", r.URL.Query().Get("nutrients"))
		assert.Equal(t, "raw", r.URL.Query().Get("roundingmethod"))
		assert.Equal(t, "True", r.URL.Query().Get("ingredients"))
		assert.Equal(t, "text", r.URL.Query().Get("methods"))
		assert.Equal(t, "", r.URL.Query().Get("ldas"))

		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(`<RECIPE name="Beef Stew" category="Entrees"><NUTRIENTS calories="100"/></RECIPE>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	doc, err := client.RecipeDetail(context.Background(), "1032", domain.RecipeDetailOptions{
		IncludeIngredients: true,
		IncludeMethod:      true,
		Nutrients:          "all",
	})

	require.NoError(t, err)
	recipe, ok := doc["RECIPE"].(map[string]interface{})
	require.True(t, ok, "expected RECIPE record, got %#v", doc)
	assert.Equal(t, "Beef Stew", recipe["name"])
	nutrients, ok := recipe["NUTRIENTS"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "100", nutrients["calories"])
}

func TestRecipeDetail_emptyID(t *testing.T) {
	client := newTestClient("http://feed.invalid")
	_, err := client.RecipeDetail(context.Background(), "  ", domain.RecipeDetailOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestRecipeDetail_serverError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.RecipeDetail(context.Background(), "1032", domain.RecipeDetailOptions{})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestRecipeDetail_unparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "xml"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.RecipeDetail(context.Background(), "1032", domain.RecipeDetailOptions{})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestMenuDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu", r.URL.Path)
		assert.Equal(t, "77", r.URL.Query().Get("id"))
		assert.Equal(t, "t", r.URL.Query().Get("exclude_subingredients"))
		assert.Equal(t, "none", r.URL.Query().Get("nutrients"))

		w.Write([]byte(`<MENU id="77" name="Lunch"/>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	doc, err := client.MenuDetail(context.Background(), "77", domain.MenuDetailOptions{
		ExcludeSubingredients: true,
	})

	require.NoError(t, err)
	menu, ok := doc["MENU"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Lunch", menu["name"])
}

func TestMenus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu/list", r.URL.Path)
		assert.Equal(t, "20260823", r.URL.Query().Get("date"), "dashes stripped from date")
		assert.Equal(t, "2", r.URL.Query().Get("meal"))
		assert.Equal(t, "", r.URL.Query().Get("menutype"), "unset filter omitted")

		w.Write([]byte(`<MENUS><MENU id="1"/><MENU id="2"/></MENUS>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	doc, err := client.Menus(context.Background(), "2026-08-23", domain.MenuFilter{MealID: 2})

	require.NoError(t, err)
	menus, ok := doc["MENUS"].(map[string]interface{})
	require.True(t, ok)
	list, ok := menus["MENU"].([]interface{})
	require.True(t, ok, "repeated MENU tags should normalize to a list")
	assert.Len(t, list, 2)
}

func TestMenus_emptyDate(t *testing.T) {
	client := newTestClient("http://feed.invalid")
	_, err := client.Menus(context.Background(), "  ", domain.MenuFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestNutrients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nutrient/list", r.URL.Path)
		w.Write([]byte(`<NUTRIENTS>Calories,Protein,Fat</NUTRIENTS>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	doc, err := client.Nutrients(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Calories,Protein,Fat", doc["NUTRIENTS"])
}
