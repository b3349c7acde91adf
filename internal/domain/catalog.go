package domain

// CatalogEntry is one food item from the catalog snapshot. Entries are
// immutable once built; identity is the raw identifier string, which is
// not guaranteed unique across re-imports.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	PortionSize string `json:"portionSize"`
}

// MatchResult pairs a catalog entry with its similarity score in [0,1].
type MatchResult struct {
	Entry CatalogEntry `json:"entry"`
	Score float64      `json:"score"`
}
