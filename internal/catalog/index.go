// Package catalog holds the flattened snapshot of known food items and
// answers category and name lookups against it.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dinetrack/backend/internal/domain"
	"github.com/dinetrack/backend/internal/fuzzy"
	"github.com/dinetrack/backend/internal/xmltree"
)

const (
	// itemLabel is the tag each catalog item is delivered under.
	itemLabel = "RECIPE"

	// scoreFloor is the minimum similarity for a ranked search result.
	scoreFloor = 0.3

	// maxMatches caps ranked search output.
	maxMatches = 5
)

// Index is an immutable catalog snapshot built once from a normalized
// source tree.
type Index struct {
	entries []domain.CatalogEntry
	byID    map[string]domain.CatalogEntry
}

// NewIndex flattens every item node under root into catalog entries,
// preserving source order. Item fields come from the normalized record:
// attributes for id/category/portion size, leftover text for the name.
func NewIndex(root *xmltree.Node) *Index {
	ix := &Index{byID: make(map[string]domain.CatalogEntry)}
	if root == nil {
		return ix
	}

	for _, child := range root.Children {
		if child.Label != itemLabel {
			continue
		}
		entry := entryFromRecord(xmltree.Normalize(child))
		ix.entries = append(ix.entries, entry)
		if entry.ID != "" {
			if _, ok := ix.byID[entry.ID]; !ok {
				// First occurrence wins for id lookup; duplicates stay in
				// the ordered entry list.
				ix.byID[entry.ID] = entry
			}
		}
	}
	return ix
}

func entryFromRecord(rec interface{}) domain.CatalogEntry {
	switch v := rec.(type) {
	case string:
		// Item with no attributes normalizes to its bare name.
		return domain.CatalogEntry{Name: v}
	case map[string]interface{}:
		return domain.CatalogEntry{
			ID:          stringField(v, "id"),
			Name:        stringField(v, xmltree.ValueKey),
			Category:    stringField(v, "category"),
			PortionSize: stringField(v, "portionsize"),
		}
	default:
		return domain.CatalogEntry{}
	}
}

func stringField(rec map[string]interface{}, key string) string {
	if s, ok := rec[key].(string); ok {
		return s
	}
	return ""
}

// Len reports the number of catalog entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// EntryByID resolves an identifier to its catalog entry.
func (ix *Index) EntryByID(id string) (domain.CatalogEntry, bool) {
	entry, ok := ix.byID[id]
	return entry, ok
}

// Categories returns the sorted distinct category paths, skipping entries
// with no category.
func (ix *Index) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range ix.entries {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	sort.Strings(out)
	return out
}

// ItemsByCategory returns every entry whose category matches the query
// path, in source order and without dedup. A category matches when the
// query is a case-insensitive substring of it or it starts with the query;
// the prefix test is subsumed by the substring test but both are kept to
// match the feed's documented matching rules exactly.
func (ix *Index) ItemsByCategory(path string) []domain.CatalogEntry {
	q := strings.ToLower(path)
	var out []domain.CatalogEntry
	for _, e := range ix.entries {
		cat := strings.ToLower(e.Category)
		if strings.Contains(cat, q) || strings.HasPrefix(cat, q) {
			out = append(out, e)
		}
	}
	return out
}

// FindByName ranks catalog entries against a free-text query. Entries with
// empty names are never scored. Results above the score floor are returned
// in descending score order (ties keep catalog order), capped at
// maxMatches; when nothing clears the floor the single best entry is
// returned regardless of score, so output is non-empty whenever any entry
// has a name.
func (ix *Index) FindByName(query string) ([]domain.MatchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidRequest)
	}

	var scored []domain.MatchResult
	for _, e := range ix.entries {
		if e.Name == "" {
			continue
		}
		scored = append(scored, domain.MatchResult{Entry: e, Score: fuzzy.Score(q, e.Name)})
	}
	if len(scored) == 0 {
		return nil, nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	top := make([]domain.MatchResult, 0, maxMatches)
	for _, m := range scored {
		if m.Score <= scoreFloor {
			break
		}
		top = append(top, m)
		if len(top) == maxMatches {
			break
		}
	}
	if len(top) == 0 {
		top = append(top, scored[0])
	}
	return top, nil
}
