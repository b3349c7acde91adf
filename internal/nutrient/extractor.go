// Package nutrient extracts per-portion nutrient profiles from normalized
// dining-feed detail documents.
package nutrient

import (
	"strconv"
	"strings"

	"github.com/dinetrack/backend/internal/domain"
	"github.com/dinetrack/backend/internal/xmltree"
)

// The feed answers a detail request in a small set of layouts. Classification
// happens once, up front, so extraction pattern-matches over a closed set
// instead of probing shapes along the way.
type shape int

const (
	shapeDirect      shape = iota // RECIPE holds the detail record
	shapeWrapped                  // RECIPES wraps the detail record
	shapeUnavailable              // status/error document or unknown layout
)

type resolved struct {
	kind   shape
	detail map[string]interface{}
}

// nutrientKeys are the field names a detail record may carry its nutrient
// collection under, probed in order.
var nutrientKeys = []string{"NUTRIENTS", "NUTRIENT", "nutrients"}

// Extract pulls the display fields and the flat nutrient-name → amount map
// out of a normalized detail document. It returns ErrUpstreamUnavailable
// when the document carries no detail record; callers fall back to
// catalog-sourced fields with no nutrients rather than failing the
// operation.
func Extract(doc map[string]interface{}) (*domain.ItemDetail, error) {
	res := classify(doc)
	if res.kind == shapeUnavailable {
		return nil, domain.ErrUpstreamUnavailable
	}

	d := res.detail
	detail := &domain.ItemDetail{
		Name:        stringField(d, "name"),
		Category:    stringField(d, "category"),
		PortionSize: stringField(d, "portionsize"),
		Nutrients:   extractNutrients(d),
	}
	if detail.Name == "" {
		// Items delivered as element text normalize under the value key.
		detail.Name = stringField(d, xmltree.ValueKey)
	}
	return detail, nil
}

// classify resolves which of the known layouts the document is in.
func classify(doc map[string]interface{}) resolved {
	if doc == nil {
		return resolved{kind: shapeUnavailable}
	}

	if d := recordAt(doc, "RECIPE"); d != nil {
		return resolved{kind: shapeDirect, detail: d}
	}

	if wrapped, ok := doc["RECIPES"]; ok {
		w, ok := wrapped.(map[string]interface{})
		if !ok {
			return resolved{kind: shapeUnavailable}
		}
		if d := recordAt(w, "RECIPE"); d != nil {
			return resolved{kind: shapeWrapped, detail: d}
		}
		if looksLikeDetail(w) {
			return resolved{kind: shapeWrapped, detail: w}
		}
		return resolved{kind: shapeUnavailable}
	}

	// STATUS documents and anything else are failures, not details.
	return resolved{kind: shapeUnavailable}
}

// recordAt returns the record under key, unwrapping a repeated-tag list to
// its first record.
func recordAt(rec map[string]interface{}, key string) map[string]interface{} {
	switch v := rec[key].(type) {
	case map[string]interface{}:
		return v
	case []interface{}:
		for _, item := range v {
			if d, ok := item.(map[string]interface{}); ok {
				return d
			}
		}
	}
	return nil
}

func looksLikeDetail(rec map[string]interface{}) bool {
	for _, key := range []string{"name", "id", "category", "portionsize", "NUTRIENTS", "NUTRIENT"} {
		if _, ok := rec[key]; ok {
			return true
		}
	}
	return false
}

// extractNutrients locates the detail's nutrient collection and flattens it.
// Absent collection means an empty map, never an error.
func extractNutrients(detail map[string]interface{}) map[string]float64 {
	out := make(map[string]float64)
	for _, key := range nutrientKeys {
		raw, ok := detail[key]
		if !ok {
			continue
		}
		collect(raw, key, out)
		break
	}
	return out
}

// collect flattens one nutrient collection into out. The feed uses three
// layouts: a flat name → amount mapping, an ordered list of records with
// name and value fields, and a bare string listing available nutrient names
// (names only, no amounts — contributes nothing).
func collect(raw interface{}, label string, out map[string]float64) {
	switch v := raw.(type) {
	case string:
		// Names-only metadata listing.
	case []interface{}:
		for _, item := range v {
			collect(item, label, out)
		}
	case map[string]interface{}:
		if _, named := v["name"]; named {
			if name := stringField(v, "name"); name != "" {
				out[name] = parseAmount(v[xmltree.ValueKey])
			}
			return
		}
		for key, val := range v {
			// The marker key echoing the collection's own label and the
			// reserved text key are structure, not nutrients.
			if key == label || key == xmltree.ValueKey {
				continue
			}
			switch inner := val.(type) {
			case []interface{}, map[string]interface{}:
				collect(inner, key, out)
			default:
				out[key] = parseAmount(val)
			}
		}
	}
}

func stringField(rec map[string]interface{}, key string) string {
	if s, ok := rec[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// parseAmount parses a nutrient amount, defaulting unparsable or empty
// values to zero.
func parseAmount(v interface{}) float64 {
	switch n := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	case float64:
		return n
	default:
		return 0
	}
}
