package domain

// ItemDetail is the extracted per-portion profile for one item, produced
// from an upstream detail record. Nutrients may be empty when the feed
// returned a names-only listing or the extraction degraded.
type ItemDetail struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	PortionSize string             `json:"portionSize"`
	Nutrients   map[string]float64 `json:"nutrients"`
}
