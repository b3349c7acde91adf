// Package cart holds the process-lifetime shopping cart.
package cart

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/dinetrack/backend/internal/domain"
)

// Store maps item identifiers to accumulated cart lines. It is created
// empty at process start and lives until process exit; lines are never
// removed. Access is guarded by a mutex so Add stays an atomic
// read-modify-write even if request handling stops being serialized.
type Store struct {
	mu    sync.RWMutex
	lines map[string]*domain.CartLine
	order []string
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{lines: make(map[string]*domain.CartLine)}
}

// Add merges quantity of an item into the cart. On first add the line's
// base nutrients are taken from the extracted detail; on repeat adds the
// base is frozen — only the quantity accumulates and the total is
// recomputed as base × new quantity. A later extraction never rescales or
// replaces an already-known per-unit profile.
func (s *Store) Add(id string, quantity float64, detail domain.ItemDetail) (domain.CartLine, error) {
	if strings.TrimSpace(id) == "" {
		return domain.CartLine{}, fmt.Errorf("%w: empty item identifier", domain.ErrInvalidRequest)
	}
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return domain.CartLine{}, fmt.Errorf("%w: quantity must be a positive number, got %v", domain.ErrInvalidRequest, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[id]
	if !ok {
		line = &domain.CartLine{
			ID:            id,
			Name:          detail.Name,
			Category:      detail.Category,
			PortionSize:   detail.PortionSize,
			Quantity:      quantity,
			BaseNutrients: copyNutrients(detail.Nutrients),
		}
		s.lines[id] = line
		s.order = append(s.order, id)
	} else {
		line.Quantity += quantity
	}
	line.TotalNutrients = scaleNutrients(line.BaseNutrients, line.Quantity)

	return cloneLine(line), nil
}

// Snapshot returns every cart line in insertion order. Lines are deep
// copies; mutating them cannot break the total-equals-base-times-quantity
// invariant of the stored state.
func (s *Store) Snapshot() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CartLine, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneLine(s.lines[id]))
	}
	return out
}

// AggregateTotals sums total nutrients across all lines. A nutrient missing
// from a line contributes zero.
func (s *Store) AggregateTotals() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]float64)
	for _, line := range s.lines {
		for name, amount := range line.TotalNutrients {
			totals[name] += amount
		}
	}
	return totals
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

func copyNutrients(src map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(src))
	for name, amount := range src {
		out[name] = amount
	}
	return out
}

func scaleNutrients(base map[string]float64, quantity float64) map[string]float64 {
	out := make(map[string]float64, len(base))
	for name, amount := range base {
		out[name] = amount * quantity
	}
	return out
}

func cloneLine(line *domain.CartLine) domain.CartLine {
	out := *line
	out.BaseNutrients = copyNutrients(line.BaseNutrients)
	out.TotalNutrients = copyNutrients(line.TotalNutrients)
	return out
}
