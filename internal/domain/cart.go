package domain

// CartLine is one accumulated item in the cart. TotalNutrients always
// equals BaseNutrients scaled by Quantity; BaseNutrients is frozen at the
// first successful extraction for the identifier.
type CartLine struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Category       string             `json:"category"`
	PortionSize    string             `json:"portionSize"`
	Quantity       float64            `json:"quantity"`
	BaseNutrients  map[string]float64 `json:"baseNutrients"`
	TotalNutrients map[string]float64 `json:"totalNutrients"`
}

// CartSummary is the display reduction of the cart: every line in insertion
// order, summed nutrient totals, and the same totals bucketed by category.
type CartSummary struct {
	Lines          []CartLine                    `json:"lines"`
	Totals         map[string]float64            `json:"totals"`
	CategoryTotals map[string]map[string]float64 `json:"categoryTotals"`
}
