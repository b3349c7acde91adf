package fuzzy

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      float64
	}{
		{
			name:      "identical strings score 1.0",
			query:     "beef stew",
			candidate: "beef stew",
			want:      1.0,
		},
		{
			name:      "case and surrounding whitespace are ignored",
			query:     "  Beef Stew ",
			candidate: "BEEF STEW",
			want:      1.0,
		},
		{
			name:      "decoration characters on the candidate are stripped",
			query:     "beef stew",
			candidate: "*Beef Stew*",
			want:      1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.query, tt.candidate)
			if got != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.query, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestScore_bounds(t *testing.T) {
	pairs := [][2]string{
		{"pizza", "Beef Stew"},
		{"gluten free roll", "Gluten Free Roll, Hamburger Bun"},
		{"x", "completely different"},
		{"a", "a"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestScore_partialMatchRanksAboveMismatch(t *testing.T) {
	close := Score("beef stew", "Beef Stew with Vegetables")
	far := Score("beef stew", "Lemonade")
	if close <= far {
		t.Errorf("close match %v should outscore far match %v", close, far)
	}
}

func TestScore_deterministic(t *testing.T) {
	first := Score("chicken parm", "Chicken Parmesan")
	for i := 0; i < 10; i++ {
		if got := Score("chicken parm", "Chicken Parmesan"); got != first {
			t.Fatalf("Score not deterministic: %v then %v", first, got)
		}
	}
}
