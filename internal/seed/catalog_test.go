package seed_test

import (
	"testing"

	"ppif-diagnostic/internal/domain"
	"ppif-diagnostic/internal/seed"
)

func TestCatalogInvariants(t *testing.T) {
	catalog := seed.Catalog()
	if len(catalog.Questions) == 0 {
		t.Fatalf("catalog must not be empty")
	}

	seen := map[string]bool{}
	perDimension := map[domain.Dimension]int{}
	criticals := map[domain.Dimension]int{}

	for _, q := range catalog.Questions {
		if seen[q.ID] {
			t.Fatalf("duplicate question ID %s", q.ID)
		}
		seen[q.ID] = true

		if !q.Dimension.IsValid() {
			t.Fatalf("question %s: invalid dimension %q", q.ID, q.Dimension)
		}
		if !q.Type.IsValid() {
			t.Fatalf("question %s: invalid type %q", q.ID, q.Type)
		}
		if q.Weight <= 0 {
			t.Fatalf("question %s: weight must be positive, got %.2f", q.ID, q.Weight)
		}
		for value, score := range q.MaturityMapping {
			if score < 0 || score > 5 {
				t.Fatalf("question %s: mapping for %q out of 0-5 range: %.1f", q.ID, value, score)
			}
		}
		if q.Type == domain.QuestionNumeric && q.Numeric == nil {
			t.Fatalf("question %s: numeric question without a scale", q.ID)
		}
		if q.Numeric != nil {
			for _, band := range q.Numeric.Bands {
				if band.Score < 0 || band.Score > 5 {
					t.Fatalf("question %s: band score out of range: %.1f", q.ID, band.Score)
				}
			}
		}
		perDimension[q.Dimension]++
		if q.Critical {
			criticals[q.Dimension]++
		}
	}

	for _, dim := range domain.Dimensions() {
		if perDimension[dim] == 0 {
			t.Fatalf("dimension %s has no questions", dim)
		}
	}
	// Every dimension carries at least one critical blocker question.
	for _, dim := range domain.Dimensions() {
		if criticals[dim] == 0 {
			t.Fatalf("dimension %s has no critical question", dim)
		}
	}
}

func TestNumericBandsAreMonotonic(t *testing.T) {
	for _, q := range seed.Catalog().Questions {
		if q.Numeric == nil {
			continue
		}
		bands := q.Numeric.Bands
		for i := 1; i < len(bands); i++ {
			if bands[i].Bound <= bands[i-1].Bound {
				t.Fatalf("question %s: bounds not strictly ascending at index %d", q.ID, i)
			}
			if q.Numeric.LowerIsBetter {
				if bands[i].Score > bands[i-1].Score {
					t.Fatalf("question %s: lower-is-better scale must not increase with the bound", q.ID)
				}
			} else if bands[i].Score < bands[i-1].Score {
				t.Fatalf("question %s: higher-is-better scale must not decrease with the bound", q.ID)
			}
		}
	}
}
