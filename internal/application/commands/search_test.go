package commands

import (
	"context"
	"testing"

	"shoebox/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Sunset",
			query:     "Sunset",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Sunset over the bay",
			query:     "Sunset",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "substring match",
			target:    "Late Sunset",
			query:     "Sunset",
			wantScore: 100, // contains only
		},
		{
			name:    "fuzzy match all chars at start",
			target:  "Sunset",
			query:   "sun",
			wantMin: 100, // should be high due to prefix
		},
		{
			name:      "no match",
			target:    "Sunset",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Sunset",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "SUNSET",
			query:   "sunset",
			wantMin: 100,
		},
		{
			name:    "file name match",
			target:  "IMG_2043.jpg",
			query:   "2043",
			wantMin: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	// Test that better matches score higher
	query := "sunset"

	exactScore := FuzzyScore("sunset", query)          // exact + prefix = 150
	prefixScore := FuzzyScore("sunset at dusk", query) // contains + prefix = 150
	containsScore := FuzzyScore("late sunset", query)  // contains only = 100
	fuzzyScore := FuzzyScore("s.u.n.s.e.t", query)     // fuzzy match only

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func TestFuzzySort(t *testing.T) {
	photos := []domain.Photo{
		{Path: "IMG_0001.jpg", Label: "Random Name"},
		{Path: "IMG_0002.jpg", Label: "Sunset over the bay"},
		{Path: "IMG_0003.jpg", Label: "Cooking"},
		{Path: "IMG_0004.jpg", Label: "Late Sunset"},
	}

	sorted := FuzzySort(photos, "sunset")

	if len(sorted) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(sorted))
	}
	// The prefix match outranks the plain substring match.
	if sorted[0].Label != "Sunset over the bay" {
		t.Errorf("expected prefix match first, got %q", sorted[0].Label)
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Score > sorted[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				sorted[i].Score, sorted[i-1].Score, i)
		}
	}
}

func TestFuzzySort_MatchesPathToo(t *testing.T) {
	photos := []domain.Photo{
		{Path: "DSC_2043.jpg", Label: "Mountains"},
	}

	sorted := FuzzySort(photos, "2043")
	if len(sorted) != 1 {
		t.Fatalf("expected a path match, got %d results", len(sorted))
	}
}

func TestSearchPhotos_ShortQueryReturnsNothing(t *testing.T) {
	photos := []domain.Photo{{Path: "a.jpg", Label: "Alpha"}}

	results, err := NewSearchPhotosCommand(photos, "a").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if results != nil {
		t.Errorf("single-character queries must return nothing, got %v", results)
	}
}

func TestSearchPhotos_Execute(t *testing.T) {
	photos := []domain.Photo{
		{Path: "a.jpg", Label: "Beach day"},
		{Path: "b.jpg", Label: "Mountains"},
	}

	results, err := NewSearchPhotosCommand(photos, "beach").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(results) != 1 || results[0].Label != "Beach day" {
		t.Errorf("unexpected results: %v", results)
	}
}
