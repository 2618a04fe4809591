package commands

import (
	"context"
	"sort"
	"strings"

	"shoebox/internal/domain"
)

// SearchResult wraps a matched photo with a relevance score
type SearchResult struct {
	domain.Photo
	Score int
}

// SearchPhotosCommand searches indexed photos with fuzzy matching over
// labels and file names
type SearchPhotosCommand struct {
	Photos []domain.Photo
	Query  string
}

// NewSearchPhotosCommand creates a new SearchPhotosCommand
func NewSearchPhotosCommand(photos []domain.Photo, query string) *SearchPhotosCommand {
	return &SearchPhotosCommand{
		Photos: photos,
		Query:  query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchPhotosCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	return FuzzySort(c.Photos, c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '.' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort sorts photos by relevance to the query, dropping non-matches
func FuzzySort(photos []domain.Photo, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(photos))

	for _, p := range photos {
		best := max(FuzzyScore(p.Label, query), FuzzyScore(p.Path, query))

		if best > 0 {
			scored = append(scored, SearchResult{
				Photo: p,
				Score: best,
			})
		}
	}

	// Sort by score descending
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
