package commands

import (
	"context"
	"sort"
	"strings"

	"archeologist/internal/application"
	"archeologist/internal/domain"
)

// SearchResult wraps a matched node with a relevance score
type SearchResult struct {
	Node  *domain.Node
	Score int
}

// SearchCommand searches node names
type SearchCommand struct {
	graph  *domain.Graph
	Query  string
	Ranked bool
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(g *domain.Graph, query string) *SearchCommand {
	return &SearchCommand{
		graph: g,
		Query: query,
	}
}

// Execute runs the search. Matches keep store order unless Ranked is set,
// in which case they are sorted by FuzzyScore.
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if strings.TrimSpace(c.Query) == "" {
		return nil, application.ErrInvalidQuery
	}

	found := domain.NewSearchIndex(c.graph).Search(c.Query)
	results := make([]SearchResult, 0, len(found.Nodes))
	for _, n := range found.Nodes {
		results = append(results, SearchResult{Node: n, Score: FuzzyScore(n.Name, c.Query)})
	}

	if c.Ranked {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}
	return results, nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Substring matches rank highest, prefixes above all
	if strings.Contains(target, query) {
		score := 100
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
			if i > 0 && isWordBoundary(target[i-1]) {
				score += 10
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

// isWordBoundary reports separators in identifiers and module paths
func isWordBoundary(b byte) bool {
	switch b {
	case '_', '.', ':', '/', '-', ' ':
		return true
	}
	return false
}
