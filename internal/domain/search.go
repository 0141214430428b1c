package domain

import "strings"

// MaxSearchResults caps the number of nodes a search returns
const MaxSearchResults = 5

// SearchResults is the outcome of a name search. Visible is false when there
// was no query at all, which is distinct from a query with zero matches.
type SearchResults struct {
	Query   string
	Nodes   []*Node
	Visible bool
}

// Empty reports whether a visible search found nothing
func (r SearchResults) Empty() bool {
	return r.Visible && len(r.Nodes) == 0
}

// SearchIndex matches queries against node names
type SearchIndex struct {
	graph *Graph
	limit int
}

// NewSearchIndex creates a search index over the graph
func NewSearchIndex(g *Graph) *SearchIndex {
	return &SearchIndex{graph: g, limit: MaxSearchResults}
}

// Search returns nodes whose name contains query, ignoring case, in store
// order and capped at MaxSearchResults
func (s *SearchIndex) Search(query string) SearchResults {
	if strings.TrimSpace(query) == "" {
		return SearchResults{Query: query}
	}

	results := SearchResults{Query: query, Nodes: []*Node{}, Visible: true}
	if s.graph == nil {
		return results
	}

	needle := strings.ToLower(query)
	for _, n := range s.graph.Nodes {
		if strings.Contains(strings.ToLower(n.Name), needle) {
			results.Nodes = append(results.Nodes, n)
			if len(results.Nodes) == s.limit {
				break
			}
		}
	}
	return results
}
