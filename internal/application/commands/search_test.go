package commands

import (
	"context"
	"errors"
	"testing"

	"archeologist/internal/application"
	"archeologist/internal/domain"
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
			target:    "parse_graph",
			query:     "parse_graph",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "parse_graph_payload",
			query:     "parse",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "load_graph",
			query:     "graph",
			wantScore: 100, // contains only
		},
		{
			name:    "in-order characters",
			target:  "build_call_graph",
			query:   "bcg",
			wantMin: 20, // start of string plus two word boundaries
		},
		{
			name:      "no match",
			target:    "parse_graph",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "parse_graph",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "ParseGraph",
			query:   "parsegraph",
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

func namedGraph(names ...string) *domain.Graph {
	nodes := make([]*domain.Node, len(names))
	for i, name := range names {
		nodes[i] = &domain.Node{ID: name, Name: name}
	}
	return domain.NewGraph(nodes, nil)
}

func TestSearchCommand_StoreOrder(t *testing.T) {
	g := namedGraph("load_graph", "graph_stats", "baz")

	results, err := NewSearchCommand(g, "graph").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Node.Name != "load_graph" {
		t.Errorf("expected store order, got %s first", results[0].Node.Name)
	}
}

func TestSearchCommand_Ranked(t *testing.T) {
	g := namedGraph("load_graph", "graph_stats")

	cmd := NewSearchCommand(g, "graph")
	cmd.Ranked = true
	results, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if results[0].Node.Name != "graph_stats" {
		t.Errorf("expected prefix match first, got %s", results[0].Node.Name)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("expected descending scores, got %d then %d", results[0].Score, results[1].Score)
	}
}

func TestSearchCommand_EmptyQuery(t *testing.T) {
	_, err := NewSearchCommand(namedGraph("a"), "  ").Execute(context.Background())
	if !errors.Is(err, application.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}
