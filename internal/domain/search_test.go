package domain

import (
	"fmt"
	"testing"
)

func namedGraph(names ...string) *Graph {
	nodes := make([]*Node, len(names))
	for i, name := range names {
		nodes[i] = &Node{ID: fmt.Sprintf("n%d", i), Name: name}
	}
	return NewGraph(nodes, nil)
}

func TestSearch(t *testing.T) {
	idx := NewSearchIndex(namedGraph("fooBar", "baz", "Foo2"))

	tests := []struct {
		name        string
		query       string
		wantVisible bool
		wantNames   []string
	}{
		{"empty query hides results", "", false, nil},
		{"whitespace query hides results", "   ", false, nil},
		{"case-insensitive substring", "foo", true, []string{"fooBar", "Foo2"}},
		{"uppercase query", "BAZ", true, []string{"baz"}},
		{"no matches", "qux", true, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Search(tt.query)

			if got.Visible != tt.wantVisible {
				t.Fatalf("expected visible=%v, got %v", tt.wantVisible, got.Visible)
			}
			if got.Query != tt.query {
				t.Errorf("expected query %q, got %q", tt.query, got.Query)
			}
			if len(got.Nodes) != len(tt.wantNames) {
				t.Fatalf("expected %d results, got %d", len(tt.wantNames), len(got.Nodes))
			}
			for i, name := range tt.wantNames {
				if got.Nodes[i].Name != name {
					t.Errorf("result %d: expected %s, got %s", i, name, got.Nodes[i].Name)
				}
			}
		})
	}
}

func TestSearch_Cap(t *testing.T) {
	idx := NewSearchIndex(namedGraph("a1", "a2", "a3", "a4", "a5", "a6", "a7"))

	got := idx.Search("a")
	if len(got.Nodes) != MaxSearchResults {
		t.Fatalf("expected %d results, got %d", MaxSearchResults, len(got.Nodes))
	}
	if got.Nodes[0].Name != "a1" || got.Nodes[4].Name != "a5" {
		t.Errorf("expected the first five in store order, got %s..%s", got.Nodes[0].Name, got.Nodes[4].Name)
	}
}

func TestSearch_EmptyStore(t *testing.T) {
	got := NewSearchIndex(NewGraph(nil, nil)).Search("x")
	if !got.Visible {
		t.Fatal("expected visible results")
	}
	if !got.Empty() {
		t.Errorf("expected empty results, got %d", len(got.Nodes))
	}
}

func TestSearch_NilGraph(t *testing.T) {
	got := NewSearchIndex(nil).Search("x")
	if !got.Empty() {
		t.Errorf("expected empty visible results, got %+v", got)
	}
}

func TestSearchResults_EmptyRequiresVisible(t *testing.T) {
	if (SearchResults{}).Empty() {
		t.Error("hidden results should not report empty")
	}
}
