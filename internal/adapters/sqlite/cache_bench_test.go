package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"archeologist/internal/domain"
)

func benchGraph(n int) *domain.Graph {
	nodes := make([]*domain.Node, n)
	links := make([]domain.Link, 0, n)
	for i := range nodes {
		nodes[i] = &domain.Node{ID: fmt.Sprintf("mod.py::f%d", i), Name: fmt.Sprintf("f%d", i), Cluster: domain.NumericClusterID(i % 8)}
		nodes[i].SetPosition(domain.Vec3{X: float64(i), Y: float64(-i), Z: 1})
		if i > 0 {
			links = append(links, domain.Link{Source: nodes[i-1].ID, Target: nodes[i].ID})
		}
	}
	return domain.NewGraph(nodes, links)
}

// BenchmarkSaveGraph benchmarks replacing a 2000-node snapshot
func BenchmarkSaveGraph(b *testing.B) {
	c, err := Open(filepath.Join(b.TempDir(), "graph.db"))
	if err != nil {
		b.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	g := benchGraph(2000)
	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		if err := c.SaveGraph(ctx, g, nil); err != nil {
			b.Fatalf("save failed: %v", err)
		}
	}
}

// BenchmarkLoadGraph benchmarks reading a 2000-node snapshot
func BenchmarkLoadGraph(b *testing.B) {
	c, err := Open(filepath.Join(b.TempDir(), "graph.db"))
	if err != nil {
		b.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.SaveGraph(ctx, benchGraph(2000), nil); err != nil {
		b.Fatalf("save failed: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		if _, _, err := c.LoadGraph(ctx); err != nil {
			b.Fatalf("load failed: %v", err)
		}
	}
}
