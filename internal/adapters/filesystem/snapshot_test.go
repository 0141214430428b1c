package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"archeologist/internal/application"
	"archeologist/internal/domain"
)

func sampleGraph() *domain.Graph {
	n := &domain.Node{ID: "a.py::f", Name: "f", File: "a.py", Cluster: domain.NumericClusterID(3), StartLine: 4}
	n.SetPosition(domain.Vec3{X: 1, Y: 2, Z: 3})
	return domain.NewGraph([]*domain.Node{n, {ID: "a.py::g", Name: "g"}},
		[]domain.Link{{Source: "a.py::f", Target: "a.py::g"}})
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "graph.json")
	clusters := []domain.ClusterSummary{{ID: domain.NewClusterID("3"), Name: "Cluster 3", NodeCount: 1}}

	require.NoError(t, Save(path, sampleGraph(), clusters))

	g, gotClusters, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.LinkCount())
	require.Len(t, gotClusters, 1)
	assert.Equal(t, "Cluster 3", gotClusters[0].Name)

	f := g.Node("a.py::f")
	p, ok := f.Position()
	require.True(t, ok)
	assert.Equal(t, domain.Vec3{X: 1, Y: 2, Z: 3}, p)
	assert.Equal(t, "3", f.Cluster.String())
	assert.Equal(t, 4, f.StartLine)

	_, ok = g.Node("a.py::g").Position()
	assert.False(t, ok, "unplaced node should stay unplaced")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be gone")
}

func TestLoad_EdgesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	data := `{"nodes": [{"id": "a", "name": "a"}, {"id": "b", "name": "b"}], "edges": [{"source": "a", "target": "b"}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	g, clusters, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, g.LinkCount())
	assert.Nil(t, clusters)
}

func TestSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, Save(path, sampleGraph(), nil))
	src := NewSource(path)
	ctx := context.Background()

	g, err := src.FetchGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())

	clusters, err := src.FetchClusters(ctx)
	require.NoError(t, err)
	assert.Empty(t, clusters)

	_, err = src.Query(ctx, "anything")
	assert.ErrorIs(t, err, application.ErrBackendUnavailable)

	_, err = NewSource(filepath.Join(t.TempDir(), "missing.json")).FetchGraph(ctx)
	assert.ErrorIs(t, err, application.ErrBackendUnavailable)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, Save(path, sampleGraph(), nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan int, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zap.NewNop(), func(g *domain.Graph, _ []domain.ClusterSummary) {
			reloaded <- g.NodeCount()
		})
	}()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	bigger := sampleGraph()
	bigger.Nodes = append(bigger.Nodes, &domain.Node{ID: "a.py::h", Name: "h"})
	require.NoError(t, Save(path, bigger, nil))

	select {
	case n := <-reloaded:
		assert.Equal(t, 3, n)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
