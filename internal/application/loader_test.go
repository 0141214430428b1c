package application

import (
	"context"
	"errors"
	"testing"

	"archeologist/internal/domain"
)

type fakeBackend struct {
	graph       *domain.Graph
	clusters    []domain.ClusterSummary
	graphErr    error
	clustersErr error
}

func (f *fakeBackend) FetchGraph(ctx context.Context) (*domain.Graph, error) {
	return f.graph, f.graphErr
}

func (f *fakeBackend) FetchClusters(ctx context.Context) ([]domain.ClusterSummary, error) {
	return f.clusters, f.clustersErr
}

func (f *fakeBackend) Query(ctx context.Context, text string) (string, error) {
	return "", nil
}

type memoryCache struct {
	graph    *domain.Graph
	clusters []domain.ClusterSummary
	saves    int
	saveErr  error
}

func (m *memoryCache) SaveGraph(ctx context.Context, g *domain.Graph, clusters []domain.ClusterSummary) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.graph, m.clusters = g, clusters
	return nil
}

func (m *memoryCache) LoadGraph(ctx context.Context) (*domain.Graph, []domain.ClusterSummary, error) {
	if m.graph == nil {
		return nil, nil, ErrNotFound
	}
	return m.graph, m.clusters, nil
}

func (m *memoryCache) Close() error { return nil }

func sampleGraph() *domain.Graph {
	return domain.NewGraph([]*domain.Node{{ID: "a", Name: "a"}, {ID: "b", Name: "b"}},
		[]domain.Link{{Source: "a", Target: "b"}})
}

func TestGraphLoader_FromBackendCaches(t *testing.T) {
	backend := &fakeBackend{
		graph:    sampleGraph(),
		clusters: []domain.ClusterSummary{{ID: domain.NewClusterID("0"), Name: "Cluster 0"}},
	}
	cache := &memoryCache{}

	res, err := NewGraphLoader(backend, WithCache(cache)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.Source != SourceBackend || res.Stale != nil {
		t.Errorf("expected fresh backend result, got %v", res.Source)
	}
	if res.Graph.NodeCount() != 2 || len(res.Clusters) != 1 {
		t.Errorf("unexpected result %+v", res)
	}
	if cache.saves != 1 {
		t.Errorf("expected graph to be cached, got %d saves", cache.saves)
	}
}

func TestGraphLoader_ClusterFailureKeepsGraph(t *testing.T) {
	backend := &fakeBackend{graph: sampleGraph(), clustersErr: errors.New("boom")}

	res, err := NewGraphLoader(backend).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.Graph == nil || res.Clusters != nil {
		t.Errorf("expected graph without clusters, got %+v", res)
	}
}

func TestGraphLoader_FallsBackToCache(t *testing.T) {
	fetchErr := &BackendError{Endpoint: "/graph", Err: errors.New("connection refused")}
	cache := &memoryCache{graph: sampleGraph()}

	res, err := NewGraphLoader(&fakeBackend{graphErr: fetchErr}, WithCache(cache)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.Source != SourceCache {
		t.Errorf("expected cache source, got %v", res.Source)
	}
	if !errors.Is(res.Stale, ErrBackendUnavailable) {
		t.Errorf("expected stale reason to be the backend error, got %v", res.Stale)
	}
}

func TestGraphLoader_NothingAvailable(t *testing.T) {
	fetchErr := &BackendError{Endpoint: "/graph", Status: 502}

	tests := []struct {
		name string
		opts []LoaderOption
	}{
		{"no cache", nil},
		{"empty cache", []LoaderOption{WithCache(&memoryCache{})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewGraphLoader(&fakeBackend{graphErr: fetchErr}, tt.opts...).Load(context.Background())
			if !errors.Is(err, ErrBackendUnavailable) {
				t.Errorf("expected ErrBackendUnavailable, got %v", err)
			}
			if res.Graph != nil || res.Source != SourceNone {
				t.Errorf("expected empty result, got %+v", res)
			}
		})
	}
}

func TestBackendError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := error(&BackendError{Endpoint: "/graph", Err: cause})

	if !errors.Is(err, cause) {
		t.Error("expected BackendError to unwrap to its cause")
	}
	if err.Error() != "backend /graph: dial tcp: refused" {
		t.Errorf("unexpected message %q", err.Error())
	}

	status := &BackendError{Endpoint: "/clusters", Status: 500}
	if status.Error() != "backend /clusters: status 500" {
		t.Errorf("unexpected message %q", status.Error())
	}
}
