package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

// LoadSource says where a loaded graph came from
type LoadSource int

const (
	SourceNone LoadSource = iota
	SourceBackend
	SourceCache
)

func (s LoadSource) String() string {
	switch s {
	case SourceBackend:
		return "backend"
	case SourceCache:
		return "cache"
	default:
		return "none"
	}
}

// LoadResult is a fetched graph and its cluster listing. Stale is set when
// the backend failed and the graph came from the cache.
type LoadResult struct {
	Graph    *domain.Graph
	Clusters []domain.ClusterSummary
	Source   LoadSource
	Stale    error
}

// GraphLoader fetches the graph at startup, falling back to the last
// cached snapshot when the backend cannot be reached
type GraphLoader struct {
	backend ports.Backend
	cache   ports.GraphCache
	logger  *zap.Logger
}

// LoaderOption configures a GraphLoader
type LoaderOption func(*GraphLoader)

// WithCache enables the snapshot cache
func WithCache(cache ports.GraphCache) LoaderOption {
	return func(l *GraphLoader) {
		l.cache = cache
	}
}

// WithLoaderLogger sets the logger for fetch failures
func WithLoaderLogger(logger *zap.Logger) LoaderOption {
	return func(l *GraphLoader) {
		l.logger = logger
	}
}

// NewGraphLoader creates a loader reading from backend
func NewGraphLoader(backend ports.Backend, opts ...LoaderOption) *GraphLoader {
	l := &GraphLoader{backend: backend, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the graph and clusters concurrently. A cluster listing
// failure is logged and leaves Clusters empty. When neither backend nor
// cache has a graph the error is returned and the caller keeps whatever
// graph it already had.
func (l *GraphLoader) Load(ctx context.Context) (LoadResult, error) {
	var (
		g           *domain.Graph
		clusters    []domain.ClusterSummary
		clustersErr error
	)

	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		g, err = l.backend.FetchGraph(ctx)
		return err
	})
	eg.Go(func() error {
		clusters, clustersErr = l.backend.FetchClusters(ctx)
		return nil
	})
	if err := eg.Wait(); err != nil {
		l.logger.Warn("graph fetch failed", zap.Error(err))
		return l.fallback(ctx, err)
	}

	if clustersErr != nil {
		l.logger.Warn("cluster fetch failed", zap.Error(clustersErr))
		clusters = nil
	}

	if l.cache != nil {
		if err := l.cache.SaveGraph(ctx, g, clusters); err != nil {
			l.logger.Warn("failed to cache graph", zap.Error(err))
		}
	}

	l.logger.Info("graph loaded",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("links", g.LinkCount()),
		zap.Int("clusters", len(clusters)))
	return LoadResult{Graph: g, Clusters: clusters, Source: SourceBackend}, nil
}

func (l *GraphLoader) fallback(ctx context.Context, fetchErr error) (LoadResult, error) {
	if l.cache == nil {
		return LoadResult{}, fmt.Errorf("failed to load graph: %w", fetchErr)
	}

	g, clusters, err := l.cache.LoadGraph(ctx)
	if err != nil {
		l.logger.Warn("no cached graph", zap.Error(err))
		return LoadResult{}, fmt.Errorf("failed to load graph: %w", fetchErr)
	}

	l.logger.Info("using cached graph", zap.Int("nodes", g.NodeCount()))
	return LoadResult{Graph: g, Clusters: clusters, Source: SourceCache, Stale: fetchErr}, nil
}
