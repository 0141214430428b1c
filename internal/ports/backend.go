package ports

import (
	"context"

	"archeologist/internal/domain"
)

// Backend is the analysis service that owns the graph.
// Implementations apply no retry or timeout policy of their own;
// callers bound requests through ctx.
type Backend interface {
	// FetchGraph returns the full node/link payload (GET /graph)
	FetchGraph(ctx context.Context) (*domain.Graph, error)

	// FetchClusters returns the cluster listing (GET /clusters)
	FetchClusters(ctx context.Context) ([]domain.ClusterSummary, error)

	// Query asks a natural-language question (POST /query?q=)
	Query(ctx context.Context, text string) (string, error)
}

// GraphCache stores the last graph fetched from the backend
type GraphCache interface {
	SaveGraph(ctx context.Context, g *domain.Graph, clusters []domain.ClusterSummary) error
	LoadGraph(ctx context.Context) (*domain.Graph, []domain.ClusterSummary, error)
	Close() error
}
