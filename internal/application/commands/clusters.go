package commands

import (
	"context"

	"archeologist/internal/application"
	"archeologist/internal/domain"
)

// ClusterInfo is one cluster's size, centroid and color
type ClusterInfo struct {
	domain.ClusterSummaryStats
	Name  string
	Color string
	Nodes []*domain.Node
}

// ListClustersCommand lists the graph's clusters in display order
type ListClustersCommand struct {
	graph *domain.Graph
}

// NewListClustersCommand creates a new ListClustersCommand
func NewListClustersCommand(g *domain.Graph) *ListClustersCommand {
	return &ListClustersCommand{graph: g}
}

// Execute runs the list clusters command
func (c *ListClustersCommand) Execute(ctx context.Context) ([]ClusterInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	agg := domain.NewClusterAggregator(c.graph)
	ids := agg.ListClusterIDs()

	clusters := make([]ClusterInfo, 0, len(ids))
	for _, id := range ids {
		clusters = append(clusters, clusterInfo(agg, id, false))
	}
	return clusters, nil
}

// ClusterInfoCommand describes one cluster and its members
type ClusterInfoCommand struct {
	graph     *domain.Graph
	ClusterID domain.ClusterID
}

// NewClusterInfoCommand creates a new ClusterInfoCommand
func NewClusterInfoCommand(g *domain.Graph, id string) *ClusterInfoCommand {
	return &ClusterInfoCommand{graph: g, ClusterID: domain.NewClusterID(id)}
}

// Execute runs the cluster info command
func (c *ClusterInfoCommand) Execute(ctx context.Context) (ClusterInfo, error) {
	agg := domain.NewClusterAggregator(c.graph)
	info := clusterInfo(agg, c.ClusterID, true)
	if info.Members == 0 {
		return ClusterInfo{}, application.ErrEmptyCluster
	}
	return info, nil
}

func clusterInfo(agg *domain.ClusterAggregator, id domain.ClusterID, withMembers bool) ClusterInfo {
	info := ClusterInfo{
		ClusterSummaryStats: agg.Summary(id),
		Name:                "Cluster " + id.Display(),
		Color:               domain.ClusterColor(id),
	}
	if withMembers {
		info.Nodes = agg.Members(id)
	}
	return info
}
