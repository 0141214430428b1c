package commands

import (
	"context"
	"errors"
	"testing"

	"archeologist/internal/application"
	"archeologist/internal/domain"
)

func placed(id, cluster string, p domain.Vec3) *domain.Node {
	n := &domain.Node{ID: id, Name: id, Cluster: domain.NewClusterID(cluster)}
	n.SetPosition(p)
	return n
}

func clusterGraph() *domain.Graph {
	return domain.NewGraph([]*domain.Node{
		placed("a", "10", domain.Vec3{X: 10}),
		placed("b", "2", domain.Vec3{X: 0}),
		placed("c", "2", domain.Vec3{X: 3}),
		placed("d", "2", domain.Vec3{Y: 3}),
	}, nil)
}

func TestListClustersCommand_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clusters, err := NewListClustersCommand(clusterGraph()).Execute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if clusters != nil {
		t.Errorf("expected no clusters, got %d", len(clusters))
	}
}

func TestListClustersCommand(t *testing.T) {
	clusters, err := NewListClustersCommand(clusterGraph()).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}

	first := clusters[0]
	if first.ID.String() != "2" || first.Members != 3 || first.Name != "Cluster 2" {
		t.Errorf("unexpected first cluster %+v", first)
	}
	if first.Centroid != (domain.Vec3{X: 1, Y: 1}) {
		t.Errorf("expected centroid (1,1,0), got %v", first.Centroid)
	}
	if first.Color != domain.ClusterPalette[2] {
		t.Errorf("expected palette color 2, got %s", first.Color)
	}
	if clusters[1].ID.String() != "10" {
		t.Errorf("expected cluster 10 second, got %s", clusters[1].ID)
	}
	if first.Nodes != nil {
		t.Error("listing should not include member nodes")
	}
}

func TestClusterInfoCommand(t *testing.T) {
	info, err := NewClusterInfoCommand(clusterGraph(), "2").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(info.Nodes) != 3 {
		t.Errorf("expected 3 member nodes, got %d", len(info.Nodes))
	}

	_, err = NewClusterInfoCommand(clusterGraph(), "99").Execute(context.Background())
	if !errors.Is(err, application.ErrEmptyCluster) {
		t.Errorf("expected ErrEmptyCluster, got %v", err)
	}
}
