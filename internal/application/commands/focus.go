package commands

import (
	"context"

	"archeologist/internal/application"
	"archeologist/internal/domain"
)

// Pose is a camera position and the point it looks at
type Pose struct {
	Position domain.Vec3 `json:"position"`
	LookAt   domain.Vec3 `json:"look_at"`
}

// FocusNodeCommand computes the camera pose that frames one node
type FocusNodeCommand struct {
	graph    *domain.Graph
	NodeID   string
	Distance float64
}

// NewFocusNodeCommand creates a new FocusNodeCommand
func NewFocusNodeCommand(g *domain.Graph, nodeID string) *FocusNodeCommand {
	return &FocusNodeCommand{
		graph:    g,
		NodeID:   nodeID,
		Distance: application.DefaultFocusDistance,
	}
}

// Execute runs the focus node command
func (c *FocusNodeCommand) Execute(ctx context.Context) (Pose, error) {
	node := c.graph.Node(c.NodeID)
	if node == nil {
		return Pose{}, &application.NodeError{ID: c.NodeID, Err: application.ErrNotFound}
	}
	p, ok := node.Position()
	if !ok {
		return Pose{}, &application.NodeError{ID: c.NodeID, Err: application.ErrNotNavigable}
	}
	target, ok := application.NodeFocusPose(p, c.Distance)
	if !ok {
		return Pose{}, &application.NodeError{ID: c.NodeID, Err: application.ErrNotNavigable}
	}
	return Pose{Position: target, LookAt: p}, nil
}

// FocusClusterCommand computes the camera pose that frames a cluster
type FocusClusterCommand struct {
	graph     *domain.Graph
	ClusterID domain.ClusterID
}

// NewFocusClusterCommand creates a new FocusClusterCommand
func NewFocusClusterCommand(g *domain.Graph, id string) *FocusClusterCommand {
	return &FocusClusterCommand{graph: g, ClusterID: domain.NewClusterID(id)}
}

// Execute runs the focus cluster command
func (c *FocusClusterCommand) Execute(ctx context.Context) (Pose, error) {
	stats := domain.NewClusterAggregator(c.graph).Summary(c.ClusterID)
	target, ok := application.ClusterFocusPose(stats.Centroid, stats.Members)
	if !ok {
		return Pose{}, application.ErrEmptyCluster
	}
	return Pose{Position: target, LookAt: stats.Centroid}, nil
}

// OverviewPose returns the resting camera pose for nav
func OverviewPose(nav application.NavigationConfig) Pose {
	pos, lookAt := nav.OverviewPose()
	return Pose{Position: pos, LookAt: lookAt}
}
