package domain

import "sort"

// PaletteSize is the number of distinct cluster colors
const PaletteSize = 8

// ClusterPalette holds the cluster colors, indexed by ColorIndex
var ClusterPalette = [PaletteSize]string{
	"#0A84FF", // Blue
	"#30D158", // Green
	"#FF9F0A", // Orange
	"#BF5AF2", // Purple
	"#64D2FF", // Cyan
	"#FF375F", // Pink
	"#9B8930", // Olive
	"#5E5CE6", // Indigo
}

// ColorIndex maps a cluster ID onto the palette by its integer value modulo
// PaletteSize. Unset and non-numeric IDs use index 0.
func ColorIndex(id ClusterID) int {
	n, ok := id.Int()
	if !ok {
		return 0
	}
	return ((n % PaletteSize) + PaletteSize) % PaletteSize
}

// ClusterColor returns the palette color for a cluster ID
func ClusterColor(id ClusterID) string {
	return ClusterPalette[ColorIndex(id)]
}

// ClusterSummaryStats is a cluster's size and centroid at the time of the call
type ClusterSummaryStats struct {
	ID       ClusterID
	Members  int
	Centroid Vec3
}

// ClusterAggregator derives clusters from node assignments. Nothing is
// cached: positions move while the layout runs, so every call recomputes.
type ClusterAggregator struct {
	graph *Graph
}

// NewClusterAggregator creates an aggregator over the graph
func NewClusterAggregator(g *Graph) *ClusterAggregator {
	return &ClusterAggregator{graph: g}
}

// ListClusterIDs returns the distinct set cluster IDs, deduplicated by
// string form and sorted by integer value. IDs without a leading integer
// sort after all numeric IDs; ties compare lexically.
func (a *ClusterAggregator) ListClusterIDs() []ClusterID {
	if a.graph == nil {
		return nil
	}

	seen := make(map[string]bool)
	var ids []ClusterID
	for _, n := range a.graph.Nodes {
		if !n.Cluster.IsSet() || seen[n.Cluster.String()] {
			continue
		}
		seen[n.Cluster.String()] = true
		ids = append(ids, n.Cluster)
	}

	sort.SliceStable(ids, func(i, j int) bool {
		return clusterLess(ids[i], ids[j])
	})
	return ids
}

func clusterLess(a, b ClusterID) bool {
	an, aok := a.Int()
	bn, bok := b.Int()
	switch {
	case aok && bok && an != bn:
		return an < bn
	case aok != bok:
		return aok
	default:
		return a.String() < b.String()
	}
}

// Members returns the nodes assigned to the cluster, in store order
func (a *ClusterAggregator) Members(id ClusterID) []*Node {
	if a.graph == nil {
		return nil
	}
	var members []*Node
	for _, n := range a.graph.Nodes {
		if n.Cluster.Equal(id) {
			members = append(members, n)
		}
	}
	return members
}

// MemberCount returns how many nodes the cluster has
func (a *ClusterAggregator) MemberCount(id ClusterID) int {
	if a.graph == nil {
		return 0
	}
	count := 0
	for _, n := range a.graph.Nodes {
		if n.Cluster.Equal(id) {
			count++
		}
	}
	return count
}

// Centroid returns the mean member position, reading missing coordinates as
// 0. An empty cluster yields the zero vector; callers check MemberCount first.
func (a *ClusterAggregator) Centroid(id ClusterID) Vec3 {
	return a.Summary(id).Centroid
}

// Summary computes member count and centroid in one pass
func (a *ClusterAggregator) Summary(id ClusterID) ClusterSummaryStats {
	stats := ClusterSummaryStats{ID: id}
	if a.graph == nil {
		return stats
	}

	var sum Vec3
	for _, n := range a.graph.Nodes {
		if !n.Cluster.Equal(id) {
			continue
		}
		sum = sum.Add(n.Coord())
		stats.Members++
	}
	if stats.Members > 0 {
		stats.Centroid = sum.Scale(1 / float64(stats.Members))
	}
	return stats
}
