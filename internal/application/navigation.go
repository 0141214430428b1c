package application

import (
	"math"
	"time"

	"go.uber.org/zap"

	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

// Compile-time interface check
var _ ports.Navigator = (*Navigator)(nil)

const (
	// DefaultTransition is the duration of every camera move
	DefaultTransition = 1500 * time.Millisecond

	// DefaultFocusDistance is how far the camera backs off a focused node
	DefaultFocusDistance = 50.0

	clusterBaseDistance = 80.0
	clusterPerMember    = 5.0
	clusterMaxExtra     = 100.0
)

// DefaultOverviewPosition is where the camera rests when nothing is focused
var DefaultOverviewPosition = domain.Vec3{Z: 220}

// NavigationConfig holds the camera pose constants
type NavigationConfig struct {
	Transition       time.Duration
	FocusDistance    float64
	OverviewPosition domain.Vec3
}

// DefaultNavigationConfig returns the standard navigation constants
func DefaultNavigationConfig() NavigationConfig {
	return NavigationConfig{
		Transition:       DefaultTransition,
		FocusDistance:    DefaultFocusDistance,
		OverviewPosition: DefaultOverviewPosition,
	}
}

// NodeFocusPose returns the camera position for focusing a node at p:
// p pushed outward from the origin by distance along the same ray.
// ok is false at the origin or for non-finite p.
func NodeFocusPose(p domain.Vec3, distance float64) (domain.Vec3, bool) {
	l := p.Len()
	if l == 0 || !p.IsFinite() || math.IsInf(l, 0) {
		return domain.Vec3{}, false
	}
	return p.Scale(1 + distance/l), true
}

// ClusterFocusPose returns the camera position for framing a cluster with
// the given centroid and size. Larger clusters are viewed from further out.
func ClusterFocusPose(centroid domain.Vec3, members int) (domain.Vec3, bool) {
	if members <= 0 {
		return domain.Vec3{}, false
	}
	distance := clusterBaseDistance + math.Min(float64(members)*clusterPerMember, clusterMaxExtra)
	l := centroid.Len()
	if l == 0 {
		l = 1
	}
	return centroid.Scale(1 + distance/l), true
}

// OverviewPose returns the configured resting pose
func (c NavigationConfig) OverviewPose() (position, lookAt domain.Vec3) {
	return c.OverviewPosition, domain.Origin
}

// Navigator turns navigation intents into camera moves and owns the
// selection and search state. Selection changes always come with a camera
// request; a rejected focus changes neither.
type Navigator struct {
	graph    *domain.Graph
	clusters *domain.ClusterAggregator
	index    *domain.SearchIndex
	animator ports.CameraAnimator
	config   NavigationConfig
	logger   *zap.Logger

	selected *domain.Node
	search   domain.SearchResults

	selectionListeners []func(*domain.Node)
	searchListeners    []func(domain.SearchResults)
}

// NavigatorOption configures a Navigator
type NavigatorOption func(*Navigator)

// WithNavigationConfig overrides the pose constants
func WithNavigationConfig(cfg NavigationConfig) NavigatorOption {
	return func(n *Navigator) {
		n.config = cfg
	}
}

// WithNavigatorLogger sets the logger for ignored intents
func WithNavigatorLogger(logger *zap.Logger) NavigatorOption {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// NewNavigator creates a navigator over g driving animator
func NewNavigator(g *domain.Graph, animator ports.CameraAnimator, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		animator: animator,
		config:   DefaultNavigationConfig(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.setGraph(g)
	return n
}

func (n *Navigator) setGraph(g *domain.Graph) {
	if g == nil {
		g = domain.NewGraph(nil, nil)
	}
	n.graph = g
	n.clusters = domain.NewClusterAggregator(g)
	n.index = domain.NewSearchIndex(g)
}

// SetGraph replaces the graph after a fetch. Selection and search refer to
// the previous graph's nodes and are cleared without moving the camera.
func (n *Navigator) SetGraph(g *domain.Graph) {
	n.setGraph(g)
	if n.selected != nil {
		n.selected = nil
		n.notifySelection()
	}
	if n.search.Visible || n.search.Query != "" {
		n.search = domain.SearchResults{}
		n.notifySearch()
	}
}

// Graph returns the graph being navigated
func (n *Navigator) Graph() *domain.Graph {
	return n.graph
}

// Clusters returns the aggregator over the current graph
func (n *Navigator) Clusters() *domain.ClusterAggregator {
	return n.clusters
}

// OnSelectionChanged registers fn to run after every selection change
func (n *Navigator) OnSelectionChanged(fn func(*domain.Node)) {
	n.selectionListeners = append(n.selectionListeners, fn)
}

// OnSearchChanged registers fn to run after every search state change
func (n *Navigator) OnSearchChanged(fn func(domain.SearchResults)) {
	n.searchListeners = append(n.searchListeners, fn)
}

// Selected returns the selected node, or nil
func (n *Navigator) Selected() *domain.Node {
	return n.selected
}

// SearchState returns the current query and results
func (n *Navigator) SearchState() domain.SearchResults {
	return n.search
}

// FocusNode toggles focus on node. Focusing the selected node again
// releases it and returns to the overview.
func (n *Navigator) FocusNode(node *domain.Node) {
	n.focusNode(node)
}

// FocusOutcome describes what a focus intent did
type FocusOutcome int

const (
	FocusIgnored FocusOutcome = iota
	FocusSelected
	FocusReleased
)

func (n *Navigator) focusNode(node *domain.Node) FocusOutcome {
	if node == nil {
		return FocusIgnored
	}

	if n.selected != nil && n.selected.ID == node.ID {
		n.selected = nil
		n.overview()
		n.notifySelection()
		return FocusReleased
	}

	p, ok := node.Position()
	if !ok {
		n.logger.Debug("ignoring focus on unplaced node", zap.String("node", node.ID))
		return FocusIgnored
	}
	target, ok := NodeFocusPose(p, n.config.FocusDistance)
	if !ok {
		n.logger.Debug("ignoring focus on node at origin", zap.String("node", node.ID))
		return FocusIgnored
	}

	n.animator.AnimateTo(target, p, n.config.Transition)
	n.selected = node
	n.notifySelection()
	return FocusSelected
}

// Toggle is FocusNode reporting its outcome
func (n *Navigator) Toggle(node *domain.Node) FocusOutcome {
	return n.focusNode(node)
}

// FocusCluster frames the cluster's centroid. Selection is untouched.
// It reports false for a cluster with no members.
func (n *Navigator) FocusCluster(id domain.ClusterID) bool {
	stats := n.clusters.Summary(id)
	target, ok := ClusterFocusPose(stats.Centroid, stats.Members)
	if !ok {
		n.logger.Debug("ignoring focus on empty cluster", zap.String("cluster", id.String()))
		return false
	}
	n.animator.AnimateTo(target, stats.Centroid, n.config.Transition)
	return true
}

// SelectFromSearch dismisses the search and focuses node
func (n *Navigator) SelectFromSearch(node *domain.Node) {
	n.ClearSearch()
	n.focusNode(node)
}

// ClearSelection drops the selection and leaves the camera where it is
func (n *Navigator) ClearSelection() {
	if n.selected == nil {
		return
	}
	n.selected = nil
	n.notifySelection()
}

// Overview returns the camera to the resting pose
func (n *Navigator) Overview() {
	n.overview()
}

func (n *Navigator) overview() {
	pos, lookAt := n.config.OverviewPose()
	n.animator.AnimateTo(pos, lookAt, n.config.Transition)
}

// Search runs query against node names and publishes the results
func (n *Navigator) Search(query string) domain.SearchResults {
	n.search = n.index.Search(query)
	n.notifySearch()
	return n.search
}

// ClearSearch empties the query and hides the results
func (n *Navigator) ClearSearch() {
	n.search = domain.SearchResults{}
	n.notifySearch()
}

func (n *Navigator) notifySelection() {
	for _, fn := range n.selectionListeners {
		fn(n.selected)
	}
}

func (n *Navigator) notifySearch() {
	for _, fn := range n.searchListeners {
		fn(n.search)
	}
}
