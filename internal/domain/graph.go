package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ClusterID is a cluster assignment as emitted by the backend. The backend
// may send it as a JSON string, a number or null; all comparisons go through
// its string form.
type ClusterID struct {
	raw     string
	set     bool
	numeric bool
}

// NewClusterID creates a cluster ID from its string form
func NewClusterID(s string) ClusterID {
	return ClusterID{raw: s, set: true}
}

// NumericClusterID creates a cluster ID that marshals as a JSON number
func NumericClusterID(n int) ClusterID {
	return ClusterID{raw: strconv.Itoa(n), set: true, numeric: true}
}

// IsSet reports whether the node carried a non-null cluster value
func (c ClusterID) IsSet() bool {
	return c.set
}

// String returns the stringified cluster value, or "" when unset
func (c ClusterID) String() string {
	return c.raw
}

// Display returns the value for presentation, "N/A" when unset
func (c ClusterID) Display() string {
	if !c.set {
		return "N/A"
	}
	return c.raw
}

// Equal compares two set IDs by their string forms, so "2" equals 2
func (c ClusterID) Equal(o ClusterID) bool {
	return c.set && o.set && c.raw == o.raw
}

// Int parses the leading decimal integer of the ID. Leading whitespace and a
// sign are accepted and trailing characters ignored, so "12abc" is 12 and
// "1.5" is 1. ok is false when no digits lead the value.
func (c ClusterID) Int() (n int, ok bool) {
	if !c.set {
		return 0, false
	}
	s := strings.TrimLeft(c.raw, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// UnmarshalJSON accepts strings, numbers and null. Any other JSON kind
// leaves the ID unset instead of failing the whole payload.
func (c *ClusterID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*c = ClusterID{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("cluster id: %w", err)
		}
		*c = ClusterID{raw: s, set: true}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var f float64
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return fmt.Errorf("cluster id: %w", err)
		}
		*c = ClusterID{raw: strconv.FormatFloat(f, 'f', -1, 64), set: true, numeric: true}
	}
	return nil
}

// MarshalJSON writes the ID back in the kind it was read as
func (c ClusterID) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	if c.numeric {
		return []byte(c.raw), nil
	}
	return json.Marshal(c.raw)
}

// Node is a function in the analyzed codebase. Coordinates are assigned by
// the layout engine and stay nil until it has placed the node.
type Node struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	File      string    `json:"file,omitempty"`
	Code      string    `json:"code,omitempty"`
	Type      string    `json:"type,omitempty"`
	StartLine int       `json:"start_line,omitempty"`
	EndLine   int       `json:"end_line,omitempty"`
	Cluster   ClusterID `json:"cluster"`

	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	Z *float64 `json:"z,omitempty"`
}

// Position returns the node's coordinates. ok is false while any coordinate
// is missing or non-finite, i.e. the node is not yet navigable.
func (n *Node) Position() (Vec3, bool) {
	if n == nil || n.X == nil || n.Y == nil || n.Z == nil {
		return Vec3{}, false
	}
	p := Vec3{X: *n.X, Y: *n.Y, Z: *n.Z}
	if !p.IsFinite() {
		return Vec3{}, false
	}
	return p, true
}

// Coord returns the coordinates with missing or NaN components read as 0
func (n *Node) Coord() Vec3 {
	if n == nil {
		return Vec3{}
	}
	return Vec3{X: coordOrZero(n.X), Y: coordOrZero(n.Y), Z: coordOrZero(n.Z)}
}

// SetPosition stores new coordinates on the node
func (n *Node) SetPosition(p Vec3) {
	x, y, z := p.X, p.Y, p.Z
	n.X, n.Y, n.Z = &x, &y, &z
}

// FileName returns the last path element of File, accepting / and \ separators
func (n *Node) FileName() string {
	if n.File == "" {
		return "N/A"
	}
	if i := strings.LastIndexAny(n.File, `/\`); i >= 0 {
		return n.File[i+1:]
	}
	return n.File
}

// Snippet returns the node's source, or a placeholder when the backend sent none
func (n *Node) Snippet() string {
	if n.Code == "" {
		return "// Source not available"
	}
	return n.Code
}

func coordOrZero(f *float64) float64 {
	if f == nil || math.IsNaN(*f) {
		return 0
	}
	return *f
}

// Link is a directed call edge between two node IDs
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight,omitempty"`
}

// ClusterSummary is one element of the backend's cluster listing
type ClusterSummary struct {
	ID        ClusterID `json:"id"`
	Name      string    `json:"name"`
	NodeCount int       `json:"node_count"`
	Nodes     []string  `json:"nodes,omitempty"`
	RiskScore string    `json:"risk_score,omitempty"`
}

// Graph is the last fetched node/link collection. It is replaced wholesale
// on fetch and never updated incrementally.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Links []Link  `json:"links"`
}

// NewGraph creates a graph from nodes and links
func NewGraph(nodes []*Node, links []Link) *Graph {
	return &Graph{Nodes: nodes, Links: links}
}

// graphPayload accepts both "links" and the "edges" key newer graph
// builders emit
type graphPayload struct {
	Nodes []*Node `json:"nodes"`
	Links []Link  `json:"links"`
	Edges []Link  `json:"edges"`
}

// ParseGraph decodes a graph payload as served by GET /graph
func ParseGraph(data []byte) (*Graph, error) {
	var payload graphPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	links := payload.Links
	if len(links) == 0 && len(payload.Edges) > 0 {
		links = payload.Edges
	}
	nodes := make([]*Node, 0, len(payload.Nodes))
	for _, n := range payload.Nodes {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return NewGraph(nodes, links), nil
}

// Node returns the node with the given ID, or nil
func (g *Graph) Node(id string) *Node {
	if g == nil {
		return nil
	}
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.Nodes)
}

// LinkCount returns the number of links
func (g *Graph) LinkCount() int {
	if g == nil {
		return 0
	}
	return len(g.Links)
}

// Empty reports whether the graph has no nodes
func (g *Graph) Empty() bool {
	return g.NodeCount() == 0
}
