package views

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"archeologist/internal/adapters/tui/styles"
	"archeologist/internal/camera"
	"archeologist/internal/domain"
)

// nearDepth is the distance under which nodes are drawn with the large glyph
const nearDepth = 120

const (
	glyphSelected = '◉'
	glyphNear     = '●'
	glyphFar      = '•'
	glyphLink     = '·'
)

type cell struct {
	ch    rune
	style string // cluster color, "" for links, "*" for the selection
}

type projected struct {
	node *domain.Node
	at   camera.Projection
}

// GraphView draws the node cloud through the perspective camera
type GraphView struct {
	camera *camera.Perspective
	graph  *domain.Graph
}

// NewGraphView creates a view looking through cam
func NewGraphView(cam *camera.Perspective) *GraphView {
	return &GraphView{camera: cam}
}

// SetGraph replaces the drawn graph
func (v *GraphView) SetGraph(g *domain.Graph) {
	v.graph = g
}

// project maps every navigable node onto the grid, farthest first
func (v *GraphView) project(width, height int) []projected {
	if v.graph == nil {
		return nil
	}
	out := make([]projected, 0, len(v.graph.Nodes))
	for _, n := range v.graph.Nodes {
		p, ok := n.Position()
		if !ok {
			continue
		}
		at, ok := v.camera.Project(p, width, height)
		if !ok {
			continue
		}
		out = append(out, projected{node: n, at: at})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].at.Depth > out[j].at.Depth
	})
	return out
}

// NodeAt returns the nearest node drawn at or next to (col, row)
func (v *GraphView) NodeAt(col, row, width, height int) *domain.Node {
	var (
		best     *domain.Node
		bestDist = 3
		bestZ    float64
	)
	for _, p := range v.project(width, height) {
		d := abs(p.at.Col-col) + abs(p.at.Row-row)
		if d > 1 {
			continue
		}
		if best == nil || d < bestDist || (d == bestDist && p.at.Depth < bestZ) {
			best, bestDist, bestZ = p.node, d, p.at.Depth
		}
	}
	return best
}

// Render draws the graph into a width×height block
func (v *GraphView) Render(width, height int, selected *domain.Node) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	grid := make([][]cell, height)
	for r := range grid {
		grid[r] = make([]cell, width)
	}

	nodes := v.project(width, height)
	v.drawLinks(grid, nodes)

	for _, p := range nodes {
		c := cell{ch: glyphFar, style: domain.ClusterColor(p.node.Cluster)}
		if p.at.Depth < nearDepth {
			c.ch = glyphNear
		}
		if selected != nil && p.node.ID == selected.ID {
			c = cell{ch: glyphSelected, style: "*"}
		}
		grid[p.at.Row][p.at.Col] = c
	}

	if selected != nil {
		if p, ok := selected.Position(); ok {
			if at, ok := v.camera.Project(p, width, height); ok {
				drawLabel(grid, at, selected.Name)
			}
		}
	}

	lines := make([]string, height)
	for r, row := range grid {
		lines[r] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

func (v *GraphView) drawLinks(grid [][]cell, nodes []projected) {
	if v.graph == nil || len(v.graph.Links) == 0 {
		return
	}
	at := make(map[string]camera.Projection, len(nodes))
	for _, p := range nodes {
		at[p.node.ID] = p.at
	}
	for _, l := range v.graph.Links {
		a, okA := at[l.Source]
		b, okB := at[l.Target]
		if !okA || !okB {
			continue
		}
		line(a.Col, a.Row, b.Col, b.Row, func(c, r int) {
			if grid[r][c].ch == 0 {
				grid[r][c] = cell{ch: glyphLink}
			}
		})
	}
}

// drawLabel writes the selected node's name to the right of its glyph
func drawLabel(grid [][]cell, at camera.Projection, name string) {
	row := grid[at.Row]
	col := at.Col + 2
	for _, ch := range name {
		if col >= len(row) {
			return
		}
		row[col] = cell{ch: ch, style: "*"}
		col++
	}
}

// renderRow styles runs of cells sharing a color
func renderRow(row []cell) string {
	var (
		b     strings.Builder
		run   strings.Builder
		style string
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(styleFor(style).Render(run.String()))
		run.Reset()
	}
	for _, c := range row {
		ch := c.ch
		if ch == 0 {
			ch = ' '
		}
		if c.style != style && ch != ' ' {
			flush()
			style = c.style
		}
		run.WriteRune(ch)
	}
	flush()
	return b.String()
}

func styleFor(s string) lipgloss.Style {
	switch s {
	case "":
		return styles.GraphLink
	case "*":
		return styles.NodeSelected
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(s))
	}
}

// line walks the cells between two points (Bresenham)
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
