package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"archeologist/internal/application"
)

// searchRows is the height of the bordered search input
const searchRows = 3

// geometry is the screen split in cells. Splitters sit between panes: the
// left one at column leftCols, the right one just before the right pane,
// the sub one just above the chat pane.
type geometry struct {
	width, height int
	mainRows      int

	leftCols, rightCols int
	subRows             int
	artifactRows        int

	graphCol, graphCols int
	graphRows           int

	leftSplit, rightSplit, subSplit int

	// pixel geometry handed to the panel controller
	viewportWidth int
	subBottom     int
}

// computeGeometry derives the cell layout from pixel panel sizes. Panes
// shrink to fit a small terminal; the pixel sizes are left untouched.
func computeGeometry(width, height int, sizes application.PanelSizes, host *PointerHost) geometry {
	g := geometry{width: width, height: height}
	g.mainRows = max(height-1, 0)

	g.leftCols, g.subRows = host.ToCells(sizes.Left, sizes.Sub)
	g.rightCols, _ = host.ToCells(sizes.Right, 0)

	if spare := width - 2 - g.leftCols - g.rightCols; spare < 0 {
		g.leftCols = max(g.leftCols+spare/2, 0)
		g.rightCols = max(width-2-g.leftCols, 0)
	}
	g.graphCol = g.leftCols + 1
	g.graphCols = max(width-g.leftCols-g.rightCols-2, 0)
	g.graphRows = max(g.mainRows-searchRows, 0)

	g.subRows = min(g.subRows, max(g.mainRows-4, 0))
	g.artifactRows = max(g.mainRows-g.subRows-1, 0)

	g.leftSplit = g.leftCols
	g.rightSplit = width - g.rightCols - 1
	g.subSplit = g.mainRows - g.subRows - 1

	g.viewportWidth, g.subBottom = host.ToPixels(max(width-1, 0), max(g.mainRows-1, 0))
	return g
}

// inGraph reports whether a cell lies on the graph canvas
func (g geometry) inGraph(x, y int) bool {
	return x >= g.graphCol && x < g.graphCol+g.graphCols && y >= 0 && y < g.graphRows
}

// overlayBottom replaces the last rows of block with lines, padded to width
func overlayBottom(block string, lines []string, width int) string {
	if len(lines) == 0 {
		return block
	}
	rows := strings.Split(block, "\n")
	start := max(len(rows)-len(lines), 0)
	pad := lipgloss.NewStyle().Width(width).MaxWidth(width)
	for i, l := range lines {
		if start+i >= len(rows) {
			break
		}
		rows[start+i] = pad.Render(l)
	}
	return strings.Join(rows, "\n")
}

func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
