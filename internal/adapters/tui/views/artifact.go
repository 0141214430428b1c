package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"archeologist/internal/adapters/tui/styles"
	"archeologist/internal/domain"
)

// ArtifactPlaceholder is shown while nothing is selected
const ArtifactPlaceholder = "Click any node to reveal its secrets."

// ArtifactView shows the selected node's metadata and source
type ArtifactView struct {
	node *domain.Node
	code viewport.Model
}

// NewArtifactView creates an empty artifact pane
func NewArtifactView() *ArtifactView {
	return &ArtifactView{code: viewport.New(0, 0)}
}

// SetNode shows n, or the placeholder when n is nil
func (v *ArtifactView) SetNode(n *domain.Node) {
	v.node = n
	if n != nil {
		v.code.SetContent(styles.Code.Render(n.Snippet()))
		v.code.GotoTop()
	}
}

// Node returns the displayed node
func (v *ArtifactView) Node() *domain.Node {
	return v.node
}

// ScrollDown moves the code viewport one line down
func (v *ArtifactView) ScrollDown() { v.code.LineDown(1) }

// ScrollUp moves the code viewport one line up
func (v *ArtifactView) ScrollUp() { v.code.LineUp(1) }

// View renders the pane body in width×height cells
func (v *ArtifactView) View(width, height int) string {
	if v.node == nil {
		return styles.MutedText.Render(ArtifactPlaceholder)
	}
	n := v.node

	header := []string{
		styles.Title.Render(Truncate(n.Name, width)),
		RenderLabelValue("Type", orNA(n.Type)),
		RenderLabelValue("File", Truncate(n.FileName(), width-6)),
		RenderLabelValue("Cluster", fmt.Sprintf("%s %s", styles.ClusterDot(n.Cluster), n.Cluster.Display())),
	}
	if n.StartLine > 0 {
		header = append(header, RenderLabelValue("Lines", fmt.Sprintf("%d-%d", n.StartLine, n.EndLine)))
	}

	v.code.Width = width
	v.code.Height = max(height-len(header)-1, 0)
	return strings.Join(header, "\n") + "\n\n" + v.code.View()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
