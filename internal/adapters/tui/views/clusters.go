package views

import (
	"fmt"
	"strings"

	"archeologist/internal/adapters/tui/styles"
	"archeologist/internal/application/commands"
	"archeologist/internal/domain"
)

// ClusterListModel is the left pane: one row per cluster, in numeric order
type ClusterListModel struct {
	clusters  []commands.ClusterInfo
	paginator *Paginator
}

// NewClusterListModel creates an empty cluster list
func NewClusterListModel() *ClusterListModel {
	return &ClusterListModel{paginator: NewPaginator(10)}
}

// SetClusters replaces the listed clusters
func (m *ClusterListModel) SetClusters(clusters []commands.ClusterInfo) {
	m.clusters = clusters
	m.paginator.SetTotal(len(clusters))
}

// SetRows sets how many clusters fit in the pane
func (m *ClusterListModel) SetRows(rows int) {
	m.paginator.SetPageSize(rows)
}

// Len returns the number of clusters
func (m *ClusterListModel) Len() int {
	return len(m.clusters)
}

func (m *ClusterListModel) CursorUp()   { m.paginator.CursorUp() }
func (m *ClusterListModel) CursorDown() { m.paginator.CursorDown() }
func (m *ClusterListModel) NextPage()   { m.paginator.NextPage() }
func (m *ClusterListModel) PrevPage()   { m.paginator.PrevPage() }

// Selected returns the cluster under the cursor
func (m *ClusterListModel) Selected() (domain.ClusterID, bool) {
	if len(m.clusters) == 0 {
		return domain.ClusterID{}, false
	}
	return m.clusters[m.paginator.Cursor()].ID, true
}

// At returns the cluster drawn on the given list row, moving the cursor to it
func (m *ClusterListModel) At(row int) (domain.ClusterID, bool) {
	start, end := m.paginator.VisibleRange()
	i := start + row
	if row < 0 || i >= end {
		return domain.ClusterID{}, false
	}
	m.paginator.SetCursor(i)
	return m.clusters[i].ID, true
}

// View renders the visible page
func (m *ClusterListModel) View(width int, focused bool) string {
	if len(m.clusters) == 0 {
		return styles.MutedText.Render("No clusters")
	}

	var b strings.Builder
	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		c := m.clusters[i]
		count := fmt.Sprintf("%d nodes", c.Members)
		name := Truncate(c.Name, width-len(count)-4)
		text := fmt.Sprintf("%s %s  %s", styles.ClusterDot(c.ID), padRight(name, width-len(count)-4), styles.MutedText.Render(count))
		if focused && i == m.paginator.Cursor() {
			text = styles.ListSelected.Render("› ") + text
		} else {
			text = "  " + text
		}
		b.WriteString(text)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	if m.paginator.TotalPages() > 1 {
		fmt.Fprintf(&b, "\n%s", styles.MutedText.Render(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())))
	}
	return b.String()
}
