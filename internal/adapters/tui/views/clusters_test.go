package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"archeologist/internal/application/commands"
	"archeologist/internal/domain"
)

func clusterInfos(n int) []commands.ClusterInfo {
	infos := make([]commands.ClusterInfo, n)
	for i := range infos {
		infos[i] = commands.ClusterInfo{
			ClusterSummaryStats: domain.ClusterSummaryStats{ID: domain.NumericClusterID(i), Members: i + 1},
		}
	}
	return infos
}

func TestClusterListModel_Empty(t *testing.T) {
	m := NewClusterListModel()

	_, ok := m.Selected()
	assert.False(t, ok)
	_, ok = m.At(0)
	assert.False(t, ok)
	assert.Contains(t, m.View(30, true), "No clusters")
}

func TestClusterListModel_AtFollowsPage(t *testing.T) {
	m := NewClusterListModel()
	m.SetClusters(clusterInfos(7))
	m.SetRows(3)

	id, ok := m.At(2)
	assert.True(t, ok)
	assert.Equal(t, "2", id.String())

	_, ok = m.At(3)
	assert.False(t, ok, "row beyond the page")

	m.NextPage()
	id, ok = m.At(0)
	assert.True(t, ok)
	assert.Equal(t, "3", id.String())

	selected, _ := m.Selected()
	assert.Equal(t, "3", selected.String())
}

func TestClusterListModel_CursorMoves(t *testing.T) {
	m := NewClusterListModel()
	m.SetClusters(clusterInfos(2))

	m.CursorDown()
	m.CursorDown()
	id, _ := m.Selected()
	assert.Equal(t, "1", id.String())

	m.CursorUp()
	id, _ = m.Selected()
	assert.Equal(t, "0", id.String())
}

func TestClusterListModel_ViewShowsPages(t *testing.T) {
	m := NewClusterListModel()
	m.SetClusters(clusterInfos(5))
	m.SetRows(2)

	view := m.View(30, true)
	assert.Contains(t, view, "1 nodes")
	assert.Contains(t, view, "page 1/3")
}
