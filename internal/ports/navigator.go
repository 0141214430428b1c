package ports

import "archeologist/internal/domain"

// Navigator is the navigation capability handed to the UI
type Navigator interface {
	FocusNode(n *domain.Node)
	FocusCluster(id domain.ClusterID) bool
	SelectFromSearch(n *domain.Node)
	ClearSelection()
	Overview()

	Search(query string) domain.SearchResults
	ClearSearch()

	Selected() *domain.Node
	SearchState() domain.SearchResults
}
