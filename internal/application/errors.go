package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound           = errors.New("not found")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrEmptyCluster       = errors.New("cluster has no members")
	ErrNotNavigable       = errors.New("node has no position")
	ErrInvalidQuery       = errors.New("invalid query")
)

// BackendError represents a failed request to the analysis backend
type BackendError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend %s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("backend %s: %v", e.Endpoint, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// NodeError represents a lookup or navigation failure for one node
type NodeError struct {
	ID  string
	Err error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %v", e.ID, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
