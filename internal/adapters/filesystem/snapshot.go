// Package filesystem reads and writes graph snapshot files and serves them
// as an offline backend.
package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"archeologist/internal/application"
	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

// Compile-time interface check
var _ ports.Backend = (*Source)(nil)

// DefaultDebounce is how long Watch waits for writes to settle
const DefaultDebounce = 150 * time.Millisecond

// File is the on-disk snapshot layout: the /graph payload plus an optional
// /clusters listing
type File struct {
	Nodes    []*domain.Node          `json:"nodes"`
	Links    []domain.Link           `json:"links"`
	Clusters []domain.ClusterSummary `json:"clusters,omitempty"`
}

// Load reads a snapshot file. Both "links" and "edges" are accepted.
func Load(path string) (*domain.Graph, []domain.ClusterSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	g, err := domain.ParseGraph(data)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot %s: %w", path, err)
	}

	var extra struct {
		Clusters []domain.ClusterSummary `json:"clusters"`
	}
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return g, extra.Clusters, nil
}

// Save writes a snapshot atomically through a temp file in the same directory
func Save(path string, g *domain.Graph, clusters []domain.ClusterSummary) error {
	if g == nil {
		g = domain.NewGraph(nil, nil)
	}
	data, err := json.MarshalIndent(File{Nodes: g.Nodes, Links: g.Links, Clusters: clusters}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Source serves a snapshot file as a backend. Every fetch rereads the file.
type Source struct {
	path string
}

// NewSource creates a backend reading path
func NewSource(path string) *Source {
	return &Source{path: path}
}

// FetchGraph reads the snapshot's graph
func (s *Source) FetchGraph(ctx context.Context) (*domain.Graph, error) {
	g, _, err := Load(s.path)
	if err != nil {
		return nil, &application.BackendError{Endpoint: s.path, Err: err}
	}
	return g, nil
}

// FetchClusters returns the snapshot's cluster listing
func (s *Source) FetchClusters(ctx context.Context) ([]domain.ClusterSummary, error) {
	_, clusters, err := Load(s.path)
	if err != nil {
		return nil, &application.BackendError{Endpoint: s.path, Err: err}
	}
	return clusters, nil
}

// Query is unavailable offline
func (s *Source) Query(ctx context.Context, text string) (string, error) {
	return "", &application.BackendError{Endpoint: "/query", Err: errors.New("snapshot source cannot answer queries")}
}

// Watch calls onChange with the reloaded snapshot each time the file at
// path is written or replaced, until ctx is done. The parent directory is
// watched so editors that save by rename are seen.
func Watch(ctx context.Context, path string, logger *zap.Logger, onChange func(*domain.Graph, []domain.ClusterSummary)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(DefaultDebounce)
			} else {
				timer.Reset(DefaultDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			g, clusters, err := Load(abs)
			if err != nil {
				logger.Warn("snapshot reload failed", zap.String("path", abs), zap.Error(err))
				continue
			}
			logger.Info("snapshot reloaded", zap.String("path", abs), zap.Int("nodes", g.NodeCount()))
			onChange(g, clusters)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}
