package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"archeologist/internal/application"
	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

const schemaVersion = 1

// Cache implements ports.GraphCache on a local SQLite database. It holds
// exactly one snapshot: each save replaces the previous one.
type Cache struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Ensure Cache implements GraphCache
var _ ports.GraphCache = (*Cache)(nil)

// Open opens or creates the cache database at path
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	c := &Cache{db: db, path: path, now: time.Now}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return c, nil
}

// Path returns the database file path
func (c *Cache) Path() string {
	return c.path
}

// Close closes the database connection
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) initSchema() error {
	_, err := c.db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS nodes (
			ord INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			file TEXT NOT NULL DEFAULT '',
			code TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL DEFAULT '',
			start_line INTEGER NOT NULL DEFAULT 0,
			end_line INTEGER NOT NULL DEFAULT 0,
			cluster TEXT NOT NULL DEFAULT 'null',
			x REAL,
			y REAL,
			z REAL
		);

		CREATE TABLE IF NOT EXISTS links (
			ord INTEGER PRIMARY KEY,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			weight REAL NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS clusters (
			ord INTEGER PRIMARY KEY,
			cluster TEXT NOT NULL,
			name TEXT NOT NULL,
			node_count INTEGER NOT NULL,
			members TEXT NOT NULL DEFAULT '[]',
			risk_score TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_nodes_id ON nodes(id);
	`)
	if err != nil {
		return err
	}

	var version string
	err = c.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if err == sql.ErrNoRows {
		_, err = c.db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, strconv.Itoa(schemaVersion))
		return err
	}
	if err != nil {
		return err
	}
	if version != strconv.Itoa(schemaVersion) {
		return fmt.Errorf("unsupported cache schema version %s", version)
	}
	return nil
}

// SaveGraph replaces the cached snapshot in a single transaction
func (c *Cache) SaveGraph(ctx context.Context, g *domain.Graph, clusters []domain.ClusterSummary) error {
	if g == nil {
		return fmt.Errorf("failed to save graph: nil graph")
	}

	tx, err := c.begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	for i, n := range g.Nodes {
		if err := tx.insertNode(i, n); err != nil {
			return fmt.Errorf("failed to save node %s: %w", n.ID, err)
		}
	}
	for i, l := range g.Links {
		if err := tx.insertLink(i, l); err != nil {
			return fmt.Errorf("failed to save link %s -> %s: %w", l.Source, l.Target, err)
		}
	}
	for i, s := range clusters {
		if err := tx.insertCluster(i, s); err != nil {
			return fmt.Errorf("failed to save cluster %s: %w", s.ID, err)
		}
	}
	if err := tx.setMeta("fetched_at", c.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to update meta: %w", err)
	}

	return tx.Commit()
}

// LoadGraph returns the cached snapshot, or application.ErrNotFound when
// nothing has been saved yet
func (c *Cache) LoadGraph(ctx context.Context) (*domain.Graph, []domain.ClusterSummary, error) {
	if _, err := c.FetchedAt(ctx); err != nil {
		return nil, nil, err
	}

	nodes, err := c.loadNodes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load nodes: %w", err)
	}
	links, err := c.loadLinks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load links: %w", err)
	}
	clusters, err := c.loadClusters(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load clusters: %w", err)
	}

	return domain.NewGraph(nodes, links), clusters, nil
}

// FetchedAt returns when the cached snapshot was saved
func (c *Cache) FetchedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'fetched_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, application.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read meta: %w", err)
	}
	return time.Parse(time.RFC3339, value)
}

func (c *Cache) loadNodes(ctx context.Context) ([]*domain.Node, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, file, code, kind, start_line, end_line, cluster, x, y, z
		FROM nodes ORDER BY ord
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nodes := []*domain.Node{}
	for rows.Next() {
		var (
			n       domain.Node
			cluster string
			x, y, z sql.NullFloat64
		)
		if err := rows.Scan(&n.ID, &n.Name, &n.File, &n.Code, &n.Type, &n.StartLine, &n.EndLine, &cluster, &x, &y, &z); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(cluster), &n.Cluster); err != nil {
			return nil, err
		}
		n.X, n.Y, n.Z = nullable(x), nullable(y), nullable(z)
		nodes = append(nodes, &n)
	}
	return nodes, rows.Err()
}

func (c *Cache) loadLinks(ctx context.Context) ([]domain.Link, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT source, target, weight FROM links ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.Source, &l.Target, &l.Weight); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (c *Cache) loadClusters(ctx context.Context) ([]domain.ClusterSummary, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT cluster, name, node_count, members, risk_score
		FROM clusters ORDER BY ord
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clusters []domain.ClusterSummary
	for rows.Next() {
		var (
			s           domain.ClusterSummary
			id, members string
		)
		if err := rows.Scan(&id, &s.Name, &s.NodeCount, &members, &s.RiskScore); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(id), &s.ID); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(members), &s.Nodes); err != nil {
			return nil, err
		}
		clusters = append(clusters, s)
	}
	return clusters, rows.Err()
}

func nullable(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
