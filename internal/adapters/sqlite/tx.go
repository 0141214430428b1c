package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"archeologist/internal/domain"
)

// cacheTx groups the writes of one snapshot save
type cacheTx struct {
	tx *sql.Tx
}

func (c *Cache) begin(ctx context.Context) (*cacheTx, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &cacheTx{tx: tx}, nil
}

// clear removes the previous snapshot
func (t *cacheTx) clear() error {
	_, err := t.tx.Exec(`
		DELETE FROM nodes;
		DELETE FROM links;
		DELETE FROM clusters;
	`)
	return err
}

// insertNode stores a node at its position in the graph
func (t *cacheTx) insertNode(ord int, n *domain.Node) error {
	cluster, err := json.Marshal(n.Cluster)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(`
		INSERT INTO nodes (ord, id, name, file, code, kind, start_line, end_line, cluster, x, y, z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ord, n.ID, n.Name, n.File, n.Code, n.Type, n.StartLine, n.EndLine, string(cluster),
		nullFloat(n.X), nullFloat(n.Y), nullFloat(n.Z))
	return err
}

func (t *cacheTx) insertLink(ord int, l domain.Link) error {
	_, err := t.tx.Exec(`
		INSERT INTO links (ord, source, target, weight) VALUES (?, ?, ?, ?)
	`, ord, l.Source, l.Target, l.Weight)
	return err
}

func (t *cacheTx) insertCluster(ord int, s domain.ClusterSummary) error {
	id, err := json.Marshal(s.ID)
	if err != nil {
		return err
	}
	members := s.Nodes
	if members == nil {
		members = []string{}
	}
	encoded, err := json.Marshal(members)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(`
		INSERT INTO clusters (ord, cluster, name, node_count, members, risk_score)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ord, string(id), s.Name, s.NodeCount, string(encoded), s.RiskScore)
	return err
}

func (t *cacheTx) setMeta(key, value string) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Commit commits the transaction
func (t *cacheTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *cacheTx) Rollback() error {
	return t.tx.Rollback()
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
