package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"growthlens/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS clients (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  website TEXT NOT NULL,
  sector TEXT NOT NULL DEFAULT '',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS audits (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  clientId INTEGER NOT NULL,
  fetchedAt TEXT NOT NULL,
  auditJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(clientId) REFERENCES clients(id)
);
CREATE INDEX IF NOT EXISTS idx_audits_client ON audits(clientId, id);

CREATE TABLE IF NOT EXISTS sector_answers (
  clientId INTEGER PRIMARY KEY,
  sector TEXT NOT NULL,
  answersJson TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(clientId) REFERENCES clients(id)
);

CREATE TABLE IF NOT EXISTS discovery_trees (
  clientId INTEGER PRIMARY KEY,
  treeJson TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(clientId) REFERENCES clients(id)
);

CREATE TABLE IF NOT EXISTS proposals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  clientId INTEGER NOT NULL,
  proposalJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(clientId) REFERENCES clients(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertClient(name, website, sector string) (internal.ClientRow, error) {
	_, err := d.conn.Exec(`
INSERT INTO clients(name, website, sector) VALUES(?, ?, ?)
ON CONFLICT(name) DO UPDATE SET website=excluded.website, sector=excluded.sector`,
		name, website, sector)
	if err != nil {
		return internal.ClientRow{}, err
	}
	return d.ClientByName(name)
}

func (d *DB) ClientByName(name string) (internal.ClientRow, error) {
	row := d.conn.QueryRow(`SELECT id, name, website, sector, createdAt FROM clients WHERE name = ?`, name)
	var client internal.ClientRow
	if err := row.Scan(&client.ID, &client.Name, &client.Website, &client.Sector, &client.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return internal.ClientRow{}, fmt.Errorf("client %q not found", name)
		}
		return internal.ClientRow{}, err
	}
	return client, nil
}

func (d *DB) ListClients() ([]internal.ClientRow, error) {
	rows, err := d.conn.Query(`SELECT id, name, website, sector, createdAt FROM clients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.ClientRow{}
	for rows.Next() {
		var client internal.ClientRow
		if err := rows.Scan(&client.ID, &client.Name, &client.Website, &client.Sector, &client.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, client)
	}
	return out, rows.Err()
}

func (d *DB) SaveAudit(clientID int, audit internal.AuditResult) error {
	blob, err := json.Marshal(audit)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`INSERT INTO audits(clientId, fetchedAt, auditJson) VALUES(?, ?, ?)`, clientID, audit.FetchedAt, string(blob))
	return err
}

// LatestAudit returns the most recent audit, or nil when none has been
// recorded yet — the normal pre-audit state, not an error.
func (d *DB) LatestAudit(ctx context.Context, clientID int) (*internal.AuditResult, error) {
	row := d.conn.QueryRowContext(ctx, `SELECT auditJson FROM audits WHERE clientId = ? ORDER BY id DESC LIMIT 1`, clientID)
	var blob string
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var audit internal.AuditResult
	if err := json.Unmarshal([]byte(blob), &audit); err != nil {
		return nil, err
	}
	return &audit, nil
}

func (d *DB) SaveSectorAnswers(clientID int, answers internal.SectorAnswers) error {
	blob, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`
INSERT INTO sector_answers(clientId, sector, answersJson, updatedAt) VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(clientId) DO UPDATE SET sector=excluded.sector, answersJson=excluded.answersJson, updatedAt=CURRENT_TIMESTAMP`,
		clientID, answers.Sector, string(blob))
	return err
}

func (d *DB) SectorAnswers(ctx context.Context, clientID int) (*internal.SectorAnswers, error) {
	row := d.conn.QueryRowContext(ctx, `SELECT answersJson FROM sector_answers WHERE clientId = ?`, clientID)
	var blob string
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var answers internal.SectorAnswers
	if err := json.Unmarshal([]byte(blob), &answers); err != nil {
		return nil, err
	}
	return &answers, nil
}

func (d *DB) SaveDiscoveryTree(clientID int, tree internal.DiscoveryTree) error {
	blob, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`
INSERT INTO discovery_trees(clientId, treeJson, updatedAt) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(clientId) DO UPDATE SET treeJson=excluded.treeJson, updatedAt=CURRENT_TIMESTAMP`,
		clientID, string(blob))
	return err
}

func (d *DB) DiscoveryTree(ctx context.Context, clientID int) (*internal.DiscoveryTree, error) {
	row := d.conn.QueryRowContext(ctx, `SELECT treeJson FROM discovery_trees WHERE clientId = ?`, clientID)
	var blob string
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var tree internal.DiscoveryTree
	if err := json.Unmarshal([]byte(blob), &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

func (d *DB) SaveProposal(clientID int, proposal internal.ProposalData) error {
	blob, err := json.Marshal(proposal)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`INSERT INTO proposals(clientId, proposalJson) VALUES(?, ?)`, clientID, string(blob))
	return err
}

func (d *DB) LatestProposal(clientID int) (*internal.ProposalData, error) {
	row := d.conn.QueryRow(`SELECT proposalJson FROM proposals WHERE clientId = ? ORDER BY id DESC LIMIT 1`, clientID)
	var blob string
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var proposal internal.ProposalData
	if err := json.Unmarshal([]byte(blob), &proposal); err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`INSERT INTO metadata(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (string, error) {
	row := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}
