// Package storage keeps a local SQLite record of fetched trial statuses
// so refreshes can report what actually changed between runs. The JSON
// dataset stays the source of truth; this is an audit trail.
package storage

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/afwatch/afwatch/pkg/registry"
)

type DB struct {
	sql *sql.DB
}

// Open opens (and if needed initializes) the database at path.
func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS trial_status (
  nct_id             TEXT PRIMARY KEY,
  item_id            TEXT NOT NULL,
  trial_name         TEXT NOT NULL,
  overall_status     TEXT,
  readout_date       TEXT,
  last_update_posted TEXT,
  first_seen_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS dataset_changes (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  nct_id      TEXT NOT NULL,
  item_id     TEXT NOT NULL,
  trial_name  TEXT NOT NULL,
  field       TEXT NOT NULL,
  old_value   TEXT,
  new_value   TEXT,
  change_type TEXT NOT NULL CHECK (change_type IN ('added','updated'))
);
CREATE INDEX IF NOT EXISTS idx_changes_time ON dataset_changes(occurred_at);
CREATE INDEX IF NOT EXISTS idx_changes_trial ON dataset_changes(nct_id, occurred_at);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Change captures one recorded difference for auditing or printing.
type Change struct {
	OccurredAt time.Time
	NCTID      string
	ItemID     string
	TrialName  string
	Field      string
	OldValue   string
	NewValue   string
	ChangeType string // added | updated
}

// RecordStatus stores the latest fetched status for a watched trial and
// returns the changes relative to the previous snapshot. A first sighting
// yields a single "added" change; later runs yield one "updated" change
// per differing field.
func (d *DB) RecordStatus(ctx context.Context, w registry.Watch, st *registry.Status) ([]Change, error) {
	now := time.Now().UTC()

	var prevStatus, prevReadout sql.NullString
	err := d.sql.QueryRowContext(ctx,
		"SELECT overall_status, readout_date FROM trial_status WHERE nct_id = ?", w.NCTID).
		Scan(&prevStatus, &prevReadout)

	if err == sql.ErrNoRows {
		_, err = d.sql.ExecContext(ctx, `INSERT INTO trial_status(nct_id, item_id, trial_name, overall_status, readout_date, last_update_posted) VALUES(?,?,?,?,?,?)`,
			w.NCTID, w.ItemID, w.TrialName, st.Overall, st.PrimaryCompletion, st.LastUpdatePosted)
		if err != nil {
			return nil, err
		}
		change := Change{OccurredAt: now, NCTID: w.NCTID, ItemID: w.ItemID, TrialName: w.TrialName, Field: "trial", NewValue: st.Overall, ChangeType: "added"}
		if err := d.logChange(ctx, change); err != nil {
			return nil, err
		}
		return []Change{change}, nil
	}
	if err != nil {
		return nil, err
	}

	var changes []Change
	if st.Overall != "" && st.Overall != prevStatus.String {
		changes = append(changes, Change{OccurredAt: now, NCTID: w.NCTID, ItemID: w.ItemID, TrialName: w.TrialName,
			Field: "overall_status", OldValue: prevStatus.String, NewValue: st.Overall, ChangeType: "updated"})
	}
	if st.PrimaryCompletion != "" && st.PrimaryCompletion != prevReadout.String {
		changes = append(changes, Change{OccurredAt: now, NCTID: w.NCTID, ItemID: w.ItemID, TrialName: w.TrialName,
			Field: "readout_date", OldValue: prevReadout.String, NewValue: st.PrimaryCompletion, ChangeType: "updated"})
	}

	_, err = d.sql.ExecContext(ctx, `UPDATE trial_status SET overall_status = ?, readout_date = ?, last_update_posted = ?, last_seen_at = CURRENT_TIMESTAMP WHERE nct_id = ?`,
		st.Overall, st.PrimaryCompletion, st.LastUpdatePosted, w.NCTID)
	if err != nil {
		return nil, err
	}

	for _, c := range changes {
		if err := d.logChange(ctx, c); err != nil {
			return nil, err
		}
	}
	return changes, nil
}

func (d *DB) logChange(ctx context.Context, c Change) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO dataset_changes(occurred_at, nct_id, item_id, trial_name, field, old_value, new_value, change_type) VALUES(?,?,?,?,?,?,?,?)`,
		c.OccurredAt, c.NCTID, c.ItemID, c.TrialName, c.Field, c.OldValue, c.NewValue, c.ChangeType)
	return err
}

// ListRecentChanges returns the most recent changes, newest first.
func (d *DB) ListRecentChanges(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.QueryContext(ctx,
		`SELECT occurred_at, nct_id, item_id, trial_name, field, old_value, new_value, change_type
		 FROM dataset_changes ORDER BY occurred_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var c Change
		var oldV, newV sql.NullString
		if err := rows.Scan(&c.OccurredAt, &c.NCTID, &c.ItemID, &c.TrialName, &c.Field, &oldV, &newV, &c.ChangeType); err != nil {
			return nil, err
		}
		c.OldValue = oldV.String
		c.NewValue = newV.String
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
