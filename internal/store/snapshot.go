package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// snapshotRepo implements SnapshotRepo over raw SQL.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	payload, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	// Callers usually leave Sequence zero and let the global counter
	// assign one, so snapshots stay ordered relative to events.
	seq := snap.Sequence
	if seq == 0 {
		seq, err = r.seq.Next(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = seq
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (sequence, created_at, data) VALUES (?, ?, ?)`,
		seq, ts.UTC().Format(time.RFC3339), string(payload),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, created_at, data FROM snapshots
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
	)

	var (
		snap      Snapshot
		createdAt string
		payload   string
	)
	err := row.Scan(&snap.ID, &snap.Sequence, &createdAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	snap.Timestamp, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &snap.Data); err != nil {
		return nil, fmt.Errorf("decode snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY created_at DESC, id DESC LIMIT ?
		)`, keep,
	)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
