package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo on the snapshots table.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	b, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	if snap.Sequence == 0 {
		cur, err := r.seq.Current(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = cur
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	query, args := builder().Insert(snapshotsTable.Name).
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, snap.Timestamp, b).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = int(id)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := builder().Select("id", "sequence", "timestamp", "data").
		From(entsql.Table(snapshotsTable.Name)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		snap Snapshot
		raw  []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&snap.ID, &snap.Sequence, &snap.Timestamp, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	if err := json.Unmarshal(raw, &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %d: %w: %v", snap.ID, ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest snapshot that falls outside the window.
	query, args := builder().Select("id").
		From(entsql.Table(snapshotsTable.Name)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Offset(keep).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // fewer than keep snapshots exist
		}
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(snapshotsTable.Name).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
