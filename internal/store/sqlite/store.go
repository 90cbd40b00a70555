// Package sqlite persists registry snapshots to a single SQLite table as
// JSON blobs, one row per bucket. The full state is rewritten after every
// successful mutation, which keeps each SaveAll atomic under one
// transaction.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"sgip/internal/domain"
	"sgip/internal/store"
)

type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) the database at path and ensures the
// state table exists.
func New(path string) (*Store, error) {
	if path == "" {
		path = "sgip.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Load(ctx context.Context) (store.Snapshot, error) {
	snap := store.Snapshot{}
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return snap, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return snap, fmt.Errorf("scan: %w", err)
		}
		if err := decodeBucket(&snap, bucket, payload); err != nil {
			return snap, err
		}
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate state: %w", err)
	}
	return snap, nil
}

func decodeBucket(snap *store.Snapshot, bucket string, payload []byte) error {
	var err error
	switch bucket {
	case store.BucketParishioners:
		err = json.Unmarshal(payload, &snap.Parishioners)
	case store.BucketFinances:
		err = json.Unmarshal(payload, &snap.Transactions)
	case store.BucketSacraments:
		err = json.Unmarshal(payload, &snap.Sacraments)
	case store.BucketCEVs:
		err = json.Unmarshal(payload, &snap.CEVs)
	case store.BucketUsers:
		err = json.Unmarshal(payload, &snap.Users)
	case store.BucketAudit:
		err = json.Unmarshal(payload, &snap.AuditLogs)
	case store.BucketIntentions:
		err = json.Unmarshal(payload, &snap.Intentions)
	case store.BucketProjects:
		err = json.Unmarshal(payload, &snap.Projects)
	case store.BucketSettings:
		err = json.Unmarshal(payload, &snap.Settings)
	case store.BucketSession:
		// Session is loaded through LoadSession, not with the snapshot.
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", bucket, err)
	}
	return nil
}

func (s *Store) SaveAll(ctx context.Context, snap store.Snapshot) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	buckets := []struct {
		name  string
		value any
	}{
		{store.BucketParishioners, snap.Parishioners},
		{store.BucketFinances, snap.Transactions},
		{store.BucketSacraments, snap.Sacraments},
		{store.BucketCEVs, snap.CEVs},
		{store.BucketUsers, snap.Users},
		{store.BucketAudit, snap.AuditLogs},
		{store.BucketIntentions, snap.Intentions},
		{store.BucketProjects, snap.Projects},
	}
	for _, b := range buckets {
		if err := upsert(tx, b.name, b.value); err != nil {
			retErr = err
			return retErr
		}
	}
	if snap.Settings != nil {
		if err := upsert(tx, store.BucketSettings, snap.Settings); err != nil {
			retErr = err
			return retErr
		}
	}
	return tx.Commit()
}

func upsert(tx *sql.Tx, bucket string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", bucket, err)
	}
	if _, err := tx.Exec(
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		bucket, data,
	); err != nil {
		return fmt.Errorf("upsert %s: %w", bucket, err)
	}
	return nil
}

func (s *Store) SaveSession(ctx context.Context, session domain.User) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		store.BucketSession, data,
	); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *Store) LoadSession(ctx context.Context) (domain.User, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM state WHERE bucket = ?`, store.BucketSession,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("select session: %w", err)
	}
	var session domain.User
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.User{}, false, fmt.Errorf("decode session: %w", err)
	}
	return session, true, nil
}

func (s *Store) DeleteSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM state WHERE bucket = ?`, store.BucketSession,
	); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

func (s *Store) Close() error { return s.db.Close() }
