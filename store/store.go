/*
 * store.go, part of mdbin.
 *
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package store keeps finished runs in an SQLite database, so they can be listed and
// reloaded later without recomputing them.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/rmera/mdbin/distrib"
	"github.com/rmera/mdbin/histo"
	"github.com/rmera/mdbin/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no run has the requested id.
var ErrNotFound = errors.New("store: run not found")

// Store is an SQLite database of runs. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Info describes a stored run.
type Info struct {
	ID      string
	Label   string
	Created time.Time
	NFrames int
}

// Run is a stored run with its results.
type Run struct {
	Info
	Result *distrib.Result
}

// Open opens, creating it if needed, the database at path. ":memory:" gives a
// database that lives as long as the Store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: failed to open %s: %w", path, err)
	}
	if path == ":memory:" {
		// each connection has its own in-memory database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to create schema in %s: %w", path, err)
	}
	logging.L().Debug("store: opened database", zap.String("path", path))
	return &Store{db: db}, nil
}

// Close closes the database.
func (S *Store) Close() error { return S.db.Close() }

// SaveRun stores res under a new id, which it returns.
func (S *Store) SaveRun(ctx context.Context, label string, res *distrib.Result) (string, error) {
	if res == nil {
		return "", fmt.Errorf("store: nil result for run %q", label)
	}
	id := uuid.NewString()
	tx, err := S.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, label, created_ns, n_frames, mean_volume, mean_surface_area, discarded)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, label, time.Now().UnixNano(), res.NFrames, res.MeanVolume, res.MeanSurfaceArea, res.Discarded)
	if err != nil {
		return "", fmt.Errorf("store: failed to insert run %q: %w", label, err)
	}
	for k, N := range res.Bins {
		data, err := json.Marshal(N)
		if err != nil {
			return "", fmt.Errorf("store: failed to encode bins %d of run %q: %w", k, label, err)
		}
		var name string
		if k < len(res.Names) {
			name = res.Names[k]
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO bins (run_id, idx, name, data) VALUES (?, ?, ?, ?)`,
			id, k, name, string(data)); err != nil {
			return "", fmt.Errorf("store: failed to insert bins %d of run %q: %w", k, label, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: failed to commit run %q: %w", label, err)
	}
	logging.L().Debug("store: saved run", zap.String("id", id), zap.String("label", label), zap.Int("groups", len(res.Bins)))
	return id, nil
}

// LoadRun returns the run with the given id, or ErrNotFound.
func (S *Store) LoadRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{Result: &distrib.Result{}}
	var created int64
	row := S.db.QueryRowContext(ctx, `
		SELECT id, label, created_ns, n_frames, mean_volume, mean_surface_area, discarded
		FROM runs WHERE id = ?`, id)
	err := row.Scan(&run.ID, &run.Label, &created, &run.NFrames,
		&run.Result.MeanVolume, &run.Result.MeanSurfaceArea, &run.Result.Discarded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: failed to read run %s: %w", id, err)
	}
	run.Created = time.Unix(0, created)
	run.Result.NFrames = run.NFrames

	rows, err := S.db.QueryContext(ctx, `SELECT name, data FROM bins WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("store: failed to read bins of run %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("store: failed to scan bins of run %s: %w", id, err)
		}
		N := &histo.NDim{}
		if err := json.Unmarshal([]byte(data), N); err != nil {
			return nil, fmt.Errorf("store: failed to decode bins %q of run %s: %w", name, id, err)
		}
		run.Result.Names = append(run.Result.Names, name)
		run.Result.Bins = append(run.Result.Bins, N)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: failed to read bins of run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns all the stored runs, oldest first.
func (S *Store) ListRuns(ctx context.Context) ([]Info, error) {
	rows, err := S.db.QueryContext(ctx, `SELECT id, label, created_ns, n_frames FROM runs ORDER BY created_ns, rowid`)
	if err != nil {
		return nil, fmt.Errorf("store: failed to list runs: %w", err)
	}
	defer rows.Close()
	var ret []Info
	for rows.Next() {
		var in Info
		var created int64
		if err := rows.Scan(&in.ID, &in.Label, &created, &in.NFrames); err != nil {
			return nil, fmt.Errorf("store: failed to scan run: %w", err)
		}
		in.Created = time.Unix(0, created)
		ret = append(ret, in)
	}
	return ret, rows.Err()
}

// DeleteRun removes the run with the given id and its bins, or returns ErrNotFound.
func (S *Store) DeleteRun(ctx context.Context, id string) error {
	tx, err := S.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM bins WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("store: failed to delete bins of run %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: failed to delete run %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx.Commit()
}
