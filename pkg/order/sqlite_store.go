// Copyright 2025 Christopher O'Connell
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id          TEXT PRIMARY KEY,
	number      TEXT NOT NULL UNIQUE,
	customer    TEXT NOT NULL,
	total_cents INTEGER NOT NULL,
	status      TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
)`

const orderColumns = `id, number, customer, total_cents, status, notes, created_at, updated_at`

// SQLiteStore persists orders in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite store path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single connection keeps :memory: databases and writes consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: orDiscard(logger)}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(r rowScanner) (Order, error) {
	var (
		o                Order
		status           string
		created, updated int64
	)
	if err := r.Scan(&o.ID, &o.Number, &o.Customer, &o.TotalCents, &status, &o.Notes, &created, &updated); err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	o.CreatedAt = time.UnixMilli(created).UTC()
	o.UpdatedAt = time.UnixMilli(updated).UTC()
	return o, nil
}

// List returns all orders, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Order, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	sortByNumber(orders)
	return orders, nil
}

// Get returns the order with the given number.
func (s *SQLiteStore) Get(ctx context.Context, number string) (Order, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE number = ?`, number)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, fmt.Errorf("%w: %s", ErrNotFound, number)
	}
	if err != nil {
		return Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

// Create stores a new order, filling its ID, number and timestamps.
func (s *SQLiteStore) Create(ctx context.Context, o *Order) error {
	existing, err := s.List(ctx)
	if err != nil {
		return err
	}
	if err := prepareNew(o, existing); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Number, o.Customer, o.TotalCents, string(o.Status), o.Notes,
		o.CreatedAt.UnixMilli(), o.UpdatedAt.UnixMilli())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("%w: number %s already exists", ErrInvalidOrder, o.Number)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	s.logger.Debug("order created", "number", o.Number)
	return nil
}

// Update replaces the order with the same number.
func (s *SQLiteStore) Update(ctx context.Context, o Order) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET customer = ?, total_cents = ?, status = ?, notes = ?, updated_at = ? WHERE number = ?`,
		o.Customer, o.TotalCents, string(o.Status), o.Notes, o.UpdatedAt.UnixMilli(), o.Number)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return requireAffected(res, o.Number)
}

// Delete removes the order with the given number.
func (s *SQLiteStore) Delete(ctx context.Context, number string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE number = ?`, number)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return requireAffected(res, number)
}

// SetStatus moves the order from one status to another if it is still in from.
func (s *SQLiteStore) SetStatus(ctx context.Context, number string, from, to Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE number = ? AND status = ?`,
		string(to), now().UnixMilli(), number, string(from))
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return s.requireMatched(ctx, res, number, from)
}

// DeleteIfStatus removes the order if it is still in status st.
func (s *SQLiteStore) DeleteIfStatus(ctx context.Context, number string, st Status) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE number = ? AND status = ?`, number, string(st))
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return s.requireMatched(ctx, res, number, st)
}

// requireMatched tells a missing order apart from one whose status moved on
// when a conditional statement touched no rows.
func (s *SQLiteStore) requireMatched(ctx context.Context, res sql.Result, number string, want Status) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read result: %w", err)
	}
	if n > 0 {
		return nil
	}
	o, err := s.Get(ctx, number)
	if err != nil {
		return err
	}
	s.logger.Debug("conditional write lost", "number", number, "expected", string(want), "status", string(o.Status))
	return conflict(number, want, o.Status)
}

func requireAffected(res sql.Result, number string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, number)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
