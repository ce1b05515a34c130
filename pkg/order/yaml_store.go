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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLStore keeps all orders in a single YAML document.
type YAMLStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

type yamlDocument struct {
	Orders []Order `yaml:"orders"`
}

// OpenYAML opens the YAML store at path, creating its directory.
func OpenYAML(path string, logger *slog.Logger) (*YAMLStore, error) {
	if path == "" {
		return nil, errors.New("yaml store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &YAMLStore{path: path, logger: orDiscard(logger)}, nil
}

func (s *YAMLStore) load() ([]Order, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return doc.Orders, nil
}

// save replaces the file atomically.
func (s *YAMLStore) save(orders []Order) error {
	data, err := yaml.Marshal(yamlDocument{Orders: orders})
	if err != nil {
		return fmt.Errorf("failed to encode orders: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".orders-*.yml")
	if err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write orders: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	s.logger.Debug("orders saved", "path", s.path, "count", len(orders))
	return nil
}

// List returns all orders, newest first.
func (s *YAMLStore) List(ctx context.Context) ([]Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return nil, err
	}
	sortByNumber(orders)
	return orders, nil
}

// Get returns the order with the given number.
func (s *YAMLStore) Get(ctx context.Context, number string) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return Order{}, err
	}
	for _, o := range orders {
		if o.Number == number {
			return o, nil
		}
	}
	return Order{}, fmt.Errorf("%w: %s", ErrNotFound, number)
}

// Create stores a new order, filling its ID, number and timestamps.
func (s *YAMLStore) Create(ctx context.Context, o *Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	if err := prepareNew(o, orders); err != nil {
		return err
	}
	for _, existing := range orders {
		if existing.Number == o.Number {
			return fmt.Errorf("%w: number %s already exists", ErrInvalidOrder, o.Number)
		}
	}
	return s.save(append(orders, *o))
}

// Update replaces the order with the same number.
func (s *YAMLStore) Update(ctx context.Context, o Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].Number == o.Number {
			orders[i] = o
			return s.save(orders)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, o.Number)
}

// Delete removes the order with the given number.
func (s *YAMLStore) Delete(ctx context.Context, number string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].Number == number {
			return s.save(append(orders[:i], orders[i+1:]...))
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, number)
}

// SetStatus moves the order from one status to another if it is still in from.
func (s *YAMLStore) SetStatus(ctx context.Context, number string, from, to Status) error {
	return s.modifyIf(ctx, number, from, func(orders []Order, i int) []Order {
		orders[i].Status = to
		orders[i].UpdatedAt = now()
		return orders
	})
}

// DeleteIfStatus removes the order if it is still in status st.
func (s *YAMLStore) DeleteIfStatus(ctx context.Context, number string, st Status) error {
	return s.modifyIf(ctx, number, st, func(orders []Order, i int) []Order {
		return append(orders[:i], orders[i+1:]...)
	})
}

// modifyIf applies fn to the order list under the lock when the order is in
// status want.
func (s *YAMLStore) modifyIf(ctx context.Context, number string, want Status, fn func([]Order, int) []Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].Number != number {
			continue
		}
		if orders[i].Status != want {
			return conflict(number, want, orders[i].Status)
		}
		return s.save(fn(orders, i))
	}
	return fmt.Errorf("%w: %s", ErrNotFound, number)
}

// Close is a no-op; the file is only open while reading or writing.
func (s *YAMLStore) Close() error { return nil }
