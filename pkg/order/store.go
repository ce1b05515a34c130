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
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Store persists orders. Implementations are safe for concurrent use because
// confirmed actions run off the UI goroutine.
//
// SetStatus and DeleteIfStatus compare the stored status with the one the
// caller checked and fail with ErrConflict when it has moved on. SQLiteStore
// enforces this across processes; YAMLStore only within one process, so two
// processes sharing a YAML file can still overwrite each other's writes.
type Store interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, number string) (Order, error)
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o Order) error
	Delete(ctx context.Context, number string) error
	SetStatus(ctx context.Context, number string, from, to Status) error
	DeleteIfStatus(ctx context.Context, number string, st Status) error
	Close() error
}

// Store drivers
const (
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// Open opens the store selected by driver at path.
func Open(driver, path string, logger *slog.Logger) (Store, error) {
	switch driver {
	case "", DriverYAML:
		return OpenYAML(path, logger)
	case DriverSQLite:
		return OpenSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

// prepareNew fills generated fields on a new order.
func prepareNew(o *Order, existing []Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Number == "" {
		o.Number = NextNumber(existing)
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	t := now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = t
	}
	o.UpdatedAt = t
	return nil
}

func conflict(number string, want, got Status) error {
	return fmt.Errorf("%w: %s is %s, expected %s", ErrConflict, number, got, want)
}

// sortByNumber orders newest first.
func sortByNumber(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if len(orders[i].Number) != len(orders[j].Number) {
			return len(orders[i].Number) > len(orders[j].Number)
		}
		return orders[i].Number > orders[j].Number
	})
}
