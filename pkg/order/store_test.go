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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	y, err := Open(DriverYAML, filepath.Join(dir, "orders.yml"), nil)
	require.NoError(t, err)
	s, err := Open(DriverSQLite, filepath.Join(dir, "orders.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		y.Close()
		s.Close()
	})
	return map[string]Store{DriverYAML: y, DriverSQLite: s}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("postgres", "x", nil)
	assert.Error(t, err)
}

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			o := &Order{Customer: "Ada Lovelace", TotalCents: 4200, Notes: "gift wrap"}
			require.NoError(t, s.Create(ctx, o))

			assert.NotEmpty(t, o.ID)
			assert.Equal(t, "ORD-1001", o.Number)
			assert.Equal(t, StatusPending, o.Status)
			assert.False(t, o.CreatedAt.IsZero())

			got, err := s.Get(ctx, "ORD-1001")
			require.NoError(t, err)
			assert.Equal(t, o.ID, got.ID)
			assert.Equal(t, "Ada Lovelace", got.Customer)
			assert.Equal(t, int64(4200), got.TotalCents)
			assert.Equal(t, "gift wrap", got.Notes)
			assert.True(t, got.CreatedAt.Equal(o.CreatedAt))
		})
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, c := range []string{"a", "b", "c"} {
				require.NoError(t, s.Create(ctx, &Order{Customer: c}))
			}

			orders, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, orders, 3)
			assert.Equal(t, "ORD-1003", orders[0].Number)
			assert.Equal(t, "ORD-1001", orders[2].Number)
		})
	}
}

func TestStore_RejectsInvalidAndDuplicate(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Create(ctx, &Order{}), ErrInvalidOrder)

			require.NoError(t, s.Create(ctx, &Order{Customer: "a", Number: "ORD-2000"}))
			assert.ErrorIs(t, s.Create(ctx, &Order{Customer: "b", Number: "ORD-2000"}), ErrInvalidOrder)
		})
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			o := &Order{Customer: "Grace"}
			require.NoError(t, s.Create(ctx, o))

			o.Status = StatusProcessing
			require.NoError(t, s.Update(ctx, *o))
			got, err := s.Get(ctx, o.Number)
			require.NoError(t, err)
			assert.Equal(t, StatusProcessing, got.Status)

			require.NoError(t, s.Delete(ctx, o.Number))
			_, err = s.Get(ctx, o.Number)
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, s.Delete(ctx, o.Number), ErrNotFound)
			assert.ErrorIs(t, s.Update(ctx, *o), ErrNotFound)
		})
	}
}

func TestYAMLStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orders.yml")

	s1, err := OpenYAML(path, nil)
	require.NoError(t, err)
	require.NoError(t, s1.Create(ctx, &Order{Customer: "Linus", TotalCents: 999}))

	s2, err := OpenYAML(path, nil)
	require.NoError(t, err)
	orders, err := s2.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Linus", orders[0].Customer)
}

func TestYAMLStore_CancelledContext(t *testing.T) {
	s, err := OpenYAML(filepath.Join(t.TempDir(), "orders.yml"), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ConditionalWrites(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, c := range []string{"a", "b"} {
				require.NoError(t, s.Create(ctx, &Order{Customer: c}))
			}

			require.NoError(t, s.SetStatus(ctx, "ORD-1001", StatusPending, StatusProcessing))
			o, err := s.Get(ctx, "ORD-1001")
			require.NoError(t, err)
			assert.Equal(t, StatusProcessing, o.Status)

			err = s.SetStatus(ctx, "ORD-1001", StatusPending, StatusCancelled)
			assert.ErrorIs(t, err, ErrConflict)
			o, _ = s.Get(ctx, "ORD-1001")
			assert.Equal(t, StatusProcessing, o.Status, "lost write leaves the order alone")

			assert.ErrorIs(t, s.DeleteIfStatus(ctx, "ORD-1002", StatusShipped), ErrConflict)
			require.NoError(t, s.DeleteIfStatus(ctx, "ORD-1002", StatusPending))
			_, err = s.Get(ctx, "ORD-1002")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, s.SetStatus(ctx, "ORD-9999", StatusPending, StatusProcessing), ErrNotFound)
			assert.ErrorIs(t, s.DeleteIfStatus(ctx, "ORD-9999", StatusPending), ErrNotFound)
		})
	}
}
