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

package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uprockcom/orderdesk/pkg/confirm"
	"github.com/uprockcom/orderdesk/pkg/order"
)

func newTestModel(t *testing.T, statuses ...order.Status) (Model, order.Store) {
	t.Helper()
	store, err := order.OpenYAML(filepath.Join(t.TempDir(), "orders.yml"), nil)
	require.NoError(t, err)
	for i, st := range statuses {
		require.NoError(t, store.Create(context.Background(), &order.Order{
			Customer:   []string{"Ada", "Grace", "Linus", "Ken"}[i%4],
			TotalCents: int64(1000 * (i + 1)),
			Status:     st,
		}))
	}

	m := New(Options{Store: store, AlertTTL: time.Millisecond})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = pump(t, m, m.Init())
	return m, store
}

// send applies msg and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// pump executes cmd and feeds every resulting message back into the model,
// following commands until nothing is left. Spinner frames and alert
// expiries are dropped so the loop terminates.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case nil, spinner.TickMsg, alertExpiredMsg:
			continue
		}
		next, follow := m.Update(msg)
		m = pump(t, next.(Model), follow)
	}
	return m
}

// press sends a key and pumps whatever it returns.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	return pump(t, next.(Model), cmd)
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestModel_LoadsOrders(t *testing.T) {
	m, _ := newTestModel(t, order.StatusPending, order.StatusShipped)

	assert.Len(t, m.orders, 2)
	assert.Len(t, m.home.Orders(), 2)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "ORD-1001")
	assert.Contains(t, view, "ORD-1002")
}

func TestModel_DeleteConfirmed(t *testing.T) {
	m, store := newTestModel(t, order.StatusPending)

	m = press(t, m, "d")
	require.True(t, m.Confirm().IsOpen())
	cfg, _ := m.Confirm().Config()
	assert.Equal(t, confirm.VariantDelete, cfg.Variant)
	assert.Equal(t, "Delete ORD-1001", cfg.Title)
	assert.Contains(t, ansi.Strip(m.View()), "Delete ORD-1001")

	m = press(t, m, "y")

	assert.False(t, m.Confirm().IsOpen())
	assert.False(t, m.Confirm().IsLoading())
	_, err := store.Get(context.Background(), "ORD-1001")
	assert.ErrorIs(t, err, order.ErrNotFound)
	assert.Empty(t, m.orders, "success reloads the list")
	assert.Equal(t, alertSuccess, m.alert.kind)
}

func TestModel_CancelLeavesOrder(t *testing.T) {
	m, store := newTestModel(t, order.StatusPending)

	m = press(t, m, "d")
	m = press(t, m, "n")

	assert.False(t, m.Confirm().IsOpen())
	_, err := store.Get(context.Background(), "ORD-1001")
	assert.NoError(t, err)
}

func TestModel_ShipPromptsWithSuccessVariant(t *testing.T) {
	m, store := newTestModel(t, order.StatusProcessing)

	m = press(t, m, "s")
	cfg, ok := m.Confirm().Config()
	require.True(t, ok)
	assert.Equal(t, confirm.VariantSuccess, cfg.Variant)

	m = press(t, m, "enter")

	o, err := store.Get(context.Background(), "ORD-1001")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, o.Status)
	assert.False(t, m.Confirm().IsOpen())
}

func TestModel_InvalidOperationNeverOpensDialog(t *testing.T) {
	m, _ := newTestModel(t, order.StatusDelivered)

	m = press(t, m, "x")

	assert.False(t, m.Confirm().IsOpen())
	assert.Equal(t, alertError, m.alert.kind)
	assert.Contains(t, m.alert.text, "ORD-1001")
}

func TestModel_FailedActionKeepsDialogOpen(t *testing.T) {
	m, store := newTestModel(t, order.StatusPending)

	m = press(t, m, "p")
	require.True(t, m.Confirm().IsOpen())

	// The order disappears before the action runs, so Apply fails.
	require.NoError(t, store.Delete(context.Background(), "ORD-1001"))
	m = press(t, m, "y")

	assert.True(t, m.Confirm().IsOpen())
	assert.False(t, m.Confirm().IsLoading())
	assert.Equal(t, alertError, m.alert.kind)
	assert.Contains(t, m.alert.text, "not found")
}

func TestModel_LateResultIgnoredAfterEsc(t *testing.T) {
	m, store := newTestModel(t, order.StatusPending)

	m = press(t, m, "d")
	next, cmd := m.Update(keyMsg("y"))
	m = next.(Model)
	require.True(t, m.Confirm().IsLoading())

	m = send(t, m, keyMsg("esc"))
	assert.False(t, m.Confirm().IsOpen())

	// The action still runs, but its result belongs to a closed cycle.
	m = pump(t, m, cmd)
	assert.False(t, m.Confirm().IsOpen())
	_, err := store.Get(context.Background(), "ORD-1001")
	assert.True(t, errors.Is(err, order.ErrNotFound))
	assert.Empty(t, m.alert.text, "no hook runs for a stale cycle")
	assert.Empty(t, m.orders, "the list is reloaded after the abandoned delete")
	assert.Empty(t, m.home.Orders())
}

// flakyStore fails List while fail is set.
type flakyStore struct {
	order.Store
	fail bool
}

func (f *flakyStore) List(ctx context.Context) ([]order.Order, error) {
	if f.fail {
		return nil, errors.New("disk on fire")
	}
	return f.Store.List(ctx)
}

func TestModel_LoadFailureOffersRetry(t *testing.T) {
	_, base := newTestModel(t, order.StatusPending)
	store := &flakyStore{Store: base, fail: true}

	m := New(Options{Store: store, AlertTTL: time.Millisecond})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = pump(t, m, m.Init())

	require.NotNil(t, m.modal)
	assert.Equal(t, ModalError, m.modal.Type)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Could not load orders")
	assert.Contains(t, view, "disk on fire")
	assert.Contains(t, view, "Retry")

	store.fail = false
	m = press(t, m, "enter")

	assert.Nil(t, m.modal)
	assert.Len(t, m.orders, 1, "retry reloads the orders")
}

func TestModel_LoadFailureDismiss(t *testing.T) {
	_, base := newTestModel(t, order.StatusPending)
	store := &flakyStore{Store: base, fail: true}

	m := New(Options{Store: store})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = pump(t, m, m.Init())
	require.NotNil(t, m.modal)

	store.fail = false
	m = press(t, m, "tab")
	m = press(t, m, "enter")

	assert.Nil(t, m.modal)
	assert.Empty(t, m.orders, "dismiss does not reload")
}

func TestModel_DialogCapturesInput(t *testing.T) {
	m, _ := newTestModel(t, order.StatusPending, order.StatusPending)

	m = press(t, m, "d")
	m = press(t, m, "q")
	assert.False(t, m.quitting, "q goes to the dialog, not the app")
	assert.True(t, m.Confirm().IsOpen())

	m = press(t, m, "2")
	assert.Equal(t, 0, m.activeTab)
}

func TestModel_Tabs(t *testing.T) {
	m, _ := newTestModel(t, order.StatusPending, order.StatusShipped, order.StatusShipped)

	m = press(t, m, "4")
	assert.Equal(t, order.StatusShipped, m.tabs[m.activeTab].Status)
	assert.Len(t, m.home.Orders(), 2)

	m = press(t, m, "tab")
	assert.Equal(t, order.StatusDelivered, m.tabs[m.activeTab].Status)
	assert.Empty(t, m.home.Orders())

	m = press(t, m, "1")
	assert.Len(t, m.home.Orders(), 3)
}

func TestModel_Filter(t *testing.T) {
	m, _ := newTestModel(t, order.StatusPending, order.StatusPending)

	m = send(t, m, keyMsg("/"))
	require.True(t, m.filtering)
	for _, r := range "grace" {
		m = send(t, m, keyMsg(string(r)))
	}
	require.Len(t, m.home.Orders(), 1)
	assert.Equal(t, "Grace", m.home.Orders()[0].Customer)

	m = send(t, m, keyMsg("enter"))
	assert.False(t, m.filtering)
	assert.Len(t, m.home.Orders(), 1, "enter keeps the filter")

	m = send(t, m, keyMsg("esc"))
	assert.Len(t, m.home.Orders(), 2, "esc clears it")
}

func TestModel_DetailsModal(t *testing.T) {
	m, _ := newTestModel(t, order.StatusPending)

	m = press(t, m, "enter")
	require.NotNil(t, m.modal)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Order ORD-1001")
	assert.Contains(t, view, "Ada")

	m = press(t, m, "esc")
	assert.Nil(t, m.modal)
}

func TestModel_HelpModal(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "?")
	require.NotNil(t, m.modal)
	assert.Equal(t, ModalHelp, m.modal.Type)

	m = press(t, m, "q")
	assert.Nil(t, m.modal)
	assert.False(t, m.quitting)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.(Model).View())
}

func TestModel_AlertExpires(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(alertMsg{kind: alertInfo, text: "hello"})
	m = next.(Model)
	assert.Contains(t, ansi.Strip(m.View()), "hello")

	expired := cmd()
	m = send(t, m, expired)
	assert.Empty(t, m.alert.text)
}

func TestModel_NewerAlertSurvivesOldExpiry(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, alertMsg{kind: alertInfo, text: "first"})
	m = send(t, m, alertMsg{kind: alertError, text: "second"})
	m = send(t, m, alertExpiredMsg{id: m.alertSeq - 1})

	assert.Equal(t, "second", m.alert.text)
}

func TestConfirmConfig_Variants(t *testing.T) {
	o := order.Order{Number: "ORD-1001", Customer: "Ada", TotalCents: 123456}

	cases := map[order.OperationType]confirm.Variant{
		order.OperationDelete:  confirm.VariantDelete,
		order.OperationCancel:  confirm.VariantWarning,
		order.OperationShip:    confirm.VariantSuccess,
		order.OperationProcess: confirm.VariantEdit,
		order.OperationDeliver: confirm.VariantInfo,
	}
	for op, want := range cases {
		cfg := confirmConfig(op, o)
		assert.Equal(t, want, cfg.Variant, op)
		assert.True(t, strings.HasSuffix(cfg.Title, "ORD-1001"), op)
		assert.NotEmpty(t, cfg.ConfirmText, op)
	}
	assert.Contains(t, confirmConfig(order.OperationDelete, o).Message, "$1,234.56")
	assert.Equal(t, "Keep order", confirmConfig(order.OperationCancel, o).CancelText)
}

func TestRun_RequiresStore(t *testing.T) {
	err := Run(context.Background(), Options{})
	assert.Error(t, err)
}
