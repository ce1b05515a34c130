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
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uprockcom/orderdesk/pkg/confirm"
	"github.com/uprockcom/orderdesk/pkg/order"
	"github.com/uprockcom/orderdesk/pkg/style"
	"github.com/uprockcom/orderdesk/pkg/tui/views"
)

// Options configures the TUI.
type Options struct {
	Store    order.Store
	Logger   *slog.Logger
	Labels   confirm.Labels
	AlertTTL time.Duration // how long status-bar notices stay (0 = 4s)
	Context  context.Context
}

type alert struct {
	kind alertKind
	text string
	id   int
}

// Model is the root Bubble Tea model.
type Model struct {
	store    order.Store
	logger   *slog.Logger
	ctx      context.Context
	alertTTL time.Duration

	confirm   *confirm.Controller
	home      *views.HomeModel
	modal     *Modal
	filter    textinput.Model
	filtering bool
	tabs      []views.Tab
	activeTab int
	orders    []order.Order

	alert    alert
	alertSeq int

	help help.Model
	keys keyMap

	width    int
	height   int
	quitting bool
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ttl := opts.AlertTTL
	if ttl <= 0 {
		ttl = 4 * time.Second
	}

	filter := textinput.New()
	filter.Placeholder = "number, customer or notes"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	store := opts.Store
	m := Model{
		store:    store,
		logger:   logger,
		ctx:      ctx,
		alertTTL: ttl,
		home:     views.NewHomeModel(nil),
		filter:   filter,
		tabs:     views.DefaultTabs(),
		help:     help.New(),
		keys:     defaultKeyMap(),
	}

	m.confirm = confirm.New(
		confirm.WithLogger(logger),
		confirm.WithLabels(opts.Labels),
		confirm.WithContext(ctx),
		confirm.WithSuccessHook(func(cfg confirm.Config) tea.Cmd {
			return tea.Batch(loadOrders(ctx, store), showAlert(alertSuccess, cfg.Title+": done"))
		}),
		confirm.WithFailureHook(func(_ confirm.Config, err error) tea.Cmd {
			return showAlert(alertError, err.Error())
		}),
	)
	return m
}

// Init loads the orders.
func (m Model) Init() tea.Cmd {
	return loadOrders(m.ctx, m.store)
}

func loadOrders(ctx context.Context, store order.Store) tea.Cmd {
	return func() tea.Msg {
		orders, err := store.List(ctx)
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

func showAlert(kind alertKind, text string) tea.Cmd {
	return func() tea.Msg {
		return alertMsg{kind: kind, text: text}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.confirm.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.home.SetSize(msg.Width, m.tableHeight())
		return m, nil

	case ordersLoadedMsg:
		if msg.err != nil {
			m.logger.Error("failed to load orders", "error", msg.err)
			m.modal = NewErrorModal("Could not load orders", msg.err.Error(),
				ModalAction{Label: "Retry", OnSelect: loadOrders(m.ctx, m.store)},
				ModalAction{Label: "Dismiss"},
			)
			return m, nil
		}
		m.orders = msg.orders
		m.applyFilter()
		return m, nil

	case alertMsg:
		m.alertSeq++
		id := m.alertSeq
		m.alert = alert{kind: msg.kind, text: msg.text, id: id}
		return m, tea.Tick(m.alertTTL, func(time.Time) tea.Msg {
			return alertExpiredMsg{id: id}
		})

	case alertExpiredMsg:
		if msg.id == m.alert.id {
			m.alert = alert{}
		}
		return m, nil

	case confirm.ResultMsg:
		// An action abandoned with esc still ran; reload so the list shows
		// whatever it changed.
		stale := msg.Cycle != m.confirm.Cycle() || !m.confirm.IsLoading()
		cmd := m.confirm.Update(msg)
		if stale {
			return m, tea.Batch(cmd, loadOrders(m.ctx, m.store))
		}
		return m, cmd

	case spinner.TickMsg:
		return m, m.confirm.Update(msg)

	case views.ShowDetailsMsg:
		m.modal = m.detailsModal(msg.Order)
		return m, nil

	case tea.MouseMsg:
		if m.confirm.IsOpen() {
			return m, m.confirm.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	// The confirmation dialog takes all input while open.
	if m.confirm.IsOpen() {
		return m, m.confirm.Update(msg)
	}

	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if idx := int(s[0] - '1'); idx < len(m.tabs) {
			m.activeTab = idx
			m.applyFilter()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()

	case msg.String() == "esc" && m.filter.Value() != "":
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.activeTab = (m.activeTab + 1) % len(m.tabs)
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, loadOrders(m.ctx, m.store)

	case key.Matches(msg, m.keys.Help):
		m.modal = m.helpModal()
		return m, nil

	case key.Matches(msg, m.keys.Details):
		if o, ok := m.home.SelectedOrder(); ok {
			m.modal = m.detailsModal(o)
		}
		return m, nil

	case key.Matches(msg, m.keys.Process):
		return m.requestOperation(order.OperationProcess)
	case key.Matches(msg, m.keys.Ship):
		return m.requestOperation(order.OperationShip)
	case key.Matches(msg, m.keys.Deliver):
		return m.requestOperation(order.OperationDeliver)
	case key.Matches(msg, m.keys.Cancel):
		return m.requestOperation(order.OperationCancel)
	case key.Matches(msg, m.keys.Delete):
		return m.requestOperation(order.OperationDelete)
	}

	var cmd tea.Cmd
	m.home, cmd = m.home.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// requestOperation asks for confirmation before applying op to the selected order.
func (m Model) requestOperation(op order.OperationType) (tea.Model, tea.Cmd) {
	o, ok := m.home.SelectedOrder()
	if !ok {
		return m, showAlert(alertInfo, "No order selected")
	}
	if err := op.Check(o.Status); err != nil {
		return m, showAlert(alertError, fmt.Sprintf("Cannot %s %s: %v", op, o.Number, err))
	}

	store, number := m.store, o.Number
	m.confirm.ShowConfirm(confirmConfig(op, o), func(ctx context.Context) error {
		return order.Apply(ctx, store, op, number)
	})
	m.logger.Debug("confirmation requested", "operation", string(op), "order", number)
	return m, nil
}

// confirmConfig describes the dialog shown before op runs on o.
func confirmConfig(op order.OperationType, o order.Order) confirm.Config {
	switch op {
	case order.OperationDelete:
		return confirm.Config{
			Title:       "Delete " + o.Number,
			Message:     fmt.Sprintf("Permanently delete the order from %s (%s)? This cannot be undone.", o.Customer, order.FormatTotal(o.TotalCents)),
			ConfirmText: "Delete",
			Variant:     confirm.VariantDelete,
		}
	case order.OperationCancel:
		return confirm.Config{
			Title:       "Cancel " + o.Number,
			Message:     fmt.Sprintf("Cancel the order from %s?", o.Customer),
			ConfirmText: "Cancel order",
			CancelText:  "Keep order",
			Variant:     confirm.VariantWarning,
		}
	case order.OperationShip:
		return confirm.Config{
			Title:       "Ship " + o.Number,
			Message:     fmt.Sprintf("Mark the order from %s as shipped?", o.Customer),
			ConfirmText: "Ship",
			Variant:     confirm.VariantSuccess,
		}
	case order.OperationProcess:
		return confirm.Config{
			Title:       "Process " + o.Number,
			Message:     fmt.Sprintf("Start processing the order from %s?", o.Customer),
			ConfirmText: "Start",
			Variant:     confirm.VariantEdit,
		}
	default:
		return confirm.Config{
			Title:       "Deliver " + o.Number,
			Message:     fmt.Sprintf("Mark the order from %s as delivered?", o.Customer),
			ConfirmText: "Delivered",
			Variant:     confirm.VariantInfo,
		}
	}
}

// applyFilter recomputes the listed orders from the active tab and query.
func (m *Model) applyFilter() {
	f := order.Filter{
		Status: m.tabs[m.activeTab].Status,
		Query:  m.filter.Value(),
	}
	m.home.RefreshOrders(f.Apply(m.orders))
}

// tableHeight is the screen height left for the order table.
func (m Model) tableHeight() int {
	// header (1) + stat cards (3) + tabs (1) + filter (1) + alert (1) + help (1)
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) detailsModal(o order.Order) *Modal {
	const w = 10
	rows := []string{
		views.InfoRow("Number", o.Number, w),
		views.InfoRow("Customer", o.Customer, w),
		views.InfoRow("Total", order.FormatTotal(o.TotalCents), w),
		views.InfoRow("Status", order.StatusLabel(o.Status), w),
		views.InfoRow("Created", order.Age(o.CreatedAt, time.Time{}), w),
		views.InfoRow("Updated", order.Age(o.UpdatedAt, time.Time{}), w),
		views.InfoRow("ID", o.ID, w),
		views.InfoRow("Notes", o.Notes, w),
	}
	height := len(rows)
	if limit := m.height - 12; limit > 0 && height > limit {
		height = limit
	}
	return NewScrollableInfoModal("Order "+o.Number, strings.Join(rows, "\n"), height)
}

func (m Model) helpModal() *Modal {
	var lines []string
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, views.InfoRow(h.Key, h.Desc, 12))
		}
		lines = append(lines, "")
	}
	lines = append(lines, "In a confirmation: y confirm · n cancel · esc close · ←/→ switch button")
	height := len(lines)
	if limit := m.height - 12; limit > 0 && height > limit {
		height = limit
	}
	return NewScrollableHelpModal("Keyboard shortcuts", strings.Join(lines, "\n"), height)
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(style.PurpleHaze).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(style.NeonGreen)
	errorStyle   = lipgloss.NewStyle().Foreground(style.CrimsonPulse).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(style.SilverMist)
)

func (m Model) alertView() string {
	switch m.alert.kind {
	case alertSuccess:
		return successStyle.Render("✔ " + m.alert.text)
	case alertError:
		return errorStyle.Render("✖ " + m.alert.text)
	default:
		if m.alert.text == "" {
			return ""
		}
		return infoStyle.Render(m.alert.text)
	}
}

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading orders..."
	}

	filterInput := m.filter.Value()
	if m.filtering {
		filterInput = m.filter.View()
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("orderdesk"),
		views.StatCards(order.ComputeStats(m.orders), m.width),
		views.TabNavigation(m.tabs, m.activeTab),
		views.FilterBar(filterInput, m.filtering, len(m.home.Orders()), len(m.orders)),
		m.home.View(),
		m.alertView(),
		m.help.View(m.keys),
	)

	if m.confirm.IsOpen() {
		return overlay(base, m.confirm.View(), m.width, m.height)
	}
	if m.modal != nil {
		return m.modal.RenderWithBackground(base, m.width, m.height)
	}
	return base
}

// Confirm exposes the confirmation controller.
func (m Model) Confirm() *confirm.Controller {
	return m.confirm
}
