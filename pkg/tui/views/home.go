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

package views

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uprockcom/orderdesk/pkg/order"
	"github.com/uprockcom/orderdesk/pkg/style"
)

// HomeModel is the main order list view
type HomeModel struct {
	table  table.Model
	width  int
	height int
	orders []order.Order
	now    func() time.Time
}

// NewHomeModel creates a new home view
func NewHomeModel(orders []order.Order) *HomeModel {
	columns := []table.Column{
		{Title: "NUMBER", Width: 10},
		{Title: "CUSTOMER", Width: 24},
		{Title: "TOTAL", Width: 14},
		{Title: "STATUS", Width: 14},
		{Title: "AGE", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(style.PurpleHaze).
		BorderBottom(true).
		Bold(true).
		Foreground(style.OceanTide)

	s.Selected = s.Selected.
		Foreground(style.GhostWhite).
		Background(style.FieldBackground).
		Bold(false)

	t.SetStyles(s)

	h := &HomeModel{
		table:  t,
		orders: orders,
		now:    time.Now,
	}

	h.updateTableRows()
	return h
}

// ShowDetailsMsg asks the app to open the details of an order
type ShowDetailsMsg struct {
	Order order.Order
}

// Update handles table navigation. Enter opens the selected order.
func (h *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if selected, ok := h.SelectedOrder(); ok {
			return h, func() tea.Msg {
				return ShowDetailsMsg{Order: selected}
			}
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.table, cmd = h.table.Update(msg)
	return h, cmd
}

// View renders the home view
func (h *HomeModel) View() string {
	if len(h.orders) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(style.SilverMist).
			Width(h.width).
			Align(lipgloss.Center).
			Render("No orders match. Add one with: orderdesk add <customer> <total>")
		return lipgloss.JoinVertical(lipgloss.Left, h.table.View(), empty)
	}
	return h.table.View()
}

// SetSize updates the view dimensions
func (h *HomeModel) SetSize(width, height int) {
	h.width = width
	h.height = height

	if height < 5 {
		height = 5
	}
	h.table.SetHeight(height)
	h.table.SetWidth(width)
}

// RefreshOrders replaces the listed orders, keeping the cursor in range
func (h *HomeModel) RefreshOrders(orders []order.Order) {
	h.orders = orders
	h.updateTableRows()
	if c := h.table.Cursor(); c >= len(orders) && len(orders) > 0 {
		h.table.SetCursor(len(orders) - 1)
	}
}

// updateTableRows converts order data to table rows
func (h *HomeModel) updateTableRows() {
	rows := make([]table.Row, 0, len(h.orders))
	ref := h.now()

	for _, o := range h.orders {
		rows = append(rows, table.Row{
			o.Number,
			o.Customer,
			order.FormatTotal(o.TotalCents),
			order.StatusLabel(o.Status),
			order.Age(o.CreatedAt, ref),
		})
	}

	h.table.SetRows(rows)
}

// Orders returns the listed orders
func (h *HomeModel) Orders() []order.Order {
	return h.orders
}

// SelectedOrder returns the order under the cursor
func (h *HomeModel) SelectedOrder() (order.Order, bool) {
	idx := h.table.Cursor()
	if idx < 0 || idx >= len(h.orders) {
		return order.Order{}, false
	}
	return h.orders[idx], true
}

// GetCursor returns the current cursor position
func (h *HomeModel) GetCursor() int {
	return h.table.Cursor()
}

// SetCursor sets the cursor position
func (h *HomeModel) SetCursor(pos int) {
	if pos >= 0 && pos < len(h.orders) {
		h.table.SetCursor(pos)
	}
}
