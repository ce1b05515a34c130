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
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/uprockcom/orderdesk/pkg/style"
)

// DisplayOptions configures Display.
type DisplayOptions struct {
	ShowNumbers bool      // prefix rows with 1-based indexes for selection prompts
	Now         time.Time // reference time for ages (zero = time.Now)
}

// StatusLabel returns the status with its indicator glyph.
func StatusLabel(st Status) string {
	switch st {
	case StatusPending:
		return "○ Pending"
	case StatusProcessing:
		return "◐ Processing"
	case StatusShipped:
		return "➜ Shipped"
	case StatusDelivered:
		return "● Delivered"
	case StatusCancelled:
		return "✗ Cancelled"
	default:
		return "? " + string(st)
	}
}

// Age renders how long ago t was, relative to ref.
func Age(t, ref time.Time) string {
	if t.IsZero() {
		return "-"
	}
	if ref.IsZero() {
		ref = time.Now()
	}
	return humanize.RelTime(t, ref, "ago", "from now")
}

// Display prints orders as a table to w.
func Display(w io.Writer, orders []Order, opts DisplayOptions) {
	headers := []string{"NUMBER", "CUSTOMER", "TOTAL", "STATUS", "AGE"}
	if opts.ShowNumbers {
		headers = append([]string{"#"}, headers...)
	}

	rows := make([][]string, 0, len(orders))
	for i, o := range orders {
		row := []string{o.Number, o.Customer, FormatTotal(o.TotalCents), StatusLabel(o.Status), Age(o.CreatedAt, opts.Now)}
		if opts.ShowNumbers {
			row = append([]string{fmt.Sprintf("%d", i+1)}, row...)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.PurpleHaze)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(style.OceanTide).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	fmt.Fprintln(w, t.Render())
}
