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
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uprockcom/orderdesk/pkg/order"
	"github.com/uprockcom/orderdesk/pkg/style"
)

// StatCard renders a small bordered card with a value over a label.
func StatCard(label, value string, accent lipgloss.Color, width int) string {
	if width < 8 {
		width = 8
	}
	valueView := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(value)
	labelView := lipgloss.NewStyle().Foreground(style.SilverMist).Render(label)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(width-2).
		Align(lipgloss.Center).
		Render(valueView + " " + labelView)
}

// StatCards renders the order summary as a row of cards filling width.
func StatCards(s order.Stats, width int) string {
	cards := []struct {
		label string
		value string
		color lipgloss.Color
	}{
		{"orders", fmt.Sprintf("%d", s.Total), style.OceanTide},
		{"pending", fmt.Sprintf("%d", s.Pending), style.SunsetGlow},
		{"in progress", fmt.Sprintf("%d", s.InProgress), style.PurpleHaze},
		{"delivered", fmt.Sprintf("%d", s.Delivered), style.NeonGreen},
		{"revenue", order.FormatTotal(s.Revenue), style.HotPink},
	}

	cardWidth := width / len(cards)
	views := make([]string, len(cards))
	for i, c := range cards {
		views[i] = StatCard(c.label, c.value, c.color, cardWidth)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// Tab is one status tab. An empty Status is the "all" tab.
type Tab struct {
	Label  string
	Status order.Status
}

// DefaultTabs returns the all tab followed by one tab per status.
func DefaultTabs() []Tab {
	tabs := []Tab{{Label: "All"}}
	for _, st := range order.Statuses {
		tabs = append(tabs, Tab{Label: strings.ToUpper(string(st[:1])) + string(st[1:]), Status: st})
	}
	return tabs
}

var activeTabStyle = lipgloss.NewStyle().
	Foreground(style.GhostWhite).
	Background(style.PurpleHaze).
	Bold(true).
	Padding(0, 2)

var inactiveTabStyle = lipgloss.NewStyle().
	Foreground(style.SilverMist).
	Padding(0, 2)

// TabNavigation renders the tab strip with the active tab highlighted.
func TabNavigation(tabs []Tab, active int) string {
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Label)
		if i == active {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = inactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// FilterBar renders the search input with a match counter.
func FilterBar(input string, focused bool, matches, total int) string {
	prompt := lipgloss.NewStyle().Foreground(style.DimGray)
	if focused {
		prompt = prompt.Foreground(style.OceanTide)
	}
	counter := lipgloss.NewStyle().
		Foreground(style.SilverMist).
		Render(fmt.Sprintf("  %d/%d", matches, total))
	return prompt.Render("filter ") + input + counter
}

// InfoRow renders an aligned "label  value" line.
func InfoRow(label, value string, labelWidth int) string {
	l := lipgloss.NewStyle().
		Foreground(style.OceanTide).
		Bold(true).
		Width(labelWidth).
		Render(label)
	if value == "" {
		value = "-"
	}
	return l + lipgloss.NewStyle().Foreground(style.GhostWhite).Render(value)
}
