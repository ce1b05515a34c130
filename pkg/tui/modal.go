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
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/uprockcom/orderdesk/pkg/style"
)

// ModalType defines the type of modal
type ModalType int

const (
	ModalInfo  ModalType = iota // Information message
	ModalError                  // Error message (Crimson Pulse)
	ModalHelp                   // Help/keybindings
)

// Modal is a dismissable message box. Confirmations live in pkg/confirm.
type Modal struct {
	Type           ModalType
	Title          string
	Content        string        // Main content - used if viewport is nil
	Width          int           // Modal width (0 = auto)
	Actions        []ModalAction // Buttons
	SelectedAction int           // Currently selected action index
	viewport       *viewport.Model
	useViewport    bool
}

// ModalAction is a button in the modal. Selecting it dismisses the modal and
// runs OnSelect, if set.
type ModalAction struct {
	Label    string
	OnSelect tea.Cmd
}

// NewErrorModal creates an error modal. Without actions it gets a single OK
// button.
func NewErrorModal(title, content string, actions ...ModalAction) *Modal {
	if len(actions) == 0 {
		actions = []ModalAction{{Label: "OK"}}
	}
	return &Modal{
		Type:    ModalError,
		Title:   title,
		Content: content,
		Width:   60,
		Actions: actions,
	}
}

// NewScrollableInfoModal creates an info modal with scrollable content
func NewScrollableInfoModal(title, content string, contentHeight int) *Modal {
	return newScrollable(ModalInfo, title, content, contentHeight, 60)
}

// NewScrollableHelpModal creates a help modal with scrollable content
func NewScrollableHelpModal(title, content string, contentHeight int) *Modal {
	return newScrollable(ModalHelp, title, content, contentHeight, 70)
}

func newScrollable(t ModalType, title, content string, contentHeight, width int) *Modal {
	if contentHeight < 3 {
		contentHeight = 3
	}
	vp := viewport.New(width-4, contentHeight)
	vp.SetContent(content)

	return &Modal{
		Type:        t,
		Title:       title,
		Content:     content,
		Width:       width,
		viewport:    &vp,
		useViewport: true,
		Actions: []ModalAction{
			{Label: "Close"},
		},
	}
}

// Update handles input for the modal. A nil modal means it was dismissed.
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m == nil {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// If viewport is active, delegate scroll keys to it
	if m.useViewport && m.viewport != nil {
		switch keyMsg.String() {
		case "up", "k":
			m.viewport.LineUp(1)
			return m, nil
		case "down", "j":
			m.viewport.LineDown(1)
			return m, nil
		case "pgup":
			m.viewport.ViewUp()
			return m, nil
		case "pgdown", " ":
			m.viewport.ViewDown()
			return m, nil
		case "home":
			m.viewport.GotoTop()
			return m, nil
		case "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	switch keyMsg.String() {
	case "esc", "q":
		return nil, nil

	case "enter":
		if len(m.Actions) > 0 {
			return nil, m.Actions[m.SelectedAction].OnSelect
		}
		return nil, nil

	case "left", "h":
		if m.SelectedAction > 0 {
			m.SelectedAction--
		}

	case "right", "l":
		if m.SelectedAction < len(m.Actions)-1 {
			m.SelectedAction++
		}

	case "tab":
		if len(m.Actions) > 0 {
			m.SelectedAction = (m.SelectedAction + 1) % len(m.Actions)
		}
	}

	return m, nil
}

// View renders just the modal box (not placed)
func (m *Modal) View(screenWidth int) string {
	if m == nil {
		return ""
	}

	modalWidth := m.Width
	if modalWidth == 0 {
		modalWidth = 60
	}
	if modalWidth > screenWidth-4 {
		modalWidth = screenWidth - 4
	}
	inner := modalWidth - 4

	var titleColor lipgloss.Color
	switch m.Type {
	case ModalError:
		titleColor = style.CrimsonPulse
	default:
		titleColor = style.OceanTide
	}

	title := lipgloss.NewStyle().
		Foreground(titleColor).
		Background(style.ModalBackground).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center).
		Render(m.Title)

	band := lipgloss.NewStyle().
		Background(style.ModalBackground).
		Width(inner).
		Align(lipgloss.Center)

	var content, scrollIndicators string
	if m.useViewport && m.viewport != nil {
		content = m.viewport.View()

		hint := lipgloss.NewStyle().Foreground(style.SilverMist).Inherit(band)
		switch {
		case !m.viewport.AtTop() && !m.viewport.AtBottom():
			scrollIndicators = hint.Render("▲ Scroll ▼")
		case !m.viewport.AtTop():
			scrollIndicators = hint.Render("▲ Scroll up for more")
		case !m.viewport.AtBottom():
			scrollIndicators = hint.Render("▼ Scroll down for more")
		}
	} else {
		content = lipgloss.NewStyle().
			Foreground(style.GhostWhite).
			Background(style.ModalBackground).
			Width(inner).
			Align(lipgloss.Left).
			Render(m.Content)
	}

	var actionsView string
	if len(m.Actions) > 0 {
		parts := make([]string, len(m.Actions))
		for i, action := range m.Actions {
			s := lipgloss.NewStyle().Padding(0, 3)
			if i == m.SelectedAction {
				s = s.Foreground(style.GhostWhite).Background(style.OceanTide).Bold(true)
			} else {
				s = s.Foreground(style.SilverMist).Background(style.FieldBackground)
			}
			parts[i] = s.Render(action.Label)
		}
		actionsView = band.Render(lipgloss.JoinHorizontal(lipgloss.Left, parts...))
	}

	spacer := band.Render("")

	parts := []string{spacer, title, spacer, content}
	if scrollIndicators != "" {
		parts = append(parts, spacer, scrollIndicators)
	}
	if actionsView != "" {
		parts = append(parts, spacer, actionsView)
	}
	parts = append(parts, spacer)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.PurpleHaze).
		Background(style.ModalBackground).
		Padding(1, 2).
		Width(modalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// RenderWithBackground renders modal centered on dimmed background
func (m *Modal) RenderWithBackground(background string, screenWidth, screenHeight int) string {
	if m == nil {
		return background
	}
	return overlay(background, m.View(screenWidth), screenWidth, screenHeight)
}

// overlay centers box on a dimmed copy of background.
func overlay(background, box string, screenWidth, screenHeight int) string {
	dimmedBg := lipgloss.NewStyle().Foreground(style.DimGray).Render(ansi.Strip(background))

	boxLines := strings.Split(box, "\n")
	startY := (screenHeight - len(boxLines)) / 2

	bgLines := strings.Split(dimmedBg, "\n")
	for len(bgLines) < screenHeight {
		bgLines = append(bgLines, strings.Repeat(" ", screenWidth))
	}

	result := make([]string, screenHeight)
	for i := 0; i < screenHeight; i++ {
		boxIdx := i - startY
		if boxIdx >= 0 && boxIdx < len(boxLines) {
			result[i] = compositeModalLine(boxLines[boxIdx], bgLines[i], screenWidth)
		} else {
			result[i] = bgLines[i]
		}
	}
	return strings.Join(result, "\n")
}

// compositeModalLine centers a modal line on a background line using ANSI-aware operations
func compositeModalLine(modalLine, bgLine string, screenWidth int) string {
	modalWidth := ansi.StringWidth(modalLine)
	if modalWidth > screenWidth {
		return ansi.Truncate(modalLine, screenWidth, "...")
	}

	leftPad := (screenWidth - modalWidth) / 2

	bgWidth := ansi.StringWidth(bgLine)
	if bgWidth < screenWidth {
		bgLine += strings.Repeat(" ", screenWidth-bgWidth)
	} else if bgWidth > screenWidth {
		bgLine = ansi.Truncate(bgLine, screenWidth, "")
	}

	leftSegment := ""
	if leftPad > 0 {
		leftSegment = ansi.Truncate(bgLine, leftPad, "")
	}

	// Right segment: plain background after the modal, re-dimmed
	rightSegment := ""
	rightStart := leftPad + modalWidth
	if rightStart < screenWidth {
		bgRunes := []rune(ansi.Strip(bgLine))
		if rightStart < len(bgRunes) {
			rightSegment = string(bgRunes[rightStart:])
			if remaining := screenWidth - rightStart; ansi.StringWidth(rightSegment) > remaining {
				rightSegment = ansi.Truncate(rightSegment, remaining, "")
			}
			rightSegment = lipgloss.NewStyle().Foreground(style.DimGray).Render(rightSegment)
		}
	}

	return leftSegment + modalLine + rightSegment
}
