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

package confirm

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/uprockcom/orderdesk/pkg/style"
)

// Focus identifies the focused dialog button.
type Focus int

const (
	FocusConfirm Focus = iota
	FocusCancel
)

// Treatment is the cosmetic icon and colour of a variant.
type Treatment struct {
	Icon  string
	Color lipgloss.Color
}

var treatments = map[Variant]Treatment{
	VariantDelete:  {Icon: "✖", Color: style.CrimsonPulse},
	VariantEdit:    {Icon: "✎", Color: style.PurpleHaze},
	VariantWarning: {Icon: "⚠", Color: style.SunsetGlow},
	VariantInfo:    {Icon: "ℹ", Color: style.OceanTide},
	VariantSuccess: {Icon: "✔", Color: style.NeonGreen},
}

// TreatmentFor returns the treatment for v (info for unknown variants).
func TreatmentFor(v Variant) Treatment {
	return treatments[v.normalized()]
}

// Props is everything the dialog needs to render.
type Props struct {
	Open        bool
	Title       string
	Message     string
	Variant     Variant
	ConfirmText string
	CancelText  string
	BusyText    string
	Loading     bool
	Spinner     string // current spinner frame, shown while Loading
	Focus       Focus
	Width       int // box width (0 = 56)
}

const defaultWidth = 56

// Render draws the confirmation dialog box. It returns "" when the dialog is
// not open, whatever the other props say.
func Render(p Props) string {
	if !p.Open {
		return ""
	}

	labels := Labels{Confirm: p.ConfirmText, Cancel: p.CancelText, Busy: p.BusyText}.withDefaults()
	treatment := TreatmentFor(p.Variant)

	width := p.Width
	if width <= 0 {
		width = defaultWidth
	}
	inner := width - 4

	titleStyle := lipgloss.NewStyle().
		Foreground(treatment.Color).
		Background(style.ModalBackground).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center)
	title := titleStyle.Render(treatment.Icon + "  " + p.Title)

	messageStyle := lipgloss.NewStyle().
		Foreground(style.GhostWhite).
		Background(style.ModalBackground).
		Width(inner).
		Align(lipgloss.Center)
	message := messageStyle.Render(p.Message)

	confirmLabel := labels.Confirm
	if p.Loading {
		confirmLabel = labels.Busy
		if p.Spinner != "" {
			confirmLabel = p.Spinner + " " + labels.Busy
		}
	}

	cancelBtn := buttonStyle(p.Focus == FocusCancel, p.Loading, style.DimGray).Render(labels.Cancel)
	confirmBtn := buttonStyle(p.Focus == FocusConfirm, p.Loading, treatment.Color).Render(confirmLabel)
	gap := lipgloss.NewStyle().Background(style.ModalBackground).Render("  ")

	buttons := lipgloss.NewStyle().
		Background(style.ModalBackground).
		Width(inner).
		Align(lipgloss.Center).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, cancelBtn, gap, confirmBtn))

	spacer := lipgloss.NewStyle().
		Background(style.ModalBackground).
		Width(inner).
		Render("")

	content := lipgloss.JoinVertical(lipgloss.Center, title, spacer, message, spacer, buttons)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(treatment.Color).
		Background(style.ModalBackground).
		Padding(1, 2).
		Width(width).
		Render(content)
}

func buttonStyle(focused, disabled bool, accent lipgloss.Color) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 3)
	switch {
	case disabled:
		return s.Foreground(style.DimGray).Background(style.FieldBackground)
	case focused:
		return s.Foreground(style.GhostWhite).Background(accent).Bold(true)
	default:
		return s.Foreground(style.SilverMist).Background(style.FieldBackground)
	}
}
