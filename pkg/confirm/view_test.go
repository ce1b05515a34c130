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
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestRender_ClosedRendersNothing(t *testing.T) {
	for _, variant := range append(Variants, "", "bogus") {
		for _, loading := range []bool{false, true} {
			for _, focus := range []Focus{FocusConfirm, FocusCancel} {
				p := Props{
					Open:        false,
					Title:       "Delete order",
					Message:     "Are you sure?",
					Variant:     variant,
					ConfirmText: "Yes",
					CancelText:  "No",
					BusyText:    "Wait",
					Loading:     loading,
					Spinner:     "⣾",
					Focus:       focus,
					Width:       40,
				}
				assert.Empty(t, Render(p), "variant=%q loading=%v focus=%v", variant, loading, focus)
			}
		}
	}
}

func TestRender_OpenShowsTitleMessageAndButtons(t *testing.T) {
	out := ansi.Strip(Render(Props{
		Open:    true,
		Title:   "Delete order",
		Message: "This cannot be undone",
		Variant: VariantDelete,
	}))

	assert.Contains(t, out, "Delete order")
	assert.Contains(t, out, "This cannot be undone")
	assert.Contains(t, out, "Cancel")
	assert.Contains(t, out, "Confirm")
	assert.Contains(t, out, TreatmentFor(VariantDelete).Icon)
}

func TestRender_CustomLabels(t *testing.T) {
	out := ansi.Strip(Render(Props{
		Open:        true,
		Title:       "Excluir pedido",
		ConfirmText: "Excluir",
		CancelText:  "Voltar",
	}))

	assert.Contains(t, out, "Excluir")
	assert.Contains(t, out, "Voltar")
	assert.NotContains(t, out, "Confirm")
}

func TestRender_LoadingShowsBusyLabel(t *testing.T) {
	out := ansi.Strip(Render(Props{
		Open:    true,
		Title:   "Ship",
		Loading: true,
		Spinner: "*",
	}))

	assert.Contains(t, out, "* Processing...")
	assert.NotContains(t, out, "Confirm")
}

func TestTreatmentFor_CoversVariants(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range Variants {
		tr := TreatmentFor(v)
		assert.NotEmpty(t, tr.Icon, "variant %s", v)
		assert.False(t, seen[tr.Icon], "icon reused by %s", v)
		seen[tr.Icon] = true
	}
	assert.Equal(t, TreatmentFor(VariantInfo), TreatmentFor("unknown"))
}

func TestParseVariant(t *testing.T) {
	assert.Equal(t, VariantWarning, ParseVariant(" Warning "))
	assert.Equal(t, VariantInfo, ParseVariant(""))
	assert.Equal(t, VariantInfo, ParseVariant("critical"))
}

func TestControllerProps_UsesLabels(t *testing.T) {
	c := New(WithLabels(Labels{Confirm: "Sim", Cancel: "Não"}))
	c.ShowConfirm(Config{Title: "T"}, nil)

	p := c.Props()
	assert.Equal(t, "Sim", p.ConfirmText)
	assert.Equal(t, "Não", p.CancelText)
	assert.Equal(t, DefaultLabels().Busy, p.BusyText)
}
