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

import "strings"

// Variant selects the visual treatment of a confirmation dialog. It never
// affects state transitions.
type Variant string

const (
	VariantDelete  Variant = "delete"
	VariantEdit    Variant = "edit"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
)

// Variants lists every variant in display order.
var Variants = []Variant{VariantDelete, VariantEdit, VariantWarning, VariantInfo, VariantSuccess}

// ParseVariant maps a tag to a Variant, falling back to VariantInfo.
func ParseVariant(s string) Variant {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants {
		if v == known {
			return v
		}
	}
	return VariantInfo
}

// normalized returns v, or VariantInfo when v is empty or unknown.
func (v Variant) normalized() Variant {
	return ParseVariant(string(v))
}

// Config describes one pending confirmation. ConfirmText and CancelText are
// optional and fall back to the controller's Labels.
type Config struct {
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	Variant     Variant
}

// Labels are the default button captions, usually localized through
// configuration.
type Labels struct {
	Confirm string
	Cancel  string
	Busy    string
}

// DefaultLabels returns the built-in English captions.
func DefaultLabels() Labels {
	return Labels{
		Confirm: "Confirm",
		Cancel:  "Cancel",
		Busy:    "Processing...",
	}
}

// withDefaults fills empty captions from DefaultLabels.
func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	if l.Confirm == "" {
		l.Confirm = d.Confirm
	}
	if l.Cancel == "" {
		l.Cancel = d.Cancel
	}
	if l.Busy == "" {
		l.Busy = d.Busy
	}
	return l
}
