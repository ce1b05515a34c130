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

// Package style holds the orderdesk colour palette.
package style

import "github.com/charmbracelet/lipgloss"

// Primary Colors
var (
	PurpleHaze   = lipgloss.Color("#7D56F4")
	CrimsonPulse = lipgloss.Color("#E0245E")
	SunsetGlow   = lipgloss.Color("#FFA94D")
)

// Accent Colors
var (
	OceanTide  = lipgloss.Color("#2DC7C4")
	OceanSurge = lipgloss.Color("#5FE3E0")
	OceanDepth = lipgloss.Color("#1B8A88")
	OceanAbyss = lipgloss.Color("#0E4F4E")
	HotPink    = lipgloss.Color("#FF5FAF")
	NeonGreen  = lipgloss.Color("#39D98A")
)

// Grayscale
var (
	GhostWhite = lipgloss.Color("#F8F8F2")
	SilverMist = lipgloss.Color("#A8A8B3")
	DimGray    = lipgloss.Color("#5C5C66")
	DeepSpace  = lipgloss.Color("#1E1E2A")
)

// Surfaces
var (
	ModalBackground = lipgloss.Color("235")
	FieldBackground = lipgloss.Color("237")
)
