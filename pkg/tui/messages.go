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

import "github.com/uprockcom/orderdesk/pkg/order"

// ordersLoadedMsg is sent when order data is loaded
type ordersLoadedMsg struct {
	orders []order.Order
	err    error
}

type alertKind int

const (
	alertInfo alertKind = iota
	alertSuccess
	alertError
)

// alertMsg shows a transient status-bar notice
type alertMsg struct {
	kind alertKind
	text string
}

// alertExpiredMsg clears the notice with the matching id
type alertExpiredMsg struct {
	id int
}
