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

import "strings"

// Filter narrows a list of orders. The zero value matches everything.
type Filter struct {
	Status Status // empty matches every status
	Query  string // case-insensitive match on number, customer and notes
}

// Matches reports whether o passes the filter.
func (f Filter) Matches(o Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.Number), q) ||
		strings.Contains(strings.ToLower(o.Customer), q) ||
		strings.Contains(strings.ToLower(o.Notes), q)
}

// Apply returns the matching orders, preserving order.
func (f Filter) Apply(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}

// Stats summarizes a set of orders.
type Stats struct {
	Total      int
	Pending    int
	InProgress int // processing or shipped
	Delivered  int
	Cancelled  int
	Revenue    int64 // cents, excluding cancelled orders
}

// ComputeStats summarizes orders.
func ComputeStats(orders []Order) Stats {
	var s Stats
	for _, o := range orders {
		s.Total++
		switch o.Status {
		case StatusPending:
			s.Pending++
		case StatusProcessing, StatusShipped:
			s.InProgress++
		case StatusDelivered:
			s.Delivered++
		case StatusCancelled:
			s.Cancelled++
		}
		if o.Status != StatusCancelled {
			s.Revenue += o.TotalCents
		}
	}
	return s
}
