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

// Package order holds the order model, its status rules and the stores that
// persist orders.
package order

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Status is the fulfilment state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInTransit         = errors.New("order is in transit")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrConflict          = errors.New("order was changed by someone else")
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// ParseStatus validates a status name.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Order is a customer order.
type Order struct {
	ID         string    `yaml:"id"`
	Number     string    `yaml:"number"`
	Customer   string    `yaml:"customer"`
	TotalCents int64     `yaml:"total_cents"`
	Status     Status    `yaml:"status"`
	Notes      string    `yaml:"notes,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
	UpdatedAt  time.Time `yaml:"updated_at"`
}

// Validate checks the fields a caller must provide.
func (o Order) Validate() error {
	if strings.TrimSpace(o.Customer) == "" {
		return fmt.Errorf("%w: customer is required", ErrInvalidOrder)
	}
	if o.TotalCents < 0 {
		return fmt.Errorf("%w: total must not be negative", ErrInvalidOrder)
	}
	return nil
}

const (
	numberPrefix = "ORD-"
	firstNumber  = 1001
)

// NextNumber returns the order number following the highest one in orders.
func NextNumber(orders []Order) string {
	next := firstNumber
	for _, o := range orders {
		n, err := strconv.Atoi(strings.TrimPrefix(o.Number, numberPrefix))
		if err != nil {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%d", numberPrefix, next)
}

// NormalizeNumber accepts "1001", "ord-1001" or "ORD-1001".
func NormalizeNumber(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if _, err := strconv.Atoi(s); err == nil {
		return numberPrefix + s
	}
	return s
}

// FormatTotal renders cents as dollars with thousands separators.
func FormatTotal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// ParseTotal parses "12", "12.5" or "1,234.56" into cents.
func ParseTotal(s string) (int64, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "$")
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: total must not be negative", ErrInvalidOrder)
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: total %q has more than two decimals", ErrInvalidOrder, s)
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return 0, fmt.Errorf("%w: total %q", ErrInvalidOrder, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("%w: total %q is too large", ErrInvalidOrder, s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: total %q", ErrInvalidOrder, s)
	}
	return w*100 + f, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// now is the store clock, truncated so every backend round-trips it.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
