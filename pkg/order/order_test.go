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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseStatus("lost")
	assert.Error(t, err)
}

func TestNextNumber(t *testing.T) {
	assert.Equal(t, "ORD-1001", NextNumber(nil))
	assert.Equal(t, "ORD-1043", NextNumber([]Order{
		{Number: "ORD-1042"},
		{Number: "ORD-1007"},
		{Number: "legacy"},
	}))
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "ORD-1001", NormalizeNumber("1001"))
	assert.Equal(t, "ORD-1001", NormalizeNumber(" ord-1001 "))
}

func TestFormatTotal(t *testing.T) {
	assert.Equal(t, "$0.00", FormatTotal(0))
	assert.Equal(t, "$12.05", FormatTotal(1205))
	assert.Equal(t, "$1,234,567.89", FormatTotal(123456789))
	assert.Equal(t, "-$3.50", FormatTotal(-350))
}

func TestParseTotal(t *testing.T) {
	for in, want := range map[string]int64{
		"12":        1200,
		"12.5":      1250,
		"12.05":     1205,
		"$1,234.56": 123456,
		"0":         0,
		"12.":       1200,
		"0.01":      1,
	} {
		got, err := ParseTotal(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{
		"abc", "1.234", "-5", "1.x", "",
		"-0.50", "-0.01", "$-3", "+5",
		"12.-5", "12.+5", "12. 5", ".50",
		"92233720368547758.07", "99999999999999999999",
	} {
		got, err := ParseTotal(in)
		assert.ErrorIs(t, err, ErrInvalidOrder, in)
		assert.Zero(t, got, in)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Order{Customer: "Ada", TotalCents: 100}.Validate())
	assert.ErrorIs(t, Order{Customer: " "}.Validate(), ErrInvalidOrder)
	assert.ErrorIs(t, Order{Customer: "Ada", TotalCents: -1}.Validate(), ErrInvalidOrder)
}
