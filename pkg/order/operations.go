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
	"context"
	"fmt"
	"strings"
)

// OperationType defines the operations that can be performed on an order
type OperationType string

const (
	OperationProcess OperationType = "process"
	OperationShip    OperationType = "ship"
	OperationDeliver OperationType = "deliver"
	OperationCancel  OperationType = "cancel"
	OperationDelete  OperationType = "delete"
)

// Operations lists every operation.
var Operations = []OperationType{OperationProcess, OperationShip, OperationDeliver, OperationCancel, OperationDelete}

var operationTargets = map[OperationType]Status{
	OperationProcess: StatusProcessing,
	OperationShip:    StatusShipped,
	OperationDeliver: StatusDelivered,
	OperationCancel:  StatusCancelled,
}

// ParseOperation validates an operation name.
func ParseOperation(s string) (OperationType, error) {
	op := OperationType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Operations {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// TargetStatus returns the status an operation moves an order to. Delete has
// no target status.
func (op OperationType) TargetStatus() (Status, bool) {
	st, ok := operationTargets[op]
	return st, ok
}

// Check reports why op cannot be applied to an order in status st, or nil.
func (op OperationType) Check(st Status) error {
	if op == OperationDelete {
		if st == StatusShipped {
			return ErrInTransit
		}
		return nil
	}
	target, ok := op.TargetStatus()
	if !ok {
		return fmt.Errorf("unknown operation %q", op)
	}
	if !CanTransition(st, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, st, target)
	}
	return nil
}

// Apply performs op on the order with the given number. The write only lands
// if the order is still in the status that passed Check; otherwise it fails
// with ErrConflict.
func Apply(ctx context.Context, s Store, op OperationType, number string) error {
	o, err := s.Get(ctx, number)
	if err != nil {
		return err
	}
	if err := op.Check(o.Status); err != nil {
		return fmt.Errorf("cannot %s %s: %w", op, number, err)
	}

	if op == OperationDelete {
		if err := s.DeleteIfStatus(ctx, number, o.Status); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	}

	target, _ := op.TargetStatus()
	if err := s.SetStatus(ctx, number, o.Status, target); err != nil {
		return fmt.Errorf("failed to %s order: %w", op, err)
	}
	return nil
}
