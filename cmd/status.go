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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uprockcom/orderdesk/pkg/order"
)

var statusDescriptions = map[order.OperationType]string{
	order.OperationProcess: "Start processing a pending order",
	order.OperationShip:    "Mark a processing order as shipped",
	order.OperationDeliver: "Mark a shipped order as delivered",
	order.OperationCancel:  "Cancel a pending or processing order",
}

func init() {
	for _, op := range order.Operations {
		if _, ok := op.TargetStatus(); !ok {
			continue
		}
		rootCmd.AddCommand(newStatusCmd(op))
	}
}

// newStatusCmd builds the command that moves an order with op.
func newStatusCmd(op order.OperationType) *cobra.Command {
	target, _ := op.TargetStatus()
	return &cobra.Command{
		Use:   string(op) + " <number>",
		Short: statusDescriptions[op],
		Long: fmt.Sprintf(`%s. The order moves to %s.

Numbers may be given as ORD-1001 or 1001.`, statusDescriptions[op], target),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number := order.NormalizeNumber(args[0])
			return withStore(func(store order.Store) error {
				if err := order.Apply(cmd.Context(), store, op, number); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is now %s\n", number, target)
				return nil
			})
		},
	}
}
