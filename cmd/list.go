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

var listStatus string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List orders",
	Long:    `List orders, newest first, optionally narrowed to one status.`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only show orders in this status")
	listCmd.RegisterFlagCompletionFunc("status", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(order.Statuses))
		for i, st := range order.Statuses {
			names[i] = string(st)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var filter order.Filter
	if listStatus != "" {
		st, err := order.ParseStatus(listStatus)
		if err != nil {
			return err
		}
		filter.Status = st
	}

	return withStore(func(store order.Store) error {
		orders, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		orders = filter.Apply(orders)

		out := cmd.OutOrStdout()
		if len(orders) == 0 {
			fmt.Fprintln(out, "No orders found.")
			fmt.Fprintln(out, "Create one with: orderdesk add <customer> <total>")
			return nil
		}

		order.Display(out, orders, order.DisplayOptions{})

		s := order.ComputeStats(orders)
		fmt.Fprintf(out, "\n%d order(s), %s revenue\n", s.Total, order.FormatTotal(s.Revenue))

		fmt.Fprintln(out, "\nCommands:")
		fmt.Fprintln(out, "  orderdesk ship <number>     - Mark an order shipped")
		fmt.Fprintln(out, "  orderdesk cancel <number>   - Cancel an order")
		fmt.Fprintln(out, "  orderdesk delete <number>   - Delete an order")
		return nil
	})
}
