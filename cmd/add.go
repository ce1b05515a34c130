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

var addNotes string

var addCmd = &cobra.Command{
	Use:   "add <customer> <total>",
	Short: "Create an order",
	Long: `Create a pending order. The total is in dollars, for example 12, 12.50
or 1,234.56. The order number is assigned automatically.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "free-form notes")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cents, err := order.ParseTotal(args[1])
	if err != nil {
		return err
	}

	return withStore(func(store order.Store) error {
		o := order.Order{Customer: args[0], TotalCents: cents, Notes: addNotes}
		if err := store.Create(cmd.Context(), &o); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Created %s for %s (%s)\n", o.Number, o.Customer, order.FormatTotal(o.TotalCents))
		return nil
	})
}
