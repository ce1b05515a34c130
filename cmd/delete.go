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
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uprockcom/orderdesk/pkg/order"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <number>",
	Aliases: []string{"rm"},
	Short:   "Delete an order",
	Long: `Delete an order permanently. Numbers may be given as ORD-1001 or 1001.

Asks for confirmation unless --yes is passed. Shipped orders cannot be deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	number := order.NormalizeNumber(args[0])
	out := cmd.OutOrStdout()

	return withStore(func(store order.Store) error {
		o, err := store.Get(cmd.Context(), number)
		if err != nil {
			return err
		}
		if err := order.OperationDelete.Check(o.Status); err != nil {
			return fmt.Errorf("cannot delete %s: %w", number, err)
		}

		if !deleteYes {
			order.Display(out, []order.Order{o}, order.DisplayOptions{})
			ok, err := promptYesNo(cmd, fmt.Sprintf("\nDelete %s? (y/N): ", number))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if err := order.Apply(cmd.Context(), store, order.OperationDelete, number); err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Order %s deleted\n", number)
		return nil
	})
}

// promptYesNo prints question and reads a y/N answer from the command's input.
func promptYesNo(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), question)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
