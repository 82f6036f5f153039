package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zammadctl/zammad"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Show ticket states",
}

var statesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ticket states",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		states, err := zammad.ListStates(cmd.Context(), client)
		if err != nil {
			return fmt.Errorf("failed to list ticket states: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, states)
		}

		fmt.Fprintf(out, "\nFound %d ticket states:\n", len(states))
		separator(out)
		for _, s := range states {
			fmt.Fprintf(out, "• %-4d %s", s.ID, s.Name)
			if !s.Active {
				fmt.Fprint(out, " [INACTIVE]")
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var prioritiesCmd = &cobra.Command{
	Use:   "priorities",
	Short: "Show ticket priorities",
}

var prioritiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ticket priorities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		priorities, err := zammad.ListPriorities(cmd.Context(), client)
		if err != nil {
			return fmt.Errorf("failed to list ticket priorities: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, priorities)
		}

		fmt.Fprintf(out, "\nFound %d ticket priorities:\n", len(priorities))
		separator(out)
		for _, p := range priorities {
			fmt.Fprintf(out, "• %-4d %s", p.ID, p.Name)
			if !p.Active {
				fmt.Fprint(out, " [INACTIVE]")
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	statesCmd.AddCommand(statesListCmd)
	prioritiesCmd.AddCommand(prioritiesListCmd)
	rootCmd.AddCommand(statesCmd, prioritiesCmd)
}
