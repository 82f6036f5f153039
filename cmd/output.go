package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// printJSON writes v indented. Entities encode themselves in API format.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func separator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// confirm asks a yes/no question on the command's input unless --yes is set
func confirm(cmd *cobra.Command, question string) bool {
	if assumeYes {
		return true
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}

// optionalString returns a pointer to the flag value if the flag was set
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func optionalBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}
