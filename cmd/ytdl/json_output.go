package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRawJSON copies an already-encoded document to stdout untouched.
func writeRawJSON(cmd *cobra.Command, raw json.RawMessage) error {
	out := cmd.OutOrStdout()
	if _, err := out.Write(raw); err != nil {
		return err
	}
	_, err := out.Write([]byte("\n"))
	return err
}
