package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giodamelio/edo/manifest"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the manifest JSON schema",
	Long:  "Print the JSON Schema describing manifest definition documents.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := manifest.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
