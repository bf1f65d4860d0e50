package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giodamelio/edo"
)

var (
	checkManifests []string
	checkBuiltins  bool
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringArrayVarP(&checkManifests, "manifest", "m", nil, "manifest file to apply (repeatable)")
	checkCmd.Flags().BoolVar(&checkBuiltins, "builtins", false, "count the built-in handlers as bound")
}

var checkCmd = &cobra.Command{
	Use:   "check [template-file]",
	Short: "Validate a template",
	Long: `Parse a template and report its placeholders.

With manifests applied, names that remain unbound are listed. The exit
status reflects parse and load failures only; unbound names are
informational.`,
	Example: `  edo check greeting.txt
  edo check greeting.txt -m greeting.yaml --builtins`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := loadManifests(checkManifests)
		if err != nil {
			return err
		}
		source, err := resolveSource("", args, defs, cmd.InOrStdin())
		if err != nil {
			return err
		}

		tmpl, err := edo.New(source)
		if err != nil {
			return err
		}
		bind(tmpl, defs, nil, checkBuiltins)

		out := cmd.OutOrStdout()
		names := tmpl.Placeholders()
		fmt.Fprintf(out, "template ok: %d placeholders\n", len(names))
		if len(names) > 0 {
			fmt.Fprintf(out, "placeholders: %s\n", strings.Join(names, ", "))
		}
		if unbound := tmpl.Unbound(); len(unbound) > 0 {
			fmt.Fprintf(out, "unbound: %s\n", strings.Join(unbound, ", "))
		}
		return nil
	},
}
