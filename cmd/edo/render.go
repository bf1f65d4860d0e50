package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/giodamelio/edo"
)

var (
	renderTemplate  string
	renderManifests []string
	renderSet       []string
	renderBuiltins  bool
	renderOutput    string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "inline template source")
	renderCmd.Flags().StringArrayVarP(&renderManifests, "manifest", "m", nil, "manifest file to apply (repeatable)")
	renderCmd.Flags().StringArrayVarP(&renderSet, "set", "s", nil, "static binding as name=value (repeatable)")
	renderCmd.Flags().BoolVar(&renderBuiltins, "builtins", false, "register the built-in handlers")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write output to a file instead of stdout")
}

var renderCmd = &cobra.Command{
	Use:   "render [template-file]",
	Short: "Render a template",
	Long: `Render a template against manifest bindings and --set values.

The template source comes from --template, the file argument ("-" for
stdin), the first manifest, or stdin, in that order. The rendered text is
written verbatim, with no trailing newline added.`,
	Example: `  # Render a file with a manifest
  edo render greeting.txt -m greeting.yaml

  # Render a manifest's own template with an extra binding
  edo render -m greeting.yaml --set name=Ada

  # Pipe a template through with builtins available
  echo 'Hi {upper(go)}' | edo render --builtins`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := loadManifests(renderManifests)
		if err != nil {
			return err
		}
		values, err := parseSet(renderSet)
		if err != nil {
			return err
		}
		source, err := resolveSource(renderTemplate, args, defs, cmd.InOrStdin())
		if err != nil {
			return err
		}

		tmpl, err := edo.New(source)
		if err != nil {
			return err
		}
		bind(tmpl, defs, values, renderBuiltins)
		if err := requireVars(tmpl, defs); err != nil {
			return err
		}

		out, err := tmpl.Render(nil)
		if err != nil {
			return err
		}

		if renderOutput != "" {
			if err := os.WriteFile(renderOutput, []byte(out), 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}
