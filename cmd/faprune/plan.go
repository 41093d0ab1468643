package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/yacobolo/faprune/internal/faprune"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the asset imports the host build should perform",
	Long: `Print the stylesheet and font imports, as JSON, derived from the host
options (host.* in the config file) and the fonts in the package.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runPlan,
}

func init() {
	f := planCmd.Flags()
	f.String("plan-file", "", "Write the plan to this file instead of stdout")
	f.String("fonts-output", faprune.DefaultFontsOutput, "Destination of font files in the built application")
	f.Bool("use-scss", false, "Host compiles the Sass sources (no stylesheet import)")
	f.Bool("use-less", false, "Host compiles the Less sources (no stylesheet import)")
	addFontFlags(f)
}

func runPlan(cmd *cobra.Command, _ []string) (err error) {
	config := buildConfig(nil)

	plan, err := faprune.PlanImports(config.PackageDir, config.Host)
	if err != nil {
		return fmt.Errorf("import plan failed: %w", err)
	}

	if config.PlanFile == "" {
		return plan.WriteJSON(cmd.OutOrStdout())
	}

	f, err := os.Create(config.PlanFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", config.PlanFile, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return plan.WriteJSON(f)
}
