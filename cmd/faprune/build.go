package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/faprune/internal/faprune"
)

// errIssuesFound fails the command in strict mode
var errIssuesFound = errors.New("icon usage issues found (strict mode)")

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Copy vendor files, scan templates and prune the vendor stylesheet",
	Long: `Run the whole pipeline: copy the Font Awesome CSS and fonts into the vendor
tree, write the asset import plan, scan templates for icon usage and prune
unused icon rules from the target stylesheets of the build output.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.String("vendor-dir", "vendor", "Vendor tree root (font-awesome/ is created inside)")
	f.String("output-dir", "dist", "Build output directory")
	f.StringSlice("targets", faprune.DefaultTargets, "Stylesheets to prune, relative to the output directory")
	f.String("plan-file", "", "Write the asset import plan as JSON to this file")
	f.String("fonts-output", faprune.DefaultFontsOutput, "Destination of font files in the built application")
	f.Bool("use-scss", false, "Host compiles the Sass sources (no stylesheet import)")
	f.Bool("use-less", false, "Host compiles the Less sources (no stylesheet import)")
	addFontFlags(f)
	addScanFlags(f)
	addOutputFlags(f)
}

// addFontFlags registers the flags selecting font formats
func addFontFlags(f *pflag.FlagSet) {
	f.StringSlice("font-formats", faprune.DefaultFontFormats, "Font formats to ship")
}

// addScanFlags registers the template scanning flags
func addScanFlags(f *pflag.FlagSet) {
	f.StringSlice("templates", faprune.DefaultTemplatePatterns, "Glob patterns for template files")
	f.StringSlice("always", nil, "Icons to keep regardless of template usage")
	f.String("gitignore", ".gitignore", "Ignore file applied to template matches")
}

// addOutputFlags registers the report flags
func addOutputFlags(f *pflag.FlagSet) {
	f.String("output-format", "", "Output format: summary|issues|json")
	f.Bool("strict", false, "Exit 1 when icon usage issues are found (CI mode)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (faprune) suffix on issues")
	f.Bool("list-icons", false, "List used and removed icon names")
}

func runBuild(_ *cobra.Command, _ []string) error {
	log := loggerFromConfig()
	defer func() { _ = log.Sync() }()

	config := buildConfig(log)

	result, err := faprune.Build(config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if err := writeReport(result); err != nil {
		return err
	}

	return checkStrict(result.Issues())
}

// writeReport prints the result unless --quiet is set
func writeReport(result *faprune.BuildResult) error {
	if getBoolWithFallback("quiet", "quiet", false) {
		return nil
	}
	format := faprune.DetermineOutputFormat(getStringWithFallback("output-format", "build.output-format", ""))
	return faprune.WriteOutput(os.Stdout, result, format, buildReportConfig())
}

// checkStrict fails when issues were found and strict mode is on.
// Without strict mode issues are warnings only.
func checkStrict(issues []faprune.Issue) error {
	if getBoolWithFallback("strict", "build.strict", false) && len(issues) > 0 {
		return errIssuesFound
	}
	return nil
}
