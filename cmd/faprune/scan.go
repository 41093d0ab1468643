package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/faprune/internal/faprune"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the icons referenced by templates",
	Long: `Scan templates for fa-icon helpers, <FaIcon> components and "fa fa-<name>"
classes. Dynamic icon names are reported as issues because they disable pruning.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	addScanFlags(f)
	addOutputFlags(f)
}

func runScan(_ *cobra.Command, _ []string) error {
	log := loggerFromConfig()
	defer func() { _ = log.Sync() }()

	scan, err := faprune.NewScanner(buildScanConfig(), log).Scan()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		result := &faprune.BuildResult{Scan: scan}
		format := faprune.DetermineOutputFormat(getStringWithFallback("output-format", "build.output-format", ""))

		reportConfig := buildReportConfig()
		reportConfig.ListIcons = true
		if err := faprune.WriteOutput(os.Stdout, result, format, reportConfig); err != nil {
			return err
		}
	}

	return checkStrict(scan.Issues)
}
