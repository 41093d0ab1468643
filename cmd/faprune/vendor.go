package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/faprune/internal/faprune"
)

var vendorCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Copy the Font Awesome CSS and fonts into the vendor tree",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runVendor,
}

func init() {
	f := vendorCmd.Flags()
	f.String("vendor-dir", "vendor", "Vendor tree root (font-awesome/ is created inside)")
	addFontFlags(f)
}

func runVendor(cmd *cobra.Command, _ []string) error {
	log := loggerFromConfig()
	defer func() { _ = log.Sync() }()

	config := buildConfig(log)

	result, err := faprune.CopyVendorFiles(config.PackageDir, config.VendorDir, config.Host.FontFormats, log)
	if err != nil {
		return fmt.Errorf("vendor copy failed: %w", err)
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		fmt.Fprintf(cmd.OutOrStdout(), "Copied %d files to %s\n", len(result.Files), result.Dest)
	}
	return nil
}
