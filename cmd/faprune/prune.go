package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/faprune/internal/faprune"
)

var pruneCmd = &cobra.Command{
	Use:   "prune [file]",
	Short: "Remove unused icon rules from a single stylesheet",
	Long: `Read a stylesheet (a file or "-" for stdin), remove the .fa-<name>:before rules
of icons that are not used and write the result to --out (default stdout).
Used icons come from --icons, or from a template scan when --icons is empty.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runPrune,
}

func init() {
	f := pruneCmd.Flags()
	f.StringP("out", "o", "", "Output file (default stdout, same path as input rewrites it)")
	f.StringSlice("icons", nil, "Icon names in use; skips the template scan")
	addScanFlags(f)
}

func runPrune(cmd *cobra.Command, args []string) error {
	log := loggerFromConfig()
	defer func() { _ = log.Sync() }()

	input := "-"
	if len(args) == 1 {
		input = args[0]
	}

	content, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	used, err := resolveUsedIcons(log)
	if err != nil {
		return err
	}

	pruned, stats := faprune.NewPruner(log).Prune(string(content), used)

	out := getStringWithFallback("out", "prune.out", "")
	if out == "" || out == "-" {
		_, err = io.WriteString(cmd.OutOrStdout(), pruned)
		return err
	}

	if err := os.WriteFile(out, []byte(pruned), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: removed %d of %d rules (%d -> %d bytes)\n",
			out, stats.RulesRemoved, stats.Rules, stats.BytesIn, stats.BytesOut)
	}
	return nil
}

// readInput reads a file, or stdin when path is "-"
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	// #nosec G304 - path is supplied by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// resolveUsedIcons returns the explicit icon list, or scans templates for it
func resolveUsedIcons(log *zap.Logger) (*faprune.UsedIconSet, error) {
	scanConfig := buildScanConfig()

	if icons := getStringsWithFallback("icons", "prune.icons", nil); len(icons) > 0 {
		used := faprune.NewUsedIconSet(icons...)
		used.Merge(faprune.NewUsedIconSet(scanConfig.Always...))
		return used, nil
	}

	scan, err := faprune.NewScanner(scanConfig, log).Scan()
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	if scan.Stats.FilesScanned == 0 {
		log.Warn("No templates matched, pruning skipped",
			zap.Strings("patterns", scanConfig.Patterns))
		scan.Used.Add(faprune.PossiblyAll)
	}
	for _, issue := range scan.Issues {
		log.Warn(issue.Text,
			zap.String("file", issue.Pos.Filename),
			zap.Int("line", issue.Pos.Line))
	}
	return scan.Used, nil
}
