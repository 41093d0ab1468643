package faprune

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReportConfig controls terminal output
type ReportConfig struct {
	UseColors        bool // Force color output (default: auto-detect)
	PrintIssuedLines bool // Show source lines with issues
	PrintLinterName  bool // Show (faprune) suffix
	ListIcons        bool // List used and removed icon names
}

// Reporter handles formatting and outputting build results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
	listIcons       bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config ReportConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
		listIcons:       config.ListIcons,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config ReportConfig) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)

	// Sort issues by file, then line, then column
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Pos.Filename != sorted[j].Pos.Filename {
			return sorted[i].Pos.Filename < sorted[j].Pos.Filename
		}
		if sorted[i].Pos.Line != sorted[j].Pos.Line {
			return sorted[i].Pos.Line < sorted[j].Pos.Line
		}
		return sorted[i].Pos.Column < sorted[j].Pos.Column
	})

	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: message (linter)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		paint(stylePath, location, r.useColors),
		issue.Text,
		paint(styleMuted, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", paint(styleWarning, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up under tabbed source.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintIssueSummary outputs the issue count line
func (r *Reporter) PrintIssueSummary(issues []Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%s:\n", pluralizeCount(len(issues), "issue", "issues"))
	fmt.Fprintf(r.w, "* %s: %d\n", LinterName, len(issues))
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, paint(styleMuted,
		"Hint: use literal icon names or list dynamic icons under scan.always", r.useColors))
}

// PrintBuild outputs build statistics
func (r *Reporter) PrintBuild(result *BuildResult) {
	if result.Vendor != nil {
		fmt.Fprintf(r.w, "Copied %s to %s\n",
			pluralizeCount(len(result.Vendor.Files), "vendor file", "vendor files"), result.Vendor.Dest)
	}

	if result.Plan != nil {
		if result.Plan.Empty() {
			fmt.Fprintln(r.w, "No asset imports planned")
		} else {
			fmt.Fprintf(r.w, "Planned %s\n", pluralizeCount(len(result.Plan.Fonts), "font import", "font imports"))
		}
	}

	if result.Scan != nil {
		r.PrintScan(result.Scan)
	}

	for _, f := range result.Files {
		r.printFile(f)
	}

	if len(result.Files) > 0 {
		saved := fmt.Sprintf("Removed %s, saved %s",
			pluralizeCount(result.RulesRemoved(), "rule", "rules"),
			formatBytes(result.BytesSaved()))
		fmt.Fprintln(r.w, paint(styleSaved, saved, r.useColors))
	}

	r.PrintWarnings(result.Warnings)
}

// PrintScan outputs template scan statistics
func (r *Reporter) PrintScan(scan *ScanResult) {
	fmt.Fprintf(r.w, "Scanned %s", pluralizeCount(scan.Stats.FilesScanned, "template", "templates"))
	if scan.Stats.FilesSkipped > 0 {
		fmt.Fprintf(r.w, " (skipped %d ignored)", scan.Stats.FilesSkipped)
	}
	fmt.Fprintln(r.w, "")

	if scan.Used.AllPossible() {
		fmt.Fprintln(r.w, paint(styleWarning,
			"Icon usage could not be determined statically, pruning disabled", r.useColors))
	} else {
		fmt.Fprintf(r.w, "Icons used: %d\n", scan.Used.Len())
	}

	if r.listIcons {
		for _, name := range scan.Used.Names() {
			fmt.Fprintf(r.w, "  %s\n", name)
		}
	}
}

// printFile outputs the result for one pruned file
func (r *Reporter) printFile(f FileResult) {
	location := paint(stylePath, f.Path+":", r.useColors)
	switch {
	case f.Stats.Skipped:
		fmt.Fprintf(r.w, "%s skipped (%s)\n", location, PossiblyAll)
	case !f.Changed:
		fmt.Fprintf(r.w, "%s unchanged (%d rules)\n", location, f.Stats.Rules)
	default:
		fmt.Fprintf(r.w, "%s removed %d of %d rules (%s -> %s)\n",
			location, f.Stats.RulesRemoved, f.Stats.Rules,
			formatBytes(f.Stats.BytesIn), formatBytes(f.Stats.BytesOut))
	}

	if r.listIcons && len(f.Stats.RemovedIcons) > 0 {
		fmt.Fprintf(r.w, "  removed: %s\n", strings.Join(f.Stats.RemovedIcons, ", "))
	}
}

// PrintWarnings shows build warnings
func (r *Reporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, paint(styleWarning, "Warnings", r.useColors))
	for _, warning := range warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// formatBytes renders a byte count with a binary unit
func formatBytes(n int) string {
	const unit = 1024
	if n < unit && n > -unit {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KiB", float64(n)/unit)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
