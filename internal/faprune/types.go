package faprune

import "go.uber.org/zap"

// DefaultTargets are the build outputs routed through the pruner
var DefaultTargets = []string{"assets/vendor.css"}

// Config holds build configuration
type Config struct {
	PackageDir string      // "node_modules/font-awesome"
	VendorDir  string      // "vendor" (vendor tree root, "" skips the copy)
	OutputDir  string      // "dist" (built application, "" skips pruning)
	Targets    []string    // Files under OutputDir to prune (default: assets/vendor.css)
	PlanFile   string      // Where to write the import plan as JSON ("" skips)
	Scan       ScanConfig  // Template scanning
	Host       HostOptions // Host build options
	Logger     *zap.Logger // nil disables logging
}

// FileResult describes one pruned target file
type FileResult struct {
	Path    string // Relative to the output directory
	Changed bool   // False when the file was left untouched
	Stats   PruneStats
}

// BuildResult contains build stats
type BuildResult struct {
	Scan     *ScanResult
	Vendor   *VendorResult
	Plan     *ImportPlan
	Files    []FileResult
	Warnings []string
}

// RulesRemoved sums removed rules over all pruned files
func (r *BuildResult) RulesRemoved() int {
	n := 0
	for _, f := range r.Files {
		n += f.Stats.RulesRemoved
	}
	return n
}

// BytesSaved sums the size reduction over all pruned files
func (r *BuildResult) BytesSaved() int {
	n := 0
	for _, f := range r.Files {
		n += f.Stats.BytesIn - f.Stats.BytesOut
	}
	return n
}

// Issues returns the scan issues, if a scan ran
func (r *BuildResult) Issues() []Issue {
	if r.Scan == nil {
		return nil
	}
	return r.Scan.Issues
}

// OutputFormat represents the report output format
type OutputFormat string

const (
	// OutputSummary shows build statistics and issues (default)
	OutputSummary OutputFormat = "summary"
	// OutputIssues shows only scan issues in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)
