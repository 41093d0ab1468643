// Package faprune trims the Font Awesome icon font down to the icons a web
// application actually uses.
//
// It copies the vendor CSS and font files into a build tree, plans the asset
// imports of the host build, scans templates for icon usage and removes the
// unused ".fa-<name>:before" glyph rules from the built vendor stylesheet.
//
// # Pruning
//
// Prune a stylesheet directly:
//
//	used := faprune.NewUsedIconSet("car", "camera")
//	css = faprune.Prune(css, used)
//
// A set holding faprune.PossiblyAll leaves the stylesheet untouched.
//
// # Building
//
// Run the whole pipeline:
//
//	result, err := faprune.Build(faprune.Config{
//		PackageDir: "node_modules/font-awesome",
//		VendorDir:  "vendor",
//		OutputDir:  "dist",
//		Scan:       faprune.ScanConfig{Patterns: []string{"app/**/*.hbs"}},
//	})
//
// # CLI Tool
//
// faprune also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/faprune/cmd/faprune@latest
package faprune

import "github.com/yacobolo/faprune/internal/faprune"

// PossiblyAll is the icon name that disables pruning
const PossiblyAll = faprune.PossiblyAll

type (
	// UsedIconSet holds the icon names referenced by an application
	UsedIconSet = faprune.UsedIconSet
	// Config holds build configuration
	Config = faprune.Config
	// ScanConfig holds template scanning configuration
	ScanConfig = faprune.ScanConfig
	// HostOptions are the icon font options of the host build
	HostOptions = faprune.HostOptions
	// BuildResult contains build stats
	BuildResult = faprune.BuildResult
	// ImportPlan lists the imports the host build must perform
	ImportPlan = faprune.ImportPlan
)

// NewUsedIconSet creates a set containing the given names
func NewUsedIconSet(names ...string) *UsedIconSet {
	return faprune.NewUsedIconSet(names...)
}

// Prune removes the glyph rules of icons that are not in used
func Prune(css string, used *UsedIconSet) string {
	return faprune.Prune(css, used)
}

// Build runs vendor copy, import planning, template scan and pruning
func Build(config Config) (*BuildResult, error) {
	return faprune.Build(config)
}

// PlanImports works out the host build imports for an icon package
func PlanImports(packageDir string, opts HostOptions) (*ImportPlan, error) {
	return faprune.PlanImports(packageDir, opts)
}
