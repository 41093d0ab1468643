package faprune

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Vendor paths as seen by the host build
const (
	vendorCSSPath   = "vendor/font-awesome/css"
	vendorFontsPath = "vendor/font-awesome/fonts"
)

// DefaultFontsOutput is where font files land in the built application
const DefaultFontsOutput = "/fonts"

// HostOptions are the icon font options of the host build.
// Pointer fields distinguish "unset" (nil) from an explicit false.
type HostOptions struct {
	IncludeAssets    *bool    // Import any assets at all (default: true)
	IncludeFontFiles *bool    // Import font files (default: true)
	UseScss          bool     // Host compiles the Sass sources itself
	UseLess          bool     // Host compiles the Less sources itself
	FontsOutput      string   // Destination of font files (default: /fonts)
	FontFormats      []string // Font formats to ship (default: DefaultFontFormats)
}

// StyleImport is a stylesheet import with per-environment variants
type StyleImport struct {
	Development string `json:"development"`
	Production  string `json:"production"`
}

// FontImport is a single font file import
type FontImport struct {
	File    string `json:"file"`
	DestDir string `json:"destDir"`
}

// ImportPlan lists the imports the host build must perform
type ImportPlan struct {
	Stylesheet *StyleImport `json:"stylesheet,omitempty"`
	Fonts      []FontImport `json:"fonts"`
}

// Empty reports whether the plan imports nothing
func (p *ImportPlan) Empty() bool {
	return p.Stylesheet == nil && len(p.Fonts) == 0
}

// isEnabled treats nil as true
func isEnabled(b *bool) bool {
	return b == nil || *b
}

// PlanImports works out the imports for the icon package found at packageDir.
// Font files are taken from the package fonts/ directory, restricted to the
// configured formats so that every planned import exists in the vendor tree.
func PlanImports(packageDir string, opts HostOptions) (*ImportPlan, error) {
	plan := &ImportPlan{Fonts: []FontImport{}}

	if !isEnabled(opts.IncludeAssets) {
		return plan, nil
	}

	if !opts.UseScss && !opts.UseLess {
		plan.Stylesheet = &StyleImport{
			Development: path.Join(vendorCSSPath, "font-awesome.css"),
			Production:  path.Join(vendorCSSPath, "font-awesome.min.css"),
		}
	}

	if !isEnabled(opts.IncludeFontFiles) {
		return plan, nil
	}

	fontsOutput := opts.FontsOutput
	if fontsOutput == "" {
		fontsOutput = DefaultFontsOutput
	}

	fontsDir := filepath.Join(packageDir, "fonts")
	if _, err := os.Stat(fontsDir); err != nil {
		return nil, fmt.Errorf("read fonts: %w", err)
	}
	fonts, err := doublestar.Glob(os.DirFS(fontsDir), FontFormatPattern(opts.FontFormats))
	if err != nil {
		return nil, fmt.Errorf("list fonts in %s: %w", fontsDir, err)
	}
	sort.Strings(fonts)

	for _, font := range fonts {
		plan.Fonts = append(plan.Fonts, FontImport{
			File:    path.Join(vendorFontsPath, font),
			DestDir: fontsOutput,
		})
	}

	return plan, nil
}

// WriteJSON writes the plan as indented JSON
func (p *ImportPlan) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(p)
}
