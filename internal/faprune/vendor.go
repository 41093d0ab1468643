package faprune

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// VendorDirName is the directory the icon package is copied into
const VendorDirName = "font-awesome"

// DefaultFontFormats are copied when no formats are configured
var DefaultFontFormats = []string{"eot", "svg", "ttf", "woff", "woff2", "otf"}

// VendorResult describes a vendor copy
type VendorResult struct {
	Dest  string   // "<dest>/font-awesome"
	Files []string // Copied files, slash-separated and relative to the package
}

// normalizeFormats trims dots and blanks, falling back to DefaultFontFormats
func normalizeFormats(formats []string) []string {
	var out []string
	for _, f := range formats {
		f = strings.TrimPrefix(strings.TrimSpace(f), ".")
		if f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return DefaultFontFormats
	}
	return out
}

// FontFormatPattern builds the glob for the requested font formats:
// "*.woff" for one format, "*.{woff,woff2}" for several.
func FontFormatPattern(formats []string) string {
	formats = normalizeFormats(formats)
	if len(formats) == 1 {
		return "*." + formats[0]
	}
	return "*.{" + strings.Join(formats, ",") + "}"
}

// vendorPatterns lists the package globs included in the vendor tree
func vendorPatterns(formats []string) []string {
	return []string{
		"css/*",
		path.Join("fonts", FontFormatPattern(formats)),
	}
}

// SelectVendorFiles lists the package files that belong in the vendor tree.
// Paths are slash-separated, relative to packageDir and sorted.
func SelectVendorFiles(packageDir string, formats []string) ([]string, error) {
	fsys := os.DirFS(packageDir)

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range vendorPatterns(formats) {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := fs.Stat(fsys, match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no icon font files found in %s", packageDir)
	}

	sort.Strings(files)
	return files, nil
}

// CopyVendorFiles copies the selected package files to <destDir>/font-awesome.
// Copy failures are collected; the result lists the files that succeeded.
func CopyVendorFiles(packageDir, destDir string, formats []string, log *zap.Logger) (*VendorResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("vendor")

	files, err := SelectVendorFiles(packageDir, formats)
	if err != nil {
		return nil, err
	}

	result := &VendorResult{Dest: filepath.Join(destDir, VendorDirName)}

	var errs error
	for _, rel := range files {
		src := filepath.Join(packageDir, filepath.FromSlash(rel))
		dst := filepath.Join(result.Dest, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("copy %s: %w", rel, err))
			continue
		}
		result.Files = append(result.Files, rel)
		log.Debug("Copied vendor file", zap.String("file", rel))
	}

	log.Debug("Vendor copy complete",
		zap.String("dest", result.Dest),
		zap.Int("files", len(result.Files)))

	return result, errs
}

// copyFile copies src to dst, creating parent directories
func copyFile(src, dst string) (err error) {
	// #nosec G304 - path comes from the configured package directory
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()

	_, err = io.Copy(out, in)
	return err
}
