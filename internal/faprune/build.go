package faprune

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// PruneTree prunes every target file found under dir.
// Targets are slash-separated paths or doublestar patterns relative to dir;
// only matching files are touched. Targets without a match produce a warning.
func PruneTree(dir string, targets []string, used *UsedIconSet, log *zap.Logger) ([]FileResult, []string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(targets) == 0 {
		targets = DefaultTargets
	}
	pruner := NewPruner(log)
	fsys := os.DirFS(dir)

	var (
		results  []FileResult
		warnings []string
		errs     error
	)
	seen := make(map[string]bool)

	for _, target := range targets {
		matches, err := doublestar.Glob(fsys, target)
		if err != nil {
			return nil, nil, fmt.Errorf("bad target %q: %w", target, err)
		}
		if len(matches) == 0 {
			warnings = append(warnings, fmt.Sprintf("target %s not found in %s", target, dir))
			continue
		}

		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true

			result, err := pruneFile(pruner, filepath.Join(dir, filepath.FromSlash(rel)), used)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("prune %s: %w", rel, err))
				continue
			}
			result.Path = rel
			results = append(results, result)
		}
	}

	return results, warnings, errs
}

// pruneFile rewrites a single stylesheet in place when pruning changed it
func pruneFile(pruner *Pruner, path string, used *UsedIconSet) (FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileResult{}, err
	}
	if info.IsDir() {
		return FileResult{}, fmt.Errorf("%s is a directory", path)
	}

	// #nosec G304 - path comes from the configured output directory
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("read file: %w", err)
	}

	pruned, stats := pruner.Prune(string(content), used)
	result := FileResult{Stats: stats}

	if pruned == string(content) {
		return result, nil
	}

	if err := os.WriteFile(path, []byte(pruned), info.Mode().Perm()); err != nil {
		return FileResult{}, fmt.Errorf("write file: %w", err)
	}
	result.Changed = true

	return result, nil
}

// Build is the main entry point: vendor copy, import plan, template scan
// and stylesheet pruning, in that order. Steps whose directories are not
// configured are skipped.
func Build(config Config) (*BuildResult, error) {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	result := &BuildResult{}

	// 1. Vendor tree and import plan
	if config.PackageDir != "" {
		if config.VendorDir != "" {
			vendor, err := CopyVendorFiles(config.PackageDir, config.VendorDir, config.Host.FontFormats, log)
			if err != nil {
				return nil, fmt.Errorf("vendor copy failed: %w", err)
			}
			result.Vendor = vendor
		}

		plan, err := PlanImports(config.PackageDir, config.Host)
		if err != nil {
			return nil, fmt.Errorf("import plan failed: %w", err)
		}
		result.Plan = plan

		if config.PlanFile != "" {
			if err := writePlanFile(config.PlanFile, plan); err != nil {
				return nil, fmt.Errorf("write plan: %w", err)
			}
		}
	}

	// 2. Icon usage
	scan, err := NewScanner(config.Scan, log).Scan()
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.Scan = scan

	// 3. Prune build output. With no templates the usage set says nothing
	// about the application, so every glyph would look unused.
	switch {
	case config.OutputDir == "":
	case scan.Stats.FilesScanned == 0:
		patterns := config.Scan.Patterns
		if len(patterns) == 0 {
			patterns = DefaultTemplatePatterns
		}
		warning := fmt.Sprintf("no templates matched %s, pruning skipped", strings.Join(patterns, ", "))
		log.Warn(warning)
		result.Warnings = append(result.Warnings, warning)
	default:
		files, warnings, err := PruneTree(config.OutputDir, config.Targets, scan.Used, log)
		if err != nil {
			return nil, fmt.Errorf("prune failed: %w", err)
		}
		result.Files = files
		result.Warnings = append(result.Warnings, warnings...)
	}

	log.Info("Build complete",
		zap.Int("icons_used", scan.Used.Len()),
		zap.Int("rules_removed", result.RulesRemoved()),
		zap.Int("bytes_saved", result.BytesSaved()))

	return result, nil
}

// writePlanFile writes the import plan, creating parent directories
func writePlanFile(path string, plan *ImportPlan) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return plan.WriteJSON(f)
}
