package faprune

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPruneTree(t *testing.T) {
	dist := t.TempDir()
	writeFile(t, filepath.Join(dist, "assets/vendor.css"), carBus)
	writeFile(t, filepath.Join(dist, "assets/app.css"), carBus)

	files, warnings, err := PruneTree(dist, nil, NewUsedIconSet("car"), nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, files, 1)
	assert.Equal(t, "assets/vendor.css", files[0].Path)
	assert.True(t, files[0].Changed)
	assert.Equal(t, 1, files[0].Stats.RulesRemoved)

	data, err := os.ReadFile(filepath.Join(dist, "assets/vendor.css"))
	require.NoError(t, err)
	assert.Equal(t, `.fa-car:before{content:"\f1b9"}`, string(data))

	// Files outside the allow-list are never touched
	data, err = os.ReadFile(filepath.Join(dist, "assets/app.css"))
	require.NoError(t, err)
	assert.Equal(t, carBus, string(data))
}

func TestPruneTree_Sentinel(t *testing.T) {
	dist := t.TempDir()
	writeFile(t, filepath.Join(dist, "assets/vendor.css"), carBus)

	files, _, err := PruneTree(dist, nil, NewUsedIconSet(PossiblyAll), nil)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.False(t, files[0].Changed)
	assert.True(t, files[0].Stats.Skipped)

	data, err := os.ReadFile(filepath.Join(dist, "assets/vendor.css"))
	require.NoError(t, err)
	assert.Equal(t, carBus, string(data))
}

func TestPruneTree_PatternsAndMissingTargets(t *testing.T) {
	dist := t.TempDir()
	writeFile(t, filepath.Join(dist, "assets/vendor.css"), carBus)
	writeFile(t, filepath.Join(dist, "assets/vendor-rtl.css"), carBus)

	files, warnings, err := PruneTree(dist,
		[]string{"assets/vendor*.css", "assets/vendor.css", "assets/missing.css"},
		NewUsedIconSet("bus"), nil)
	require.NoError(t, err)

	assert.Len(t, files, 2)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "assets/missing.css")
}

func TestPruneTree_DirectoryTarget(t *testing.T) {
	dist := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "assets/vendor.css"), 0o755))

	_, _, err := PruneTree(dist, nil, NewUsedIconSet(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestBuild(t *testing.T) {
	pkg := newFontPackage(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app/templates/index.hbs"), "{{fa-icon \"music\"}}\n")
	writeFile(t, filepath.Join(root, "dist/assets/vendor.css"), vendorCSS)

	config := Config{
		PackageDir: pkg,
		VendorDir:  filepath.Join(root, "vendor"),
		OutputDir:  filepath.Join(root, "dist"),
		PlanFile:   filepath.Join(root, "tmp/plan.json"),
		Scan: ScanConfig{
			Patterns: []string{filepath.Join(root, "app/**/*.hbs")},
		},
		Host:   HostOptions{FontFormats: []string{"woff2"}},
		Logger: zaptest.NewLogger(t),
	}

	result, err := Build(config)
	require.NoError(t, err)

	require.NotNil(t, result.Vendor)
	assert.Len(t, result.Vendor.Files, 4)

	require.NotNil(t, result.Plan)
	require.Len(t, result.Plan.Fonts, 1)

	assert.Equal(t, []string{"music"}, result.Scan.Used.Names())
	assert.Equal(t, 3, result.RulesRemoved())
	assert.Positive(t, result.BytesSaved())
	assert.Empty(t, result.Issues())

	pruned, err := os.ReadFile(filepath.Join(root, "dist/assets/vendor.css"))
	require.NoError(t, err)
	assert.Contains(t, string(pruned), ".fa-music:before")
	assert.NotContains(t, string(pruned), ".fa-camera:before")

	planData, err := os.ReadFile(config.PlanFile)
	require.NoError(t, err)
	var plan ImportPlan
	require.NoError(t, json.Unmarshal(planData, &plan))
	assert.Equal(t, *result.Plan, plan)
}

func TestBuild_ScanOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app/a.hbs"), "{{fa-icon this.icon}}\n")

	result, err := Build(Config{
		Scan: ScanConfig{Patterns: []string{filepath.Join(root, "app/**/*.hbs")}},
	})
	require.NoError(t, err)

	assert.Nil(t, result.Vendor)
	assert.Nil(t, result.Plan)
	assert.Empty(t, result.Files)
	assert.True(t, result.Scan.Used.AllPossible())
	assert.Len(t, result.Issues(), 1)
}

func TestBuild_NoTemplatesSkipsPrune(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dist/assets/vendor.css"), vendorCSS)

	result, err := Build(Config{
		OutputDir: filepath.Join(root, "dist"),
		Scan:      ScanConfig{Patterns: []string{filepath.Join(root, "app/**/*.hbs")}},
		Logger:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Zero(t, result.Scan.Stats.FilesScanned)
	assert.Empty(t, result.Files)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no templates matched")
	assert.Contains(t, result.Warnings[0], "pruning skipped")

	data, err := os.ReadFile(filepath.Join(root, "dist/assets/vendor.css"))
	require.NoError(t, err)
	assert.Equal(t, vendorCSS, string(data))
}
