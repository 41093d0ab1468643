package faprune

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestPlanImports(t *testing.T) {
	pkg := newFontPackage(t)

	tests := []struct {
		name      string
		opts      HostOptions
		wantStyle bool
		wantFonts []FontImport
	}{
		{
			name:      "defaults",
			opts:      HostOptions{FontFormats: []string{"woff", "woff2"}},
			wantStyle: true,
			wantFonts: []FontImport{
				{File: "vendor/font-awesome/fonts/fontawesome-webfont.woff", DestDir: "/fonts"},
				{File: "vendor/font-awesome/fonts/fontawesome-webfont.woff2", DestDir: "/fonts"},
			},
		},
		{
			name:      "assets disabled",
			opts:      HostOptions{IncludeAssets: boolPtr(false)},
			wantStyle: false,
			wantFonts: []FontImport{},
		},
		{
			name:      "sass compiles the stylesheet",
			opts:      HostOptions{UseScss: true, FontFormats: []string{"otf"}},
			wantStyle: false,
			wantFonts: []FontImport{
				{File: "vendor/font-awesome/fonts/FontAwesome.otf", DestDir: "/fonts"},
			},
		},
		{
			name:      "less compiles the stylesheet and fonts disabled",
			opts:      HostOptions{UseLess: true, IncludeFontFiles: boolPtr(false)},
			wantStyle: false,
			wantFonts: []FontImport{},
		},
		{
			name:      "custom fonts output",
			opts:      HostOptions{FontsOutput: "/assets/fonts", FontFormats: []string{"eot"}, IncludeAssets: boolPtr(true)},
			wantStyle: true,
			wantFonts: []FontImport{
				{File: "vendor/font-awesome/fonts/fontawesome-webfont.eot", DestDir: "/assets/fonts"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanImports(pkg, tt.opts)
			require.NoError(t, err)

			if tt.wantStyle {
				require.NotNil(t, plan.Stylesheet)
				assert.Equal(t, "vendor/font-awesome/css/font-awesome.css", plan.Stylesheet.Development)
				assert.Equal(t, "vendor/font-awesome/css/font-awesome.min.css", plan.Stylesheet.Production)
			} else {
				assert.Nil(t, plan.Stylesheet)
			}
			assert.Equal(t, tt.wantFonts, plan.Fonts)
		})
	}
}

func TestPlanImports_MissingFonts(t *testing.T) {
	_, err := PlanImports(t.TempDir(), HostOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read fonts")
}

func TestImportPlan_WriteJSON(t *testing.T) {
	plan := &ImportPlan{
		Stylesheet: &StyleImport{Development: "a.css", Production: "a.min.css"},
		Fonts:      []FontImport{{File: "f.woff", DestDir: "/fonts"}},
	}

	var buf bytes.Buffer
	require.NoError(t, plan.WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "a.min.css", decoded["stylesheet"].(map[string]any)["production"])
	assert.Equal(t, "/fonts", decoded["fonts"].([]any)[0].(map[string]any)["destDir"])

	assert.False(t, plan.Empty())
	assert.True(t, (&ImportPlan{}).Empty())
}
