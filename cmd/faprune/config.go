package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yacobolo/faprune/internal/faprune"
)

const defaultConfigFile = ".faprune.yaml"

var k = koanf.New(".")

// configSections are the nested blocks of the config file.
// FAPRUNE_<SECTION>_<KEY> maps to "<section>.<key>".
var configSections = map[string]bool{
	"build":  true,
	"scan":   true,
	"vendor": true,
	"host":   true,
	"prune":  true,
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	fs := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (FAPRUNE_* prefix)
	if err := k.Load(env.ProviderWithValue("FAPRUNE_", ".", envKeyValue), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKeyValue maps an environment variable onto a config key:
//
//	FAPRUNE_BUILD_OUTPUT_DIR -> build.output-dir
//	FAPRUNE_PACKAGE_DIR      -> package-dir
//
// Comma-separated values become lists.
func envKeyValue(name, value string) (string, interface{}) {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(name, "FAPRUNE_")), "_")

	key := strings.Join(parts, "-")
	if len(parts) > 1 && configSections[parts[0]] {
		key = parts[0] + "." + strings.Join(parts[1:], "-")
	}

	if strings.Contains(value, ",") {
		return key, splitList(value)
	}
	return key, value
}

// splitList splits comma-separated values, dropping blanks
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig(log *zap.Logger) faprune.Config {
	return faprune.Config{
		PackageDir: getStringWithFallback("package-dir", "package-dir", "node_modules/font-awesome"),
		VendorDir:  getStringWithFallback("vendor-dir", "vendor.dest", "vendor"),
		OutputDir:  getStringWithFallback("output-dir", "build.output-dir", "dist"),
		Targets:    getStringsWithFallback("targets", "build.targets", faprune.DefaultTargets),
		PlanFile:   getStringWithFallback("plan-file", "build.plan-file", ""),
		Scan:       buildScanConfig(),
		Host:       buildHostOptions(),
		Logger:     log,
	}
}

// buildScanConfig constructs the template scanning configuration.
func buildScanConfig() faprune.ScanConfig {
	return faprune.ScanConfig{
		Patterns:  getStringsWithFallback("templates", "scan.templates", faprune.DefaultTemplatePatterns),
		Always:    getStringsWithFallback("always", "scan.always", nil),
		GitIgnore: getStringWithFallback("gitignore", "scan.gitignore", ".gitignore"),
	}
}

// buildHostOptions constructs the host build options.
func buildHostOptions() faprune.HostOptions {
	return faprune.HostOptions{
		IncludeAssets:    getOptionalBool("host.include-assets"),
		IncludeFontFiles: getOptionalBool("host.include-font-files"),
		UseScss:          getBoolWithFallback("use-scss", "host.use-scss", false),
		UseLess:          getBoolWithFallback("use-less", "host.use-less", false),
		FontsOutput:      getStringWithFallback("fonts-output", "host.fonts-output", faprune.DefaultFontsOutput),
		FontFormats:      getStringsWithFallback("font-formats", "vendor.font-formats", faprune.DefaultFontFormats),
	}
}

// buildReportConfig constructs the terminal output configuration.
func buildReportConfig() faprune.ReportConfig {
	return faprune.ReportConfig{
		UseColors:        getBoolWithFallback("color", "color", false),
		PrintIssuedLines: getBoolWithFallback("print-lines", "build.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "build.print-linter-name", true),
		ListIcons:        getBoolWithFallback("list-icons", "build.list-icons", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	// A single env value is a plain string rather than a list
	if v, ok := k.Get(configKey).(string); ok && v != "" {
		return []string{v}
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getOptionalBool returns nil when the key is not configured.
func getOptionalBool(key string) *bool {
	if !k.Exists(key) {
		return nil
	}
	v := k.Bool(key)
	return &v
}
