package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .faprune.yaml config file",
	Long:  `Create a .faprune.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# faprune configuration

# Shared settings
package-dir: node_modules/font-awesome
verbose: false

# Vendor tree
vendor:
  dest: vendor
  font-formats: [eot, svg, ttf, woff, woff2, otf]

# Host build options
host:
  include-assets: true
  include-font-files: true
  use-scss: false
  use-less: false
  fonts-output: /fonts

# Template scanning
scan:
  templates:
    - "app/**/*.hbs"
  always: []               # icons used from JavaScript or dynamic helpers
  gitignore: .gitignore

# Build output
build:
  output-dir: dist
  targets:
    - assets/vendor.css
  plan-file: ""
  output-format: summary   # summary | issues | json
  strict: false
  print-lines: true
  print-linter-name: true
  list-icons: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
