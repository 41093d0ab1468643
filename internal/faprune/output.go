package faprune

import (
	"encoding/json"
	"io"
	"time"
)

// DetermineOutputFormat selects the output format from the flag value.
// Unknown or empty values fall back to OutputSummary.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "issues":
		return OutputIssues
	case "json":
		return OutputJSON
	default:
		return OutputSummary
	}
}

// WriteOutput writes the build result in the specified format
func WriteOutput(w io.Writer, result *BuildResult, format OutputFormat, config ReportConfig) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, result)

	case OutputIssues:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues())
		reporter.PrintIssueSummary(result.Issues())

	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues())
		reporter.PrintBuild(result)
		reporter.PrintIssueSummary(result.Issues())
	}
	return nil
}

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Icons     JSONIcons   `json:"icons"`
	Files     []JSONFile  `json:"files"`
	Issues    []JSONIssue `json:"issues"`
	Plan      *ImportPlan `json:"plan,omitempty"`
	Warnings  []string    `json:"warnings"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	TemplatesScanned int `json:"templates_scanned"`
	VendorFiles      int `json:"vendor_files"`
	RulesRemoved     int `json:"rules_removed"`
	BytesSaved       int `json:"bytes_saved"`
	TotalIssues      int `json:"total_issues"`
}

// JSONIcons contains the icon usage set
type JSONIcons struct {
	Used        []string `json:"used"`
	AllPossible bool     `json:"all_possible"`
}

// JSONFile describes a pruned target file
type JSONFile struct {
	Path         string   `json:"path"`
	Changed      bool     `json:"changed"`
	Skipped      bool     `json:"skipped"`
	Rules        int      `json:"rules"`
	RulesRemoved int      `json:"rules_removed"`
	BytesIn      int      `json:"bytes_in"`
	BytesOut     int      `json:"bytes_out"`
	RemovedIcons []string `json:"removed_icons"`
}

// JSONIssue represents a single scan issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"`
}

// WriteJSON writes the build result as JSON
func WriteJSON(w io.Writer, result *BuildResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts BuildResult to JSONOutput
func buildJSONOutput(result *BuildResult) JSONOutput {
	output := JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Files:     make([]JSONFile, 0, len(result.Files)),
		Issues:    make([]JSONIssue, 0, len(result.Issues())),
		Plan:      result.Plan,
		Warnings:  result.Warnings,
		Icons:     JSONIcons{Used: []string{}},
	}
	if output.Warnings == nil {
		output.Warnings = []string{}
	}

	if result.Scan != nil {
		output.Summary.TemplatesScanned = result.Scan.Stats.FilesScanned
		output.Icons.AllPossible = result.Scan.Used.AllPossible()
		if names := result.Scan.Used.Names(); names != nil {
			output.Icons.Used = names
		}
	}
	if result.Vendor != nil {
		output.Summary.VendorFiles = len(result.Vendor.Files)
	}
	output.Summary.RulesRemoved = result.RulesRemoved()
	output.Summary.BytesSaved = result.BytesSaved()
	output.Summary.TotalIssues = len(result.Issues())

	for _, f := range result.Files {
		removed := f.Stats.RemovedIcons
		if removed == nil {
			removed = []string{}
		}
		output.Files = append(output.Files, JSONFile{
			Path:         f.Path,
			Changed:      f.Changed,
			Skipped:      f.Stats.Skipped,
			Rules:        f.Stats.Rules,
			RulesRemoved: f.Stats.RulesRemoved,
			BytesIn:      f.Stats.BytesIn,
			BytesOut:     f.Stats.BytesOut,
			RemovedIcons: removed,
		})
	}

	for _, issue := range result.Issues() {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		output.Issues = append(output.Issues, JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		})
	}

	return output
}
