package faprune

// Issue represents a single scan finding in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "faprune"
	Text        string   `json:"Text"`        // "dynamic icon name \"this.icon\" disables pruning"
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "app/templates/components/nav-bar.hbs"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 5 (1-based)
}

// LinterName is reported as the origin of every issue
const LinterName = "faprune"

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue message formats
const (
	IssueDynamicIcon  = "dynamic icon name %q disables pruning"
	IssueDynamicClass = "interpolated icon class %q disables pruning"
)
