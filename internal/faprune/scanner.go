package faprune

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// DefaultTemplatePatterns are scanned when no patterns are configured
var DefaultTemplatePatterns = []string{"app/**/*.hbs"}

// ScanConfig holds template scanning configuration
type ScanConfig struct {
	Patterns  []string // Glob patterns for template files ("app/**/*.hbs")
	Always    []string // Icons treated as used regardless of templates
	GitIgnore string   // Ignore file applied to matches ("" disables)
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to .gitignore
}

// ScanResult is the outcome of a template scan
type ScanResult struct {
	Used   *UsedIconSet
	Issues []Issue
	Stats  ScanStats
}

// iconRef is a single icon usage found in a template
type iconRef struct {
	name    string // literal icon name, empty when dynamic
	expr    string // unresolved expression for dynamic usages
	offset  int    // byte offset of the usage in its file
	end     int    // byte offset just past the usage
	message string // issue format for dynamic usages
}

var (
	// {{fa-icon ...}} mustaches and (fa-icon ...) sub-expressions
	helperPattern = regexp.MustCompile(`(?:\{\{~?|\()\s*fa-icon\s+([^})]*)`)

	// <FaIcon @icon="camera"> and <FaIcon @icon={{this.icon}}>
	componentPattern = regexp.MustCompile(`<FaIcon\b[^>]*?@icon=(?:"([^"]*)"|'([^']*)'|\{\{([^}]*)\}\})`)

	// class="fa fa-camera fa-lg"
	classAttrPattern = regexp.MustCompile(`class=(?:"([^"]*)"|'([^']*)')`)

	// Utility classes that share the fa- prefix without naming a glyph
	modifierClasses = map[string]bool{
		"lg": true, "2x": true, "3x": true, "4x": true, "5x": true,
		"fw": true, "ul": true, "li": true, "border": true,
		"spin": true, "pulse": true, "inverse": true,
		"pull-left": true, "pull-right": true,
		"rotate-90": true, "rotate-180": true, "rotate-270": true,
		"flip-horizontal": true, "flip-vertical": true,
		"stack": true, "stack-1x": true, "stack-2x": true,
	}
)

// Scanner collects icon usage from template files
type Scanner struct {
	config     ScanConfig
	log        *zap.Logger
	ignoreOnce sync.Once
	ignore     *ignore.GitIgnore
	ignoreBase string
}

// NewScanner creates a scanner. A nil logger disables logging.
func NewScanner(config ScanConfig, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	if len(config.Patterns) == 0 {
		config.Patterns = DefaultTemplatePatterns
	}
	return &Scanner{config: config, log: log.Named("scanner")}
}

// loadGitIgnore loads the ignore file once
// Gracefully degrades if the file doesn't exist
func (s *Scanner) loadGitIgnore() *ignore.GitIgnore {
	s.ignoreOnce.Do(func() {
		if s.config.GitIgnore == "" {
			return
		}
		gi, err := ignore.CompileIgnoreFile(s.config.GitIgnore)
		if err != nil {
			s.log.Debug("No ignore file", zap.String("path", s.config.GitIgnore))
			return
		}
		base, err := filepath.Abs(filepath.Dir(s.config.GitIgnore))
		if err != nil {
			return
		}
		s.ignore = gi
		s.ignoreBase = base
	})
	return s.ignore
}

// shouldSkipFile reports whether the ignore file excludes path
func (s *Scanner) shouldSkipFile(path string) bool {
	gi := s.loadGitIgnore()
	if gi == nil {
		return false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(s.ignoreBase, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		// Outside the project: the ignore file doesn't apply
		return false
	}
	return gi.MatchesPath(filepath.ToSlash(rel))
}

// Scan scans every template matched by the configured patterns
func (s *Scanner) Scan() (*ScanResult, error) {
	files, stats, err := s.expandGlobPatterns()
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		Used:  NewUsedIconSet(s.config.Always...),
		Stats: stats,
	}

	for _, file := range files {
		if err := s.scanFile(file, result); err != nil {
			return nil, fmt.Errorf("scan %s: %w", file, err)
		}
	}

	s.log.Debug("Scanned templates",
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped),
		zap.Int("icons", result.Used.Len()),
		zap.Bool("all_possible", result.Used.AllPossible()))

	return result, nil
}

// expandGlobPatterns expands globs and tracks statistics
func (s *Scanner) expandGlobPatterns() ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range s.config.Patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if s.shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// scanFile records the icons referenced by a single template.
// Patterns run over the whole file so that calls spanning lines are found.
func (s *Scanner) scanFile(filePath string, result *ScanResult) error {
	// #nosec G304 - path comes from configured glob patterns
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	content := string(data)
	lines := newLineIndex(content)

	for _, ref := range extractIcons(content) {
		if ref.name != "" {
			result.Used.Add(ref.name)
			continue
		}

		line, column := lines.position(ref.offset)
		endLine, _ := lines.position(ref.end - 1)

		result.Used.Add(PossiblyAll)
		result.Issues = append(result.Issues, Issue{
			FromLinter:  LinterName,
			Text:        fmt.Sprintf(ref.message, ref.expr),
			Severity:    SeverityWarning,
			SourceLines: lines.text(line, endLine),
			Pos: IssuePos{
				Filename: filePath,
				Line:     line,
				Column:   column,
			},
		})
		s.log.Debug("Dynamic icon usage",
			zap.String("file", filePath),
			zap.Int("line", line),
			zap.String("expr", ref.expr))
	}

	return nil
}

// lineIndex maps byte offsets of a file to 1-based line and column
type lineIndex struct {
	content string
	starts  []int // offset of the first byte of each line
}

func newLineIndex(content string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

// position returns the 1-based line and column of offset
func (li *lineIndex) position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	idx := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	return idx + 1, offset - li.starts[idx] + 1
}

// text returns lines first..last (1-based, inclusive) without line endings
func (li *lineIndex) text(first, last int) []string {
	var out []string
	for n := first; n <= last && n <= len(li.starts); n++ {
		start := li.starts[n-1]
		end := len(li.content)
		if n < len(li.starts) {
			end = li.starts[n] - 1
		}
		out = append(out, strings.TrimRight(li.content[start:end], "\r"))
	}
	return out
}

// extractIcons finds all icon usages in template content
func extractIcons(content string) []iconRef {
	var refs []iconRef

	for _, m := range helperPattern.FindAllStringSubmatchIndex(content, -1) {
		args := content[m[2]:m[3]]
		name, expr, ok := resolveHelperArgs(args)
		if !ok {
			continue
		}
		refs = append(refs, iconRef{
			name:    name,
			expr:    expr,
			offset:  m[0],
			end:     m[1],
			message: IssueDynamicIcon,
		})
	}

	for _, m := range componentPattern.FindAllStringSubmatchIndex(content, -1) {
		ref := iconRef{offset: m[0], end: m[1], message: IssueDynamicIcon}
		switch {
		case m[2] >= 0:
			ref.name = content[m[2]:m[3]]
		case m[4] >= 0:
			ref.name = content[m[4]:m[5]]
		default:
			ref.expr = strings.TrimSpace(content[m[6]:m[7]])
			if lit, ok := unquote(ref.expr); ok {
				ref.name, ref.expr = lit, ""
			}
		}
		if ref.name == "" && ref.expr == "" {
			continue
		}
		refs = append(refs, ref)
	}

	for _, m := range classAttrPattern.FindAllStringSubmatchIndex(content, -1) {
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[4], m[5]
		}
		refs = append(refs, extractFromClassValue(content[start:end], start)...)
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].offset < refs[j].offset })
	return refs
}

// extractFromClassValue finds fa-<name> tokens in a class attribute value.
// offset is the position of value within its file.
func extractFromClassValue(value string, offset int) []iconRef {
	tokens := strings.Fields(value)
	if !contains(tokens, "fa") {
		return nil
	}

	var refs []iconRef
	searchFrom := 0
	for _, token := range tokens {
		idx := strings.Index(value[searchFrom:], token) + searchFrom
		searchFrom = idx + len(token)

		if !strings.HasPrefix(token, "fa-") {
			continue
		}
		start := offset + idx

		if strings.Contains(token, "{{") {
			refs = append(refs, iconRef{expr: token, offset: start, end: start + len(token), message: IssueDynamicClass})
			continue
		}

		name := strings.TrimPrefix(token, "fa-")
		if modifierClasses[name] {
			continue
		}
		refs = append(refs, iconRef{name: name, offset: start, end: start + len(token)})
	}
	return refs
}

// resolveHelperArgs determines the icon named by fa-icon helper arguments.
// It returns the literal name, or the unresolved expression when dynamic.
// ok is false when the arguments name no icon at all.
func resolveHelperArgs(args string) (name, expr string, ok bool) {
	tokens := splitHelperArgs(args)
	if len(tokens) == 0 {
		return "", "", false
	}

	// Positional argument: {{fa-icon "camera"}}
	if first := tokens[0]; !strings.Contains(first, "=") {
		if lit, isLit := unquote(first); isLit {
			return lit, "", true
		}
		return "", first, true
	}

	// Hash argument: {{fa-icon icon="camera"}}
	for _, token := range tokens {
		value, found := strings.CutPrefix(token, "icon=")
		if !found {
			continue
		}
		if lit, isLit := unquote(value); isLit {
			return lit, "", true
		}
		return "", value, true
	}

	return "", "", false
}

// splitHelperArgs splits helper arguments on whitespace, keeping quoted
// strings and parenthesised sub-expressions together
func splitHelperArgs(s string) []string {
	var parts []string
	var current strings.Builder
	var quote rune
	parenDepth := 0

	for _, r := range s {
		switch {
		case quote != 0:
			current.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			current.WriteRune(r)
		case r == '(':
			parenDepth++
			current.WriteRune(r)
		case r == ')':
			parenDepth--
			current.WriteRune(r)
		case (unicode.IsSpace(r) || r == '~') && parenDepth == 0:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// unquote strips matching single or double quotes
func unquote(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// contains checks if a string slice contains a value
func contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}
