package faprune

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// iconSelectorPattern matches a single glyph selector such as ".fa-car:before".
// Both the CSS2 (":before") and CSS3 ("::before") spellings are accepted.
var iconSelectorPattern = regexp.MustCompile(`^\.fa-([A-Za-z0-9_-]+)::?before$`)

// itemKind classifies a top-level stylesheet item
type itemKind int

const (
	itemOther  itemKind = iota // comments, trailing whitespace, stray tokens
	itemRule                   // selector { declarations }
	itemAtRule                 // @media {...}, @font-face {...}, @import ...;
)

// sheetItem is one top-level unit of a stylesheet, kept as raw text
type sheetItem struct {
	kind     itemKind
	text     string // exact source text, including leading whitespace
	selector string // trimmed selector prelude (itemRule only)
}

// PruneStats describes what a prune pass did
type PruneStats struct {
	Rules        int      // Top-level style rules seen
	RulesRemoved int      // Style rules dropped
	RemovedIcons []string // Icon names whose rules were dropped (sorted, unique)
	BytesIn      int
	BytesOut     int
	Skipped      bool // True when the usage set carried PossiblyAll
}

// Pruner removes unused icon glyph rules from stylesheets
type Pruner struct {
	log *zap.Logger
}

// NewPruner creates a pruner. A nil logger disables logging.
func NewPruner(log *zap.Logger) *Pruner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pruner{log: log.Named("pruner")}
}

// Prune returns content without the ".fa-<name>:before" rules whose name is
// not in used. Every other byte of the input is preserved. A nil set is
// treated as empty.
func Prune(content string, used *UsedIconSet) string {
	out, _ := NewPruner(nil).Prune(content, used)
	return out
}

// Prune is the logging, statistics-reporting form of the package level Prune.
func (p *Pruner) Prune(content string, used *UsedIconSet) (string, PruneStats) {
	stats := PruneStats{BytesIn: len(content)}

	if used.AllPossible() {
		p.log.Debug("Usage set contains sentinel, skipping prune", zap.String("sentinel", PossiblyAll))
		stats.Skipped = true
		stats.BytesOut = len(content)
		return content, stats
	}

	removed := make(map[string]struct{})
	var out strings.Builder
	out.Grow(len(content))

	for _, item := range splitStylesheet(content) {
		if item.kind != itemRule {
			out.WriteString(item.text)
			continue
		}
		stats.Rules++

		names, isIcon := iconNames(item.selector)
		if !isIcon || anyUsed(names, used) {
			out.WriteString(item.text)
			continue
		}

		stats.RulesRemoved++
		for _, name := range names {
			removed[name] = struct{}{}
		}
	}

	for name := range removed {
		stats.RemovedIcons = append(stats.RemovedIcons, name)
	}
	sort.Strings(stats.RemovedIcons)

	result := out.String()
	stats.BytesOut = len(result)

	p.log.Debug("Pruned stylesheet",
		zap.Int("rules", stats.Rules),
		zap.Int("removed", stats.RulesRemoved),
		zap.Int("bytes_in", stats.BytesIn),
		zap.Int("bytes_out", stats.BytesOut))

	return result, stats
}

// anyUsed reports whether at least one of names is in used.
// Glyph names are matched as written in the selector.
func anyUsed(names []string, used *UsedIconSet) bool {
	for _, name := range names {
		if used.hasExact(name) {
			return true
		}
	}
	return false
}

// iconNames extracts the glyph names from a selector list.
// It returns false unless every selector in the list is a glyph selector.
func iconNames(selector string) ([]string, bool) {
	parts := strings.Split(selector, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		m := iconSelectorPattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, false
		}
		names = append(names, m[1])
	}
	return names, len(names) > 0
}

// splitStylesheet cuts a stylesheet into its top-level items.
// Concatenating the text of all items yields the input unchanged.
func splitStylesheet(content string) []sheetItem {
	lexer := css.NewLexer(parse.NewInputString(content))

	var (
		items   []sheetItem
		buf     strings.Builder
		kind    itemKind
		started bool
		prelude strings.Builder // selector text without comments
		depth   int
		sel     string
	)

	emit := func(k itemKind) {
		items = append(items, sheetItem{kind: k, text: buf.String(), selector: sel})
		buf.Reset()
		prelude.Reset()
		started = false
		depth = 0
		sel = ""
	}

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}

		if !started {
			switch tt {
			case css.WhitespaceToken, css.CDOToken, css.CDCToken:
				buf.Write(data)
				continue
			case css.CommentToken:
				buf.Write(data)
				emit(itemOther)
				continue
			case css.AtKeywordToken:
				kind = itemAtRule
			default:
				kind = itemRule
			}
			started = true
		}

		if depth == 0 && kind == itemRule && tt != css.CommentToken && tt != css.LeftBraceToken {
			prelude.Write(data)
		}

		switch tt {
		case css.LeftBraceToken:
			if depth == 0 && kind == itemRule {
				sel = strings.TrimSpace(prelude.String())
			}
			buf.Write(data)
			depth++
		case css.RightBraceToken:
			buf.Write(data)
			depth--
			if depth <= 0 {
				emit(kind)
			}
		case css.SemicolonToken:
			buf.Write(data)
			if depth == 0 {
				// At-statement (@import, @charset) or a stray semicolon
				emit(itemOther)
			}
		default:
			buf.Write(data)
		}
	}

	if buf.Len() > 0 {
		items = append(items, sheetItem{kind: itemOther, text: buf.String()})
	}

	return items
}
