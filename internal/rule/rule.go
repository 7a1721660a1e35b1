// Package rule holds the static, compiled pattern corpus: dangerous commands,
// secret-bearing paths, exfiltration signatures. Rules are immutable after
// init and carry no state between requests.
package rule

import (
	"fmt"
	"regexp"
)

// Category classifies what a rule is protecting against.
type Category string

const (
	CategoryDangerous    Category = "dangerous"
	CategorySecret       Category = "secret"
	CategoryExfiltration Category = "exfiltration"
)

// Severity is totally ordered: Critical < High < Strict, in the sense that a
// higher configured safety level activates a strictly larger rule set.
type Severity int

const (
	Critical Severity = iota
	High
	Strict
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "critical"
	case High:
		return "high"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a config/CLI string into a Severity. Unknown values
// fall back to High, the documented default safety level.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "critical":
		return Critical, true
	case "high":
		return High, true
	case "strict":
		return Strict, true
	default:
		return High, false
	}
}

// ToolScope narrows which tool kinds a rule applies to. Dangerous and
// exfiltration rules default to shell; secret rules default to path-style
// (read/edit/write) but several also match shell command text directly
// (e.g. "cat .env").
type ToolScope int

const (
	ScopeShell ToolScope = iota
	ScopePath
	ScopeBoth
)

// Rule is an immutable (id, severity, regex, message) quadruple. Matching
// against the normalized command or a path produces a candidate deny.
type Rule struct {
	ID        string
	Category  Category
	Severity  Severity
	Pattern   *regexp.Regexp
	Message   string
	ToolScope ToolScope
	// RegexSafe marks a rule whose pattern is not sensitive to structural
	// position (i.e. a substring match is meaningful even without a parsed
	// AST) — these are the only rules consulted when shell parsing fails.
	RegexSafe bool
}

// MatchesText reports whether the rule's pattern finds a match in text.
func (r Rule) MatchesText(text string) bool {
	return r.Pattern.MatchString(text)
}

// entry is the declarative, pre-compile form used to build each table.
type entry struct {
	id        string
	category  Category
	severity  Severity
	pattern   string
	message   string
	toolScope ToolScope
	regexSafe bool
}

func compile(entries []entry) []Rule {
	rules := make([]Rule, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.id] {
			panic(fmt.Sprintf("rule: duplicate rule id %q", e.id))
		}
		seen[e.id] = true
		rules = append(rules, Rule{
			ID:        e.id,
			Category:  e.category,
			Severity:  e.severity,
			Pattern:   regexp.MustCompile(e.pattern),
			Message:   e.message,
			ToolScope: e.toolScope,
			RegexSafe: e.regexSafe,
		})
	}
	return rules
}

// Corpus is the full set of active rule tables, optionally extended at
// startup with user-supplied protected-path patterns (§6 config).
type Corpus struct {
	Dangerous    []Rule
	Secret       []Rule
	Exfiltration []Rule
	ByID         map[string]Rule
}

// NewCorpus assembles the built-in tables plus any config-supplied
// protected-path patterns, indexes all rules by ID, and panics on a
// duplicate ID — a corrupt static table should fail loud at startup rather
// than silently shadow a rule.
func NewCorpus(extraProtectedPatterns []string) *Corpus {
	c := &Corpus{
		Dangerous:    append([]Rule(nil), dangerousRules...),
		Secret:       append([]Rule(nil), secretPathRules...),
		Exfiltration: append([]Rule(nil), exfiltrationRules...),
	}
	for i, pat := range extraProtectedPatterns {
		c.Secret = append(c.Secret, Rule{
			ID:        fmt.Sprintf("custom-protected-path-%d", i+1),
			Category:  CategorySecret,
			Severity:  Strict,
			Pattern:   regexp.MustCompile(pat),
			Message:   "matches user-configured protected path pattern",
			ToolScope: ScopeBoth,
			RegexSafe: true,
		})
	}

	c.ByID = make(map[string]Rule, len(c.Dangerous)+len(c.Secret)+len(c.Exfiltration))
	for _, group := range [][]Rule{c.Dangerous, c.Secret, c.Exfiltration} {
		for _, r := range group {
			if _, dup := c.ByID[r.ID]; dup {
				panic(fmt.Sprintf("rule: duplicate rule id %q across tables", r.ID))
			}
			c.ByID[r.ID] = r
		}
	}
	return c
}

// Active returns the rules in rules whose severity is enabled at the given
// safety level (severity <= level).
func Active(rules []Rule, level Severity) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Severity <= level {
			out = append(out, r)
		}
	}
	return out
}

// Worst picks the most severe rule among hits (Critical before High before
// Strict), breaking ties by corpus (declaration) order — the first rule of
// the most severe class encountered.
func Worst(hits []Rule) (Rule, bool) {
	if len(hits) == 0 {
		return Rule{}, false
	}
	best := hits[0]
	for _, r := range hits[1:] {
		if r.Severity < best.Severity {
			best = r
		}
	}
	return best, true
}
