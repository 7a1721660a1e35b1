// Package allowlist loads user-defined regex exceptions from
// ~/.claude/guardrails/allow.toml. An allowlist entry can only short-circuit
// a decision to allow — it is never consulted to deny, per spec.md §4.2.
package allowlist

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/victorarias/guardrails/internal/rule"
)

// Entry is one compiled allowlist rule.
type Entry struct {
	Pattern *regexp.Regexp
	Reason  string
	Tool    rule.ToolScope
}

// Allowlist is the full set loaded at startup, held in file order so the
// first match wins, matching the rule corpus's own tie-break convention.
type Allowlist struct {
	entries []Entry
}

// New builds an Allowlist directly from entries, bypassing file loading —
// used by tests and the selftest subcommand to exercise known scenarios
// without writing a TOML fixture to disk.
func New(entries []Entry) *Allowlist {
	return &Allowlist{entries: entries}
}

// fileEntry is the raw TOML shape: [[entries]] with pattern/reason/tool.
type fileEntry struct {
	Pattern string `toml:"pattern"`
	Reason  string `toml:"reason"`
	Tool    string `toml:"tool"`
}

type fileDoc struct {
	Entries []fileEntry `toml:"entries"`
}

// toolScopeFromString maps the allow.toml `tool` field to a rule.ToolScope.
// spec.md §6 documents the field as "one of Bash, Read, Edit, Write" —
// matching the host's own tool_name values, not an internal shell/path
// split — so an entry scoped to Bash never also allow-matches a Read/Edit/
// Write path lookup, and vice versa. Anything else (including an empty
// field) falls back to ScopeBoth.
func toolScopeFromString(s string) rule.ToolScope {
	switch s {
	case "Bash":
		return rule.ScopeShell
	case "Read", "Edit", "Write", "NotebookEdit":
		return rule.ScopePath
	default:
		return rule.ScopeBoth
	}
}

// Load reads path if it exists; a missing file is not an error (an empty
// allowlist is the default). A bad regex entry is logged via logger and
// skipped — one corrupt entry never aborts the whole file (spec.md §7).
func Load(path string, logger zerolog.Logger) (*Allowlist, error) {
	if path == "" {
		return &Allowlist{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Allowlist{}, nil
		}
		return nil, fmt.Errorf("allowlist: read %s: %w", path, err)
	}

	var doc fileDoc
	if _, err := toml.Decode(string(data), &doc); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("allowlist file is not valid TOML, ignoring")
		return &Allowlist{}, nil
	}

	al := &Allowlist{}
	for i, fe := range doc.Entries {
		re, err := regexp.Compile(fe.Pattern)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Str("pattern", fe.Pattern).Msg("skipping invalid allowlist pattern")
			continue
		}
		al.entries = append(al.entries, Entry{
			Pattern: re,
			Reason:  fe.Reason,
			Tool:    toolScopeFromString(fe.Tool),
		})
	}
	return al, nil
}

// Match does a substring regex-find against text for entries whose tool
// scope matches (or is ScopeBoth), returning the first match in file order.
func (al *Allowlist) Match(scope rule.ToolScope, text string) (Entry, bool) {
	if al == nil {
		return Entry{}, false
	}
	for _, e := range al.entries {
		if e.Tool != rule.ScopeBoth && e.Tool != scope {
			continue
		}
		if e.Pattern.MatchString(text) {
			return e, true
		}
	}
	return Entry{}, false
}
