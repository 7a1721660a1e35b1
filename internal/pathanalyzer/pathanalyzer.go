// Package pathanalyzer matches a Read/Edit/Write/NotebookEdit path argument
// against the protected-path rule table. Symlinks are never resolved: that
// would mean a stat against attacker-controlled input, and a path whose
// *name* still names a protected file (e.g. a path ending in .ssh/id_rsa) is
// caught the same way whether or not it's a symlink.
package pathanalyzer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/victorarias/guardrails/internal/rule"
)

// Analyzer holds nothing but exists for symmetry with shellanalyzer.Analyzer
// and so callers don't reach for package-level functions across the engine.
type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

// Normalize expands a leading ~ against $HOME and cleans the result. It does
// not resolve symlinks or require the path to exist.
func Normalize(path string) string {
	if path == "" {
		return path
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(path)
}

// Analyze matches the normalized path and its base name against every active
// secret-path rule, returning all hits (the engine picks the worst).
func (a *Analyzer) Analyze(path string, corpus *rule.Corpus, level rule.Severity) []rule.Rule {
	normalized := Normalize(path)
	base := filepath.Base(normalized)

	var hits []rule.Rule
	for _, r := range rule.Active(corpus.Secret, level) {
		if r.ToolScope == rule.ScopeShell {
			continue
		}
		if r.MatchesText(normalized) || r.MatchesText(base) {
			hits = append(hits, r)
		}
	}
	return hits
}
