// Package shellanalyzer is the shell-command arm of the decision engine. It
// parses a command with a real Bash grammar (mvdan.cc/sh/v3/syntax — the
// library the retrieved corpus reaches for in this role, replacing the
// teacher's hand-rolled splitCompoundCommand/extractBaseCommand pair), runs
// structural checks over the resulting tree, normalizes each simple command's
// head through shellparse, and matches the normalized text against the
// dangerous, exfiltration, and shell-scoped secret-path rules. A parse
// failure degrades to a regex-only pass over the raw text.
package shellanalyzer

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/victorarias/guardrails/internal/rule"
	"github.com/victorarias/guardrails/internal/shellparse"
)

// MaxCommandBytes is the resource cap from spec.md §7: text longer than this
// is treated as a resource-limit denial without attempting to parse it.
const MaxCommandBytes = 100 * 1024

// MaxPipelineDepth caps how deeply pipelines, lists and compound commands may
// nest while they are walked, the other half of the same resource-limit guard.
const MaxPipelineDepth = 32

// Hit is one rule match, either a regex-corpus rule or a structural finding
// with a synthetic ID not present in the corpus. Unconditional hits (the
// dynamic-command-head finding) are never filtered by safety level.
type Hit struct {
	RuleID        string
	Severity      rule.Severity
	Message       string
	Unconditional bool
}

// Result is everything the engine needs out of one command analysis.
type Result struct {
	Hits          []Hit
	ParseFailed   bool
	ResourceLimit bool
	// NormalizedHeads lists each simple command's normalized (wrapper-peeled,
	// dir-stripped) head.
	NormalizedHeads []string
}

// Analyzer holds the wrapper set and structural-check toggles built from
// config; it is stateless between calls, matching spec.md §5's "no internal
// concurrency, no ambient state".
type Analyzer struct {
	Wrappers              map[string]bool
	BlockVariableCommands bool
	BlockPipeToShell      bool
}

// New builds an Analyzer from the configured wrapper set (built-ins plus any
// [bash] wrappers additions already folded in by shellparse.NewWrapperSet) and the two
// structural-check toggles from [bash] block_variable_commands/
// block_pipe_to_shell. Both default true at the guardconfig layer; turning
// one off here is an explicit admin opt-out, not something a safety level
// can do — dynamic-command stays Critical/Unconditional whenever it runs at
// all (spec.md §4.3), the toggle only controls whether it runs.
func New(wrappers map[string]bool, blockVariableCommands, blockPipeToShell bool) *Analyzer {
	return &Analyzer{Wrappers: wrappers, BlockVariableCommands: blockVariableCommands, BlockPipeToShell: blockPipeToShell}
}

// unwrapResult is one segment's normalized form: wrapper-peeled head, the
// remaining arguments, the environment names contributed by peeling an env
// wrapper, and the resulting normalized text.
type unwrapResult struct {
	head       string
	args       []string
	envNames   []string
	normalized string
}

// Analyze runs all four phases described in SPEC_FULL.md §4.3 against cmd,
// consulting dangerous+exfiltration+secret-path rules active at level.
func (a *Analyzer) Analyze(cmd string, corpus *rule.Corpus, level rule.Severity) Result {
	if len(cmd) > MaxCommandBytes {
		return Result{ResourceLimit: true}
	}

	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(cmd), "")
	if err != nil || file == nil {
		return a.regexOnlyFallback(cmd, corpus, level)
	}

	var res Result
	segments, depthExceeded := collectSegments(file)
	if depthExceeded {
		return Result{ResourceLimit: true}
	}

	activeDangerous := rule.Active(corpus.Dangerous, level)
	if !a.BlockPipeToShell {
		kept := make([]rule.Rule, 0, len(activeDangerous))
		for _, r := range activeDangerous {
			if r.ID != "pipe-to-shell" {
				kept = append(kept, r)
			}
		}
		activeDangerous = kept
	}
	activeExfil := rule.Active(corpus.Exfiltration, level)
	activeSecret := shellScopedRules(rule.Active(corpus.Secret, level))

	unwraps := make([]unwrapResult, len(segments))
	for i, seg := range segments {
		head, args, envNames, depthExceeded := shellparse.Unwrap(seg.Words, a.Wrappers)
		if depthExceeded {
			return Result{ResourceLimit: true}
		}
		unwraps[i] = unwrapResult{
			head:       head,
			args:       args,
			envNames:   envNames,
			normalized: strings.Join(append([]string{head}, args...), " "),
		}
		res.NormalizedHeads = append(res.NormalizedHeads, head)
	}

	for i, seg := range segments {
		envAssigns := append(append([]string{}, seg.envAssigns...), unwraps[i].envNames...)
		res.Hits = append(res.Hits, structuralHits(seg, unwraps[i].head, envAssigns, a.BlockVariableCommands, a.BlockPipeToShell)...)
		res.Hits = append(res.Hits, matchText(unwraps[i].normalized, activeDangerous)...)
		res.Hits = append(res.Hits, matchText(unwraps[i].normalized, activeExfil)...)
		// Secret-path patterns are anchored like a path (^|/)...$, meaningful
		// against a single token, not the whole "head args..." line — match
		// each word on its own the way pathanalyzer matches a path and its
		// base name.
		res.Hits = append(res.Hits, matchWords(append([]string{unwraps[i].head}, unwraps[i].args...), activeSecret)...)
	}

	// Per-segment text never carries the pipe character the dangerous/
	// exfiltration corpus relies on for patterns like "cat .env | nc ..." —
	// rebuild the joined text for each contiguous pipe chain so those rules
	// can still match.
	for _, group := range pipelineGroups(segments) {
		if len(group) < 2 {
			continue
		}
		parts := make([]string, len(group))
		for j, idx := range group {
			parts[j] = unwraps[idx].normalized
		}
		joined := strings.Join(parts, " | ")
		res.Hits = append(res.Hits, matchText(joined, activeDangerous)...)
		res.Hits = append(res.Hits, matchText(joined, activeExfil)...)
	}

	return res
}

// shellScopedRules drops rules that only apply to path tool calls, leaving
// the ScopeShell/ScopeBoth rules that may also match shell command text
// (spec.md §4.1: secret-path rules "also match against the normalized
// command text, to catch things like cat .env").
func shellScopedRules(rules []rule.Rule) []rule.Rule {
	out := make([]rule.Rule, 0, len(rules))
	for _, r := range rules {
		if r.ToolScope == rule.ScopePath {
			continue
		}
		out = append(out, r)
	}
	return out
}

// regexOnlyFallback runs when the shell grammar rejects the input outright.
// Only RegexSafe rules are consulted (spec.md §4.3/§7's fail-closed posture);
// the caller treats a failure with zero hits as deny/parse-failed.
func (a *Analyzer) regexOnlyFallback(cmd string, corpus *rule.Corpus, level rule.Severity) Result {
	res := Result{ParseFailed: true}

	fields := shellparse.SplitFields(cmd)
	head, args, _, depthExceeded := shellparse.Unwrap(fields, a.Wrappers)
	if depthExceeded {
		return Result{ResourceLimit: true}
	}
	normalized := cmd
	if head != "" {
		normalized = strings.Join(append([]string{head}, args...), " ")
	}

	regexSafe := func(rules []rule.Rule) []rule.Rule {
		out := make([]rule.Rule, 0, len(rules))
		for _, r := range rules {
			if r.RegexSafe {
				out = append(out, r)
			}
		}
		return out
	}

	activeSecret := regexSafe(shellScopedRules(rule.Active(corpus.Secret, level)))

	res.Hits = append(res.Hits, matchText(normalized, regexSafe(rule.Active(corpus.Dangerous, level)))...)
	res.Hits = append(res.Hits, matchText(normalized, regexSafe(rule.Active(corpus.Exfiltration, level)))...)
	res.Hits = append(res.Hits, matchText(cmd, regexSafe(rule.Active(corpus.Dangerous, level)))...)
	res.Hits = append(res.Hits, matchText(cmd, regexSafe(rule.Active(corpus.Exfiltration, level)))...)
	// Secret-path patterns anchor like a path, so match per-word rather than
	// against the whole joined/raw text (see matchWords in Analyze).
	res.Hits = append(res.Hits, matchWords(append([]string{head}, args...), activeSecret)...)
	res.Hits = append(res.Hits, matchWords(fields, activeSecret)...)
	return res
}

func matchText(text string, rules []rule.Rule) []Hit {
	var hits []Hit
	for _, r := range rules {
		if r.MatchesText(text) {
			hits = append(hits, Hit{RuleID: r.ID, Severity: r.Severity, Message: r.Message})
		}
	}
	return hits
}

// matchWords runs rules against each word independently, short-circuiting a
// rule after its first match so one command never reports the same
// secret-path rule twice across several words.
func matchWords(words []string, rules []rule.Rule) []Hit {
	var hits []Hit
	for _, r := range rules {
		for _, w := range words {
			if w == "" {
				continue
			}
			if r.MatchesText(w) {
				hits = append(hits, Hit{RuleID: r.ID, Severity: r.Severity, Message: r.Message})
				break
			}
		}
	}
	return hits
}

// Worst returns the most severe hit (Critical before High before Strict, ties
// going to the earlier hit), treating Unconditional hits as
// always winning regardless of their nominal severity ordering against
// configured level-filtered hits — dynamic-command is categorically
// disallowed per spec.md and cannot be outranked.
func Worst(hits []Hit) (Hit, bool) {
	if len(hits) == 0 {
		return Hit{}, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h.Unconditional && !best.Unconditional {
			best = h
			continue
		}
		if best.Unconditional {
			continue
		}
		if h.Severity < best.Severity {
			best = h
		}
	}
	return best, true
}
