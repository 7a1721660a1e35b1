package shellanalyzer

import (
	"bytes"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/victorarias/guardrails/internal/rule"
)

// segment is one simple command pulled out of the parsed tree: its argument
// words rendered back to text (quote-concatenated, the way the shell grammar
// already resolves them, so shellparse.Unwrap sees the same text a hand-
// rolled tokenizer would have had to reconstruct), plus enough structure to
// run the dynamic-command-head and env-hijack checks before normalization.
type segment struct {
	Words       []string
	dynamicHead bool
	envAssigns  []string
	isPipeRHS   bool
}

var printer = syntax.NewPrinter()

// collectSegments walks a parsed file's statement tree and flattens it into
// one segment per simple command, tracking pipeline/list nesting depth so a
// pathologically long chain trips the resource limit instead of unbounded
// recursion.
func collectSegments(file *syntax.File) (segs []segment, depthExceeded bool) {
	var walk func(stmts []*syntax.Stmt, depth int, pipeRHS bool) bool
	walk = func(stmts []*syntax.Stmt, depth int, pipeRHS bool) bool {
		if depth > MaxPipelineDepth {
			return true
		}
		for _, stmt := range stmts {
			if walkStmt(stmt, depth, pipeRHS, &segs, walk) {
				return true
			}
		}
		return false
	}
	if walk(file.Stmts, 0, false) {
		return nil, true
	}
	return segs, false
}

func walkStmt(stmt *syntax.Stmt, depth int, pipeRHS bool, segs *[]segment, walk func([]*syntax.Stmt, int, bool) bool) bool {
	if stmt == nil || depth > MaxPipelineDepth {
		return depth > MaxPipelineDepth
	}
	switch cmd := stmt.Cmd.(type) {
	case *syntax.CallExpr:
		*segs = append(*segs, callExprToSegment(cmd, pipeRHS))
	case *syntax.BinaryCmd:
		isPipe := cmd.Op == syntax.Pipe || cmd.Op == syntax.PipeAll
		if walkStmt(cmd.X, depth+1, false, segs, walk) {
			return true
		}
		if walkStmt(cmd.Y, depth+1, isPipe, segs, walk) {
			return true
		}
	case *syntax.Subshell:
		if walk(cmd.Stmts, depth+1, false) {
			return true
		}
	case *syntax.Block:
		if walk(cmd.Stmts, depth+1, false) {
			return true
		}
	case *syntax.IfClause:
		for c := cmd; c != nil; c = c.Else {
			if walk(c.Cond, depth+1, false) || walk(c.Then, depth+1, false) {
				return true
			}
		}
	case *syntax.WhileClause:
		if walk(cmd.Cond, depth+1, false) || walk(cmd.Do, depth+1, false) {
			return true
		}
	case *syntax.ForClause:
		if walk(cmd.Do, depth+1, false) {
			return true
		}
	case *syntax.CaseClause:
		for _, item := range cmd.Items {
			if walk(item.Stmts, depth+1, false) {
				return true
			}
		}
	}
	return false
}

func callExprToSegment(ce *syntax.CallExpr, pipeRHS bool) segment {
	seg := segment{isPipeRHS: pipeRHS}
	for _, assign := range ce.Assigns {
		if assign.Name != nil {
			seg.envAssigns = append(seg.envAssigns, assign.Name.Value)
		}
	}
	for i, w := range ce.Args {
		text, dynamic := wordToString(w)
		seg.Words = append(seg.Words, text)
		if i == 0 && dynamic {
			seg.dynamicHead = true
		}
	}
	return seg
}

// wordToString resolves a *syntax.Word to its quote-concatenated literal
// text — "ba"+'sh' becomes "bash", 'echo hi' becomes "echo hi" — and reports
// whether any part of the word is not a plain literal, i.e. its value
// depends on a parameter expansion, command substitution, or arithmetic
// expansion and can't be known without executing the shell.
func wordToString(w *syntax.Word) (string, bool) {
	var buf bytes.Buffer
	dynamic := false
	for _, part := range w.Parts {
		writeWordPart(&buf, part, &dynamic)
	}
	return buf.String(), dynamic
}

func writeWordPart(buf *bytes.Buffer, part syntax.WordPart, dynamic *bool) {
	switch p := part.(type) {
	case *syntax.Lit:
		buf.WriteString(p.Value)
	case *syntax.SglQuoted:
		buf.WriteString(p.Value)
	case *syntax.DblQuoted:
		for _, inner := range p.Parts {
			writeWordPart(buf, inner, dynamic)
		}
	case *syntax.ParamExp, *syntax.CmdSubst, *syntax.ArithmExp, *syntax.ProcSubst:
		*dynamic = true
		if err := printer.Print(buf, part); err != nil {
			buf.WriteString("$?")
		}
	default:
		if err := printer.Print(buf, part); err != nil {
			*dynamic = true
		}
	}
}

var hijackEnvNames = map[string]bool{
	"LD_PRELOAD":            true,
	"LD_LIBRARY_PATH":       true,
	"DYLD_INSERT_LIBRARIES": true,
	"DYLD_LIBRARY_PATH":     true,
}

var shellInterpreters = map[string]bool{
	"sh": true, "bash": true, "zsh": true, "dash": true,
	"python": true, "python3": true, "perl": true, "node": true, "ruby": true,
}

// structuralHits runs the three structural checks against one segment:
// dynamic command head, pipe into a shell interpreter, and environment
// hijack via LD_PRELOAD/DYLD_*/GUARDRAILS_* prefixes. These are independent
// of the regex corpus — they flag a shape, not a matched pattern. The first
// two checks are individually disable-able via config (spec.md §6
// block_variable_commands/block_pipe_to_shell); env-hijack has no such
// toggle.
//
// unwrappedHead is the segment's head after shellparse.Unwrap has peeled any
// wrapper commands (sudo, xargs, env, ...) off the front, so `| sudo sh` and
// `| xargs bash` are recognized the same as a bare `| sh` — spec.md §4.1
// calls out exactly these wrapped forms. envAssigns is the union of the
// segment's own AST assignments and any NAME=VALUE prefixes an env wrapper
// contributed during unwrapping.
func structuralHits(seg segment, unwrappedHead string, envAssigns []string, blockVariableCommands, blockPipeToShell bool) []Hit {
	var hits []Hit

	if seg.dynamicHead && blockVariableCommands {
		hits = append(hits, Hit{
			RuleID:        "dynamic-command",
			Severity:      rule.Critical,
			Message:       "command head is computed at runtime (parameter/command substitution) and cannot be statically verified",
			Unconditional: true,
		})
	}

	if seg.isPipeRHS && blockPipeToShell && shellInterpreters[unwrappedHead] {
		hits = append(hits, Hit{
			RuleID:   "pipe-to-shell",
			Severity: rule.High,
			Message:  "pipeline output is fed directly into a shell or scripting interpreter",
		})
	}

	for _, name := range envAssigns {
		if hijackEnvNames[name] || strings.HasPrefix(name, "DYLD_") || strings.HasPrefix(name, "GUARDRAILS_") {
			hits = append(hits, Hit{
				RuleID:   "env-hijack",
				Severity: rule.High,
				Message:  "environment assignment targets a dynamic-loader variable or this tool's own control variables",
			})
		}
	}

	return hits
}

// pipelineGroups returns index groups of segs that form one contiguous pipe
// chain (a | b | c groups as one run of three), so the caller can rebuild a
// "a | b | c" text for regex rules that require a literal pipe. A segment
// starts a new group unless it is flagged as a pipe's right-hand side —
// && and || also produce adjacent segments but never set isPipeRHS, so they
// naturally fall into separate groups.
func pipelineGroups(segs []segment) [][]int {
	var groups [][]int
	for i, seg := range segs {
		if seg.isPipeRHS && len(groups) > 0 {
			last := len(groups) - 1
			groups[last] = append(groups[last], i)
			continue
		}
		groups = append(groups, []int{i})
	}
	return groups
}
