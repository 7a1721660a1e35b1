// Package shellparse provides the textual normalization shared by the AST
// path and the regex-fallback path: quote-concatenation for the no-AST case,
// directory-prefix stripping, and iterative wrapper peeling. The teacher's
// rules.go hand-rolls an equivalent of all three inside extractBaseCommand;
// this package generalizes that into a standalone, table-driven normalizer so
// both shellanalyzer's AST walk and its parse-failure fallback can share it.
package shellparse

import (
	"strings"
)

// MaxWrapperDepth caps iterative wrapper peeling. A command nesting wrappers
// deeper than this is treated as reaching the resource limit (spec.md §7),
// handled by the caller.
const MaxWrapperDepth = 8

// defaultWrappers is the built-in wrapper set from spec.md §4.3. Config may
// extend it via [bash] wrappers.
var defaultWrappers = map[string]bool{
	"sudo":    true,
	"timeout": true,
	"env":     true,
	"xargs":   true,
	"nohup":   true,
	"nice":    true,
	"ionice":  true,
	"strace":  true,
	"time":    true,
	"setsid":  true,
	"stdbuf":  true,
	"chronic": true,
	"doas":    true,
}

// Wrappers is the active wrapper set, built by the caller from config and
// passed into Unwrap. NewWrapperSet copies the built-ins plus any extras.
func NewWrapperSet(extra []string) map[string]bool {
	set := make(map[string]bool, len(defaultWrappers)+len(extra))
	for k := range defaultWrappers {
		set[k] = true
	}
	for _, w := range extra {
		set[strings.TrimSpace(w)] = true
	}
	return set
}

// SplitFields is a minimal whitespace tokenizer used only by the
// regex-fallback path (when shell parsing has already failed, so there is no
// AST to lean on). It honors single and double quotes well enough to keep a
// quoted argument intact, mirroring the teacher's splitCompoundCommand state
// machine, but does not attempt full shell quoting/escaping semantics.
func SplitFields(s string) []string {
	var fields []string
	var cur strings.Builder
	var quote rune
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ' ' || r == '\t':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}

// EnvAssignment reports whether field looks like a leading NAME=VALUE
// environment assignment (as in `FOO=bar cmd` or an `env` wrapper argument),
// and returns the variable name.
func EnvAssignment(field string) (name string, ok bool) {
	eq := strings.IndexByte(field, '=')
	if eq <= 0 {
		return "", false
	}
	name = field[:eq]
	for i, r := range name {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9')) {
			return "", false
		}
	}
	return name, true
}

// StripDirPrefix reduces a command head like "/usr/bin/bash" or "./bash" to
// its base name, the same normalization the teacher's extractBaseCommand
// applies via filepath.Base before dispatch.
func StripDirPrefix(head string) string {
	if i := strings.LastIndexByte(head, '/'); i >= 0 {
		return head[i+1:]
	}
	return head
}

// Unwrap peels wrapper commands (sudo, env, timeout, xargs, ...) off the
// front of a field list, returning the normalized head, the remaining
// arguments, any NAME=VALUE environment assignments contributed by peeled
// `env` invocations, and whether the depth limit was exhausted before a
// non-wrapper head was reached.
//
// Unknown flags on a wrapper are assumed niladic (they consume no following
// argument) — conservative, since under-consuming a flag's argument only
// risks treating it as the next wrapper/command rather than silently
// swallowing a real command word.
func Unwrap(fields []string, wrappers map[string]bool) (head string, args []string, envAssignments []string, depthExceeded bool) {
	for depth := 0; depth < MaxWrapperDepth; depth++ {
		if len(fields) == 0 {
			return "", nil, envAssignments, false
		}
		if name, ok := EnvAssignment(fields[0]); ok {
			envAssignments = append(envAssignments, name)
			fields = fields[1:]
			continue
		}

		head = StripDirPrefix(fields[0])
		args = fields[1:]

		if !wrappers[head] {
			return head, args, envAssignments, false
		}

		peeled := peelWrapperArgs(head, args)
		if len(peeled) == 0 {
			// The wrapper's own flags/arguments consumed everything — there is
			// no wrapped command to peel further. Halt on the wrapper itself
			// rather than looping into the empty-fields case below, which
			// would otherwise discard the wrapper's head entirely.
			return head, args, envAssignments, false
		}
		fields = peeled
	}
	return head, args, envAssignments, true
}

// peelWrapperArgs drops a wrapper's own flags/arguments, returning the
// remainder of the field list starting at what should be the wrapped
// command. env additionally surfaces any NAME=VALUE prefixes it carries,
// which the caller folds into envAssignments on the next loop iteration
// since they appear as plain fields ahead of the wrapped command.
func peelWrapperArgs(wrapper string, args []string) []string {
	i := 0
	for i < len(args) {
		f := args[i]
		if !strings.HasPrefix(f, "-") {
			break
		}
		switch wrapper {
		case "timeout":
			// timeout [-s SIG] [-k DURATION] DURATION cmd...
			if f == "-s" || f == "-k" || f == "--signal" || f == "--kill-after" {
				i += 2
				continue
			}
		case "nice":
			if f == "-n" {
				i += 2
				continue
			}
		case "ionice":
			if f == "-c" || f == "-n" || f == "-p" {
				i += 2
				continue
			}
		case "stdbuf":
			if f == "-i" || f == "-o" || f == "-e" {
				i += 2
				continue
			}
		}
		i++
	}
	if wrapper == "timeout" && i < len(args) {
		// the positional DURATION argument that always follows timeout's flags
		i++
	}
	return args[i:]
}
