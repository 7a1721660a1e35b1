// Package engine implements the decision orchestration: global-disable check,
// allowlist short-circuit, tool-dispatched analysis, safety-level filtering,
// audit write, decision emission. Engine holds no mutable per-request state
// between calls (spec.md §5).
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/victorarias/guardrails/internal/allowlist"
	"github.com/victorarias/guardrails/internal/audit"
	"github.com/victorarias/guardrails/internal/guardconfig"
	"github.com/victorarias/guardrails/internal/pathanalyzer"
	"github.com/victorarias/guardrails/internal/protocol"
	"github.com/victorarias/guardrails/internal/rule"
	"github.com/victorarias/guardrails/internal/shellanalyzer"
)

// decideDeadline is the soft internal deadline on Decide (spec.md §5). It is
// checked once, before shell analysis starts; an analysis already running is
// not interrupted. The host already imposes a 5s deadline on top of it.
const decideDeadline = 2 * time.Second

const inputSummaryMaxLen = 200

// Engine is constructed once per process with its dependencies resolved;
// Decide is the single request-scoped entrypoint.
type Engine struct {
	corpus     *rule.Corpus
	allow      *allowlist.Allowlist
	cfg        guardconfig.Config
	shellAn    *shellanalyzer.Analyzer
	pathAn     *pathanalyzer.Analyzer
	auditor    *audit.Writer
}

// New builds an Engine from its fully-resolved dependencies.
func New(corpus *rule.Corpus, allow *allowlist.Allowlist, cfg guardconfig.Config, shellAn *shellanalyzer.Analyzer, pathAn *pathanalyzer.Analyzer, auditor *audit.Writer) *Engine {
	return &Engine{corpus: corpus, allow: allow, cfg: cfg, shellAn: shellAn, pathAn: pathAn, auditor: auditor}
}

// Decide runs the full orchestration for one ToolCall and returns exactly one
// Decision. It never panics on a well-formed ToolCall; resource limits and
// parse failures are folded into the Decision per spec.md §7.
func (e *Engine) Decide(ctx context.Context, call protocol.ToolCall) protocol.Decision {
	ctx, cancel := context.WithTimeout(ctx, decideDeadline)
	defer cancel()

	summary := inputSummary(call)
	requestID := uuid.New().String()

	if e.cfg.Disabled {
		d := protocol.Decision{Verdict: protocol.VerdictAllow, Reason: "guardrails disabled via GUARDRAILS_DISABLED", InputSummary: summary, Disabled: true, RequestID: requestID}
		e.writeAudit(call, d)
		return d
	}

	scope := toolScopeFor(call.Kind)
	matchText := call.Command
	if call.Kind != protocol.KindShell {
		matchText = call.Path
	}
	if entry, ok := e.allow.Match(scope, matchText); ok {
		d := protocol.Decision{Verdict: protocol.VerdictAllow, Reason: "allowlisted: " + entry.Reason, InputSummary: summary, RequestID: requestID}
		e.writeAudit(call, d)
		return d
	}

	d := e.analyze(ctx, call, summary)
	d.RequestID = requestID
	if e.cfg.WarnOnly && d.Verdict == protocol.VerdictDeny {
		d.Verdict = protocol.VerdictWarn
		d.Reason = "(warn-only mode) " + d.Reason
	}
	if e.cfg.DryRun && d.Verdict == protocol.VerdictDeny {
		d.Verdict = protocol.VerdictWarn
		d.Reason = "(dry-run, not enforced) " + d.Reason
	}
	e.writeAudit(call, d)
	return d
}

func (e *Engine) analyze(ctx context.Context, call protocol.ToolCall, summary string) protocol.Decision {
	switch call.Kind {
	case protocol.KindShell:
		return e.analyzeShell(ctx, call, summary)
	case protocol.KindRead, protocol.KindEdit, protocol.KindWrite:
		return e.analyzePath(call, summary)
	default:
		return protocol.Decision{Verdict: protocol.VerdictAllow, Reason: "tool not subject to review", InputSummary: summary}
	}
}

func (e *Engine) analyzeShell(ctx context.Context, call protocol.ToolCall, summary string) protocol.Decision {
	select {
	case <-ctx.Done():
		return protocol.Decision{Verdict: protocol.VerdictDeny, RuleID: "resource-limit", Reason: "internal deadline exceeded before analysis completed", InputSummary: summary}
	default:
	}

	result := e.shellAn.Analyze(call.Command, e.corpus, e.cfg.SafetyLevel)
	if result.ResourceLimit {
		return protocol.Decision{Verdict: protocol.VerdictDeny, RuleID: "resource-limit", Reason: "command exceeds size/depth resource limits", InputSummary: summary}
	}

	hit, ok := shellanalyzer.Worst(result.Hits)
	if !ok {
		if result.ParseFailed {
			return protocol.Decision{Verdict: protocol.VerdictDeny, RuleID: "parse-failed", Reason: "shell command could not be parsed and no regex-safe rule matched", InputSummary: summary}
		}
		return protocol.Decision{Verdict: protocol.VerdictAllow, Reason: "no rule matched", InputSummary: summary}
	}
	return protocol.Decision{Verdict: protocol.VerdictDeny, RuleID: hit.RuleID, Reason: hit.Message, InputSummary: summary}
}

func (e *Engine) analyzePath(call protocol.ToolCall, summary string) protocol.Decision {
	if call.Path == "" {
		return protocol.Decision{Verdict: protocol.VerdictDeny, RuleID: "malformed-input", Reason: "path tool call carries no path", InputSummary: summary}
	}
	hits := e.pathAn.Analyze(call.Path, e.corpus, e.cfg.SafetyLevel)
	worst, ok := rule.Worst(hits)
	if !ok {
		return protocol.Decision{Verdict: protocol.VerdictAllow, Reason: "no protected-path rule matched", InputSummary: summary}
	}
	return protocol.Decision{Verdict: protocol.VerdictDeny, RuleID: worst.ID, Reason: worst.Message, InputSummary: summary}
}

func (e *Engine) writeAudit(call protocol.ToolCall, d protocol.Decision) {
	e.auditor.Write(audit.Record{
		RequestID:    d.RequestID,
		Timestamp:    time.Now(),
		Level:        e.cfg.LogLevel,
		Tool:         call.ToolName,
		RuleID:       d.RuleID,
		InputSummary: d.InputSummary,
		Reason:       d.Reason,
		Disabled:     d.Disabled,
		Source:       "rules",
		Verdict:      d.Verdict,
	})
}

func toolScopeFor(kind protocol.ToolKind) rule.ToolScope {
	if kind == protocol.KindShell {
		return rule.ScopeShell
	}
	return rule.ScopePath
}

func inputSummary(call protocol.ToolCall) string {
	text := call.Command
	if call.Kind != protocol.KindShell {
		text = call.Path
	}
	if len(text) > inputSummaryMaxLen {
		return fmt.Sprintf("%s... (truncated, %d bytes)", text[:inputSummaryMaxLen], len(text))
	}
	return text
}
