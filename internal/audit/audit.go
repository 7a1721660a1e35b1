// Package audit writes one JSON object per decision to a rotating log file,
// via zerolog through a lumberjack.Logger. Audit writes are append-only and
// best-effort: a write failure is reported to stderr and never changes the
// decision already made (spec.md §7).
package audit

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/victorarias/guardrails/internal/protocol"
)

// Record is one audit log line. Field names follow spec.md §6, plus
// request_id, disabled, verdict and the teacher-derived constant "source"
// field kept for log-schema stability.
type Record struct {
	RequestID    string           `json:"request_id"`
	Timestamp    time.Time        `json:"timestamp"`
	Level        string           `json:"level"`
	Tool         string           `json:"tool"`
	RuleID       string           `json:"rule_id,omitempty"`
	InputSummary string           `json:"input_summary"`
	Reason       string           `json:"reason"`
	Disabled     bool             `json:"disabled,omitempty"`
	Source       string           `json:"source"`
	Verdict      protocol.Verdict `json:"verdict"`
}

// Writer appends Records as JSON lines. A nil Writer is valid and Write on it
// is a no-op; with audit_log = false, New returns a non-nil Writer whose Write
// is likewise a no-op, matching the teacher's own pattern of a toggleable
// decisions.log.
type Writer struct {
	logger zerolog.Logger
	closer io.Closer
}

// Config is the subset of guardconfig.Config the audit writer needs.
type Config struct {
	Enabled     bool
	Path        string
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
}

// New builds a Writer. When cfg.Enabled is false it returns a Writer whose
// Write is a no-op rather than nil, so callers never need a nil check.
func New(cfg Config) *Writer {
	if !cfg.Enabled {
		return &Writer{logger: zerolog.Nop()}
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   false,
	}
	return &Writer{
		logger: zerolog.New(lj),
		closer: lj,
	}
}

// Write appends one decision record. Errors are swallowed here by design —
// zerolog's writer already reports its own I/O failures to its configured
// error handler, and an audit failure must never affect the decision already
// returned to the host.
func (w *Writer) Write(r Record) {
	if w == nil {
		return
	}
	w.logger.Log().
		Str("request_id", r.RequestID).
		Time("timestamp", r.Timestamp).
		Str("level", r.Level).
		Str("tool", r.Tool).
		Str("rule_id", r.RuleID).
		Str("input_summary", r.InputSummary).
		Str("reason", r.Reason).
		Bool("disabled", r.Disabled).
		Str("source", r.Source).
		Str("verdict", string(r.Verdict)).
		Msg("decision")
}

// Close releases the underlying rotated file, if any.
func (w *Writer) Close() error {
	if w == nil || w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
