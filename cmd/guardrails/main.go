// Command guardrails is the CLI entrypoint: parse flags, read one JSON
// ToolCall from stdin, run it through the decision engine, write one JSON
// Decision to stdout, and exit with the code the decision implies.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/victorarias/guardrails/internal/allowlist"
	"github.com/victorarias/guardrails/internal/audit"
	"github.com/victorarias/guardrails/internal/engine"
	"github.com/victorarias/guardrails/internal/guardconfig"
	"github.com/victorarias/guardrails/internal/pathanalyzer"
	"github.com/victorarias/guardrails/internal/protocol"
	"github.com/victorarias/guardrails/internal/rule"
	"github.com/victorarias/guardrails/internal/shellanalyzer"
	"github.com/victorarias/guardrails/internal/shellparse"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "guardrails",
		Usage:   "pre-execution safety filter for an AI coding assistant",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "safety-level", Usage: "critical|high|strict"},
			&cli.BoolFlag{Name: "dry-run", Usage: "evaluate but never deny"},
			&cli.StringFlag{Name: "config", Usage: "path to config.toml"},
		},
		Action: runDecide,
		Commands: []*cli.Command{
			{
				Name:   "selftest",
				Usage:  "run the built-in scenario table against the compiled-in corpus",
				Action: runSelftest,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "guardrails:", err)
		os.Exit(1)
	}
}

func buildEngine(cmd *cli.Command) (*engine.Engine, zerolog.Logger) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	overrides := guardconfig.CLIOverrides{
		ConfigPath:  cmd.String("config"),
		SafetyLevel: cmd.String("safety-level"),
		DryRun:      cmd.Bool("dry-run"),
		DryRunSet:   cmd.IsSet("dry-run"),
	}
	cfg := guardconfig.Load(overrides, logger)

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}

	corpus := rule.NewCorpus(cfg.ProtectedPatterns)

	al, err := allowlist.Load(cfg.AllowlistPath, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load allowlist, proceeding with none")
		al = &allowlist.Allowlist{}
	}

	wrappers := shellparse.NewWrapperSet(cfg.Wrappers)
	shellAn := shellanalyzer.New(wrappers, cfg.BlockVariableCommands, cfg.BlockPipeToShell)
	pathAn := pathanalyzer.New()

	auditor := audit.New(audit.Config{
		Enabled:    cfg.AuditLog,
		Path:       cfg.AuditPath,
		MaxSizeMB:  cfg.AuditMaxSizeMB,
		MaxBackups: cfg.AuditMaxBackups,
		MaxAgeDays: cfg.AuditMaxAgeDays,
	})

	return engine.New(corpus, al, cfg, shellAn, pathAn, auditor), logger
}

func runDecide(ctx context.Context, cmd *cli.Command) error {
	eng, logger := buildEngine(cmd)

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return writeMalformed(logger, "could not read stdin")
	}

	var req protocol.HookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return writeMalformed(logger, "stdin is not valid JSON")
	}

	call, err := toToolCall(req)
	if err != nil {
		return writeMalformed(logger, err.Error())
	}

	decision := eng.Decide(ctx, call)
	if err := writeResponse(decision.Response()); err != nil {
		logger.Error().Err(err).Msg("failed to write response to stdout")
	}
	os.Exit(decision.ExitCode())
	return nil
}

func toToolCall(req protocol.HookRequest) (protocol.ToolCall, error) {
	kind := protocol.ResolveToolKind(req.ToolName)
	call := protocol.ToolCall{ToolName: req.ToolName, Kind: kind}

	switch kind {
	case protocol.KindShell:
		var payload protocol.ShellPayload
		if err := json.Unmarshal(req.ToolInput, &payload); err != nil {
			return call, fmt.Errorf("tool_input is not a valid shell payload")
		}
		call.Command = payload.Command
	case protocol.KindRead, protocol.KindEdit, protocol.KindWrite:
		var payload protocol.PathPayload
		if err := json.Unmarshal(req.ToolInput, &payload); err != nil {
			return call, fmt.Errorf("tool_input is not a valid path payload")
		}
		call.Path = payload.Path
	}
	return call, nil
}

func writeMalformed(logger zerolog.Logger, reason string) error {
	d := protocol.Decision{Verdict: protocol.VerdictDeny, RuleID: "malformed-input", Reason: reason}
	if err := writeResponse(d.Response()); err != nil {
		logger.Error().Err(err).Msg("failed to write malformed-input response")
	}
	os.Exit(d.ExitCode())
	return nil
}

func writeResponse(resp protocol.HookResponse) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(resp)
}
