package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mchmarny/pwcheck/pkg/audit"
	urfave "github.com/urfave/cli/v3"
)

const (
	fileFlagName         = "file"
	workersFlagName      = "workers"
	detailsFlagName      = "details"
	includeEmptyFlagName = "include-empty"
)

func newAuditCmd() *urfave.Command {
	return &urfave.Command{
		Name:    "audit",
		Aliases: []string{"a"},
		Usage:   "Summarize the strength of a password list (one per line)",
		UsageText: `pwcheck audit --file passwords.txt              # tier and rule counts
   pwcheck audit --file - --details < list.txt      # per-line results from stdin`,
		HideHelpCommand: true,
		Action:          cmdAudit,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:     fileFlagName,
				Aliases:  []string{"f"},
				Usage:    "Path to the password list, - for stdin",
				Required: true,
			},
			&urfave.IntFlag{
				Name:  workersFlagName,
				Usage: "Number of concurrent evaluations (default: from config, 0 for CPU count)",
			},
			&urfave.BoolFlag{
				Name:  detailsFlagName,
				Usage: "Include per-line results (passwords are never printed)",
			},
			&urfave.BoolFlag{
				Name:  includeEmptyFlagName,
				Usage: "Evaluate blank lines instead of skipping them",
			},
		},
	}
}

func cmdAudit(ctx context.Context, c *urfave.Command) error {
	cfg := getConfig(c)

	workers := cfg.Config.Workers
	if c.IsSet(workersFlagName) {
		workers = c.Int(workersFlagName)
	}

	r, closeFn, err := openList(c, c.String(fileFlagName))
	if err != nil {
		return err
	}
	defer closeFn()

	rep, err := audit.Run(ctx, r, audit.Options{
		Workers:      workers,
		IncludeEmpty: c.Bool(includeEmptyFlagName),
		Details:      c.Bool(detailsFlagName),
	})
	if err != nil {
		return fmt.Errorf("auditing passwords: %w", err)
	}

	slog.Debug("audit complete", "total", rep.Total, "skipped", rep.Skipped)

	if err := output(c, rep); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func openList(c *urfave.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return c.Root().Reader, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening password list %s: %w", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Debug("closing password list", "path", path, "error", err)
		}
	}, nil
}
