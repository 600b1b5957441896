package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mchmarny/pwcheck/pkg/widget"
	urfave "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const showFlagName = "show"

func newPromptCmd() *urfave.Command {
	return &urfave.Command{
		Name:            "prompt",
		Aliases:         []string{"p"},
		Usage:           "Interactive strength meter: type to evaluate, Enter to re-check, Tab to show/hide, Ctrl+C to quit",
		HideHelpCommand: true,
		Action:          cmdPrompt,
		Flags: []urfave.Flag{
			&urfave.BoolFlag{
				Name:  showFlagName,
				Usage: "Start with the password visible",
			},
		},
	}
}

func cmdPrompt(ctx context.Context, c *urfave.Command) error {
	cfg := getConfig(c)
	in := c.Root().Reader
	out := c.Root().Writer

	opts := []widget.TerminalOption{widget.WithColor(cfg.Config.Color)}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		opts = append(opts, widget.WithWidthFunc(func() int {
			w, _, err := term.GetSize(fd)
			if err != nil {
				return 0
			}
			return w
		}))

		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		defer func() {
			if err := term.Restore(fd, oldState); err != nil {
				slog.Error("restoring terminal", "error", err)
			}
		}()
	}

	masked := cfg.Config.StartMasked
	if c.IsSet(showFlagName) {
		masked = !c.Bool(showFlagName)
	}

	input := widget.NewInput(masked)
	sink := widget.NewTerminalSink(out, input, opts...)
	w, err := widget.New(input, sink, widget.WithLogger(slog.Default().WithGroup("prompt")))
	if err != nil {
		return fmt.Errorf("starting prompt: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := widget.NewSession(w, in).Run(ctx)
	fmt.Fprint(out, "\r\n")
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running prompt: %w", err)
	}

	slog.Debug("prompt closed", "score", res.Score, "tier", res.Tier)
	return nil
}
