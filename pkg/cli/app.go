package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mchmarny/pwcheck/pkg/config"
	"github.com/mchmarny/pwcheck/pkg/logging"
	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "pwcheck"
	appConfigKey = "app-config"

	debugFlagName   = "debug"
	formatFlagName  = "format"
	configFlagName  = "config"
	noColorFlagName = "no-color"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info", true)

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Dir    string
	Format string
	Debug  bool
	Config *config.Config
}

func getConfig(c *urfave.Command) *appConfig {
	if cfg, ok := c.Root().Metadata[appConfigKey].(*appConfig); ok {
		return cfg
	}
	return &appConfig{Format: config.FormatJSON, Config: config.Default()}
}

func newApp() *urfave.Command {
	return &urfave.Command{
		Name:                  appName,
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Usage:                 "Check password strength against length, digit, uppercase and special character rules",
		Metadata:              map[string]any{},
		Flags: []urfave.Flag{
			&urfave.BoolFlag{
				Name:  debugFlagName,
				Usage: "Prints verbose logs (optional, default: false)",
			},
			&urfave.StringFlag{
				Name:    formatFlagName,
				Usage:   "Output format [json, yaml] (default: from config)",
				Sources: urfave.EnvVars("PWCHECK_FORMAT"),
			},
			&urfave.StringFlag{
				Name:    configFlagName,
				Usage:   fmt.Sprintf("Config directory (default: $HOME/.%s)", appName),
				Sources: urfave.EnvVars("PWCHECK_CONFIG_DIR"),
			},
			&urfave.BoolFlag{
				Name:  noColorFlagName,
				Usage: "Disable colored output",
			},
		},
		Commands: []*urfave.Command{
			newCheckCmd(),
			newAuditCmd(),
			newPromptCmd(),
			newRulesCmd(),
		},
		Before: before,
	}
}

func before(ctx context.Context, c *urfave.Command) (context.Context, error) {
	start := time.Now()

	dir := c.String(configFlagName)
	if dir == "" {
		d, _, err := config.GetOrCreateHomeDir(appName)
		if err != nil {
			return ctx, fmt.Errorf("resolving config dir: %w", err)
		}
		dir = d
	}

	cfg, err := config.ReadOrCreate(dir)
	if err != nil {
		return ctx, fmt.Errorf("loading config: %w", err)
	}

	if c.Bool(noColorFlagName) {
		cfg.Color = false
	}

	debug := c.Bool(debugFlagName)
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logging.SetDefaultCLILogger(level, cfg.Color)

	format := cfg.Format
	if c.IsSet(formatFlagName) {
		if format, err = config.ParseFormat(c.String(formatFlagName)); err != nil {
			return ctx, err
		}
	}

	c.Root().Metadata[appConfigKey] = &appConfig{
		Dir:    dir,
		Format: format,
		Debug:  debug,
		Config: cfg,
	}

	slog.Debug("config loaded", "dir", dir, "format", format, "duration", time.Since(start))
	return ctx, nil
}

func encode(w io.Writer, format string, v any) error {
	if format == config.FormatYAML {
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return e.Close()
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	if err := e.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func output(c *urfave.Command, v any) error {
	return encode(c.Root().Writer, getConfig(c).Format, v)
}
