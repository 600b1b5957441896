package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mchmarny/pwcheck/pkg/audit"
	"github.com/mchmarny/pwcheck/pkg/strength"
	urfave "github.com/urfave/cli/v3"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	keyringServiceFlagName = "keyring-service"
	keyringUserFlagName    = "keyring-user"
	requireFlagName        = "require"
)

// ErrTooWeak is returned when a password falls below the required tier.
var ErrTooWeak = errors.New("password below required strength")

func newCheckCmd() *urfave.Command {
	return &urfave.Command{
		Name:    "check",
		Aliases: []string{"c"},
		Usage:   "Evaluate password strength",
		UsageText: `pwcheck check                                  # prompt without echo
   echo 'P@ssw0rd' | pwcheck check                # one password per stdin line
   pwcheck check --keyring-service svc --keyring-user me   # secret from OS keychain
   pwcheck check --require strong                 # exit 1 unless every password is strong`,
		HideHelpCommand: true,
		Action:          cmdCheck,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:  keyringServiceFlagName,
				Usage: "Evaluate the secret stored in the OS keychain under this service",
			},
			&urfave.StringFlag{
				Name:  keyringUserFlagName,
				Usage: "Keychain user for --keyring-service",
			},
			&urfave.StringFlag{
				Name:  requireFlagName,
				Usage: "Fail unless every password reaches this tier [weak, medium, strong]",
			},
		},
	}
}

func cmdCheck(_ context.Context, c *urfave.Command) error {
	var required strength.Tier
	if v := c.String(requireFlagName); v != "" {
		if err := required.UnmarshalText([]byte(strings.ToLower(v))); err != nil {
			return fmt.Errorf("parsing --%s: %w", requireFlagName, err)
		}
	}

	passwords, err := readPasswords(c)
	if err != nil {
		return err
	}

	results := make([]strength.Result, 0, len(passwords))
	for _, p := range passwords {
		results = append(results, strength.Evaluate(p))
	}

	if err := output(c, results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	for i, r := range results {
		if r.Tier < required {
			return fmt.Errorf("%w: password %d is %s, want %s", ErrTooWeak, i+1, r.Tier, required)
		}
	}
	return nil
}

func readPasswords(c *urfave.Command) ([]string, error) {
	if svc := c.String(keyringServiceFlagName); svc != "" {
		user := c.String(keyringUserFlagName)
		secret, err := keyring.Get(svc, user)
		if err != nil {
			return nil, fmt.Errorf("reading keychain secret %s/%s: %w", svc, user, err)
		}
		slog.Debug("read secret from keychain", "service", svc, "user", user)
		return []string{secret}, nil
	}

	if args := c.Args().Slice(); len(args) > 0 {
		slog.Debug("passwords from arguments", "count", len(args))
		return args, nil
	}

	in := c.Root().Reader
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.Root().ErrWriter, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.Root().ErrWriter)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		return []string{string(b)}, nil
	}

	return readLines(in)
}

func readLines(r io.Reader) ([]string, error) {
	var list []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), audit.MaxLineBytes)
	for sc.Scan() {
		list = append(list, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return list, nil
}
