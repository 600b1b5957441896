// Package audit evaluates password lists in bulk.
package audit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/mchmarny/pwcheck/pkg/strength"
	"golang.org/x/sync/errgroup"
)

// MaxLineBytes is the longest line accepted from a password list.
const MaxLineBytes = 1 << 20

// ErrNoInput is returned when the reader is nil.
var ErrNoInput = errors.New("no input to audit")

// Options controls how a list is audited.
type Options struct {
	// Workers bounds concurrent evaluations, defaults to runtime.NumCPU().
	Workers int
	// IncludeEmpty evaluates blank lines instead of skipping them.
	IncludeEmpty bool
	// Details adds one entry per evaluated line to the report.
	Details bool
}

// Entry is the result for one input line. The password is not retained.
type Entry struct {
	Line   int             `json:"line" yaml:"line"`
	Result strength.Result `json:"result" yaml:"result"`
}

// Report summarizes an audit.
type Report struct {
	Total   int                   `json:"total" yaml:"total"`
	Skipped int                   `json:"skipped" yaml:"skipped"`
	Tiers   map[strength.Tier]int `json:"tiers" yaml:"tiers"`
	Rules   map[strength.Rule]int `json:"rules" yaml:"rules"`
	Entries []Entry               `json:"entries,omitempty" yaml:"entries,omitempty"`
}

type line struct {
	num  int
	text string
}

// Run reads one password per line from r and evaluates each of them.
func Run(ctx context.Context, r io.Reader, opts Options) (*Report, error) {
	if r == nil {
		return nil, ErrNoInput
	}

	lines, skipped, err := readLines(r, opts.IncludeEmpty)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	slog.Debug("audit started", "lines", len(lines), "skipped", skipped, "workers", workers)

	results := make([]strength.Result, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = strength.Evaluate(lines[i].text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating passwords: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluating passwords: %w", err)
	}

	rep := newReport()
	rep.Skipped = skipped
	for i, res := range results {
		rep.add(res)
		if opts.Details {
			rep.Entries = append(rep.Entries, Entry{Line: lines[i].num, Result: res})
		}
	}

	slog.Debug("audit done", "total", rep.Total, "strong", rep.Tiers[strength.TierStrong])
	return rep, nil
}

func newReport() *Report {
	rep := &Report{
		Tiers: make(map[strength.Tier]int),
		Rules: make(map[strength.Rule]int),
	}
	for _, t := range strength.Tiers() {
		rep.Tiers[t] = 0
	}
	for _, r := range strength.Rules() {
		rep.Rules[r] = 0
	}
	return rep
}

func (rep *Report) add(res strength.Result) {
	rep.Total++
	rep.Tiers[res.Tier]++
	for _, rr := range res.Rules {
		if rr.Passed {
			rep.Rules[rr.Rule]++
		}
	}
}

func readLines(r io.Reader, includeEmpty bool) ([]line, int, error) {
	var (
		list    []line
		skipped int
		num     int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	for sc.Scan() {
		num++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" && !includeEmpty {
			skipped++
			continue
		}
		list = append(list, line{num: num, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading password list: %w", err)
	}
	return list, skipped, nil
}
