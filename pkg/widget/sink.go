package widget

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mchmarny/pwcheck/pkg/strength"
)

const (
	barWidth   = 20
	barFull    = "█"
	barEmpty   = "░"
	maskRune   = "•"
	ellipsis   = "…"
	promptText = "Password: "
	eraseLine  = "\r\033[K"
	cursorUp   = "\033[1A"
	newLine    = "\r\n"
)

// Sink renders evaluation results and the mask state.
type Sink interface {
	Render(r strength.Result) error
	RenderMask(masked bool) error
}

// TextSource supplies the text shown next to the strength bar.
type TextSource interface {
	Text() string
	Masked() bool
}

// TerminalSink redraws a status line and a requirements line on a terminal.
type TerminalSink struct {
	w      io.Writer
	src    TextSource
	color  bool
	last   strength.Result
	prompt string
	width  func() int
	drawn  bool
}

// TerminalOption customizes a TerminalSink.
type TerminalOption func(*TerminalSink)

// WithColor enables or disables ANSI colors.
func WithColor(enabled bool) TerminalOption {
	return func(s *TerminalSink) {
		s.color = enabled
	}
}

// WithPrompt replaces the default prompt text.
func WithPrompt(p string) TerminalOption {
	return func(s *TerminalSink) {
		s.prompt = p
	}
}

// WithWidth fits every line into n columns. Zero or less disables fitting.
func WithWidth(n int) TerminalOption {
	return WithWidthFunc(func() int { return n })
}

// WithWidthFunc queries the terminal width before every redraw.
func WithWidthFunc(fn func() int) TerminalOption {
	return func(s *TerminalSink) {
		s.width = fn
	}
}

func NewTerminalSink(w io.Writer, src TextSource, opts ...TerminalOption) *TerminalSink {
	s := &TerminalSink{
		w:      w,
		src:    src,
		color:  true,
		last:   strength.Evaluate(""),
		prompt: promptText,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *TerminalSink) Render(r strength.Result) error {
	s.last = r
	return s.draw()
}

// RenderMask redraws the lines using the last result; the mask state itself
// is read from the text source.
func (s *TerminalSink) RenderMask(_ bool) error {
	return s.draw()
}

// Line returns both lines for the last rendered result, joined by a newline,
// without terminal control sequences.
func (s *TerminalSink) Line() string {
	return strings.Join(s.Lines(), "\n")
}

// Lines returns the status and requirements lines without terminal control
// sequences.
func (s *TerminalSink) Lines() []string {
	color := s.color
	s.color = false
	defer func() { s.color = color }()

	status, reqs := s.lines()
	return []string{status, reqs}
}

// The cursor is left at the end of the requirements line, so every redraw
// after the first moves up one row before erasing.
func (s *TerminalSink) draw() error {
	status, reqs := s.lines()

	var b strings.Builder
	if s.drawn {
		b.WriteString(cursorUp)
	}
	b.WriteString(eraseLine)
	b.WriteString(status)
	b.WriteString(newLine)
	b.WriteString(eraseLine)
	b.WriteString(reqs)

	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("writing status line: %w", err)
	}
	s.drawn = true
	return nil
}

type segment struct {
	text  string
	color strength.Color
	paint bool
}

func (s *TerminalSink) lines() (string, string) {
	limit := s.limit()
	meter := []segment{
		{text: "  "},
		{text: Bar(s.last.Fill, barWidth), color: s.last.Color, paint: true},
		{text: fmt.Sprintf(" %3d%% ", s.last.Percent())},
		{text: s.last.Label, color: s.last.Color, paint: true},
	}

	text := s.displayText()
	if limit >= 0 {
		room := limit - utf8.RuneCountInString(s.prompt) - runeLen(meter)
		text = tail(text, room)
	}

	status := append([]segment{{text: s.prompt}, {text: text}}, meter...)
	return s.join(status, limit), s.join([]segment{{text: Requirements(s.last)}}, limit)
}

// limit is the number of runes a line may hold, or -1 for no limit. The last
// column is left free so the cursor never sits in the wrap position.
func (s *TerminalSink) limit() int {
	if s.width == nil {
		return -1
	}
	w := s.width()
	if w <= 0 {
		return -1
	}
	return w - 1
}

func (s *TerminalSink) join(segs []segment, limit int) string {
	var b strings.Builder
	for _, sg := range segs {
		t := sg.text
		if limit >= 0 {
			t = head(t, limit)
			limit -= utf8.RuneCountInString(t)
		}
		if t == "" {
			continue
		}
		if sg.paint {
			t = s.paint(sg.color, t)
		}
		b.WriteString(t)
	}
	return b.String()
}

func runeLen(segs []segment) int {
	n := 0
	for _, sg := range segs {
		n += utf8.RuneCountInString(sg.text)
	}
	return n
}

func head(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// tail keeps the end of s, the part being typed, marking the cut with an
// ellipsis.
func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return ""
	}
	return ellipsis + string(r[len(r)-n+1:])
}

func (s *TerminalSink) displayText() string {
	if s.src == nil {
		return ""
	}
	t := s.src.Text()
	if s.src.Masked() {
		return strings.Repeat(maskRune, utf8.RuneCountInString(t))
	}
	return t
}

func (s *TerminalSink) paint(c strength.Color, text string) string {
	if !s.color {
		return text
	}
	return c.ANSI() + text + strength.ANSIReset()
}

// Bar draws a fixed-width bar filled to the given fraction.
func Bar(fill float64, width int) string {
	if width <= 0 {
		return ""
	}
	n := int(fill*float64(width) + 0.5)
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat(barFull, n) + strings.Repeat(barEmpty, width-n)
}

// Requirements renders the per-rule indicators, e.g. "✓ 8+ characters".
func Requirements(r strength.Result) string {
	parts := make([]string, 0, len(r.Rules))
	for _, rr := range r.Rules {
		parts = append(parts, strength.Mark(rr.Passed)+" "+rr.Rule.Description())
	}
	return strings.Join(parts, " ")
}
