package widget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/mchmarny/pwcheck/pkg/strength"
)

const (
	keyCtrlC     = 3
	keyCtrlD     = 4
	keyBackspace = 8
	keyTab       = 9
	keyLF        = 10
	keyCR        = 13
	keyCtrlT     = 20
	keyCtrlU     = 21
	keyEscape    = 27
	keyDelete    = 127

	readBufSize = 256
)

// Session feeds keystrokes from a reader into a widget.
type Session struct {
	w       *Widget
	r       io.Reader
	pending []byte
	inEsc   bool
	inCSI   bool
}

func NewSession(w *Widget, r io.Reader) *Session {
	return &Session{w: w, r: r}
}

type chunk struct {
	data []byte
	err  error
}

// Run processes input until Ctrl+C, Ctrl+D, EOF or context cancellation and
// returns the last evaluation. Cancellation returns immediately, even while a
// read is blocked; the reader goroutine exits on its next read.
func (s *Session) Run(ctx context.Context) (strength.Result, error) {
	if err := ctx.Err(); err != nil {
		return s.w.Last(), err
	}

	chunks := make(chan chunk)
	done := make(chan struct{})
	defer close(done)

	go s.read(chunks, done)

	for {
		select {
		case <-ctx.Done():
			return s.w.Last(), ctx.Err()
		case c := <-chunks:
			if len(c.data) > 0 {
				stop, err := s.Feed(c.data)
				if err != nil {
					return s.w.Last(), err
				}
				if stop {
					return s.w.Last(), nil
				}
			}
			if c.err != nil {
				if errors.Is(c.err, io.EOF) {
					return s.w.Last(), nil
				}
				return s.w.Last(), fmt.Errorf("reading input: %w", c.err)
			}
		}
	}
}

func (s *Session) read(out chan<- chunk, done <-chan struct{}) {
	for {
		buf := make([]byte, readBufSize)
		n, err := s.r.Read(buf)
		select {
		case out <- chunk{data: buf[:n], err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// Feed processes a chunk of raw terminal input. It reports true when the
// user asked to stop. Partial UTF-8 sequences are kept for the next chunk.
func (s *Session) Feed(b []byte) (bool, error) {
	data := append(s.pending, b...)
	s.pending = nil

	for len(data) > 0 {
		c := data[0]

		if s.skipEscape(c) {
			data = data[1:]
			continue
		}

		if c < utf8.RuneSelf {
			data = data[1:]
			stop, err := s.key(c)
			if stop || err != nil {
				return stop, err
			}
			continue
		}

		if !utf8.FullRune(data) {
			s.pending = append([]byte(nil), data...)
			return false, nil
		}
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r == utf8.RuneError && size == 1 {
			slog.Debug("invalid utf-8 input skipped")
			continue
		}
		s.w.Input().Append(r)
		if err := s.w.Err(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// skipEscape swallows ANSI escape sequences such as arrow keys. A lone Esc
// followed by anything but '[' or 'O' is dropped and the byte is kept.
func (s *Session) skipEscape(c byte) bool {
	switch {
	case c == keyEscape:
		s.inEsc = true
		s.inCSI = false
		return true
	case s.inEsc && !s.inCSI:
		s.inEsc = false
		if c == '[' || c == 'O' {
			s.inEsc = true
			s.inCSI = true
			return true
		}
		return false
	case s.inCSI:
		if c >= 0x40 && c <= 0x7e {
			s.inEsc = false
			s.inCSI = false
		}
		return true
	}
	return false
}

func (s *Session) key(c byte) (bool, error) {
	in := s.w.Input()
	switch c {
	case keyCtrlC, keyCtrlD:
		return true, nil
	case keyCR, keyLF:
		return false, s.w.Check()
	case keyTab, keyCtrlT:
		_, err := s.w.ToggleMask()
		return false, err
	case keyBackspace, keyDelete:
		in.Backspace()
	case keyCtrlU:
		in.Clear()
	default:
		if c < 32 {
			return false, nil
		}
		in.Append(rune(c))
	}
	return false, s.w.Err()
}
