// Package widget wires the strength evaluator to an input surface and a
// display sink.
package widget

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mchmarny/pwcheck/pkg/strength"
)

// Widget re-evaluates the input on every change and renders the result.
type Widget struct {
	input  *Input
	sink   Sink
	logger *slog.Logger
	last   strength.Result
	err    error
}

// Option customizes a Widget.
type Option func(*Widget)

// WithLogger sets the logger used to report sink failures.
func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// New binds the input to the sink. The sink receives an initial render of
// the current text and mask state.
func New(input *Input, sink Sink, opts ...Option) (*Widget, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}
	if sink == nil {
		return nil, errors.New("sink is required")
	}

	w := &Widget{
		input:  input,
		sink:   sink,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(w)
	}

	input.OnChange(func(text string) {
		w.err = w.evaluate(text)
	})
	input.OnMask(func(masked bool) {
		if err := sink.RenderMask(masked); err != nil {
			w.err = fmt.Errorf("rendering mask: %w", err)
			w.logger.Error("render mask failed", "error", err)
		}
	})

	if err := w.Check(); err != nil {
		return nil, err
	}
	return w, nil
}

// Input returns the bound input surface.
func (w *Widget) Input() *Input {
	return w.input
}

// Check evaluates the current text on explicit request.
func (w *Widget) Check() error {
	w.err = w.evaluate(w.input.Text())
	return w.err
}

// ToggleMask flips the input mask and reports any render failure.
func (w *Widget) ToggleMask() (bool, error) {
	w.err = nil
	masked := w.input.ToggleMask()
	return masked, w.err
}

// Last returns the most recent evaluation.
func (w *Widget) Last() strength.Result {
	return w.last
}

// Err returns the error from the most recent render, if any.
func (w *Widget) Err() error {
	return w.err
}

func (w *Widget) evaluate(text string) error {
	w.last = strength.Evaluate(text)
	if err := w.sink.Render(w.last); err != nil {
		w.logger.Error("render failed", "score", w.last.Score, "error", err)
		return fmt.Errorf("rendering result: %w", err)
	}
	return nil
}
