package widget

import "unicode/utf8"

// Input holds the password text and its masked flag. Handlers registered
// with OnChange and OnMask run synchronously, in registration order.
// An Input is not safe for concurrent use.
type Input struct {
	text       string
	masked     bool
	onChange   []func(text string)
	onMaskFlip []func(masked bool)
}

// NewInput returns an empty input with the given initial mask state.
func NewInput(masked bool) *Input {
	return &Input{masked: masked}
}

func (in *Input) Text() string {
	return in.text
}

func (in *Input) Masked() bool {
	return in.masked
}

// OnChange registers a handler invoked after every text mutation.
func (in *Input) OnChange(fn func(text string)) {
	if fn != nil {
		in.onChange = append(in.onChange, fn)
	}
}

// OnMask registers a handler invoked after the mask flag flips.
func (in *Input) OnMask(fn func(masked bool)) {
	if fn != nil {
		in.onMaskFlip = append(in.onMaskFlip, fn)
	}
}

// Set replaces the text.
func (in *Input) Set(text string) {
	in.text = text
	in.changed()
}

// Append adds a single rune to the end of the text.
func (in *Input) Append(r rune) {
	in.text = string(utf8.AppendRune([]byte(in.text), r))
	in.changed()
}

// Backspace removes the last rune. It is a no-op on empty text.
func (in *Input) Backspace() {
	if in.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(in.text)
	in.text = in.text[:len(in.text)-size]
	in.changed()
}

// Clear empties the text.
func (in *Input) Clear() {
	in.Set("")
}

// ToggleMask flips the masked flag and returns the new state.
func (in *Input) ToggleMask() bool {
	in.masked = !in.masked
	for _, fn := range in.onMaskFlip {
		fn(in.masked)
	}
	return in.masked
}

func (in *Input) changed() {
	for _, fn := range in.onChange {
		fn(in.text)
	}
}
