package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_HandlersRunInOrder(t *testing.T) {
	in := NewInput(false)

	var calls []string
	in.OnChange(func(text string) { calls = append(calls, "a:"+text) })
	in.OnChange(func(text string) { calls = append(calls, "b:"+text) })
	in.OnChange(nil)

	in.Set("x")
	assert.Equal(t, []string{"a:x", "b:x"}, calls)
}

func TestInput_Edits(t *testing.T) {
	in := NewInput(true)

	var count int
	in.OnChange(func(string) { count++ })

	in.Append('a')
	in.Append('é')
	in.Append('🔒')
	assert.Equal(t, "aé🔒", in.Text())

	in.Backspace()
	assert.Equal(t, "aé", in.Text())
	in.Backspace()
	assert.Equal(t, "a", in.Text())

	in.Clear()
	assert.Equal(t, "", in.Text())

	// no-op on empty text
	in.Backspace()
	assert.Equal(t, 6, count)
}

func TestInput_ToggleMask(t *testing.T) {
	in := NewInput(true)
	assert.True(t, in.Masked())

	var got []bool
	var texts int
	in.OnMask(func(m bool) { got = append(got, m) })
	in.OnChange(func(string) { texts++ })

	assert.False(t, in.ToggleMask())
	assert.True(t, in.ToggleMask())
	assert.Equal(t, []bool{false, true}, got)
	assert.Zero(t, texts)
}
