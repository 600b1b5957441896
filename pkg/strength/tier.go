package strength

import "fmt"

// Tier is the strength classification derived from a score.
type Tier int

const (
	TierEmpty Tier = iota
	TierWeak
	TierMedium
	TierStrong
)

// Color is the display color associated with a tier.
type Color int

const (
	ColorNone Color = iota
	ColorRed
	ColorOrange
	ColorGreen
)

const (
	labelEmpty  = "Type a password to check strength"
	labelWeak   = "Weak Password ✗"
	labelMedium = "Medium Strength ⚠"
	labelStrong = "Strong Password ✓"

	hexTransparent = "transparent"
	hexMuted       = "#666"

	ansiReset  = "\033[0m"
	ansiGray   = "\033[90m"
	ansiRed    = "\033[91m"
	ansiOrange = "\033[38;5;214m"
	ansiGreen  = "\033[92m"
)

var (
	tierNames = [...]string{
		TierEmpty:  "empty",
		TierWeak:   "weak",
		TierMedium: "medium",
		TierStrong: "strong",
	}

	tierLabels = [...]string{
		TierEmpty:  labelEmpty,
		TierWeak:   labelWeak,
		TierMedium: labelMedium,
		TierStrong: labelStrong,
	}

	tierColors = [...]Color{
		TierEmpty:  ColorNone,
		TierWeak:   ColorRed,
		TierMedium: ColorOrange,
		TierStrong: ColorGreen,
	}

	colorNames = [...]string{
		ColorNone:   "none",
		ColorRed:    "red",
		ColorOrange: "orange",
		ColorGreen:  "green",
	}

	colorHex = [...]string{
		ColorNone:   hexTransparent,
		ColorRed:    "#ff4757",
		ColorOrange: "#ffa502",
		ColorGreen:  "#4caf50",
	}

	colorANSI = [...]string{
		ColorNone:   ansiGray,
		ColorRed:    ansiRed,
		ColorOrange: ansiOrange,
		ColorGreen:  ansiGreen,
	}
)

// TierFor maps a score to its tier. Scores outside [0, MaxScore] are clamped.
func TierFor(score int) Tier {
	switch {
	case score <= 0:
		return TierEmpty
	case score == 1:
		return TierWeak
	case score < MaxScore:
		return TierMedium
	default:
		return TierStrong
	}
}

// Tiers returns all tiers from weakest to strongest.
func Tiers() []Tier {
	return []Tier{TierEmpty, TierWeak, TierMedium, TierStrong}
}

func (t Tier) valid() bool {
	return t >= TierEmpty && t <= TierStrong
}

func (t Tier) String() string {
	if !t.valid() {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// Label returns the feedback text for the tier.
func (t Tier) Label() string {
	if !t.valid() {
		return ""
	}
	return tierLabels[t]
}

// Color returns the bar color for the tier.
func (t Tier) Color() Color {
	if !t.valid() {
		return ColorNone
	}
	return tierColors[t]
}

// LabelHex returns the label text color. The empty tier uses a muted gray
// while every other tier shares the bar color.
func (t Tier) LabelHex() string {
	if t.Color() == ColorNone {
		return hexMuted
	}
	return t.Color().Hex()
}

func (t Tier) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("invalid tier: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	for i, n := range tierNames {
		if n == string(b) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tier: %q", string(b))
}

func (c Color) valid() bool {
	return c >= ColorNone && c <= ColorGreen
}

func (c Color) String() string {
	if !c.valid() {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c]
}

// Hex returns the CSS color value, "transparent" for ColorNone.
func (c Color) Hex() string {
	if !c.valid() {
		return hexTransparent
	}
	return colorHex[c]
}

// ANSI returns the terminal escape sequence closest to the color.
func (c Color) ANSI() string {
	if !c.valid() {
		return ""
	}
	return colorANSI[c]
}

// ANSIReset returns the escape sequence that clears terminal colors.
func ANSIReset() string {
	return ansiReset
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("invalid color: %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	for i, n := range colorNames {
		if n == string(b) {
			*c = Color(i)
			return nil
		}
	}
	return fmt.Errorf("unknown color: %q", string(b))
}
