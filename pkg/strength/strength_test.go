package strength

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		password string
		score    int
		tier     Tier
		fill     float64
		color    Color
		label    string
	}{
		{"empty", "", 0, TierEmpty, 0, ColorNone, "Type a password to check strength"},
		{"lowercase eight", "password", 1, TierWeak, 0.25, ColorRed, "Weak Password ✗"},
		{"no special", "Password1", 3, TierMedium, 0.75, ColorOrange, "Medium Strength ⚠"},
		{"all rules", "P@ssw0rd", 4, TierStrong, 1, ColorGreen, "Strong Password ✓"},
		{"short lowercase", "ab", 0, TierEmpty, 0, ColorNone, "Type a password to check strength"},
		{"two rules", "abc1!", 2, TierMedium, 0.5, ColorOrange, "Medium Strength ⚠"},
		{"digit only", "7", 1, TierWeak, 0.25, ColorRed, "Weak Password ✗"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(tt.password)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.tier, r.Tier)
			assert.Equal(t, tt.fill, r.Fill)
			assert.Equal(t, tt.color, r.Color)
			assert.Equal(t, tt.label, r.Label)
		})
	}
}

func TestEvaluate_RuleResults(t *testing.T) {
	r := Evaluate("Password1")
	require.Len(t, r.Rules, 4)

	assert.Equal(t, RuleMinLength, r.Rules[0].Rule)
	assert.Equal(t, RuleHasDigit, r.Rules[1].Rule)
	assert.Equal(t, RuleHasUpper, r.Rules[2].Rule)
	assert.Equal(t, RuleHasSpecial, r.Rules[3].Rule)

	assert.True(t, r.Passed(RuleMinLength))
	assert.True(t, r.Passed(RuleHasDigit))
	assert.True(t, r.Passed(RuleHasUpper))
	assert.False(t, r.Passed(RuleHasSpecial))
	assert.False(t, r.Passed(Rule("unknown")))
}

func TestEvaluate_CharacterClasses(t *testing.T) {
	tests := []struct {
		name     string
		password string
		digit    bool
		upper    bool
		special  bool
	}{
		{"whitespace only", "   ", false, false, true},
		{"non-ascii letters", "ÉÀÜ", false, false, true},
		{"non-ascii digits", "١٢٣", false, false, true},
		{"ascii upper", "ABC", false, true, false},
		{"tab", "a\tb", false, false, true},
		{"emoji", "🔒", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(tt.password)
			assert.Equal(t, tt.digit, r.Passed(RuleHasDigit))
			assert.Equal(t, tt.upper, r.Passed(RuleHasUpper))
			assert.Equal(t, tt.special, r.Passed(RuleHasSpecial))
		})
	}
}

func TestEvaluate_LengthCountsBytes(t *testing.T) {
	// four two-byte runes
	r := Evaluate("éééé")
	assert.True(t, r.Passed(RuleMinLength))

	r = Evaluate("1234567")
	assert.False(t, r.Passed(RuleMinLength))

	r = Evaluate("12345678")
	assert.True(t, r.Passed(RuleMinLength))
}

func TestEvaluate_Invariants(t *testing.T) {
	inputs := []string{
		"", "a", "A", "1", "!", " ", "ab", "password", "PASSWORD", "Password1",
		"P@ssw0rd", "correct horse battery staple", "ÄÖÜ123", strings.Repeat("x", 1024),
		"\x00\x01", "Aa1!Aa1!Aa1!",
	}

	byScore := make(map[int]Result)
	for _, in := range inputs {
		r := Evaluate(in)

		passed := 0
		for _, rr := range r.Rules {
			if rr.Passed {
				passed++
			}
		}
		assert.Equal(t, passed, r.Score, "score for %q", in)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, MaxScore)
		assert.Equal(t, float64(r.Score)/4, r.Fill, "fill for %q", in)
		assert.Equal(t, TierFor(r.Score), r.Tier)

		if prev, ok := byScore[r.Score]; ok {
			assert.Equal(t, prev.Tier, r.Tier)
			assert.Equal(t, prev.Color, r.Color)
			assert.Equal(t, prev.Label, r.Label)
		}
		byScore[r.Score] = r

		assert.Equal(t, r, Evaluate(in), "idempotence for %q", in)
	}
}

func TestEvaluate_DeletingDigitsLowersScore(t *testing.T) {
	before := Evaluate("Password1")
	after := Evaluate("Password")
	assert.Less(t, after.Score, before.Score)
}

func TestResult_Percent(t *testing.T) {
	assert.Equal(t, 0, Evaluate("").Percent())
	assert.Equal(t, 25, Evaluate("password").Percent())
	assert.Equal(t, 75, Evaluate("Password1").Percent())
	assert.Equal(t, 100, Evaluate("P@ssw0rd").Percent())
}

func TestResult_JSON(t *testing.T) {
	b, err := json.Marshal(Evaluate("Password1"))
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, `"tier":"medium"`)
	assert.Contains(t, s, `"color":"orange"`)
	assert.Contains(t, s, `"rule":"hasSpecial","passed":false`)
	assert.Contains(t, s, `"fill":0.75`)
}

func TestResult_YAML(t *testing.T) {
	b, err := yaml.Marshal(Evaluate("P@ssw0rd"))
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, "tier: strong")
	assert.Contains(t, s, "color: green")
	assert.Contains(t, s, "rule: minLength")
}

func TestRules(t *testing.T) {
	list := Rules()
	assert.Equal(t, []Rule{RuleMinLength, RuleHasDigit, RuleHasUpper, RuleHasSpecial}, list)

	// callers get a copy
	list[0] = RuleHasSpecial
	assert.Equal(t, RuleMinLength, Rules()[0])
}

func TestRule_Description(t *testing.T) {
	assert.Equal(t, "8+ characters", RuleMinLength.Description())
	assert.Equal(t, "Contains digit", RuleHasDigit.Description())
	assert.Equal(t, "Contains uppercase", RuleHasUpper.Description())
	assert.Equal(t, "Contains special char", RuleHasSpecial.Description())
	assert.Equal(t, "other", Rule("other").Description())
}

func TestRule_CheckUnknown(t *testing.T) {
	assert.False(t, Rule("other").Check("P@ssw0rd"))
}

func TestMark(t *testing.T) {
	assert.Equal(t, "✓", Mark(true))
	assert.Equal(t, "✗", Mark(false))
}
