package strength

import "fmt"

// MinLength is the minimum password length, in bytes, for the length rule.
const MinLength = 8

// Rule is one of the four password heuristics.
type Rule string

const (
	RuleMinLength  Rule = "minLength"
	RuleHasDigit   Rule = "hasDigit"
	RuleHasUpper   Rule = "hasUpper"
	RuleHasSpecial Rule = "hasSpecial"
)

const (
	markPassed = "✓"
	markFailed = "✗"
)

var (
	rules = []Rule{
		RuleMinLength,
		RuleHasDigit,
		RuleHasUpper,
		RuleHasSpecial,
	}

	ruleDescriptions = map[Rule]string{
		RuleMinLength:  fmt.Sprintf("%d+ characters", MinLength),
		RuleHasDigit:   "Contains digit",
		RuleHasUpper:   "Contains uppercase",
		RuleHasSpecial: "Contains special char",
	}
)

// Rules returns the rules in evaluation order.
func Rules() []Rule {
	list := make([]Rule, len(rules))
	copy(list, rules)
	return list
}

// Description returns the requirement text shown next to the rule indicator.
func (r Rule) Description() string {
	if d, ok := ruleDescriptions[r]; ok {
		return d
	}
	return string(r)
}

// Check applies the rule predicate to the password.
// Unknown rules never pass.
func (r Rule) Check(password string) bool {
	switch r {
	case RuleMinLength:
		return len(password) >= MinLength
	case RuleHasDigit:
		return containsByte(password, isDigit)
	case RuleHasUpper:
		return containsByte(password, isUpper)
	case RuleHasSpecial:
		return containsByte(password, isSpecial)
	default:
		return false
	}
}

// Mark returns the indicator symbol for a pass/fail state.
func Mark(passed bool) string {
	if passed {
		return markPassed
	}
	return markFailed
}

// Bytes of a multi-byte UTF-8 sequence are all >= 0x80, so scanning bytes
// classifies non-ASCII characters as special without decoding runes.
func containsByte(s string, fn func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if fn(s[i]) {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func isSpecial(b byte) bool {
	return !isDigit(b) && !isUpper(b) && !isLower(b)
}
