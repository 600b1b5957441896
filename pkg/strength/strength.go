// Package strength scores passwords against four fixed heuristics.
package strength

import "log/slog"

// MaxScore is the score of a password that satisfies every rule.
const MaxScore = 4

// RuleResult is the outcome of a single rule.
type RuleResult struct {
	Rule   Rule `json:"rule" yaml:"rule"`
	Passed bool `json:"passed" yaml:"passed"`
}

// Result is the outcome of evaluating one password. Tier, Fill, Color and
// Label are all derived from Score.
type Result struct {
	Rules []RuleResult `json:"rules" yaml:"rules"`
	Score int          `json:"score" yaml:"score"`
	Tier  Tier         `json:"tier" yaml:"tier"`
	Fill  float64      `json:"fill" yaml:"fill"`
	Color Color        `json:"color" yaml:"color"`
	Label string       `json:"label" yaml:"label"`
}

// Evaluate scores the password. It never fails; the empty string scores 0.
func Evaluate(password string) Result {
	list := make([]RuleResult, 0, len(rules))
	score := 0
	for _, r := range rules {
		ok := r.Check(password)
		if ok {
			score++
		}
		list = append(list, RuleResult{Rule: r, Passed: ok})
	}

	tier := TierFor(score)

	slog.Debug("password evaluated", "length", len(password), "score", score, "tier", tier)

	return Result{
		Rules: list,
		Score: score,
		Tier:  tier,
		Fill:  float64(score) / MaxScore,
		Color: tier.Color(),
		Label: tier.Label(),
	}
}

// Passed reports whether the given rule was satisfied.
func (r Result) Passed(rule Rule) bool {
	for _, rr := range r.Rules {
		if rr.Rule == rule {
			return rr.Passed
		}
	}
	return false
}

// Percent returns the fill fraction as a whole percentage.
func (r Result) Percent() int {
	return r.Score * 100 / MaxScore
}
