package cli

import (
	"context"
	"fmt"

	"github.com/mchmarny/pwcheck/pkg/strength"
	urfave "github.com/urfave/cli/v3"
)

type ruleInfo struct {
	Rule        strength.Rule `json:"rule" yaml:"rule"`
	Description string        `json:"description" yaml:"description"`
}

type scoreInfo struct {
	Score    int            `json:"score" yaml:"score"`
	Tier     strength.Tier  `json:"tier" yaml:"tier"`
	Fill     float64        `json:"fill" yaml:"fill"`
	Color    strength.Color `json:"color" yaml:"color"`
	Hex      string         `json:"hex" yaml:"hex"`
	LabelHex string         `json:"label_hex" yaml:"label_hex"`
	Label    string         `json:"label" yaml:"label"`
}

type rulesInfo struct {
	Rules  []ruleInfo  `json:"rules" yaml:"rules"`
	Scores []scoreInfo `json:"scores" yaml:"scores"`
}

func newRulesCmd() *urfave.Command {
	return &urfave.Command{
		Name:            "rules",
		Usage:           "List the strength rules and the score to tier mapping",
		HideHelpCommand: true,
		Action:          cmdRules,
	}
}

func cmdRules(_ context.Context, c *urfave.Command) error {
	if err := output(c, describeRules()); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

func describeRules() rulesInfo {
	var info rulesInfo
	for _, r := range strength.Rules() {
		info.Rules = append(info.Rules, ruleInfo{Rule: r, Description: r.Description()})
	}
	for s := 0; s <= strength.MaxScore; s++ {
		t := strength.TierFor(s)
		info.Scores = append(info.Scores, scoreInfo{
			Score:    s,
			Tier:     t,
			Fill:     float64(s) / strength.MaxScore,
			Color:    t.Color(),
			Hex:      t.Color().Hex(),
			LabelHex: t.LabelHex(),
			Label:    t.Label(),
		})
	}
	return info
}
