package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mchmarny/pwcheck/pkg/strength"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testList = "password\r\nPassword1\n\nP@ssw0rd\nab\n"

func TestRun_Summary(t *testing.T) {
	rep, err := Run(context.Background(), strings.NewReader(testList), Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, rep.Total)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, 1, rep.Tiers[strength.TierEmpty])
	assert.Equal(t, 1, rep.Tiers[strength.TierWeak])
	assert.Equal(t, 1, rep.Tiers[strength.TierMedium])
	assert.Equal(t, 1, rep.Tiers[strength.TierStrong])

	assert.Equal(t, 3, rep.Rules[strength.RuleMinLength])
	assert.Equal(t, 2, rep.Rules[strength.RuleHasDigit])
	assert.Equal(t, 2, rep.Rules[strength.RuleHasUpper])
	assert.Equal(t, 1, rep.Rules[strength.RuleHasSpecial])

	assert.Empty(t, rep.Entries)
}

func TestRun_DetailsKeepInputOrder(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, "pass%dWORD\n", i)
	}

	rep, err := Run(context.Background(), strings.NewReader(b.String()), Options{Workers: 8, Details: true})
	require.NoError(t, err)
	require.Len(t, rep.Entries, 200)

	for i, e := range rep.Entries {
		assert.Equal(t, i+1, e.Line)
		assert.Equal(t, 3, e.Result.Score)
	}

	sum := 0
	for _, n := range rep.Tiers {
		sum += n
	}
	assert.Equal(t, rep.Total, sum)
}

func TestRun_LineNumbersSkipBlanks(t *testing.T) {
	rep, err := Run(context.Background(), strings.NewReader(testList), Options{Details: true})
	require.NoError(t, err)
	require.Len(t, rep.Entries, 4)

	assert.Equal(t, []int{1, 2, 4, 5}, []int{
		rep.Entries[0].Line,
		rep.Entries[1].Line,
		rep.Entries[2].Line,
		rep.Entries[3].Line,
	})
	assert.Equal(t, strength.TierWeak, rep.Entries[0].Result.Tier, "trailing CR is stripped")
}

func TestRun_IncludeEmpty(t *testing.T) {
	rep, err := Run(context.Background(), strings.NewReader(testList), Options{IncludeEmpty: true})
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Total)
	assert.Equal(t, 0, rep.Skipped)
	assert.Equal(t, 2, rep.Tiers[strength.TierEmpty])
}

func TestRun_NilReader(t *testing.T) {
	_, err := Run(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, strings.NewReader(testList), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_EmptyInput(t *testing.T) {
	rep, err := Run(context.Background(), strings.NewReader(""), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Total)
	assert.Len(t, rep.Tiers, 4)
	assert.Len(t, rep.Rules, 4)
}

func TestReport_JSONOmitsPasswords(t *testing.T) {
	rep, err := Run(context.Background(), strings.NewReader("Secr3t!pass\n"), Options{Details: true})
	require.NoError(t, err)

	b, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "Secr3t!pass")
	assert.Contains(t, string(b), `"strong":1`)
}
