package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

func TestParseRuleModeUnknownFallsBackToHard(t *testing.T) {
	assert.Equal(t, domain.RuleModeSoft, domain.ParseRuleMode("soft"))
	assert.Equal(t, domain.RuleModeOff, domain.ParseRuleMode("off"))
	assert.Equal(t, domain.RuleModeHard, domain.ParseRuleMode(""))
	assert.Equal(t, domain.RuleModeHard, domain.ParseRuleMode("qualcosa"))
}

func TestDefaultRulesMirrorDefinitions(t *testing.T) {
	rules := domain.DefaultRules()

	require.Len(t, rules, len(domain.RuleDefinitions))
	for _, def := range domain.RuleDefinitions {
		cfg, ok := rules[def.Key]
		require.True(t, ok, "manca la regola %s", def.Key)
		assert.Equal(t, def.DefaultMode, cfg.Mode)
		if def.HasValue {
			require.NotNil(t, cfg.Value)
			assert.Equal(t, def.DefaultValue, *cfg.Value)
		} else {
			assert.Nil(t, cfg.Value)
		}
	}
}

func TestMergeRulesWithDefaults(t *testing.T) {
	two := 2
	merged := domain.MergeRulesWithDefaults(map[domain.RuleKey]domain.RuleConfig{
		domain.RuleWeeklyCap: {Mode: domain.RuleModeSoft},
		domain.RuleMinSenior: {Mode: domain.RuleModeSoft, Value: &two},
	})

	assert.Equal(t, domain.RuleModeSoft, merged[domain.RuleWeeklyCap].Mode)
	assert.Equal(t, domain.RuleModeSoft, merged[domain.RuleMinSenior].Mode)
	require.NotNil(t, merged[domain.RuleMinSenior].Value)
	assert.Equal(t, 2, *merged[domain.RuleMinSenior].Value)

	// Le regole non indicate restano ai default.
	assert.Equal(t, domain.RuleModeHard, merged[domain.RuleSummerExclusion].Mode)
	assert.Equal(t, domain.RuleModeHard, merged[domain.RuleSpecialRotation].Mode)
}

func TestMergeRulesReinstatesMissingValue(t *testing.T) {
	merged := domain.MergeRulesWithDefaults(map[domain.RuleKey]domain.RuleConfig{
		domain.RuleMinSenior: {Mode: domain.RuleModeOff},
	})

	require.NotNil(t, merged[domain.RuleMinSenior].Value)
	assert.Equal(t, 1, *merged[domain.RuleMinSenior].Value)
	assert.Equal(t, domain.RuleModeOff, merged[domain.RuleMinSenior].Mode)
}

func TestAssignmentIncomplete(t *testing.T) {
	name := "Rossi"
	full := domain.Assignment{Driver: &name, CreditedDriver: &name}
	for i := range full.Crew {
		full.Crew[i] = &name
	}
	assert.False(t, full.Incomplete())

	missingCrew := full
	missingCrew.Crew[3] = nil
	assert.True(t, missingCrew.Incomplete())

	missingDriver := full
	missingDriver.Driver = nil
	assert.True(t, missingDriver.Incomplete())
}
