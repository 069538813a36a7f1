package xcsf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConfigAppliesKnownKeys(t *testing.T) {
	src := strings.NewReader(`
# a comment
[main]
POP_SIZE = 500
THETA_EA: 30
P_CROSSOVER = 0.5
DO_GA_SUBSUMPTION = true
CONDITION_TYPE = 1
`)
	p, err := parseConfig(src, DefaultParameters(1, 1, 2))
	assert.NoError(t, err)
	assert.Equal(t, 500, p.PopSize)
	assert.Equal(t, 30.0, p.ThetaEA)
	assert.Equal(t, 0.5, p.PCrossover)
	assert.True(t, p.DoGASubsumption)
	assert.Equal(t, CondHyperrectangle, p.ConditionType)
}

func TestParseConfigRejectsUnknownKey(t *testing.T) {
	src := strings.NewReader("NOT_A_REAL_KEY = 1\n")
	_, err := parseConfig(src, DefaultParameters(1, 1, 2))
	assert.Error(t, err)
	var xerr *Error
	assert.ErrorAs(t, err, &xerr)
	assert.Equal(t, ErrConfiguration, xerr.Category)
}

func TestParseConfigRejectsMalformedLine(t *testing.T) {
	src := strings.NewReader("this line has no separator\n")
	_, err := parseConfig(src, DefaultParameters(1, 1, 2))
	assert.Error(t, err)
}

func TestParseConfigRejectsInvalidValueType(t *testing.T) {
	src := strings.NewReader("POP_SIZE = not-a-number\n")
	_, err := parseConfig(src, DefaultParameters(1, 1, 2))
	assert.Error(t, err)
}

func TestParseConfigValidatesResultingParameters(t *testing.T) {
	src := strings.NewReader("POP_SIZE = -5\n")
	_, err := parseConfig(src, DefaultParameters(1, 1, 2))
	assert.Error(t, err)
	var xerr *Error
	assert.ErrorAs(t, err, &xerr)
	assert.Equal(t, ErrConfiguration, xerr.Category)
}
