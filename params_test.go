package xcsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParametersValidates(t *testing.T) {
	p := DefaultParameters(2, 1, 1)
	assert.NoError(t, p.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(p *Parameters)
	}{
		{"pop size", func(p *Parameters) { p.PopSize = 0 }},
		{"x dim", func(p *Parameters) { p.XDim = 0 }},
		{"y dim", func(p *Parameters) { p.YDim = 0 }},
		{"n actions", func(p *Parameters) { p.NActions = 0 }},
		{"alpha", func(p *Parameters) { p.Alpha = 0 }},
		{"beta", func(p *Parameters) { p.Beta = 1.5 }},
		{"eps0", func(p *Parameters) { p.Eps0 = 0 }},
		{"p crossover", func(p *Parameters) { p.PCrossover = 1.5 }},
		{"lambda", func(p *Parameters) { p.Lambda = 0 }},
		{"ea select size", func(p *Parameters) { p.EASelectSize = 0 }},
		{"theta del", func(p *Parameters) { p.ThetaDel = -1 }},
		{"delta", func(p *Parameters) { p.Delta = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParameters(2, 1, 1)
			c.mut(p)
			err := p.Validate()
			assert.Error(t, err)
			var xerr *Error
			assert.ErrorAs(t, err, &xerr)
			assert.Equal(t, ErrConfiguration, xerr.Category)
		})
	}
}

func TestTournamentSizeRoundsUpWithMinimumOne(t *testing.T) {
	p := DefaultParameters(1, 1, 1)
	p.EASelectSize = 0.1
	assert.Equal(t, 1, p.tournamentSize(1))
	assert.Equal(t, 1, p.tournamentSize(5))
	p.EASelectSize = 0.5
	assert.Equal(t, 3, p.tournamentSize(5))
	assert.Equal(t, 1, p.tournamentSize(1))
}
