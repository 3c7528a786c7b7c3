package character_test

import (
	"testing"

	"github.com/cory-johannsen/ebtoolkit/internal/game/character"
	"github.com/cory-johannsen/ebtoolkit/internal/game/dice"
	"github.com/cory-johannsen/ebtoolkit/internal/game/stat"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int { return f.v % n }

func newMember(vitality, iq, hpMax, ppMax int) *character.PartyMember {
	pm := &character.PartyMember{Vitality: stat.New(vitality), IQ: stat.New(iq)}
	pm.Name = "Ness"
	pm.Level = 4
	pm.HP = stat.NewRollingStat(hpMax)
	pm.PP = stat.NewRollingStat(ppMax)
	return pm
}

func TestLeveler_ChangedDriversUseEstimate(t *testing.T) {
	l := character.NewLeveler(fixedSource{0}, zap.NewNop())
	pm := newMember(12, 9, 100, 30)
	prev := character.GrowthDrivers{Vitality: 11, IQ: 8}

	assert.Equal(t, 180, l.NextHPMax(pm, prev))
	assert.Equal(t, 45, l.NextPPMax(pm, prev, character.Normal))
}

func TestLeveler_UnchangedDriversAddSmallIncrement(t *testing.T) {
	l := character.NewLeveler(fixedSource{2}, zap.NewNop())
	pm := newMember(12, 9, 100, 30)
	prev := pm.Drivers()

	assert.Equal(t, 103, l.NextHPMax(pm, prev))
	assert.Equal(t, 33, l.NextPPMax(pm, prev, character.Normal))
}

func TestLeveler_NoPsychicPointsKeepsPP(t *testing.T) {
	l := character.NewLeveler(fixedSource{2}, zap.NewNop())
	pm := newMember(12, 40, 100, 0)
	assert.Equal(t, 0, l.NextPPMax(pm, character.GrowthDrivers{IQ: 1}, character.NoPsychicPoints))
	assert.Equal(t, 0, l.NextPPMax(pm, pm.Drivers(), character.NoPsychicPoints))
}

func TestLeveler_NeverLowersMax(t *testing.T) {
	l := character.NewLeveler(fixedSource{0}, zap.NewNop())
	pm := newMember(5, 5, 200, 90)
	prev := character.GrowthDrivers{Vitality: 4, IQ: 4}
	assert.Equal(t, 200, l.NextHPMax(pm, prev))
	assert.Equal(t, 90, l.NextPPMax(pm, prev, character.Normal))
}

func TestLeveler_LevelUpMutatesMaximaOnly(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := character.NewLeveler(fixedSource{0}, zap.New(core))
	pm := newMember(12, 9, 100, 30)
	pm.HP.Current = 60
	prev := character.GrowthDrivers{Vitality: 11, IQ: 8}

	l.LevelUp(pm, prev, character.Normal)

	assert.Equal(t, 5, pm.Level)
	assert.Equal(t, 180, pm.HP.Max)
	assert.Equal(t, 60, pm.HP.Current)
	assert.Equal(t, 45, pm.PP.Max)
	assert.Equal(t, 1, logs.FilterMessage("level up").Len())
}

// Property: stagnant growth always lands in [Max+1, Max+3] with a real source.
func TestLeveler_StagnantGrowth_Property(t *testing.T) {
	l := character.NewLeveler(dice.NewCryptoSource(), zap.NewNop())
	rapid.Check(t, func(rt *rapid.T) {
		vit := rapid.IntRange(0, 255).Draw(rt, "vitality")
		hpMax := rapid.IntRange(1, 999).Draw(rt, "hpMax")
		pm := newMember(vit, 10, hpMax, 10)
		got := l.NextHPMax(pm, pm.Drivers())
		if got < hpMax+1 || got > hpMax+3 {
			rt.Fatalf("NextHPMax = %d, want in [%d, %d]", got, hpMax+1, hpMax+3)
		}
	})
}
