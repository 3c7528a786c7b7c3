package character

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/ebtoolkit/internal/game/dice"
)

const (
	minStagnantGrowth = 1
	maxStagnantGrowth = 3
)

// GrowthDrivers records the Vitality and IQ a member had at its previous level.
type GrowthDrivers struct {
	Vitality int
	IQ       int
}

// Drivers snapshots the member's current natural Vitality and IQ.
func (pm *PartyMember) Drivers() GrowthDrivers {
	return GrowthDrivers{Vitality: pm.Vitality.Value(), IQ: pm.IQ.Value()}
}

// Leveler applies game-accurate pool growth on top of the estimators.
type Leveler struct {
	roller *dice.Roller
	logger *zap.Logger
}

// NewLeveler returns a Leveler drawing stagnant-growth increments from src.
//
// Precondition: src and logger must be non-nil.
func NewLeveler(src dice.Source, logger *zap.Logger) *Leveler {
	return &Leveler{roller: dice.NewLoggedRoller(src, logger), logger: logger}
}

// NextHPMax returns the HP maximum for the member's next level.
//
// Postcondition: when Vitality equals prev.Vitality the result is HP.Max plus
// a uniform 1-3; otherwise it is the estimate. The result never drops below HP.Max.
func (l *Leveler) NextHPMax(pm *PartyMember, prev GrowthDrivers) int {
	if pm.Vitality.Value() == prev.Vitality {
		return pm.HP.Max + l.roller.Between("hp stagnant growth", minStagnantGrowth, maxStagnantGrowth)
	}
	return max(pm.HP.Max, pm.EstimatedMaxHPOnNewLevel())
}

// NextPPMax returns the PP maximum for the member's next level.
//
// Postcondition: NoPsychicPoints leaves PP.Max unchanged; an unchanged IQ adds
// a uniform 1-3; otherwise the estimate is used. The result never drops below PP.Max.
func (l *Leveler) NextPPMax(pm *PartyMember, prev GrowthDrivers, state PsychicPointsState) int {
	if state == NoPsychicPoints {
		return pm.PP.Max
	}
	if pm.IQ.Value() == prev.IQ {
		return pm.PP.Max + l.roller.Between("pp stagnant growth", minStagnantGrowth, maxStagnantGrowth)
	}
	return max(pm.PP.Max, pm.EstimatedMaxPPOnNewLevel(state))
}

// LevelUp increments Level and raises both pool maxima. Current values are
// left untouched.
//
// Precondition: prev holds the drivers captured at the previous level.
func (l *Leveler) LevelUp(pm *PartyMember, prev GrowthDrivers, state PsychicPointsState) {
	hpMax := l.NextHPMax(pm, prev)
	ppMax := l.NextPPMax(pm, prev, state)
	l.logger.Info("level up",
		zap.String("name", pm.Name),
		zap.Int("level", pm.Level+1),
		zap.Int("hp_max", hpMax),
		zap.Int("pp_max", ppMax),
		zap.Stringer("pp_state", state),
	)
	pm.Level++
	pm.HP.Max = hpMax
	pm.PP.Max = ppMax
}
