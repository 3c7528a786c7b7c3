package character

import (
	"fmt"
	"strings"
)

// VitalityMultiplier scales Vitality into the estimated HP maximum after a level-up.
const VitalityMultiplier = 15

// PsychicPointsState selects the PP growth rate. Its numeric value is the IQ multiplier.
type PsychicPointsState uint16

const (
	// NoPsychicPoints is used by members without PSI; they never gain PP.
	NoPsychicPoints PsychicPointsState = 0
	// Normal is the growth rate of PSI users.
	Normal PsychicPointsState = 5
	// NessPostMagicant applies to Ness once Magicant is complete.
	NessPostMagicant PsychicPointsState = 10
)

// String returns the name accepted by ParsePsychicPointsState.
func (s PsychicPointsState) String() string {
	switch s {
	case NoPsychicPoints:
		return "none"
	case Normal:
		return "normal"
	case NessPostMagicant:
		return "ness_post_magicant"
	}
	return "<unknown>"
}

// ParsePsychicPointsState converts a name produced by String back to a state.
// The empty string parses as Normal.
func ParsePsychicPointsState(name string) (PsychicPointsState, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal":
		return Normal, nil
	case "none":
		return NoPsychicPoints, nil
	case "ness_post_magicant":
		return NessPostMagicant, nil
	}
	return 0, fmt.Errorf("unknown psychic points state %q", name)
}

// EstimateNewHPMax returns the expected HP maximum after the next level-up.
//
// The estimate is wrong when Vitality did not change since the previous level;
// the game then adds a random 1-3 to the maximum instead (see Leveler).
// The result is not checked against the 16-bit HP field.
func EstimateNewHPMax(vitality int) int {
	return vitality * VitalityMultiplier
}

// EstimateNewPPMax returns the expected PP maximum after the next level-up.
//
// As with EstimateNewHPMax, the estimate does not hold when IQ is unchanged
// since the previous level. NoPsychicPoints always yields 0.
func EstimateNewPPMax(iq int, state PsychicPointsState) int {
	return iq * int(state)
}

// EstimatedMaxHPOnNewLevel applies EstimateNewHPMax to the member's natural Vitality.
func (pm *PartyMember) EstimatedMaxHPOnNewLevel() int {
	return EstimateNewHPMax(pm.Vitality.Value())
}

// EstimatedMaxPPOnNewLevel applies EstimateNewPPMax to the member's natural IQ.
func (pm *PartyMember) EstimatedMaxPPOnNewLevel(state PsychicPointsState) int {
	return EstimateNewPPMax(pm.IQ.Value(), state)
}
