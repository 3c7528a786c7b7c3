package character

import (
	"fmt"
	"strings"
)

// PermanentStatusEffect is a status that persists after battle.
type PermanentStatusEffect uint8

// Permanent status values, in save-record order.
const (
	// PermanentNormal means no lasting ailment.
	PermanentNormal PermanentStatusEffect = iota
	// Unconscious members cannot act until revived.
	Unconscious
	// Diamondized members are turned to diamond.
	Diamondized
	// Paralyzed members can only use items.
	Paralyzed
	// Nauseous members lose HP and may skip turns.
	Nauseous
	// Poisoned members lose HP each turn.
	Poisoned
	// Sunstroke lowers guts and drains HP.
	Sunstroke
	// Sniffling members may fail to use PSI.
	Sniffling
)

var permanentNames = []string{"normal", "unconscious", "diamondized", "paralyzed", "nauseous", "poisoned", "sunstroke", "sniffling"}

// String returns the lower-case name accepted by ParsePermanentStatusEffect.
//
// Postcondition: an out-of-range value yields "<n>".
func (s PermanentStatusEffect) String() string {
	return enumName(permanentNames, int(s))
}

// ParsePermanentStatusEffect converts a case-insensitive name to a PermanentStatusEffect.
// The empty string parses as PermanentNormal.
func ParsePermanentStatusEffect(name string) (PermanentStatusEffect, error) {
	i, err := parseEnum("permanent status effect", permanentNames, name)
	return PermanentStatusEffect(i), err
}

// PossessionStatus records whether a character is mushroomized or possessed.
type PossessionStatus uint8

// Possession status values, in save-record order.
const (
	// NotPossessed is the default state.
	NotPossessed PossessionStatus = iota
	// Mushroomized members have scrambled controls.
	Mushroomized
	// Possessed members are followed by a tiny lil' ghost.
	Possessed
)

var possessionNames = []string{"none", "mushroomized", "possessed"}

// String returns the lower-case name accepted by ParsePossessionStatus.
func (s PossessionStatus) String() string {
	return enumName(possessionNames, int(s))
}

// ParsePossessionStatus converts a case-insensitive name to a PossessionStatus.
// The empty string parses as NotPossessed.
func ParsePossessionStatus(name string) (PossessionStatus, error) {
	i, err := parseEnum("possession status", possessionNames, name)
	return PossessionStatus(i), err
}

// BattleStatusEffect is a status that clears when battle ends.
type BattleStatusEffect uint8

// Battle status values, in save-record order.
const (
	// BattleNormal means no in-battle ailment.
	BattleNormal BattleStatusEffect = iota
	// Asleep members skip turns until they wake.
	Asleep
	// Crying members miss more often.
	Crying
	// Immobilized members cannot move.
	Immobilized
	// Solidified members skip turns.
	Solidified
)

var battleNames = []string{"normal", "asleep", "crying", "immobilized", "solidified"}

// String returns the lower-case name accepted by ParseBattleStatusEffect.
func (s BattleStatusEffect) String() string {
	return enumName(battleNames, int(s))
}

// ParseBattleStatusEffect converts a case-insensitive name to a BattleStatusEffect.
// The empty string parses as BattleNormal.
func ParseBattleStatusEffect(name string) (BattleStatusEffect, error) {
	i, err := parseEnum("battle status effect", battleNames, name)
	return BattleStatusEffect(i), err
}

func enumName(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("<%d>", i)
}

func parseEnum(kind string, names []string, name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (valid: %s)", kind, name, strings.Join(names, ", "))
}
