// Package character defines the EarthBound character model, level-up growth
// estimates and the party member save-record encoder.
package character

import (
	"github.com/cory-johannsen/ebtoolkit/internal/game/inventory"
	"github.com/cory-johannsen/ebtoolkit/internal/game/stat"
	"github.com/cory-johannsen/ebtoolkit/internal/game/text"
)

// NameWidth is the fixed byte width of a name in a save record.
const NameWidth = 5

// Character holds the state shared by every EarthBound combatant.
//
// Numeric fields are plain ints; their wire widths are checked when encoding.
type Character struct {
	Name       string
	Level      int
	Experience int64

	HP stat.RollingStat
	PP stat.RollingStat

	PermanentStatusEffect PermanentStatusEffect
	PossessionStatus      PossessionStatus
	BattleStatusEffect    BattleStatusEffect
	FeelingStrange        bool
	CantConcentrateTurns  int
	Homesick              bool

	Offense stat.EquipmentChangeableStat
	Defense stat.EquipmentChangeableStat
	Speed   stat.EquipmentChangeableStat
	Guts    stat.EquipmentChangeableStat
	Luck    stat.EquipmentChangeableStat
}

// NameFits reports whether Name encodes into NameWidth bytes without truncation.
func (c *Character) NameFits() bool {
	return text.Fits(c.Name, NameWidth)
}

// PartyMember is a playable character. Vitality and IQ drive HP and PP growth.
type PartyMember struct {
	Character

	Vitality stat.EquipmentChangeableStat
	IQ       stat.EquipmentChangeableStat

	// Inventory is owned by this member alone.
	Inventory inventory.PlayerInventory
}
