package inventory

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cory-johannsen/ebtoolkit/internal/savefile/binio"
)

const (
	// Slots is the number of item slots each party member carries.
	Slots = 14
	// MaxItemID is the largest item ID representable in a slot.
	MaxItemID = 0xFF
	// Empty marks an unused slot.
	Empty = 0
)

// PlayerInventory is the fixed-size item list owned by a single party member.
// The zero value is an empty inventory.
type PlayerInventory struct {
	slots [Slots]int
}

// Add places itemID in the first empty slot and returns that slot index.
//
// Precondition: 1 <= itemID <= MaxItemID.
// Postcondition: on error the inventory is unchanged.
func (p *PlayerInventory) Add(itemID int) (int, error) {
	if itemID < 1 || itemID > MaxItemID {
		return -1, fmt.Errorf("inventory: item ID %d out of range 1-%d", itemID, MaxItemID)
	}
	for i, id := range p.slots {
		if id == Empty {
			p.slots[i] = itemID
			return i, nil
		}
	}
	return -1, fmt.Errorf("inventory: all %d slots are full", Slots)
}

// Remove clears slot and shifts the following items up, as the game does.
//
// Precondition: 0 <= slot < Slots and the slot is occupied.
func (p *PlayerInventory) Remove(slot int) error {
	if slot < 0 || slot >= Slots {
		return fmt.Errorf("inventory: slot %d out of range", slot)
	}
	if p.slots[slot] == Empty {
		return fmt.Errorf("inventory: slot %d is empty", slot)
	}
	copy(p.slots[slot:], p.slots[slot+1:])
	p.slots[Slots-1] = Empty
	return nil
}

// Slot returns the item ID held in slot, or Empty.
func (p *PlayerInventory) Slot(slot int) int {
	if slot < 0 || slot >= Slots {
		return Empty
	}
	return p.slots[slot]
}

// Items returns the occupied item IDs in slot order.
//
// Postcondition: returned slice is a copy.
func (p *PlayerInventory) Items() []int {
	out := make([]int, 0, Slots)
	for _, id := range p.slots {
		if id != Empty {
			out = append(out, id)
		}
	}
	return out
}

// UsedSlots returns the number of occupied slots.
func (p *PlayerInventory) UsedSlots() int {
	return len(p.Items())
}

// Encode writes all Slots item IDs, one byte each, in slot order.
func (p *PlayerInventory) Encode(w io.Writer) error {
	bw := binio.NewWriter(w)
	for i, id := range p.slots {
		if err := bw.U8("slot "+strconv.Itoa(i), id); err != nil {
			return err
		}
	}
	return nil
}
