// Package stat defines the numeric stat value types shared by EarthBound
// characters and their sub-encoders.
package stat

import (
	"io"

	"github.com/cory-johannsen/ebtoolkit/internal/savefile/binio"
)

// Encoder is implemented by any value that can write its own save-record bytes.
type Encoder interface {
	Encode(w io.Writer) error
}

// RollingStat is a capped pool such as HP or PP.
//
// Invariant (not enforced): 0 <= Current <= Max.
type RollingStat struct {
	Current int
	Max     int
}

// NewRollingStat returns a full pool with the given maximum.
//
// Postcondition: Current == Max == maximum.
func NewRollingStat(maximum int) RollingStat {
	return RollingStat{Current: maximum, Max: maximum}
}

// Valid reports whether the pool satisfies 0 <= Current <= Max.
func (r RollingStat) Valid() bool {
	return r.Current >= 0 && r.Current <= r.Max
}

// Restore refills the pool to its maximum.
func (r *RollingStat) Restore() {
	r.Current = r.Max
}

// Encode writes Current then Max, each as an unsigned 16-bit little-endian value.
//
// Postcondition: on success exactly 4 bytes are written; a value outside the
// 16-bit range yields *binio.RangeError.
func (r RollingStat) Encode(w io.Writer) error {
	bw := binio.NewWriter(w)
	if err := bw.U16("current", r.Current); err != nil {
		return err
	}
	return bw.U16("max", r.Max)
}

// Modifier maps a base stat value to its value with equipment applied.
type Modifier func(base int) int

// EquipmentChangeableStat is a stat whose effective value may be changed by
// equipped items. Arithmetic and encoding use Base.
type EquipmentChangeableStat struct {
	Base     int
	Modifier Modifier
}

// New returns a stat with the given base and no equipment modifier.
func New(base int) EquipmentChangeableStat {
	return EquipmentChangeableStat{Base: base}
}

// Value returns the natural (unequipped) value.
func (s EquipmentChangeableStat) Value() int {
	return s.Base
}

// Effective returns the value with the equipment modifier applied, clamped to [0, 255].
func (s EquipmentChangeableStat) Effective() int {
	if s.Modifier == nil {
		return s.Base
	}
	v := s.Modifier(s.Base)
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return v
}

// Encode writes Base as a single unsigned byte.
//
// Postcondition: a Base outside [0, 255] yields *binio.RangeError and nothing is written.
func (s EquipmentChangeableStat) Encode(w io.Writer) error {
	return binio.NewWriter(w).U8("base", s.Base)
}

// Bonus returns a Modifier adding delta to the base value.
func Bonus(delta int) Modifier {
	return func(base int) int { return base + delta }
}
