package character

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ebtoolkit/internal/game/stat"
	"github.com/cory-johannsen/ebtoolkit/internal/game/text"
	"github.com/cory-johannsen/ebtoolkit/internal/savefile/binio"
)

// ErrNotYetEncodable is matched by every *UnsupportedFieldError.
var ErrNotYetEncodable = errors.New("party member record is not yet encodable")

// UnsupportedFields lists the record fields the model cannot represent yet.
var UnsupportedFields = []string{"shield", "weaknesses", "miss rates", "permanent boosts"}

// UnsupportedFieldError is returned after every representable field has been
// written, because the remainder of the record cannot be produced.
type UnsupportedFieldError struct {
	Fields []string
}

// Error implements error.
func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrNotYetEncodable, strings.Join(e.Fields, ", "))
}

// Is reports whether target is ErrNotYetEncodable.
func (e *UnsupportedFieldError) Is(target error) bool {
	return target == ErrNotYetEncodable
}

// RecordEncoder writes party member save records.
//
// A RecordEncoder holds no per-record state and may be shared across goroutines.
type RecordEncoder struct {
	names  text.NameEncoder
	logger *zap.Logger
}

// NewRecordEncoder returns a RecordEncoder using names for the name field.
//
// Precondition: names and logger must be non-nil.
func NewRecordEncoder(names text.NameEncoder, logger *zap.Logger) *RecordEncoder {
	return &RecordEncoder{names: names, logger: logger}
}

// Encode writes pm to w in save-record order. Multi-byte values are little-endian.
//
//	name (5) level (2) experience (4) hp.max (2) pp.max (2)
//	permanent status (1) possession (1) battle status (1)
//	feeling strange (1) can't concentrate (1) homesick (1)
//	offense defense speed guts luck vitality iq (1 each)
//	inventory (14) hp (4) pp (4)
//
// The pool maxima appear twice, once alone and once with the full pool; the
// game's layout requires both.
//
// Postcondition: a sub-encoder failure aborts immediately and leaves w
// partially written. When every field above is written the call still returns
// *UnsupportedFieldError. w is never closed or retained.
func (e *RecordEncoder) Encode(w io.Writer, pm *PartyMember) error {
	bw := binio.NewWriter(w)

	name, err := e.names.EncodePadded(pm.Name, NameWidth)
	if err != nil {
		return fmt.Errorf("encoding name: %w", err)
	}
	if err := bw.Bytes("name", name); err != nil {
		return err
	}
	if err := bw.U16("level", pm.Level); err != nil {
		return err
	}
	if err := bw.U32("experience", pm.Experience); err != nil {
		return err
	}
	if err := bw.U16("hp max", pm.HP.Max); err != nil {
		return err
	}
	if err := bw.U16("pp max", pm.PP.Max); err != nil {
		return err
	}
	if err := bw.U8("permanent status effect", int(pm.PermanentStatusEffect)); err != nil {
		return err
	}
	if err := bw.U8("possession status", int(pm.PossessionStatus)); err != nil {
		return err
	}
	if err := bw.U8("battle status effect", int(pm.BattleStatusEffect)); err != nil {
		return err
	}
	if err := bw.Bool("feeling strange", pm.FeelingStrange); err != nil {
		return err
	}
	if err := bw.U8("can't concentrate turns", pm.CantConcentrateTurns); err != nil {
		return err
	}
	if err := bw.Bool("homesick", pm.Homesick); err != nil {
		return err
	}
	// The shield value belongs here once the model carries it.

	subs := []struct {
		field string
		enc   stat.Encoder
	}{
		{"offense", pm.Offense},
		{"defense", pm.Defense},
		{"speed", pm.Speed},
		{"guts", pm.Guts},
		{"luck", pm.Luck},
		{"vitality", pm.Vitality},
		{"iq", pm.IQ},
		{"inventory", &pm.Inventory},
		{"hp", pm.HP},
		{"pp", pm.PP},
	}
	for _, s := range subs {
		if err := s.enc.Encode(w); err != nil {
			return fmt.Errorf("encoding %s: %w", s.field, err)
		}
	}

	e.logger.Debug("party member fields written",
		zap.String("name", pm.Name),
		zap.Strings("unsupported", UnsupportedFields),
	)
	return &UnsupportedFieldError{Fields: append([]string(nil), UnsupportedFields...)}
}

// Encode writes the member's record using the plain text name encoding.
// It always returns an error until the unsupported fields are modeled; see
// RecordEncoder.Encode.
func (pm *PartyMember) Encode(w io.Writer) error {
	return NewRecordEncoder(text.PlainText, zap.NewNop()).Encode(w, pm)
}

var _ stat.Encoder = (*PartyMember)(nil)
