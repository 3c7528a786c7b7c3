package stat_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cory-johannsen/ebtoolkit/internal/game/stat"
	"github.com/cory-johannsen/ebtoolkit/internal/savefile/binio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRollingStat_EncodeCurrentThenMax(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, stat.RollingStat{Current: 0x0102, Max: 0x0304}.Encode(&buf))
	assert.Equal(t, []byte{0x02, 0x01, 0x04, 0x03}, buf.Bytes())
}

func TestRollingStat_EncodeDoesNotRecompute(t *testing.T) {
	// Current above Max violates the domain invariant but is written as found.
	var buf bytes.Buffer
	require.NoError(t, stat.RollingStat{Current: 90, Max: 30}.Encode(&buf))
	assert.Equal(t, []byte{90, 0, 30, 0}, buf.Bytes())
}

func TestRollingStat_EncodeOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	err := stat.RollingStat{Current: 10, Max: 70000}.Encode(&buf)
	var re *binio.RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "max", re.Field)
	assert.Equal(t, 2, buf.Len(), "current is written before max fails")
}

func TestRollingStat_ValidAndRestore(t *testing.T) {
	r := stat.RollingStat{Current: 5, Max: 40}
	assert.True(t, r.Valid())
	r.Restore()
	assert.Equal(t, 40, r.Current)
	assert.False(t, stat.RollingStat{Current: 41, Max: 40}.Valid())
	assert.False(t, stat.RollingStat{Current: -1, Max: 40}.Valid())
	assert.Equal(t, stat.RollingStat{Current: 12, Max: 12}, stat.NewRollingStat(12))
}

func TestEquipmentChangeableStat_Encode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, stat.New(200).Encode(&buf))
	assert.Equal(t, []byte{200}, buf.Bytes())

	buf.Reset()
	err := stat.New(256).Encode(&buf)
	var re *binio.RangeError
	require.True(t, errors.As(err, &re))
	assert.Zero(t, buf.Len())
}

func TestEquipmentChangeableStat_EncodeUsesBase(t *testing.T) {
	s := stat.EquipmentChangeableStat{Base: 10, Modifier: stat.Bonus(25)}
	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))
	assert.Equal(t, []byte{10}, buf.Bytes())
	assert.Equal(t, 10, s.Value())
	assert.Equal(t, 35, s.Effective())
}

func TestEquipmentChangeableStat_EffectiveClamps(t *testing.T) {
	assert.Equal(t, 255, stat.EquipmentChangeableStat{Base: 250, Modifier: stat.Bonus(40)}.Effective())
	assert.Equal(t, 0, stat.EquipmentChangeableStat{Base: 3, Modifier: stat.Bonus(-9)}.Effective())
	assert.Equal(t, 7, stat.New(7).Effective())
}

// Property: an in-range RollingStat always encodes to 4 bytes matching its fields.
func TestRollingStat_Encode_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		max := rapid.IntRange(0, 0xFFFF).Draw(rt, "max")
		cur := rapid.IntRange(0, max).Draw(rt, "current")
		var buf bytes.Buffer
		if err := (stat.RollingStat{Current: cur, Max: max}).Encode(&buf); err != nil {
			rt.Fatal(err)
		}
		want := []byte{byte(cur), byte(cur >> 8), byte(max), byte(max >> 8)}
		if !bytes.Equal(buf.Bytes(), want) {
			rt.Fatalf("encoded %v, want %v", buf.Bytes(), want)
		}
	})
}
