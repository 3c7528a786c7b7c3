package binio_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cory-johannsen/ebtoolkit/internal/savefile/binio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWriter_LittleEndianWidths(t *testing.T) {
	var buf bytes.Buffer
	w := binio.NewWriter(&buf)

	require.NoError(t, w.U8("a", 0xAB))
	require.NoError(t, w.U16("b", 0x1234))
	require.NoError(t, w.U32("c", 0x01020304))
	require.NoError(t, w.Bool("d", true))
	require.NoError(t, w.Bool("e", false))
	require.NoError(t, w.Bytes("f", []byte{9, 8}))

	assert.Equal(t, []byte{0xAB, 0x34, 0x12, 0x04, 0x03, 0x02, 0x01, 1, 0, 9, 8}, buf.Bytes())
	assert.Equal(t, buf.Len(), w.Len())
}

func TestWriter_RangeErrorWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	w := binio.NewWriter(&buf)

	err := w.U8("offense", 256)
	require.Error(t, err)
	var re *binio.RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "offense", re.Field)
	assert.Equal(t, int64(256), re.Value)
	assert.Equal(t, 8, re.Bits)

	assert.Error(t, w.U16("hp", -1))
	assert.Error(t, w.U16("hp", 65536))
	assert.Error(t, w.U32("experience", 1<<32))
	assert.Zero(t, buf.Len())
	assert.Zero(t, w.Len())
}

func TestWriter_U32Max(t *testing.T) {
	var buf bytes.Buffer
	w := binio.NewWriter(&buf)
	require.NoError(t, w.U32("experience", 1<<32-1))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, buf.Bytes())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_PropagatesUnderlyingError(t *testing.T) {
	w := binio.NewWriter(failingWriter{})
	assert.EqualError(t, w.U8("level", 1), "disk full")
	assert.ErrorContains(t, w.Bytes("name", []byte{1}), "writing name")
}

// Property: every in-range uint16 is written as exactly two bytes, low byte first.
func TestWriter_U16_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.IntRange(0, 0xFFFF).Draw(rt, "v")
		var buf bytes.Buffer
		if err := binio.NewWriter(&buf).U16("v", v); err != nil {
			rt.Fatal(err)
		}
		if !bytes.Equal(buf.Bytes(), []byte{byte(v), byte(v >> 8)}) {
			rt.Fatalf("U16(%d) wrote %v", v, buf.Bytes())
		}
	})
}
