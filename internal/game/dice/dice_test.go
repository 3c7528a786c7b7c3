package dice_test

import (
	"testing"

	"github.com/cory-johannsen/ebtoolkit/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int { return f.v % n }

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestBetween_Bounds(t *testing.T) {
	assert.Equal(t, 1, dice.Between(fixedSource{0}, 1, 3))
	assert.Equal(t, 3, dice.Between(fixedSource{2}, 1, 3))
	assert.Equal(t, 5, dice.Between(fixedSource{0}, 5, 5))
	assert.Panics(t, func() { dice.Between(fixedSource{0}, 3, 1) })
}

// Property: Between always lands in [lo, hi] using a real source.
func TestBetween_Property(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+50).Draw(rt, "hi")
		v := dice.Between(src, lo, hi)
		if v < lo || v > hi {
			rt.Fatalf("Between(%d, %d) = %d", lo, hi, v)
		}
	})
}

func TestRoller_LogsEachRoll(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(fixedSource{1}, zap.New(core))

	v := r.Between("hp growth", 1, 3)
	assert.Equal(t, 2, v)
	entries := logs.FilterMessage("dice roll").All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "hp growth", ctx["reason"])
		assert.Equal(t, int64(2), ctx["result"])
	}
}
