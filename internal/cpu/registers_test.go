package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/sm83/internal/types"
)

var pairValues = []uint16{0x0000, 0x00FF, 0xFF00, 0xFFFF, 0x1234, 0xABCD}

// rawPairs are the pairs that hold two raw registers.
var rawPairs = []PairName{PairBC, PairDE, PairHL}

func TestRegisters_Pairs(t *testing.T) {
	for _, p := range rawPairs {
		t.Run(p.String(), func(t *testing.T) {
			r := NewRegisters()
			for _, v := range pairValues {
				r.SetPair(p, v)
				assert.Equal(t, v, r.Pair(p), "%s=%04X", p, v)
			}
		})
	}

	t.Run("AF", func(t *testing.T) {
		r := NewRegisters()
		for _, a := range []uint8{0x00, 0x5A, 0xFF} {
			for _, f := range allFlags() {
				r.SetAF(uint16(a)<<8 | uint16(f.Encode()))
				assert.Equal(t, a, uint8(r.AF()>>8))
				assert.Equal(t, f.Encode()&0xF0, uint8(r.AF()&0xF0))
				assert.Zero(t, r.AF()&0x0F)
				assert.Equal(t, f, r.F)
			}
		}
	})

	t.Run("AF lower nibble", func(t *testing.T) {
		r := NewRegisters()
		r.SetAF(0x12FF)
		assert.Equal(t, uint16(0x12F0), r.AF())
		r.SetAF(0x340F)
		assert.Equal(t, uint16(0x3400), r.AF())
		assert.Equal(t, Flags{}, r.F)
	})

	t.Run("high byte first", func(t *testing.T) {
		r := NewRegisters()
		r.SetBC(0x00AB)
		assert.Equal(t, uint8(0x00), r.B)
		assert.Equal(t, uint8(0xAB), r.C)
		assert.Equal(t, uint16(0x00AB), r.BC())

		r.SetDE(0x1234)
		assert.Equal(t, uint8(0x12), r.D)
		assert.Equal(t, uint8(0x34), r.E)

		r.H, r.L = 0xBE, 0xEF
		assert.Equal(t, uint16(0xBEEF), r.HL())

		r.A = 0x42
		r.F = Flags{Zero: true, HalfCarry: true}
		assert.Equal(t, uint16(0x42A0), r.AF())
	})
}

func TestRegisters_Independence(t *testing.T) {
	allPairs := []PairName{PairBC, PairDE, PairHL, PairAF}
	for _, p := range allPairs {
		t.Run(p.String(), func(t *testing.T) {
			r := NewRegisters(WithModel(types.DMGABC))
			before := make(map[PairName]uint16)
			for _, other := range allPairs {
				before[other] = r.Pair(other)
			}

			r.SetPair(p, 0x1234)
			for _, other := range allPairs {
				if other == p {
					continue
				}
				assert.Equal(t, before[other], r.Pair(other), "setting %s changed %s", p, other)
			}
		})
	}
}

func TestRegisters_Register(t *testing.T) {
	names := []Name{NameB, NameC, NameD, NameE, NameH, NameL, NameA}
	t.Run("set", func(t *testing.T) {
		r := NewRegisters()
		for i, n := range names {
			r.SetRegister(n, uint8(i+1))
		}
		assert.Equal(t, Registers{A: 7, B: 1, C: 2, D: 3, E: 4, H: 5, L: 6}, *r)
		for i, n := range names {
			assert.Equal(t, uint8(i+1), r.Register(n), "register %s", n)
		}
	})
	t.Run("F", func(t *testing.T) {
		r := NewRegisters()
		r.SetRegister(NameF, 0xBF)
		assert.Equal(t, uint8(0xB0), r.Register(NameF))
		assert.Equal(t, Flags{Zero: true, HalfCarry: true, Carry: true}, r.F)
	})
	t.Run("invalid", func(t *testing.T) {
		r := NewRegisters()
		assert.Panics(t, func() { r.Register(nameHL) })
		assert.Panics(t, func() { r.SetRegister(Name(9), 0) })
		assert.Panics(t, func() { r.Pair(PairName(4)) })
		assert.Panics(t, func() { r.SetPair(PairName(4), 0) })
	})
	t.Run("names", func(t *testing.T) {
		assert.Equal(t, "A", NameA.String())
		assert.Equal(t, "(HL)", nameHL.String())
		assert.Equal(t, "F", NameF.String())
		assert.Equal(t, "Name(12)", Name(12).String())
		assert.Equal(t, "AF", PairAF.String())
		assert.Equal(t, "PairName(4)", PairName(4).String())
	})
}

func TestRegisters_Model(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		assert.Equal(t, Registers{}, *NewRegisters())
	})
	t.Run("DMG", func(t *testing.T) {
		r := NewRegisters(WithModel(types.DMGABC))
		assert.Equal(t, uint16(0x01B0), r.AF())
		assert.Equal(t, uint16(0x0013), r.BC())
		assert.Equal(t, uint16(0x00D8), r.DE())
		assert.Equal(t, uint16(0x014D), r.HL())
	})
	t.Run("CGB", func(t *testing.T) {
		r := NewRegisters(WithModel(types.CGBABC))
		assert.Equal(t, uint16(0x1180), r.AF())
		assert.Equal(t, uint16(0x0000), r.BC())
		assert.Equal(t, uint16(0x0008), r.DE())
		assert.Equal(t, uint16(0x007C), r.HL())
	})
	t.Run("unknown", func(t *testing.T) {
		assert.Equal(t, NewRegisters(WithModel(types.DMG0)), NewRegisters(WithModel(types.Model(42))))
	})
	t.Run("reset", func(t *testing.T) {
		r := NewRegisters(WithModel(types.SGB))
		r.Reset()
		assert.Equal(t, Registers{}, *r)
	})
}

func TestRegisters_State(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		r := NewRegisters(WithModel(types.DMGABC))
		s := types.NewState()
		r.Save(s)
		assert.Equal(t, []byte{0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D}, s.Bytes())

		loaded := NewRegisters()
		require.NoError(t, loaded.Load(s))
		assert.Equal(t, r, loaded)
	})
	t.Run("flags lower nibble", func(t *testing.T) {
		r := NewRegisters()
		require.NoError(t, r.Load(types.StateFromBytes([]byte{0xAA, 0xFF, 1, 2, 3, 4, 5, 6})))
		assert.Equal(t, uint16(0xAAF0), r.AF())
		assert.Equal(t, uint16(0x0506), r.HL())
	})
	t.Run("short", func(t *testing.T) {
		r := NewRegisters(WithModel(types.DMGABC))
		err := r.Load(types.StateFromBytes([]byte{0xAA, 0xFF, 1}))
		require.ErrorIs(t, err, types.ErrShortState)
		assert.Equal(t, NewRegisters(WithModel(types.DMGABC)), r, "registers changed by failed load")
	})
}

func TestRegisters_String(t *testing.T) {
	r := NewRegisters(WithModel(types.DMGABC))
	assert.Equal(t, "AF=01B0 BC=0013 DE=00D8 HL=014D [Z-HC]", r.String())
}

func BenchmarkRegisters_Pair(b *testing.B) {
	r := NewRegisters()
	r.SetBC(0x1234)

	b.Run("func", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if r.BC() != 0x1234 {
				b.Fatal("unexpected value")
			}
		}
	})
	b.Run("indexed", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if r.Pair(PairBC) != 0x1234 {
				b.Fatal("unexpected value")
			}
		}
	})
}
