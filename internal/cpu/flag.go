package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Flags represents the F register of the CPU. Only the upper
// nibble of F holds meaningful state, laid out as "ZNHC 0000":
//
//	Z - Zero. The result of the last operation was zero.
//	N - Subtract. The last operation was a subtraction.
//	H - Half carry. Carry out of (or borrow into) bit 3.
//	C - Carry. Carry out of bit 7, or a borrow.
//
// The lower nibble always reads back as 0.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// DecodeFlags unpacks the given byte into a Flags value. Each flag
// is set if its bit is set in b, bits 0-3 are ignored.
func DecodeFlags(b uint8) Flags {
	return Flags{
		Zero:      bits.Test(b, FlagZero),
		Subtract:  bits.Test(b, FlagSubtract),
		HalfCarry: bits.Test(b, FlagHalfCarry),
		Carry:     bits.Test(b, FlagCarry),
	}
}

// Encode packs the flags into their byte representation.
func (f Flags) Encode() uint8 {
	var b uint8
	if f.Zero {
		b = bits.Set(b, FlagZero)
	}
	if f.Subtract {
		b = bits.Set(b, FlagSubtract)
	}
	if f.HalfCarry {
		b = bits.Set(b, FlagHalfCarry)
	}
	if f.Carry {
		b = bits.Set(b, FlagCarry)
	}
	return b
}

// Test returns true if the given flag is set.
func (f Flags) Test(flag Flag) bool {
	return bits.Test(f.Encode(), flag)
}

// Set sets the given flag to v. Positions outside
// of the upper nibble are ignored.
func (f *Flags) Set(flag Flag, v bool) {
	switch flag {
	case FlagZero:
		f.Zero = v
	case FlagSubtract:
		f.Subtract = v
	case FlagHalfCarry:
		f.HalfCarry = v
	case FlagCarry:
		f.Carry = v
	}
}

// String returns the flags in "ZNHC" form, with a '-'
// in place of every flag that is not set.
func (f Flags) String() string {
	s := []byte("----")
	for i, c := range []byte("ZNHC") {
		if f.Test(FlagZero - uint8(i)) {
			s[i] = c
		}
	}
	return string(s)
}
