package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/utils"
)

// Name identifies an 8-bit register. B through A follow the
// operand encoding used by the instruction set, where index 6
// refers to the memory at (HL) rather than a register.
type Name uint8

const (
	NameB Name = iota
	NameC
	NameD
	NameE
	NameH
	NameL
	nameHL // (HL), not a register
	NameA
	NameF
)

var registerNames = [...]string{"B", "C", "D", "E", "H", "L", "(HL)", "A", "F"}

func (n Name) String() string {
	if int(n) < len(registerNames) {
		return registerNames[n]
	}
	return fmt.Sprintf("Name(%d)", n)
}

// PairName identifies a 16-bit register pair.
type PairName uint8

const (
	PairBC PairName = iota
	PairDE
	PairHL
	PairAF
)

var pairNames = [...]string{"BC", "DE", "HL", "AF"}

func (p PairName) String() string {
	if int(p) < len(pairNames) {
		return pairNames[p]
	}
	return fmt.Sprintf("PairName(%d)", p)
}

// Registers represents the register file of the CPU: the 8-bit
// registers A, B, C, D, E, H, L and the flags register F.
//
// Adjacent registers can be accessed as the 16-bit pairs AF, BC,
// DE and HL, with the first named register as the high byte. The
// pairs are not stored, they are computed on every read and split
// on every write. The zero value is an all-zero register file.
type Registers struct {
	A types.Register
	B types.Register
	C types.Register
	D types.Register
	E types.Register
	H types.Register
	L types.Register
	F Flags
}

// Opt is a function that modifies a Registers instance.
type Opt func(r *Registers)

// WithModel loads the post-boot register values of the
// given model.
func WithModel(m types.Model) Opt {
	return func(r *Registers) {
		v, ok := types.ModelRegisters[m]
		if !ok {
			v = types.ModelRegisters[types.Unset]
		}
		r.A, r.F = v[0], DecodeFlags(v[1])
		r.B, r.C = v[2], v[3]
		r.D, r.E = v[4], v[5]
		r.H, r.L = v[6], v[7]
	}
}

// NewRegisters returns a new register file. Without any
// options every register is zero.
func NewRegisters(opts ...Opt) *Registers {
	r := &Registers{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AF returns the AF register pair. The low byte is the
// encoded flags register, so its lower nibble is always 0.
func (r *Registers) AF() uint16 {
	return utils.BytesToUint16(r.A, r.F.Encode())
}

// SetAF sets the AF register pair. The low byte is decoded
// into the flags register, discarding bits 0-3.
func (r *Registers) SetAF(value uint16) {
	var f uint8
	r.A, f = utils.Uint16ToBytes(value)
	r.F = DecodeFlags(f)
}

// BC returns the BC register pair.
func (r *Registers) BC() uint16 {
	return utils.BytesToUint16(r.B, r.C)
}

// SetBC sets the BC register pair.
func (r *Registers) SetBC(value uint16) {
	r.B, r.C = utils.Uint16ToBytes(value)
}

// DE returns the DE register pair.
func (r *Registers) DE() uint16 {
	return utils.BytesToUint16(r.D, r.E)
}

// SetDE sets the DE register pair.
func (r *Registers) SetDE(value uint16) {
	r.D, r.E = utils.Uint16ToBytes(value)
}

// HL returns the HL register pair.
func (r *Registers) HL() uint16 {
	return utils.BytesToUint16(r.H, r.L)
}

// SetHL sets the HL register pair.
func (r *Registers) SetHL(value uint16) {
	r.H, r.L = utils.Uint16ToBytes(value)
}

// Pair returns the value of the given register pair.
func (r *Registers) Pair(p PairName) uint16 {
	switch p {
	case PairBC:
		return r.BC()
	case PairDE:
		return r.DE()
	case PairHL:
		return r.HL()
	case PairAF:
		return r.AF()
	}
	panic(fmt.Sprintf("invalid register pair: %d", p))
}

// SetPair sets the value of the given register pair.
func (r *Registers) SetPair(p PairName, value uint16) {
	switch p {
	case PairBC:
		r.SetBC(value)
	case PairDE:
		r.SetDE(value)
	case PairHL:
		r.SetHL(value)
	case PairAF:
		r.SetAF(value)
	default:
		panic(fmt.Sprintf("invalid register pair: %d", p))
	}
}

// registerIndex returns a pointer to the raw register
// with the given name.
func (r *Registers) registerIndex(n Name) *types.Register {
	switch n {
	case NameB:
		return &r.B
	case NameC:
		return &r.C
	case NameD:
		return &r.D
	case NameE:
		return &r.E
	case NameH:
		return &r.H
	case NameL:
		return &r.L
	case NameA:
		return &r.A
	}
	panic(fmt.Sprintf("invalid register: %s", n))
}

// Register returns the value of the given 8-bit register. NameF
// returns the encoded flags.
func (r *Registers) Register(n Name) uint8 {
	if n == NameF {
		return r.F.Encode()
	}
	return *r.registerIndex(n)
}

// SetRegister sets the value of the given 8-bit register. NameF
// decodes value into the flags register.
func (r *Registers) SetRegister(n Name, value uint8) {
	if n == NameF {
		r.F = DecodeFlags(value)
		return
	}
	*r.registerIndex(n) = value
}

var _ types.Resettable = (*Registers)(nil)

// Reset clears every register to 0.
func (r *Registers) Reset() {
	*r = Registers{}
}

var _ types.Stater = (*Registers)(nil)

// Load loads the registers from the given state. The state
// must have been written by Save.
func (r *Registers) Load(s *types.State) error {
	a := s.Read8()
	f := s.Read8()
	b, c := s.Read8(), s.Read8()
	d, e := s.Read8(), s.Read8()
	h, l := s.Read8(), s.Read8()
	if err := s.Err(); err != nil {
		return err
	}

	r.A, r.F = a, DecodeFlags(f)
	r.B, r.C = b, c
	r.D, r.E = d, e
	r.H, r.L = h, l
	return nil
}

// Save writes the registers to the given state.
func (r *Registers) Save(s *types.State) {
	s.Write8(r.A)
	s.Write8(r.F.Encode())
	s.Write8(r.B)
	s.Write8(r.C)
	s.Write8(r.D)
	s.Write8(r.E)
	s.Write8(r.H)
	s.Write8(r.L)
}

func (r *Registers) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X [%s]", r.AF(), r.BC(), r.DE(), r.HL(), r.F)
}
