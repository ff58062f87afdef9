package types

// Register represents an 8-bit register of the CPU. The CPU has 8
// registers: A, B, C, D, E, H, L, and F. The F register is special
// in that it is used to hold the flags, and only the upper 4 bits
// are used.
type Register = uint8
