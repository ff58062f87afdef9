package types

import (
	"encoding/binary"
	"os"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

var (
	// ErrShortState is returned when reading past the end of a State.
	ErrShortState = errors.New("state: unexpected end of data")
	// ErrChecksumMismatch is returned when a state file does not
	// match the checksum it was saved with.
	ErrChecksumMismatch = errors.New("state: checksum mismatch")
)

// checksumSize is the size of the checksum header of a state file.
const checksumSize = 8

// Resettable is an interface that allows an object to be reset.
type Resettable interface {
	Reset() // Reset the state of the object
}

// State holds serialized CPU state. This is used to
// save and load states between runs.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error  // first read error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) error // Load the state of the object
	Save(*State)       // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// StateFromFile reads a state previously written with SaveToFile,
// verifying its checksum.
func StateFromFile(filename string) (*State, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "state: reading file")
	}
	if len(b) < checksumSize {
		return nil, errors.Wrapf(ErrShortState, "state: %s has no checksum", filename)
	}

	s := StateFromBytes(b[checksumSize:])
	if sum := binary.LittleEndian.Uint64(b); sum != s.Checksum() {
		return nil, errors.Wrapf(ErrChecksumMismatch, "state: %s: expected %016x, got %016x", filename, sum, s.Checksum())
	}
	return s, nil
}

// ResetPosition resets the read position and any read
// error, allowing the state to be read from the beginning.
func (s *State) ResetPosition() {
	s.readPosition = 0
	s.err = nil
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// next returns the next n bytes of the state, or nil if fewer than
// n bytes remain. Once a read has failed every following read fails.
func (s *State) next(n int) []byte {
	if s.err != nil {
		return nil
	}
	if len(s.raw)-s.readPosition < n {
		s.err = errors.Wrapf(ErrShortState, "state: reading %d bytes at offset %d of %d", n, s.readPosition, len(s.raw))
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.next(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	if b := s.next(len(p)); b != nil {
		copy(p, b)
	}
}

// Err returns the first error encountered while reading.
func (s *State) Err() error {
	return s.err
}

// Checksum returns the xxhash of the raw state data.
func (s *State) Checksum() uint64 {
	return xxhash.Sum64(s.raw)
}

// SaveToFile writes the state to filename, prefixed with its checksum.
func (s *State) SaveToFile(filename string) error {
	b := make([]byte, checksumSize, checksumSize+len(s.raw))
	binary.LittleEndian.PutUint64(b, s.Checksum())
	if err := os.WriteFile(filename, append(b, s.raw...), 0644); err != nil {
		return errors.Wrap(err, "state: writing file")
	}
	return nil
}

func (s *State) Bytes() []byte {
	return s.raw
}
