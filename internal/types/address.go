package types

import "strconv"

// BoardID identifies a driver board within a platform layout.
type BoardID int

// DefaultBoard marks an address parsed from a bare index whose board has not
// been completed against the active platform yet.
const DefaultBoard BoardID = -1

// PhysicalAddress is a normalized board/index pair. Two addresses are
// co-located when they share Board.
type PhysicalAddress struct {
	Board BoardID `yaml:"board" cbor:"board"`
	Index int     `yaml:"index" cbor:"index"`
}

func (a PhysicalAddress) IsDefaultBoard() bool {
	return a.Board == DefaultBoard
}

// String renders the address in board-index notation, or as a bare index
// while the board is still the platform default.
func (a PhysicalAddress) String() string {
	if a.IsDefaultBoard() {
		return strconv.Itoa(a.Index)
	}
	return strconv.Itoa(int(a.Board)) + "-" + strconv.Itoa(a.Index)
}
