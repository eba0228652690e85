package chess

import "fmt"

// A Square is an index into the padded 8x16 board layout. The low nibble
// holds the file and the high nibble the rank, so a square is on the board
// iff sq&0x88 == 0. The padding makes off-board detection and sliding-ray
// exits a single bitmask test instead of range comparisons.
type Square int

// NoSquare represents the absence of a square, e.g. no en passant target.
const NoSquare Square = -1

const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07
	A2, B2, C2, D2, E2, F2, G2, H2 Square = 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17
	A3, B3, C3, D3, E3, F3, G3, H3 Square = 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27
	A4, B4, C4, D4, E4, F4, G4, H4 Square = 0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37
	A5, B5, C5, D5, E5, F5, G5, H5 Square = 0x40, 0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47
	A6, B6, C6, D6, E6, F6, G6, H6 Square = 0x50, 0x51, 0x52, 0x53, 0x54, 0x55, 0x56, 0x57
	A7, B7, C7, D7, E7, F7, G7, H7 Square = 0x60, 0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x67
	A8, B8, C8, D8, E8, F8, G8, H8 Square = 0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x76, 0x77
)

// boardSize is the number of slots in the padded square table.
const boardSize = 128

// NewSquare returns the square at the given file and rank (both 0 to 7),
// or NoSquare if either is out of range.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank<<4 | file)
}

// Valid reports whether the square is on the board.
func (sq Square) Valid() bool {
	return sq >= 0 && sq&0x88 == 0
}

// File returns the column number of the square, ranging from 0 to 7.
func (sq Square) File() int {
	return int(sq & 15)
}

// Rank returns the row number of the square, ranging from 0 to 7.
func (sq Square) Rank() int {
	return int(sq >> 4)
}

// FileChar returns the file letter, 'a' through 'h'.
func (sq Square) FileChar() byte {
	return byte('a' + sq.File())
}

// RankChar returns the rank digit, '1' through '8'.
func (sq Square) RankChar() byte {
	return byte('1' + sq.Rank())
}

// IsLight reports whether the square is a light square.
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())%2 == 1
}

// String formats the square using algebraic notation, e.g. "e4".
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{sq.FileChar(), sq.RankChar()})
}

// ParseSquare converts a square name such as "e4" into a Square.
func ParseSquare(s string) (Square, error) {
	const squareLen = 2
	if len(s) != squareLen {
		return NoSquare, fmt.Errorf("chess: invalid square name %q", s)
	}
	sq := NewSquare(int(s[0]-'a'), int(s[1]-'1'))
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("chess: invalid square name %q", s)
	}
	return sq, nil
}
