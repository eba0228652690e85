package chess

import "strings"

// A Flag is a single move attribute.
type Flag uint8

const (
	// FlagCapture marks a move that captures a piece.
	FlagCapture Flag = iota + 1
	// FlagDoubleStep marks a pawn double advance from its starting rank.
	FlagDoubleStep
	// FlagEnPassant marks an en passant capture.
	FlagEnPassant
	// FlagPromotion marks a pawn promotion.
	FlagPromotion
	// FlagKingSideCastle marks king side castling.
	FlagKingSideCastle
	// FlagQueenSideCastle marks queen side castling.
	FlagQueenSideCastle
	// FlagCheck marks a move that puts the opponent in check.
	FlagCheck
	// FlagCheckmate marks a move that checkmates the opponent.
	FlagCheckmate
	// FlagInCheck marks an illegal move that leaves the mover's own
	// king in an existing check.
	FlagInCheck
	// FlagPinned marks an illegal move that exposes the mover's own
	// king to a new attack.
	FlagPinned
	// FlagBlocked marks a pseudo-move onto a square occupied by one of
	// the mover's own pieces.
	FlagBlocked

	flagMax = FlagBlocked
)

var flagNames = [...]string{"", "capture", "doubleStep", "enPassant", "promotion",
	"kingSideCastle", "queenSideCastle", "check", "checkmate", "inCheck", "pinned", "blocked"}

// Valid reports whether the flag is one of the defined attributes.
func (f Flag) Valid() bool {
	return f >= FlagCapture && f <= flagMax
}

// String implements the fmt.Stringer interface.
func (f Flag) String() string {
	if !f.Valid() {
		return "invalid"
	}
	return flagNames[f]
}

// A FlagSet is a small insertion-ordered set of move attributes. Only
// membership is meaningful; the order is preserved for stable formatting.
type FlagSet struct {
	items []Flag
}

// Add inserts the flag into the set. It returns false without modifying the
// set when the flag is invalid or already present.
func (fs *FlagSet) Add(f Flag) bool {
	if !f.Valid() || fs.Has(f) {
		return false
	}
	fs.items = append(fs.items, f)
	return true
}

// Remove deletes the flag from the set. It returns false when the flag was
// not present.
func (fs *FlagSet) Remove(f Flag) bool {
	for i, item := range fs.items {
		if item == f {
			fs.items = append(fs.items[:i], fs.items[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether the flag is in the set.
func (fs *FlagSet) Has(f Flag) bool {
	for _, item := range fs.items {
		if item == f {
			return true
		}
	}
	return false
}

// Len returns the number of flags in the set.
func (fs *FlagSet) Len() int {
	return len(fs.items)
}

// Flags returns the flags in insertion order.
func (fs *FlagSet) Flags() []Flag {
	return append([]Flag(nil), fs.items...)
}

// String implements the fmt.Stringer interface.
func (fs *FlagSet) String() string {
	names := make([]string, len(fs.items))
	for i, f := range fs.items {
		names[i] = f.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

func (fs *FlagSet) copy() FlagSet {
	return FlagSet{items: append([]Flag(nil), fs.items...)}
}
