package chess

import "golang.org/x/exp/maps"

// A Move is one proposed or applied transition between two squares. Moves are
// values produced by and replayed against boards; they carry no board
// reference of their own.
type Move struct {
	s1       Square
	s2       Square
	piece    Piece
	captured Piece
	promo    Piece
	flags    FlagSet
	san      string
	fen      string
	nag      string
	comments string
	command  map[string]string
}

// S1 returns the origin square of the move.
func (m *Move) S1() Square { return m.s1 }

// S2 returns the destination square of the move.
func (m *Move) S2() Square { return m.s2 }

// Piece returns the moved piece.
func (m *Move) Piece() Piece { return m.piece }

// Captured returns the captured piece, or NoPiece if the move is no capture.
func (m *Move) Captured() Piece { return m.captured }

// Promo returns the promotion piece, or NoPiece if the move is no promotion.
func (m *Move) Promo() Piece { return m.promo }

// HasFlag reports whether the move carries the given attribute.
func (m *Move) HasFlag(f Flag) bool { return m.flags.Has(f) }

// AddFlag adds an attribute to the move. The return value is advisory: it is
// false when the flag is invalid or already set.
func (m *Move) AddFlag(f Flag) bool { return m.flags.Add(f) }

// RemoveFlag removes an attribute from the move. The return value is
// advisory: it is false when the flag was not set.
func (m *Move) RemoveFlag(f Flag) bool { return m.flags.Remove(f) }

// Flags returns the move's attributes in insertion order.
func (m *Move) Flags() []Flag { return m.flags.Flags() }

// SAN returns the move's Standard Algebraic Notation. The string is filled
// in by the board that generated or committed the move and is empty for
// hand-built moves.
func (m *Move) SAN() string { return m.san }

// ResultingFEN returns the FEN of the position after the move. It is only
// populated when the move list was requested with MovesOptions.WithFEN.
func (m *Move) ResultingFEN() string { return m.fen }

// UCI returns the move in UCI notation, e.g. "e2e4" or "e7e8q".
func (m *Move) UCI() string {
	s := m.s1.String() + m.s2.String()
	if m.promo != NoPiece {
		switch m.promo.Type() {
		case Knight:
			s += "n"
		case Bishop:
			s += "b"
		case Rook:
			s += "r"
		case Queen:
			s += "q"
		}
	}
	return s
}

// LAN returns the algebraic square pair, e.g. "e2-e4" or "e4xd5".
func (m *Move) LAN() string {
	sep := "-"
	if m.HasFlag(FlagCapture) || m.HasFlag(FlagEnPassant) {
		sep = "x"
	}
	return m.s1.String() + sep + m.s2.String()
}

// String implements the fmt.Stringer interface and returns the UCI notation.
func (m *Move) String() string { return m.UCI() }

// NAG returns the numeric annotation glyph attached to the move, if any.
func (m *Move) NAG() string { return m.nag }

// SetNAG attaches a numeric annotation glyph to the move.
func (m *Move) SetNAG(nag string) { m.nag = nag }

// Comments returns the comment text attached to the move.
func (m *Move) Comments() string { return m.comments }

// SetComments replaces the comment text attached to the move.
func (m *Move) SetComments(c string) { m.comments = c }

// Command returns the PGN command map attached to the move, e.g. clock
// annotations recorded by an external clock component.
func (m *Move) Command() map[string]string { return m.command }

// AttachCommand merges the given command map into the move's commands.
func (m *Move) AttachCommand(cmd map[string]string) {
	if len(cmd) == 0 {
		return
	}
	if m.command == nil {
		m.command = make(map[string]string, len(cmd))
	}
	maps.Copy(m.command, cmd)
}

// equalTo reports whether two moves describe the same transition. Flag sets
// and annotations are not compared.
func (m *Move) equalTo(other *Move) bool {
	return m.s1 == other.s1 && m.s2 == other.s2 && m.promo == other.promo
}

// Clone returns a deep copy of the move.
func (m *Move) Clone() *Move {
	clone := *m
	clone.flags = m.flags.copy()
	if m.command != nil {
		clone.command = make(map[string]string, len(m.command))
		maps.Copy(clone.command, m.command)
	}
	return &clone
}
