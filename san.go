package chess

import (
	"regexp"
	"strings"
)

// A Notation converts moves to and from a textual representation in the
// context of a board position.
type Notation interface {
	Encode(b *Board, m *Move) string
	Decode(b *Board, s string) (*Move, error)
}

// AlgebraicNotation decodes and encodes moves in Standard Algebraic
// Notation, e.g. "e4", "Nxf3", "O-O", "e8=Q#".
type AlgebraicNotation struct {
	// Permissive additionally accepts over-disambiguated or loosely
	// suffixed input, e.g. "Ng1f3", "0-0" or a bare "e8" promotion.
	Permissive bool
}

// Encode implements the Notation interface.
func (AlgebraicNotation) Encode(b *Board, m *Move) string {
	return encodeSAN(b, m, b.MoveLists(nil).Legal)
}

// Decode implements the Notation interface. It matches the input against
// the legal moves of the position: an exact SAN match first, then a match
// ignoring trailing check, mate and annotation symbols, then, if Permissive
// is set, a pattern-based match. Failure returns a MoveError listing the
// legal alternatives.
func (n AlgebraicNotation) Decode(b *Board, s string) (*Move, error) {
	legal := b.MoveLists(&MovesOptions{WithSAN: true}).Legal

	for _, m := range legal {
		if m.san == s {
			return m.Clone(), nil
		}
	}

	base := strings.TrimRight(s, "+#!?")
	for _, m := range legal {
		if strings.TrimRight(m.san, "+#") == base {
			return m.Clone(), nil
		}
	}

	if n.Permissive {
		if m := permissiveMatch(base, legal); m != nil {
			return m.Clone(), nil
		}
	}

	return nil, &MoveError{Input: s, LegalMoves: legalSANs(legal)}
}

func legalSANs(legal []*Move) []string {
	sans := make([]string, len(legal))
	for i, m := range legal {
		sans[i] = m.san
	}
	return sans
}

var sanPattern = regexp.MustCompile(`^([NBRQK])?([a-h])?([1-8])?(x)?([a-h][1-8])(?:=?([NBRQnbrq]))?$`)

// permissiveMatch matches a loosely written move against the legal set. The
// match must be unique; ambiguous input is rejected.
func permissiveMatch(base string, legal []*Move) *Move {
	if castle := strings.ReplaceAll(base, "0", "O"); castle == "O-O" || castle == "O-O-O" {
		want := FlagKingSideCastle
		if castle == "O-O-O" {
			want = FlagQueenSideCastle
		}
		for _, m := range legal {
			if m.HasFlag(want) {
				return m
			}
		}
		return nil
	}

	parts := sanPattern.FindStringSubmatch(base)
	if parts == nil {
		return nil
	}
	pt := PieceTypeFromString(parts[1])
	if parts[1] == "" {
		pt = Pawn
	}
	dest, err := ParseSquare(parts[5])
	if err != nil {
		return nil
	}
	promo := PieceTypeFromString(strings.ToUpper(parts[6]))

	var matched *Move
	for _, m := range legal {
		if m.s2 != dest || m.piece.Type() != pt {
			continue
		}
		if parts[2] != "" && m.s1.FileChar() != parts[2][0] {
			continue
		}
		if parts[3] != "" && m.s1.RankChar() != parts[3][0] {
			continue
		}
		if m.HasFlag(FlagPromotion) {
			// a bare promotion defaults to the queen
			if promo == NoPieceType && m.promo.Type() != Queen {
				continue
			}
			if promo != NoPieceType && m.promo.Type() != promo {
				continue
			}
		} else if promo != NoPieceType {
			continue
		}
		if matched != nil && !matched.equalTo(m) {
			return nil
		}
		matched = m
	}
	return matched
}

// encodeSAN assembles piece letter, minimal disambiguation, capture marker,
// destination, promotion suffix and check or mate suffix.
func encodeSAN(b *Board, m *Move, legal []*Move) string {
	var suffix string
	if m.HasFlag(FlagCheckmate) {
		suffix = "#"
	} else if m.HasFlag(FlagCheck) {
		suffix = "+"
	}
	if m.HasFlag(FlagKingSideCastle) {
		return "O-O" + suffix
	}
	if m.HasFlag(FlagQueenSideCastle) {
		return "O-O-O" + suffix
	}

	var sb strings.Builder
	capture := m.HasFlag(FlagCapture) || m.HasFlag(FlagEnPassant)
	if m.piece.Type() == Pawn {
		// pawn captures always carry the origin file
		if capture {
			sb.WriteByte(m.s1.FileChar())
		}
	} else {
		sb.WriteString(m.piece.Type().String())
		sb.WriteString(disambiguation(m, legal))
	}
	if capture {
		sb.WriteByte('x')
	}
	sb.WriteString(m.s2.String())
	if m.HasFlag(FlagPromotion) {
		sb.WriteString("=")
		sb.WriteString(m.promo.Type().String())
	}
	sb.WriteString(suffix)
	return sb.String()
}

// disambiguation returns the minimal origin prefix distinguishing the move
// from other legal moves by the same piece type onto the same destination:
// the file letter when no such move shares the origin file, else the rank
// digit, else the full origin square.
func disambiguation(m *Move, legal []*Move) string {
	sameFile, sameRank, any := false, false, false
	for _, o := range legal {
		if o.s1 == m.s1 || o.s2 != m.s2 || o.piece.Type() != m.piece.Type() {
			continue
		}
		any = true
		if o.s1.File() == m.s1.File() {
			sameFile = true
		}
		if o.s1.Rank() == m.s1.Rank() {
			sameRank = true
		}
	}
	switch {
	case !any:
		return ""
	case !sameFile:
		return string(m.s1.FileChar())
	case !sameRank:
		return string(m.s1.RankChar())
	default:
		return m.s1.String()
	}
}

// UCINotation decodes and encodes moves in UCI notation, e.g. "e2e4" or
// "e7e8q".
type UCINotation struct{}

// Encode implements the Notation interface.
func (UCINotation) Encode(_ *Board, m *Move) string {
	return m.UCI()
}

// Decode implements the Notation interface. A promotion move without a
// promotion letter defaults to the queen.
func (UCINotation) Decode(b *Board, s string) (*Move, error) {
	legal := b.MoveLists(&MovesOptions{WithSAN: true}).Legal
	if len(s) == 4 || len(s) == 5 {
		s1, err1 := ParseSquare(s[0:2])
		s2, err2 := ParseSquare(s[2:4])
		if err1 == nil && err2 == nil {
			promo := NoPieceType
			if len(s) == 5 {
				promo = PieceTypeFromString(strings.ToUpper(s[4:5]))
				if promo == NoPieceType {
					return nil, &MoveError{Input: s, LegalMoves: legalSANs(legal)}
				}
			}
			for _, m := range legal {
				if m.s1 != s1 || m.s2 != s2 {
					continue
				}
				if m.HasFlag(FlagPromotion) {
					if promo == NoPieceType && m.promo.Type() != Queen {
						continue
					}
					if promo != NoPieceType && m.promo.Type() != promo {
						continue
					}
				} else if promo != NoPieceType {
					continue
				}
				return m.Clone(), nil
			}
		}
	}
	return nil, &MoveError{Input: s, LegalMoves: legalSANs(legal)}
}
