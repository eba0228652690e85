package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// SetupOptions configures position loading during interactive editing.
type SetupOptions struct {
	// AutoFix strips minor structural issues (stale castling rights, an
	// impossible en passant target) instead of failing.
	AutoFix bool
}

// FEN returns the full FEN of the position.
func (b *Board) FEN() string {
	return encodeFEN(b)
}

// PlacementFEN returns the placement-only form: piece placement and side to
// move, without castling, en passant and the counters.
func (b *Board) PlacementFEN() string {
	var sb strings.Builder
	writePlacement(&sb, b)
	sb.WriteByte(' ')
	sb.WriteString(b.turn.String())
	return sb.String()
}

// encodeFEN serializes the position by walking the 64 real squares rank by
// rank with run-length-encoded empty counts, then the remaining fields.
func encodeFEN(b *Board) string {
	var sb strings.Builder
	writePlacement(&sb, b)
	fmt.Fprintf(&sb, " %s %s %s %d %d", b.turn, castlingFEN(b), epFEN(b), b.halfMove, b.moveNum)
	return sb.String()
}

func writePlacement(sb *strings.Builder, b *Board) {
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file <= 7; file++ {
			p := b.squares[NewSquare(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank != 0 {
			sb.WriteByte('/')
		}
	}
}

func castlingFEN(b *Board) string {
	var sb strings.Builder
	if b.castling[sideIdx(White)].HasKingSide() {
		sb.WriteByte('K')
	}
	if b.castling[sideIdx(White)].HasQueenSide() {
		sb.WriteByte('Q')
	}
	if b.castling[sideIdx(Black)].HasKingSide() {
		sb.WriteByte('k')
	}
	if b.castling[sideIdx(Black)].HasQueenSide() {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func epFEN(b *Board) string {
	if b.ep == NoSquare {
		return "-"
	}
	return b.ep.String()
}

// decodeFEN parses a FEN string into a fresh board. Validation happens
// before any board is returned, so a parse error never yields a partially
// populated position. Both the full six-field form and the placement-only
// two-field form are accepted.
func decodeFEN(fen string, opts *SetupOptions) (*Board, error) {
	if opts == nil {
		opts = &SetupOptions{}
	}
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 6 && len(fields) != 2 {
		return nil, fmt.Errorf("%w: expected 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	b := &Board{
		id:          0,
		parentBoard: -1,
		cursor:      -1,
		ep:          NoSquare,
		kings:       [2]Square{NoSquare, NoSquare},
		halfMove:    0,
		moveNum:     1,
	}

	if err := parsePlacement(b, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	if len(fields) == 6 {
		if err := parseCastling(b, fields[2], opts); err != nil {
			return nil, err
		}
		if err := parseEnPassant(b, fields[3], opts); err != nil {
			return nil, err
		}
		halfMove, err := strconv.Atoi(fields[4])
		if err != nil || halfMove < 0 {
			return nil, fmt.Errorf("%w: bad half-move clock %q", ErrInvalidFEN, fields[4])
		}
		moveNum, err := strconv.Atoi(fields[5])
		if err != nil || moveNum < 1 {
			return nil, fmt.Errorf("%w: bad move number %q", ErrInvalidFEN, fields[5])
		}
		b.halfMove = halfMove
		b.moveNum = moveNum
	}

	b.plyOffset = (b.moveNum - 1) * 2
	if b.turn == Black {
		b.plyOffset++
	}
	b.repetition = map[string]int{b.repetitionKey(): 1}
	return b, nil
}

func parsePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	var kings [2]int
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p := pieceFromFENChar(c)
			if p == NoPiece || file > 7 {
				return fmt.Errorf("%w: bad rank %q", ErrInvalidFEN, rankStr)
			}
			sq := NewSquare(file, rank)
			if p.Type() == Pawn && (rank == 0 || rank == 7) {
				return fmt.Errorf("%w: pawn on rank %d", ErrInvalidFEN, rank+1)
			}
			if p.Type() == King {
				kings[sideIdx(p.Color())]++
				b.kings[sideIdx(p.Color())] = sq
			}
			b.squares[sq] = p
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %q does not cover 8 files", ErrInvalidFEN, rankStr)
		}
	}
	if kings[0] != 1 || kings[1] != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}
	return nil
}

func parseCastling(b *Board, field string, opts *SetupOptions) error {
	if field == "-" {
		return nil
	}
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case 'K':
			b.castling[sideIdx(White)] |= CastleKingSide
		case 'Q':
			b.castling[sideIdx(White)] |= CastleQueenSide
		case 'k':
			b.castling[sideIdx(Black)] |= CastleKingSide
		case 'q':
			b.castling[sideIdx(Black)] |= CastleQueenSide
		default:
			return fmt.Errorf("%w: bad castling field %q", ErrInvalidFEN, field)
		}
	}
	stale := staleCastlingRights(b)
	if stale[0] == 0 && stale[1] == 0 {
		return nil
	}
	if !opts.AutoFix {
		return fmt.Errorf("%w: castling rights without matching king and rook", ErrInvalidFEN)
	}
	b.castling[0] &^= stale[0]
	b.castling[1] &^= stale[1]
	return nil
}

// staleCastlingRights returns the rights not backed by a king and rook on
// their home squares.
func staleCastlingRights(b *Board) [2]CastleRights {
	var stale [2]CastleRights
	check := func(c Color, kingHome, ksRook, qsRook Square) {
		i := sideIdx(c)
		if b.squares[kingHome] != NewPiece(c, King) {
			stale[i] = b.castling[i]
			return
		}
		if b.castling[i].HasKingSide() && b.squares[ksRook] != NewPiece(c, Rook) {
			stale[i] |= CastleKingSide
		}
		if b.castling[i].HasQueenSide() && b.squares[qsRook] != NewPiece(c, Rook) {
			stale[i] |= CastleQueenSide
		}
	}
	check(White, E1, whiteKSRookHome, whiteQSRookHome)
	check(Black, E8, blackKSRookHome, blackQSRookHome)
	return stale
}

func parseEnPassant(b *Board, field string, opts *SetupOptions) error {
	if field == "-" {
		return nil
	}
	sq, err := ParseSquare(field)
	if err != nil {
		return fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, field)
	}
	wantRank := 2
	if b.turn == White {
		wantRank = 5
	}
	if sq.Rank() != wantRank {
		if opts.AutoFix {
			return nil
		}
		return fmt.Errorf("%w: en passant square %s unreachable for side to move", ErrInvalidFEN, sq)
	}
	b.ep = sq
	return nil
}
