package chess

import (
	"fmt"
	"strings"
)

// CastleRights tracks the castling ability of one color.
type CastleRights uint8

const (
	// CastleKingSide is the right to castle king side.
	CastleKingSide CastleRights = 1 << iota
	// CastleQueenSide is the right to castle queen side.
	CastleQueenSide
)

// HasKingSide reports whether the king side right is present.
func (cr CastleRights) HasKingSide() bool { return cr&CastleKingSide != 0 }

// HasQueenSide reports whether the queen side right is present.
func (cr CastleRights) HasQueenSide() bool { return cr&CastleQueenSide != 0 }

// sideIdx maps White and Black onto 0 and 1 for per-color arrays.
func sideIdx(c Color) int { return int(c) - 1 }

// A Turn is one applied move plus the pre-move board metadata required to
// reverse it exactly, without replaying the line from scratch. A Turn also
// owns the boards that branch off at this ply; those children do not own
// the Turn.
type Turn struct {
	move           *Move
	prevRepetition map[string]int
	variations     []int
	ply            int
	prevCastling   [2]CastleRights
	prevKings      [2]Square
	prevEP         Square
	prevHalfMove   int
	prevMoveNum    int
}

// Move returns the move applied by this turn.
func (t *Turn) Move() *Move { return t.move }

// Ply returns the half-move number of this turn, counted from the game start.
func (t *Turn) Ply() int { return t.ply }

// Variations returns the ids of the boards branching off at this turn.
func (t *Turn) Variations() []int {
	return append([]int(nil), t.variations...)
}

// A Board is one line of play: the full position state plus the ordered list
// of applied turns making up the line's local history and a movable selection
// cursor into it. The board's square/state fields always correspond to the
// cursor position.
type Board struct {
	repetition map[string]int
	history    []*Turn
	cache      map[uint8]*MoveList
	squares    [boardSize]Piece
	castling   [2]CastleRights
	kings      [2]Square
	id         int
	turn       Color
	ep         Square
	halfMove   int
	moveNum    int
	plyOffset  int
	cursor     int

	parentBoard     int
	parentBranchIdx int
	continuation    bool
}

// StartingFEN is the FEN of the standard chess starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// StartingBoard returns a board in the standard starting position.
func StartingBoard() *Board {
	b, err := decodeFEN(StartingFEN, nil)
	if err != nil {
		panic(err)
	}
	return b
}

// ID returns the board's stable id within its game tree. The root board has
// id 0; detached scratch boards have id -1.
func (b *Board) ID() int { return b.id }

// Piece returns the piece on the given square, or NoPiece for an empty or
// invalid square.
func (b *Board) Piece(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.squares[sq]
}

// SideToMove returns the color whose turn it is.
func (b *Board) SideToMove() Color { return b.turn }

// CastlingRights returns the castling rights of the given color.
func (b *Board) CastlingRights(c Color) CastleRights {
	if c != White && c != Black {
		return 0
	}
	return b.castling[sideIdx(c)]
}

// EnPassantSquare returns the en passant target square, or NoSquare. It is
// set only immediately after a pawn double advance.
func (b *Board) EnPassantSquare() Square { return b.ep }

// HalfMoveClock returns the number of half-moves since the last pawn move
// or capture.
func (b *Board) HalfMoveClock() int { return b.halfMove }

// MoveNumber returns the full move number.
func (b *Board) MoveNumber() int { return b.moveNum }

// KingSquare returns the cached square of the given color's king.
func (b *Board) KingSquare(c Color) Square {
	if c != White && c != Black {
		return NoSquare
	}
	return b.kings[sideIdx(c)]
}

// History returns the turns of this line in order.
func (b *Board) History() []*Turn {
	return append([]*Turn(nil), b.history...)
}

// Cursor returns the index of the selected turn, or -1 when the board sits
// before its first turn.
func (b *Board) Cursor() int { return b.cursor }

// ParentBoard returns the id of the board this line branches from, or -1
// for the root board.
func (b *Board) ParentBoard() int { return b.parentBoard }

// BranchTurnIndex returns the turn index in the parent at which this line
// branches.
func (b *Board) BranchTurnIndex() int { return b.parentBranchIdx }

// IsContinuation reports whether this line extends past its branch turn
// instead of replacing it.
func (b *Board) IsContinuation() bool { return b.continuation }

// Ply returns the half-move number of the selected turn, or one less than
// the line's first ply when no turn is selected.
func (b *Board) Ply() int { return b.plyOffset + b.cursor }

// invalidate flushes the cached move lists. It is the single choke point
// called by every state mutation.
func (b *Board) invalidate() {
	b.cache = nil
}

// commit applies the move as a new turn at the end of the line and returns
// the created turn. The caller must have validated the move.
func (b *Board) commit(m *Move) *Turn {
	t := &Turn{
		move:         m,
		ply:          b.plyOffset + len(b.history),
		prevCastling: b.castling,
		prevKings:    b.kings,
		prevEP:       b.ep,
		prevHalfMove: b.halfMove,
		prevMoveNum:  b.moveNum,
	}
	b.history = append(b.history, t)
	b.advance(t)
	return t
}

// advance applies the turn's move and updates the repetition counts. When
// the move resets the half-move clock all prior positions become
// unrepeatable, so the counter map is swapped out and parked on the turn
// for restoration on retreat.
func (b *Board) advance(t *Turn) {
	b.applyMove(t.move)
	if b.halfMove == 0 {
		t.prevRepetition = b.repetition
		b.repetition = make(map[string]int)
	}
	b.repetition[b.repetitionKey()]++
	b.cursor++
}

// retreat reverses the selected turn and moves the cursor back.
func (b *Board) retreat() {
	t := b.history[b.cursor]
	key := b.repetitionKey()
	if t.prevRepetition != nil {
		b.repetition = t.prevRepetition
	} else if n := b.repetition[key]; n <= 1 {
		delete(b.repetition, key)
	} else {
		b.repetition[key] = n - 1
	}
	b.revertTurn(t)
	b.cursor--
}

// next advances the cursor by replaying the next turn of the line. It
// returns false when the cursor is already at the end.
func (b *Board) next() bool {
	if b.cursor >= len(b.history)-1 {
		return false
	}
	b.advance(b.history[b.cursor+1])
	return true
}

// prev reverses the selected turn. It returns false when the cursor is
// already before the first turn.
func (b *Board) prev() bool {
	if b.cursor < 0 {
		return false
	}
	b.retreat()
	return true
}

// seek moves the cursor to the given turn index by sequentially replaying
// or reversing single turns. Direct state jumps are not supported; the
// intermediate counters and caches must stay consistent.
func (b *Board) seek(index int) error {
	if index < -1 || index >= len(b.history) {
		return fmt.Errorf("%w: %d on board %d", ErrTurnIndexOutOfRange, index, b.id)
	}
	for b.cursor < index {
		b.next()
	}
	for b.cursor > index {
		b.prev()
	}
	return nil
}

const (
	whiteKSRookHome = H1
	whiteQSRookHome = A1
	blackKSRookHome = H8
	blackQSRookHome = A8
)

// pawnPush returns the square offset of a single pawn advance.
func pawnPush(c Color) Square {
	if c == White {
		return 16
	}
	return -16
}

// pawnStartRank returns the 0-based rank pawns start on.
func pawnStartRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// pawnLastRank returns the 0-based promotion rank.
func pawnLastRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// applyMove mutates the raw board state. Clocks, rights, the en passant
// target, the king cache and the side to move are all updated; history and
// repetition bookkeeping belong to the callers.
func (b *Board) applyMove(m *Move) {
	us := b.turn
	moving := b.squares[m.s1]
	b.squares[m.s1] = NoPiece

	if m.HasFlag(FlagEnPassant) {
		b.squares[m.s2-pawnPush(us)] = NoPiece
	}
	if m.HasFlag(FlagPromotion) && m.promo != NoPiece {
		moving = m.promo
	}
	b.squares[m.s2] = moving

	switch {
	case m.HasFlag(FlagKingSideCastle):
		b.squares[m.s2-1] = b.squares[m.s2+1]
		b.squares[m.s2+1] = NoPiece
	case m.HasFlag(FlagQueenSideCastle):
		b.squares[m.s2+1] = b.squares[m.s2-2]
		b.squares[m.s2-2] = NoPiece
	}

	if moving.Type() == King {
		b.kings[sideIdx(us)] = m.s2
		b.castling[sideIdx(us)] = 0
	}
	b.updateRookRights(m.s1)
	b.updateRookRights(m.s2)

	if m.HasFlag(FlagDoubleStep) {
		b.ep = (m.s1 + m.s2) / 2
	} else {
		b.ep = NoSquare
	}

	if m.piece.Type() == Pawn || m.HasFlag(FlagCapture) || m.HasFlag(FlagEnPassant) {
		b.halfMove = 0
	} else {
		b.halfMove++
	}
	if us == Black {
		b.moveNum++
	}
	b.turn = us.Other()
	b.invalidate()
}

// updateRookRights clears a castling right when its rook's home square is
// vacated or captured onto.
func (b *Board) updateRookRights(sq Square) {
	switch sq {
	case whiteKSRookHome:
		b.castling[sideIdx(White)] &^= CastleKingSide
	case whiteQSRookHome:
		b.castling[sideIdx(White)] &^= CastleQueenSide
	case blackKSRookHome:
		b.castling[sideIdx(Black)] &^= CastleKingSide
	case blackQSRookHome:
		b.castling[sideIdx(Black)] &^= CastleQueenSide
	}
}

// revertTurn restores the exact pre-move state recorded in the turn.
func (b *Board) revertTurn(t *Turn) {
	m := t.move
	mover := b.turn.Other()

	moving := b.squares[m.s2]
	if m.HasFlag(FlagPromotion) {
		moving = m.piece
	}
	b.squares[m.s1] = moving
	b.squares[m.s2] = NoPiece

	switch {
	case m.HasFlag(FlagEnPassant):
		b.squares[m.s2-pawnPush(mover)] = m.captured
	case m.captured != NoPiece:
		b.squares[m.s2] = m.captured
	}

	switch {
	case m.HasFlag(FlagKingSideCastle):
		b.squares[m.s2+1] = b.squares[m.s2-1]
		b.squares[m.s2-1] = NoPiece
	case m.HasFlag(FlagQueenSideCastle):
		b.squares[m.s2-2] = b.squares[m.s2+1]
		b.squares[m.s2+1] = NoPiece
	}

	b.castling = t.prevCastling
	b.kings = t.prevKings
	b.ep = t.prevEP
	b.halfMove = t.prevHalfMove
	b.moveNum = t.prevMoveNum
	b.turn = mover
	b.invalidate()
}

// mock returns a disposable scratch copy of the board state for legality
// probing. The copy is never attached to the game tree and carries no
// history or repetition bookkeeping.
func (b *Board) mock() *Board {
	return &Board{
		squares:     b.squares,
		castling:    b.castling,
		kings:       b.kings,
		turn:        b.turn,
		ep:          b.ep,
		halfMove:    b.halfMove,
		moveNum:     b.moveNum,
		id:          -1,
		parentBoard: -1,
		cursor:      -1,
	}
}

// clone returns a deep copy of the board, including its history.
func (b *Board) clone() *Board {
	nb := *b
	nb.cache = nil
	nb.repetition = make(map[string]int, len(b.repetition))
	for k, v := range b.repetition {
		nb.repetition[k] = v
	}
	nb.history = make([]*Turn, len(b.history))
	for i, t := range b.history {
		nt := *t
		nt.move = t.move.Clone()
		nt.variations = append([]int(nil), t.variations...)
		if t.prevRepetition != nil {
			nt.prevRepetition = make(map[string]int, len(t.prevRepetition))
			for k, v := range t.prevRepetition {
				nt.prevRepetition[k] = v
			}
		}
		nb.history[i] = &nt
	}
	return &nb
}

// repetitionKey returns the position key used by the repetition counter:
// piece placement, side to move, castling rights and en passant target.
func (b *Board) repetitionKey() string {
	var sb strings.Builder
	writePlacement(&sb, b)
	sb.WriteByte(' ')
	sb.WriteString(b.turn.String())
	sb.WriteByte(' ')
	sb.WriteString(castlingFEN(b))
	sb.WriteByte(' ')
	sb.WriteString(epFEN(b))
	return sb.String()
}

// Repetitions returns how many times the current position has occurred on
// this line.
func (b *Board) Repetitions() int {
	return b.repetition[b.repetitionKey()]
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.SquareAttacked(b.kings[sideIdx(b.turn)], b.turn.Other())
}

// Status returns Checkmate or Stalemate when the side to move has no legal
// moves, and NoMethod otherwise.
func (b *Board) Status() Method {
	if len(b.MoveLists(nil).Legal) != 0 {
		return NoMethod
	}
	if b.InCheck() {
		return Checkmate
	}
	return Stalemate
}

// hasSufficientMaterial reports whether either side could still deliver
// checkmate. Bare kings, a lone minor piece, and bishops all bound to one
// square color are insufficient.
func (b *Board) hasSufficientMaterial() bool {
	var minors int
	var bishops, knights int
	var lightBishop, darkBishop bool
	for sq := Square(0); sq < boardSize; sq++ {
		if !sq.Valid() || b.squares[sq] == NoPiece {
			continue
		}
		switch b.squares[sq].Type() {
		case Pawn, Rook, Queen:
			return true
		case Knight:
			minors++
			knights++
		case Bishop:
			minors++
			bishops++
			if sq.IsLight() {
				lightBishop = true
			} else {
				darkBishop = true
			}
		}
	}
	if minors <= 1 {
		return false
	}
	if knights == 0 && !(lightBishop && darkBishop) {
		return false
	}
	return true
}

// Dump returns an ASCII rendering of the position for debugging. It is not
// a stable machine format.
func (b *Board) Dump() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString("   +---+---+---+---+---+---+---+---+\n")
		fmt.Fprintf(&sb, " %d |", rank+1)
		for file := 0; file <= 7; file++ {
			sym := b.squares[NewSquare(file, rank)].String()
			if sym == "" {
				sym = " "
			}
			fmt.Fprintf(&sb, " %s |", sym)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   +---+---+---+---+---+---+---+---+\n    ")
	for file := 0; file <= 7; file++ {
		fmt.Fprintf(&sb, " %c  ", 'a'+file)
	}
	return sb.String()
}
