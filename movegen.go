package chess

// Attacker kind bits stored in the delta attack table. Queens are encoded
// as bishop|rook.
const (
	atkWhitePawn uint8 = 1 << iota
	atkBlackPawn
	atkKnight
	atkBishop
	atkRook
	atkKing
)

var (
	knightOffsets = [8]Square{-33, -31, -18, -14, 14, 18, 31, 33}
	kingOffsets   = [8]Square{-17, -16, -15, -1, 1, 15, 16, 17}
	bishopDirs    = [4]Square{-17, -15, 15, 17}
	rookDirs      = [4]Square{-16, -1, 1, 16}
)

// attackTable and rayTable are indexed by the 0x88 square delta between an
// attacker and its target (delta + 119). attackTable holds the piece kinds
// that could reach that relative offset; rayTable holds the single-step
// direction connecting the two squares for sliding pieces. Both are
// immutable after startup.
var (
	attackTable [240]uint8
	rayTable    [240]Square
)

func deltaIndex(from, to Square) int {
	return int(to-from) + 119
}

func init() {
	for _, off := range knightOffsets {
		attackTable[119+off] |= atkKnight
	}
	for _, off := range kingOffsets {
		attackTable[119+off] |= atkKing
	}
	for _, dir := range bishopDirs {
		for i := Square(1); i <= 7; i++ {
			attackTable[119+dir*i] |= atkBishop
			rayTable[119+dir*i] = dir
		}
	}
	for _, dir := range rookDirs {
		for i := Square(1); i <= 7; i++ {
			attackTable[119+dir*i] |= atkRook
			rayTable[119+dir*i] = dir
		}
	}
	// pawn capture directions are asymmetric by color
	attackTable[119+15] |= atkWhitePawn
	attackTable[119+17] |= atkWhitePawn
	attackTable[119-15] |= atkBlackPawn
	attackTable[119-17] |= atkBlackPawn
}

// attackMask returns the attack-table bits matching the piece.
func attackMask(p Piece) uint8 {
	switch p.Type() {
	case Pawn:
		if p.Color() == White {
			return atkWhitePawn
		}
		return atkBlackPawn
	case Knight:
		return atkKnight
	case Bishop:
		return atkBishop
	case Rook:
		return atkRook
	case Queen:
		return atkBishop | atkRook
	case King:
		return atkKing
	}
	return 0
}

// SquareAttacked reports whether the target square is attacked by any piece
// of the given color. It short-circuits on the first attacker found.
func (b *Board) SquareAttacked(target Square, by Color) bool {
	return len(b.attackersOf(target, by, false)) > 0
}

// Attackers returns every square holding a piece of the given color that
// attacks the target square. This is the detailed mode used for UI
// explanations; SquareAttacked is the short-circuiting form.
func (b *Board) Attackers(target Square, by Color) []Square {
	return b.attackersOf(target, by, true)
}

func (b *Board) attackersOf(target Square, by Color, all bool) []Square {
	if !target.Valid() {
		return nil
	}
	var found []Square
	for sq := Square(0); sq < boardSize; sq++ {
		if sq&0x88 != 0 {
			continue
		}
		p := b.squares[sq]
		if p == NoPiece || p.Color() != by || sq == target {
			continue
		}
		idx := deltaIndex(sq, target)
		if attackTable[idx]&attackMask(p) == 0 {
			continue
		}
		// kings, knights and pawns reach their offsets in one step and
		// cannot be blocked
		if dir := rayTable[idx]; dir != 0 && isSlider(p.Type()) {
			blocked := false
			for ray := sq + dir; ray != target; ray += dir {
				if b.squares[ray] != NoPiece {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}
		}
		if !all {
			return []Square{sq}
		}
		found = append(found, sq)
	}
	return found
}

func isSlider(pt PieceType) bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// MovesOptions configures a move-list query. The zero value requests the
// plain buckets without notation enrichment.
type MovesOptions struct {
	// WithSAN fills in the SAN of every legal move.
	WithSAN bool
	// WithFEN fills in the resulting FEN of every legal move.
	WithFEN bool
}

func (o *MovesOptions) fingerprint() uint8 {
	var fp uint8
	if o.WithSAN {
		fp |= 1
	}
	if o.WithFEN {
		fp |= 2
	}
	return fp
}

// A MoveList buckets the generated moves of a position. Legal moves leave
// the mover's king safe; Illegal moves are pseudo-legal but expose or leave
// the king in check; Blocked moves run into the mover's own pieces and are
// retained for inspection only.
type MoveList struct {
	Legal   []*Move
	Illegal []*Move
	Blocked []*Move
}

// MoveLists generates the legal, illegal and blocked move buckets for the
// side to move. Results are memoized per option fingerprint until the next
// state mutation; the cache is never a source of truth.
func (b *Board) MoveLists(opts *MovesOptions) *MoveList {
	if opts == nil {
		opts = &MovesOptions{}
	}
	fp := opts.fingerprint()
	if ml, ok := b.cache[fp]; ok {
		return ml
	}
	ml := b.generate(opts)
	if b.cache == nil {
		b.cache = make(map[uint8]*MoveList)
	}
	b.cache[fp] = ml
	return ml
}

// ValidMoves returns all legal moves in the current position, with SAN
// filled in.
func (b *Board) ValidMoves() []Move {
	legal := b.MoveLists(&MovesOptions{WithSAN: true}).Legal
	moves := make([]Move, len(legal))
	for i, m := range legal {
		moves[i] = *m.Clone()
	}
	return moves
}

// WildcardMove returns an arbitrary but deterministic legal move, or nil if
// the side to move has none. It backs wildcard tokens in imported game
// records.
func (b *Board) WildcardMove() *Move {
	legal := b.MoveLists(nil).Legal
	if len(legal) == 0 {
		return nil
	}
	return legal[0].Clone()
}

func (b *Board) generate(opts *MovesOptions) *MoveList {
	ml := &MoveList{}
	us := b.turn
	them := us.Other()
	inCheck := b.InCheck()

	for _, m := range b.generatePseudo() {
		if m.HasFlag(FlagBlocked) {
			ml.Blocked = append(ml.Blocked, m)
			continue
		}
		mk := b.mock()
		mk.applyMove(m)
		if mk.SquareAttacked(mk.kings[sideIdx(us)], them) {
			if inCheck {
				m.flags.Add(FlagInCheck)
			} else {
				m.flags.Add(FlagPinned)
			}
			ml.Illegal = append(ml.Illegal, m)
			continue
		}
		if mk.InCheck() {
			m.flags.Add(FlagCheck)
			if !mk.hasAnyLegalMove() {
				m.flags.Add(FlagCheckmate)
			}
		}
		ml.Legal = append(ml.Legal, m)
	}

	if opts.WithSAN {
		for _, m := range ml.Legal {
			m.san = encodeSAN(b, m, ml.Legal)
		}
	}
	if opts.WithFEN {
		for _, m := range ml.Legal {
			mk := b.mock()
			mk.applyMove(m)
			m.fen = encodeFEN(mk)
		}
	}
	return ml
}

// hasAnyLegalMove reports whether the side to move has at least one legal
// move, short-circuiting without flag or notation work.
func (b *Board) hasAnyLegalMove() bool {
	us := b.turn
	them := us.Other()
	for _, m := range b.generatePseudo() {
		if m.HasFlag(FlagBlocked) {
			continue
		}
		mk := b.mock()
		mk.applyMove(m)
		if !mk.SquareAttacked(mk.kings[sideIdx(us)], them) {
			return true
		}
	}
	return false
}

// generatePseudo walks all valid squares and emits the pseudo-legal moves
// of the side to move, including blocked pseudo-moves.
func (b *Board) generatePseudo() []*Move {
	us := b.turn
	var moves []*Move
	for sq := Square(0); sq < boardSize; sq++ {
		if sq&0x88 != 0 {
			continue
		}
		p := b.squares[sq]
		if p == NoPiece || p.Color() != us {
			continue
		}
		switch p.Type() {
		case Pawn:
			b.genPawn(&moves, sq)
		case Knight:
			b.genSteps(&moves, sq, knightOffsets[:])
		case Bishop:
			b.genSlides(&moves, sq, bishopDirs[:])
		case Rook:
			b.genSlides(&moves, sq, rookDirs[:])
		case Queen:
			b.genSlides(&moves, sq, bishopDirs[:])
			b.genSlides(&moves, sq, rookDirs[:])
		case King:
			b.genSteps(&moves, sq, kingOffsets[:])
			b.genCastling(&moves, sq)
		}
	}
	return moves
}

func (b *Board) genSteps(moves *[]*Move, sq Square, offsets []Square) {
	us := b.turn
	for _, off := range offsets {
		to := sq + off
		if to&0x88 != 0 || to < 0 {
			continue
		}
		target := b.squares[to]
		m := &Move{s1: sq, s2: to, piece: b.squares[sq]}
		switch {
		case target == NoPiece:
		case target.Color() == us:
			m.flags.Add(FlagBlocked)
		default:
			m.captured = target
			m.flags.Add(FlagCapture)
		}
		*moves = append(*moves, m)
	}
}

func (b *Board) genSlides(moves *[]*Move, sq Square, dirs []Square) {
	us := b.turn
	for _, dir := range dirs {
		for to := sq + dir; to&0x88 == 0 && to >= 0; to += dir {
			target := b.squares[to]
			m := &Move{s1: sq, s2: to, piece: b.squares[sq]}
			if target == NoPiece {
				*moves = append(*moves, m)
				continue
			}
			if target.Color() == us {
				m.flags.Add(FlagBlocked)
			} else {
				m.captured = target
				m.flags.Add(FlagCapture)
			}
			*moves = append(*moves, m)
			break
		}
	}
}

func (b *Board) genPawn(moves *[]*Move, sq Square) {
	us := b.turn
	push := pawnPush(us)

	one := sq + push
	if one&0x88 == 0 && one >= 0 && b.squares[one] == NoPiece {
		b.addPawnMove(moves, sq, one, NoPiece)
		two := one + push
		if sq.Rank() == pawnStartRank(us) && two&0x88 == 0 && two >= 0 && b.squares[two] == NoPiece {
			m := &Move{s1: sq, s2: two, piece: b.squares[sq]}
			m.flags.Add(FlagDoubleStep)
			*moves = append(*moves, m)
		}
	}

	for _, d := range [2]Square{push - 1, push + 1} {
		to := sq + d
		if to&0x88 != 0 || to < 0 {
			continue
		}
		target := b.squares[to]
		switch {
		case target != NoPiece && target.Color() != us:
			b.addPawnMove(moves, sq, to, target)
		case target == NoPiece && to == b.ep:
			m := &Move{s1: sq, s2: to, piece: b.squares[sq], captured: NewPiece(us.Other(), Pawn)}
			m.flags.Add(FlagEnPassant)
			*moves = append(*moves, m)
		}
	}
}

// addPawnMove emits the pawn move, expanding promotions into one move per
// legal promotion piece with the queen first.
func (b *Board) addPawnMove(moves *[]*Move, s1, s2 Square, captured Piece) {
	us := b.turn
	if s2.Rank() != pawnLastRank(us) {
		m := &Move{s1: s1, s2: s2, piece: b.squares[s1], captured: captured}
		if captured != NoPiece {
			m.flags.Add(FlagCapture)
		}
		*moves = append(*moves, m)
		return
	}
	for _, pt := range PromotionPieceTypes() {
		m := &Move{s1: s1, s2: s2, piece: b.squares[s1], captured: captured, promo: NewPiece(us, pt)}
		if captured != NoPiece {
			m.flags.Add(FlagCapture)
		}
		m.flags.Add(FlagPromotion)
		*moves = append(*moves, m)
	}
}

// genCastling emits castling moves while processing the king's own square.
// Castling requires the right to be present, the intervening squares to be
// vacant, and neither the king's square, the square it passes through, nor
// its destination to be attacked.
func (b *Board) genCastling(moves *[]*Move, sq Square) {
	us := b.turn
	them := us.Other()
	kingHome := E1
	if us == Black {
		kingHome = E8
	}
	if sq != kingHome {
		return
	}
	rights := b.castling[sideIdx(us)]
	if rights.HasKingSide() &&
		b.squares[sq+1] == NoPiece && b.squares[sq+2] == NoPiece &&
		b.squares[sq+3] == NewPiece(us, Rook) &&
		!b.SquareAttacked(sq, them) && !b.SquareAttacked(sq+1, them) && !b.SquareAttacked(sq+2, them) {
		m := &Move{s1: sq, s2: sq + 2, piece: b.squares[sq]}
		m.flags.Add(FlagKingSideCastle)
		*moves = append(*moves, m)
	}
	if rights.HasQueenSide() &&
		b.squares[sq-1] == NoPiece && b.squares[sq-2] == NoPiece && b.squares[sq-3] == NoPiece &&
		b.squares[sq-4] == NewPiece(us, Rook) &&
		!b.SquareAttacked(sq, them) && !b.SquareAttacked(sq-1, them) && !b.SquareAttacked(sq-2, them) {
		m := &Move{s1: sq, s2: sq - 2, piece: b.squares[sq]}
		m.flags.Add(FlagQueenSideCastle)
		*moves = append(*moves, m)
	}
}
