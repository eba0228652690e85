/*
Package chess provides a deterministic chess rules engine with support for
move validation, a branching tree of played lines, and standard chess
formats (FEN, SAN, UCI).

The package manages complete chess games including move history, variations
and continuations, and game outcomes. It supports standard chess rules
including all special moves (castling, en passant, promotion) and automatic
draw detection.

Example usage:

	// Create new game
	game := NewGame()

	// Make moves
	game.PushMove("e4", nil)
	game.PushMove("e5", nil)

	// Check game status
	if game.Outcome() != NoOutcome {
		fmt.Printf("Game ended: %s by %s\n", game.Outcome(), game.Method())
	}
*/
package chess

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// A Outcome is the result of a game.
type Outcome string

const (
	UnknownOutcome Outcome = ""
	// NoOutcome indicates that a game is in progress or ended without a result.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// A Method is the method that generated the outcome.
type Method uint8

const (
	// NoMethod indicates that an outcome hasn't occurred or that the method can't be determined.
	NoMethod Method = iota
	// Checkmate indicates that the game was won checkmate.
	Checkmate
	// Resignation indicates that the game was won by resignation.
	Resignation
	// DrawOffer indicates that the game was drawn by a draw offer.
	DrawOffer
	// Stalemate indicates that the game was drawn by stalemate.
	Stalemate
	// ThreefoldRepetition indicates that the game was drawn when the game
	// state was repeated three times and a player requested a draw.
	ThreefoldRepetition
	// FivefoldRepetition indicates that the game was automatically drawn
	// by the game state being repeated five times.
	FivefoldRepetition
	// FiftyMoveRule indicates that the game was drawn by the half
	// move clock being one hundred or greater when a player requested a draw.
	FiftyMoveRule
	// SeventyFiveMoveRule indicates that the game was automatically drawn
	// when the half move clock was one hundred and fifty or greater.
	SeventyFiveMoveRule
	// InsufficientMaterial indicates that the game was automatically drawn
	// because there was insufficient material for checkmate.
	InsufficientMaterial
)

// TagPairs represents a collection of PGN tag pairs.
type TagPairs map[string]string

// A Game represents a single chess game: an arena of boards connected by
// parent-board/branch-ply links, rooted at the starting position, plus a
// cursor selecting the active line. Boards are addressed by stable integer
// ids; removed boards leave nil holes so ids never shift.
type Game struct {
	tagPairs                       TagPairs
	boards                         []*Board
	comment                        string
	outcome                        Outcome
	currentBoard                   int
	method                         Method
	ignoreFivefoldRepetitionDraw   bool
	ignoreSeventyFiveMoveRuleDraw  bool
	ignoreInsufficientMaterialDraw bool
}

// FEN takes a string and returns a function that updates the game to start
// from the FEN position. Since FEN doesn't encode prior moves, the game
// tree will be empty. The returned function is designed to be used in the
// NewGame constructor. An error is returned if there is a problem parsing
// the FEN data.
func FEN(fen string) (func(*Game), error) {
	return SetupFEN(fen, nil)
}

// SetupFEN is FEN with explicit setup options, e.g. to auto-fix stale
// castling rights while editing a position interactively.
func SetupFEN(fen string, opts *SetupOptions) (func(*Game), error) {
	root, err := decodeFEN(fen, opts)
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		root.id = 0
		g.boards = []*Board{root}
		g.currentBoard = 0
		g.outcome = NoOutcome
		g.method = NoMethod
		g.evaluatePositionStatus()
	}, nil
}

// NewGame returns a new game in the standard starting position.
// Optional functions can be provided to configure the initial game state.
//
// Example:
//
//	// Standard game
//	game := NewGame()
//
//	// Game from FEN
//	fen, _ := FEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
//	game := NewGame(fen)
func NewGame(options ...func(*Game)) *Game {
	game := &Game{
		boards:       []*Board{StartingBoard()},
		tagPairs:     make(TagPairs),
		currentBoard: 0,
		outcome:      NoOutcome,
		method:       NoMethod,
	}
	for _, f := range options {
		if f != nil {
			f(game)
		}
	}
	return game
}

// RootBoard returns the root board holding the main line.
func (g *Game) RootBoard() *Board {
	return g.boards[0]
}

// CurrentBoard returns the board holding the active line.
func (g *Game) CurrentBoard() *Board {
	return g.boards[g.currentBoard]
}

// Board returns the board with the given id, or nil if the id does not
// address a live board.
func (g *Game) Board(id int) *Board {
	if id < 0 || id >= len(g.boards) {
		return nil
	}
	return g.boards[id]
}

// FEN returns the FEN notation of the current position.
func (g *Game) FEN() string {
	return g.CurrentBoard().FEN()
}

// ValidMoves returns all legal moves in the current position.
func (g *Game) ValidMoves() []Move {
	return g.CurrentBoard().ValidMoves()
}

// MoveLists returns the legal, illegal and blocked move buckets of the
// current position.
func (g *Game) MoveLists(opts *MovesOptions) *MoveList {
	return g.CurrentBoard().MoveLists(opts)
}

// GenerateWildcardMove returns an arbitrary but deterministic legal move in
// the current position, or nil if there is none. It backs wildcard tokens
// in imported game records.
func (g *Game) GenerateWildcardMove() *Move {
	return g.CurrentBoard().WildcardMove()
}

// Comment returns the comment attached before the first move, if any.
func (g *Game) Comment() string {
	return g.comment
}

// SetComment attaches a comment before the first move.
func (g *Game) SetComment(c string) {
	g.comment = c
}

// Outcome returns the game outcome.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Method returns the method in which the outcome occurred.
func (g *Game) Method() Method {
	return g.method
}

// PushMoveOptions contains options for pushing a move to the game.
type PushMoveOptions struct {
	// ForceMainline promotes the move's line to the main line if the
	// move re-enters an existing variation.
	ForceMainline bool
	// NewVariation records a diverging move as a new variation child
	// instead of splicing it into the active line. This is how imported
	// game records attach parenthesized side lines.
	NewVariation bool
}

// PushMove adds a move in algebraic notation to the game.
// Returns an error if the move is invalid.
//
// Example:
//
//	err := game.PushMove("e4", &PushMoveOptions{ForceMainline: true})
func (g *Game) PushMove(algebraicMove string, options *PushMoveOptions) error {
	return g.PushNotationMove(algebraicMove, AlgebraicNotation{}, options)
}

// PushNotationMove adds a move to the game using any supported notation.
// It validates the move before adding it to ensure game correctness.
//
// Example:
//
//	err := game.PushNotationMove("e4", chess.AlgebraicNotation{}, nil)
//	if err != nil {
//	  panic(err)
//	}
//
//	game.PushNotationMove("c7c5", chess.UCINotation{}, nil)
func (g *Game) PushNotationMove(moveStr string, notation Notation, options *PushMoveOptions) error {
	move, err := notation.Decode(g.CurrentBoard(), moveStr)
	if err != nil {
		return err
	}
	return g.Move(move, options)
}

// Move adds a move to the game using a Move value. It validates the move
// against the current position before applying it. For pre-validated moves
// use UnsafeMove.
//
// Example:
//
//	possibleMove := game.ValidMoves()[0]
//
//	err := game.Move(&possibleMove, nil)
//	if err != nil {
//	    panic(err)
//	}
func (g *Game) Move(move *Move, options *PushMoveOptions) error {
	if options == nil {
		options = &PushMoveOptions{}
	}
	matched, err := g.validateMove(move)
	if err != nil {
		return err
	}
	return g.moveUnchecked(matched, options)
}

// UnsafeMove adds a move to the game without validation. Use this only for
// moves that are known to be legal, e.g. taken from ValidMoves; the move
// must carry correct capture, castling and en passant flags, since the
// board transition is derived from them.
func (g *Game) UnsafeMove(move *Move, options *PushMoveOptions) error {
	if options == nil {
		options = &PushMoveOptions{}
	}
	if move == nil {
		return errors.New("chess: move cannot be nil")
	}
	return g.moveUnchecked(move.Clone(), options)
}

// validateMove checks the move against the legal moves of the current
// position and returns the fully flagged legal move it matches.
func (g *Game) validateMove(move *Move) (*Move, error) {
	if move == nil {
		return nil, errors.New("chess: move cannot be nil")
	}
	legal := g.CurrentBoard().MoveLists(&MovesOptions{WithSAN: true}).Legal
	for _, m := range legal {
		if m.equalTo(move) {
			matched := m.Clone()
			matched.nag = move.nag
			matched.comments = move.comments
			matched.AttachCommand(move.command)
			return matched, nil
		}
	}
	return nil, &MoveError{Input: move.String(), LegalMoves: legalSANs(legal)}
}

// moveUnchecked decides whether the move continues the active line,
// re-enters an existing turn or child board, or must branch off a new one.
func (g *Game) moveUnchecked(move *Move, options *PushMoveOptions) error {
	b := g.CurrentBoard()

	// A move equal to the next turn of the line replays it in place, unless
	// the caller explicitly asked for a distinct variation child.
	if !options.NewVariation && b.cursor < len(b.history)-1 {
		next := b.history[b.cursor+1]
		if next.move.equalTo(move) {
			b.next()
			g.evaluatePositionStatus()
			return nil
		}
		for _, id := range next.variations {
			child := g.Board(id)
			if child == nil || child.continuation || len(child.history) == 0 {
				continue
			}
			if child.history[0].move.equalTo(move) {
				if options.ForceMainline {
					if err := g.PromoteVariation(child.id); err != nil {
						return err
					}
					b.next()
				} else {
					g.currentBoard = child.id
					if err := child.seek(0); err != nil {
						return err
					}
				}
				g.evaluatePositionStatus()
				return nil
			}
		}
	}

	// A move equal to the first move of a continuation of the selected
	// turn re-enters that continuation.
	if !options.NewVariation && b.cursor >= 0 {
		for _, id := range b.history[b.cursor].variations {
			child := g.Board(id)
			if child == nil || !child.continuation || len(child.history) == 0 {
				continue
			}
			if child.history[0].move.equalTo(move) {
				g.currentBoard = child.id
				if err := child.seek(0); err != nil {
					return err
				}
				g.evaluatePositionStatus()
				return nil
			}
		}
	}

	if b.cursor == len(b.history)-1 {
		g.commitOn(b, move)
		g.evaluatePositionStatus()
		return nil
	}

	if options.NewVariation {
		child := g.newChildBoard(b, b.cursor+1, false)
		g.commitOn(child, move)
		owner := b.history[child.parentBranchIdx]
		owner.variations = append(owner.variations, child.id)
		g.currentBoard = child.id
	} else {
		g.spliceAndCommit(b, move)
	}
	g.evaluatePositionStatus()
	return nil
}

// commitOn commits the move as a new turn at the end of the board's line,
// filling in the SAN first since encoding needs the pre-move position.
func (g *Game) commitOn(b *Board, move *Move) *Turn {
	if move.san == "" {
		move.san = AlgebraicNotation{}.Encode(b, move)
	}
	return b.commit(move)
}

// newChildBoard creates a board branching off the parent at the given turn
// index and adds it to the arena. The parent's live state must sit at the
// branch point; the child snapshots it as its own base position.
func (g *Game) newChildBoard(parent *Board, branchIdx int, continuation bool) *Board {
	child := parent.mock()
	child.id = len(g.boards)
	child.parentBoard = parent.id
	child.parentBranchIdx = branchIdx
	child.continuation = continuation
	child.plyOffset = parent.plyOffset + branchIdx
	if continuation {
		child.plyOffset++
	}
	child.repetition = make(map[string]int, len(parent.repetition))
	for k, v := range parent.repetition {
		child.repetition[k] = v
	}
	g.boards = append(g.boards, child)
	return child
}

// spliceAndCommit handles divergence mid-line: the future portion of the
// history is spliced out into a new child variation, every descendant
// carried along is reparented, and the new move continues as the main line
// of this board.
func (g *Game) spliceAndCommit(b *Board, move *Move) {
	branch := b.cursor + 1
	tail := append([]*Turn(nil), b.history[branch:]...)
	b.history = b.history[:branch]

	child := g.newChildBoard(b, branch, false)
	child.history = tail
	for i, t := range tail {
		for _, id := range t.variations {
			if d := g.Board(id); d != nil {
				d.parentBoard = child.id
				d.parentBranchIdx = i
			}
		}
	}

	t := g.commitOn(b, move)
	t.variations = append(t.variations, child.id)
}

// GoForward navigates to the next move on the active line.
// Returns false if there are no moves to go forward to.
func (g *Game) GoForward() bool {
	return g.CurrentBoard().next()
}

// GoBack navigates to the previous move on the active line.
// Returns false if there are no moves to go back to.
func (g *Game) GoBack() bool {
	return g.CurrentBoard().prev()
}

// IsAtStart returns true if the game is at the root board before the first
// move.
func (g *Game) IsAtStart() bool {
	b := g.CurrentBoard()
	return b.parentBoard < 0 && b.cursor < 0
}

// IsAtEnd returns true if the cursor sits on the last turn of the active
// line.
func (g *Game) IsAtEnd() bool {
	b := g.CurrentBoard()
	return b.cursor == len(b.history)-1
}

// Variations returns the boards holding alternatives to the next move of
// the active line.
func (g *Game) Variations() []*Board {
	b := g.CurrentBoard()
	if b.cursor+1 >= len(b.history) {
		return nil
	}
	return g.childBoards(b.history[b.cursor+1], false)
}

// Continuations returns the boards extending past the selected turn of the
// active line without displacing its next move.
func (g *Game) Continuations() []*Board {
	b := g.CurrentBoard()
	if b.cursor < 0 {
		return nil
	}
	return g.childBoards(b.history[b.cursor], true)
}

func (g *Game) childBoards(t *Turn, continuation bool) []*Board {
	var out []*Board
	for _, id := range t.variations {
		if child := g.Board(id); child != nil && child.continuation == continuation {
			out = append(out, child)
		}
	}
	return out
}

// EnterVariation makes the given alternative line the active one,
// positioned before its first move.
func (g *Game) EnterVariation(n int) error {
	vars := g.Variations()
	if n < 0 || n >= len(vars) {
		return fmt.Errorf("%w: variation %d", ErrNoSuchVariation, n)
	}
	child := vars[n]
	if err := child.seek(-1); err != nil {
		return err
	}
	g.currentBoard = child.id
	return nil
}

// EnterContinuation makes the given continuation line the active one,
// positioned before its first move.
func (g *Game) EnterContinuation(n int) error {
	conts := g.Continuations()
	if n < 0 || n >= len(conts) {
		return fmt.Errorf("%w: continuation %d", ErrNoSuchVariation, n)
	}
	child := conts[n]
	if err := child.seek(-1); err != nil {
		return err
	}
	g.currentBoard = child.id
	return nil
}

// ReturnFromVariation leaves the active variation and repositions the
// parent line at the branch point, one ply before the replaced move.
func (g *Game) ReturnFromVariation() error {
	return g.returnToParent(false)
}

// ReturnFromContinuation leaves the active continuation and repositions
// the parent line on the turn the continuation extends.
func (g *Game) ReturnFromContinuation() error {
	return g.returnToParent(true)
}

func (g *Game) returnToParent(continuation bool) error {
	b := g.CurrentBoard()
	if b.parentBoard < 0 || b.continuation != continuation {
		return fmt.Errorf("%w: active board %d", ErrNoSuchVariation, b.id)
	}
	parent := g.Board(b.parentBoard)
	if parent == nil {
		return fmt.Errorf("%w: %d", ErrNoSuchBoard, b.parentBoard)
	}
	at := b.parentBranchIdx
	if !b.continuation {
		at--
	}
	if err := parent.seek(at); err != nil {
		return err
	}
	g.currentBoard = parent.id
	return nil
}

// AddContinuation creates a new continuation extending past the selected
// turn of the active line and makes it the active board.
func (g *Game) AddContinuation() (*Board, error) {
	b := g.CurrentBoard()
	if b.cursor < 0 {
		return nil, fmt.Errorf("%w: no turn selected", ErrTurnIndexOutOfRange)
	}
	child := g.newChildBoard(b, b.cursor, true)
	owner := b.history[b.cursor]
	owner.variations = append(owner.variations, child.id)
	g.currentBoard = child.id
	return child, nil
}

// SelectTurn moves the active cursor to the turn at the given index on the
// given board, which need not be an ancestor or descendant of the active
// line. An index of -1 selects the state before the board's first turn.
//
// Board mutation is only ever expressed as sequential replay and reversal
// of single turns, so the walk undoes the active line up to the root and
// then descends through the chain of branch points leading to the target.
func (g *Game) SelectTurn(boardID, index int) error {
	target := g.Board(boardID)
	if target == nil {
		return fmt.Errorf("%w: %d", ErrNoSuchBoard, boardID)
	}
	if index < -1 || index >= len(target.history) {
		return fmt.Errorf("%w: %d on board %d", ErrTurnIndexOutOfRange, index, boardID)
	}

	for {
		cur := g.CurrentBoard()
		if cur.parentBoard < 0 {
			break
		}
		if err := cur.seek(-1); err != nil {
			return err
		}
		g.currentBoard = cur.parentBoard
	}

	var chain []*Board
	for bd := target; ; {
		chain = append([]*Board{bd}, chain...)
		if bd.parentBoard < 0 {
			break
		}
		parent := g.Board(bd.parentBoard)
		if parent == nil {
			return fmt.Errorf("%w: %d", ErrNoSuchBoard, bd.parentBoard)
		}
		bd = parent
	}

	for i := 1; i < len(chain); i++ {
		child := chain[i]
		at := child.parentBranchIdx
		if !child.continuation {
			at--
		}
		if err := chain[i-1].seek(at); err != nil {
			return err
		}
		g.currentBoard = child.id
	}
	return target.seek(index)
}

// PromoteVariation swaps the given variation with its parent's tail: the
// variation's moves become the parent's main line from the branch point on,
// and the former main-line tail becomes the variation. All alternatives
// registered at the branch ply move to the new main-line turn, and every
// descendant carried either way is reparented.
func (g *Game) PromoteVariation(boardID int) error {
	child := g.Board(boardID)
	if child == nil {
		return fmt.Errorf("%w: %d", ErrNoSuchBoard, boardID)
	}
	if child.parentBoard < 0 || child.continuation || len(child.history) == 0 {
		return fmt.Errorf("%w: board %d is not a variation", ErrNoSuchVariation, boardID)
	}
	parent := g.Board(child.parentBoard)
	if parent == nil {
		return fmt.Errorf("%w: %d", ErrNoSuchBoard, child.parentBoard)
	}
	k := child.parentBranchIdx

	// settle both live states below the branch point
	if err := child.seek(-1); err != nil {
		return err
	}
	if parent.cursor >= k {
		if err := parent.seek(k - 1); err != nil {
			return err
		}
	}

	oldTail := append([]*Turn(nil), parent.history[k:]...)
	newTail := append([]*Turn(nil), child.history...)
	parent.history = append(parent.history[:k], newTail...)
	child.history = oldTail

	// alternatives at the branch ply follow the main line
	alts := oldTail[0].variations
	oldTail[0].variations = nil
	for _, id := range alts {
		if id == child.id {
			continue
		}
		newTail[0].variations = append(newTail[0].variations, id)
	}
	newTail[0].variations = append(newTail[0].variations, child.id)

	for i, t := range newTail {
		for _, id := range t.variations {
			if d := g.Board(id); d != nil {
				d.parentBoard = parent.id
				d.parentBranchIdx = k + i
			}
		}
	}
	for i, t := range oldTail {
		for _, id := range t.variations {
			if d := g.Board(id); d != nil {
				d.parentBoard = child.id
				d.parentBranchIdx = i
			}
		}
	}
	return nil
}

// UndoMove removes the selected turn and everything after it from the
// active line, reverting the board to the state before it. Boards
// branching off the removed turns are detached from the arena.
func (g *Game) UndoMove() error {
	b := g.CurrentBoard()
	if b.cursor < 0 {
		return ErrNothingToUndo
	}
	idx := b.cursor
	b.retreat()
	removed := b.history[idx:]
	b.history = b.history[:idx]
	for _, t := range removed {
		for _, id := range t.variations {
			g.removeBoard(id)
		}
	}
	g.outcome = NoOutcome
	g.method = NoMethod
	return nil
}

// removeBoard detaches the board and all its descendants from the arena,
// leaving nil holes so ids stay stable.
func (g *Game) removeBoard(id int) {
	b := g.Board(id)
	if b == nil {
		return
	}
	for _, t := range b.history {
		for _, cid := range t.variations {
			g.removeBoard(cid)
		}
	}
	g.boards[id] = nil
}

// Moves returns the move history of the game following the main line.
func (g *Game) Moves() []*Move {
	root := g.RootBoard()
	moves := make([]*Move, 0, len(root.history))
	for _, t := range root.history {
		moves = append(moves, t.move)
	}
	return moves
}

// A PlySnapshot is the per-ply export view of one main-line move.
type PlySnapshot struct {
	SAN   string
	UCI   string
	FEN   string
	Flags []Flag
	Ply   int
}

// MainLineSnapshots replays the main line on a scratch copy and returns a
// snapshot per ply for export and rendering layers.
func (g *Game) MainLineSnapshots() []PlySnapshot {
	b := g.RootBoard().clone()
	if err := b.seek(-1); err != nil {
		return nil
	}
	snapshots := make([]PlySnapshot, 0, len(b.history))
	for b.next() {
		t := b.history[b.cursor]
		snapshots = append(snapshots, PlySnapshot{
			Ply:   t.ply,
			SAN:   t.move.san,
			UCI:   t.move.UCI(),
			FEN:   b.FEN(),
			Flags: t.move.Flags(),
		})
	}
	return snapshots
}

// Draw attempts to draw the game by the given method.  If the
// method is valid, then the game is updated to a draw by that
// method.  If the method isn't valid then an error is returned.
func (g *Game) Draw(method Method) error {
	const halfMoveClockForFiftyMoveRule = 100
	const numOfRepetitionsForThreefoldRepetition = 3

	switch method {
	case ThreefoldRepetition:
		if g.numOfRepetitions() < numOfRepetitionsForThreefoldRepetition {
			return errors.New("chess: draw by ThreefoldRepetition requires at least three repetitions of the current board state")
		}
	case FiftyMoveRule:
		if g.CurrentBoard().halfMove < halfMoveClockForFiftyMoveRule {
			return errors.New("chess: draw by FiftyMoveRule requires a half move clock of 100 or greater")
		}
	case DrawOffer:
	default:
		return errors.New("chess: invalid draw method")
	}
	g.outcome = Draw
	g.method = method
	return nil
}

// Resign resigns the game for the given color.  If the game has
// already been completed then the game is not updated.
func (g *Game) Resign(color Color) {
	if g.outcome != NoOutcome || color == NoColor {
		return
	}
	if color == White {
		g.outcome = BlackWon
	} else {
		g.outcome = WhiteWon
	}
	g.method = Resignation
}

// EligibleDraws returns valid inputs for the Draw() method.
func (g *Game) EligibleDraws() []Method {
	const halfMoveClockForFiftyMoveRule = 100
	const numOfRepetitionsForThreefoldRepetition = 3

	draws := []Method{DrawOffer}
	if g.numOfRepetitions() >= numOfRepetitionsForThreefoldRepetition {
		draws = append(draws, ThreefoldRepetition)
	}
	if g.CurrentBoard().halfMove >= halfMoveClockForFiftyMoveRule {
		draws = append(draws, FiftyMoveRule)
	}
	return draws
}

// AddTagPair adds or updates a tag pair with the given key and
// value and returns true if the value is overwritten.
func (g *Game) AddTagPair(k, v string) bool {
	if g.tagPairs == nil {
		g.tagPairs = make(TagPairs)
	}
	_, existing := g.tagPairs[k]
	g.tagPairs[k] = v
	return existing
}

// GetTagPair returns the tag pair for the given key or the empty string if
// it is not present.
func (g *Game) GetTagPair(k string) string {
	return g.tagPairs[k]
}

// TagPairs returns the tag pairs in key value format.
func (g *Game) TagPairs() TagPairs {
	return g.tagPairs
}

// RemoveTagPair removes the tag pair for the given key and
// returns true if a tag pair was removed.
func (g *Game) RemoveTagPair(k string) bool {
	if _, existing := g.tagPairs[k]; existing {
		delete(g.tagPairs, k)
		return true
	}
	return false
}

// evaluatePositionStatus updates the game's outcome and method based on the
// current position.
func (g *Game) evaluatePositionStatus() {
	b := g.CurrentBoard()
	switch b.Status() {
	case Stalemate:
		g.method = Stalemate
		g.outcome = Draw
	case Checkmate:
		g.method = Checkmate
		g.outcome = WhiteWon
		if b.SideToMove() == White {
			g.outcome = BlackWon
		}
	}
	if g.outcome != NoOutcome {
		return
	}

	// five fold rep creates automatic draw
	if !g.ignoreFivefoldRepetitionDraw && g.numOfRepetitions() >= 5 {
		g.outcome = Draw
		g.method = FivefoldRepetition
	}

	// 75 move rule creates automatic draw
	if !g.ignoreSeventyFiveMoveRuleDraw && b.halfMove >= 150 {
		g.outcome = Draw
		g.method = SeventyFiveMoveRule
	}

	// insufficient material creates automatic draw
	if !g.ignoreInsufficientMaterialDraw && !b.hasSufficientMaterial() {
		g.outcome = Draw
		g.method = InsufficientMaterial
	}
}

func (g *Game) numOfRepetitions() int {
	return g.CurrentBoard().Repetitions()
}

// copy copies the game state from the given game.
func (g *Game) copy(game *Game) {
	g.tagPairs = make(TagPairs)
	for k, v := range game.tagPairs {
		g.tagPairs[k] = v
	}
	g.boards = game.boards
	g.currentBoard = game.currentBoard
	g.comment = game.comment
	g.outcome = game.outcome
	g.method = game.method
	g.ignoreFivefoldRepetitionDraw = game.ignoreFivefoldRepetitionDraw
	g.ignoreSeventyFiveMoveRuleDraw = game.ignoreSeventyFiveMoveRuleDraw
	g.ignoreInsufficientMaterialDraw = game.ignoreInsufficientMaterialDraw
}

// Clone returns a deep copy of the game, so that modifications to the
// clone do not impact the parent.
func (g *Game) Clone() *Game {
	ret := &Game{}
	ret.copy(g)
	ret.boards = make([]*Board, len(g.boards))
	for i, b := range g.boards {
		if b != nil {
			ret.boards[i] = b.clone()
		}
	}
	return ret
}

// Split takes a game with a main line and zero or more variations and
// returns a slice of games, one per line in the tree, each containing
// exactly one main line and no variations.
func (g *Game) Split() []*Game {
	start := g.RootBoard().clone()
	if err := start.seek(-1); err != nil {
		return nil
	}
	startFEN := start.FEN()

	var games []*Game
	for _, b := range g.boards {
		if b == nil {
			continue
		}
		fen, err := FEN(startFEN)
		if err != nil {
			continue
		}
		ng := NewGame(fen)
		ng.tagPairs = make(TagPairs)
		for k, v := range g.tagPairs {
			ng.tagPairs[k] = v
		}
		ok := true
		for _, m := range g.pathMoves(b, len(b.history)) {
			if err := ng.Move(m.Clone(), nil); err != nil {
				ok = false
				break
			}
		}
		if ok {
			games = append(games, ng)
		}
	}
	return games
}

// pathMoves resolves the first count moves of the board's line, preceded by
// the prefixes of all its ancestors up to the root.
func (g *Game) pathMoves(b *Board, count int) []*Move {
	var prefix []*Move
	if b.parentBoard >= 0 {
		if parent := g.Board(b.parentBoard); parent != nil {
			n := b.parentBranchIdx
			if b.continuation {
				n++
			}
			prefix = g.pathMoves(parent, n)
		}
	}
	for i := 0; i < count && i < len(b.history); i++ {
		prefix = append(prefix, b.history[i].move)
	}
	return prefix
}

// String implements the fmt.Stringer interface and returns the game's PGN.
func (g *Game) String() string {
	var sb strings.Builder

	tagPairList := make([]sortableTagPair, 0, len(g.tagPairs))
	for tag, value := range g.tagPairs {
		tagPairList = append(tagPairList, sortableTagPair{Key: tag, Value: value})
	}
	slices.SortFunc(tagPairList, cmpTags)

	// Write tag pairs.
	for _, tagPair := range tagPairList {
		sb.WriteString(fmt.Sprintf("[%s \"%s\"]\n", tagPair.Key, tagPair.Value))
	}

	// Append empty line after tag pairs as per definition
	if len(g.tagPairs) > 0 {
		sb.WriteString("\n")
	}

	var toks []string
	if g.comment != "" {
		toks = append(toks, "{"+g.comment+"}")
	}
	toks = append(toks, g.lineTokens(g.RootBoard(), 0, true)...)
	for _, tok := range toks {
		sb.WriteString(tok)
		sb.WriteString(" ")
	}

	sb.WriteString(g.Outcome().String())
	return sb.String()
}

// lineTokens renders the move text of one line from the given turn index
// on, recursing into the variations and continuations attached along the
// way. Variations are enclosed in parentheses; continuations begin one ply
// later and are rendered the same way.
func (g *Game) lineTokens(b *Board, from int, needNumber bool) []string {
	var toks []string
	for i := from; i < len(b.history); i++ {
		t := b.history[i]
		ply := b.plyOffset + i
		if ply%2 == 0 {
			toks = append(toks, fmt.Sprintf("%d.", ply/2+1))
		} else if needNumber {
			toks = append(toks, fmt.Sprintf("%d...", ply/2+1))
		}
		needNumber = false

		san := t.move.san
		if san == "" {
			san = t.move.UCI()
		}
		toks = append(toks, san)
		if t.move.nag != "" {
			toks = append(toks, t.move.nag)
		}
		if t.move.comments != "" {
			toks = append(toks, "{"+t.move.comments+"}")
		}
		if len(t.move.command) > 0 {
			toks = append(toks, commandToken(t.move.command))
		}

		for _, id := range t.variations {
			child := g.Board(id)
			if child == nil || len(child.history) == 0 {
				continue
			}
			inner := g.lineTokens(child, 0, true)
			toks = append(toks, "("+strings.Join(inner, " ")+")")
			needNumber = true
		}
	}
	return toks
}

func commandToken(command map[string]string) string {
	keys := make([]string, 0, len(command))
	for k := range command {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var sb strings.Builder
	sb.WriteString("{")
	for _, k := range keys {
		sb.WriteString(" [%" + k + " " + command[k] + "]")
	}
	sb.WriteString(" }")
	return sb.String()
}

// sortableTagPair is its own
type sortableTagPair struct {
	Key   string
	Value string
}

// Compares two tags to determine in which order they should be brought up
func cmpTags(a, b sortableTagPair) int {
	// Don't re-order duplicate keys
	if a.Key == b.Key {
		return 0
	}

	// PGN defined tags take priority
	for _, req := range []string{
		"Event",
		"Site",
		"Date",
		"Round",
		"White",
		"Black",
		"Result",
	} {
		if a.Key == req {
			return -1
		}
		if b.Key == req {
			return +1
		}
	}

	// Finally compare the keys directly and sort by ascending
	if a.Key < b.Key {
		return -1
	} else if b.Key < a.Key {
		return +1
	}
	return 0
}

// ValidateSAN checks if a string is valid Standard Algebraic Notation (SAN)
// syntax. This function only validates the syntax, not whether the move is
// legal in any position.
// Examples of valid SAN: "e4", "Nf3", "O-O", "Qxd2+", "e8=Q#"
func ValidateSAN(s string) error {
	base := strings.TrimRight(s, "+#!?")
	if castle := strings.ReplaceAll(base, "0", "O"); castle == "O-O" || castle == "O-O-O" {
		return nil
	}
	if !sanPattern.MatchString(base) {
		return fmt.Errorf("chess: invalid SAN %q", s)
	}
	return nil
}

// IgnoreFivefoldRepetitionDraw returns a Game option that disables automatic draws
// caused by the fivefold repetition rule. When applied, the game will not
// automatically end in a draw if the same position occurs five times.
func IgnoreFivefoldRepetitionDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreFivefoldRepetitionDraw = true
	}
}

// IgnoreSeventyFiveMoveRuleDraw returns a Game option that disables automatic draws
// triggered by the seventy-five move rule. When applied, the game will not
// automatically end in a draw if one hundred fifty half-moves pass without a pawn move or capture.
func IgnoreSeventyFiveMoveRuleDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreSeventyFiveMoveRuleDraw = true
	}
}

// IgnoreInsufficientMaterialDraw returns a Game option that disables automatic draws
// caused by insufficient material. When applied, the game will not automatically
// end in a draw even if checkmate is impossible with the remaining pieces.
func IgnoreInsufficientMaterialDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreInsufficientMaterialDraw = true
	}
}
