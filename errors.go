package chess

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFEN is returned when a FEN string cannot be parsed.
	ErrInvalidFEN = errors.New("chess: invalid FEN")
	// ErrNoGameFound is returned when no game could be read from the input.
	ErrNoGameFound = errors.New("chess: no game found")
	// ErrNothingToUndo is returned when undoing with no committed turns.
	ErrNothingToUndo = errors.New("chess: nothing to undo")
	// ErrNoSuchBoard is returned when a board id does not address a live
	// board in the game tree.
	ErrNoSuchBoard = errors.New("chess: no such board")
	// ErrTurnIndexOutOfRange is returned when a turn index does not
	// address a turn on the selected line.
	ErrTurnIndexOutOfRange = errors.New("chess: turn index out of range")
	// ErrNoSuchVariation is returned when a variation or continuation
	// does not exist at the current turn.
	ErrNoSuchVariation = errors.New("chess: no such variation")
)

// A MoveError reports that a move string did not match any legal move in the
// position. LegalMoves lists the SAN of every legal alternative.
type MoveError struct {
	Input      string
	LegalMoves []string
}

// Error implements the error interface.
func (e *MoveError) Error() string {
	return fmt.Sprintf("chess: %q is not a legal move (legal: %s)",
		e.Input, strings.Join(e.LegalMoves, " "))
}

// A ParserError is an error that occurs during parsing of a token stream.
type ParserError struct {
	Message    string
	TokenValue string
	TokenType  TokenType
	Position   int
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at position %d (token: %q)", e.Message, e.Position, e.TokenValue)
}
