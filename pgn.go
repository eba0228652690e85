/*
This file provides PGN (Portable Game Notation) parsing functionality,
supporting standard chess notation including moves, variations, comments,
annotations, and game metadata. Tokenization is left to the caller; the
parser consumes a prepared token stream.

Example usage:

	// Create parser from tokens
	parser := NewParser(tokens)

	// Parse complete game
	game, err := parser.Parse()
*/
package chess

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
)

// TokenType identifies the kind of a PGN token.
type TokenType uint8

const (
	EOF TokenType = iota
	TagStart
	TagKey
	TagValue
	TagEnd
	MoveNumber
	DOT
	ELLIPSIS
	PIECE
	SQUARE
	FILE
	RANK
	CAPTURE
	PROMOTION
	PromotionPiece
	DeambiguationSquare
	KingsideCastle
	QueensideCastle
	CHECK
	NAG
	CommentStart
	COMMENT
	CommentEnd
	CommandStart
	CommandName
	CommandParam
	CommandEnd
	VariationStart
	VariationEnd
	RESULT
)

// A Token is one lexical element of a PGN document.
type Token struct {
	Value string
	Type  TokenType
}

// Parser holds the state needed during parsing.
type Parser struct {
	game     *Game
	tokens   []Token
	position int
}

// NewParser creates a new parser instance initialized with the given tokens.
// The parsed game starts from the standard position unless the tag section
// carries a FEN tag.
//
// Example:
//
//	parser := NewParser(tokens)
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		game:   NewGame(),
	}
}

// currentToken returns the current token being processed.
func (p *Parser) currentToken() Token {
	if p.position >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.position]
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.position++
}

// lastMove returns the most recently played move on the active line, or nil
// before the first move.
func (p *Parser) lastMove() *Move {
	b := p.game.CurrentBoard()
	if b.cursor < 0 {
		return nil
	}
	return b.history[b.cursor].move
}

// Parse processes all tokens and returns the complete game.
// This includes parsing header information (tags), moves,
// variations, comments, and the game result.
//
// Returns an error if the PGN is malformed or contains illegal moves.
//
// Example:
//
//	game, err := parser.Parse()
//	if err != nil {
//	    log.Fatal("Error parsing game:", err)
//	}
//	fmt.Printf("Event: %s\n", game.GetTagPair("Event"))
func (p *Parser) Parse() (*Game, error) {
	// Parse header section (tag pairs)
	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	// check if the game has a starting position
	if value, ok := p.game.tagPairs["FEN"]; ok {
		setup, err := FEN(value)
		if err != nil {
			return nil, fmt.Errorf("chess: bad FEN tag: %w", err)
		}
		setup(p.game)
	}

	// Parse moves section
	if err := p.parseMoveText(); err != nil {
		return nil, err
	}

	if p.game.outcome == UnknownOutcome {
		p.game.outcome = NoOutcome
	}
	return p.game, nil
}

func (p *Parser) parseHeader() error {
	for p.currentToken().Type == TagStart {
		if err := p.parseTagPair(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseTagPair() error {
	// Expect [
	if p.currentToken().Type != TagStart {
		return p.errorf("expected tag start")
	}
	p.advance()

	// Get key
	if p.currentToken().Type != TagKey {
		return p.errorf("expected tag key")
	}
	key := p.currentToken().Value
	p.advance()

	// Get value
	if p.currentToken().Type != TagValue {
		return p.errorf("expected tag value")
	}
	value := p.currentToken().Value
	p.advance()

	// Expect ]
	if p.currentToken().Type != TagEnd {
		return p.errorf("expected tag end")
	}
	p.advance()

	// Store tag pair
	p.game.tagPairs[key] = value
	return nil
}

func (p *Parser) errorf(format string, args ...any) *ParserError {
	return &ParserError{
		Message:    fmt.Sprintf(format, args...),
		TokenType:  p.currentToken().Type,
		TokenValue: p.currentToken().Value,
		Position:   p.position,
	}
}

func (p *Parser) parseMoveText() error {
	for p.position < len(p.tokens) {
		token := p.currentToken()

		switch token.Type {
		case MoveNumber:
			p.advance()
			if p.currentToken().Type == DOT {
				p.advance()
			}

		case ELLIPSIS:
			p.advance()

		case PIECE, SQUARE, FILE, KingsideCastle, QueensideCastle:
			move, err := p.parseMove()
			if err != nil {
				return err
			}
			if err := p.game.UnsafeMove(move, nil); err != nil {
				return err
			}
			if err := p.collectAnnotations(); err != nil {
				return err
			}

		case CommentStart:
			comment, commandMap, err := p.parseComment()
			if err != nil {
				return err
			}
			p.attachComment(comment, commandMap)

		case NAG:
			if last := p.lastMove(); last != nil {
				last.nag = token.Value
			}
			p.advance()

		case VariationStart:
			if err := p.parseVariation(); err != nil {
				return err
			}

		case RESULT:
			p.parseResult()
			return nil

		default:
			p.advance()
		}
	}
	return nil
}

// collectAnnotations consumes all NAGs and comments following a move and
// attaches them to it.
func (p *Parser) collectAnnotations() error {
	for {
		tok := p.currentToken()
		switch tok.Type {
		case NAG:
			if last := p.lastMove(); last != nil {
				last.nag = tok.Value
			}
			p.advance()
		case CommentStart:
			comment, commandMap, err := p.parseComment()
			if err != nil {
				return err
			}
			p.attachComment(comment, commandMap)
		default:
			return nil
		}
	}
}

// attachComment attaches comment text and embedded commands to the last
// played move, or to the game itself when no move has been played yet.
func (p *Parser) attachComment(comment string, commandMap map[string]string) {
	last := p.lastMove()
	if last == nil {
		if comment != "" {
			if p.game.comment != "" {
				p.game.comment += " " + comment
			} else {
				p.game.comment = comment
			}
		}
		return
	}
	if commandMap != nil {
		if last.command != nil {
			maps.Copy(last.command, commandMap)
		} else {
			last.command = commandMap
		}
	}
	if comment != "" {
		if last.comments != "" {
			last.comments += " " + comment
		} else {
			last.comments = comment
		}
	}
}

// parseMove processes tokens until it has a complete move, then resolves it
// against the legal moves of the current position.
func (p *Parser) parseMove() (*Move, error) {
	legal := p.game.CurrentBoard().MoveLists(&MovesOptions{WithSAN: true}).Legal

	// Handle castling first as it's a special case
	if t := p.currentToken().Type; t == KingsideCastle || t == QueensideCastle {
		want := FlagKingSideCastle
		if t == QueensideCastle {
			want = FlagQueenSideCastle
		}
		for _, m := range legal {
			if m.HasFlag(want) {
				p.advance()
				p.skipCheckSuffix()
				return m.Clone(), nil
			}
		}
		return nil, p.errorf("illegal castle")
	}

	// Parse regular move
	var moveData struct {
		piece      string    // The piece type (if any)
		originFile string    // Disambiguation file
		originRank string    // Disambiguation rank
		destSquare string    // Destination square
		isCapture  bool      // Whether it's a capture
		promotion  PieceType // Promotion piece type
	}

	// First token could be piece, file (for pawn moves), or square
	switch p.currentToken().Type {
	case PIECE:
		moveData.piece = p.currentToken().Value
		p.advance()

		// Check for disambiguation
		switch p.currentToken().Type {
		case FILE:
			moveData.originFile = p.currentToken().Value
			p.advance()
		case RANK:
			moveData.originRank = p.currentToken().Value
			p.advance()
		case DeambiguationSquare:
			// Full square disambiguation (e.g., "Qe8f7" -> piece: Q, origin: e8, dest: f7)
			originSquare := p.currentToken().Value
			if len(originSquare) == 2 {
				moveData.originFile = string(originSquare[0])
				moveData.originRank = string(originSquare[1])
			}
			p.advance()
		}

	case FILE:
		moveData.originFile = p.currentToken().Value
		p.advance()
	}

	// Handle capture
	if p.currentToken().Type == CAPTURE {
		moveData.isCapture = true
		p.advance()
	}

	// Get destination square
	if p.currentToken().Type != SQUARE {
		return nil, p.errorf("expected destination square")
	}
	moveData.destSquare = p.currentToken().Value
	p.advance()

	// Handle promotion
	if p.currentToken().Type == PROMOTION {
		p.advance()
		if p.currentToken().Type != PromotionPiece {
			return nil, p.errorf("expected promotion piece")
		}
		moveData.promotion = PieceTypeFromString(strings.ToUpper(p.currentToken().Value))
		p.advance()
	}

	dest, err := ParseSquare(moveData.destSquare)
	if err != nil {
		return nil, p.errorf("invalid destination square %q", moveData.destSquare)
	}

	wantType := Pawn
	if moveData.piece != "" {
		wantType = PieceTypeFromString(moveData.piece)
	}

	// Find matching legal move
	var matched *Move
	for _, m := range legal {
		if m.s2 != dest || m.piece.Type() != wantType {
			continue
		}
		if moveData.originFile != "" && string(m.s1.FileChar()) != moveData.originFile {
			continue
		}
		if moveData.originRank != "" && string(m.s1.RankChar()) != moveData.originRank {
			continue
		}
		if moveData.isCapture != (m.HasFlag(FlagCapture) || m.HasFlag(FlagEnPassant)) {
			continue
		}
		if m.HasFlag(FlagPromotion) {
			if moveData.promotion == NoPieceType && m.promo.Type() != Queen {
				continue
			}
			if moveData.promotion != NoPieceType && m.promo.Type() != moveData.promotion {
				continue
			}
		} else if moveData.promotion != NoPieceType {
			continue
		}
		matched = m
		break
	}

	if matched == nil {
		return nil, p.errorf("no legal move found for position")
	}

	p.skipCheckSuffix()
	return matched.Clone(), nil
}

// skipCheckSuffix consumes a check or mate marker; the resolved legal move
// already carries the correct flags.
func (p *Parser) skipCheckSuffix() {
	if p.currentToken().Type == CHECK {
		p.advance()
	}
}

func (p *Parser) parseComment() (string, map[string]string, error) {
	p.advance() // Consume "{"

	var comment string
	var commandMap map[string]string

	for p.currentToken().Type != CommentEnd && p.position < len(p.tokens) {
		switch p.currentToken().Type {
		case CommandStart:
			commands, err := p.parseCommand()
			if err != nil {
				return "", nil, err
			}

			// merge commands into commandMap
			if commandMap == nil {
				commandMap = make(map[string]string)
			}
			for k, v := range commands {
				commandMap[k] = v
			}

		case COMMENT:
			comment += p.currentToken().Value // Append plain comment text
		default:
			return "", nil, p.errorf("unexpected token in comment")
		}
		p.advance()
	}

	if p.position >= len(p.tokens) {
		return "", nil, &ParserError{
			Message:  "unterminated comment",
			Position: p.position,
		}
	}

	p.advance() // Consume "}"
	return comment, commandMap, nil
}

func (p *Parser) parseCommand() (map[string]string, error) {
	command := make(map[string]string)
	var key string

	// Consume the opening "["
	p.advance()

	for p.currentToken().Type != CommandEnd && p.position < len(p.tokens) {
		switch p.currentToken().Type {

		case CommandName:
			// The first token in a command is treated as the key
			key = p.currentToken().Value
		case CommandParam:
			// The second token is treated as the value for the current key
			if key != "" {
				command[key] = p.currentToken().Value
				key = "" // Reset key after assigning value
			}
		default:
			return nil, p.errorf("unexpected token in command")
		}
		p.advance()
	}

	if p.position >= len(p.tokens) {
		return nil, &ParserError{
			Message:  "unterminated command",
			Position: p.position,
		}
	}

	return command, nil
}

// parseVariation reads a parenthesized side line. The variation replaces
// the last played move, so the game steps one turn back before the first
// inner move, which is recorded as a new variation child. When the closing
// parenthesis is consumed the active line and cursor are restored.
func (p *Parser) parseVariation() error {
	p.advance() // consume (

	saveBoard := p.game.currentBoard
	saveCursor := p.game.CurrentBoard().cursor
	if !p.game.GoBack() {
		return p.errorf("variation before any move")
	}

	first := true
	for p.currentToken().Type != VariationEnd && p.position < len(p.tokens) {
		switch p.currentToken().Type {
		case MoveNumber:
			p.advance()
			if p.currentToken().Type == DOT {
				p.advance()
			}

		case ELLIPSIS:
			p.advance()

		case VariationStart:
			if err := p.parseVariation(); err != nil {
				return err
			}

		case PIECE, SQUARE, FILE, KingsideCastle, QueensideCastle:
			move, err := p.parseMove()
			if err != nil {
				return err
			}
			if err := p.game.UnsafeMove(move, &PushMoveOptions{NewVariation: first}); err != nil {
				return err
			}
			first = false
			if err := p.collectAnnotations(); err != nil {
				return err
			}

		case CommentStart:
			comment, commandMap, err := p.parseComment()
			if err != nil {
				return err
			}
			p.attachComment(comment, commandMap)

		case NAG:
			if last := p.lastMove(); last != nil {
				last.nag = p.currentToken().Value
			}
			p.advance()

		default:
			p.advance()
		}
	}

	if p.position >= len(p.tokens) {
		return &ParserError{
			Message:  "unterminated variation",
			Position: p.position,
		}
	}

	p.advance() // consume )

	return p.game.SelectTurn(saveBoard, saveCursor)
}

func (p *Parser) parseResult() {
	result := p.currentToken().Value
	switch result {
	case "1-0":
		p.game.outcome = WhiteWon
	case "0-1":
		p.game.outcome = BlackWon
	case "1/2-1/2":
		p.game.outcome = Draw
	default:
		p.game.outcome = NoOutcome
	}
	p.advance()
}

// ReadCoordinateGame reads a whitespace-separated list of coordinate (UCI)
// moves, e.g. "e2e4 e7e5 g1f3", and returns the resulting game. It returns
// ErrNoGameFound when the input is not a coordinate move list.
func ReadCoordinateGame(s string) (*Game, error) {
	if !looksLikeCoordinateMoves(s) {
		return nil, ErrNoGameFound
	}
	return parseCoordinateMovesGame(s)
}

func looksLikeCoordinateMoves(s string) bool {
	if strings.ContainsAny(s, "[]{}()") {
		return false
	}

	toks := splitMoveTokens(s)
	if len(toks) == 0 {
		return false
	}

	for _, t := range toks {
		if !isCoordinateMoveToken(t) {
			return false
		}
	}
	return true
}

func splitMoveTokens(s string) []string {
	raw := strings.Fields(s)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, ",;")
		if t == "" || t == "*" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func isCoordinateMoveToken(t string) bool {
	if len(t) != 4 && len(t) != 5 {
		return false
	}
	if _, err := ParseSquare(t[0:2]); err != nil {
		return false
	}
	if _, err := ParseSquare(t[2:4]); err != nil {
		return false
	}
	if len(t) == 5 {
		switch t[4] {
		case 'q', 'r', 'b', 'n', 'Q', 'R', 'B', 'N':
			return true
		default:
			return false
		}
	}
	return true
}

func parseCoordinateMovesGame(s string) (*Game, error) {
	game := NewGame()
	for i, tok := range splitMoveTokens(s) {
		if err := game.PushNotationMove(strings.ToLower(tok), UCINotation{}, nil); err != nil {
			return nil, fmt.Errorf("chess: illegal move %q at %d: %w", tok, i, err)
		}
	}
	return game, nil
}
