package chess

// A Color is the color of a side or piece.
type Color int8

const (
	// NoColor represents the absence of a color, e.g. on an empty square.
	NoColor Color = iota
	// White represents the white side.
	White
	// Black represents the black side.
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String implements the fmt.Stringer interface.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// Name returns the full name of the color.
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "No Color"
}

// A PieceType is the type of a piece regardless of its color.
type PieceType int8

const (
	// NoPieceType represents the absence of a piece type.
	NoPieceType PieceType = iota
	// Pawn represents a pawn.
	Pawn
	// Knight represents a knight.
	Knight
	// Bishop represents a bishop.
	Bishop
	// Rook represents a rook.
	Rook
	// Queen represents a queen.
	Queen
	// King represents a king.
	King
)

// PieceTypes returns all piece types in ascending value order.
func PieceTypes() []PieceType {
	return []PieceType{Pawn, Knight, Bishop, Rook, Queen, King}
}

// PromotionPieceTypes returns the piece types a pawn may promote to.
func PromotionPieceTypes() []PieceType {
	return []PieceType{Queen, Rook, Bishop, Knight}
}

// String returns the SAN letter of the piece type. Pawns have no letter.
func (pt PieceType) String() string {
	switch pt {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return ""
}

// PieceTypeFromString converts a SAN piece letter into a PieceType.
func PieceTypeFromString(s string) PieceType {
	switch s {
	case "P":
		return Pawn
	case "N":
		return Knight
	case "B":
		return Bishop
	case "R":
		return Rook
	case "Q":
		return Queen
	case "K":
		return King
	}
	return NoPieceType
}

// A Piece is one of the twelve color and type combinations, or NoPiece for an
// empty square. Pieces are interned constants and are compared by equality.
type Piece int8

const (
	// NoPiece represents an empty square.
	NoPiece Piece = iota
	// WhitePawn is a white pawn.
	WhitePawn
	// WhiteKnight is a white knight.
	WhiteKnight
	// WhiteBishop is a white bishop.
	WhiteBishop
	// WhiteRook is a white rook.
	WhiteRook
	// WhiteQueen is a white queen.
	WhiteQueen
	// WhiteKing is a white king.
	WhiteKing
	// BlackPawn is a black pawn.
	BlackPawn
	// BlackKnight is a black knight.
	BlackKnight
	// BlackBishop is a black bishop.
	BlackBishop
	// BlackRook is a black rook.
	BlackRook
	// BlackQueen is a black queen.
	BlackQueen
	// BlackKing is a black king.
	BlackKing
)

// NewPiece returns the piece for the given color and type, or NoPiece when
// either component is missing.
func NewPiece(c Color, pt PieceType) Piece {
	if c == NoColor || pt == NoPieceType {
		return NoPiece
	}
	if c == White {
		return Piece(pt)
	}
	return Piece(pt) + 6
}

// Color returns the color of the piece.
func (p Piece) Color() Color {
	switch {
	case p >= WhitePawn && p <= WhiteKing:
		return White
	case p >= BlackPawn && p <= BlackKing:
		return Black
	}
	return NoColor
}

// Type returns the type of the piece.
func (p Piece) Type() PieceType {
	switch {
	case p >= WhitePawn && p <= WhiteKing:
		return PieceType(p)
	case p >= BlackPawn && p <= BlackKing:
		return PieceType(p - 6)
	}
	return NoPieceType
}

var pieceFENChars = [...]string{"", "P", "N", "B", "R", "Q", "K", "p", "n", "b", "r", "q", "k"}

// String returns the FEN letter of the piece, uppercase for white.
func (p Piece) String() string {
	if p < NoPiece || int(p) >= len(pieceFENChars) {
		return ""
	}
	return pieceFENChars[p]
}

var pieceUnicodes = [...]string{" ", "♙", "♘", "♗", "♖", "♕", "♔", "♟", "♞", "♝", "♜", "♛", "♚"}

// Unicode returns the chess figurine for the piece.
func (p Piece) Unicode() string {
	if p < NoPiece || int(p) >= len(pieceUnicodes) {
		return ""
	}
	return pieceUnicodes[p]
}

// pieceFromFENChar converts a FEN letter to the matching piece.
func pieceFromFENChar(b byte) Piece {
	for p, s := range pieceFENChars {
		if p > 0 && s[0] == b {
			return Piece(p)
		}
	}
	return NoPiece
}
