package chess

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

const svgSquareSize = 45

type boardImageOptions struct {
	lightColor  string
	darkColor   string
	markedColor string
	marked      []Square
}

// A BoardImageOption configures SVG rendering of a board.
type BoardImageOption func(*boardImageOptions)

// SquareColors sets the fill colors of the light and dark squares.
func SquareColors(light, dark string) BoardImageOption {
	return func(o *boardImageOptions) {
		o.lightColor = light
		o.darkColor = dark
	}
}

// MarkSquares highlights the given squares, e.g. the origin and destination
// of the last move.
func MarkSquares(color string, sqs ...Square) BoardImageOption {
	return func(o *boardImageOptions) {
		o.markedColor = color
		o.marked = append(o.marked, sqs...)
	}
}

// WriteBoardSVG writes an SVG rendering of the position to the writer, with
// white at the bottom. Pieces are drawn as unicode chess glyphs.
func WriteBoardSVG(w io.Writer, b *Board, opts ...BoardImageOption) {
	o := &boardImageOptions{
		lightColor:  "#f0d9b5",
		darkColor:   "#b58863",
		markedColor: "#aaa23a",
	}
	for _, f := range opts {
		f(o)
	}

	canvas := svg.New(w)
	canvas.Start(8*svgSquareSize, 8*svgSquareSize)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file <= 7; file++ {
			sq := NewSquare(file, rank)
			x := file * svgSquareSize
			y := (7 - rank) * svgSquareSize

			fill := o.darkColor
			if sq.IsLight() {
				fill = o.lightColor
			}
			for _, m := range o.marked {
				if m == sq {
					fill = o.markedColor
					break
				}
			}
			canvas.Rect(x, y, svgSquareSize, svgSquareSize, "fill:"+fill)

			if p := b.Piece(sq); p != NoPiece {
				canvas.Text(x+svgSquareSize/2, y+svgSquareSize/2, p.Unicode(),
					"font-size:32px;text-anchor:middle;dominant-baseline:central")
			}
		}
	}
	canvas.End()
}
