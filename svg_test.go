package chess

import (
	"strings"
	"testing"
)

func TestWriteBoardSVG(t *testing.T) {
	b := mustBoard(t, StartingFEN)
	var sb strings.Builder
	WriteBoardSVG(&sb, b)
	out := sb.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not an SVG document")
	}
	if got := strings.Count(out, "<rect"); got != 64 {
		t.Fatalf("expected 64 squares but got %d", got)
	}
	// 32 piece glyphs
	if got := strings.Count(out, "<text"); got != 32 {
		t.Fatalf("expected 32 piece glyphs but got %d", got)
	}
	if !strings.Contains(out, WhiteKing.Unicode()) || !strings.Contains(out, BlackQueen.Unicode()) {
		t.Fatal("expected unicode piece glyphs in the output")
	}
	if !strings.Contains(out, "#f0d9b5") || !strings.Contains(out, "#b58863") {
		t.Fatal("expected the default square colors")
	}
}

func TestWriteBoardSVGOptions(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/8/8/8/4K2k w - - 0 1")
	var sb strings.Builder
	WriteBoardSVG(&sb, b, SquareColors("#ffffff", "#000000"), MarkSquares("#ff0000", E1))
	out := sb.String()

	if !strings.Contains(out, "#ffffff") || !strings.Contains(out, "#000000") {
		t.Fatal("expected the configured square colors")
	}
	if strings.Count(out, "#ff0000") != 1 {
		t.Fatalf("expected exactly one marked square, got %d", strings.Count(out, "#ff0000"))
	}
}
