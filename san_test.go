package chess

import (
	"errors"
	"testing"
)

func TestEncodeSANDisambiguation(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		uci  string
		san  string
	}{
		{
			name: "no disambiguation needed",
			fen:  StartingFEN,
			uci:  "g1f3",
			san:  "Nf3",
		},
		{
			name: "file disambiguation",
			fen:  "4k3/8/8/8/8/8/8/N1N1K3 w - - 0 1",
			uci:  "a1b3",
			san:  "Nab3",
		},
		{
			name: "rank disambiguation",
			fen:  "4k3/8/8/1N6/8/8/8/1N2K3 w - - 0 1",
			uci:  "b1c3",
			san:  "N1c3",
		},
		{
			name: "full square disambiguation",
			fen:  "7k/7p/8/8/4Q2Q/8/8/1K5Q w - - 0 1",
			uci:  "h4e1",
			san:  "Qh4e1",
		},
		{
			name: "queen file disambiguation in the same position",
			fen:  "7k/7p/8/8/4Q2Q/8/8/1K5Q w - - 0 1",
			uci:  "e4e1",
			san:  "Qee1",
		},
		{
			name: "queen rank disambiguation in the same position",
			fen:  "7k/7p/8/8/4Q2Q/8/8/1K5Q w - - 0 1",
			uci:  "h1e1",
			san:  "Q1e1",
		},
		{
			name: "pawn capture carries the origin file",
			fen:  "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
			uci:  "e4d5",
			san:  "exd5",
		},
		{
			name: "promotion with capture and check",
			fen:  "2rk4/1P6/3K4/8/8/8/8/4R3 w - - 0 1",
			uci:  "b7c8q",
			san:  "bxc8=Q+",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			m, err := UCINotation{}.Decode(b, tt.uci)
			if err != nil {
				t.Fatal(err)
			}
			if got := (AlgebraicNotation{}).Encode(b, m); got != tt.san {
				t.Errorf("Encode(%s) = %q, want %q", tt.uci, got, tt.san)
			}
		})
	}
}

func TestDecodeSAN(t *testing.T) {
	b := mustBoard(t, StartingFEN)
	m, err := AlgebraicNotation{}.Decode(b, "e4")
	if err != nil {
		t.Fatal(err)
	}
	if m.S1() != E2 || m.S2() != E4 {
		t.Fatalf("expected e2e4 but got %v", m)
	}

	// trailing annotation and check glyphs are ignored
	for _, s := range []string{"e4!", "e4!?", "e4??"} {
		if _, err := (AlgebraicNotation{}).Decode(b, s); err != nil {
			t.Errorf("Decode(%q) unexpectedly failed: %v", s, err)
		}
	}
}

func TestDecodeSANError(t *testing.T) {
	b := mustBoard(t, StartingFEN)
	_, err := AlgebraicNotation{}.Decode(b, "Qd4")
	if err == nil {
		t.Fatal("expected an error for an impossible move")
	}
	var moveErr *MoveError
	if !errors.As(err, &moveErr) {
		t.Fatalf("expected a MoveError but got %T", err)
	}
	if moveErr.Input != "Qd4" {
		t.Fatalf("expected input %q but got %q", "Qd4", moveErr.Input)
	}
	if len(moveErr.LegalMoves) != 20 {
		t.Fatalf("expected 20 legal alternatives but got %d", len(moveErr.LegalMoves))
	}
}

func TestDecodeSANPermissive(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		san  string
		uci  string
	}{
		{
			name: "over-disambiguated knight move",
			fen:  StartingFEN,
			san:  "Ng1f3",
			uci:  "g1f3",
		},
		{
			name: "castling with zeros",
			fen:  "4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			san:  "0-0",
			uci:  "e1g1",
		},
		{
			name: "queen side castling with zeros",
			fen:  "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1",
			san:  "0-0-0",
			uci:  "e1c1",
		},
		{
			name: "bare promotion defaults to the queen",
			fen:  "8/P6k/8/8/8/8/8/7K w - - 0 1",
			san:  "a8",
			uci:  "a7a8q",
		},
		{
			name: "promotion without equals sign",
			fen:  "8/P6k/8/8/8/8/8/7K w - - 0 1",
			san:  "a8R",
			uci:  "a7a8r",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			m, err := AlgebraicNotation{Permissive: true}.Decode(b, tt.san)
			if err != nil {
				t.Fatal(err)
			}
			if m.UCI() != tt.uci {
				t.Errorf("Decode(%q) = %s, want %s", tt.san, m.UCI(), tt.uci)
			}

			// the strict decoder must reject the same input
			if _, err := (AlgebraicNotation{}).Decode(b, tt.san); err == nil {
				t.Errorf("strict Decode(%q) unexpectedly succeeded", tt.san)
			}
		})
	}
}

func TestDecodeSANPermissiveAmbiguous(t *testing.T) {
	// both knights reach b3; a bare Nb3 stays ambiguous even permissively
	b := mustBoard(t, "4k3/8/8/8/8/8/8/N1N1K3 w - - 0 1")
	if _, err := (AlgebraicNotation{Permissive: true}).Decode(b, "Nb3"); err == nil {
		t.Fatal("expected ambiguous input to be rejected")
	}
	if _, err := (AlgebraicNotation{Permissive: true}).Decode(b, "Nab3"); err != nil {
		t.Fatalf("file-disambiguated input should resolve: %v", err)
	}
}

func TestUCIDecode(t *testing.T) {
	b := mustBoard(t, StartingFEN)
	m, err := UCINotation{}.Decode(b, "e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if m.S1() != E2 || m.S2() != E4 {
		t.Fatalf("expected e2e4 but got %v", m)
	}

	if _, err := (UCINotation{}).Decode(b, "e2e5"); err == nil {
		t.Fatal("expected an error for an illegal move")
	}
	if _, err := (UCINotation{}).Decode(b, "xyzw"); err == nil {
		t.Fatal("expected an error for garbage input")
	}

	// a promotion without a letter defaults to the queen
	b = mustBoard(t, "8/P6k/8/8/8/8/8/7K w - - 0 1")
	m, err = UCINotation{}.Decode(b, "a7a8")
	if err != nil {
		t.Fatal(err)
	}
	if m.Promo() != WhiteQueen {
		t.Fatalf("expected a queen promotion but got %v", m.Promo())
	}
	m, err = UCINotation{}.Decode(b, "a7a8n")
	if err != nil {
		t.Fatal(err)
	}
	if m.Promo() != WhiteKnight {
		t.Fatalf("expected a knight promotion but got %v", m.Promo())
	}
}

func TestMoveLAN(t *testing.T) {
	b := mustBoard(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	m, err := UCINotation{}.Decode(b, "e4d5")
	if err != nil {
		t.Fatal(err)
	}
	if m.LAN() != "e4xd5" {
		t.Fatalf("expected e4xd5 but got %s", m.LAN())
	}
	m, err = UCINotation{}.Decode(b, "g1f3")
	if err != nil {
		t.Fatal(err)
	}
	if m.LAN() != "g1-f3" {
		t.Fatalf("expected g1-f3 but got %s", m.LAN())
	}
}
