package board_test

import (
	"testing"

	"github.com/oliverans-successor/gooseforge/board"
)

// helper: parse empty board
func emptyBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.ParseFEN("8/8/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN empty: %v", err)
	}
	return b
}

func TestIsSquareAttacked_RookFiles(t *testing.T) {
	b := emptyBoard(t)
	// e1 white king, e8 black rook
	e1 := board.Square(0*8 + 4)
	e8 := board.Square(7*8 + 4)
	b.SetPiece(e1, board.WhiteKing)
	b.SetPiece(e8, board.BlackRook)
	if !b.InCheck(board.White) {
		t.Fatalf("expected White in check from rook on file")
	}
	if !b.IsSquareAttacked(e1, board.Black) {
		t.Fatalf("expected e1 attacked by Black")
	}
	// Add a blocker at e3 (white pawn)
	e3 := board.Square(2*8 + 4)
	b.SetPiece(e3, board.WhitePawn)
	if b.IsSquareAttacked(e1, board.Black) {
		t.Fatalf("did not expect e1 attacked after blocker added")
	}
}

func TestIsSquareAttacked_BishopDiagonals(t *testing.T) {
	b := emptyBoard(t)
	// e1 white king, b4 black bishop (b4 -> c3 -> d2 -> e1)
	e1 := board.Square(0*8 + 4)
	b4 := board.Square(3*8 + 1)
	b.SetPiece(e1, board.WhiteKing)
	b.SetPiece(b4, board.BlackBishop)
	if !b.IsSquareAttacked(e1, board.Black) || !b.InCheck(board.White) {
		t.Fatalf("expected e1 attacked by bishop along diagonal")
	}
	// Block at d2
	d2 := board.Square(1*8 + 3)
	b.SetPiece(d2, board.WhitePawn)
	if b.IsSquareAttacked(e1, board.Black) {
		t.Fatalf("did not expect e1 attacked after diagonal blocker")
	}
}

func TestIsSquareAttacked_PawnsKnightsKings(t *testing.T) {
	b := emptyBoard(t)
	// e4 white pawn, d5 black pawn attacks e4; f3 black knight attacks e1; d2 black king attacks e1
	e1 := board.Square(0*8 + 4)
	e4 := board.Square(3*8 + 4)
	d5 := board.Square(4*8 + 3)
	f3 := board.Square(2*8 + 5)
	d2 := board.Square(1*8 + 3)

	b.SetPiece(e1, board.WhiteKing)
	b.SetPiece(e4, board.WhitePawn)
	b.SetPiece(d5, board.BlackPawn)
	if !b.IsSquareAttacked(e4, board.Black) {
		t.Fatalf("expected e4 attacked by black pawn from d5")
	}
	b.SetPiece(f3, board.BlackKnight)
	if !b.IsSquareAttacked(e1, board.Black) {
		t.Fatalf("expected e1 attacked by black knight from f3")
	}
	b.SetPiece(d2, board.BlackKing)
	if !b.IsSquareAttacked(e1, board.Black) {
		t.Fatalf("expected e1 attacked by adjacent black king")
	}
}
