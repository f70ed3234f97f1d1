package engine

import (
	"testing"
)

// TestPawnMovesFromStartpos is spec.md §8's scenario S1: a fresh position
// has exactly sixteen pawn moves (eight single pushes, eight double
// pushes).
func TestPawnMovesFromStartpos(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	moves := GenerateMoves(pos, AllMoves, nil)

	var pawnMoves int
	for _, m := range moves {
		if pos.Board.Get(m.Src()).Figure() == Pawn {
			pawnMoves++
		}
	}
	if pawnMoves != 16 {
		t.Errorf("pawn moves from startpos = %d, want 16", pawnMoves)
	}
}

// TestPawnCapturesAndPromotions is spec.md §8's scenario S2: a tactical
// position where White pawn moves must include specific captures and all
// eight promotion variants, and must never push onto an occupied square.
func TestPawnCapturesAndPromotions(t *testing.T) {
	pos, err := PositionFromFEN("k6p/6P1/2r5/p1qP4/1P3p2/5P2/P2p4/7K w QKqk - 0 0")
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	moves := GenerateMoves(pos, AllMoves, nil)
	seen := make(map[string]bool)
	for _, m := range moves {
		seen[m.UCI()] = true
	}

	want := []string{
		"d5c6", "b4c5", "b4a5",
		"g7h8n", "g7h8b", "g7h8r", "g7h8q",
		"g7g8n", "g7g8b", "g7g8r", "g7g8q",
	}
	for _, uci := range want {
		if !seen[uci] {
			t.Errorf("missing expected move %s", uci)
		}
	}

	// b4 is blocked by nothing directly ahead on b5 in this FEN, but c5 is
	// occupied by the enemy queen which must not be a push target: verify
	// no "quiet" b4b5-style push lands on an occupied square by checking
	// every generated non-capture move's destination is actually empty.
	for _, m := range moves {
		if m.IsCapture() || m.IsEnPassant() {
			continue
		}
		if pos.Board.Get(m.Dst()) != NoPiece {
			t.Errorf("quiet move %s pushes onto occupied square", m.UCI())
		}
	}
}

// TestLegalMoveCountTacticalPosition is spec.md §8's scenario S3.
func TestLegalMoveCountTacticalPosition(t *testing.T) {
	pos, err := PositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	moves := GenerateMoves(pos, AllMoves, nil)
	if len(moves) != 48 {
		t.Errorf("legal move count = %d, want 48", len(moves))
	}
}

// TestEnPassantResolvesPawnCheck is spec.md §8's scenario S4: Black's king
// on c5 is in check from the pawn that just double-pushed to d4; the seven
// king moves plus the en passant capture c4xd3, which removes the checker,
// make eight legal moves.
func TestEnPassantResolvesPawnCheck(t *testing.T) {
	pos, err := PositionFromFEN("8/8/8/2k5/2pP4/8/B7/4K3 b - d3 0 3")
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	moves := GenerateMoves(pos, AllMoves, nil)
	if len(moves) != 8 {
		t.Errorf("legal move count = %d, want 8", len(moves))
	}
	foundEP := false
	for _, m := range moves {
		if m.IsEnPassant() && m.UCI() == "c4d3" {
			foundEP = true
		}
	}
	if !foundEP {
		t.Errorf("en passant c4d3 missing: it captures the checking pawn and is legal, got %v", moves)
	}
}

// TestMateDetection is spec.md §8's testable property 9: Black is not
// mated, but the e7 rook is pinned by the e6 queen and may only capture it,
// and the king's only safe squares are d8 and f8, so exactly three legal
// moves exist.
func TestMateDetection(t *testing.T) {
	pos, err := PositionFromFEN("4k3/4r3/4Q3/8/8/8/8/3K4 b - - 5 4")
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	moves := GenerateMoves(pos, AllMoves, nil)
	if len(moves) != 3 {
		t.Errorf("legal move count = %d, want 3", len(moves))
	}
}

// TestCastlingRightsRevocation is spec.md §8's testable property 8.
func TestCastlingRightsRevocation(t *testing.T) {
	base := "r3k2r/8/8/R6R/r6r/8/8/R3K2R w KQkq - 0 12"
	// The same placement with Black to move, for the rook captures.
	baseBlack := "r3k2r/8/8/R6R/r6r/8/8/R3K2R b KQkq - 0 12"

	t.Run("white-castles-kingside", func(t *testing.T) {
		pos, _ := PositionFromFEN(base)
		m, err := ParseUCIMove(pos, "e1g1")
		if err != nil {
			t.Fatalf("e1g1 not found: %v", err)
		}
		next := pos.ExecMove(m)
		if next.Castling&(WhiteOO|WhiteOOO) != 0 {
			t.Errorf("white castling rights not cleared after O-O: %v", next.Castling)
		}
	})

	t.Run("white-castles-queenside", func(t *testing.T) {
		pos, _ := PositionFromFEN(base)
		m, err := ParseUCIMove(pos, "e1c1")
		if err != nil {
			t.Fatalf("e1c1 not found: %v", err)
		}
		next := pos.ExecMove(m)
		if next.Castling&(WhiteOO|WhiteOOO) != 0 {
			t.Errorf("white castling rights not cleared after O-O-O: %v", next.Castling)
		}
	})

	t.Run("black-captures-a1-rook", func(t *testing.T) {
		pos, _ := PositionFromFEN(baseBlack)
		m, err := ParseUCIMove(pos, "a4a1")
		if err != nil {
			t.Fatalf("a4a1 not found: %v", err)
		}
		next := pos.ExecMove(m)
		if next.Castling&WhiteOOO != 0 {
			t.Errorf("white queenside right should be cleared after a4xa1, got %v", next.Castling)
		}
		if next.Castling&WhiteOO == 0 {
			t.Errorf("white kingside right should be preserved after a4xa1, got %v", next.Castling)
		}
	})

	t.Run("black-captures-h1-rook", func(t *testing.T) {
		pos, _ := PositionFromFEN(baseBlack)
		m, err := ParseUCIMove(pos, "h4h1")
		if err != nil {
			t.Fatalf("h4h1 not found: %v", err)
		}
		next := pos.ExecMove(m)
		if next.Castling&WhiteOO != 0 {
			t.Errorf("white kingside right should be cleared after h4xh1, got %v", next.Castling)
		}
		if next.Castling&WhiteOOO == 0 {
			t.Errorf("white queenside right should be preserved after h4xh1, got %v", next.Castling)
		}
	})
}

// TestMVVLVAOrdering is spec.md §8's testable property 7: in the named
// position, {d3xc4, d2xc4, g1xf3, e4-e5} must order victim-value-first
// (pawn-takes-queen, then knight-takes-queen, then knight-takes-rook),
// with the quiet push last. The four candidate moves are built directly
// from src/dst rather than taken from legal generation, since the FEN's
// side to move is Black and these are White's candidate replies — this
// scenario tests moveScore's ordering rule in isolation, not legality.
func TestMVVLVAOrdering(t *testing.T) {
	pos, err := PositionFromFEN("rnb1kbn1/pp1p1ppp/2p1p3/8/2q1P3/3P1r2/PPPN1PPP/R1BQKBNR b KQq - 1 5")
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}

	sq := func(s string) Square {
		q, err := SquareFromString(s)
		if err != nil {
			t.Fatalf("bad square %q: %v", s, err)
		}
		return q
	}

	moves := []Move{
		NewMove(sq("d3"), sq("c4"), Capture), // pawn takes queen
		NewMove(sq("d2"), sq("c4"), Capture), // knight takes queen
		NewMove(sq("g1"), sq("f3"), Capture), // knight takes rook
		NewMove(sq("e4"), sq("e5"), Silent),  // quiet push
	}
	OrderMoves(pos, moves, NullMove, [2]Move{})

	want := []string{"d3c4", "d2c4", "g1f3", "e4e5"}
	for i, m := range moves {
		if m.UCI() != want[i] {
			t.Errorf("position %d: got %s, want %s (full order %v)", i, m.UCI(), want[i], moves)
		}
	}
}
