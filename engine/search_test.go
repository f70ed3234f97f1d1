package engine

import "testing"

// TestMovesProduceExpectedFEN is spec.md §8's scenario S5: replaying a
// fixed opening sequence from the starting position must reach an exact
// FEN, exercising ExecMove, castling-rights bookkeeping and move counters
// together.
func TestMovesProduceExpectedFEN(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}

	for _, uci := range []string{"c2c4", "g8f6", "d1a4", "g7g6", "g1f3", "f8h6", "a4a3", "e8g8"} {
		m, err := ParseUCIMove(pos, uci)
		if err != nil {
			t.Fatalf("move %s: %v", uci, err)
		}
		next := pos.ExecMove(m)
		pos = &next
	}

	want := "rnbq1rk1/pppppp1p/5npb/8/2P5/Q4N2/PP1PPPPP/RNB1KB1R w KQ - 4 8"
	if got := pos.ToFEN(); got != want {
		t.Errorf("FEN after sequence = %q, want %q", got, want)
	}
}

// TestSearchReturnsLegalMoveAtFixedDepth is spec.md §8's scenario S6: a
// fixed-depth search on a bench position must complete, report a legal
// best move, and report a non-zero node count.
func TestSearchReturnsLegalMoveAtFixedDepth(t *testing.T) {
	pos, err := PositionFromFEN("rnbqkbnr/pp1p1ppp/2p1p3/8/4P3/3P4/PPPN1PPP/R1BQKBNR b KQkq - 1 5")
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}

	eng := NewEngine(Options{})
	tc := NewFixedDepthTimeControl(6)
	best, _, _ := eng.Play(pos, tc)

	if best == NullMove {
		t.Fatal("search returned no move")
	}
	legal := GenerateMoves(pos, AllMoves, nil)
	found := false
	for _, m := range legal {
		if m == best {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("search returned %s, which is not a legal move", best.UCI())
	}
	if eng.Stats.Nodes == 0 {
		t.Error("search reported zero nodes")
	}
}

// TestQuiescenceTerminates is spec.md §8's testable property 10: on any
// position with a finite capture tree, quiescence must return a score
// without recursing unboundedly.
func TestQuiescenceTerminates(t *testing.T) {
	for _, fen := range []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	} {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("%s: invalid FEN: %v", fen, err)
		}
		eng := NewEngine(Options{})
		eng.tc = NewInfiniteTimeControl()
		score := eng.quiescence(pos, 0, -Infinity, Infinity)
		if score <= -Infinity || score >= Infinity {
			t.Errorf("%s: quiescence returned unbounded score %d", fen, score)
		}
	}
}

// TestWinningMaterialScoresPositive is a sanity check on search sign
// conventions: a side up a whole rook with no compensation must evaluate
// as clearly better for the side to move.
func TestWinningMaterialScoresPositive(t *testing.T) {
	pos, err := PositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1")
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	eng := NewEngine(Options{})
	tc := NewFixedDepthTimeControl(3)
	_, score, _ := eng.Play(pos, tc)
	if score <= 0 {
		t.Errorf("expected a clearly winning score for the rook-up side, got %d", score)
	}
}
