package engine

import "testing"

// TestPerftStartpos checks the standard perft ladder from the starting
// position (spec.md §8, testable property 6).
func TestPerftStartpos(t *testing.T) {
	want := []uint64{20, 400, 8902, 197281, 4865609}
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("invalid FEN: %v", err)
	}
	maxDepth := len(want)
	if testing.Short() {
		maxDepth = 4
	}
	for i := 0; i < maxDepth; i++ {
		depth := i + 1
		if got := Perft(pos, depth); got != want[i] {
			t.Errorf("perft(%d) = %d, want %d", depth, got, want[i])
		}
	}
}

// perftAnchor is a single (FEN, depth, expected-leaf-count) hard anchor
// from spec.md §8, testable property 6.
type perftAnchor struct {
	name  string
	fen   string
	depth int
	want  uint64
}

var perftAnchors = []perftAnchor{
	{
		name:  "castling-rights-heavy",
		fen:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		depth: 6,
		want:  706045033,
	},
	{
		name:  "promotion-heavy",
		fen:   "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		depth: 5,
		want:  89941194,
	},
}

func TestPerftAnchors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft anchors in short mode")
	}
	for _, a := range perftAnchors {
		pos, err := PositionFromFEN(a.fen)
		if err != nil {
			t.Fatalf("%s: invalid FEN: %v", a.name, err)
		}
		if got := Perft(pos, a.depth); got != a.want {
			t.Errorf("%s: perft(%d) = %d, want %d", a.name, a.depth, got, a.want)
		}
	}
}

// TestPerftBaseCases checks the depth-0/depth-1 identities spec.md §6.3
// states directly: perft(p,0)=1, perft(p,1)=|legal_moves(p)|.
func TestPerftBaseCases(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	if got := Perft(pos, 0); got != 1 {
		t.Errorf("perft(0) = %d, want 1", got)
	}
	moves := GenerateMoves(pos, AllMoves, nil)
	if got := Perft(pos, 1); got != uint64(len(moves)) {
		t.Errorf("perft(1) = %d, want len(moves) = %d", got, len(moves))
	}
}
