// bench.go holds a fixed benchmark FEN set and a Bench driver, adapted
// from the teacher's test_data.go into a runtime component (the `-bench`
// CLI flag and its underlying FEN list/node-count report, spec.md §5).
package engine

import "time"

// benchFENs is a small, fixed set of positions used to measure search
// throughput across builds; the mix is a fresh game, a tactical middlegame,
// the spec's S6 scenario FEN and a rook-and-pawn endgame.
var benchFENs = []string{
	FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"rnbqkbnr/pp1p1ppp/2p1p3/8/4P3/3P4/PPPN1PPP/R1BQKBNR b KQkq - 1 5",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
}

// BenchStats summarizes a Bench run.
type BenchStats struct {
	Positions int
	Nodes     uint64
	Elapsed   time.Duration
}

// Nps returns nodes searched per second.
func (s BenchStats) Nps() uint64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(s.Nodes) / s.Elapsed.Seconds())
}

// Bench runs a fixed-depth search over benchFENs and aggregates node
// counts, giving a single comparable throughput number across builds.
func Bench(depth int) (BenchStats, error) {
	start := time.Now()
	var stats BenchStats
	stats.Positions = len(benchFENs)

	for _, fen := range benchFENs {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			return stats, err
		}
		eng := NewEngine(Options{})
		tc := NewFixedDepthTimeControl(depth)
		eng.Play(pos, tc)
		stats.Nodes += eng.Stats.Nodes
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}
