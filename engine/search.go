// search.go implements the iterative-deepening negamax search of spec.md
// §4.8: alpha-beta with a transposition table, check extensions, move
// ordering, killer moves and quiescence at the horizon. Grounded on the
// teacher's engine.go for the Options/Logger/Stats/Engine shape, but
// trimmed to exactly the algorithm spec.md names — no null-move pruning,
// no late-move reductions, no aspiration windows, no futility or history
// pruning, since none of those appear in spec.md §4.8 (see DESIGN.md).
package engine

const (
	// MateScore is the distinguished mate constant (spec.md §4.8). A
	// checkmate found at ply p scores MateScore-p; implementations must
	// mate-distance adjust it through the TT (hash_table.go).
	MateScore = 49000
	// MateThreshold: any |score| at or above this is "forced mate soon".
	MateThreshold = MateScore - 1000
	// Infinity is strictly greater than any reachable mate score.
	Infinity = MateScore + 1000

	maxExtensions  = 3
	maxSearchDepth = 64
)

// quiescenceMaxPly bounds quiescence recursion (spec.md §4.10/§9: "a
// separate small quiescence depth cap (e.g. 4)... varying it is
// permissible but must be bounded"). A package-level var rather than a
// const so uci/config.go can override it at startup.
var quiescenceMaxPly = 4

// SetQuiescenceDepth overrides the quiescence recursion bound. Intended
// for startup configuration only, never mid-search.
func SetQuiescenceDepth(n int) {
	if n > 0 {
		quiescenceMaxPly = n
	}
}

// Options holds engine-wide tunables (teacher's Options{AnalyseMode},
// extended per SPEC_FULL.md with the knobs a UCI `setoption` can forward).
type Options struct {
	AnalyseMode bool // set from UCI_AnalyseMode; the search does not read it
	HashSizeMB  int
	MultiPV     int
}

// Stats reports search progress for UCI `info` lines.
type Stats struct {
	Nodes     uint64
	Depth     int
	SelDepth  int
	CacheHits uint64
}

// Logger receives search progress notifications (teacher's engine.go
// Logger, kept verbatim as the extension point the uci package's
// infoLogger implements).
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int32, pv []Move)
}

// NulLogger discards all notifications.
type NulLogger struct{}

func (NulLogger) BeginSearch()                            {}
func (NulLogger) EndSearch()                              {}
func (NulLogger) PrintPV(Stats, int32, []Move)             {}

// Engine searches a position for the best move.
type Engine struct {
	Options Options
	Log     Logger
	Stats   Stats

	// History holds Zobrist hashes of every position reached so far in
	// the real game, including the current root; the caller (uci.Loop)
	// appends to it after each move actually played (spec.md §4.8 draw
	// detection: "callers append each position's hash to the history
	// after executing an engine move").
	History []uint64

	hashTable *HashTable
	killers   *killerTable
	tc        *TimeControl
}

// NewEngine builds an Engine with a transposition table sized per
// options (or DefaultHashSizeMB if unset).
func NewEngine(options Options) *Engine {
	if options.HashSizeMB <= 0 {
		options.HashSizeMB = DefaultHashSizeMB
	}
	log := options.logger()
	return &Engine{
		Options:   options,
		Log:       log,
		hashTable: NewHashTable(options.HashSizeMB),
		killers:   newKillerTable(maxSearchDepth + quiescenceMaxPly + maxExtensions + 1),
	}
}

func (o Options) logger() Logger { return NulLogger{} }

// SetLogger overrides the engine's Logger (the zero value leaves
// NulLogger in place).
func (eng *Engine) SetLogger(log Logger) {
	if log != nil {
		eng.Log = log
	}
}

// Hashfull reports the transposition table's occupancy in per-mille, for
// UCI `info hashfull`.
func (eng *Engine) Hashfull() int { return eng.hashTable.Hashfull() }

// SetHashSizeMB replaces the transposition table with a fresh one sized
// to hashSizeMB, discarding all prior entries. Driven by UCI `setoption
// name Hash value <n>`.
func (eng *Engine) SetHashSizeMB(hashSizeMB int) {
	eng.hashTable = NewHashTable(hashSizeMB)
}

// NewGame resets the transposition table's age and clears search history,
// matching spec.md §6.2's `ucinewgame` contract.
func (eng *Engine) NewGame() {
	eng.hashTable.Clear()
	eng.History = nil
}

// Play runs iterative deepening on pos until tc signals a stop, and
// returns the best move found by the last fully completed iteration
// along with its score (side-to-move relative) and a principal variation
// that holds only that best move.
func (eng *Engine) Play(pos *Position, tc *TimeControl) (best Move, score int32, pv []Move) {
	eng.tc = tc
	eng.Stats = Stats{}
	eng.hashTable.IncrementAge()
	eng.Log.BeginSearch()
	defer eng.Log.EndSearch()

	rootMoves := GenerateMoves(pos, AllMoves, nil)
	if len(rootMoves) == 0 {
		return NullMove, 0, nil
	}
	rootScores := make([]int32, len(rootMoves))

	for depth := 1; tc.ContinueDeepening(depth); depth++ {
		eng.Stats.Depth = depth
		iterationScores := make([]int32, len(rootMoves))
		completed := true

		for i, m := range rootMoves {
			child := pos.ExecMove(m)
			history := append(append([]uint64(nil), eng.History...), child.Hash)
			s := -eng.negamax(&child, depth-1, 1, -Infinity, Infinity, 0, history)
			iterationScores[i] = s
			if tc.ShouldStop(eng.Stats.Nodes) {
				completed = false
				break
			}
		}

		if !completed {
			break
		}
		rootScores = iterationScores
		sortRootMoves(rootMoves, rootScores)
		best, score = rootMoves[0], rootScores[0]
		eng.Log.PrintPV(eng.Stats, score, append([]Move{best}, pv...))
	}

	if best == NullMove && len(rootMoves) > 0 {
		sortRootMoves(rootMoves, rootScores)
		best, score = rootMoves[0], rootScores[0]
	}
	return best, score, []Move{best}
}

func sortRootMoves(moves []Move, scores []int32) {
	for i := 1; i < len(moves); i++ {
		s, m := scores[i], moves[i]
		j := i
		for ; j > 0 && scores[j-1] < s; j-- {
			scores[j], moves[j] = scores[j-1], moves[j-1]
		}
		scores[j], moves[j] = s, m
	}
}

// negamax implements spec.md §4.8's algorithm. history contains every
// ancestor position's hash from the real game through pos's immediate
// parent; pos.Hash itself is the last entry appended by the caller.
func (eng *Engine) negamax(pos *Position, depth, ply int, alpha, beta int32, extensions int, history []uint64) int32 {
	eng.Stats.Nodes++
	if ply > eng.Stats.SelDepth {
		eng.Stats.SelDepth = ply
	}
	if eng.Stats.Nodes%nodePollInterval == 0 && eng.tc.ShouldStop(eng.Stats.Nodes) {
		return 0
	}

	if probed, move, usable, ok := eng.hashTable.Probe(pos.Hash, depth, ply, alpha, beta); ok {
		eng.Stats.CacheHits++
		_ = move
		if usable {
			return probed
		}
	}

	inCheck := pos.IsInCheck(pos.SideToMove)
	if inCheck && extensions < maxExtensions {
		depth++
		extensions++
	}

	if depth <= 0 {
		return eng.quiescence(pos, 0, alpha, beta)
	}

	if isDraw(pos, history) {
		eng.hashTable.Store(pos.Hash, 0, depth, ply, Exact, NullMove)
		return 0
	}

	moves := GenerateMoves(pos, AllMoves, nil)
	if len(moves) == 0 {
		if inCheck {
			return -MateScore + int32(ply)
		}
		return 0
	}

	_, hashMove, _, _ := eng.hashTable.Probe(pos.Hash, -1, ply, alpha, beta)
	OrderMoves(pos, moves, hashMove, eng.killers.at(ply))

	bound := UpperBound
	bestMove := NullMove
	bestScore := int32(-Infinity)

	for _, m := range moves {
		child := pos.ExecMove(m)
		childHistory := append(history, child.Hash)
		score := -eng.negamax(&child, depth-1, ply+1, -beta, -alpha, extensions, childHistory)

		if score >= beta {
			eng.hashTable.Store(pos.Hash, beta, depth, ply, LowerBound, m)
			if m.IsQuiet() {
				eng.killers.Record(ply, m)
			}
			return beta
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			bound = Exact
		}
	}

	eng.hashTable.Store(pos.Hash, alpha, depth, ply, bound, bestMove)
	return alpha
}

// isDraw reports 50-move, repetition and insufficient-material draws
// (spec.md §4.8's draw detection, plus the insufficient-material
// supplement recorded in SPEC_FULL.md §5).
func isDraw(pos *Position, history []uint64) bool {
	if pos.FiftyMoveRule() {
		return true
	}
	if pos.InsufficientMaterial() {
		return true
	}
	return isRepetition(history, pos.HalfMoveClock)
}

// isRepetition walks history backwards from one ply back, stepping by two
// (skipping the opponent's plies) up to min(len(history)-1, halfMoves)
// steps, looking for a Zobrist match against the final (current) entry.
func isRepetition(history []uint64, halfMoves int) bool {
	n := len(history)
	if n == 0 {
		return false
	}
	current := history[n-1]
	limit := halfMoves
	if limit > n-1 {
		limit = n - 1
	}
	for i, steps := n-3, 2; i >= 0 && steps <= limit; i, steps = i-2, steps+2 {
		if history[i] == current {
			return true
		}
	}
	return false
}

// quiescence implements spec.md §4.10: stand-pat, then captures only,
// bounded to quiescenceMaxPly.
func (eng *Engine) quiescence(pos *Position, qply int, alpha, beta int32) int32 {
	eng.Stats.Nodes++

	static := Evaluate(pos) * pos.SideToMove.Multiplier()
	if static >= beta {
		return beta
	}
	if static > alpha {
		alpha = static
	}
	if qply >= quiescenceMaxPly {
		return alpha
	}

	moves := GenerateMoves(pos, CapturesOnly, nil)
	OrderMoves(pos, moves, NullMove, [2]Move{})

	for _, m := range moves {
		if SEESign(pos, m) {
			continue // losing capture, never improves a quiescence node
		}
		child := pos.ExecMove(m)
		score := -eng.quiescence(&child, qply+1, -beta, -alpha)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
