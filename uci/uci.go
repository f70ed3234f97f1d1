// Package uci implements the command surface of spec.md §6.2 against a
// *engine.Engine and *engine.TimeControl: a synchronous read-dispatch
// loop, since copy-make and the single-slot transposition table carry no
// concurrent search state that would justify the teacher's
// idle/ponder-channel goroutine choreography (see DESIGN.md).
package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kestrelchess/kestrel/engine"
)

const engineName = "kestrel"
const engineAuthor = "kestrel contributors"

// Loop reads UCI commands from an io.Reader and writes protocol
// responses to an io.Writer. stdout must stay protocol-clean; anything
// written elsewhere (e.g. -verbose diagnostics) belongs on a separate
// stream entirely (cmd/kestrel/main.go keeps that split).
type Loop struct {
	Engine *engine.Engine
	Out    io.Writer

	pos *engine.Position
}

// NewLoop builds a Loop with a fresh Engine and the startpos loaded.
func NewLoop(out io.Writer) *Loop {
	pos, _ := engine.PositionFromFEN(engine.FENStartPos)
	l := &Loop{Out: out, pos: pos}
	l.Engine = engine.NewEngine(engine.Options{})
	l.Engine.SetLogger(&infoLogger{out: out, eng: l.Engine})
	return l
}

// Run reads one command per line from in until `quit` or EOF.
func (l *Loop) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := l.dispatch(line)
		if err != nil {
			log.Printf("Error parsing %q: %v", line, err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

var reCmd = regexp.MustCompile(`^\S+`)

func (l *Loop) dispatch(line string) (quit bool, err error) {
	cmd := reCmd.FindString(line)
	switch cmd {
	case "uci":
		l.cmdUCI()
	case "isready":
		fmt.Fprintln(l.Out, "readyok")
	case "ucinewgame":
		l.Engine.NewGame()
	case "setoption":
		err = l.cmdSetOption(line)
	case "position":
		err = l.cmdPosition(line)
	case "go":
		err = l.cmdGo(line)
	case "stop":
		// No background search goroutine to interrupt: cmdGo already
		// blocked this very call until completion, so there is nothing
		// in flight to stop. Kept as a no-op for protocol compliance.
	case "perft":
		err = l.cmdPerft(line)
	case "eval":
		fmt.Fprintf(l.Out, "info score cp %d\n", engine.Evaluate(l.pos)*l.pos.SideToMove.Multiplier())
	case "quit":
		quit = true
	default:
		err = fmt.Errorf("unhandled command %q", cmd)
	}
	return quit, err
}

func (l *Loop) cmdUCI() {
	fmt.Fprintf(l.Out, "id name %s\n", engineName)
	fmt.Fprintf(l.Out, "id author %s\n", engineAuthor)
	fmt.Fprintln(l.Out)
	fmt.Fprintf(l.Out, "option name Hash type spin default %d min 1 max 65536\n", engine.DefaultHashSizeMB)
	fmt.Fprintln(l.Out, "option name UCI_AnalyseMode type check default false")
	fmt.Fprintln(l.Out, "uciok")
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (l *Loop) cmdSetOption(line string) error {
	m := reOption.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("invalid setoption arguments")
	}
	name, hasValue, value := m[1], m[3] != "", m[3]

	switch name {
	case "Clear Hash":
		l.Engine.NewGame()
		return nil
	}
	if !hasValue {
		return fmt.Errorf("missing setoption value for %q", name)
	}
	switch name {
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		l.Engine.SetHashSizeMB(mb)
	case "UCI_AnalyseMode":
		mode, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		l.Engine.Options.AnalyseMode = mode
	default:
		return fmt.Errorf("unhandled option %q", name)
	}
	return nil
}

func (l *Loop) cmdPosition(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *engine.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos, err = engine.PositionFromFEN(engine.FENStartPos)
		i = 1
	case "fen":
		for i = 1; i < len(args) && args[i] != "moves"; i++ {
		}
		pos, err = engine.PositionFromFEN(strings.Join(args[1:i], " "))
	default:
		return fmt.Errorf("unknown position command: %q", args[0])
	}
	if err != nil {
		return err
	}

	history := []uint64{pos.Hash}
	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", args[i])
		}
		for _, s := range args[i+1:] {
			move, err := engine.ParseUCIMove(pos, s)
			if err != nil {
				log.Printf("Illegal move: %q", s)
				continue
			}
			child := pos.ExecMove(move)
			pos = &child
			history = append(history, pos.Hash)
		}
	}

	l.pos = pos
	l.Engine.History = history
	return nil
}

func (l *Loop) cmdGo(line string) error {
	args := strings.Fields(line)[1:]
	clock := engine.ClockInfo{}
	var tc *engine.TimeControl

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "infinite":
			tc = engine.NewInfiniteTimeControl()
		case "depth":
			i++
			d, _ := strconv.Atoi(args[i])
			tc = engine.NewFixedDepthTimeControl(d)
		case "nodes":
			i++
			n, _ := strconv.ParseUint(args[i], 10, 64)
			tc = engine.NewFixedNodesTimeControl(n)
		case "movetime":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc = engine.NewFixedTimeTimeControl(time.Duration(ms) * time.Millisecond)
		case "wtime":
			i++
			ms, _ := strconv.Atoi(args[i])
			clock.WTime = time.Duration(ms) * time.Millisecond
		case "btime":
			i++
			ms, _ := strconv.Atoi(args[i])
			clock.BTime = time.Duration(ms) * time.Millisecond
		case "winc":
			i++
			ms, _ := strconv.Atoi(args[i])
			clock.WInc = time.Duration(ms) * time.Millisecond
		case "binc":
			i++
			ms, _ := strconv.Atoi(args[i])
			clock.BInc = time.Duration(ms) * time.Millisecond
		case "movestogo":
			i++
			n, _ := strconv.Atoi(args[i])
			clock.MovesToGo = n
		case "ponder":
			// Pondering is not implemented: the loop is synchronous and
			// has no background search to keep running past ponderhit.
		default:
			return fmt.Errorf("invalid go command %q", args[i])
		}
	}

	if tc == nil {
		tc = engine.NewVariableTimeControl(l.pos, clock)
	}

	best, _, _ := l.Engine.Play(l.pos, tc)
	if best == engine.NullMove {
		fmt.Fprintln(l.Out, "bestmove (none)")
	} else {
		fmt.Fprintf(l.Out, "bestmove %s\n", best.UCI())
	}
	return nil
}

func (l *Loop) cmdPerft(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected depth argument for 'perft'")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	nodes := engine.Perft(l.pos, depth)
	fmt.Fprintf(l.Out, "perft %d nodes %d\n", depth, nodes)
	return nil
}

// infoLogger implements engine.Logger, writing one `info` line per
// completed iterative-deepening iteration (spec.md §6.2).
type infoLogger struct {
	out   io.Writer
	start time.Time
	eng   *engine.Engine
}

func (lg *infoLogger) BeginSearch() { lg.start = time.Now() }
func (lg *infoLogger) EndSearch()   {}

func (lg *infoLogger) PrintPV(stats engine.Stats, score int32, pv []engine.Move) {
	elapsed := time.Since(lg.start)
	if elapsed <= 0 {
		elapsed = time.Microsecond
	}
	millis := uint64(elapsed / time.Millisecond)
	nps := uint64(float64(stats.Nodes) / elapsed.Seconds())

	fmt.Fprintf(lg.out, "info depth %d seldepth %d ", stats.Depth, stats.SelDepth)
	switch {
	case score >= engine.MateThreshold:
		fmt.Fprintf(lg.out, "score mate %d ", (engine.MateScore-score+1)/2)
	case score <= -engine.MateThreshold:
		fmt.Fprintf(lg.out, "score mate %d ", -(engine.MateScore+score+1)/2)
	default:
		fmt.Fprintf(lg.out, "score cp %d ", score)
	}
	fmt.Fprintf(lg.out, "time %d nodes %d nps %d hashfull %d", millis, stats.Nodes, nps, lg.eng.Hashfull())

	fmt.Fprint(lg.out, " pv")
	for _, m := range pv {
		fmt.Fprintf(lg.out, " %s", m.UCI())
	}
	fmt.Fprintln(lg.out)
}
