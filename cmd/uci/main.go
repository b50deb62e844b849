// Command uci is a text-protocol front end for the search engine: it
// reads UCI-style commands from stdin and writes "info"/"bestmove" lines to
// stdout, one command per input line.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oliverans-successor/gooseforge/board"
	"github.com/oliverans-successor/gooseforge/engine"

	"github.com/google/uuid"
)

func main() {
	sessionID := uuid.New().String()
	fmt.Println("info string session", sessionID)
	runLoop(os.Stdin, os.Stdout)
}

func runLoop(in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	b := board.ParseFen(board.Startpos)
	eng := engine.NewEngine()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch strings.ToLower(fields[0]) {
		case "uci":
			fmt.Fprintln(out, "id name Gooseforge")
			fmt.Fprintln(out, "id author gooseforge contributors")
			fmt.Fprintln(out, "uciok")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "ucinewgame":
			b = board.ParseFen(board.Startpos)
			eng.NewGame()
		case "position":
			b = handlePosition(fields, eng, b, out)
		case "go":
			best := handleGo(fields, &b, eng, out)
			if best == 0 {
				fmt.Fprintln(out, "info string no legal moves")
				fmt.Fprintln(out, "bestmove 0000")
			} else {
				fmt.Fprintln(out, "bestmove", best.String())
			}
		case "stop":
			eng.Stop()
		case "quit":
			return
		default:
			fmt.Fprintln(out, "info string unknown command", fields[0])
		}
	}
}

// handlePosition parses "position [startpos|fen <fen>] [moves ...]" and
// returns the resulting board, seeding the engine's repetition tracker with
// every hash the game passed through along the way. A malformed command, an
// invalid FEN string or an illegal move surfaces a single "info string ..." diagnostic and
// leaves prev, the last known-good position, untouched.
func handlePosition(fields []string, eng *engine.Engine, prev board.Board, out *os.File) board.Board {
	if len(fields) < 2 {
		fmt.Fprintln(out, "info string malformed position command")
		return prev
	}

	idx := 1
	var b board.Board
	switch strings.ToLower(fields[idx]) {
	case "startpos":
		parsed, err := board.ParseFEN(board.Startpos)
		if err != nil {
			fmt.Fprintln(out, "info string", err)
			return prev
		}
		b = *parsed
		idx++
	case "fen":
		idx++
		start := idx
		for idx < len(fields) && strings.ToLower(fields[idx]) != "moves" {
			idx++
		}
		parsed, err := board.ParseFEN(strings.Join(fields[start:idx], " "))
		if err != nil {
			fmt.Fprintln(out, "info string", err)
			return prev
		}
		b = *parsed
	default:
		fmt.Fprintln(out, "info string unknown position subcommand", fields[idx])
		return prev
	}

	hashes := []uint64{b.Hash()}

	if idx < len(fields) && strings.ToLower(fields[idx]) == "moves" {
		idx++
		for ; idx < len(fields); idx++ {
			if !applyMoveString(&b, fields[idx]) {
				fmt.Fprintln(out, "info string illegal move", fields[idx])
				return prev
			}
			hashes = append(hashes, b.Hash())
		}
	}

	eng.SetPosition(&b, hashes[:len(hashes)-1])
	return b
}

// applyMoveString finds the legal move matching a UCI move string and plays
// it, since a bare board.ParseMove result lacks the captured/moved piece
// metadata the search relies on.
func applyMoveString(b *board.Board, moveStr string) bool {
	moveStr = strings.ToLower(moveStr)
	legal := b.GenerateLegalMoves()
	for _, m := range legal {
		if m.String() == moveStr {
			b.Apply(m)
			return true
		}
	}
	parsed, err := board.ParseMove(moveStr)
	if err != nil {
		return false
	}
	for _, m := range legal {
		if m.From() == parsed.From() && m.To() == parsed.To() && m.PromotionPieceType() == parsed.PromotionPieceType() {
			b.Apply(m)
			return true
		}
	}
	return false
}

// handleGo parses the "go" subcommand options and runs the search,
// printing one "info depth ..." line per completed iterative-deepening
// depth as it goes.
func handleGo(fields []string, b *board.Board, eng *engine.Engine, out *os.File) board.Move {
	var params engine.SearchParams

	for i := 1; i < len(fields); i++ {
		switch strings.ToLower(fields[i]) {
		case "infinite":
			params.Infinite = true
		case "wtime":
			i++
			params.WhiteTime = parseMS(fields, i)
		case "btime":
			i++
			params.BlackTime = parseMS(fields, i)
		case "winc":
			i++
			params.WhiteInc = parseMS(fields, i)
		case "binc":
			i++
			params.BlackInc = parseMS(fields, i)
		case "movetime":
			i++
			params.MoveTime = parseMS(fields, i)
		case "depth":
			i++
			if i < len(fields) {
				if d, err := strconv.Atoi(fields[i]); err == nil {
					params.MaxDepth = d
				}
			}
		}
	}

	eng.Progress = func(p engine.ProgressReport) {
		fmt.Fprint(out, "info depth ", p.Depth, " score ")
		if p.MateIn != 0 {
			fmt.Fprint(out, "mate ", p.MateIn)
		} else {
			fmt.Fprint(out, "cp ", p.Score)
		}
		fmt.Fprint(out, " nodes ", p.Nodes, " nps ", p.NPS, " time ", p.ElapsedMS, " pv")
		for _, m := range p.PV {
			fmt.Fprint(out, " ", m.String())
		}
		fmt.Fprintln(out)
	}

	return eng.Search(b, params)
}

func parseMS(fields []string, i int) time.Duration {
	if i >= len(fields) {
		return 0
	}
	v, err := strconv.Atoi(fields[i])
	if err != nil || v < 0 {
		return 0
	}
	return time.Duration(v) * time.Millisecond
}
