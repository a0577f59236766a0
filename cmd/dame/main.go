// Command dame is a minimal interactive console for playing against the
// engine: a human picks moves by number from the legal-move list, the
// engine replies using whichever searcher the configured profile
// selects. It is the same kind of caller the excluded GUI and
// tournament driver are — a consumer of the core's external interfaces
// — just implemented here so the module is runnable standalone.
//
// Grounded on the teacher's shell.ShellController and main.go: a
// readline.Instance driving a Readline()-based loop.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/halpen9/dame/alphabeta"
	"github.com/halpen9/dame/board"
	"github.com/halpen9/dame/config"
	"github.com/halpen9/dame/montecarlo"
	"github.com/halpen9/dame/move"
	"github.com/halpen9/dame/piece"
	"github.com/halpen9/dame/profile"
)

type searcher interface {
	BestMove(b *board.Board) *move.Move
}

func main() {
	cfgPath := ""
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if dump, err := cfg.Dump(); err == nil {
		log.Debug().Str("config", dump).Msg("effective configuration")
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mdame>\033[0m ",
		HistoryFile:     "/tmp/dame_readline.tmp",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	engineColor := piece.White
	if strings.EqualFold(cfg.EngineColor, "black") {
		engineColor = piece.Black
	}

	var eng searcher
	if cfg.EngineProfile == profile.MonteCarlo {
		eng = montecarlo.NewSearcher(engineColor, cfg.MonteCarloSims)
	} else {
		eng = alphabeta.NewSearcher(engineColor, cfg.EngineDepth, cfg.EngineProfile)
	}
	humanColor := engineColor.Opponent()

	b := board.InitialBoard()
	showMessage(fmt.Sprintf("You are %s. Enter a move number at each prompt; 'quit' to exit.\n", humanColor), l.Stderr())

	for {
		printBoard(b, l.Stderr())

		if b.TerminalWithDraw() {
			winner, inProgress := b.Winner()
			if !inProgress {
				showMessage(fmt.Sprintf("Game over: %c\n", winner), l.Stderr())
			}
			return
		}

		if b.SideToMove() == humanColor {
			m, quit := promptMove(l, b)
			if quit {
				return
			}
			applyTurn(b, m)
			continue
		}

		m := eng.BestMove(b)
		if m == nil {
			showMessage("Engine resigns: no legal move.\n", l.Stderr())
			return
		}
		log.Info().Str("move", m.String()).Msg("engine plays")
		applyTurn(b, m)
	}
}

func applyTurn(b *board.Board, m *move.Move) {
	side := b.SideToMove()
	b.Apply(m)
	b.SetSideToMove(side.Opponent())
}

func promptMove(l *readline.Instance, b *board.Board) (*move.Move, bool) {
	moves := b.LegalMoves(b.SideToMove())
	for i, m := range moves {
		showMessage(fmt.Sprintf("  [%d] %s", i, m.String()), l.Stderr())
	}
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil, true
		}
		if err != nil {
			return nil, true
		}
		line = strings.TrimSpace(line)
		if line == "quit" {
			return nil, true
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 0 || idx >= len(moves) {
			showMessage("enter a move number from the list above", l.Stderr())
			continue
		}
		return moves[idx], false
	}
}

func printBoard(b *board.Board, w io.Writer) {
	for r := 9; r >= 0; r-- {
		row := make([]string, 10)
		for c := 0; c < 10; c++ {
			row[c] = b.PieceAt(r, c).String()
		}
		fmt.Fprintf(w, "%d %s\n", r, strings.Join(row, " "))
	}
	fmt.Fprintln(w, "  0 1 2 3 4 5 6 7 8 9")
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}
