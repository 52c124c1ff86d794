package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"chesscoach/config"
	"chesscoach/game"
	"chesscoach/rules"
)

const help = `commands:
  <move>   play a move in coordinate notation, e.g. e2e4 or e7e8q
  board    show the board
  history  list the moves played so far
  undo     take back your last move and the reply
  new      start a new game
  fen      print the position as FEN
  quit     leave`

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := config.SetupLogger(os.Stderr, cfg.LogLevel, cfg.PrettyLog); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	bot, err := cfg.Bot()
	if err != nil {
		log.Fatal().Err(err).Msg("create bot")
	}
	human, err := cfg.HumanColor()
	if err != nil {
		log.Fatal().Err(err).Msg("human color")
	}
	session, err := game.NewSession(cfg.NewPosition, bot, human)
	if err != nil {
		log.Fatal().Err(err).Msg("start game")
	}

	if err := run(session, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("read input")
	}
}

func run(s *game.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Chess coach: you play %s against %s.\n%s\n\n", s.Human(), s.BotName(), help)
	opening(s, out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		switch cmd := strings.TrimSpace(scanner.Text()); cmd {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, help)
		case "board":
			fmt.Fprint(out, s.Board())
		case "fen":
			fmt.Fprintln(out, s.FEN())
		case "history":
			printHistory(s, out)
		case "undo":
			if err := s.Undo(); err != nil {
				fmt.Fprintln(out, "Cannot undo:", err)
				continue
			}
			fmt.Fprint(out, s.Board())
		case "new":
			if err := s.Reset(); err != nil {
				return err
			}
			opening(s, out)
		default:
			play(s, cmd, out)
		}
	}
}

// opening shows the board and lets the bot move first when it has white.
func opening(s *game.Session, out io.Writer) {
	if reply, note := s.BotMove(); !reply.IsNone() {
		fmt.Fprintf(out, "Computer plays: %s. %s\n", reply, note)
	}
	fmt.Fprint(out, s.Board())
}

func play(s *game.Session, input string, out io.Writer) {
	turn, err := s.Play(input)
	switch {
	case errors.Is(err, rules.ErrMoveSyntax):
		fmt.Fprintln(out, "Invalid input, use coordinate notation such as e2e4.")
		return
	case errors.Is(err, rules.ErrIllegalMove):
		fmt.Fprintln(out, "Illegal move, try again.")
		return
	case err != nil:
		fmt.Fprintln(out, err)
		return
	}

	fmt.Fprintf(out, "You played: %s. %s\n", turn.Human, turn.HumanNote)
	if !turn.Reply.IsNone() {
		fmt.Fprintf(out, "Computer plays: %s. %s\n", turn.Reply, turn.ReplyNote)
	}
	fmt.Fprint(out, s.Board())

	if s.IsOver() {
		fmt.Fprintf(out, "Game over! Result: %s\n", s.Outcome())
		printHistory(s, out)
	}
}

func printHistory(s *game.Session, out io.Writer) {
	fmt.Fprintln(out, "Moves:")
	for _, line := range game.Review(s.History()) {
		fmt.Fprintln(out, line)
	}
}
