package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/game"
)

// stdinReader reads lines on a goroutine so a pending read never blocks
// cancellation.
type stdinReader struct {
	lines chan string
	errs  chan error
}

func newStdinReader(r io.Reader) *stdinReader {
	s := &stdinReader{
		lines: make(chan string),
		errs:  make(chan error, 1),
	}
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			s.lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			s.errs <- err
			return
		}
		s.errs <- io.EOF
	}()
	return s
}

func (s *stdinReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case line := <-s.lines:
		return line, nil
	case err := <-s.errs:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// plainSink prints events as text lines
type plainSink struct {
	out       io.Writer
	formatter *game.EventFormatter
}

func (p *plainSink) OnEvent(event game.GameEvent) {
	if _, ok := event.(game.RoundStartEvent); ok {
		fmt.Fprintln(p.out)
	}
	for _, line := range p.formatter.Format(event) {
		fmt.Fprintln(p.out, line)
	}
}

func plainHuman(in io.Reader, out io.Writer) game.Agent {
	return game.NewHumanAgent(newStdinReader(in),
		game.WithPromptDisplay(func(p game.Prompt) {
			fmt.Fprintf(out, "\nYour hand: %s  target %s  chambers %d\n", describeHand(p.Hand), p.Target, p.EliminationFactor)
			switch {
			case p.MustChallenge:
				fmt.Fprint(out, "Your hand is empty, you must challenge > ")
			case p.CanChallenge:
				fmt.Fprintf(out, "Play cards as %s or 'challenge' > ", p.Target)
			default:
				fmt.Fprintf(out, "Play cards as %s > ", p.Target)
			}
		}),
		game.WithFeedback(func(err error) {
			fmt.Fprintf(out, "✗ %v\n", err)
		}),
	)
}

func describeHand(cards deck.Cards) string {
	if len(cards) == 0 {
		return "empty"
	}
	return cards.String()
}
