// Package game implements the liar's bar game engine.
//
// The main type is Game, which owns all state for one session: the four
// players, the deck, the turn ledger and the challenge resolver. A Game is
// mutated by exactly one goroutine; presentation code only ever sees copies
// through View and the published events.
//
// # Basic Usage
//
// Create a game and drive it directly:
//
//	g, err := game.NewGame(randutil.New(42), game.Config{
//	    Styles: []game.Style{game.Coward, game.Human, game.Augur, game.CunningLiar},
//	})
//	if err := g.Start(); err != nil { ... }
//	g.Trust(deck.MustParseCards("Q"), "", "")
//	res, err := g.Challenge("", "")
//
// Or let an Engine ask each seat's Agent for decisions until the game ends:
//
//	engine, err := game.NewEngine(g, agents, logger)
//	outcome, err := engine.Run(ctx)
//
// # Deterministic Testing
//
// Every random draw (target selection, shuffle, elimination trial) comes from
// the randutil.Source handed to NewGame, so a fixed seed replays a whole game.
// Tests can pass a scripted source to pin individual draws.
//
// # Errors
//
// Errors fall into three families that callers distinguish with errors.Is:
//   - ErrInvalidDecision: a decision with a bad action or cards. Recoverable;
//     the engine retries automated players and reports back to humans.
//   - ErrProtocolMisuse: the caller broke the game protocol, such as a
//     challenge with nothing to challenge or asking for a winner too early.
//   - ErrInvariant: the engine detected corrupted state (deck size mismatch,
//     card conservation failure).
package game
