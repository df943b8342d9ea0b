package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/game"
)

// ErrMalformedResponse is returned when a model reply is not the JSON object
// we asked for. It wraps game.ErrInvalidDecision so the engine retries.
var ErrMalformedResponse = fmt.Errorf("%w: malformed model response", game.ErrInvalidDecision)

type response struct {
	Thought    string          `json:"thought"`
	Action     string          `json:"action"`
	Cards      json.RawMessage `json:"cards"`
	Statements json.RawMessage `json:"misleading_statements"`
}

// ParseResponse extracts a decision from a model reply. Markdown fences and
// surrounding prose are ignored. Unknown actions come back as
// game.ActionUnknown so that validation rejects them.
func ParseResponse(text string) (game.Decision, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return game.Decision{}, fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}

	var r response
	if err := json.Unmarshal([]byte(text[start:end+1]), &r); err != nil {
		return game.Decision{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	cards, err := parseCards(r.Cards)
	if err != nil {
		return game.Decision{}, fmt.Errorf("%w: cards: %w", ErrMalformedResponse, err)
	}

	return game.Decision{
		Action:    game.ParseAction(r.Action),
		Cards:     cards,
		Rationale: r.Thought,
		Statement: parseStatements(r.Statements),
	}, nil
}

// parseCards accepts ["A", "K"], ["AK"] or "A K"
func parseCards(raw json.RawMessage) (deck.Cards, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return deck.ParseCards(strings.Join(list, " "))
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return deck.ParseCards(s)
	}
	return nil, errors.New("expected a list or string of card names")
}

func parseStatements(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.TrimSpace(strings.Join(list, " "))
	}
	return ""
}
