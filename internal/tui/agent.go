package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/game"
)

// TUIAgent connects a running Bubble Tea program to the engine. It is the
// presentation sink (an EventSubscriber) and supplies the human seat's Agent.
type TUIAgent struct {
	model   *TUIModel
	program *tea.Program
	logger  *log.Logger
	done    chan struct{}
}

// NewTUIAgent creates a new TUI-based agent
func NewTUIAgent(logger *log.Logger, opts game.FormattingOptions, programOpts ...tea.ProgramOption) *TUIAgent {
	model := NewTUIModel(logger, opts)
	if len(programOpts) == 0 {
		programOpts = []tea.ProgramOption{tea.WithAltScreen()}
	}

	return &TUIAgent{
		model:   model,
		program: tea.NewProgram(model, programOpts...),
		logger:  logger.WithPrefix("ui"),
		done:    make(chan struct{}),
	}
}

// Model returns the underlying model
func (ti *TUIAgent) Model() *TUIModel {
	return ti.model
}

// Start runs the program in the background. onExit is called once the
// program stops, whether the user quit or Close was called. Close must only
// be called after Start.
func (ti *TUIAgent) Start(onExit func()) {
	go func() {
		defer close(ti.done)
		if onExit != nil {
			defer onExit()
		}
		if _, err := ti.program.Run(); err != nil {
			ti.logger.Error("TUI stopped", "error", err)
		}
	}()
}

// Close stops the program and waits for the terminal to be restored
func (ti *TUIAgent) Close() error {
	ti.model.SendQuitSignal()
	<-ti.done
	return nil
}

// OnEvent implements game.EventSubscriber
func (ti *TUIAgent) OnEvent(event game.GameEvent) {
	ti.program.Send(EventMsg{Event: event})
}

// Human returns the agent for the human seat. Commands come from the input
// line; prompts and refusals are shown in the program.
func (ti *TUIAgent) Human() game.Agent {
	return game.NewHumanAgent(ti.model,
		game.WithPromptDisplay(func(p game.Prompt) {
			ti.program.Send(PromptMsg{Prompt: p})
		}),
		game.WithFeedback(func(err error) {
			ti.program.Send(RejectMsg{Err: err})
		}),
	)
}

// Wait blocks until the user leaves the program or ctx is cancelled. Used
// after game over so the final table stays on screen.
func (ti *TUIAgent) Wait(ctx context.Context) {
	select {
	case <-ti.done:
	case <-ctx.Done():
	}
}
