package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/game"
)

// TUIModel represents the Bubble Tea model for the bar table
type TUIModel struct {
	logger    *log.Logger
	formatter *game.EventFormatter

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	lines       chan string
	quitSignal  chan bool
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Display state, driven entirely by game events and prompts
	view      game.View
	hasView   bool
	prompt    *game.Prompt // set while waiting for the human's command
	sessionID string

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized

	// Test mode
	testMode    bool
	capturedLog []string // For test assertions
}

// EventMsg carries a game event into the update loop
type EventMsg struct {
	Event game.GameEvent
}

// PromptMsg tells the model the human is on the clock
type PromptMsg struct {
	Prompt game.Prompt
}

// RejectMsg reports why the last command was refused
type RejectMsg struct {
	Err error
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger, opts game.FormattingOptions) *TUIModel {
	return NewTUIModelWithOptions(logger, opts, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, opts game.FormattingOptions, testMode bool) *TUIModel {
	// Will be properly sized when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter cards to play (A K Q), 'challenge', or 'quit'"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(moss).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(cream)
	ti.Prompt = "> "

	return &TUIModel{
		logger:      logger.WithPrefix("tui"),
		formatter:   game.NewEventFormatter(opts),
		logViewport: vp,
		actionInput: ti,
		gameLog:     []string{},
		lines:       make(chan string, 1),
		quitSignal:  make(chan bool, 1),
		focusedPane: 1, // Start with input focused
		testMode:    testMode,
		capturedLog: []string{},
	}
}

// SetSessionID sets the session shown in the sidebar
func (m *TUIModel) SetSessionID(id string) {
	m.sessionID = id
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case EventMsg:
		m.HandleEvent(msg.Event)

	case PromptMsg:
		m.SetPrompt(msg.Prompt)

	case RejectMsg:
		m.AddLogEntry(ErrorStyle.Render("✗ " + msg.Err.Error()))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			m.sendLine("quit")
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case key.Matches(msg, keys.Focus):
			m.toggleFocus()
		case key.Matches(msg, keys.Submit) && m.focusedPane == 1:
			m.processAction(strings.TrimSpace(m.actionInput.Value()))
			m.actionInput.SetValue("")
		case m.focusedPane == 0:
			m.scrollLog(msg)
		}
	}

	var cmd tea.Cmd

	// Only update input if it's focused
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *TUIModel) toggleFocus() {
	if m.focusedPane == 0 {
		m.focusedPane = 1
		m.actionInput.Focus()
		return
	}
	m.focusedPane = 0
	m.actionInput.Blur()
}

// scrollLog applies navigation keys while the log pane has focus
func (m *TUIModel) scrollLog(msg tea.KeyMsg) {
	vp := &m.logViewport
	switch {
	case key.Matches(msg, keys.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, keys.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, keys.PageUp):
		vp.HalfPageUp()
	case key.Matches(msg, keys.PageDown):
		vp.HalfPageDown()
	case key.Matches(msg, keys.Top):
		vp.GotoTop()
	case key.Matches(msg, keys.Bottom):
		vp.GotoBottom()
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Action pane (bottom, full width)
	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(smoke).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight-2, 1))
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(moss)
	}
	actionPane := actionStyle.Render(actionContent)

	// Sidebar pane (right side of log pane, same height as log pane)
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1) // Account for border x 2 and action pane

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(smoke).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	// Log pane (top, fills height minus action pane)
	m.logViewport.SetContent(m.renderLogPane())
	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	// On first proper sizing, reset to top to avoid starting scrolled down
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoTop()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(smoke).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(moss)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderLogPane renders the game log pane content
func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane shows the target and every seat's public state
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(" LIAR'S BAR "))
	content.WriteString("\n")
	if m.sessionID != "" {
		content.WriteString(InfoStyle.Render(m.sessionID))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	if !m.hasView {
		content.WriteString(InfoStyle.Render("Waiting for the deal..."))
		return content.String()
	}

	content.WriteString(WarningStyle.Render(fmt.Sprintf("Round %d", m.view.Round)))
	content.WriteString(" | ")
	content.WriteString(TargetCardStyle.Render(fmt.Sprintf("Target: %s", m.view.Target)))
	content.WriteString("\n\n")

	for _, p := range m.view.Players {
		marker := "  "
		if p.Seat == m.view.Current && m.view.Phase == game.PhaseAwaitingDecision {
			marker = "▶ "
		}
		name := p.Name
		if p.Seat == m.view.HumanSeat {
			name += " (you)"
		}
		if !p.Alive {
			content.WriteString(InfoStyle.Render(fmt.Sprintf("%s%s: out", marker, name)))
		} else {
			content.WriteString(fmt.Sprintf("%s%s: %d cards, %d/%d",
				marker, name, len(p.Hand), p.EliminationFactor, game.MaxEliminationFactor))
		}
		content.WriteString("\n")
	}

	return content.String()
}

// renderActionPane renders the action input pane
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder
	help := lipgloss.NewStyle().Foreground(smoke)

	if m.prompt != nil {
		content.WriteString(m.renderHandInfo(*m.prompt))
		content.WriteString("\n")
		content.WriteString(m.renderAvailableActions(*m.prompt))
		content.WriteString("\n")
		m.actionInput.Placeholder = "Enter cards to play (A K Q), 'challenge', or 'quit'"
	} else {
		content.WriteString(HandInfoStyle.Render("Waiting..."))
		content.WriteString("\n")
		m.actionInput.Placeholder = "'quit' to leave the table"
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	switch {
	case m.focusedPane == 0:
		content.WriteString(help.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	case m.prompt == nil:
		content.WriteString(help.Render("Tab to scroll log • Ctrl+C to quit"))
	default:
		content.WriteString(help.Render("Add '-- text' to say something • Enter to submit • Ctrl+C to quit"))
	}

	return content.String()
}

// renderHandInfo renders the human's hand and the claim on the table
func (m *TUIModel) renderHandInfo(p game.Prompt) string {
	info := fmt.Sprintf("Hand: %s  Target: %s  Chambers: %d",
		formatCards(p.Hand, p.Target), p.Target, p.EliminationFactor)
	if last := p.LastPlayer(); last >= 0 {
		info += fmt.Sprintf("  Last claim: %s, %d card(s)", game.SeatName(last), p.LastPlayCount)
	}
	return HandInfoStyle.Render(info)
}

// renderAvailableActions lists what the human may do right now
func (m *TUIModel) renderAvailableActions(p game.Prompt) string {
	var actions []string
	if !p.MustChallenge {
		actions = append(actions, SuccessStyle.Render("[play <cards>]"))
	}
	if p.CanChallenge {
		actions = append(actions, ErrorStyle.Render("[challenge]"))
	}
	return ActionsStyle.Render("Actions: " + strings.Join(actions, " "))
}

// HandleEvent folds a game event into the log and the sidebar state
func (m *TUIModel) HandleEvent(event game.GameEvent) {
	m.view = event.Snapshot()
	m.hasView = true

	if _, ok := event.(game.RoundStartEvent); ok {
		m.AddLogEntry("")
	}
	for _, line := range m.formatter.Format(event) {
		m.AddLogEntry(line)
	}
	if over, ok := event.(game.GameOverEvent); ok {
		m.prompt = nil
		if over.HumanEliminated {
			m.AddLogEntry(ErrorStyle.Render("Press Ctrl+C to leave the bar."))
		} else {
			m.AddLogEntry(SuccessStyle.Render("Press Ctrl+C to leave the bar."))
		}
	}
}

// SetPrompt marks the human as on the clock
func (m *TUIModel) SetPrompt(p game.Prompt) {
	m.prompt = &p
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return // Skip UI updates in test mode
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// processAction forwards a command to whoever is reading. Game commands are
// only accepted while the human is on the clock.
func (m *TUIModel) processAction(input string) {
	switch strings.ToLower(input) {
	case "quit", "exit":
		m.sendLine(input)
		return
	}

	if m.prompt == nil {
		if input != "" {
			m.AddLogEntry(InfoStyle.Render("It is not your turn."))
		}
		return
	}
	if m.sendLine(input) {
		m.prompt = nil
	}
}

func (m *TUIModel) sendLine(line string) bool {
	select {
	case m.lines <- line:
		return true
	default:
		m.logger.Debug("Dropped input, previous line still pending", "line", line)
		return false
	}
}

// ReadLine waits for the next submitted command
func (m *TUIModel) ReadLine(ctx context.Context) (string, error) {
	select {
	case line := <-m.lines:
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// SendQuitSignal asks the program to clear the screen and exit
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Channel is full, quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectLine programmatically submits a command (test mode only)
func (m *TUIModel) InjectLine(line string) error {
	if !m.testMode {
		return fmt.Errorf("line injection only available in test mode")
	}
	if !m.sendLine(line) {
		return fmt.Errorf("input channel full")
	}
	return nil
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
