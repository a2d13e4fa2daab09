package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"knowva_cli/pkg/answer"
	"knowva_cli/pkg/chat"
	"knowva_cli/pkg/config"
	"knowva_cli/pkg/ui/components/input"
	"knowva_cli/pkg/ui/components/messagelist"
	"knowva_cli/pkg/ui/components/shell"
	"knowva_cli/pkg/ui/components/viewport"
	"knowva_cli/pkg/ui/components/welcome"
	"knowva_cli/pkg/ui/styles"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const (
	keyHints  = "enter send · ↑/↓ scroll · ctrl+y copy · ctrl+s save · esc quit"
	statusTTL = 4 * time.Second
)

// Model represents the Bubble Tea application state
type Model struct {
	ctx context.Context
	cfg config.Config

	// Conversation state and the service answering it
	conversation *chat.Conversation
	asker        answer.Asker

	// UI Components
	viewport viewport.ChatViewport
	input    input.Model
	spinner  spinner.Model
	markdown *messagelist.Markdown
	layout   *LayoutManager

	// UI state
	width     int
	height    int
	ready     bool
	status    string
	statusSeq int

	now func() time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context passed to answer requests.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithConversation replaces the empty conversation the model starts with.
func WithConversation(c *chat.Conversation) Option {
	return func(m *Model) {
		if c != nil {
			m.conversation = c
		}
	}
}

// WithClock overrides the time used for transcript names.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// NewModel creates a new Bubble Tea model
func NewModel(cfg config.Config, asker answer.Asker, opts ...Option) Model {
	m := Model{
		ctx:          context.Background(),
		cfg:          cfg,
		conversation: chat.NewConversation(),
		asker:        asker,
		viewport:     viewport.NewChatViewport(),
		input:        input.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.ThinkingStyle),
		),
		layout: NewLayoutManager(),
		now:    time.Now,
	}
	if cfg.Markdown {
		m.markdown = messagelist.NewMarkdown(cfg.MarkdownStyle)
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Conversation exposes the state being displayed.
func (m Model) Conversation() *chat.Conversation {
	return m.conversation
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

// Message types produced by the answer command

type answerMsg struct {
	answer answer.Answer
}

type answerErrMsg struct {
	err error
}

type statusClearMsg struct {
	seq int
}

// askCmd calls the answer service off the UI loop.
func askCmd(ctx context.Context, asker answer.Asker, question string) tea.Cmd {
	return func() tea.Msg {
		ans, err := asker.Ask(ctx, question)
		if err != nil {
			return answerErrMsg{err: err}
		}
		return answerMsg{answer: ans}
	}
}

// Update handles messages (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case answerMsg:
		m.conversation.Resolve(msg.answer)
		slog.Info("answer_received",
			"sources", len(msg.answer.Sources),
			"confidence", msg.answer.Confidence,
		)
		return m.settle()

	case answerErrMsg:
		m.conversation.Fail(msg.err)
		slog.Warn("answer_failed", "error", msg.err)
		return m.settle()

	case spinner.TickMsg:
		if !m.conversation.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh(false)
		return m, cmd

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	// Paste and cursor blink go to the input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		return m.submit()
	case "up":
		m.viewport.ScrollUp()
		return m, nil
	case "down":
		m.viewport.ScrollDown()
		return m, nil
	case "pgup":
		m.viewport.PageUp()
		return m, nil
	case "pgdown":
		m.viewport.PageDown()
		return m, nil
	case "home":
		m.viewport.GotoTop()
		return m, nil
	case "end":
		m.viewport.GotoBottom()
		return m, nil
	case "ctrl+y":
		return m.copyLastAnswer()
	case "ctrl+s":
		return m.exportTranscript()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the typed question. Only one request may be in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.conversation.Pending() {
		return m, nil
	}

	text, ok := m.input.Submit()
	if !ok {
		return m, nil
	}
	question, ok := m.conversation.Begin(text)
	if !ok {
		return m, nil
	}

	slog.Info("question_submitted", "length", len(question))
	m.input.SetDisabled(true)
	m.refresh(true)

	return m, tea.Batch(
		askCmd(m.ctx, m.asker, question),
		m.spinner.Tick,
	)
}

// settle re-enables the input once a reply has been appended.
func (m Model) settle() (tea.Model, tea.Cmd) {
	cmd := m.input.SetDisabled(false)
	m.refresh(true)
	return m, cmd
}

func (m Model) copyLastAnswer() (tea.Model, tea.Cmd) {
	last, ok := m.conversation.LastAnswer()
	if !ok {
		return m.setStatus("Nothing to copy yet")
	}

	seq := osc52.New(last.Text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	slog.Debug("answer_copied", "length", len(last.Text))

	model, clearCmd := m.setStatus("Copied answer to clipboard")
	return model, tea.Batch(tea.Raw(seq.String()), clearCmd)
}

func (m Model) exportTranscript() (tea.Model, tea.Cmd) {
	if m.conversation.Len() == 0 {
		return m.setStatus("Nothing to save yet")
	}

	format, err := chat.ParseFormat(m.cfg.TranscriptFormat)
	if err != nil {
		slog.Error("transcript_format_invalid", "format", m.cfg.TranscriptFormat, "error", err)
		return m.setStatus("Transcript not saved")
	}

	path, err := chat.SaveTranscript(m.cfg.TranscriptDir, format, m.cfg.Title, m.now(), m.conversation.Messages())
	if err != nil {
		slog.Error("transcript_save_failed", "dir", m.cfg.TranscriptDir, "error", err)
		return m.setStatus("Transcript not saved")
	}

	slog.Info("transcript_saved", "path", path, "messages", m.conversation.Len())
	return m.setStatus("Transcript saved to " + path)
}

// setStatus shows a footer notice that clears itself after statusTTL.
func (m Model) setStatus(status string) (Model, tea.Cmd) {
	m.statusSeq++
	m.status = status
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func (m *Model) resize() {
	m.layout.SetSize(m.width, m.height)
	m.input.SetWidth(m.width)
	m.viewport.SetSize(m.width, m.layout.ListHeight(m.input.Height()))
	m.refresh(false)
}

// refresh re-renders the message list. follow scrolls to the newest message.
func (m *Model) refresh(follow bool) {
	if !m.ready {
		return
	}

	if m.conversation.Len() == 0 && !m.conversation.Pending() {
		m.viewport.SetContent(welcome.Message(m.cfg.Title, m.width), true)
		return
	}

	content := messagelist.Render(m.conversation.Messages(), m.width, messagelist.Options{
		Pending:   m.conversation.Pending(),
		Indicator: m.spinner.View(),
		Markdown:  m.markdown,
	})
	m.viewport.SetContent(content, follow)
}

// hints prefixes the key hints with the scroll position once the list no
// longer fits.
func (m Model) hints() string {
	if !m.viewport.Overflows() {
		return keyHints
	}
	return fmt.Sprintf("%d%% · %s", m.viewport.ScrollPercent(), keyHints)
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	if !m.ready {
		return tea.NewView("Initializing...")
	}

	content := m.layout.RenderLayout(
		shell.Header(m.cfg.Title, m.cfg.Subtitle, m.width),
		m.viewport.View(),
		m.input.View(),
		shell.Footer(m.cfg.Footer, m.hints(), m.status, m.width),
	)

	v := tea.NewView(content)
	v.AltScreen = true
	v.WindowTitle = m.cfg.Title
	return v
}
