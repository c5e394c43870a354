package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docchat/internal/convo"
	"docchat/internal/index"
	"docchat/internal/llm"
	"docchat/internal/memory"
)

// Deps is everything the chat session needs from the assembly in main.
// NewCompleter is called once the user supplies an API key, so the
// credential stays scoped to this session.
type Deps struct {
	Builder        *index.Builder
	NewCompleter   func(apiKey string) (llm.Completer, error)
	APIKey         string
	SnippetWindow  int
	SearchMessages int
	HistoryWindow  int
	PromptMessages int
}

// chatEntry is one rendered transcript block: a turn or a provenance list.
type chatEntry struct {
	prefix string
	body   string
	dim    bool
}

// Model is the Bubble Tea model for the chat application. It owns the URL
// list, the API key, the session index and the conversation state, and
// triggers index builds and completion calls.
type Model struct {
	deps Deps

	urls   []string
	apiKey string
	idx    *index.Index
	state  *convo.State
	orch   *convo.Orchestrator

	transcript []chatEntry
	input      textinput.Model
	viewport   viewport.Model
	status     string
	busy       bool
	ready      bool
}

// answerMsg carries the outcome of one ask cycle: the index (possibly just
// built), the conversation state used, and the reply or error.
type answerMsg struct {
	idx   *index.Index
	state *convo.State
	reply convo.Reply
	err   error
}

// New creates a new chat model. urls may seed the session's document list.
func New(deps Deps, urls []string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your documents, or type /help"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		deps:     deps,
		urls:     urls,
		apiKey:   deps.APIKey,
		input:    ti,
		viewport: vp,
		status:   "Add document URLs with /add, then ask away.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 3 + qh + 1 // header + url line + status + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-ch)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case answerMsg:
		m.busy = false
		if msg.idx != nil {
			m.idx = msg.idx
		}
		if msg.state != nil {
			m.state = msg.state
		}
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.appendReply(msg.reply)
			m.status = "Ready."
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busy {
				return m, nil
			}
			m.input.SetValue("")
			if strings.HasPrefix(text, "/") {
				m.runCommand(text)
				m.viewport.SetContent(m.renderTranscript())
				return m, nil
			}
			return m.ask(text)
		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil
		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask records the user turn in the transcript view and kicks off the
// build-then-respond cycle as one sequential command. Builds and completions
// never overlap: busy gates further input until the answer lands.
func (m Model) ask(text string) (Model, tea.Cmd) {
	if m.apiKey == "" {
		m.status = "No API key. Set one with /key <key> (or the env var named in the config)."
		return m, nil
	}
	if len(m.urls) == 0 {
		m.status = "No documents. Add at least one URL with /add <url>."
		return m, nil
	}
	if m.orch == nil {
		completer, err := m.deps.NewCompleter(m.apiKey)
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.orch = convo.NewOrchestrator(completer, m.deps.SearchMessages)
	}

	m.transcript = append(m.transcript, chatEntry{prefix: "You", body: text})
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	m.busy = true
	if m.idx == nil || !m.idx.Covers(m.urls) {
		m.status = "Downloading and indexing documents..."
	} else {
		m.status = "Thinking..."
	}

	urls := make([]string, len(m.urls))
	copy(urls, m.urls)
	deps := m.deps
	idx := m.idx
	state := m.state
	orch := m.orch
	return m, func() tea.Msg {
		if idx == nil || !idx.Covers(urls) {
			built, err := deps.Builder.Build(context.Background(), urls)
			if err != nil {
				return answerMsg{err: err}
			}
			idx = built
			// the snippet buffer follows its index; dialogue history survives
			history := memory.NewDialogue(deps.HistoryWindow, deps.PromptMessages)
			if state != nil {
				history = state.History
			}
			state = convo.NewState(history, memory.NewSnippets(idx, deps.SnippetWindow))
		}
		reply, err := orch.Respond(context.Background(), state, text)
		return answerMsg{idx: idx, state: state, reply: reply, err: err}
	}
}

func (m *Model) appendReply(reply convo.Reply) {
	m.transcript = append(m.transcript, chatEntry{prefix: "Assistant", body: reply.Text})
	for _, p := range reply.Provenance {
		m.transcript = append(m.transcript, chatEntry{
			prefix: fmt.Sprintf("Snippet from page %d", p.Page+1),
			body:   strings.TrimSpace(p.Snippet),
			dim:    true,
		})
	}
}

func (m *Model) runCommand(text string) {
	fields := strings.Fields(text)
	arg := ""
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}
	switch fields[0] {
	case "/add":
		if arg == "" {
			m.status = "Usage: /add <url>"
			return
		}
		for _, u := range m.urls {
			if u == arg {
				m.status = "Already added."
				return
			}
		}
		m.urls = append(m.urls, arg)
		m.status = fmt.Sprintf("Added. %d document(s); the index rebuilds on your next question.", len(m.urls))
	case "/remove":
		for i, u := range m.urls {
			if u == arg {
				m.urls = append(m.urls[:i], m.urls[i+1:]...)
				m.status = fmt.Sprintf("Removed. %d document(s) left.", len(m.urls))
				return
			}
		}
		m.status = "No such URL."
	case "/urls":
		if len(m.urls) == 0 {
			m.status = "No documents added yet."
			return
		}
		m.status = strings.Join(m.urls, "  ")
	case "/key":
		if arg == "" {
			m.status = "Usage: /key <api-key>"
			return
		}
		m.apiKey = arg
		m.orch = nil // next question constructs a completer with the new key
		m.status = "API key set."
	case "/help":
		m.status = "/add <url>  /remove <url>  /urls  /key <api-key>  (anything else is a question)"
	default:
		m.status = "Unknown command. Try /help."
	}
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Talk with your documents")
	urlLine := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.urlSummary())
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + urlLine + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) urlSummary() string {
	if len(m.urls) == 0 {
		return "No documents"
	}
	s := fmt.Sprintf("%d document(s): %s", len(m.urls), strings.Join(m.urls, ", "))
	if m.state != nil {
		s = fmt.Sprintf("Session %s | %s", m.state.ID[:8], s)
	}
	if m.idx != nil && m.idx.Summary != "" {
		s += " | " + m.idx.Summary
	}
	return s
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	var b strings.Builder
	for i, e := range m.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := labelStyle.Render(e.prefix + ":")
		body := e.body
		if e.dim {
			label = dimStyle.Render(e.prefix + ":")
			body = dimStyle.Render(body)
		}
		b.WriteString(label + "\n" + body)
	}
	return b.String()
}

var (
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
