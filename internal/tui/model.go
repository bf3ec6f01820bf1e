package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qabot/internal/domain"
)

// answerMsg carries the result of one query back into the update loop.
type answerMsg struct {
	query  string
	answer string
}

// Model is the Bubble Tea model for the chat front end.
type Model struct {
	service   domain.Answerer
	title     string
	questions []string
	input     textinput.Model
	list      viewport.Model
	bar       progress.Model
	percent   float64
	answer    string
	status    string
	lastQuery string
	cursor    int
	pending   bool
	ready     bool
}

// New creates a new TUI model instance.
func New(service domain.Answerer, title string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		service:   service,
		title:     title,
		questions: service.Questions(),
		input:     ti,
		list:      viewport.New(0, 0),
		bar:       progress.New(progress.WithDefaultGradient()),
		status:    "Ready. ↑/↓ browse questions, Tab copies one, Esc quits.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, lh := listBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		_, ah := answerBoxStyle.GetFrameSize()
		// header, list label, answer line, progress bar, status
		reserved := 5 + lh + qh + ah + 1
		m.list.Width = max(20, msg.Width-4)
		m.list.Height = max(3, msg.Height-reserved)
		m.bar.Width = max(10, msg.Width-4)
		m.list.SetContent(m.renderQuestions())
		return m, nil
	case answerMsg:
		m.pending = false
		m.percent = 1.0
		m.answer = msg.answer
		m.lastQuery = msg.query
		m.status = fmt.Sprintf("Answered %q", msg.query)
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.pending {
				return m, nil
			}
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				m.status = "Type a question first."
				return m, nil
			}
			m.pending = true
			m.percent = 0.5
			m.status = "Thinking..."
			m.input.Reset()
			return m, ask(m.service, q)
		case "down":
			if len(m.questions) > 0 {
				m.cursor = (m.cursor + 1) % len(m.questions)
				m.list.SetContent(m.renderQuestions())
				m.scrollToCursor()
				return m, nil
			}
		case "up":
			if len(m.questions) > 0 {
				m.cursor = (m.cursor - 1 + len(m.questions)) % len(m.questions)
				m.list.SetContent(m.renderQuestions())
				m.scrollToCursor()
				return m, nil
			}
		case "tab":
			if len(m.questions) > 0 {
				m.input.SetValue(m.questions[m.cursor])
				m.input.CursorEnd()
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func ask(service domain.Answerer, query string) tea.Cmd {
	return func() tea.Msg {
		return answerMsg{query: query, answer: service.Answer(query)}
	}
}

// View renders the layout: question list, input, answer and progress.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render(m.title)
	label := labelStyle.Render("Questions you can ask:")
	list := listBoxStyle.Render(m.list.View())
	input := queryBoxStyle.Render(m.input.View())
	answer := answerBoxStyle.Render("Answer: " + m.answer)
	bar := m.bar.ViewAs(m.percent)
	status := statusStyle.Render(m.status)
	return strings.Join([]string{header, label, list, input, answer, bar, status}, "\n")
}

func (m Model) renderQuestions() string {
	if len(m.questions) == 0 {
		return "No questions loaded."
	}
	lines := make([]string, len(m.questions))
	for i, q := range m.questions {
		if i == m.cursor {
			lines[i] = highlightStyle.Render("› " + q)
		} else {
			lines[i] = "  " + q
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) scrollToCursor() {
	if m.list.Height <= 0 {
		return
	}
	if m.cursor < m.list.YOffset {
		m.list.SetYOffset(m.cursor)
	} else if m.cursor >= m.list.YOffset+m.list.Height {
		m.list.SetYOffset(m.cursor - m.list.Height + 1)
	}
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	listBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	answerBoxStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
