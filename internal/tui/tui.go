// Package tui is the interactive terminal view of the todo list.
//
// The view holds one of three states: loading (no answer yet), loaded (the
// fetched list) or error (a message). Creating or deleting an item never
// edits the local copy; it drops back to loading and fetches the list again.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo-webapp/internal/client"
	"todo-webapp/internal/models"
)

// Client is the part of the API the view needs.
type Client interface {
	List(ctx context.Context) ([]models.Todo, error)
	Create(ctx context.Context, title string) (models.Todo, error)
	Delete(ctx context.Context, id int) error
}

type state int

const (
	stateLoading state = iota
	stateLoaded
	stateError
)

type todosMsg struct {
	todos []models.Todo
	err   error
}

type mutatedMsg struct {
	err error
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Add, k.Delete, k.Refresh, k.Quit}}
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:     key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
	Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1fe9c7"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffc832")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

type Model struct {
	client Client

	state  state
	todos  []models.Todo
	errMsg string
	cursor int

	adding bool
	addErr string
	input  textinput.Model

	spinner spinner.Model
	help    help.Model
}

func New(c Client) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 200

	return Model{
		client:  c,
		state:   stateLoading,
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		todos, err := c.List(context.Background())
		return todosMsg{todos: todos, err: err}
	}
}

func (m Model) create(title string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		_, err := c.Create(context.Background(), title)
		return mutatedMsg{err: err}
	}
}

func (m Model) remove(id int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.Delete(context.Background(), id)
		if client.IsNotFound(err) {
			// already removed, e.g. by a repeated key press
			err = nil
		}
		return mutatedMsg{err: err}
	}
}

// invalidate drops the cached list and fetches it again.
func (m Model) invalidate() (Model, tea.Cmd) {
	m.state = stateLoading
	return m, tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosMsg:
		if msg.err != nil {
			m.state = stateError
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.state = stateLoaded
		m.todos = msg.todos
		if m.cursor >= len(m.todos) {
			m.cursor = max(len(m.todos)-1, 0)
		}
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			m.state = stateError
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m.invalidate()

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.addErr = "Title cannot be empty"
			return m, nil
		}
		m.adding = false
		m.addErr = ""
		m.input.SetValue("")
		m.input.Blur()
		return m, m.create(title)
	case tea.KeyEsc:
		m.adding = false
		m.addErr = ""
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Add):
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, keys.Delete):
		if m.state != stateLoaded || len(m.todos) == 0 {
			return m, nil
		}
		return m, m.remove(m.todos[m.cursor].ID)
	case key.Matches(msg, keys.Refresh):
		return m.invalidate()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Todos"))
	b.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		b.WriteString(m.spinner.View() + " No server response...")
	case stateError:
		b.WriteString(errorStyle.Render("An error occurred! " + m.errMsg))
	case stateLoaded:
		if len(m.todos) == 0 {
			b.WriteString(mutedStyle.Render("no items"))
		}
		for i, todo := range m.todos {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderTodo(todo, i == m.cursor))
		}
	}

	if m.adding {
		title := "Add new item"
		if m.addErr != "" {
			title += " " + errorStyle.Render(m.addErr)
		}
		b.WriteString("\n\n" + panelStyle.Render(title+"\n"+m.input.View()))
	}

	b.WriteString("\n\n" + m.help.View(keys))
	return panelStyle.Render(b.String())
}

// renderTodo draws one row. The checkbox only mirrors is_completed.
func renderTodo(todo models.Todo, selected bool) string {
	box, title := "☐", todo.Title
	if todo.IsCompleted {
		box, title = "☑", doneStyle.Render(todo.Title)
	}
	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s %s", prefix, box, title, mutedStyle.Render(fmt.Sprintf("#%d", todo.ID)))
}

// Run starts the interactive list against c.
func Run(c Client) error {
	_, err := tea.NewProgram(New(c), tea.WithAltScreen()).Run()
	return err
}
