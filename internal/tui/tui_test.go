package tui

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-webapp/internal/client"
	"todo-webapp/internal/models"
)

type fakeClient struct {
	mu        sync.Mutex
	todos     []models.Todo
	listErr   error
	deleteErr error
	created   []string
	deleted   []int
}

func (f *fakeClient) List(context.Context) ([]models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Todo(nil), f.todos...), nil
}

func (f *fakeClient) Create(_ context.Context, title string) (models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, title)
	todo := models.Todo{ID: len(f.created), Title: title}
	f.todos = append(f.todos, todo)
	return todo, nil
}

func (f *fakeClient) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and flattens batches, returning the first message of
// the wanted type.
func collect[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var zero T
	if cmd == nil {
		t.Fatalf("expected a command producing %T", zero)
	}
	switch msg := cmd().(type) {
	case T:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(T); ok {
				return m
			}
		}
	}
	t.Fatalf("no %T produced", zero)
	return zero
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func loaded(t *testing.T, fc *fakeClient) Model {
	t.Helper()
	m := New(fc)
	msg := collect[todosMsg](t, m.Init())
	m, _ = update(t, m, msg)
	require.Equal(t, stateLoaded, m.state)
	return m
}

func TestModel_fetchStates(t *testing.T) {
	t.Run("starts loading", func(t *testing.T) {
		m := New(&fakeClient{})
		assert.Equal(t, stateLoading, m.state)
		assert.Contains(t, m.View(), "No server response")
	})

	t.Run("loaded renders the list", func(t *testing.T) {
		fc := &fakeClient{todos: []models.Todo{{ID: 1, Title: "Buy milk"}, {ID: 2, Title: "Walk dog", IsCompleted: true}}}
		m := loaded(t, fc)

		assert.Len(t, m.todos, 2)
		view := m.View()
		assert.Contains(t, view, "Buy milk")
		assert.Contains(t, view, "Walk dog")
		assert.Contains(t, view, "☑")
	})

	t.Run("fetch failure shows the message", func(t *testing.T) {
		fc := &fakeClient{listErr: errors.New("list todos: 500 Internal Server Error: db down")}
		m := New(fc)
		m, _ = update(t, m, collect[todosMsg](t, m.Init()))

		assert.Equal(t, stateError, m.state)
		assert.Contains(t, m.View(), "db down")
	})
}

func TestModel_create(t *testing.T) {
	fc := &fakeClient{}
	m := loaded(t, fc)

	m, cmd := update(t, m, runes("a"))
	assert.True(t, m.adding)
	_ = cmd

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.adding)
	assert.Equal(t, "Title cannot be empty", m.addErr)

	m.input.SetValue("  Buy milk ")
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.adding)
	assert.Equal(t, stateLoaded, m.state, "no optimistic insert")
	assert.Empty(t, m.todos)

	m, cmd = update(t, m, collect[mutatedMsg](t, cmd))
	assert.Equal(t, []string{"Buy milk"}, fc.created)
	assert.Equal(t, stateLoading, m.state)

	m, _ = update(t, m, collect[todosMsg](t, cmd))
	assert.Equal(t, stateLoaded, m.state)
	assert.Equal(t, []models.Todo{{ID: 1, Title: "Buy milk"}}, m.todos)
}

func TestModel_addCancel(t *testing.T) {
	m := loaded(t, &fakeClient{})

	m, _ = update(t, m, runes("a"))
	m.input.SetValue("draft")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, m.adding)
	assert.Empty(t, m.input.Value())
}

func TestModel_delete(t *testing.T) {
	t.Run("deletes the selected item then refetches", func(t *testing.T) {
		fc := &fakeClient{todos: []models.Todo{{ID: 4, Title: "A"}, {ID: 7, Title: "B"}}}
		m := loaded(t, fc)

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 1, m.cursor)

		m, cmd := update(t, m, runes("d"))
		m, cmd = update(t, m, collect[mutatedMsg](t, cmd))
		assert.Equal(t, []int{7}, fc.deleted)
		assert.Equal(t, stateLoading, m.state)
		require.NotNil(t, cmd)
	})

	t.Run("already removed is not an error", func(t *testing.T) {
		fc := &fakeClient{
			todos:     []models.Todo{{ID: 1, Title: "A"}},
			deleteErr: &client.APIError{StatusCode: http.StatusNotFound, Message: "gone"},
		}
		m := loaded(t, fc)

		_, cmd := update(t, m, runes("d"))
		msg := collect[mutatedMsg](t, cmd)
		assert.NoError(t, msg.err)

		m, _ = update(t, m, msg)
		assert.Equal(t, stateLoading, m.state)
	})

	t.Run("other failures show the message", func(t *testing.T) {
		fc := &fakeClient{
			todos:     []models.Todo{{ID: 1, Title: "A"}},
			deleteErr: &client.APIError{StatusCode: http.StatusInternalServerError, Message: "db down"},
		}
		m := loaded(t, fc)

		_, cmd := update(t, m, runes("d"))
		m, _ = update(t, m, collect[mutatedMsg](t, cmd))
		assert.Equal(t, stateError, m.state)
		assert.Contains(t, m.errMsg, "db down")
	})

	t.Run("nothing to delete", func(t *testing.T) {
		m := loaded(t, &fakeClient{})

		_, cmd := update(t, m, runes("d"))
		assert.Nil(t, cmd)
	})
}

func TestModel_cursorClampsAfterRefetch(t *testing.T) {
	fc := &fakeClient{todos: []models.Todo{{ID: 1}, {ID: 2}, {ID: 3}}}
	m := loaded(t, fc)
	m.cursor = 2

	m, _ = update(t, m, todosMsg{todos: []models.Todo{{ID: 1}}})
	assert.Equal(t, 0, m.cursor)
}

func TestModel_quit(t *testing.T) {
	m := loaded(t, &fakeClient{})

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_quitWhileAdding(t *testing.T) {
	m := loaded(t, &fakeClient{})

	m, _ = update(t, m, runes("a"))
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
