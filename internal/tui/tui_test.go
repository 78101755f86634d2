package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
)

func sampleList(t *testing.T) *model.TodoList {
	t.Helper()
	l := model.NewTodoList("Today's todos")
	for _, title := range []string{"Buy milk", "Clean room", "Go to the gym"} {
		require.NoError(t, l.Add(model.NewTodo(title)))
	}
	return l
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update must return tui.Model")
	}
	return m
}

func TestToggleSelected(t *testing.T) {
	l := sampleList(t)
	m := New(l)
	assert.False(t, m.Changed())

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.Changed())
	assert.True(t, l.First().IsDone())

	m = send(t, m, keys("x"))
	assert.False(t, l.First().IsDone())
}

func TestDeleteAndUndo(t *testing.T) {
	l := sampleList(t)
	m := New(l)

	m = send(t, m, keys("d"))
	got := m.TodoList()
	require.Equal(t, 2, got.Size())
	assert.Nil(t, got.FindByTitle("Buy milk"))

	m = send(t, m, keys("u"))
	got = m.TodoList()
	require.Equal(t, 3, got.Size())
	assert.Equal(t, l.String(), got.String())
}

func TestAddItem(t *testing.T) {
	m := New(sampleList(t))

	m = send(t, m, keys("a"), keys("Walk the dog"), tea.KeyMsg{Type: tea.KeyEnter})
	got := m.TodoList()
	require.Equal(t, 4, got.Size())
	assert.Equal(t, "Walk the dog", got.Last().Title())
	assert.False(t, got.Last().IsDone())
	assert.Equal(t, "Today's todos", got.Name())
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	m := New(sampleList(t))

	m = send(t, m, keys("a"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Title cannot be empty", m.inputErr)
	assert.Equal(t, 3, m.TodoList().Size())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.adding)
	assert.False(t, m.Changed())
}

func TestEditKeepsDoneState(t *testing.T) {
	l := sampleList(t)
	l.First().MarkDone()
	m := New(l)

	m = send(t, m, keys("e"), tea.KeyMsg{Type: tea.KeyBackspace}, keys("k!"), tea.KeyMsg{Type: tea.KeyEnter})
	got := m.TodoList()
	assert.Equal(t, "Buy milk!", got.First().Title())
	assert.True(t, got.First().IsDone())
	assert.Equal(t, "Buy milk", l.First().Title(), "original todo is not renamed")
}

func TestQuit(t *testing.T) {
	m := New(sampleList(t))
	_, cmd := m.Update(keys("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTodoListKeepsItems(t *testing.T) {
	l := sampleList(t)
	m := New(l)

	got := m.TodoList()
	require.NotSame(t, l, got)
	assert.Equal(t, l.Name(), got.Name())
	assert.Equal(t, l.ToArray(), got.ToArray(), "same todos, same order")
}
