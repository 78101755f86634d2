package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TodoList is an ordered, named collection of todos.
// It is not safe for concurrent use.
type TodoList struct {
	name  string
	todos []*Todo
}

func NewTodoList(name string) *TodoList {
	return &TodoList{name: name, todos: []*Todo{}}
}

// NewTodoListOf builds a list from todos in order, skipping nil entries.
func NewTodoListOf(name string, todos []*Todo) *TodoList {
	l := NewTodoList(name)
	for _, t := range todos {
		if t != nil {
			l.todos = append(l.todos, t)
		}
	}
	return l
}

func (l *TodoList) Name() string { return l.name }

// Add appends item. Only a non-nil *Todo is accepted; anything else,
// including another *TodoList, fails with ErrInvalidItemType.
func (l *TodoList) Add(item any) error {
	t, ok := item.(*Todo)
	if !ok || t == nil {
		return fmt.Errorf("%w: got %T", ErrInvalidItemType, item)
	}
	l.todos = append(l.todos, t)
	return nil
}

func (l *TodoList) Size() int { return len(l.todos) }

// ToArray returns a copy of the items in list order.
func (l *TodoList) ToArray() []*Todo {
	out := make([]*Todo, len(l.todos))
	copy(out, l.todos)
	return out
}

// First returns the first item, or nil for an empty list.
func (l *TodoList) First() *Todo {
	if len(l.todos) == 0 {
		return nil
	}
	return l.todos[0]
}

// Last returns the last item, or nil for an empty list.
func (l *TodoList) Last() *Todo {
	if len(l.todos) == 0 {
		return nil
	}
	return l.todos[len(l.todos)-1]
}

// Shift removes and returns the first item, or nil for an empty list.
func (l *TodoList) Shift() *Todo {
	if len(l.todos) == 0 {
		return nil
	}
	t := l.todos[0]
	l.todos[0] = nil
	l.todos = l.todos[1:]
	return t
}

// Pop removes and returns the last item, or nil for an empty list.
func (l *TodoList) Pop() *Todo {
	n := len(l.todos)
	if n == 0 {
		return nil
	}
	t := l.todos[n-1]
	l.todos[n-1] = nil
	l.todos = l.todos[:n-1]
	return t
}

// ItemAt returns the item at index, or ErrIndexNotFound.
func (l *TodoList) ItemAt(index int) (*Todo, error) {
	if index < 0 || index >= len(l.todos) {
		return nil, fmt.Errorf("%w: index %d, size %d", ErrIndexNotFound, index, len(l.todos))
	}
	return l.todos[index], nil
}

func (l *TodoList) MarkDoneAt(index int) error {
	t, err := l.ItemAt(index)
	if err != nil {
		return err
	}
	t.MarkDone()
	return nil
}

func (l *TodoList) MarkUndoneAt(index int) error {
	t, err := l.ItemAt(index)
	if err != nil {
		return err
	}
	t.MarkUndone()
	return nil
}

func (l *TodoList) MarkAllDone() {
	l.ForEach(func(t *Todo) { t.MarkDone() })
}

func (l *TodoList) MarkAllUndone() {
	l.ForEach(func(t *Todo) { t.MarkUndone() })
}

// RemoveAt removes and returns the item at index, or ErrIndexNotFound.
func (l *TodoList) RemoveAt(index int) (*Todo, error) {
	t, err := l.ItemAt(index)
	if err != nil {
		return nil, err
	}
	l.todos = append(l.todos[:index], l.todos[index+1:]...)
	return t, nil
}

// IsDone reports whether every item is done. An empty list is done.
func (l *TodoList) IsDone() bool {
	for _, t := range l.todos {
		if !t.IsDone() {
			return false
		}
	}
	return true
}

// String renders a "---- Name ----" header followed by one line per item.
func (l *TodoList) String() string {
	lines := make([]string, 0, len(l.todos)+1)
	lines = append(lines, fmt.Sprintf("---- %s ----", titleWords(l.name)))
	for _, t := range l.todos {
		lines = append(lines, t.String())
	}
	return strings.Join(lines, "\n")
}

// titleWords upper-cases the first letter of each word and leaves the
// rest alone. A Caser carries state, so each call gets its own.
func titleWords(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

func (l *TodoList) ForEach(fn func(*Todo)) {
	for _, t := range l.todos {
		fn(t)
	}
}

// Filter returns a new list, with the same name, holding the items for
// which keep returns true.
func (l *TodoList) Filter(keep func(*Todo) bool) *TodoList {
	out := NewTodoList(l.name)
	l.ForEach(func(t *Todo) {
		if keep(t) {
			out.todos = append(out.todos, t)
		}
	})
	return out
}

// FindByTitle returns the first item with exactly this title, or nil.
func (l *TodoList) FindByTitle(title string) *Todo {
	for _, t := range l.todos {
		if t.Title() == title {
			return t
		}
	}
	return nil
}

func (l *TodoList) AllDone() *TodoList {
	return l.Filter(func(t *Todo) bool { return t.IsDone() })
}

func (l *TodoList) AllNotDone() *TodoList {
	return l.Filter(func(t *Todo) bool { return !t.IsDone() })
}

// MarkDone marks the first item titled title as done and reports whether
// one was found.
func (l *TodoList) MarkDone(title string) bool {
	t := l.FindByTitle(title)
	if t == nil {
		return false
	}
	t.MarkDone()
	return true
}

// Contains reports whether t itself is in the list.
func (l *TodoList) Contains(t *Todo) bool {
	for _, x := range l.todos {
		if x == t {
			return true
		}
	}
	return false
}
