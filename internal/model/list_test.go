package model

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	todo1, todo2, todo3 *Todo
	list                *TodoList
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{
		todo1: NewTodo("Buy milk"),
		todo2: NewTodo("Clean room"),
		todo3: NewTodo("Go to the gym"),
		list:  NewTodoList("Today's todos"),
	}
	for _, todo := range []*Todo{f.todo1, f.todo2, f.todo3} {
		require.NoError(t, f.list.Add(todo))
	}
	return f
}

// titles makes cmp output readable; Todo has only unexported fields.
func titles(todos []*Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.String())
	}
	return out
}

func TestSize(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 3, f.list.Size())
	assert.Equal(t, 0, NewTodoList("empty").Size())
}

func TestToArray(t *testing.T) {
	f := newFixture(t)

	arr := f.list.ToArray()
	require.Len(t, arr, f.list.Size())
	assert.Equal(t, []*Todo{f.todo1, f.todo2, f.todo3}, arr)

	arr[0] = nil
	assert.Same(t, f.todo1, f.list.First(), "ToArray must return a copy")
}

func TestFirstLast(t *testing.T) {
	f := newFixture(t)
	assert.Same(t, f.todo1, f.list.First())
	assert.Same(t, f.todo3, f.list.Last())

	first, err := f.list.ItemAt(0)
	require.NoError(t, err)
	assert.Same(t, first, f.list.First())

	empty := NewTodoList("empty")
	assert.Nil(t, empty.First())
	assert.Nil(t, empty.Last())
}

func TestShift(t *testing.T) {
	f := newFixture(t)

	got := f.list.Shift()
	assert.Same(t, f.todo1, got)
	assert.False(t, f.list.Contains(f.todo1))
	assert.Equal(t, 2, f.list.Size())
	assert.Same(t, f.todo2, f.list.First())
}

func TestPop(t *testing.T) {
	f := newFixture(t)

	got := f.list.Pop()
	assert.Same(t, f.todo3, got)
	assert.False(t, f.list.Contains(f.todo3))
	assert.Equal(t, 2, f.list.Size())
	assert.Same(t, f.todo2, f.list.Last())
}

func TestShiftPopEmpty(t *testing.T) {
	empty := NewTodoList("empty")
	assert.Nil(t, empty.Shift())
	assert.Nil(t, empty.Pop())
	assert.Equal(t, 0, empty.Size())
}

func TestIsDone(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.list.IsDone())

	f.todo1.MarkDone()
	f.todo2.MarkDone()
	assert.False(t, f.list.IsDone(), "one item still undone")

	f.todo3.MarkDone()
	assert.True(t, f.list.IsDone())

	assert.True(t, NewTodoList("empty").IsDone(), "empty list is vacuously done")
}

func TestAddRejectsNonTodo(t *testing.T) {
	f := newFixture(t)

	var nilTodo *Todo
	for _, item := range []any{
		true,
		"Buy milk",
		42,
		nil,
		nilTodo,
		Todo{},
		NewTodoList(""),
		f.list,
	} {
		err := f.list.Add(item)
		require.Error(t, err, "Add(%#v)", item)
		assert.ErrorIs(t, err, ErrInvalidItemType)
	}
	assert.Equal(t, 3, f.list.Size(), "rejected items must not be added")
}

func TestNewTodoListOf(t *testing.T) {
	a, b := NewTodo("Buy milk"), NewTodo("Clean room")
	src := []*Todo{a, nil, b}

	l := NewTodoListOf("Errands", src)
	assert.Equal(t, "Errands", l.Name())
	assert.Equal(t, []*Todo{a, b}, l.ToArray(), "nil entries are skipped")

	src[0] = nil
	assert.Same(t, a, l.First(), "the list does not alias the input slice")
}

func TestAddAllowsDuplicateTitles(t *testing.T) {
	f := newFixture(t)
	dup := NewTodo("Buy milk")

	require.NoError(t, f.list.Add(dup))
	assert.Equal(t, 4, f.list.Size())
	assert.Same(t, f.todo1, f.list.FindByTitle("Buy milk"), "first match wins")
}

func TestIndexErrors(t *testing.T) {
	ops := map[string]func(*TodoList, int) error{
		"ItemAt": func(l *TodoList, i int) error {
			_, err := l.ItemAt(i)
			return err
		},
		"MarkDoneAt":   (*TodoList).MarkDoneAt,
		"MarkUndoneAt": (*TodoList).MarkUndoneAt,
		"RemoveAt": func(l *TodoList, i int) error {
			_, err := l.RemoveAt(i)
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			for _, index := range []int{-1, 3, 23} {
				f := newFixture(t)
				err := op(f.list, index)
				require.Error(t, err, "index %d", index)
				assert.True(t, errors.Is(err, ErrIndexNotFound), "index %d: %v", index, err)
				assert.Equal(t, 3, f.list.Size())
				assert.False(t, f.todo1.IsDone() || f.todo2.IsDone() || f.todo3.IsDone())
			}
		})
	}
}

func TestItemAt(t *testing.T) {
	f := newFixture(t)

	got, err := f.list.ItemAt(0)
	require.NoError(t, err)
	assert.Same(t, f.todo1, got)

	got, err = f.list.ItemAt(2)
	require.NoError(t, err)
	assert.Same(t, f.todo3, got)
}

func TestMarkDoneAt(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.list.MarkDoneAt(1))
	assert.False(t, f.todo1.IsDone())
	assert.True(t, f.todo2.IsDone())
	assert.False(t, f.todo3.IsDone())
}

func TestMarkUndoneAt(t *testing.T) {
	f := newFixture(t)
	f.todo1.MarkDone()
	f.todo2.MarkDone()

	require.NoError(t, f.list.MarkUndoneAt(1))
	assert.True(t, f.todo1.IsDone())
	assert.False(t, f.todo2.IsDone())
	assert.False(t, f.todo3.IsDone())
}

func TestMarkAll(t *testing.T) {
	f := newFixture(t)

	f.list.MarkAllDone()
	assert.True(t, f.todo1.IsDone())
	assert.True(t, f.todo2.IsDone())
	assert.True(t, f.todo3.IsDone())
	assert.True(t, f.list.IsDone())

	f.list.MarkAllUndone()
	assert.Equal(t, 0, f.list.AllDone().Size())
	assert.Equal(t, 3, f.list.AllNotDone().Size())

	empty := NewTodoList("empty")
	empty.MarkAllDone()
	assert.True(t, empty.IsDone())
}

func TestRemoveAt(t *testing.T) {
	f := newFixture(t)

	got, err := f.list.RemoveAt(2)
	require.NoError(t, err)
	assert.Same(t, f.todo3, got)
	assert.Equal(t, []*Todo{f.todo1, f.todo2}, f.list.ToArray())

	got, err = f.list.RemoveAt(0)
	require.NoError(t, err)
	assert.Same(t, f.todo1, got)
	assert.Equal(t, []*Todo{f.todo2}, f.list.ToArray())
}

func TestString(t *testing.T) {
	f := newFixture(t)

	want := "---- Today's Todos ----\n[ ] Buy milk\n[ ] Clean room\n[ ] Go to the gym"
	assert.Equal(t, want, f.list.String())

	f.todo1.MarkDone()
	want = "---- Today's Todos ----\n[X] Buy milk\n[ ] Clean room\n[ ] Go to the gym"
	assert.Equal(t, want, f.list.String())

	f.list.MarkAllDone()
	want = "---- Today's Todos ----\n[X] Buy milk\n[X] Clean room\n[X] Go to the gym"
	assert.Equal(t, want, f.list.String())
}

func TestStringHeader(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "----  ----"},
		{"groceries", "---- Groceries ----"},
		{"Today's Todos", "---- Today's Todos ----"},
		{"weekly ABC review", "---- Weekly ABC Review ----"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewTodoList(tt.name).String(), "name %q", tt.name)
	}
}

func TestStringOnSeparateListsConcurrently(t *testing.T) {
	a := newFixture(t).list
	b := NewTodoList("weekly chores")
	require.NoError(t, b.Add(NewTodo("Dishes")))

	wantA := a.String()
	wantB := "---- Weekly Chores ----\n[ ] Dishes"

	var wg sync.WaitGroup
	for _, tc := range []struct {
		list *TodoList
		want string
	}{{a, wantA}, {b, wantB}} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				assert.Equal(t, tc.want, tc.list.String())
			}
		}()
	}
	wg.Wait()
}

func TestForEach(t *testing.T) {
	f := newFixture(t)

	var seen []*Todo
	f.list.ForEach(func(todo *Todo) { seen = append(seen, todo) })
	assert.Equal(t, []*Todo{f.todo1, f.todo2, f.todo3}, seen)
}

func TestFilter(t *testing.T) {
	f := newFixture(t)
	f.todo1.MarkDone()
	f.todo3.MarkDone()

	filtered := f.list.Filter(func(todo *Todo) bool { return todo.IsDone() })
	require.NotSame(t, f.list, filtered)
	assert.Equal(t, f.list.Name(), filtered.Name())
	if diff := cmp.Diff(titles([]*Todo{f.todo1, f.todo3}), titles(filtered.ToArray())); diff != "" {
		t.Errorf("filtered items mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, filtered.Add(NewTodo("Extra")))
	assert.Equal(t, 3, f.list.Size(), "adding to the filtered list must not touch the original")
}

func TestFindByTitle(t *testing.T) {
	f := newFixture(t)
	assert.Same(t, f.todo1, f.list.FindByTitle("Buy milk"))
	assert.Same(t, f.todo3, f.list.FindByTitle("Go to the gym"))
	assert.Nil(t, f.list.FindByTitle("buy milk"), "match is exact")
	assert.Nil(t, f.list.FindByTitle("Walk the dog"))
}

func TestAllDoneAllNotDone(t *testing.T) {
	f := newFixture(t)
	f.todo1.MarkDone()

	assert.Equal(t, []*Todo{f.todo1}, f.list.AllDone().ToArray())
	assert.Equal(t, []*Todo{f.todo2, f.todo3}, f.list.AllNotDone().ToArray())
}

func TestAllDoneAllNotDonePartition(t *testing.T) {
	f := newFixture(t)
	f.todo2.MarkDone()

	done := f.list.AllDone()
	notDone := f.list.AllNotDone()
	assert.Equal(t, f.list.Size(), done.Size()+notDone.Size())
	f.list.ForEach(func(todo *Todo) {
		assert.True(t, done.Contains(todo) != notDone.Contains(todo), "%s must be in exactly one half", todo)
	})
}

func TestMarkDoneByTitle(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.list.MarkDone("Buy milk"))
	assert.True(t, f.todo1.IsDone())

	assert.False(t, f.list.MarkDone("Walk the dog"))
	assert.False(t, f.todo2.IsDone())
	assert.False(t, f.todo3.IsDone())
}

func TestContains(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.list.Contains(f.todo2))
	assert.False(t, f.list.Contains(NewTodo("Clean room")), "membership is by identity")
}
