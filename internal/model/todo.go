package model

import "encoding/json"

// Todo is a single task: a fixed title and a done flag.
type Todo struct {
	title string
	done  bool
}

// NewTodo returns an undone todo with the given title.
func NewTodo(title string) *Todo {
	return &Todo{title: title}
}

func (t *Todo) Title() string { return t.title }

func (t *Todo) MarkDone()    { t.done = true }
func (t *Todo) MarkUndone()  { t.done = false }
func (t *Todo) IsDone() bool { return t.done }

// String renders the todo as "[X] title" or "[ ] title".
func (t *Todo) String() string {
	if t.done {
		return "[X] " + t.title
	}
	return "[ ] " + t.title
}

// wire form used by the JSON store
type todoJSON struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

func (t *Todo) MarshalJSON() ([]byte, error) {
	return json.Marshal(todoJSON{Title: t.title, Done: t.done})
}

func (t *Todo) UnmarshalJSON(b []byte) error {
	var w todoJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t.title, t.done = w.Title, w.Done
	return nil
}
