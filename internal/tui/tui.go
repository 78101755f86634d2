// Package tui is the interactive Bubble Tea view over a todo list.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

// listItem adapts a *model.Todo to bubbles/list.Item
type listItem struct {
	todo *model.Todo
}

func (i listItem) Title() string       { return i.todo.String() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Title() }

// Model is the Bubble Tea model. Build it with New.
type Model struct {
	list    list.Model
	name    string
	changed bool
	width   int
	height  int

	// Inline add/edit share one text input
	adding    bool
	editing   bool
	editIndex int
	ti        textinput.Model
	inputErr  string

	// Undo support (single-level)
	canUndo   bool
	undoIndex int
	undoItem  *listItem
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := it.todo.Title()
	if it.todo.IsDone() {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

var (
	addBind  = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	undoBind = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
)

// New builds the model from the current contents of l.
func New(l *model.TodoList) Model {
	items := make([]list.Item, 0, l.Size())
	l.ForEach(func(t *model.Todo) {
		items = append(items, listItem{todo: t})
	})

	th := ui.Current()
	lm := list.New(items, itemDelegate{}, 80, 20)
	lm.Title = header(l)
	lm.SetShowHelp(true)
	lm.SetShowPagination(true)
	lm.SetShowStatusBar(true)
	lm.SetFilteringEnabled(true)
	lm.Styles.Title = th.Title
	lm.Styles.HelpStyle = th.Muted
	lm.Styles.PaginationStyle = th.Muted
	lm.FilterInput.Prompt = "/ "
	lm.SetStatusBarItemName("item", "items")
	lm.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, undoBind} }
	lm.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, undoBind} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{list: lm, name: l.Name(), ti: ti, width: 80, height: 24}
}

// header shows the list name with live counts.
func header(l *model.TodoList) string {
	t := ui.Current()
	done := l.AllDone().Size()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		l.Name(),
		t.SymDone, done,
		t.SymPending, l.Size()-done,
		"Total", l.Size(),
	)
}

// Changed reports whether the user modified the list.
func (m Model) Changed() bool { return m.changed }

// TodoList rebuilds a list from what is currently shown, in display order.
func (m Model) TodoList() *model.TodoList {
	todos := make([]*model.Todo, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			todos = append(todos, li.todo)
		}
	}
	return model.NewTodoListOf(m.name, todos)
}

// globalIndex finds li among all items; the cursor index only counts
// items that survive an applied filter.
func (m Model) globalIndex(li listItem) int {
	for i, it := range m.list.Items() {
		if x, ok := it.(listItem); ok && x.todo == li.todo {
			return i
		}
	}
	return -1
}

func (m *Model) refreshHeader() {
	m.list.Title = header(m.TodoList())
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	// While the filter prompt is open every key belongs to it.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ", "space", "x":
			if li, ok := m.list.SelectedItem().(listItem); ok {
				if li.todo.IsDone() {
					li.todo.MarkUndone()
				} else {
					li.todo.MarkDone()
				}
				m.changed = true
				m.refreshHeader()
			}
			return m, nil
		case "d":
			if li, ok := m.list.SelectedItem().(listItem); ok {
				i := m.globalIndex(li)
				tmp := li
				m.undoItem = &tmp
				m.undoIndex = i
				m.canUndo = true
				m.list.RemoveItem(i)
				m.changed = true
				m.refreshHeader()
			}
			return m, nil
		case "a":
			m.adding = true
			m.inputErr = ""
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			m.ti.Focus()
			m.resize()
			return m, textinput.Blink
		case "e":
			if li, ok := m.list.SelectedItem().(listItem); ok {
				m.editing = true
				m.editIndex = m.globalIndex(li)
				m.inputErr = ""
				m.ti.SetValue(li.todo.Title())
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit item title..."
				m.ti.Focus()
				m.resize()
				return m, textinput.Blink
			}
			return m, nil
		case "u":
			if m.canUndo && m.undoItem != nil {
				idx := min(max(m.undoIndex, 0), len(m.list.Items()))
				cmd := m.list.InsertItem(idx, *m.undoItem)
				m.changed = true
				m.canUndo = false
				m.undoItem = nil
				m.refreshHeader()
				return m, cmd
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			var cmd tea.Cmd
			if m.adding {
				cmd = m.list.InsertItem(len(m.list.Items()), listItem{todo: model.NewTodo(title)})
				m.list.Select(len(m.list.Items()) - 1)
			} else if m.editIndex >= 0 && m.editIndex < len(m.list.Items()) {
				if old, ok := m.list.Items()[m.editIndex].(listItem); ok {
					// titles are fixed, so an edit swaps in a fresh todo
					nt := model.NewTodo(title)
					if old.todo.IsDone() {
						nt.MarkDone()
					}
					cmd = m.list.SetItem(m.editIndex, listItem{todo: nt})
				}
			}
			m.changed = true
			m.closeInput()
			m.refreshHeader()
			return m, cmd
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.adding, m.editing = false, false
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding || m.editing {
		h -= 4
	}
	m.list.SetSize(max(m.width-4, 10), max(h, 3))
}

func (m Model) View() string {
	th := ui.Current()
	content := m.list.View()
	if m.adding || m.editing {
		bar := lipgloss.NewStyle().Border(th.Border).BorderForeground(th.BorderColor).Padding(0, 1)
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += "  " + th.Error.Render(m.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.PanelString([]string{content})
}

// Run starts the program on l and calls save with the edited list when
// the user changed something before quitting.
func Run(l *model.TodoList, save func(*model.TodoList) error, opts ...tea.ProgramOption) error {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	p := tea.NewProgram(New(l), opts...)
	final, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := final.(Model)
	if !ok || !fm.changed {
		return nil
	}
	return save(fm.TodoList())
}
