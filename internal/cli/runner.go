package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Options tune output behavior from root flags and config.
type Options struct {
	Group    bool   // list grouped by pending/done
	ListName string // name for a list that has not been saved yet
	Store    *jsonstore.Store
	Logger   *log.Logger

	// Interactive runs the TUI; nil means tui.Run.
	Interactive func(l *model.TodoList, save func(*model.TodoList) error) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Logger == nil {
		opt.Logger = log.Default()
	}
	if opt.Interactive == nil {
		opt.Interactive = func(l *model.TodoList, save func(*model.TodoList) error) error {
			return tui.Run(l, save)
		}
	}
	cmd, a := args[0], args[1:]
	opt.Logger.Debug("dispatch", "cmd", cmd, "args", a)

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return view(opt, func(l *model.TodoList) { printPanel(l, opt.Group) })

	case "show":
		return view(opt, func(l *model.TodoList) { ui.Println(l.String()) })

	case "pending":
		return view(opt, func(l *model.TodoList) { ui.Println(l.AllNotDone().String()) })

	case "completed":
		return view(opt, func(l *model.TodoList) { ui.Println(l.AllDone().String()) })

	case "first", "last":
		return view(opt, func(l *model.TodoList) {
			t := l.First()
			if cmd == "last" {
				t = l.Last()
			}
			if t == nil {
				ui.Println(ui.Current().Muted.Render("no items"))
				return
			}
			ui.Println(t.String())
		})

	case "add":
		title := strings.TrimSpace(strings.Join(a, " "))
		if title == "" {
			ui.Fail("usage: todo add <title...>")
			return 2
		}
		return doAdd(opt, title)

	case "done", "undone", "toggle", "rm":
		if len(a) != 1 {
			ui.Fail(fmt.Sprintf("usage: todo %s <index>", cmd))
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail(cmd + ": not a number: " + a[0])
			return 2
		}
		return doAt(opt, cmd, n)

	case "check", "find":
		title := strings.TrimSpace(strings.Join(a, " "))
		if title == "" {
			ui.Fail(fmt.Sprintf("usage: todo %s <title...>", cmd))
			return 2
		}
		if cmd == "find" {
			return doFind(opt, title)
		}
		return doCheck(opt, title)

	case "shift", "pop":
		return doTake(opt, cmd)

	case "done-all":
		return mutate(opt, "marked all done", func(l *model.TodoList) error {
			l.MarkAllDone()
			return nil
		})

	case "undone-all":
		return mutate(opt, "marked all undone", func(l *model.TodoList) error {
			l.MarkAllUndone()
			return nil
		})

	case "clear-done":
		return doClearDone(opt)

	case "tui":
		return doInteractive(opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	ui.Println()
	PrintHelp()
	return 2
}

func PrintHelp() {
	ui.Println(`todo - a tiny CLI

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  add <title...>     Add a new item (title can be multiple words)
  ls                 List items in a panel (--group splits pending/done)
  show               Print the list as plain text
  pending            Print items that are not done
  completed          Print items that are done
  first | last       Print the first or last item
  done <index>       Mark item at 1-based index done
  undone <index>     Mark item at 1-based index not done
  toggle <index>     Toggle done for item at 1-based index
  check <title...>   Mark the first item with this exact title done
  find <title...>    Show the first item with this exact title
  rm <index>         Remove item at 1-based index
  shift | pop        Remove the first or last item
  done-all           Mark every item done
  undone-all         Mark every item not done
  clear-done         Remove every item that is done
  tui                Interactive list

Flags:
  -f, --file <path>       Data file (default todos.json)
  -c, --config <path>     Extra TOML config file
      --theme <name>      classic | neon | mono
      --log-level <lvl>   debug | info | warn | error
      --color <mode>      auto | always | never
  -g, --group             Group ls output by pending/done

Examples:
  todo add "Buy milk"
  todo ls
  todo done 2
  todo rm 3`)
}

// -------------- subcommand impls ----------------

func load(opt Options) (*model.TodoList, bool) {
	l, err := opt.Store.Load(opt.ListName)
	if err != nil {
		opt.Logger.Error("load failed", "path", opt.Store.Path, "err", err)
		ui.Fail("load: " + err.Error())
		return nil, false
	}
	return l, true
}

func save(opt Options, l *model.TodoList) bool {
	if err := opt.Store.Save(l); err != nil {
		opt.Logger.Error("save failed", "path", opt.Store.Path, "err", err)
		ui.Fail("save: " + err.Error())
		return false
	}
	return true
}

// view loads the list and hands it to render without saving.
func view(opt Options, render func(*model.TodoList)) int {
	l, ok := load(opt)
	if !ok {
		return 1
	}
	render(l)
	return 0
}

// mutate loads, applies fn, saves and prints msg. Errors from fn are
// reported with the usage exit code.
func mutate(opt Options, msg string, fn func(*model.TodoList) error) int {
	l, ok := load(opt)
	if !ok {
		return 1
	}
	if err := fn(l); err != nil {
		reportListError(l, err)
		return 2
	}
	if !save(opt, l) {
		return 1
	}
	ui.OK(msg)
	return 0
}

func reportListError(l *model.TodoList, err error) {
	if errors.Is(err, model.ErrIndexNotFound) {
		ui.Fail(fmt.Sprintf("index out of range: have %d", l.Size()))
		ui.Hint("Hint: run `todo ls` to see valid indexes")
		return
	}
	ui.Fail(err.Error())
}

func doAdd(opt Options, title string) int {
	return mutate(opt, "added", func(l *model.TodoList) error {
		return l.Add(model.NewTodo(title))
	})
}

func doAt(opt Options, cmd string, userIndex int) int {
	idx := userIndex - 1
	switch cmd {
	case "done":
		return mutate(opt, "marked done", func(l *model.TodoList) error { return l.MarkDoneAt(idx) })
	case "undone":
		return mutate(opt, "marked undone", func(l *model.TodoList) error { return l.MarkUndoneAt(idx) })
	case "toggle":
		return mutate(opt, "toggled", func(l *model.TodoList) error {
			t, err := l.ItemAt(idx)
			if err != nil {
				return err
			}
			if t.IsDone() {
				t.MarkUndone()
			} else {
				t.MarkDone()
			}
			return nil
		})
	default:
		var removed *model.Todo
		code := mutate(opt, "removed", func(l *model.TodoList) error {
			var err error
			removed, err = l.RemoveAt(idx)
			return err
		})
		if code == 0 {
			ui.Println(removed.String())
		}
		return code
	}
}

func doCheck(opt Options, title string) int {
	l, ok := load(opt)
	if !ok {
		return 1
	}
	if !l.MarkDone(title) {
		ui.Fail("no item titled " + strconv.Quote(title))
		return 1
	}
	if !save(opt, l) {
		return 1
	}
	ui.OK("marked done")
	return 0
}

func doFind(opt Options, title string) int {
	l, ok := load(opt)
	if !ok {
		return 1
	}
	t := l.FindByTitle(title)
	if t == nil {
		ui.Fail("no item titled " + strconv.Quote(title))
		return 1
	}
	ui.Println(t.String())
	return 0
}

func doTake(opt Options, cmd string) int {
	l, ok := load(opt)
	if !ok {
		return 1
	}
	var t *model.Todo
	if cmd == "shift" {
		t = l.Shift()
	} else {
		t = l.Pop()
	}
	if t == nil {
		ui.Fail(cmd + ": list is empty")
		return 1
	}
	if !save(opt, l) {
		return 1
	}
	ui.OK("removed")
	ui.Println(t.String())
	return 0
}

func doClearDone(opt Options) int {
	l, ok := load(opt)
	if !ok {
		return 1
	}
	kept := l.AllNotDone()
	if !save(opt, kept) {
		return 1
	}
	ui.OK(fmt.Sprintf("cleared %d", l.Size()-kept.Size()))
	return 0
}

func doInteractive(opt Options) int {
	l, ok := load(opt)
	if !ok {
		return 1
	}
	err := opt.Interactive(l, func(edited *model.TodoList) error {
		if err := opt.Store.Save(edited); err != nil {
			return err
		}
		ui.OK("saved")
		return nil
	})
	if err != nil {
		opt.Logger.Error("tui failed", "err", err)
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

// -------------- rendering helpers --------------

func printPanel(l *model.TodoList, group bool) {
	t := ui.Current()
	done := l.AllDone().Size()
	pending := l.Size() - done
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(l.Name()),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), l.Size(),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(done, l.Size(), 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(l)...)
	} else {
		lines = append(lines, flatLines(l, nil)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(lines)
}

// flatLines renders sub's items numbered by their position in full (or
// in sub itself when full is nil), so indexes stay valid for done/rm.
func flatLines(sub *model.TodoList, full *model.TodoList) []string {
	t := ui.Current()
	if sub.Size() == 0 {
		return []string{t.Muted.Render("no items")}
	}
	positions := map[*model.Todo]int{}
	if full != nil {
		for i, it := range full.ToArray() {
			if _, seen := positions[it]; !seen {
				positions[it] = i
			}
		}
	}
	out := make([]string, 0, sub.Size())
	for i, it := range sub.ToArray() {
		n := i
		if p, ok := positions[it]; ok {
			n = p
		}
		box, style := t.BoxUnchecked, t.Muted
		if it.IsDone() {
			box, style = t.BoxChecked, t.Success
		}
		title := it.Title()
		if r := []rune(title); len(r) > 80 {
			title = string(r[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", n+1)), style.Render(box), title))
	}
	return out
}

func groupLines(l *model.TodoList) []string {
	t := ui.Current()
	pend, done := l.AllNotDone(), l.AllDone()

	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if pend.Size() == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, l)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if done.Size() == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done, l)...)
	}
	return lines
}
