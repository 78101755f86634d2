package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"

	"github.com/idilsaglam/todolist/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; fine for a local single-user CLI.

type document struct {
	Name  string        `json:"name"`
	Todos []*model.Todo `json:"todos"`
}

// Store reads and writes one todo list file.
type Store struct {
	Path   string
	Logger *log.Logger
}

func New(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{Path: path, Logger: logger}
}

// Load reads the list at s.Path. A missing file yields an empty list
// called name; a stored name takes precedence over name.
func (s *Store) Load(name string) (*model.TodoList, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.Logger.Debug("no data file yet", "path", s.Path)
			return model.NewTodoList(name), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if doc.Name != "" {
		name = doc.Name
	}
	list := model.NewTodoList(name)
	for i, t := range doc.Todos {
		if err := list.Add(t); err != nil {
			return nil, fmt.Errorf("todo %d: %w", i, err)
		}
	}
	s.Logger.Debug("loaded list", "path", s.Path, "name", list.Name(), "items", list.Size())
	return list, nil
}

// Save writes list to s.Path atomically (temp file + rename).
func (s *Store) Save(list *model.TodoList) error {
	doc := document{Name: list.Name(), Todos: list.ToArray()}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := atomic.WriteFile(s.Path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	s.Logger.Debug("saved list", "path", s.Path, "items", list.Size())
	return nil
}
