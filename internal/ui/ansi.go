package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects OK/Fail/Panel output; tests use it to capture text.
func SetOutput(out, errOut io.Writer) {
	stdout, stderr = out, errOut
}

// ParseColorMode maps a --color value to SetColorForcing arguments.
func ParseColorMode(mode string) (force, disable bool, err error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return false, false, nil
	case "always":
		return true, false, nil
	case "never":
		return false, true, nil
	}
	return false, false, fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
}

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

func OK(msg string) {
	fmt.Fprintln(stdout, current.Success.Render(current.SymDone+" "+msg))
}

func Fail(msg string) {
	fmt.Fprintln(stderr, current.Error.Render("✖ "+msg))
}

// Hint prints a muted follow-up line under a failure.
func Hint(msg string) {
	fmt.Fprintln(stderr, current.Muted.Render(msg))
}

// Println writes a plain line to the UI output.
func Println(a ...any) {
	fmt.Fprintln(stdout, a...)
}
