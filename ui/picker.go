package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned by a Picker when the session was cancelled,
// either by ctrl+c inside the prompt or by the context being done.
var ErrInterrupted = errors.New("picker interrupted")

// Item is one labeled entry shown by a Picker.
type Item struct {
	Label  string
	Detail string
}

// Picker presents items and reports the index the user picked. picked is
// false when the user dismissed the prompt without choosing.
type Picker interface {
	Pick(ctx context.Context, prompt string, items []Item) (index int, picked bool, err error)
}

type Theme int

const (
	ThemeColorful Theme = iota
	ThemeSimple
)

func (t Theme) String() string {
	switch t {
	case ThemeSimple:
		return "simple"
	default:
		return "colorful"
	}
}

func ParseTheme(raw string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "colorful":
		return ThemeColorful, true
	case "simple":
		return ThemeSimple, true
	default:
		return ThemeColorful, false
	}
}

// NewPicker returns the fuzzy-filter picker or the plain list picker.
func NewPicker(fuzzy bool, theme Theme, opts ...tea.ProgramOption) Picker {
	if fuzzy {
		return &FuzzyPicker{Theme: theme, ProgramOptions: opts}
	}
	return &ExactPicker{Theme: theme, ProgramOptions: opts}
}

func programOptions(ctx context.Context, extra []tea.ProgramOption) []tea.ProgramOption {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		// The caller owns the process signal handler.
		tea.WithoutSignalHandler(),
	}
	return append(opts, extra...)
}

func classifyRunError(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tea.ErrInterrupted):
		return ErrInterrupted
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return ErrInterrupted
	default:
		return fmt.Errorf("run picker: %w", err)
	}
}
