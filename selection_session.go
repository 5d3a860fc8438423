package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mrbonezy/git-select-branch/ui"
)

const selectionPrompt = "Switch to branch:"

type Outcome int

const (
	OutcomeChosen Outcome = iota
	OutcomeNoneChosen
	OutcomeInterrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeChosen:
		return "chosen"
	case OutcomeNoneChosen:
		return "none chosen"
	case OutcomeInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Selection is the result of one picker session. Index is meaningful only
// when Outcome is OutcomeChosen.
type Selection struct {
	Outcome Outcome
	Index   int
}

var now = time.Now

var restoreTerminal = restoreCursor

func runSelection(ctx context.Context, options []Option, picker ui.Picker) (Selection, error) {
	index, picked, err := picker.Pick(ctx, selectionPrompt, pickerItems(options))
	switch {
	case errors.Is(err, ui.ErrInterrupted):
		restoreTerminal()
		slog.Debug("selection interrupted")
		return Selection{Outcome: OutcomeInterrupted}, nil
	case err != nil:
		return Selection{}, fmt.Errorf("select branch: %w", err)
	case !picked:
		slog.Debug("selection dismissed")
		return Selection{Outcome: OutcomeNoneChosen}, nil
	case index < 0 || index >= len(options):
		return Selection{}, fmt.Errorf("select branch: picker returned index %d of %d", index, len(options))
	}
	slog.Debug("selection made", slog.Int("index", index), slog.String("label", options[index].Label()))
	return Selection{Outcome: OutcomeChosen, Index: index}, nil
}

func pickerItems(options []Option) []ui.Item {
	items := make([]ui.Item, len(options))
	for i, opt := range options {
		items[i] = ui.Item{Label: opt.Label(), Detail: optionDetail(opt)}
	}
	return items
}

func optionDetail(opt Option) string {
	record, ok := opt.Branch()
	if !ok {
		return "(current)"
	}
	parts := []string{humanize.RelTime(record.TipCommitTime, now(), "ago", "from now")}
	if record.TipAuthorName != "" {
		parts = append(parts, record.TipAuthorName)
	}
	if subject := record.Subject(); subject != "" {
		parts = append(parts, subject)
	}
	return strings.Join(parts, "  ")
}
