package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const selectVisibleRows = 15

// ExactPicker shows items as a plain list without filtering.
type ExactPicker struct {
	Theme          Theme
	ProgramOptions []tea.ProgramOption
}

func (p *ExactPicker) Pick(ctx context.Context, prompt string, items []Item) (int, bool, error) {
	if len(items) == 0 {
		return 0, false, nil
	}
	m := newSelectModel(prompt, items, p.Theme)
	final, err := tea.NewProgram(m, programOptions(ctx, p.ProgramOptions)...).Run()
	if err := classifyRunError(ctx, err); err != nil {
		return 0, false, err
	}
	done, ok := final.(selectModel)
	if !ok {
		return 0, false, fmt.Errorf("run picker: unexpected model %T", final)
	}
	if done.form.State != huh.StateCompleted {
		return 0, false, nil
	}
	return *done.value, true, nil
}

// selectModel wraps a huh form so ctrl+c is reported separately from esc.
type selectModel struct {
	form  *huh.Form
	value *int
}

func newSelectModel(prompt string, items []Item, theme Theme) selectModel {
	value := new(int)
	options := make([]huh.Option[int], len(items))
	for i, item := range items {
		label := item.Label
		if item.Detail != "" {
			label = PadOrTrim(item.Label, fuzzyLabelWidth) + " " + item.Detail
		}
		options[i] = huh.NewOption(label, i)
	}
	sel := huh.NewSelect[int]().
		Title(prompt).
		Options(options...).
		Value(value).
		Height(min(len(items), selectVisibleRows) + 2)

	keys := huh.NewDefaultKeyMap()
	keys.Quit = key.NewBinding(key.WithKeys("esc"))
	form := huh.NewForm(huh.NewGroup(sel)).
		WithTheme(huhTheme(theme)).
		WithKeyMap(keys).
		WithShowHelp(false)
	form.SubmitCmd = tea.Quit
	form.CancelCmd = tea.Quit
	return selectModel{form: form, value: value}
}

func (m selectModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		return m, tea.Interrupt
	}
	next, cmd := m.form.Update(msg)
	if form, ok := next.(*huh.Form); ok {
		m.form = form
	}
	return m, cmd
}

func (m selectModel) View() string {
	if m.form.State != huh.StateNormal {
		return ""
	}
	return m.form.View()
}
