package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

const (
	fuzzyVisibleRows = 15
	fuzzyLabelWidth  = 40
)

// FuzzyPicker filters items by a typed query and lets the user move through
// the remaining matches.
type FuzzyPicker struct {
	Theme          Theme
	ProgramOptions []tea.ProgramOption
}

func (p *FuzzyPicker) Pick(ctx context.Context, prompt string, items []Item) (int, bool, error) {
	if len(items) == 0 {
		return 0, false, nil
	}
	m := newFuzzyModel(prompt, items, StylesFor(p.Theme))
	final, err := tea.NewProgram(m, programOptions(ctx, p.ProgramOptions)...).Run()
	if err := classifyRunError(ctx, err); err != nil {
		return 0, false, err
	}
	done, ok := final.(fuzzyModel)
	if !ok {
		return 0, false, fmt.Errorf("run picker: unexpected model %T", final)
	}
	return done.chosen, done.picked, nil
}

type fuzzyMatch struct {
	index   int
	matched []int
}

type fuzzyModel struct {
	prompt  string
	items   []Item
	labels  []string
	styles  Styles
	input   textinput.Model
	matches []fuzzyMatch
	cursor  int
	offset  int
	width   int
	height  int
	chosen  int
	picked  bool
	done    bool
}

func newFuzzyModel(prompt string, items []Item, styles Styles) fuzzyModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.CharLimit = 200
	ti.Width = 40
	ti.Prompt = "> "
	ti.Focus()
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	m := fuzzyModel{
		prompt: prompt,
		items:  items,
		labels: labels,
		styles: styles,
		input:  ti,
	}
	m.refilter()
	return m
}

func (m fuzzyModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m fuzzyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Interrupt
		case "esc":
			m.done = true
			return m, tea.Quit
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.chosen = m.matches[m.cursor].index
			m.picked = true
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			m.moveCursor(-1)
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			m.moveCursor(1)
			return m, nil
		}
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m *fuzzyModel) refilter() {
	query := strings.TrimSpace(m.input.Value())
	m.matches = nil
	if query == "" {
		for i := range m.items {
			m.matches = append(m.matches, fuzzyMatch{index: i})
		}
	} else {
		for _, found := range fuzzy.Find(query, m.labels) {
			m.matches = append(m.matches, fuzzyMatch{index: found.Index, matched: found.MatchedIndexes})
		}
	}
	m.cursor = 0
	m.offset = 0
}

func (m *fuzzyModel) moveCursor(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.matches)-1)
	m.clampOffset()
}

func (m *fuzzyModel) visibleRows() int {
	rows := fuzzyVisibleRows
	// Prompt and input lines take two rows.
	if m.height > 0 && m.height-2 < rows {
		rows = max(m.height-2, 1)
	}
	return rows
}

func (m *fuzzyModel) clampOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(m.offset, 0)
}

func (m fuzzyModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Prompt(m.prompt))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if len(m.matches) == 0 {
		b.WriteString(m.styles.Secondary("  no matching branches"))
		b.WriteString("\n")
		return b.String()
	}
	end := min(m.offset+m.visibleRows(), len(m.matches))
	for i := m.offset; i < end; i++ {
		match := m.matches[i]
		item := m.items[match.index]
		selected := i == m.cursor
		prefix := m.styles.Blank
		if selected {
			prefix = m.styles.Cursor
		}
		b.WriteString(prefix)
		b.WriteString(m.renderLabel(item.Label, match.matched, selected))
		if item.Detail != "" {
			b.WriteString(" ")
			b.WriteString(m.styles.Secondary(m.fitDetail(item.Detail)))
		}
		b.WriteString("\n")
	}
	if len(m.matches) > end-m.offset {
		b.WriteString(m.styles.Secondary(fmt.Sprintf("  %d/%d", len(m.matches), len(m.items))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m fuzzyModel) renderLabel(label string, matched []int, selected bool) string {
	padded := PadOrTrim(label, fuzzyLabelWidth)
	base := m.styles.Normal
	if selected {
		base = m.styles.Selected
	}
	if len(matched) == 0 {
		return base(padded)
	}
	hit := make(map[int]bool, len(matched))
	for _, idx := range matched {
		hit[idx] = true
	}
	var b strings.Builder
	// MatchedIndexes are byte offsets into the label.
	for idx, r := range padded {
		if hit[idx] && idx < len(label) {
			b.WriteString(m.styles.Match(string(r)))
			continue
		}
		b.WriteString(base(string(r)))
	}
	return b.String()
}

func (m fuzzyModel) fitDetail(detail string) string {
	if m.width <= 0 {
		return detail
	}
	room := m.width - fuzzyLabelWidth - 3
	if room <= 0 {
		return ""
	}
	return strings.TrimRight(PadOrTrim(detail, room), " ")
}
