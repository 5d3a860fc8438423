package ui

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const accentColor = lipgloss.Color("#7D56F4")

type Styles struct {
	Prompt    func(string) string
	Normal    func(string) string
	Selected  func(string) string
	Match     func(string) string
	Secondary func(string) string
	Cursor    string
	Blank     string
}

func StylesFor(theme Theme) Styles {
	if theme == ThemeSimple {
		plain := func(s string) string { return s }
		return Styles{
			Prompt:    plain,
			Normal:    plain,
			Selected:  plain,
			Match:     plain,
			Secondary: plain,
			Cursor:    "> ",
			Blank:     "  ",
		}
	}
	var (
		promptStyle    = lipgloss.NewStyle().Bold(true)
		normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("251"))
		selectedStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
		matchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF7DB")).Underline(true)
		secondaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	)
	return Styles{
		Prompt:    func(s string) string { return promptStyle.Render(s) },
		Normal:    func(s string) string { return normalStyle.Render(s) },
		Selected:  func(s string) string { return selectedStyle.Render(s) },
		Match:     func(s string) string { return matchStyle.Render(s) },
		Secondary: func(s string) string { return secondaryStyle.Render(s) },
		Cursor:    selectedStyle.Render("❯ "),
		Blank:     "  ",
	}
}

func huhTheme(theme Theme) *huh.Theme {
	if theme == ThemeSimple {
		return huh.ThemeBase()
	}
	t := *huh.ThemeCharm()
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accentColor)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(accentColor)
	return &t
}

// PadOrTrim fits s into width cells, cutting with an ellipsis.
func PadOrTrim(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w <= width {
		return s + strings.Repeat(" ", width-w)
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	out := string(runes) + "…"
	return out + strings.Repeat(" ", max(0, width-lipgloss.Width(out)))
}
