package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/warp"
)

var (
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#B91C1C")).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("#9CA3AF"))
	focusedStyle  = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("#EF4444")).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6B7280"))
	activeButton  = buttonStyle.BorderForeground(lipgloss.Color("#EF4444")).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(common.AppName) + "\n\n")

	for i := 0; i < fieldGenerate; i++ {
		b.WriteString(m.fieldView(i) + "\n")
	}

	button := buttonStyle
	if m.focus == fieldGenerate {
		button = activeButton
	}
	b.WriteString("\n" + button.Render("Generate") + "\n")

	switch {
	case m.busy:
		b.WriteString("\n" + m.spinner.View() + " Running wgcf...\n")
	case m.err != nil:
		b.WriteString("\n" + errorStyle.Render("✗ "+errorTitle(m.err)) + "\n  " + m.err.Error() + "\n")
	case m.result != nil:
		b.WriteString("\n" + successStyle.Render("✓ "+m.result.Message()) + "\n")
		if p := m.result.Obfuscation; p != nil {
			b.WriteString(helpStyle.Render(fmt.Sprintf("  Jc=%d Jmin=%d Jmax=%d H=%d/%d/%d/%d",
				p.Jc, p.Jmin, p.Jmax, p.H1, p.H2, p.H3, p.H4)) + "\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + helpStyle.Render(m.status) + "\n")
	}

	b.WriteString(helpStyle.Render("\n  tab/↓: Next • shift+tab/↑: Previous • ←/→: Change • enter: Generate • ctrl+s: Save defaults • esc: Quit\n"))
	return b.String()
}

func (m Model) fieldView(i int) string {
	f := m.fields[i]

	label := labelStyle.Render(f.label)
	if i == m.focus {
		label = focusedStyle.Render(f.label)
	}

	var value string
	switch f.kind {
	case kindText:
		value = f.input.View()
	case kindChoice:
		value = "‹ " + f.choices[f.selected] + " ›"
	}

	if !m.enabled(i) {
		return disabledStyle.Render(labelStyle.Render(f.label) + disabledStyle.Render(plainValue(f)))
	}
	return label + value
}

func plainValue(f field) string {
	if f.kind == kindText {
		return f.input.Value()
	}
	return f.choices[f.selected]
}

func errorTitle(err error) string {
	if kind := warp.KindOf(err); kind != 0 {
		return kind.String()
	}
	return "Invalid input"
}
