package ui

import (
	"fmt"
	"strings"
)

var viewTabs = [...]struct {
	view  View
	label string
}{
	{ViewLibrary, "1 Library"},
	{ViewExplore, "2 Explore"},
	{ViewCreate, "3 Create"},
}

func (m Model) renderHeader() string {
	var tabs []string
	for _, tab := range viewTabs {
		if tab.view == m.currentView {
			tabs = append(tabs, m.styles.ActiveTab.Render(tab.label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(tab.label))
		}
	}
	user := ""
	if m.sess.User.Name != "" {
		user = m.styles.MutedText.Render(m.sess.User.Name)
	}
	return m.styles.Header.Render("Lumina") + strings.Join(tabs, "") + "  " + user
}

func (m Model) renderFooter() string {
	parts := []string{}

	if rec, ok := m.view.NowPlaying(); ok {
		glyph := "⏸"
		if m.view.IsPlaying {
			glyph = "▶"
		}
		parts = append(parts, m.styles.AccentText.Render(
			fmt.Sprintf("%s %s — %s", glyph, truncate(rec.Title, 28), rec.DisplayArtist())))
	}
	if m.view.IsGenerating {
		parts = append(parts, m.styles.WarningText.Render("generating..."))
	}
	if m.view.IsLoading {
		parts = append(parts, m.styles.MutedText.Render("loading..."))
	}
	if m.view.Err != "" {
		parts = append(parts, m.styles.DangerText.Render(m.view.Err))
	}
	parts = append(parts, m.styles.MutedText.Render("? help"))

	return m.styles.Footer.Render(strings.Join(parts, "  ·  "))
}

func (m Model) renderHelp() string {
	bindings := []struct{ keys, desc string }{
		{"1/2/3", "Switch view (library, explore, create)"},
		{"↑/↓, j/k", "Move selection"},
		{"enter", "Play selected track"},
		{"space", "Play / pause"},
		{"s", "Stop playback"},
		{"f", "Toggle favorite"},
		{"p", "Toggle public visibility"},
		{"d", "Delete selected track"},
		{"r", "Reload library and explore feed"},
		{"ctrl+l", "Logout"},
		{"?", "Toggle this help"},
		{"q, ctrl+c", "Quit"},
	}
	var b strings.Builder
	b.WriteString("  " + m.styles.AccentText.Render("Keyboard shortcuts") + "\n\n")
	for _, bind := range bindings {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.styles.Selected.Render(fmt.Sprintf("%-10s", bind.keys)),
			m.styles.Text.Render(bind.desc)))
	}
	return b.String()
}
