package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleExploreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ViewLibrary), key.Matches(msg, m.keys.Escape):
		m.currentView = ViewLibrary
		return m, nil
	case key.Matches(msg, m.keys.ViewCreate):
		m.currentView = ViewCreate
		m.focusCreateField()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.exploreSel > 0 {
			m.exploreSel--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.exploreSel < len(m.view.Explore)-1 {
			m.exploreSel++
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadExplore()

	case key.Matches(msg, m.keys.Play):
		if rec, ok := selectedRecord(m.view.Explore, m.exploreSel); ok {
			m.startPlayback(rec)
		}
		return m, nil
	case key.Matches(msg, m.keys.TogglePlay):
		m.togglePlayback()
		return m, nil
	case key.Matches(msg, m.keys.StopPlay):
		m.stopPlayback()
		return m, nil
	}
	return m, nil
}

func (m Model) renderExplore() string {
	if len(m.view.Explore) == 0 {
		return m.styles.MutedText.Render("  The explore feed is empty right now.")
	}
	return m.renderRecordList(m.view.Explore, m.exploreSel, true)
}
