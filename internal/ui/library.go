package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/luminaai/lumina/internal/api"
)

func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ViewExplore):
		m.currentView = ViewExplore
		return m, nil
	case key.Matches(msg, m.keys.ViewCreate):
		m.currentView = ViewCreate
		m.focusCreateField()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.librarySel > 0 {
			m.librarySel--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.librarySel < len(m.view.Generations)-1 {
			m.librarySel++
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if rec, ok := selectedRecord(m.view.Generations, m.librarySel); ok {
			return m, m.toggleFavorite(rec.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Public):
		if rec, ok := selectedRecord(m.view.Generations, m.librarySel); ok {
			return m, m.togglePublic(rec.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if rec, ok := selectedRecord(m.view.Generations, m.librarySel); ok {
			return m, m.deleteRecord(rec.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.loadLibrary(), m.loadExplore())

	case key.Matches(msg, m.keys.Play):
		if rec, ok := selectedRecord(m.view.Generations, m.librarySel); ok {
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

func (m Model) toggleFavorite(id int64) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		store.ToggleFavorite(ctx, id)
		return nil
	}
}

func (m Model) togglePublic(id int64) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		store.TogglePublic(ctx, id)
		return nil
	}
}

func (m Model) deleteRecord(id int64) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		store.Delete(ctx, id)
		return nil
	}
}

func (m Model) startPlayback(rec api.Generation) {
	m.store.Play(rec.ID)
	if err := m.player.Prepare(rec.ResolvedOutputURL(m.origin)); err == nil {
		m.player.Play()
	}
}

func (m Model) togglePlayback() {
	if m.view.IsPlaying {
		m.player.Pause()
	} else {
		m.player.Play()
	}
	m.store.TogglePlay()
}

func (m Model) stopPlayback() {
	m.player.Stop()
	m.store.StopPlaying()
}

func (m Model) renderLibrary() string {
	if m.view.IsLoading && len(m.view.Generations) == 0 {
		return m.styles.MutedText.Render("  Loading your library...")
	}
	if len(m.view.Generations) == 0 {
		return m.styles.MutedText.Render("  Nothing here yet. Press 3 to create your first track.")
	}
	return m.renderRecordList(m.view.Generations, m.librarySel, false)
}

func (m Model) renderRecordList(items []api.Generation, sel int, explore bool) string {
	var b strings.Builder
	visible := m.visibleRows()
	start := 0
	if sel >= visible {
		start = sel - visible + 1
	}
	for i := start; i < len(items) && i < start+visible; i++ {
		rec := items[i]
		line := m.recordLine(rec, explore)
		if i == sel {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = m.styles.Text.Render("  " + line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) recordLine(rec api.Generation, explore bool) string {
	marks := favoriteGlyph(rec.IsFavorite) + publicGlyph(rec.IsPublic)
	playing := " "
	if rec.ID == m.view.NowPlayingID {
		playing = "♪"
	}
	byline := rec.DisplayArtist()
	if explore && rec.CreatorName != "" {
		byline = rec.CreatorName
	}
	return fmt.Sprintf("%s %s %-30s %-14s %-10s %s",
		playing,
		marks,
		truncate(rec.Title, 30),
		truncate(rec.DisplayGenre(), 14),
		statusLabel(rec.Status),
		m.styles.MutedText.Render(byline),
	)
}

func (m Model) visibleRows() int {
	rows := m.height - 4 // header, footer, spacing
	if rows < 3 {
		rows = 3
	}
	return rows
}
