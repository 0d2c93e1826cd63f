package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/luminaai/lumina/internal/api"
)

// Field order in createInputs.
const (
	createFieldTitle = iota
	createFieldPrompt
	createFieldLyrics
	createFieldStyle
)

var createLabels = [...]string{"Title", "Prompt", "Lyrics", "Style"}

func newCreateInputs() []textinput.Model {
	inputs := make([]textinput.Model, len(createLabels))
	for i, label := range createLabels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 512
		inputs[i] = in
	}
	inputs[createFieldTitle].CharLimit = 120
	return inputs
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewLibrary
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.createFocus = (m.createFocus + 1) % len(m.createInputs)
		m.focusCreateField()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if cmd := m.submitCreate(); cmd != nil {
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.createInputs[m.createFocus], cmd = m.createInputs[m.createFocus].Update(msg)
	return m, cmd
}

func (m *Model) focusCreateField() {
	for i := range m.createInputs {
		if i == m.createFocus {
			m.createInputs[i].Focus()
		} else {
			m.createInputs[i].Blur()
		}
	}
}

func (m Model) submitCreate() tea.Cmd {
	if m.view.IsGenerating {
		return nil
	}
	req := api.GenerateRequest{
		Title:  strings.TrimSpace(m.createInputs[createFieldTitle].Value()),
		Prompt: strings.TrimSpace(m.createInputs[createFieldPrompt].Value()),
		Lyrics: m.createInputs[createFieldLyrics].Value(),
		Style:  strings.TrimSpace(m.createInputs[createFieldStyle].Value()),
		Model:  m.genModel,
	}
	if req.Title == "" || req.Prompt == "" {
		return nil
	}
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		store.Generate(ctx, req)
		return nil
	}
}

func (m Model) renderCreate() string {
	var b strings.Builder
	b.WriteString("  " + m.styles.AccentText.Render("Create a new track") + "\n\n")
	for i := range m.createInputs {
		b.WriteString("  " + m.styles.MutedText.Render(createLabels[i]) + "\n")
		b.WriteString("  " + m.createInputs[i].View() + "\n")
	}
	b.WriteString("\n")
	if m.view.IsGenerating {
		b.WriteString("  " + m.styles.WarningText.Render("Generating... this can take a while") + "\n")
	}
	b.WriteString("  " + m.styles.MutedText.Render("enter submit · tab next field · esc back") + "\n")
	return b.String()
}
