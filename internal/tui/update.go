package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 1
	inputHeight  = 3
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-inputHeight-1, 1)
		m.refresh()

	case replyMsg:
		m.waiting = false
		m.transcript = append(m.transcript, entry{from: speakerBot, text: msg.reply.Text, markdown: msg.reply.Markdown})
		if len(msg.reply.Keyboard) > 0 {
			m.keyboard = msg.reply.Keyboard
		}
		m.selected = -1
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.cycleQuickReply(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycleQuickReply(-1)
			return m, nil
		case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Send):
			text := m.input.Value()
			if strings.TrimSpace(text) == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.selected = -1
			m.waiting = true
			m.transcript = append(m.transcript, entry{from: speakerUser, text: text})
			m.refresh()
			return m, m.send(text)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// cycleQuickReply moves through the keyboard buttons and puts the selected one
// in the input.
func (m *Model) cycleQuickReply(step int) {
	if len(m.keyboard) == 0 {
		return
	}
	n := len(m.keyboard)
	if m.selected < 0 && step < 0 {
		m.selected = 0
	}
	m.selected = ((m.selected+step)%n + n) % n
	m.input.SetValue(m.keyboard[m.selected])
	m.input.CursorEnd()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
