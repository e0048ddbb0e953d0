package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		// the send affordance is disabled while a turn is in flight
		if m.chat.Snapshot().Busy {
			return m, nil
		}
		req, ok := m.chat.Begin(m.chatInput.Value())
		if !ok {
			return m, nil
		}
		m.chatInput.Reset()
		return m, tea.Batch(deliverChatCmd(m.ctx, m.chat, req), m.spinner.Tick)
	case key.Matches(msg, m.keys.Suggest):
		suggestions := m.chat.Snapshot().Suggestions
		if len(suggestions) == 0 {
			return m, nil
		}
		m.chatInput.SetValue(suggestions[m.suggestion%len(suggestions)])
		m.chatInput.CursorEnd()
		m.suggestion++
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}
