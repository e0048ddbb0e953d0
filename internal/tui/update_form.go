package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/wedplan/internal/domain"
	"github.com/jask/wedplan/internal/draft"
)

var formFields = draft.Fields()

// The form focus runs over the scalar fields and then the service rows.
func (m model) focusCount() int { return len(formFields) + len(m.form.Services) }

func (m model) focusedField() (draft.Field, bool) {
	if m.focus < len(formFields) {
		return formFields[m.focus], true
	}
	return "", false
}

func (m model) focusedService() int { return m.focus - len(formFields) }

func (m model) focusedValue() string {
	if f, ok := m.focusedField(); ok {
		return m.form.Value(f)
	}
	if i := m.focusedService(); i >= 0 && i < len(m.form.Services) {
		return m.form.Services[i]
	}
	return ""
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.submitting = true
		m.setInfo("Submitting...")
		return m, submitVendorCmd(m.ctx, m.backend, m.normalizer, m.form, m.log)
	case key.Matches(msg, m.keys.ResetForm):
		m.form = draft.Reset(m.form)
		return m.setFocus(0)
	case key.Matches(msg, m.keys.AddRow):
		m.form = draft.AddService(m.form)
		return m.setFocus(m.focusCount() - 1)
	case key.Matches(msg, m.keys.RemoveRow):
		i := m.focusedService()
		if i < 0 || len(m.form.Services) <= 1 {
			return m, nil
		}
		m.form = draft.RemoveService(m.form, i)
		return m.setFocus(min(m.focus, m.focusCount()-1))
	case msg.Type == tea.KeyUp:
		return m.setFocus((m.focus + m.focusCount() - 1) % m.focusCount())
	case msg.Type == tea.KeyDown, msg.Type == tea.KeyEnter:
		return m.setFocus((m.focus + 1) % m.focusCount())
	}

	if f, ok := m.focusedField(); ok && f == draft.FieldCategory {
		switch msg.Type {
		case tea.KeyLeft:
			m.form.Category = cycleCategory(m.form.Category, -1)
		case tea.KeyRight, tea.KeySpace:
			m.form.Category = cycleCategory(m.form.Category, 1)
		}
		m.formInput.SetValue(m.form.Category.String())
		return m, nil
	}

	var cmd tea.Cmd
	m.formInput, cmd = m.formInput.Update(msg)
	value := m.formInput.Value()
	if f, ok := m.focusedField(); ok {
		if next, err := draft.UpdateField(m.form, f, value); err == nil {
			m.form = next
		}
	} else {
		m.form = draft.UpdateService(m.form, m.focusedService(), value)
	}
	return m, cmd
}

func (m model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.focus = i
	m.formInput.SetValue(m.focusedValue())
	m.formInput.CursorEnd()
	cmd := m.formInput.Focus()
	return m, cmd
}

func (m model) handleVendorSubmitted(msg vendorSubmittedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if !msg.outcome.OK {
		m.setError(msg.outcome.Notice)
		return m, nil
	}
	m.setOK(msg.outcome.Notice)
	m.form = msg.next
	m.focus = 0
	m.formInput.SetValue(m.focusedValue())
	// the new vendor may belong to the category on screen
	return m.loadVendors(m.catalog.Selected())
}

func cycleCategory(c domain.Category, step int) domain.Category {
	cats := domain.Categories()
	idx := 0
	for i, cat := range cats {
		if cat == c {
			idx = i
			break
		}
	}
	return cats[(idx+step+len(cats))%len(cats)]
}
