package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/wedplan/internal/catalog"
	"github.com/jask/wedplan/internal/domain"
)

func (m model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vendors := m.catalog.Vendors()
	switch {
	case key.Matches(msg, m.keys.QuitSoft):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(vendors)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		return m.loadVendors(cycleFilter(m.catalog.Selected(), -1))
	case key.Matches(msg, m.keys.Right):
		return m.loadVendors(cycleFilter(m.catalog.Selected(), 1))
	case key.Matches(msg, m.keys.Refresh):
		return m.loadVendors(m.catalog.Selected())
	case key.Matches(msg, m.keys.Recommend):
		return m.loadRecommended()
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue("")
		cmd := m.filterInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Inquire):
		if m.cursor >= len(vendors) {
			return m, nil
		}
		if _, ok := m.session.User(); !ok {
			return m, nil
		}
		return m, sendInquiryCmd(m.ctx, m.inquiries, vendors[m.cursor].ID)
	}
	return m, nil
}

// loadVendors switches the selection to filter and fetches it.
func (m model) loadVendors(filter string) (tea.Model, tea.Cmd) {
	t := m.catalog.Begin(filter)
	m.latest = t.ID
	m.loading = true
	m.recommended = false
	return m, fetchVendorsCmd(m.ctx, m.catalog, t)
}

func (m model) loadRecommended() (tea.Model, tea.Cmd) {
	u, ok := m.session.User()
	if !ok {
		return m, nil
	}
	t := m.catalog.Begin(m.catalog.Selected())
	m.latest = t.ID
	m.loading = true
	return m, fetchRecommendedCmd(m.ctx, m.catalog, m.backend, t, u.ID)
}

func (m model) handleVendorsLoaded(msg vendorsLoadedMsg) (tea.Model, tea.Cmd) {
	applied := m.catalog.Resolve(msg.ticket, msg.vendors, msg.err)
	if msg.ticket.ID < m.latest {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.setError("Could not load vendors. Showing previous results.")
		return m, nil
	}
	if applied {
		m.recommended = msg.recommended
		if n := len(m.catalog.Vendors()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		if msg.recommended {
			m.setOK(fmt.Sprintf("%d vendors match your preferences.", len(msg.vendors)))
		}
	}
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Apply):
		m.filtering = false
		m.filterInput.Blur()
		filter, ok := resolveFilter(m.filterInput.Value())
		if !ok {
			m.setError(unknownCategoryNotice(m.filterInput.Value()))
			return m, nil
		}
		m.setInfo("")
		return m.loadVendors(filter)
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// resolveFilter maps typed input to a catalog filter. Blank input selects
// every category.
func resolveFilter(input string) (string, bool) {
	in := strings.TrimSpace(input)
	if in == "" || strings.EqualFold(in, catalog.FilterAll) {
		return catalog.FilterAll, true
	}
	c, err := domain.ParseCategory(in)
	if err != nil {
		return "", false
	}
	return c.String(), true
}

func unknownCategoryNotice(input string) string {
	notice := fmt.Sprintf("Unknown category %q.", strings.TrimSpace(input))
	if c, ok := catalog.SuggestCategory(input); ok {
		notice += " Did you mean " + c.String() + "?"
	}
	return notice
}

func cycleFilter(current string, step int) string {
	filters := catalog.Filters()
	idx := 0
	for i, f := range filters {
		if f == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(filters)) % len(filters)
	return filters[idx]
}
