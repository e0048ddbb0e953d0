package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/wedplan/internal/catalog"
	"github.com/jask/wedplan/internal/domain"
	"github.com/jask/wedplan/internal/draft"
)

var fieldLabels = map[draft.Field]string{
	draft.FieldName:         "Contact name",
	draft.FieldBusinessName: "Business name",
	draft.FieldEmail:        "Email",
	draft.FieldPhone:        "Phone",
	draft.FieldCategory:     "Category",
	draft.FieldLocation:     "Location",
	draft.FieldDescription:  "Description",
	draft.FieldPriceMin:     "Price from",
	draft.FieldPriceMax:     "Price to",
}

func (m model) View() string {
	var body string
	switch m.tab {
	case tabChat:
		body = m.renderChat()
	case tabVendor:
		body = m.renderForm()
	default:
		body = m.renderCatalog()
	}
	parts := []string{m.renderHeader(), body}
	if m.status != "" {
		style := statusBarStyle
		if m.statusErr {
			style = statusErrStyle
		} else if m.statusOK {
			style = statusOKStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) renderHeader() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	who := dimStyle.Render("connecting...")
	if u, ok := m.session.User(); ok {
		who = dimStyle.Render(u.Name)
	}
	return headerBarStyle.Render(headerAppStyle.Render("WedPlan") + "  " + strings.Join(tabs, " ") + "  " + who)
}

func (m model) renderFooter() string {
	bindings := m.keys.help(m.tab, m.filtering)
	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return footerStyle.Render(strings.Join(items, "  "))
}

func (m model) renderCatalog() string {
	var b strings.Builder
	selected := m.catalog.Selected()
	b.WriteString(titleStyle.Render("Vendors"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("‹ ") + categoryStyle.Render(displayFilter(selected)) + dimStyle.Render(" ›"))
	if m.recommended {
		b.WriteString("  " + infoStyle.Render("recommended for you"))
	}
	if m.loading {
		b.WriteString("  " + dimStyle.Render("loading..."))
	}
	b.WriteString("\n")
	if m.filtering {
		b.WriteString(m.filterInput.View())
		if c, ok := catalog.SuggestCategory(m.filterInput.Value()); ok {
			b.WriteString("  " + warnStyle.Render("did you mean "+c.String()+"?"))
		}
		b.WriteString("\n")
	}

	vendors := m.catalog.Vendors()
	if len(vendors) == 0 {
		if !m.loading {
			b.WriteString(dimStyle.Render("No vendors found for this category."))
		}
		return listBoxStyle.Render(b.String())
	}
	for i, v := range vendors {
		prefix := "  "
		name := v.BusinessName
		if i == m.cursor {
			prefix = cursorStyle.Render("▸ ")
			name = cursorStyle.Render(name)
		}
		line := prefix + name + "  " + categoryStyle.Render(v.Category.String())
		if v.Verified {
			line += " " + verifiedStyle.Render("✓")
		}
		b.WriteString(line + "\n")
		b.WriteString("    " + dimStyle.Render(v.Location) + "  " +
			priceStyle.Render(formatRange(v.PricingRange)) + "  " +
			ratingStyle.Render(fmt.Sprintf("★ %.1f", v.Rating)) + dimStyle.Render(fmt.Sprintf(" (%d reviews)", v.TotalReviews)) + "\n")
		if i == m.cursor {
			if v.Description != "" {
				b.WriteString("    " + m.wrap(v.Description, 4) + "\n")
			}
			if len(v.Services) > 0 {
				b.WriteString("    " + dimStyle.Render(strings.Join(v.Services, " · ")) + "\n")
			}
		}
	}
	return listBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) renderChat() string {
	st := m.chat.Snapshot()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Planner Chat"))
	b.WriteString("\n")
	if len(st.Transcript) == 0 {
		b.WriteString(dimStyle.Render("Tell me about your wedding: budget, guest count, date or style."))
		b.WriteString("\n")
	}
	for _, msg := range st.Transcript {
		switch msg.Role {
		case domain.ChatRoleUser:
			b.WriteString(userMsgStyle.Render("You") + "  " + m.wrap(msg.Content, 5))
		default:
			label := botMsgStyle.Render("Planner")
			if msg.WebSearchUsed {
				label += " " + infoStyle.Render("[web]")
			}
			b.WriteString(label + "  " + m.wrap(msg.Content, 9))
		}
		b.WriteString("\n")
	}
	if st.Busy {
		b.WriteString(m.spinner.View() + " " + dimStyle.Render("Planner is typing..."))
		b.WriteString("\n")
	} else if len(st.Suggestions) > 0 {
		for i, s := range st.Suggestions {
			b.WriteString(dimStyle.Render(strconv.Itoa(i+1)+". ") + infoStyle.Render(s) + "\n")
		}
	}
	if st.Busy {
		b.WriteString(dimStyle.Render(m.chatInput.Prompt + "waiting for reply"))
	} else {
		b.WriteString(m.chatInput.View())
	}
	return listBoxStyle.Render(b.String())
}

func (m model) renderForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("List Your Business"))
	b.WriteString("\n")
	for i, f := range formFields {
		label, value := labelStyle, m.form.Value(f)
		if i == m.focus {
			label = focusLabel
			if f != draft.FieldCategory {
				value = m.formInput.View()
			}
		}
		if f == draft.FieldCategory {
			value = dimStyle.Render("‹ ") + categoryStyle.Render(m.form.Category.String()) + dimStyle.Render(" ›")
		}
		b.WriteString(label.Render(fieldLabels[f]) + value + "\n")
	}
	for i, s := range m.form.Services {
		label, value := labelStyle, s
		if len(formFields)+i == m.focus {
			label, value = focusLabel, m.formInput.View()
		}
		if value == "" {
			value = dimStyle.Render("(empty)")
		}
		b.WriteString(label.Render(fmt.Sprintf("Service %d", i+1)) + value + "\n")
	}
	if m.submitting {
		b.WriteString(dimStyle.Render("Submitting..."))
	}
	return listBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// wrap fits text to the window width, indenting continuation lines.
func (m model) wrap(text string, indent int) string {
	if m.width <= indent+8 {
		return text
	}
	wrapped := lipgloss.NewStyle().Width(m.width - indent - 6).Render(text)
	return strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", indent))
}

func displayFilter(f string) string {
	if f == catalog.FilterAll {
		return "All categories"
	}
	return f
}

func formatRange(p domain.PriceRange) string {
	return "₹" + groupDigits(p.Min) + " - ₹" + groupDigits(p.Max)
}

// groupDigits formats n with Indian digit grouping (1,50,000).
func groupDigits(n int) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return sign + s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return sign + strings.Join(parts, ",") + "," + tail
}
