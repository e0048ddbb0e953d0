package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/wedplan/internal/api"
	"github.com/jask/wedplan/internal/catalog"
	"github.com/jask/wedplan/internal/chat"
	"github.com/jask/wedplan/internal/domain"
	"github.com/jask/wedplan/internal/draft"
	"github.com/jask/wedplan/internal/inquiry"
	"github.com/jask/wedplan/internal/session"
)

type userReadyMsg struct {
	user domain.User
	err  error
}

type vendorsLoadedMsg struct {
	ticket      catalog.Ticket
	vendors     []domain.Vendor
	recommended bool
	err         error
}

type chatDoneMsg struct {
	state chat.State
}

type inquiryDoneMsg struct {
	notice inquiry.Notice
	sent   bool
}

type vendorSubmittedMsg struct {
	next    draft.Draft
	outcome draft.Outcome
}

func provisionCmd(ctx context.Context, store *session.Store, p session.Provisioner, req api.ProvisionRequest) tea.Cmd {
	return func() tea.Msg {
		u, err := store.Provision(ctx, p, req)
		return userReadyMsg{user: u, err: err}
	}
}

func fetchVendorsCmd(ctx context.Context, c *catalog.Catalog, t catalog.Ticket) tea.Cmd {
	return func() tea.Msg {
		vendors, err := c.Fetch(ctx, t)
		return vendorsLoadedMsg{ticket: t, vendors: vendors, err: err}
	}
}

func fetchRecommendedCmd(ctx context.Context, c *catalog.Catalog, r catalog.Recommender, t catalog.Ticket, userID string) tea.Cmd {
	return func() tea.Msg {
		vendors, err := c.FetchRecommended(ctx, r, t, userID)
		return vendorsLoadedMsg{ticket: t, vendors: vendors, recommended: true, err: err}
	}
}

func deliverChatCmd(ctx context.Context, o *chat.Orchestrator, req chat.Request) tea.Cmd {
	return func() tea.Msg {
		return chatDoneMsg{state: o.Deliver(ctx, req)}
	}
}

func sendInquiryCmd(ctx context.Context, d *inquiry.Dispatcher, vendorID string) tea.Cmd {
	return func() tea.Msg {
		n, sent := d.Send(ctx, vendorID)
		return inquiryDoneMsg{notice: n, sent: sent}
	}
}

func submitVendorCmd(ctx context.Context, r draft.Registrar, n draft.Normalizer, d draft.Draft, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		next, out := draft.Submit(ctx, r, n, d, logger)
		return vendorSubmittedMsg{next: next, outcome: out}
	}
}
