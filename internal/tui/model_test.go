package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/wedplan/internal/api"
	"github.com/jask/wedplan/internal/chat"
	"github.com/jask/wedplan/internal/domain"
	"github.com/jask/wedplan/internal/draft"
	"github.com/jask/wedplan/internal/inquiry"
	"github.com/jask/wedplan/internal/session"
)

type fakeBackend struct {
	user        domain.User
	vendors     map[string][]domain.Vendor
	listed      []string
	chats       []api.ChatRequest
	chatErr     error
	inquiries   []api.InquiryRequest
	registered  []domain.VendorRecord
	registerErr error
}

func (f *fakeBackend) ProvisionUser(ctx context.Context, req api.ProvisionRequest) (domain.User, error) {
	u := f.user
	u.Name = req.Name
	return u, nil
}

func (f *fakeBackend) ListVendors(ctx context.Context, category string) ([]domain.Vendor, error) {
	f.listed = append(f.listed, category)
	return f.vendors[category], nil
}

func (f *fakeBackend) Recommend(ctx context.Context, userID, category string) (api.Recommendations, error) {
	recs := f.vendors["recommended"]
	return api.Recommendations{Recommendations: recs, TotalCount: len(recs), Category: "all"}, nil
}

func (f *fakeBackend) SendChat(ctx context.Context, req api.ChatRequest) (api.ChatResponse, error) {
	f.chats = append(f.chats, req)
	if f.chatErr != nil {
		return api.ChatResponse{}, f.chatErr
	}
	return api.ChatResponse{
		Response:    "A typical split is 40% venue and catering.",
		SessionID:   "s-1",
		Suggestions: []string{"Show me venues", "Catering ideas"},
	}, nil
}

func (f *fakeBackend) SendInquiry(ctx context.Context, req api.InquiryRequest) (domain.Inquiry, error) {
	f.inquiries = append(f.inquiries, req)
	return domain.Inquiry{ID: "i-1", UserID: req.UserID, VendorID: req.VendorID}, nil
}

func (f *fakeBackend) RegisterVendor(ctx context.Context, rec domain.VendorRecord) (domain.Vendor, error) {
	if f.registerErr != nil {
		return domain.Vendor{}, f.registerErr
	}
	f.registered = append(f.registered, rec)
	return domain.Vendor{ID: "v-new", BusinessName: rec.BusinessName, Category: rec.Category}, nil
}

var (
	photographer = domain.Vendor{ID: "v1", BusinessName: "Elite Wedding Photography", Category: domain.CategoryPhotography, Rating: 4.8}
	caterer      = domain.Vendor{ID: "v2", BusinessName: "Royal Feast Catering", Category: domain.CategoryCatering, Rating: 4.6}
)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		user: domain.User{ID: "u1"},
		vendors: map[string][]domain.Vendor{
			"":            {photographer, caterer},
			"Photography": {photographer},
			"Catering":    {caterer},
			"recommended": {caterer},
		},
	}
}

// testModel returns a model whose session already has a user and whose
// initial catalog load has been applied.
func testModel(t *testing.T, b *fakeBackend) model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewStore(logger)
	store.SetUser(domain.User{ID: "u1", Name: "Priya"})
	m := newModel(Options{
		Backend: b,
		User:    api.ProvisionRequest{Name: "Priya", Email: "priya@example.com"},
		Session: store,
		Logger:  logger,
	})
	t0 := m.catalog.Begin("all")
	m, _ = update(m, fetchVendorsCmd(m.ctx, m.catalog, t0)())
	return m
}

func update(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func press(m model, k tea.KeyType) (model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: k})
}

func typeRunes(m model, s string) (model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// run executes cmd and flattens batches. Only call it on commands known not
// to block on timers.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestInitProvisionsAndLoadsCatalog(t *testing.T) {
	b := newFakeBackend()
	m := newModel(Options{
		Backend: b,
		User:    api.ProvisionRequest{Name: "Priya"},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.True(t, m.loading)

	for _, msg := range run(m.Init()) {
		m, _ = update(m, msg)
	}
	require.False(t, m.loading)
	require.Equal(t, "Welcome, Priya.", m.status)
	require.Len(t, m.catalog.Vendors(), 2)
	require.Equal(t, []string{""}, b.listed)
	u, ok := m.session.User()
	require.True(t, ok)
	require.Equal(t, "u1", u.ID)
}

func TestChatTurnAppendsUserAndAssistant(t *testing.T) {
	b := newFakeBackend()
	m := testModel(t, b)
	m.tab = tabChat
	m.chatInput.SetValue("  How should I split my budget?  ")

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	st := m.chat.Snapshot()
	require.True(t, st.Busy)
	require.Equal(t, []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "How should I split my budget?"}}, st.Transcript)
	require.Empty(t, m.chatInput.Value())
	require.Contains(t, m.View(), "Planner is typing...")

	// a second send while the first is in flight does nothing
	m.chatInput.SetValue("and venues?")
	m, again := press(m, tea.KeyEnter)
	require.Nil(t, again)
	require.Len(t, m.chat.Snapshot().Transcript, 1)

	for _, msg := range run(cmd) {
		m, _ = update(m, msg)
	}
	st = m.chat.Snapshot()
	require.False(t, st.Busy)
	require.Len(t, st.Transcript, 2)
	require.Equal(t, domain.ChatRoleAssistant, st.Transcript[1].Role)
	require.Len(t, b.chats, 1)
	require.Equal(t, "s-1", m.session.SessionID())

	m, _ = press(m, tea.KeyCtrlF)
	require.Equal(t, "Show me venues", m.chatInput.Value())
	m, _ = press(m, tea.KeyCtrlF)
	require.Equal(t, "Catering ideas", m.chatInput.Value())
}

func TestChatFailureShowsFallback(t *testing.T) {
	b := newFakeBackend()
	b.chatErr = errors.New("connection refused")
	m := testModel(t, b)
	m.tab = tabChat
	m.chatInput.SetValue("hello")

	m, cmd := press(m, tea.KeyEnter)
	for _, msg := range run(cmd) {
		m, _ = update(m, msg)
	}
	st := m.chat.Snapshot()
	require.False(t, st.Busy)
	require.Len(t, st.Transcript, 2)
	require.Equal(t, chat.FallbackReply, st.Transcript[1].Content)
	require.Empty(t, st.Suggestions)
}

func TestFilterSuggestsClosestCategory(t *testing.T) {
	b := newFakeBackend()
	m := testModel(t, b)

	m, _ = typeRunes(m, "/")
	require.True(t, m.filtering)
	m.filterInput.SetValue("Catring")
	m, cmd := press(m, tea.KeyEnter)
	require.Nil(t, cmd)
	require.False(t, m.filtering)
	require.True(t, m.statusErr)
	require.Equal(t, `Unknown category "Catring". Did you mean Catering?`, m.status)
	require.Equal(t, "all", m.catalog.Selected())

	m, _ = typeRunes(m, "/")
	m.filterInput.SetValue("catering")
	m, cmd = press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.True(t, m.loading)
	for _, msg := range run(cmd) {
		m, _ = update(m, msg)
	}
	require.Equal(t, "Catering", m.catalog.Selected())
	require.Equal(t, []domain.Vendor{caterer}, m.catalog.Vendors())
	require.Equal(t, "Catering", b.listed[len(b.listed)-1])
}

func TestFilterEscapeKeepsSelection(t *testing.T) {
	m := testModel(t, newFakeBackend())
	m, _ = typeRunes(m, "/")
	m.filterInput.SetValue("Venue")
	m, cmd := press(m, tea.KeyEsc)
	require.Nil(t, cmd)
	require.False(t, m.filtering)
	require.Equal(t, "all", m.catalog.Selected())
}

func TestSupersededCatalogResponseIsIgnored(t *testing.T) {
	b := newFakeBackend()
	m := testModel(t, b)

	m, first := typeRunes(m, "l") // Photography
	m, second := typeRunes(m, "l") // Catering
	require.Equal(t, "Catering", m.catalog.Selected())

	for _, msg := range run(second) {
		m, _ = update(m, msg)
	}
	require.False(t, m.loading)
	for _, msg := range run(first) {
		m, _ = update(m, msg)
	}
	require.Equal(t, []domain.Vendor{caterer}, m.catalog.Vendors())
	require.False(t, m.loading)
}

func TestCatalogCursorAndInquiry(t *testing.T) {
	b := newFakeBackend()
	m := testModel(t, b)

	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)
	require.Equal(t, 1, m.cursor)

	m, cmd := typeRunes(m, "i")
	require.NotNil(t, cmd)
	for _, msg := range run(cmd) {
		m, _ = update(m, msg)
	}
	require.Equal(t, []api.InquiryRequest{{UserID: "u1", VendorID: "v2", Message: inquiry.Message}}, b.inquiries)
	require.Equal(t, inquiry.NoticeSent, m.status)
	require.True(t, m.statusOK)
}

func TestInquiryWithoutVendorsIsNoop(t *testing.T) {
	b := newFakeBackend()
	b.vendors[""] = nil
	m := testModel(t, b)

	_, cmd := typeRunes(m, "i")
	require.Nil(t, cmd)
	require.Empty(t, b.inquiries)
	require.Contains(t, m.View(), "No vendors found")
}

func TestRecommendedReplacesCatalog(t *testing.T) {
	b := newFakeBackend()
	m := testModel(t, b)

	m, cmd := typeRunes(m, "r")
	for _, msg := range run(cmd) {
		m, _ = update(m, msg)
	}
	require.True(t, m.recommended)
	require.Equal(t, []domain.Vendor{caterer}, m.catalog.Vendors())
	require.Equal(t, "1 vendors match your preferences.", m.status)
}

func fillForm(t *testing.T, m model) model {
	t.Helper()
	var err error
	m.form, err = draft.UpdateField(m.form, draft.FieldBusinessName, "Lakeside Lawns")
	require.NoError(t, err)
	m.form, err = draft.UpdateField(m.form, draft.FieldPriceMin, "150000")
	require.NoError(t, err)
	m.form = draft.UpdateService(m.form, 0, "Outdoor ceremonies")
	return m
}

func TestVendorFormSubmitSuccess(t *testing.T) {
	b := newFakeBackend()
	m := testModel(t, b)
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyTab)
	require.Equal(t, tabVendor, m.tab)
	m = fillForm(t, m)

	m, cmd := press(m, tea.KeyCtrlS)
	require.True(t, m.submitting)
	blocked, none := typeRunes(m, "x")
	require.Nil(t, none)
	require.Equal(t, m.form, blocked.form)

	m, refresh := update(m, run(cmd)[0])
	require.False(t, m.submitting)
	require.Equal(t, draft.NoticeRegistered, m.status)
	require.Equal(t, draft.New(), m.form)
	require.Len(t, b.registered, 1)
	require.Equal(t, 150000, b.registered[0].PricingRange.Min)
	require.Equal(t, []string{"Outdoor ceremonies"}, b.registered[0].Services)

	listed := len(b.listed)
	run(refresh)
	require.Len(t, b.listed, listed+1)
}

func TestVendorFormSubmitFailureKeepsDraft(t *testing.T) {
	b := newFakeBackend()
	b.registerErr = errors.New("422")
	m := testModel(t, b)
	m.tab = tabVendor
	m = fillForm(t, m)
	before := m.form

	m, cmd := press(m, tea.KeyCtrlS)
	m, refresh := update(m, run(cmd)[0])
	require.Nil(t, refresh)
	require.True(t, m.statusErr)
	require.Equal(t, draft.NoticeRegisterErr, m.status)
	require.Equal(t, before, m.form)
}

func TestVendorFormEditing(t *testing.T) {
	m := testModel(t, newFakeBackend())
	next, _ := m.switchTab(tabVendor)
	m = next.(model)

	m, _ = typeRunes(m, "Asha")
	require.Equal(t, "Asha", m.form.Name)

	for range 4 {
		m, _ = press(m, tea.KeyDown)
	}
	f, ok := m.focusedField()
	require.True(t, ok)
	require.Equal(t, draft.FieldCategory, f)
	m, _ = press(m, tea.KeyRight)
	require.Equal(t, domain.CategoryCatering, m.form.Category)
	m, _ = press(m, tea.KeyLeft)
	m, _ = press(m, tea.KeyLeft)
	require.Equal(t, domain.CategoryClothing, m.form.Category)

	m, _ = press(m, tea.KeyCtrlN)
	require.Len(t, m.form.Services, 2)
	require.Equal(t, 1, m.focusedService())
	m, _ = typeRunes(m, "Buffet")
	require.Equal(t, []string{"", "Buffet"}, m.form.Services)

	m, _ = press(m, tea.KeyCtrlD)
	require.Equal(t, []string{""}, m.form.Services)
	m, _ = press(m, tea.KeyCtrlD)
	require.Equal(t, []string{""}, m.form.Services, "last row stays")
}

func TestGroupDigits(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		500:     "500",
		1000:    "1,000",
		150000:  "1,50,000",
		7500000: "75,00,000",
		-25000:  "-25,000",
	}
	for in, want := range tests {
		require.Equal(t, want, groupDigits(in), "n=%d", in)
	}
}
