// Package tui is the terminal front end. It renders the state held by the
// session, chat, catalog, draft and inquiry packages and turns key presses
// into their operations; network calls run as tea.Cmds.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/wedplan/internal/api"
	"github.com/jask/wedplan/internal/catalog"
	"github.com/jask/wedplan/internal/chat"
	"github.com/jask/wedplan/internal/draft"
	"github.com/jask/wedplan/internal/inquiry"
	"github.com/jask/wedplan/internal/session"
)

// Backend is everything the client asks of the planner API. *api.Client
// satisfies it.
type Backend interface {
	session.Provisioner
	catalog.Lister
	catalog.Recommender
	chat.Sender
	inquiry.Sender
	draft.Registrar
}

// Options configures a Model.
type Options struct {
	Context    context.Context
	Backend    Backend
	User       api.ProvisionRequest
	Normalizer draft.Normalizer
	Chat       *chat.Orchestrator
	Session    *session.Store
	Logger     *slog.Logger
}

type tab int

const (
	tabCatalog tab = iota
	tabChat
	tabVendor
)

var tabNames = []string{"Vendors", "Planner Chat", "List Your Business"}

type model struct {
	ctx        context.Context
	keys       keyMap
	backend    Backend
	user       api.ProvisionRequest
	session    *session.Store
	chat       *chat.Orchestrator
	catalog    *catalog.Catalog
	inquiries  *inquiry.Dispatcher
	normalizer draft.Normalizer
	log        *slog.Logger

	tab    tab
	width  int
	height int

	// catalog view
	cursor      int
	loading     bool
	latest      uint64
	recommended bool
	filtering   bool
	filterInput textinput.Model

	// chat view
	chatInput  textinput.Model
	spinner    spinner.Model
	suggestion int

	// vendor form
	form       draft.Draft
	focus      int
	formInput  textinput.Model
	submitting bool

	status    string
	statusErr bool
	statusOK  bool
}

// New builds the root bubbletea model. Session and Chat may be nil, in
// which case they are created from Backend.
func New(opts Options) tea.Model {
	return newModel(opts)
}

func newModel(opts Options) model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := opts.Session
	if store == nil {
		store = session.NewStore(logger)
	}
	orch := opts.Chat
	if orch == nil {
		orch = chat.NewOrchestrator(opts.Backend, store, 0, logger)
	}

	filter := textinput.New()
	filter.Placeholder = "category, e.g. Catering"
	filter.Prompt = "/ "
	filter.CharLimit = 32

	in := textinput.New()
	in.Placeholder = "Ask about budgets, venues, vendors..."
	in.Prompt = "› "
	in.CharLimit = 2000
	in.Focus()

	form := textinput.New()
	form.Prompt = ""
	form.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cursorStyle

	return model{
		ctx:         ctx,
		keys:        defaultKeys(),
		backend:     opts.Backend,
		user:        opts.User,
		session:     store,
		chat:        orch,
		catalog:     catalog.New(opts.Backend, logger),
		inquiries:   inquiry.NewDispatcher(opts.Backend, store, logger),
		normalizer:  opts.Normalizer,
		log:         logger.With("component", "tui"),
		filterInput: filter,
		chatInput:   in,
		spinner:     sp,
		loading:     true,
		form:        draft.New(),
		formInput:   form,
	}
}

func (m model) Init() tea.Cmd {
	t := m.catalog.Begin(catalog.FilterAll)
	return tea.Batch(
		provisionCmd(m.ctx, m.session, m.backend, m.user),
		fetchVendorsCmd(m.ctx, m.catalog, t),
		textinput.Blink,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chatInput.Width = max(msg.Width-6, 10)
		return m, nil
	case userReadyMsg:
		if msg.err != nil {
			m.setError("Could not set up your profile: " + msg.err.Error())
			return m, nil
		}
		m.setInfo("Welcome, " + msg.user.Name + ".")
		return m, nil
	case vendorsLoadedMsg:
		return m.handleVendorsLoaded(msg)
	case chatDoneMsg:
		m.suggestion = 0
		return m, nil
	case inquiryDoneMsg:
		if !msg.sent {
			return m, nil
		}
		if msg.notice.OK {
			m.setOK(msg.notice.Text)
		} else {
			m.setError(msg.notice.Text)
		}
		return m, nil
	case vendorSubmittedMsg:
		return m.handleVendorSubmitted(msg)
	case spinner.TickMsg:
		if !m.chat.Snapshot().Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m.forwardToInput(msg)
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.filtering {
		return m.updateFilter(msg)
	}
	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % tab(len(tabNames)))
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames)))
	}
	switch m.tab {
	case tabChat:
		return m.updateChat(msg)
	case tabVendor:
		return m.updateForm(msg)
	default:
		return m.updateCatalog(msg)
	}
}

func (m model) switchTab(t tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.chatInput.Blur()
	m.formInput.Blur()
	var cmd tea.Cmd
	switch t {
	case tabChat:
		cmd = m.chatInput.Focus()
	case tabVendor:
		m.formInput.SetValue(m.focusedValue())
		cmd = m.formInput.Focus()
	}
	return m, cmd
}

// forwardToInput passes non-key messages (cursor blink) to the focused
// text input.
func (m model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.filtering:
		m.filterInput, cmd = m.filterInput.Update(msg)
	case m.tab == tabChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	case m.tab == tabVendor:
		m.formInput, cmd = m.formInput.Update(msg)
	}
	return m, cmd
}

func (m *model) setError(msg string) {
	m.status, m.statusErr, m.statusOK = msg, true, false
}

func (m *model) setOK(msg string) {
	m.status, m.statusErr, m.statusOK = msg, false, true
}

func (m *model) setInfo(msg string) {
	m.status, m.statusErr, m.statusOK = msg, false, false
}
