package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	QuitSoft  key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Apply     key.Binding
	Cancel    key.Binding
	Filter    key.Binding
	Inquire   key.Binding
	Recommend key.Binding
	Refresh   key.Binding
	Suggest   key.Binding
	AddRow    key.Binding
	RemoveRow key.Binding
	Submit    key.Binding
	ResetForm key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		QuitSoft:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev category")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next category")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "type category")),
		Inquire:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "send inquiry")),
		Recommend: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recommended")),
		Refresh:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "reload")),
		Suggest:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "use suggestion")),
		AddRow:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add service")),
		RemoveRow: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove service")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		ResetForm: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear form")),
	}
}

// help returns the bindings shown in the footer for a view.
func (k keyMap) help(t tab, filtering bool) []key.Binding {
	switch {
	case filtering:
		return []key.Binding{k.Apply, k.Cancel}
	case t == tabCatalog:
		return []key.Binding{k.Left, k.Right, k.Filter, k.Inquire, k.Recommend, k.Refresh, k.NextTab, k.QuitSoft}
	case t == tabChat:
		return []key.Binding{k.Enter, k.Suggest, k.NextTab, k.Quit}
	default:
		return []key.Binding{k.Up, k.Down, k.AddRow, k.RemoveRow, k.Submit, k.ResetForm, k.NextTab, k.Quit}
	}
}
