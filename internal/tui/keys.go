package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	TabAll       key.Binding
	TabPerson    key.Binding
	TabCompany   key.Binding
	Search       key.Binding
	Active       key.Binding
	Inactive     key.Binding
	Individual   key.Binding
	Company      key.Binding
	ClearFilters key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	SortPanel    key.Binding
	Close        key.Binding
	Accept       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		TabAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		TabPerson:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "individual")),
		TabCompany:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "company")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Active:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "active")),
		Inactive:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inactive")),
		Individual:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "individuals")),
		Company:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "companies")),
		ClearFilters: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		PrevPage:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
		NextPage:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		SortPanel:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Close:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Accept:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.SortPanel, k.Active, k.Inactive, k.Individual, k.Company, k.ClearFilters, k.PrevPage, k.NextPage, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TabAll, k.TabPerson, k.TabCompany, k.Search},
		{k.Active, k.Inactive, k.Individual, k.Company, k.ClearFilters},
		{k.PrevPage, k.NextPage, k.SortPanel, k.Quit},
	}
}

type sortKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Flip     key.Binding
	Remove   key.Binding
	Field    key.Binding
	AddAsc   key.Binding
	AddDesc  key.Binding
	ClearAll key.Binding
	Close    key.Binding
}

func newSortKeyMap() sortKeyMap {
	return sortKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Flip:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "flip")),
		Remove:   key.NewBinding(key.WithKeys("d", "backspace"), key.WithHelp("d", "remove")),
		Field:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		AddAsc:   key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add asc")),
		AddDesc:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "add desc")),
		ClearAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Close:    key.NewBinding(key.WithKeys("esc", "s"), key.WithHelp("esc", "apply")),
	}
}

func (k sortKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.MoveUp, k.MoveDown, k.Flip, k.Remove, k.Field, k.AddAsc, k.AddDesc, k.ClearAll, k.Close}
}

func (k sortKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
