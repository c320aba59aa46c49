package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
	"github.com/sujal12344/client-list-table-ui/internal/view"
)

// App is the client table screen.
type App struct {
	session    *view.Session
	page       clients.Page
	mode       appMode
	search     textinput.Model
	help       help.Model
	keys       keyMap
	sortKeys   sortKeyMap
	sortCursor int
	fieldIdx   int
	tz         *time.Location
	dateFormat string
	width      int
	unsub      func()
}

type appMode string

const (
	modeTable  appMode = "table"
	modeSearch appMode = "search"
	modeSort   appMode = "sort"
)

// Options tune presentation.
type Options struct {
	DateFormat string
	Location   *time.Location
}

func New(session *view.Session, opts Options) *App {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.DateFormat == "" {
		opts.DateFormat = "2006-01-02"
	}
	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "⌕ "
	search.CharLimit = 64
	search.SetValue(session.Filters().State().SearchTerm)

	a := &App{
		session:    session,
		mode:       modeTable,
		search:     search,
		help:       help.New(),
		keys:       newKeyMap(),
		sortKeys:   newSortKeyMap(),
		tz:         opts.Location,
		dateFormat: opts.DateFormat,
	}
	a.page = session.View()
	a.unsub = session.Subscribe(func(p clients.Page) { a.page = p })
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		switch a.mode {
		case modeSearch:
			return a.handleSearchKey(m)
		case modeSort:
			return a.handleSortKey(m)
		}
		return a.handleTableKey(m)
	}
	return a, nil
}

func (a *App) handleTableKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := a.session
	switch {
	case key.Matches(m, a.keys.Quit):
		if a.unsub != nil {
			a.unsub()
		}
		return a, tea.Quit
	case key.Matches(m, a.keys.TabAll):
		s.SetTab(clients.TabAll)
	case key.Matches(m, a.keys.TabPerson):
		s.SetTab(clients.TabIndividual)
	case key.Matches(m, a.keys.TabCompany):
		s.SetTab(clients.TabCompany)
	case key.Matches(m, a.keys.Search):
		a.mode = modeSearch
		return a, a.search.Focus()
	case key.Matches(m, a.keys.Active):
		s.ToggleStatus(clients.FacetActive)
	case key.Matches(m, a.keys.Inactive):
		s.ToggleStatus(clients.FacetInactive)
	case key.Matches(m, a.keys.Individual):
		s.ToggleType(clients.FacetIndividual)
	case key.Matches(m, a.keys.Company):
		s.ToggleType(clients.FacetCompany)
	case key.Matches(m, a.keys.ClearFilters):
		s.ClearFilters()
	case key.Matches(m, a.keys.PrevPage):
		s.PreviousPage()
	case key.Matches(m, a.keys.NextPage):
		s.NextPage()
	case key.Matches(m, a.keys.SortPanel):
		a.mode = modeSort
		a.sortCursor = 0
		a.fieldIdx = 0
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.Close) || key.Matches(m, a.keys.Accept) {
		a.mode = modeTable
		a.search.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.session.SetSearch(a.search.Value())
	return a, cmd
}

func (a *App) handleSortKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := a.session
	list := s.Sorts().Criteria()
	offered := clients.OfferedFields(list)
	switch {
	case key.Matches(m, a.sortKeys.Close):
		a.mode = modeTable
	case key.Matches(m, a.sortKeys.Up):
		if a.sortCursor > 0 {
			a.sortCursor--
		}
	case key.Matches(m, a.sortKeys.Down):
		if a.sortCursor < len(list)-1 {
			a.sortCursor++
		}
	case key.Matches(m, a.sortKeys.MoveUp):
		if a.sortCursor > 0 {
			s.ReorderSort(a.sortCursor, a.sortCursor-1)
			a.sortCursor--
		}
	case key.Matches(m, a.sortKeys.MoveDown):
		if a.sortCursor < len(list)-1 {
			s.ReorderSort(a.sortCursor, a.sortCursor+1)
			a.sortCursor++
		}
	case key.Matches(m, a.sortKeys.Flip):
		if a.sortCursor < len(list) {
			c := list[a.sortCursor]
			s.SetSortDirection(c.ID, c.Direction.Flip())
		}
	case key.Matches(m, a.sortKeys.Remove):
		if a.sortCursor < len(list) {
			s.RemoveSort(list[a.sortCursor].ID)
			if a.sortCursor > 0 && a.sortCursor >= len(list)-1 {
				a.sortCursor--
			}
		}
	case key.Matches(m, a.sortKeys.Field):
		if len(offered) > 0 {
			a.fieldIdx = (a.fieldIdx + 1) % len(offered)
		}
	case key.Matches(m, a.sortKeys.AddAsc), key.Matches(m, a.sortKeys.AddDesc):
		if len(offered) == 0 {
			break
		}
		dir := clients.Asc
		if key.Matches(m, a.sortKeys.AddDesc) {
			dir = clients.Desc
		}
		s.AddSort(offered[a.fieldIdx%len(offered)].Key, dir)
		a.fieldIdx = 0
	case key.Matches(m, a.sortKeys.ClearAll):
		s.ClearSort()
		a.sortCursor = 0
	}
	return a, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTab     = tabStyle.Bold(true).Foreground(lipgloss.Color("15")).Underline(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	badgeStyle    = lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")).Padding(0, 1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	activeStatus  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	inactiveState = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Clients") + "\n\n")
	b.WriteString(a.renderToolbar() + "\n\n")
	if a.mode == modeSort {
		b.WriteString(a.renderSortPanel() + "\n\n")
	}
	b.WriteString(a.renderTable())
	b.WriteString("\n" + a.renderPager() + "\n\n")
	if a.mode == modeSort {
		b.WriteString(a.help.View(a.sortKeys))
	} else {
		b.WriteString(a.help.View(a.keys))
	}
	return b.String()
}

func (a *App) renderToolbar() string {
	tab := a.session.State().Tab
	var tabs []string
	for _, t := range []struct {
		tab   clients.Tab
		label string
	}{{clients.TabAll, "All"}, {clients.TabIndividual, "Individual"}, {clients.TabCompany, "Company"}} {
		if t.tab == tab {
			tabs = append(tabs, activeTab.Render(t.label))
		} else {
			tabs = append(tabs, tabStyle.Render(t.label))
		}
	}

	sortLabel := "Sort"
	if n := len(a.session.Sorts().Criteria()); n > 0 {
		sortLabel = fmt.Sprintf("Sort (%d)", n)
	}
	filterLabel := "Filter"
	if n := a.session.Filters().ActiveFilterCount(); n > 0 {
		filterLabel += " " + badgeStyle.Render(fmt.Sprint(n))
	}
	right := strings.Join([]string{a.search.View(), sortLabel, filterLabel}, "   ")
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(tabs, " "), "    ", right)
}

func (a *App) renderSortPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Sort By") + "\n")
	list := a.session.Sorts().Criteria()
	for i, c := range list {
		marker := "  "
		if i == a.sortCursor {
			marker = cursorStyle.Render("▶ ")
		}
		label, dirLabel := c.Field, string(c.Direction)
		if f, ok := clients.LookupField(c.Field); ok {
			label, dirLabel = f.Label, f.DirectionLabel(c.Direction)
		}
		fmt.Fprintf(&b, "%s%d. %-14s %s\n", marker, i+1, label, dirLabel)
	}
	offered := clients.OfferedFields(list)
	if len(offered) > 0 {
		f := offered[a.fieldIdx%len(offered)]
		fmt.Fprintf(&b, "\nAdd: %s  [+] %s  [-] %s", cursorStyle.Render(f.Label), f.DirectionLabel(clients.Asc), f.DirectionLabel(clients.Desc))
	}
	return panelStyle.Render(b.String())
}

func (a *App) renderTable() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-10s  %-26s  %-10s  %-30s  %-8s  %-10s  %-10s  %-10s",
		"Client ID", "Client Name", "Type", "Email", "Status", "Created", "Updated", "Updated By")) + "\n")
	if len(a.page.Records) == 0 {
		b.WriteString(mutedStyle.Render("No clients found.") + "\n")
		return b.String()
	}
	for _, c := range a.page.Records {
		status := activeStatus.Render(fmt.Sprintf("%-8s", c.Status))
		if c.Status != clients.StatusActive {
			status = inactiveState.Render(fmt.Sprintf("%-8s", c.Status))
		}
		fmt.Fprintf(&b, "%-10s  %-26s  %-10s  %-30s  %s  %-10s  %-10s  %-10s\n",
			truncate(c.ID, 10), truncate(c.Name, 26), c.Type, truncate(c.Email, 30), status,
			c.CreatedAt.In(a.tz).Format(a.dateFormat), c.UpdatedAt.In(a.tz).Format(a.dateFormat), truncate(c.UpdatedBy, 10))
	}
	return b.String()
}

func (a *App) renderPager() string {
	p := a.page
	summary := mutedStyle.Render(fmt.Sprintf("%d clients", p.Total))
	if p.PageCount <= 1 {
		return summary
	}
	prev, next := "[Previous]", "[Next]"
	if !p.CanPrevious {
		prev = mutedStyle.Render(prev)
	}
	if !p.CanNext {
		next = mutedStyle.Render(next)
	}
	return fmt.Sprintf("%s   %s  Page %d of %d  %s", summary, prev, p.PageIndex+1, p.PageCount, next)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
