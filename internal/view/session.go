// Package view composes the sorted, filtered, paginated table view from a
// record collection and the session's criteria stores.
package view

import (
	"log/slog"
	"slices"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
	"github.com/sujal12344/client-list-table-ui/internal/criteria"
)

// State is the view state owned by the session.
type State struct {
	Tab       clients.Tab
	PageIndex int
	PageSize  int
}

type cacheKey struct {
	records uint64
	sorts   uint64
	filters uint64
	tab     clients.Tab
}

// Session derives the table view. It is single-threaded: intents issued
// while a view is being computed or published are queued and applied once
// the current computation completes.
type Session struct {
	records    []clients.Client
	recordsRev uint64
	sorts      *criteria.SortStore
	filters    *criteria.FilterStore
	sorter     clients.Sorter
	state      State
	logger     *slog.Logger

	key      cacheKey
	cached   []clients.Client
	hasCache bool
	last     clients.Page

	computations int
	busy         bool
	applying     bool
	dirty        bool
	pending      []func()

	observers map[int]func(clients.Page)
	nextObs   int
	unsub     []func()
}

// NewSession returns a session over records. The slice is copied.
func NewSession(records []clients.Client, sorts *criteria.SortStore, filters *criteria.FilterStore, opts ...Option) *Session {
	s := &Session{
		records: slices.Clone(records),
		sorts:   sorts,
		filters: filters,
		sorter:  clients.Sorter{},
		state:   State{Tab: clients.TabAll, PageSize: clients.DefaultPageSize},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.unsub = append(s.unsub, sorts.Subscribe(s.storeChanged), filters.Subscribe(s.storeChanged))
	return s
}

// Close detaches the session from its stores.
func (s *Session) Close() {
	for _, fn := range s.unsub {
		fn()
	}
	s.unsub = nil
}

// Sorts returns the sort criteria store.
func (s *Session) Sorts() *criteria.SortStore { return s.sorts }

// Filters returns the filter store.
func (s *Session) Filters() *criteria.FilterStore { return s.filters }

// State returns the current view state.
func (s *Session) State() State { return s.state }

// Subscribe registers fn to receive the page after every change.
func (s *Session) Subscribe(fn func(clients.Page)) (unsubscribe func()) {
	if s.observers == nil {
		s.observers = make(map[int]func(clients.Page))
	}
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

// View returns the current page. Called while a computation is in flight it
// returns the last completed page.
func (s *Session) View() clients.Page {
	if s.busy {
		return s.last
	}
	s.busy = true
	page := s.compute()
	s.busy = false
	s.drain()
	return page
}

// compute runs sort, filter and pagination, reusing the sorted and filtered
// records while their inputs are unchanged. A page index made invalid by a
// shrinking result resets to the first page.
func (s *Session) compute() clients.Page {
	key := cacheKey{
		records: s.recordsRev,
		sorts:   s.sorts.Revision(),
		filters: s.filters.Revision(),
		tab:     s.state.Tab,
	}
	if !s.hasCache || key != s.key {
		sorted := s.sorter.Sort(s.records, s.sorts.Criteria())
		s.cached = clients.Filter(sorted, s.state.Tab, s.filters.State())
		s.key = key
		s.hasCache = true
		s.computations++
		s.logger.Debug("view recomputed",
			slog.Int("records", len(s.records)),
			slog.Int("visible", len(s.cached)))
	}
	if s.state.PageIndex < 0 || s.state.PageIndex >= clients.PageCount(len(s.cached), s.state.PageSize) {
		s.state.PageIndex = 0
	}
	s.last = clients.Paginate(s.cached, s.state.PageIndex, s.state.PageSize)
	return s.last
}

// apply runs an intent now, or queues it while busy, then publishes.
func (s *Session) apply(fn func()) {
	if s.busy {
		s.pending = append(s.pending, fn)
		return
	}
	s.applying = true
	fn()
	s.applying = false
	s.publish()
}

func (s *Session) publish() {
	s.busy = true
	page := s.compute()
	for id := 0; id < s.nextObs; id++ {
		if fn, ok := s.observers[id]; ok {
			fn(page)
		}
	}
	s.busy = false
	s.drain()
}

// drain applies queued intents and republishes when anything changed while
// the session was busy.
func (s *Session) drain() {
	if len(s.pending) == 0 && !s.dirty {
		return
	}
	queued := s.pending
	s.pending = nil
	s.dirty = false
	s.applying = true
	for _, fn := range queued {
		fn()
	}
	s.applying = false
	s.publish()
}

func (s *Session) storeChanged() {
	switch {
	case s.applying:
	case s.busy:
		s.dirty = true
	default:
		s.publish()
	}
}

// SetRecords replaces the record collection.
func (s *Session) SetRecords(records []clients.Client) {
	s.apply(func() {
		s.records = slices.Clone(records)
		s.recordsRev++
	})
}

// SetTab selects the category tab.
func (s *Session) SetTab(tab clients.Tab) {
	s.apply(func() { s.state.Tab = tab })
}

// SetPageSize changes the page size. Non-positive sizes are ignored.
func (s *Session) SetPageSize(n int) {
	s.apply(func() {
		if n > 0 {
			s.state.PageSize = n
		}
	})
}

// NextPage advances one page when there is a next page.
func (s *Session) NextPage() {
	s.apply(func() {
		if s.current().CanNext {
			s.state.PageIndex++
		}
	})
}

// PreviousPage goes back one page when there is a previous page.
func (s *Session) PreviousPage() {
	s.apply(func() {
		if s.current().CanPrevious {
			s.state.PageIndex--
		}
	})
}

// GoToPage jumps to index when it is within range.
func (s *Session) GoToPage(index int) {
	s.apply(func() {
		if index >= 0 && index < s.current().PageCount {
			s.state.PageIndex = index
		}
	})
}

func (s *Session) current() clients.Page {
	s.busy = true
	defer func() { s.busy = false }()
	return s.compute()
}

// AddSort adds a sort criterion for field.
func (s *Session) AddSort(field string, direction clients.Direction) {
	s.apply(func() { s.sorts.Add(field, direction) })
}

// RemoveSort removes the criterion with id.
func (s *Session) RemoveSort(id string) {
	s.apply(func() { s.sorts.Remove(id) })
}

// SetSortDirection changes the direction of the criterion with id.
func (s *Session) SetSortDirection(id string, direction clients.Direction) {
	s.apply(func() { s.sorts.UpdateDirection(id, direction) })
}

// ReorderSort moves a criterion between positions.
func (s *Session) ReorderSort(from, to int) {
	s.apply(func() { s.sorts.Reorder(from, to) })
}

// ClearSort removes all sort criteria.
func (s *Session) ClearSort() {
	s.apply(func() { s.sorts.ClearAll() })
}

// ToggleStatus flips a status facet.
func (s *Session) ToggleStatus(facet clients.StatusFacet) {
	s.apply(func() { s.filters.ToggleStatus(facet) })
}

// ToggleType flips a type facet.
func (s *Session) ToggleType(facet clients.TypeFacet) {
	s.apply(func() { s.filters.ToggleType(facet) })
}

// SetSearch replaces the search term.
func (s *Session) SetSearch(term string) {
	s.apply(func() { s.filters.SetSearchTerm(term) })
}

// ClearFilters resets the facet toggles.
func (s *Session) ClearFilters() {
	s.apply(func() { s.filters.ClearAllFilters() })
}
