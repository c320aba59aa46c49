package criteria

import (
	"context"
	"log/slog"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
)

// FilterStore holds the facet toggles and the search term.
type FilterStore struct {
	ctx     context.Context
	storage Storage
	logger  *slog.Logger
	state   clients.FilterState
	rev     uint64
	obs     observers
}

// LoadFilterStore rehydrates a FilterStore from storage. Missing or malformed
// state yields the empty selection.
func LoadFilterStore(ctx context.Context, storage Storage, logger *slog.Logger) *FilterStore {
	logger = orDiscard(logger)
	return &FilterStore{
		ctx:     ctx,
		storage: storage,
		logger:  logger,
		state:   loadState[clients.FilterState](ctx, storage, FilterStorageKey, logger),
	}
}

// State returns the current selection.
func (s *FilterStore) State() clients.FilterState { return s.state }

// Revision changes on every mutation.
func (s *FilterStore) Revision() uint64 { return s.rev }

// Subscribe registers fn to run after every mutation.
func (s *FilterStore) Subscribe(fn func()) (unsubscribe func()) { return s.obs.add(fn) }

// ToggleStatus flips one status facet. Unknown facets are ignored.
func (s *FilterStore) ToggleStatus(facet clients.StatusFacet) {
	switch facet {
	case clients.FacetActive:
		s.state.Status.Active = !s.state.Status.Active
	case clients.FacetInactive:
		s.state.Status.Inactive = !s.state.Status.Inactive
	default:
		return
	}
	s.changed()
}

// ToggleType flips one type facet. Unknown facets are ignored.
func (s *FilterStore) ToggleType(facet clients.TypeFacet) {
	switch facet {
	case clients.FacetIndividual:
		s.state.Type.Individual = !s.state.Type.Individual
	case clients.FacetCompany:
		s.state.Type.Company = !s.state.Type.Company
	default:
		return
	}
	s.changed()
}

// SetSearchTerm replaces the search term.
func (s *FilterStore) SetSearchTerm(term string) {
	if s.state.SearchTerm == term {
		return
	}
	s.state.SearchTerm = term
	s.changed()
}

// ClearAllFilters resets every facet. The search term is kept.
func (s *FilterStore) ClearAllFilters() {
	if s.state.Status == (clients.StatusFilter{}) && s.state.Type == (clients.TypeFilter{}) {
		return
	}
	s.state.Status = clients.StatusFilter{}
	s.state.Type = clients.TypeFilter{}
	s.changed()
}

// ActiveFilterCount is the number of facets switched on.
func (s *FilterStore) ActiveFilterCount() int {
	return s.state.ActiveFacets()
}

func (s *FilterStore) changed() {
	s.rev++
	saveState(s.ctx, s.storage, FilterStorageKey, s.state, s.logger)
	s.obs.notify()
}
