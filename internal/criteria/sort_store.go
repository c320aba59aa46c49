package criteria

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
)

type sortState struct {
	SortCriteria []clients.SortCriterion `json:"sortCriteria"`
}

// SortStore holds the ordered sort criteria.
type SortStore struct {
	ctx      context.Context
	storage  Storage
	logger   *slog.Logger
	criteria []clients.SortCriterion
	rev      uint64
	obs      observers
	newID    func() string
}

// LoadSortStore rehydrates a SortStore from storage. Missing or malformed
// state yields an empty store.
func LoadSortStore(ctx context.Context, storage Storage, logger *slog.Logger) *SortStore {
	logger = orDiscard(logger)
	state := loadState[sortState](ctx, storage, SortStorageKey, logger)
	return &SortStore{
		ctx:      ctx,
		storage:  storage,
		logger:   logger,
		criteria: sanitizeCriteria(state.SortCriteria),
		newID:    uuid.NewString,
	}
}

func sanitizeCriteria(in []clients.SortCriterion) []clients.SortCriterion {
	out := make([]clients.SortCriterion, 0, len(in))
	for _, c := range in {
		if c.ID == "" || c.Field == "" {
			continue
		}
		if c.Direction != clients.Desc {
			c.Direction = clients.Asc
		}
		out = append(out, c)
	}
	return out
}

// Criteria returns a copy of the current criteria.
func (s *SortStore) Criteria() []clients.SortCriterion {
	return slices.Clone(s.criteria)
}

// Revision changes on every mutation.
func (s *SortStore) Revision() uint64 { return s.rev }

// Subscribe registers fn to run after every mutation.
func (s *SortStore) Subscribe(fn func()) (unsubscribe func()) { return s.obs.add(fn) }

// Has reports whether field already has a criterion.
func (s *SortStore) Has(field string) bool {
	return slices.ContainsFunc(s.criteria, func(c clients.SortCriterion) bool { return c.Field == field })
}

// Add appends a criterion for field with a fresh id. It is ignored when
// field is already present. An empty direction means ascending.
func (s *SortStore) Add(field string, direction clients.Direction) {
	if field == "" || s.Has(field) {
		return
	}
	if direction != clients.Desc {
		direction = clients.Asc
	}
	s.criteria = append(slices.Clone(s.criteria), clients.SortCriterion{ID: s.newID(), Field: field, Direction: direction})
	s.changed()
}

// Remove deletes the criterion with id.
func (s *SortStore) Remove(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.criteria = slices.Delete(slices.Clone(s.criteria), i, i+1)
	s.changed()
}

// UpdateDirection sets the direction of the criterion with id.
func (s *SortStore) UpdateDirection(id string, direction clients.Direction) {
	if direction != clients.Asc && direction != clients.Desc {
		return
	}
	i := s.index(id)
	if i < 0 || s.criteria[i].Direction == direction {
		return
	}
	next := slices.Clone(s.criteria)
	next[i].Direction = direction
	s.criteria = next
	s.changed()
}

// Reorder moves the criterion at from to index to, shifting the others.
// Out-of-range indices leave the list unchanged.
func (s *SortStore) Reorder(from, to int) {
	n := len(s.criteria)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	s.criteria = move(s.criteria, from, to)
	s.changed()
}

// ClearAll removes every criterion.
func (s *SortStore) ClearAll() {
	if len(s.criteria) == 0 {
		return
	}
	s.criteria = []clients.SortCriterion{}
	s.changed()
}

func (s *SortStore) index(id string) int {
	return slices.IndexFunc(s.criteria, func(c clients.SortCriterion) bool { return c.ID == id })
}

func (s *SortStore) changed() {
	s.rev++
	saveState(s.ctx, s.storage, SortStorageKey, sortState{SortCriteria: s.criteria}, s.logger)
	s.obs.notify()
}

// move returns a copy of list with the element at from relocated to to.
func move[T any](list []T, from, to int) []T {
	out := slices.Clone(list)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}
