package criteria

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
)

func fields(list []clients.SortCriterion) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Field
	}
	return out
}

func newSortStore(t *testing.T, storage Storage) *SortStore {
	t.Helper()
	s := LoadSortStore(context.Background(), storage, nil)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func TestSortStoreAddIgnoresDuplicateField(t *testing.T) {
	s := newSortStore(t, NewMemoryStorage())
	s.Add(clients.FieldName, "")
	s.Add(clients.FieldCreatedAt, clients.Desc)
	s.Add(clients.FieldName, clients.Desc)

	got := s.Criteria()
	require.Equal(t, []clients.SortCriterion{
		{ID: "id-1", Field: clients.FieldName, Direction: clients.Asc},
		{ID: "id-2", Field: clients.FieldCreatedAt, Direction: clients.Desc},
	}, got)
	require.Equal(t, uint64(2), s.Revision())
}

func TestSortStoreRemoveAndUpdate(t *testing.T) {
	s := newSortStore(t, NewMemoryStorage())
	s.Add(clients.FieldName, clients.Asc)
	s.Add(clients.FieldID, clients.Asc)

	s.UpdateDirection("id-2", clients.Desc)
	require.Equal(t, clients.Desc, s.Criteria()[1].Direction)

	s.UpdateDirection("id-2", "sideways")
	require.Equal(t, clients.Desc, s.Criteria()[1].Direction)

	rev := s.Revision()
	s.Remove("missing")
	require.Equal(t, rev, s.Revision())

	s.Remove("id-1")
	require.Equal(t, []string{clients.FieldID}, fields(s.Criteria()))
}

func TestSortStoreReorder(t *testing.T) {
	s := newSortStore(t, NewMemoryStorage())
	for _, f := range []string{"name", "id", "createdAt", "updatedAt"} {
		s.Add(f, clients.Asc)
	}

	s.Reorder(0, 2)
	require.Equal(t, []string{"id", "createdAt", "name", "updatedAt"}, fields(s.Criteria()))

	s.Reorder(3, 0)
	require.Equal(t, []string{"updatedAt", "id", "createdAt", "name"}, fields(s.Criteria()))

	before := s.Criteria()
	s.Reorder(-1, 2)
	s.Reorder(1, 4)
	s.Reorder(9, 0)
	require.Equal(t, before, s.Criteria())
}

func TestSortStoreClearAll(t *testing.T) {
	s := newSortStore(t, NewMemoryStorage())
	s.Add(clients.FieldName, clients.Asc)
	s.ClearAll()
	require.Empty(t, s.Criteria())
}

func TestSortStoreCriteriaIsACopy(t *testing.T) {
	s := newSortStore(t, NewMemoryStorage())
	s.Add(clients.FieldName, clients.Asc)
	got := s.Criteria()
	got[0].Field = "mutated"
	require.Equal(t, clients.FieldName, s.Criteria()[0].Field)
}

func TestSortStorePersistsAndRehydrates(t *testing.T) {
	storage := NewMemoryStorage()
	s := newSortStore(t, storage)
	s.Add(clients.FieldUpdatedAt, clients.Desc)
	s.Add(clients.FieldName, clients.Asc)

	raw, ok, err := storage.Get(context.Background(), SortStorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"state":{"sortCriteria":[
		{"id":"id-1","field":"updatedAt","direction":"desc"},
		{"id":"id-2","field":"name","direction":"asc"}]},"version":0}`, string(raw))

	again := LoadSortStore(context.Background(), storage, nil)
	require.Equal(t, s.Criteria(), again.Criteria())
}

func TestFilterStoreToggles(t *testing.T) {
	s := LoadFilterStore(context.Background(), NewMemoryStorage(), nil)
	s.ToggleStatus(clients.FacetActive)
	s.ToggleType(clients.FacetCompany)
	s.ToggleType(clients.FacetIndividual)
	s.ToggleType(clients.FacetIndividual)
	s.ToggleStatus("archived")

	require.Equal(t, clients.FilterState{
		Status: clients.StatusFilter{Active: true},
		Type:   clients.TypeFilter{Company: true},
	}, s.State())
	require.Equal(t, 2, s.ActiveFilterCount())
	require.Equal(t, uint64(4), s.Revision())
}

func TestFilterStoreClearKeepsSearch(t *testing.T) {
	s := LoadFilterStore(context.Background(), NewMemoryStorage(), nil)
	s.ToggleStatus(clients.FacetInactive)
	s.SetSearchTerm("acme")
	require.Equal(t, 1, s.ActiveFilterCount())

	s.ClearAllFilters()
	require.Equal(t, clients.FilterState{SearchTerm: "acme"}, s.State())
	require.Zero(t, s.ActiveFilterCount())
}

func TestFilterStorePersistsAndRehydrates(t *testing.T) {
	storage := NewMemoryStorage()
	s := LoadFilterStore(context.Background(), storage, nil)
	s.ToggleStatus(clients.FacetActive)
	s.ToggleType(clients.FacetIndividual)
	s.SetSearchTerm("Bravo")

	again := LoadFilterStore(context.Background(), storage, nil)
	require.Equal(t, s.State(), again.State())
}

func TestFilterStateRoundTrip(t *testing.T) {
	want := clients.FilterState{
		Status:     clients.StatusFilter{Inactive: true},
		Type:       clients.TypeFilter{Individual: true, Company: true},
		SearchTerm: "x",
	}
	data, err := encodeState(want)
	require.NoError(t, err)
	got, err := decodeState[clients.FilterState](data)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCorruptStateFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, SortStorageKey, []byte("{not json")))
	require.NoError(t, storage.Set(ctx, FilterStorageKey, []byte(`{"state":{"status":"yes"}}`)))

	require.Empty(t, LoadSortStore(ctx, storage, nil).Criteria())
	require.Equal(t, clients.FilterState{}, LoadFilterStore(ctx, storage, nil).State())
}

func TestLoadDropsIncompleteCriteria(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	state := sortState{SortCriteria: []clients.SortCriterion{
		{ID: "a", Field: "name", Direction: "desc"},
		{ID: "", Field: "id"},
		{ID: "c", Field: "createdAt", Direction: "weird"},
	}}
	data, err := json.Marshal(envelope[sortState]{State: state})
	require.NoError(t, err)
	require.NoError(t, storage.Set(ctx, SortStorageKey, data))

	got := LoadSortStore(ctx, storage, nil).Criteria()
	require.Equal(t, []clients.SortCriterion{
		{ID: "a", Field: "name", Direction: clients.Desc},
		{ID: "c", Field: "createdAt", Direction: clients.Asc},
	}, got)
}

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}
func (failingStorage) Set(context.Context, string, []byte) error { return errors.New("disk gone") }
func (failingStorage) Delete(context.Context, string) error     { return errors.New("disk gone") }

func TestStorageErrorsAreSilent(t *testing.T) {
	s := newSortStore(t, failingStorage{})
	s.Add(clients.FieldName, clients.Asc)
	require.Len(t, s.Criteria(), 1)

	f := LoadFilterStore(context.Background(), failingStorage{}, nil)
	f.ToggleType(clients.FacetCompany)
	require.Equal(t, 1, f.ActiveFilterCount())
}

func TestSubscribe(t *testing.T) {
	s := LoadFilterStore(context.Background(), nil, nil)
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })
	s.SetSearchTerm("a")
	s.SetSearchTerm("a")
	require.Equal(t, 1, calls)

	unsubscribe()
	s.SetSearchTerm("b")
	require.Equal(t, 1, calls)
}
