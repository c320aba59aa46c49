package view

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
	"github.com/sujal12344/client-list-table-ui/internal/criteria"
)

func sampleClients(n int) []clients.Client {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]clients.Client, n)
	for i := range out {
		typ, status := clients.TypeIndividual, clients.StatusActive
		if i%2 == 1 {
			typ = clients.TypeCompany
		}
		if i >= 3 {
			status = clients.StatusInactive
		}
		out[i] = clients.Client{
			ID:        fmt.Sprintf("CL-%02d", i),
			Name:      fmt.Sprintf("Client %02d", n-i),
			Type:      typ,
			Email:     fmt.Sprintf("client%d@example.com", i),
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base.Add(time.Duration(i+1) * time.Hour),
		}
	}
	return out
}

func newSession(t *testing.T, records []clients.Client, opts ...Option) *Session {
	t.Helper()
	ctx := context.Background()
	storage := criteria.NewMemoryStorage()
	s := NewSession(records,
		criteria.LoadSortStore(ctx, storage, nil),
		criteria.LoadFilterStore(ctx, storage, nil),
		opts...)
	t.Cleanup(s.Close)
	return s
}

func pageIDs(p clients.Page) []string {
	out := make([]string, len(p.Records))
	for i, r := range p.Records {
		out[i] = r.ID
	}
	return out
}

func TestPagination(t *testing.T) {
	s := newSession(t, sampleClients(25))
	p := s.View()
	require.Equal(t, 3, p.PageCount)
	require.Len(t, p.Records, 10)
	require.False(t, p.CanPrevious)

	s.PreviousPage()
	require.Equal(t, 0, s.State().PageIndex)

	s.NextPage()
	s.NextPage()
	p = s.View()
	require.Equal(t, 2, p.PageIndex)
	require.Len(t, p.Records, 5)
	require.False(t, p.CanNext)
	require.True(t, p.CanPrevious)

	s.NextPage()
	require.Equal(t, 2, s.State().PageIndex)
}

func TestFilterShrinkResetsPage(t *testing.T) {
	s := newSession(t, sampleClients(25))
	s.GoToPage(2)
	require.Equal(t, 2, s.View().PageIndex)

	s.ToggleStatus(clients.FacetActive)
	p := s.View()
	require.Equal(t, 3, p.Total)
	require.Equal(t, 1, p.PageCount)
	require.Equal(t, 0, p.PageIndex)
	require.Equal(t, 0, s.State().PageIndex)
}

func TestPageKeptWhenStillValid(t *testing.T) {
	s := newSession(t, sampleClients(25))
	s.GoToPage(1)
	s.SetSearch("client")
	require.Equal(t, 1, s.View().PageIndex)
}

func TestSortThenFilterThenPage(t *testing.T) {
	s := newSession(t, sampleClients(25), WithPageSize(5))
	s.AddSort(clients.FieldName, clients.Asc)
	s.SetTab(clients.TabCompany)

	p := s.View()
	require.Equal(t, 12, p.Total)
	require.Equal(t, 3, p.PageCount)
	require.Equal(t, []string{"CL-23", "CL-21", "CL-19", "CL-17", "CL-15"}, pageIDs(p))
}

func TestSearchBypassesTab(t *testing.T) {
	s := newSession(t, sampleClients(5))
	s.SetTab(clients.TabIndividual)
	s.SetSearch("cl-01")
	require.Equal(t, []string{"CL-01"}, pageIDs(s.View()))
}

func TestMemoizedOnInputs(t *testing.T) {
	s := newSession(t, sampleClients(25))
	s.View()
	s.View()
	require.Equal(t, 1, s.computations)

	s.NextPage()
	s.View()
	require.Equal(t, 1, s.computations, "paging reuses the filtered records")

	s.ToggleType(clients.FacetCompany)
	require.Equal(t, 2, s.computations)

	s.Filters().ToggleType(clients.FacetCompany)
	require.Equal(t, 3, s.computations, "direct store mutations invalidate the cache")

	s.SetRecords(sampleClients(4))
	require.Equal(t, 4, s.computations)
	require.Equal(t, 4, s.View().Total)
}

func TestObserversReceivePages(t *testing.T) {
	s := newSession(t, sampleClients(25))
	var totals []int
	unsubscribe := s.Subscribe(func(p clients.Page) { totals = append(totals, p.Total) })

	s.SetTab(clients.TabIndividual)
	s.Sorts().Add(clients.FieldCreatedAt, clients.Desc)
	require.Equal(t, []int{13, 13}, totals)

	unsubscribe()
	s.SetTab(clients.TabAll)
	require.Len(t, totals, 2)
}

func TestIntentsFromObserversAreQueued(t *testing.T) {
	s := newSession(t, sampleClients(25))
	var seen []clients.Tab
	s.Subscribe(func(p clients.Page) {
		seen = append(seen, s.State().Tab)
		require.Equal(t, p, s.View(), "view during publish returns the page being published")
		if s.State().Tab == clients.TabCompany {
			s.SetTab(clients.TabIndividual)
			require.Equal(t, clients.TabCompany, s.State().Tab, "intent must wait for the publish to finish")
		}
	})

	s.SetTab(clients.TabCompany)
	require.Equal(t, []clients.Tab{clients.TabCompany, clients.TabIndividual}, seen)
	require.Equal(t, clients.TabIndividual, s.State().Tab)
}

func TestEmptySession(t *testing.T) {
	s := newSession(t, nil)
	p := s.View()
	require.Equal(t, 1, p.PageCount)
	require.Empty(t, p.Records)
	require.False(t, p.CanNext)
	require.False(t, p.CanPrevious)
}

func TestSetPageSize(t *testing.T) {
	s := newSession(t, sampleClients(25))
	s.SetPageSize(0)
	require.Equal(t, clients.DefaultPageSize, s.State().PageSize)
	s.SetPageSize(25)
	require.Equal(t, 1, s.View().PageCount)
}
