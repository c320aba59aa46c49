package clients

import "strings"

// Filter returns the records that pass the tab, status, type and search
// predicates, in input order.
//
// A non-empty search term decides on its own: the tab and facet selections
// are not consulted. A facet group with neither or both toggles set places no
// constraint.
func Filter(records []Client, tab Tab, state FilterState) []Client {
	out := make([]Client, 0, len(records))
	for _, c := range records {
		if matches(c, tab, state) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c Client, tab Tab, state FilterState) bool {
	if state.SearchTerm != "" {
		return matchesSearch(c, state.SearchTerm)
	}
	if !matchesTab(c, tab) {
		return false
	}
	if !matchesStatus(c, state.Status) {
		return false
	}
	return matchesType(c, state.Type)
}

func matchesTab(c Client, tab Tab) bool {
	switch tab {
	case TabIndividual:
		return c.Type == TypeIndividual
	case TabCompany:
		return c.Type == TypeCompany
	}
	return true
}

func matchesStatus(c Client, f StatusFilter) bool {
	switch {
	case f.Active == f.Inactive:
		return true
	case f.Active:
		return c.Status == StatusActive
	default:
		return c.Status == StatusInactive
	}
}

func matchesType(c Client, f TypeFilter) bool {
	switch {
	case f.Individual == f.Company:
		return true
	case f.Individual:
		return c.Type == TypeIndividual
	default:
		return c.Type == TypeCompany
	}
}

func matchesSearch(c Client, term string) bool {
	q := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Email), q) ||
		strings.Contains(strings.ToLower(string(c.Status)), q) ||
		strings.Contains(strings.ToLower(c.ID), q)
}

// ActiveFacets counts the facet toggles that are on. The search term does not
// count.
func (s FilterState) ActiveFacets() int {
	n := 0
	for _, on := range []bool{s.Status.Active, s.Status.Inactive, s.Type.Individual, s.Type.Company} {
		if on {
			n++
		}
	}
	return n
}
