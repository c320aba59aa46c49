// Package clients holds the client record and the pure pipeline that shapes a
// record collection into the page a table renders: Sort, Filter, Paginate.
package clients

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Type is the client category.
type Type string

const (
	TypeIndividual Type = "Individual"
	TypeCompany    Type = "Company"
)

// Valid reports whether t is one of the known categories.
func (t Type) Valid() bool {
	return t == TypeIndividual || t == TypeCompany
}

// Status is the client lifecycle status.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Client is a single record in the table. Values are treated as immutable
// once handed to a session.
type Client struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Type      Type      `json:"type" yaml:"type"`
	Email     string    `json:"email" yaml:"email"`
	Status    Status    `json:"status" yaml:"status"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
	UpdatedBy string    `json:"updatedBy" yaml:"updatedBy"`
}

// Validate checks the invariants upstream sources are expected to honour.
func (c Client) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Type, validation.Required, validation.In(TypeIndividual, TypeCompany)),
		validation.Field(&c.Status, validation.Required, validation.In(StatusActive, StatusInactive)),
		validation.Field(&c.CreatedAt, validation.By(func(any) error {
			if !c.UpdatedAt.IsZero() && c.CreatedAt.After(c.UpdatedAt) {
				return errors.New("must not be after updatedAt")
			}
			return nil
		})),
	)
	if err != nil {
		return fmt.Errorf("client %q: %w", c.ID, err)
	}
	return nil
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc"/"desc" (case-insensitive); empty means Asc.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", raw)
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

func (d Direction) sign() int {
	if d == Desc {
		return -1
	}
	return 1
}

// SortCriterion is one (field, direction) instruction. Order within a
// criteria list is tie-break precedence, most significant first.
type SortCriterion struct {
	ID        string    `json:"id"`
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// StatusFilter holds the status facet toggles.
type StatusFilter struct {
	Active   bool `json:"active"`
	Inactive bool `json:"inactive"`
}

// TypeFilter holds the type facet toggles.
type TypeFilter struct {
	Individual bool `json:"individual"`
	Company    bool `json:"company"`
}

// FilterState is the user's filter selection.
type FilterState struct {
	Status     StatusFilter `json:"status"`
	Type       TypeFilter   `json:"type"`
	SearchTerm string       `json:"searchTerm"`
}

// StatusFacet names one status toggle.
type StatusFacet string

const (
	FacetActive   StatusFacet = "active"
	FacetInactive StatusFacet = "inactive"
)

// TypeFacet names one type toggle.
type TypeFacet string

const (
	FacetIndividual TypeFacet = "individual"
	FacetCompany    TypeFacet = "company"
)

// Tab is the coarse category selector above the table.
type Tab string

const (
	TabAll        Tab = "all"
	TabIndividual Tab = "individual"
	TabCompany    Tab = "company"
)

// ParseTab parses a tab selector; empty means TabAll.
func ParseTab(raw string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TabAll:
		return TabAll, nil
	case TabIndividual:
		return TabIndividual, nil
	case TabCompany:
		return TabCompany, nil
	}
	return "", fmt.Errorf("unknown tab %q", raw)
}
