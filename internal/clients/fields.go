package clients

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// FieldKind describes how a field's values compare.
type FieldKind int

const (
	KindText FieldKind = iota
	KindTime
)

// Field describes one client field the sort engine can order by.
type Field struct {
	Key   string
	Label string
	Kind  FieldKind
	// Offered marks fields shown by the "add sort" affordance.
	Offered bool
	value   func(Client) any
}

// Field keys. They match the persisted criterion format.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldType      = "type"
	FieldEmail     = "email"
	FieldStatus    = "status"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
	FieldUpdatedBy = "updatedBy"
)

var fields = []Field{
	{Key: FieldName, Label: "Client Name", Kind: KindText, Offered: true, value: func(c Client) any { return c.Name }},
	{Key: FieldID, Label: "Client ID", Kind: KindText, Offered: true, value: func(c Client) any { return c.ID }},
	{Key: FieldCreatedAt, Label: "Created At", Kind: KindTime, Offered: true, value: func(c Client) any { return c.CreatedAt }},
	{Key: FieldUpdatedAt, Label: "Updated At", Kind: KindTime, Offered: true, value: func(c Client) any { return c.UpdatedAt }},
	{Key: FieldType, Label: "Client Type", Kind: KindText, value: func(c Client) any { return string(c.Type) }},
	{Key: FieldEmail, Label: "Email", Kind: KindText, value: func(c Client) any { return c.Email }},
	{Key: FieldStatus, Label: "Status", Kind: KindText, value: func(c Client) any { return string(c.Status) }},
	{Key: FieldUpdatedBy, Label: "Updated By", Kind: KindText, value: func(c Client) any { return c.UpdatedBy }},
}

// Fields returns every sortable field.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// OfferedFields returns the fields the "add sort" affordance lists, skipping
// any key already present in used.
func OfferedFields(used []SortCriterion) []Field {
	inUse := make(map[string]bool, len(used))
	for _, c := range used {
		inUse[c.Field] = true
	}
	var out []Field
	for _, f := range fields {
		if f.Offered && !inUse[f.Key] {
			out = append(out, f)
		}
	}
	return out
}

// LookupField returns the field for key.
func LookupField(key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// SuggestField returns the sortable key closest to key by edit distance.
// ok is false when nothing is reasonably close.
func SuggestField(key string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(key))
	if needle == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, f := range fields {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(f.Key))
		if bestDist < 0 || d < bestDist {
			best, bestDist = f.Key, d
		}
	}
	if bestDist > len(needle)/2+1 {
		return "", false
	}
	return best, true
}

// DirectionLabel returns the affordance label for d on field f.
func (f Field) DirectionLabel(d Direction) string {
	if f.Kind == KindTime {
		if d == Desc {
			return "Oldest to Newest"
		}
		return "Newest to Oldest"
	}
	if d == Desc {
		return "Z-A"
	}
	return "A-Z"
}

// Value returns the field's value for c.
func (f Field) Value(c Client) any {
	if f.value == nil {
		return nil
	}
	return f.value(c)
}
