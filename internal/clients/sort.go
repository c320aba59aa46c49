package clients

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders clients by a list of criteria using locale-aware collation
// for text fields. The zero value collates with English rules.
type Sorter struct {
	Locale language.Tag
}

// NewSorter returns a Sorter collating text for tag.
func NewSorter(tag language.Tag) Sorter {
	return Sorter{Locale: tag}
}

var defaultSorter = NewSorter(language.English)

// Sort returns a new slice of records ordered by criteria. See Sorter.Sort.
func Sort(records []Client, criteria []SortCriterion) []Client {
	return defaultSorter.Sort(records, criteria)
}

type sortKey struct {
	field Field
	sign  int
}

// Sort returns a new slice of records ordered by criteria. The input is never
// modified. With no criteria the copy keeps the original order. Records that
// tie on every criterion keep their relative order. Unknown fields, and every
// occurrence of a field after its first, contribute no ordering.
func (s Sorter) Sort(records []Client, criteria []SortCriterion) []Client {
	out := slices.Clone(records)
	if out == nil {
		out = []Client{}
	}
	keys := sortKeys(criteria)
	if len(keys) == 0 {
		return out
	}

	tag := s.Locale
	if tag == language.Und {
		tag = language.English
	}
	// A Collator keeps internal buffers, so each call gets its own.
	col := collate.New(tag)

	slices.SortStableFunc(out, func(a, b Client) int {
		for _, k := range keys {
			if c := compareValues(col, k.field.Value(a), k.field.Value(b)); c != 0 {
				return c * k.sign
			}
		}
		return 0
	})
	return out
}

func sortKeys(criteria []SortCriterion) []sortKey {
	seen := make(map[string]bool, len(criteria))
	keys := make([]sortKey, 0, len(criteria))
	for _, c := range criteria {
		if seen[c.Field] {
			continue
		}
		seen[c.Field] = true
		f, ok := LookupField(c.Field)
		if !ok {
			continue
		}
		keys = append(keys, sortKey{field: f, sign: c.Direction.sign()})
	}
	return keys
}

// compareValues orders two field values. Values of differing or unsupported
// kinds compare equal.
func compareValues(col *collate.Collator, a, b any) int {
	switch va := a.(type) {
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Compare(vb)
		}
	case string:
		if vb, ok := b.(string); ok {
			return col.CompareString(va, vb)
		}
	case int:
		if vb, ok := b.(int); ok {
			return cmp.Compare(va, vb)
		}
	case int64:
		if vb, ok := b.(int64); ok {
			return cmp.Compare(va, vb)
		}
	case float64:
		if vb, ok := b.(float64); ok {
			return cmp.Compare(va, vb)
		}
	}
	return 0
}
