package grid

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SearchTextKey is reserved for the free-text query and never used as a field filter
const SearchTextKey = "searchText"

// FilterCriteria maps a field key to the substring its value must contain
type FilterCriteria map[string]string

// Active returns the non-empty criteria without the free-text key.
// The receiver is left untouched.
func (c FilterCriteria) Active() FilterCriteria {
	out := make(FilterCriteria, len(c))
	for k, v := range c {
		if k == SearchTextKey || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// Values returns the non-empty criterion values ordered by column source
func (c FilterCriteria) Values(columns []Column) []string {
	active := c.Active()
	var out []string
	for _, col := range columns {
		if v, ok := active[col.Source]; ok {
			out = append(out, v)
			delete(active, col.Source)
		}
	}
	for _, v := range active {
		out = append(out, v)
	}
	return out
}

// Apply runs the field filter, the stable sort and the free-text search.
// When query is non-empty the search runs over the field-filtered records
// and the sorted order is discarded.
func Apply(records []Record, cmp Comparator, query string, criteria FilterCriteria) []Record {
	filtered := FilterFields(records, criteria)
	sorted := StableSort(filtered, cmp)
	if query != "" {
		return Search(filtered, query)
	}
	return sorted
}

// FilterFields keeps records whose fields contain every criterion value,
// compared case-folded
func FilterFields(records []Record, criteria FilterCriteria) []Record {
	active := criteria.Active()
	fold := cases.Fold()

	needles := make(map[string]string, len(active))
	for k, v := range active {
		needles[k] = fold.String(v)
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if matchesAll(r, needles, fold) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(r Record, needles map[string]string, fold cases.Caser) bool {
	for field, needle := range needles {
		if !strings.Contains(fold.String(r.Cell(field)), needle) {
			return false
		}
	}
	return true
}

// Search keeps records with any field value, or any element of an array
// value, containing the trimmed lowercased query
func Search(records []Record, query string) []Record {
	lower := cases.Lower(language.Und)
	needle := lower.String(strings.TrimSpace(query))

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if recordContains(r, needle, lower) {
			out = append(out, r)
		}
	}
	return out
}

func recordContains(r Record, needle string, lower cases.Caser) bool {
	for _, v := range r {
		if elems, ok := v.([]any); ok {
			for _, e := range elems {
				if strings.Contains(lower.String(Stringify(e)), needle) {
					return true
				}
			}
			continue
		}
		if strings.Contains(lower.String(Stringify(v)), needle) {
			return true
		}
	}
	return false
}
