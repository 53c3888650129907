package grid

import (
	"fmt"
	"strings"
)

// Paginate returns the display slice [page*size, page*size+size).
// Out of range pages yield an empty slice.
func Paginate(records []Record, page, size int) []Record {
	if page < 0 || size <= 0 || len(records) == 0 {
		return []Record{}
	}
	// compare before multiplying so huge pages cannot wrap
	if page > (len(records)-1)/size {
		return []Record{}
	}
	start := page * size
	end := start + min(size, len(records)-start)
	return records[start:end]
}

// PageCount is the number of display pages needed for n records
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}

// NoResultsMessage describes an empty result for the active query and filters
func NoResultsMessage(query string, criteria FilterCriteria, columns []Column) string {
	var b strings.Builder
	b.WriteString("No results found for")
	if q := strings.TrimSpace(query); q != "" {
		fmt.Fprintf(&b, " %q", q)
	}
	for _, v := range criteria.Values(columns) {
		fmt.Fprintf(&b, " %q", v)
	}
	return b.String()
}
