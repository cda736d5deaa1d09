package historybrowser

import "fmt"

// Pagination reports which page controls are usable.
type Pagination struct {
	Prev bool
	Next bool
}

// PaginationFor enables Prev past the first row and Next while rows remain.
func PaginationFor(offset, limit, total int) Pagination {
	return Pagination{
		Prev: offset > 0,
		Next: offset+limit < total,
	}
}

// Summary renders the "showing A–B of T" line for n rows received at offset.
func Summary(offset, n, total int) string {
	if total == 0 {
		return "no results"
	}
	from := min(offset+1, total)
	to := min(offset+n, total)
	return fmt.Sprintf("showing %d–%d of %d", from, to, total)
}
