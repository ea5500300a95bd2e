package domain

type Suggestion struct {
	Term string
	Type string
}

// A SearchPage addresses one page of a search. Pages are 1-based.
type SearchPage struct {
	Term string
	Page int
}

// Offset returns the index of the first item of the page.
func (p SearchPage) Offset(itemsPerPage int) int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * itemsPerPage
}

// CanRequestMore reports whether another page may hold items, given the last
// fetched page and the total amount of items. A zero page means nothing has
// been fetched yet.
func CanRequestMore(page, total, itemsPerPage int) bool {
	if page == 0 {
		return true
	}
	return page*itemsPerPage < total
}
