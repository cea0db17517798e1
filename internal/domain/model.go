package domain

// RowsPerPageOptions are the page sizes the UI offers. Values outside this
// list are clamped to the nearest allowed option.
var RowsPerPageOptions = []int{5, 10, 25, 50}

// DefaultRowsPerPage is the page size used when none is chosen.
const DefaultRowsPerPage = 10

// ListQuery holds the committed query state for one list fetch: page number,
// page size, the debounced search term, and any discrete filter values.
type ListQuery struct {
	Page        int
	RowsPerPage int
	Search      string
	Filters     map[string]string
}

// NewListQuery returns a query positioned at page 1 with the default page size.
func NewListQuery() ListQuery {
	return ListQuery{
		Page:        1,
		RowsPerPage: DefaultRowsPerPage,
		Filters:     map[string]string{},
	}
}

// Clone returns a deep copy. Queries are passed by value but share the filter
// map, so anything that stores a query across goroutines must clone it.
func (q ListQuery) Clone() ListQuery {
	c := q
	c.Filters = make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		c.Filters[k] = v
	}
	return c
}

// Equal reports whether two queries would produce the same request.
func (q ListQuery) Equal(other ListQuery) bool {
	if q.Page != other.Page || q.RowsPerPage != other.RowsPerPage || q.Search != other.Search {
		return false
	}
	if len(q.Filters) != len(other.Filters) {
		return false
	}
	for k, v := range q.Filters {
		if other.Filters[k] != v {
			return false
		}
	}
	return true
}

// ClampRowsPerPage returns the allowed page size nearest to n.
func ClampRowsPerPage(n int) int {
	best := RowsPerPageOptions[0]
	for _, opt := range RowsPerPageOptions {
		if abs(n-opt) < abs(n-best) {
			best = opt
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// PageResult is one page of a remote collection plus its pagination metadata,
// mirroring the backend list envelope: From/To are the 1-indexed inclusive
// range of Rows within Total; both are 0 when the page is empty.
type PageResult[T any] struct {
	Rows        []T
	CurrentPage int
	LastPage    int
	Total       int
	From        int
	To          int
}

// NotificationKind classifies a transient status message.
type NotificationKind string

// Notification kinds.
const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
	NotifyInfo    NotificationKind = "info"
)
