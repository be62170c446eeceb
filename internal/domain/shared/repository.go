package shared

// Filter narrows and orders a list query. OrderBy names a column; each
// repository checks it against its own sortable set before use. Filters
// holds exact-match conditions keyed by column.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter is the first page of 20, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Offset returns the row offset of the requested page
func (f Filter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Where adds an exact-match condition and returns the filter
func (f Filter) Where(column string, value interface{}) Filter {
	conditions := make(map[string]interface{}, len(f.Filters)+1)
	for k, v := range f.Filters {
		conditions[k] = v
	}
	conditions[column] = value
	f.Filters = conditions
	return f
}
