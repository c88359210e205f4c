package ports

const (
	DefaultPageLimit = 25
	MaxPageLimit     = 100
)

// ListQuery carries the paging and sorting parameters of a list endpoint.
// Sort is a comma separated list of fields, "-" prefixed for descending order.
type ListQuery struct {
	Page  int
	Limit int
	Sort  string
}

// Normalize clamps the page and limit into their valid ranges.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

// Skip is the number of documents before the requested page.
func (q ListQuery) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

// PageRef points at a neighbouring page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination links to the previous and next pages when they exist.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Page is one page of a list result.
type Page[T any] struct {
	Items []T
	Total int64
	Query ListQuery
}

// Pagination derives the neighbouring page references.
func (p *Page[T]) Pagination() Pagination {
	var out Pagination
	end := int64(p.Query.Page * p.Query.Limit)
	if end < p.Total {
		out.Next = &PageRef{Page: p.Query.Page + 1, Limit: p.Query.Limit}
	}
	if p.Query.Page > 1 {
		out.Prev = &PageRef{Page: p.Query.Page - 1, Limit: p.Query.Limit}
	}
	return out
}
