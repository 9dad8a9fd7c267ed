package listview

// PageResult is one visible slice of a filtered result set.
type PageResult[T any] struct {
	Rows       []T
	Page       int // clamped, always in [1, TotalPages]
	TotalPages int
	TotalCount int
}

// Paginate slices filtered rows into fixed-size pages. A requested page
// past the end (typically after a filter shrank the result set) clamps
// down to the last page instead of producing an empty view or an error.
// An empty result set still yields one page with no rows.
func Paginate[T any](rows []T, page, pageSize int) PageResult[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	count := len(rows)

	totalPages := (count + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * pageSize
	end := offset + pageSize
	if offset > count {
		offset = count
	}
	if end > count {
		end = count
	}

	return PageResult[T]{
		Rows:       rows[offset:end],
		Page:       page,
		TotalPages: totalPages,
		TotalCount: count,
	}
}
