package utils

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// PageBounds clamps a limit/offset window to a slice of length n and returns
// the half-open range to cut. A non-positive limit means no upper bound.
func PageBounds(n, limit, offset int) (start, end int) {
	if offset < 0 {
		offset = 0
	}
	if offset >= n {
		return n, n
	}
	end = n
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return offset, end
}
