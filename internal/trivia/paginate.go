package trivia

import "strconv"

// ParsePage reads a 1-based page number. Absent, non-numeric and non-positive
// values yield page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate returns items[(page-1)*size : page*size] clipped to bounds. A page past
// the end yields an empty, non-nil slice.
func Paginate[T any](page, size int, items []T) []T {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if page-1 > len(items)/size {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
