package catalog

import "tienda/internal/domain"

// PageCount is ceil(n/size); an empty list still has one (empty) page.
func PageCount(n, size int) int {
	if size <= 0 {
		return 1
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage forces page into [1, PageCount(n, size)].
func ClampPage(page, n, size int) int {
	if page < 1 {
		return 1
	}
	if max := PageCount(n, size); page > max {
		return max
	}
	return page
}

// Paginate slices one fixed-size page out of the filtered list. The page
// number is clamped first, so out-of-range requests return the nearest
// valid page instead of erroring.
func Paginate(list []domain.Product, page, size int) (items []domain.Product, clamped, pages int) {
	pages = PageCount(len(list), size)
	clamped = ClampPage(page, len(list), size)
	start := (clamped - 1) * size
	if start >= len(list) {
		return []domain.Product{}, clamped, pages
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], clamped, pages
}
