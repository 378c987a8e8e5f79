package helpers

import (
	"math"
	"net/http"
	"strconv"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*MaxPageSize within an int.
	MaxPage = math.MaxInt / MaxPageSize
)

// PaginationParams is a 1-based page request.
type PaginationParams struct {
	Page     int
	PageSize int
}

// ParsePagination reads page and page_size from the request query string,
// clamps them to valid ranges, and returns PaginationParams.
// Invalid or missing values fall back to defaults.
func ParsePagination(r *http.Request) PaginationParams {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = min(v, MaxPage)
		}
	}
	pageSize := DefaultPageSize
	if s := r.URL.Query().Get("page_size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = v
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}
	return PaginationParams{Page: page, PageSize: pageSize}
}

// Paginate returns the slice of items on the requested page, keeping their order.
// A page past the end yields an empty, non-nil slice.
func Paginate[T any](items []T, p PaginationParams) []T {
	if p.Page < 1 || p.PageSize < 1 {
		return []T{}
	}
	pages := len(items) / p.PageSize
	if len(items)%p.PageSize != 0 {
		pages++
	}
	if p.Page > pages {
		return []T{}
	}
	start := (p.Page - 1) * p.PageSize
	end := min(start+p.PageSize, len(items))
	return items[start:end]
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta from the current page, page size, and total count.
// TotalPages is computed as ceiling(total / pageSize); if pageSize is 0, TotalPages is 0.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
