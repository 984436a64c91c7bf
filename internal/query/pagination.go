package query

import (
	"strconv"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize applies to outward-facing list endpoints.
	DefaultPageSize = 20
	// LookupPageSize applies to internal existence lookups.
	LookupPageSize = 100
)

// Page is a 1-based pagination window.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps non-positive page numbers and sizes to their defaults.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

// ParsePage reads page/pageSize request strings, falling back to page 1
// and the default page size on absent or malformed values.
func ParsePage(page, pageSize string) Page {
	n, _ := strconv.Atoi(page)
	s, _ := strconv.Atoi(pageSize)
	return NewPage(n, s)
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// Result is the uniform {data, pagination} envelope.
type Result[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// counted carries a row together with the window-scoped total that the
// store computes alongside it.
type counted[T any] struct {
	Row   T     `gorm:"embedded"`
	Total int64 `gorm:"column:total_count"`
}

// NewResult wraps a data window into the envelope. The total reflects the
// whole filtered set, not the window; totalPages guards a zero page size
// so it can never divide by zero.
func NewResult[T any](data []T, total int64, p Page) Result[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if total > 0 {
		if p.Size > 0 {
			pages = int((total + int64(p.Size) - 1) / int64(p.Size))
		} else {
			pages = 1
		}
	}
	return Result[T]{
		Data: data,
		Pagination: Pagination{
			Total:      total,
			Page:       p.Number,
			PageSize:   p.Size,
			TotalPages: pages,
		},
	}
}

// SelectPage runs one filtered, ordered, windowed select. The total row
// count for the filter is fetched in the same round-trip via
// COUNT(*) OVER(), deduplicated to one scalar. A page past the end of the
// set returns empty data, never an error; only in that case is a count
// issued to report the true total of the filtered set.
func SelectPage[T any](db *gorm.DB, f Filter, orderBy string, p Page) (Result[T], error) {
	var model T
	tx := Apply(db.Model(&model), f)
	count := Apply(db.Model(&model), f)
	return ScanPage[T](tx, count, "*", orderBy, p)
}

// ScanPage windows an already-built query, typically one with joins that
// SelectPage's model inference cannot express. tx and count must be
// independently built clauses over the same row set; selectCols names the
// columns scanned into T.
func ScanPage[T any](tx, count *gorm.DB, selectCols, orderBy string, p Page) (Result[T], error) {
	var rows []counted[T]
	err := tx.Select(selectCols + ", COUNT(*) OVER() AS total_count").
		Order(orderBy).Limit(p.Size).Offset(p.Offset()).Find(&rows).Error
	if err != nil {
		return Result[T]{}, err
	}
	var total int64
	data := make([]T, 0, len(rows))
	for _, r := range rows {
		data = append(data, r.Row)
	}
	if len(rows) > 0 {
		total = rows[0].Total
	} else {
		// Window beyond the last row: the filtered set may still be
		// non-empty, so count it to report the true total.
		if err := count.Count(&total).Error; err != nil {
			return Result[T]{}, err
		}
	}
	return NewResult(data, total, p), nil
}
