package model

import (
	"cmp"
	"slices"
	"strings"

	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// Page selects a window of a sorted result set. Page is 1-based.
type Page struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	SortBy   string `json:"sortBy,omitempty"`
	Desc     bool   `json:"desc,omitempty"`
}

// PageSizes returns the page sizes a screen offers
func PageSizes(screen types.Screen) []int {
	if screen == types.ScreenProductionSchedule {
		return []int{12, 24, 48, 96}
	}
	return []int{10, 25, 50, 100}
}

// DefaultPageSize returns the initial page size of a screen
func DefaultPageSize(screen types.Screen) int {
	if screen == types.ScreenProductionSchedule {
		return 24
	}
	return 25
}

// Normalize clamps page to 1 and snaps unsupported sizes to the default
func (p Page) Normalize(screen types.Screen) Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if !slices.Contains(PageSizes(screen), p.PageSize) {
		p.PageSize = DefaultPageSize(screen)
	}
	return p
}

// Record is a result row addressable by column name
type Record interface {
	Field(name string) any
}

// SortRecords sorts rows in place by a column. Unknown columns keep the
// gateway order.
func SortRecords[T Record](rows []T, sortBy string, desc bool) {
	if sortBy == "" || len(rows) == 0 || rows[0].Field(sortBy) == nil {
		return
	}
	slices.SortStableFunc(rows, func(a, b T) int {
		c := compareValues(a.Field(sortBy), b.Field(sortBy))
		if desc {
			return -c
		}
		return c
	})
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
	case float64:
		bv, _ := b.(float64)
		return cmp.Compare(av, bv)
	case int:
		bv, _ := b.(int)
		return cmp.Compare(av, bv)
	case decimal.Decimal:
		bv, _ := b.(decimal.Decimal)
		return av.Cmp(bv)
	default:
		return 0
	}
}

// Paginate returns the rows of the requested page and the total row count.
// A page past the end yields an empty, non-nil slice.
func Paginate[T any](rows []T, p Page) ([]T, int) {
	total := len(rows)
	if p.PageSize <= 0 {
		return rows, total
	}
	if p.Page < 1 {
		p.Page = 1
	}
	// compare page counts first so huge page numbers cannot overflow
	if p.Page-1 > total/p.PageSize {
		return []T{}, total
	}
	start := (p.Page - 1) * p.PageSize
	if start >= total {
		return []T{}, total
	}
	end := min(start+p.PageSize, total)
	return rows[start:end], total
}
