// internal/catalog/page.go
package catalog

import (
	"math"

	"github.com/fashionfactory/store-backend/internal/utils"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageLimits bounds client-supplied page sizes.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

var DefaultPageLimits = PageLimits{DefaultSize: DefaultPageSize, MaxSize: MaxPageSize}

// Page is a 0-based page window.
type Page struct {
	Index int
	Size  int
}

// NewPage normalizes a requested window: a negative index becomes 0, a
// non-positive size becomes the default and an oversized one is clamped.
// The index is capped so that Offset and the 1-based page fit in an int.
func NewPage(index, size int, limits PageLimits) Page {
	if limits.DefaultSize <= 0 {
		limits.DefaultSize = DefaultPageSize
	}
	if limits.MaxSize <= 0 {
		limits.MaxSize = MaxPageSize
	}
	if index < 0 {
		index = 0
	}
	if size <= 0 {
		size = limits.DefaultSize
	}
	if size > limits.MaxSize {
		size = limits.MaxSize
	}
	if maxIndex := MaxPageIndex(size); index > maxIndex {
		index = maxIndex
	}
	return Page{Index: index, Size: size}
}

// MaxPageIndex is the largest index whose window end, (index+1)*size, still
// fits in an int.
func MaxPageIndex(size int) int {
	return math.MaxInt/size - 1
}

func (p Page) Offset() int {
	return p.Index * p.Size
}

// Pagination reports the window 1-based, with totals over the whole filtered
// set.
func (p Page) Pagination(totalItems int64) utils.Pagination {
	return utils.Pagination{
		Page:       p.Index + 1,
		TotalPages: utils.TotalPages(totalItems, p.Size),
		TotalItems: totalItems,
	}
}
