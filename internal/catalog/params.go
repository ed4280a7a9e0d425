// internal/catalog/params.go
package catalog

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/utils"
)

// ListParams is the raw query string of a product listing. Every field is
// optional.
type ListParams struct {
	MinPrice      string `form:"minPrice"`
	MaxPrice      string `form:"maxPrice"`
	BrandID       string `form:"brandId"`
	CategoryID    string `form:"categoryId"`
	Gender        string `form:"gender"`
	Sizes         string `form:"sizes"`
	Search        string `form:"search"`
	IsActive      string `form:"isActive"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection"`
	Page          string `form:"page"`
	Size          string `form:"size"`
}

// ListQuery is a validated listing plan.
type ListQuery struct {
	Filter Filter
	Sort   Sort
	Page   Page
}

// Parse validates the raw parameters. Malformed numbers, flags, ids and sort
// keys are InvalidArgument errors.
func (p ListParams) Parse(limits PageLimits) (ListQuery, error) {
	var crit Criteria
	var err error

	if crit.MinPrice, err = parsePrice("minPrice", p.MinPrice); err != nil {
		return ListQuery{}, err
	}
	if crit.MaxPrice, err = parsePrice("maxPrice", p.MaxPrice); err != nil {
		return ListQuery{}, err
	}
	if crit.BrandID, err = parseRef("brandId", p.BrandID); err != nil {
		return ListQuery{}, err
	}
	if crit.CategoryID, err = parseRef("categoryId", p.CategoryID); err != nil {
		return ListQuery{}, err
	}
	if crit.IsActive, err = parseFlag("isActive", p.IsActive); err != nil {
		return ListQuery{}, err
	}
	crit.Gender = strings.TrimSpace(p.Gender)
	crit.Size = strings.TrimSpace(p.Sizes)
	crit.Search = strings.TrimSpace(p.Search)

	key, err := ParseSortKey(strings.TrimSpace(p.SortBy))
	if err != nil {
		return ListQuery{}, err
	}

	page, err := ParsePage(p.Page, p.Size, limits)
	if err != nil {
		return ListQuery{}, err
	}

	return ListQuery{
		Filter: BuildFilter(crit),
		Sort:   Sort{Key: key, Direction: ParseDirection(p.SortDirection)},
		Page:   page,
	}, nil
}

// ParsePage parses a 0-based page index and a page size, then normalizes
// them. Empty values take the defaults.
func ParsePage(index, size string, limits PageLimits) (Page, error) {
	i, err := parseInt("page", index)
	if err != nil {
		return Page{}, err
	}
	s, err := parseInt("size", size)
	if err != nil {
		return Page{}, err
	}
	page := NewPage(i, s, limits)
	if i > page.Index {
		return Page{}, utils.InvalidArgument(i18n.KeyProductInvalidNumber, "page")
	}
	return page, nil
}

func parseInt(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.InvalidArgument(i18n.KeyProductInvalidNumber, name)
	}
	return n, nil
}

func parsePrice(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, utils.InvalidArgument(i18n.KeyProductInvalidNumber, name)
	}
	if d.IsNegative() {
		return nil, utils.InvalidArgument(i18n.KeyProductInvalidPrice)
	}
	return &d, nil
}

func parseRef(name, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, utils.InvalidArgument(i18n.KeyProductInvalidRef, name)
	}
	return &id, nil
}

func parseFlag(name, raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, utils.InvalidArgument(i18n.KeyProductInvalidFlag, name)
	}
	return &b, nil
}
