// Package catalog builds product listing plans: a conjunctive filter, a sort
// key and a page window. Every clause renders both a SQL fragment for the
// database store and an in-memory predicate for the memory store, and the two
// must agree.
package catalog

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

// Clause is one conjunct of a product filter.
type Clause interface {
	// SQL returns a WHERE fragment over the products table and its bind args.
	SQL() (string, []interface{})
	// Match evaluates the clause against a single product.
	Match(p *models.Product) bool
}

// Filter is the logical AND of its clauses. The zero Filter matches everything.
type Filter struct {
	clauses []Clause
}

func NewFilter(clauses ...Clause) Filter {
	return Filter{}.And(clauses...)
}

// And returns a new filter with the given clauses appended. Nil clauses are
// skipped.
func (f Filter) And(clauses ...Clause) Filter {
	out := make([]Clause, 0, len(f.clauses)+len(clauses))
	out = append(out, f.clauses...)
	for _, c := range clauses {
		if c != nil {
			out = append(out, c)
		}
	}
	return Filter{clauses: out}
}

func (f Filter) Clauses() []Clause {
	return f.clauses
}

func (f Filter) Empty() bool {
	return len(f.clauses) == 0
}

func (f Filter) Match(p *models.Product) bool {
	for _, c := range f.clauses {
		if !c.Match(p) {
			return false
		}
	}
	return true
}

// SQL joins every clause with AND. An empty filter renders as "TRUE".
func (f Filter) SQL() (string, []interface{}) {
	if f.Empty() {
		return "TRUE", nil
	}
	parts := make([]string, 0, len(f.clauses))
	var args []interface{}
	for _, c := range f.clauses {
		sql, a := c.SQL()
		parts = append(parts, "("+sql+")")
		args = append(args, a...)
	}
	return strings.Join(parts, " AND "), args
}

// Criteria is the typed form of the listing filter parameters. Nil fields and
// empty strings contribute no clause.
type Criteria struct {
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	BrandID    *uuid.UUID
	CategoryID *uuid.UUID
	Gender     string
	Size       string
	Search     string
	IsActive   *bool
}

// BuildFilter turns criteria into a filter, one clause per supplied field.
func BuildFilter(c Criteria) Filter {
	var clauses []Clause
	if c.MinPrice != nil || c.MaxPrice != nil {
		clauses = append(clauses, PriceRange(c.MinPrice, c.MaxPrice))
	}
	if c.BrandID != nil {
		clauses = append(clauses, BrandIs(*c.BrandID))
	}
	if c.CategoryID != nil {
		clauses = append(clauses, CategoryIs(*c.CategoryID))
	}
	if c.Gender != "" {
		clauses = append(clauses, GenderIs(c.Gender))
	}
	if c.Size != "" {
		clauses = append(clauses, HasSize(c.Size))
	}
	if c.IsActive != nil {
		clauses = append(clauses, ActiveIs(*c.IsActive))
	}
	if c.Search != "" {
		clauses = append(clauses, TextContains(c.Search))
	}
	return NewFilter(clauses...)
}

// priceRange filters on effective price. A product is either meaningfully on
// sale (sale flag set and sale price > 0), in which case the sale price is
// bounded, or it is not (no sale flag, or a sale flag with a zero sale price),
// in which case the list price is bounded.
type priceRange struct {
	min *decimal.Decimal
	max *decimal.Decimal
}

// PriceRange bounds effective price. Either bound may be nil.
func PriceRange(min, max *decimal.Decimal) Clause {
	return priceRange{min: min, max: max}
}

func (c priceRange) bounds(column string) (string, []interface{}) {
	var sql strings.Builder
	var args []interface{}
	if c.min != nil {
		sql.WriteString(" AND " + column + " >= ?")
		args = append(args, *c.min)
	}
	if c.max != nil {
		sql.WriteString(" AND " + column + " <= ?")
		args = append(args, *c.max)
	}
	return sql.String(), args
}

func (c priceRange) SQL() (string, []interface{}) {
	saleBounds, saleArgs := c.bounds("sale_price")
	listBounds, listArgs := c.bounds("price")
	sql := "(is_sale = TRUE AND sale_price > 0" + saleBounds + ")" +
		" OR ((is_sale = FALSE OR (is_sale = TRUE AND sale_price = 0))" + listBounds + ")"
	return sql, append(saleArgs, listArgs...)
}

func (c priceRange) within(v decimal.Decimal) bool {
	if c.min != nil && v.LessThan(*c.min) {
		return false
	}
	if c.max != nil && v.GreaterThan(*c.max) {
		return false
	}
	return true
}

func (c priceRange) Match(p *models.Product) bool {
	switch {
	case p.IsSale && p.SalePrice.IsPositive():
		return c.within(p.SalePrice)
	case !p.IsSale || p.SalePrice.IsZero():
		return c.within(p.Price)
	default:
		return false
	}
}

type brandIs uuid.UUID

func BrandIs(id uuid.UUID) Clause { return brandIs(id) }

func (c brandIs) SQL() (string, []interface{}) {
	return "brand_id = ?", []interface{}{uuid.UUID(c)}
}

func (c brandIs) Match(p *models.Product) bool { return p.BrandID == uuid.UUID(c) }

type categoryIs uuid.UUID

func CategoryIs(id uuid.UUID) Clause { return categoryIs(id) }

func (c categoryIs) SQL() (string, []interface{}) {
	return "category_id = ?", []interface{}{uuid.UUID(c)}
}

func (c categoryIs) Match(p *models.Product) bool { return p.CategoryID == uuid.UUID(c) }

type genderIs string

// GenderIs is a plain equality filter; the value is not checked against the
// gender enum.
func GenderIs(g string) Clause { return genderIs(g) }

func (c genderIs) SQL() (string, []interface{}) {
	return "gender = ?", []interface{}{string(c)}
}

func (c genderIs) Match(p *models.Product) bool { return string(p.Gender) == string(c) }

type hasSize string

func HasSize(size string) Clause { return hasSize(size) }

func (c hasSize) SQL() (string, []interface{}) {
	return "? = ANY(sizes)", []interface{}{string(c)}
}

func (c hasSize) Match(p *models.Product) bool { return slices.Contains(p.Sizes, string(c)) }

type activeIs bool

func ActiveIs(active bool) Clause { return activeIs(active) }

func (c activeIs) SQL() (string, []interface{}) {
	return "is_active = ?", []interface{}{bool(c)}
}

func (c activeIs) Match(p *models.Product) bool { return p.IsActive == bool(c) }

type textContains string

// TextContains is a case-insensitive literal substring match on name or
// description.
func TextContains(keyword string) Clause { return textContains(keyword) }

func (c textContains) SQL() (string, []interface{}) {
	pattern := utils.ContainsPattern(string(c))
	return `name ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\'`, []interface{}{pattern, pattern}
}

func (c textContains) Match(p *models.Product) bool {
	needle := strings.ToLower(string(c))
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

type discountable struct{}

// Discountable keeps products with a real discount: on sale, a positive sale
// price and a positive list price, so the percentage is always defined.
func Discountable() Clause { return discountable{} }

func (discountable) SQL() (string, []interface{}) {
	return "is_sale = TRUE AND sale_price > 0 AND price > 0", nil
}

func (discountable) Match(p *models.Product) bool {
	return p.IsSale && p.SalePrice.IsPositive() && p.Price.IsPositive()
}
