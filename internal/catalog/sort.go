// internal/catalog/sort.go
package catalog

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

// SortKey is a field a listing may be ordered by. Only the keys below are
// accepted from clients.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByUpdatedAt SortKey = "updatedAt"
	SortByPrice     SortKey = "price"
	SortBySalePrice SortKey = "salePrice"
	SortByName      SortKey = "name"
	SortByStock     SortKey = "stock"
	SortBySoldCount SortKey = "soldCount"

	// SortByDiscount orders by derived discount percentage. It is used by the
	// top discounted view and is not accepted from clients.
	SortByDiscount SortKey = "discountPercentage"
)

// NameCollation is the Postgres ICU collation created by the migrations:
// Vietnamese, case-insensitive, numeric-aware.
const NameCollation = "vi_natural"

// EffectivePriceSQL mirrors models.Product.EffectivePrice.
const EffectivePriceSQL = "CASE WHEN is_sale = TRUE AND sale_price > 0 THEN sale_price ELSE price END"

// DiscountPercentageSQL mirrors DiscountPercentage. Rows without a real
// discount score zero.
const DiscountPercentageSQL = "CASE WHEN is_sale = TRUE AND sale_price > 0 AND price > 0 THEN ROUND((price - sale_price) / price * 100, 2) ELSE 0 END"

var sortColumns = map[SortKey]string{
	SortByCreatedAt: "created_at",
	SortByUpdatedAt: "updated_at",
	SortByPrice:     EffectivePriceSQL,
	SortBySalePrice: "sale_price",
	SortByName:      `name COLLATE "` + NameCollation + `"`,
	SortByStock:     "stock",
	SortBySoldCount: "sold_count",
	SortByDiscount:  DiscountPercentageSQL,
}

// ParseSortKey accepts the client-facing keys. An empty value selects
// createdAt.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByCreatedAt, nil
	}
	key := SortKey(s)
	if key == SortByDiscount {
		return "", utils.InvalidArgument(i18n.KeyProductInvalidSort, s)
	}
	if _, ok := sortColumns[key]; !ok {
		return "", utils.InvalidArgument(i18n.KeyProductInvalidSort, s)
	}
	return key, nil
}

type Direction int

const (
	Descending Direction = iota
	Ascending
)

// ParseDirection returns Ascending only for "asc"; anything else is
// Descending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "asc") {
		return Ascending
	}
	return Descending
}

func (d Direction) String() string {
	if d == Ascending {
		return "ASC"
	}
	return "DESC"
}

type Sort struct {
	Key       SortKey
	Direction Direction
}

// Newest is the default order: createdAt descending.
var Newest = Sort{Key: SortByCreatedAt, Direction: Descending}

// OrderSQL renders the ORDER BY body. The id tie-breaker keeps pages stable
// when the sort value repeats.
func (s Sort) OrderSQL() string {
	column, ok := sortColumns[s.Key]
	if !ok {
		column = sortColumns[SortByCreatedAt]
	}
	return fmt.Sprintf("%s %s, id ASC", column, s.Direction)
}

// NewNameCollator returns a collator matching the vi_natural database
// collation. Collators are not safe for concurrent use.
func NewNameCollator() *collate.Collator {
	return collate.New(language.Vietnamese, collate.IgnoreCase, collate.Numeric)
}

// Comparator returns a three-way comparison for in-memory ordering with the
// same semantics as OrderSQL. The returned function is not safe for concurrent
// use.
func (s Sort) Comparator() func(a, b *models.Product) int {
	var byKey func(a, b *models.Product) int
	switch s.Key {
	case SortByUpdatedAt:
		byKey = func(a, b *models.Product) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case SortByPrice:
		byKey = func(a, b *models.Product) int { return a.EffectivePrice().Cmp(b.EffectivePrice()) }
	case SortBySalePrice:
		byKey = func(a, b *models.Product) int { return a.SalePrice.Cmp(b.SalePrice) }
	case SortByName:
		col := NewNameCollator()
		byKey = func(a, b *models.Product) int { return col.CompareString(a.Name, b.Name) }
	case SortByStock:
		byKey = func(a, b *models.Product) int { return cmp.Compare(a.Stock, b.Stock) }
	case SortBySoldCount:
		byKey = func(a, b *models.Product) int { return cmp.Compare(a.SoldCount, b.SoldCount) }
	case SortByDiscount:
		byKey = func(a, b *models.Product) int { return DiscountPercentage(a).Cmp(DiscountPercentage(b)) }
	default:
		byKey = func(a, b *models.Product) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}

	return func(a, b *models.Product) int {
		c := byKey(a, b)
		if s.Direction == Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	}
}

var hundred = decimal.NewFromInt(100)

// DiscountPercentage is (price - salePrice) / price * 100 rounded to two
// places, or zero when the product has no real discount.
func DiscountPercentage(p *models.Product) decimal.Decimal {
	if !Discountable().Match(p) {
		return decimal.Zero
	}
	return p.Price.Sub(p.SalePrice).Div(p.Price).Mul(hundred).Round(2)
}
