// internal/catalog/variants.go
package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fashionfactory/store-backend/internal/models"
)

// Variant is one size/color combination of a product.
type Variant struct {
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Available bool            `json:"available"`
	Price     decimal.Decimal `json:"price"`
}

type VariantSet struct {
	ProductID    uuid.UUID       `json:"productId"`
	Name         string          `json:"name"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	IsSale       bool            `json:"isSale"`
	Sizes        []string        `json:"sizes"`
	Colors       []string        `json:"colors"`
	Stock        int             `json:"stock"`
	Combinations []Variant       `json:"variants"`
}

// ExpandVariants builds the sizes x colors grid. Stock is tracked per product,
// so every combination shares the same availability and effective price.
func ExpandVariants(p *models.Product) VariantSet {
	set := VariantSet{
		ProductID:    p.ID,
		Name:         p.Name,
		BasePrice:    p.Price,
		SalePrice:    p.SalePrice,
		IsSale:       p.IsSale,
		Sizes:        append([]string{}, p.Sizes...),
		Colors:       append([]string{}, p.Colors...),
		Stock:        p.Stock,
		Combinations: make([]Variant, 0, len(p.Sizes)*len(p.Colors)),
	}

	available := p.Stock > 0
	price := p.EffectivePrice()
	for _, size := range p.Sizes {
		for _, color := range p.Colors {
			set.Combinations = append(set.Combinations, Variant{
				Size:      size,
				Color:     color,
				Available: available,
				Price:     price,
			})
		}
	}
	return set
}
