// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name          string          `json:"name" gorm:"size:255;not null"`
	Slug          string          `json:"slug" gorm:"size:255;index"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	SalePrice     decimal.Decimal `json:"salePrice" gorm:"type:decimal(12,2);not null;default:0"`
	IsSale        bool            `json:"isSale" gorm:"not null;default:false"`
	CategoryID    uuid.UUID       `json:"categoryId" gorm:"type:uuid;not null;index"`
	BrandID       uuid.UUID       `json:"brandId" gorm:"type:uuid;not null;index"`
	Gender        Gender          `json:"gender" gorm:"type:varchar(20);index"`
	Sizes         pq.StringArray  `json:"sizes" gorm:"type:text[]"`
	Colors        pq.StringArray  `json:"colors" gorm:"type:text[]"`
	ProductImages pq.StringArray  `json:"productImages" gorm:"type:text[]"`
	Stock         int             `json:"stock" gorm:"not null;default:0"`
	SoldCount     int64           `json:"soldCount" gorm:"not null;default:0"`
	IsActive      bool            `json:"isActive" gorm:"not null;default:true;index"`
}

// OnSale reports whether a sale price actually overrides the list price.
// A sale flag with a zero sale price does not.
func (p *Product) OnSale() bool {
	return p.IsSale && p.SalePrice.IsPositive()
}

// EffectivePrice is the price actually charged. It is derived, never stored.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.OnSale() {
		return p.SalePrice
	}
	return p.Price
}
