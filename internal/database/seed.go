// internal/database/seed.go
package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

// Sample is the starter catalog written by the seed command and loaded into
// the memory store in development.
type Sample struct {
	Categories []models.Category
	Brands     []models.Brand
	Products   []models.Product
}

func category(name, description string) models.Category {
	return models.Category{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		Name:        name,
		Slug:        utils.Slugify(name),
		Description: description,
	}
}

func brand(name, logo string) models.Brand {
	return models.Brand{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      name,
		Slug:      utils.Slugify(name),
		Logo:      logo,
	}
}

type sampleProduct struct {
	name      string
	price     int64
	salePrice int64
	gender    models.Gender
	sizes     []string
	colors    []string
	stock     int
	sold      int64
}

func SampleCatalog() Sample {
	shirts := category("Áo thun", "T-shirts and tops")
	jeans := category("Quần jean", "Denim")
	shoes := category("Giày", "Footwear")

	local := brand("Fashion Factory", "https://cdn.fashionfactory.vn/brands/ff.png")
	denim := brand("Saigon Denim", "https://cdn.fashionfactory.vn/brands/sgd.png")

	build := func(items []sampleProduct, cat models.Category, b models.Brand, start time.Time) []models.Product {
		out := make([]models.Product, 0, len(items))
		for i, it := range items {
			created := start.Add(time.Duration(i) * time.Hour)
			out = append(out, models.Product{
				BaseModel:  models.BaseModel{ID: uuid.New(), CreatedAt: created, UpdatedAt: created},
				Name:       it.name,
				Slug:       utils.Slugify(it.name),
				Price:      decimal.NewFromInt(it.price),
				SalePrice:  decimal.NewFromInt(it.salePrice),
				IsSale:     it.salePrice > 0,
				CategoryID: cat.ID,
				BrandID:    b.ID,
				Gender:     it.gender,
				Sizes:      it.sizes,
				Colors:     it.colors,
				Stock:      it.stock,
				SoldCount:  it.sold,
				IsActive:   true,
			})
		}
		return out
	}

	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	var products []models.Product
	products = append(products, build([]sampleProduct{
		{"Áo thun basic trắng", 199000, 0, models.GenderUnisex, []string{"S", "M", "L"}, []string{"Trắng"}, 120, 340},
		{"Áo thun oversize đen", 249000, 199000, models.GenderMen, []string{"M", "L", "XL"}, []string{"Đen", "Xám"}, 45, 210},
		{"Áo croptop", 179000, 0, models.GenderWomen, []string{"S", "M"}, []string{"Hồng", "Trắng"}, 0, 95},
	}, shirts, local, start)...)
	products = append(products, build([]sampleProduct{
		{"Quần jean slim fit", 459000, 399000, models.GenderMen, []string{"29", "30", "31", "32"}, []string{"Xanh đậm"}, 60, 150},
		{"Quần jean ống rộng", 499000, 0, models.GenderWomen, []string{"26", "27", "28"}, []string{"Xanh nhạt"}, 30, 80},
	}, jeans, denim, start.Add(24*time.Hour))...)
	products = append(products, build([]sampleProduct{
		{"Giày sneaker trẻ em", 350000, 280000, models.GenderChildren, []string{"30", "31", "32"}, []string{"Trắng", "Xanh"}, 25, 40},
	}, shoes, local, start.Add(48*time.Hour))...)

	return Sample{
		Categories: []models.Category{shirts, jeans, shoes},
		Brands:     []models.Brand{local, denim},
		Products:   products,
	}
}
