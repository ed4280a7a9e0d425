// internal/models/taxonomy.go
package models

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null"`
	Slug        string `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}

type Brand struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null"`
	Slug        string `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Logo        string `json:"logo" gorm:"size:1024"`
	Description string `json:"description" gorm:"type:text"`
}
