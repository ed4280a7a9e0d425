// internal/models/common.go
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned by every store when a lookup by id, email or
// token finds nothing.
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateKey is returned by Create when a unique column already holds the
// value, such as a second account for one email.
var ErrDuplicateKey = errors.New("duplicate key")

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type Gender string

const (
	GenderMen      Gender = "Men"
	GenderWomen    Gender = "Women"
	GenderUnisex   Gender = "Unisex"
	GenderChildren Gender = "Children"
)

// Genders lists the accepted gender values in display order.
var Genders = []Gender{GenderMen, GenderWomen, GenderUnisex, GenderChildren}

func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
