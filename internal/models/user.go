// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username             string     `json:"username" gorm:"size:50;not null"`
	Email                string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash         string     `json:"-" gorm:"size:255;not null"`
	Role                 Role       `json:"role" gorm:"type:varchar(10);not null;default:'USER'"`
	Avatar               string     `json:"avatar" gorm:"size:1024"`
	Bio                  string     `json:"bio" gorm:"type:text"`
	Phone                string     `json:"phone" gorm:"size:30"`
	IsLocked             bool       `json:"isLocked" gorm:"not null;default:false"`
	OTPHash              string     `json:"-" gorm:"column:otp_hash;size:64"`
	OTPExpiresAt         *time.Time `json:"-" gorm:"column:otp_expires_at"`
	ResetPasswordToken   string     `json:"-" gorm:"size:64;index"`
	ResetPasswordExpires *time.Time `json:"-"`
	LastLoginAt          *time.Time `json:"lastLoginAt"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
