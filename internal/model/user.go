// Package model defines database models
package model

import "time"

const DefaultRole = "customer"

type User struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `json:"-"` // Empty for accounts created through OAuth
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Role         string  `gorm:"default:customer" json:"role"`
	IsCompany    bool    `gorm:"default:false" json:"isCompany"`
	Provider     *string `json:"provider,omitempty"`

	// Only the last issued refresh token is valid. Rotated on every issuance
	RefreshToken *string `json:"-"`

	// Password reset state. ResetCode and ResetCodeExpiry are set and cleared together
	ResetCode       *string    `json:"-"`
	ResetCodeExpiry *time.Time `json:"-"`
	ResetAttempts   int        `gorm:"default:0" json:"-"`
	OTPValidated    bool       `gorm:"column:otp_validated;default:false" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
