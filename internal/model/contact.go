package model

import "time"

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName  string    `gorm:"not null" json:"fullName"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
