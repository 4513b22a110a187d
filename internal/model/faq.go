package model

import "time"

type FAQ struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionEn string    `gorm:"not null" json:"questionEn"`
	QuestionAr string    `gorm:"not null" json:"questionAr"`
	ResponseEn string    `gorm:"not null" json:"responseEn"`
	ResponseAr string    `gorm:"not null" json:"responseAr"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
