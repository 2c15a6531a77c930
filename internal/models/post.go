package models

import "time"

const MaxPostBodyLen = 140

type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Body      string    `gorm:"size:140;not null"`
	CreatedAt time.Time `gorm:"index"`
	UserID    uint      `gorm:"index;not null"`

	User User `gorm:"foreignKey:UserID"`
}
