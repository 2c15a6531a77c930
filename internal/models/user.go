package models

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:64;uniqueIndex;not null"`
	Email        string    `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:128;not null"`
	AboutMe      string    `gorm:"size:140"`
	LastSeenAt   time.Time
	CreatedAt    time.Time

	Posts []Post `gorm:"foreignKey:UserID"`
}

// AvatarURL returns the gravatar identicon URL for the user's email.
func (u *User) AvatarURL(size int) string {
	hash := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", hash, size)
}
