package model

import "time"

// User — серверная модель пользователя.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хеш

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
