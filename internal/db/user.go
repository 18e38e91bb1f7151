package db

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	Plays     []Play
}
