package db

import "time"

type Word struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"size:40;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	Meanings  []Meaning
}
