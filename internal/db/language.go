package db

import "time"

type Language struct {
	Tag       string    `gorm:"primaryKey;size:8"`
	Name      string    `gorm:"size:20;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	Meanings  []Meaning `gorm:"foreignKey:LanguageTag"`
}
