package db

import "time"

type Meaning struct {
	ID          uint      `gorm:"primaryKey"`
	WordID      uint      `gorm:"index;not null;uniqueIndex:idx_meanings_word_language"`
	LanguageTag string    `gorm:"size:8;not null;uniqueIndex:idx_meanings_word_language"`
	Translation string    `gorm:"size:40;not null"`
	Definition  string    `gorm:"size:280;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}
