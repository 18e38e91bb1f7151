package db

import "time"

type Choice struct {
	ID        uint `gorm:"primaryKey"`
	HandID    uint `gorm:"index;not null;uniqueIndex:idx_choices_hand_word"`
	WordID    uint `gorm:"index;not null;uniqueIndex:idx_choices_hand_word"`
	Word      Word
	CreatedAt time.Time `gorm:"not null"`
}
