package db

import "time"

// WriterID is null only for the system-seeded original guess of a hand.
type Guess struct {
	ID         uint      `gorm:"primaryKey"`
	HandID     uint      `gorm:"index;not null;uniqueIndex:idx_guesses_hand_writer"`
	WriterID   *uint     `gorm:"index;uniqueIndex:idx_guesses_hand_writer"`
	Content    string    `gorm:"size:280;not null"`
	IsOriginal bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"not null"`
}
