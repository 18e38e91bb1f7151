package db

import "time"

// HandID is denormalized from the target HandGuess so one-vote-per-hand is a
// database constraint, not just a pre-write check.
type Vote struct {
	ID          uint      `gorm:"primaryKey"`
	HandGuessID uint      `gorm:"index;not null"`
	HandID      uint      `gorm:"index;not null;uniqueIndex:idx_votes_hand_user"`
	UserID      uint      `gorm:"index;not null;uniqueIndex:idx_votes_hand_user"`
	CreatedAt   time.Time `gorm:"not null"`
}
