package db

import "time"

// IsCorrect is tri-state: nil until the leader adjudicates the guess.
type HandGuess struct {
	ID        uint `gorm:"primaryKey"`
	HandID    uint `gorm:"index;not null;uniqueIndex:idx_hand_guesses_hand_guess"`
	GuessID   uint `gorm:"index;not null;uniqueIndex:idx_hand_guesses_hand_guess"`
	Guess     Guess
	IsCorrect *bool
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
