package db

import "time"

// A Hand is one round of a game. The partial unique index keeping a single
// unfinished hand per game lives in db/migrations; GORM tags cannot express it.
type Hand struct {
	ID         uint  `gorm:"primaryKey"`
	GameID     uint  `gorm:"index;not null;uniqueIndex:idx_hands_game_word"`
	LeaderID   *uint `gorm:"index"`
	WordID     *uint `gorm:"index;uniqueIndex:idx_hands_game_word"`
	Word       *Word
	CreatedAt  time.Time  `gorm:"not null"`
	FinishedAt *time.Time `gorm:"index"`
	Choices    []Choice
	Guesses    []Guess
}
