package db

import "time"

type Play struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_plays_game_user"`
	UserID    uint      `gorm:"index;not null;uniqueIndex:idx_plays_game_user"`
	User      User
	CreatedAt time.Time `gorm:"not null"`
}
