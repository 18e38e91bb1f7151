package db

import "time"

type ConditionTag struct {
	Name      string    `gorm:"primaryKey;size:64"`
	Min       int       `gorm:"not null"`
	Max       int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Condition struct {
	ID        uint         `gorm:"primaryKey"`
	GameID    uint         `gorm:"index;not null;uniqueIndex:idx_conditions_game_tag"`
	TagName   string       `gorm:"size:64;not null;uniqueIndex:idx_conditions_game_tag"`
	Tag       ConditionTag `gorm:"foreignKey:TagName"`
	Value     int          `gorm:"not null"`
	CreatedAt time.Time    `gorm:"not null"`
	UpdatedAt time.Time    `gorm:"not null"`
}
