package db

import "time"

type Game struct {
	ID         uint       `gorm:"primaryKey"`
	IdiomTag   string     `gorm:"size:8;not null;index"`
	Idiom      Language   `gorm:"foreignKey:IdiomTag;references:Tag"`
	CreatorID  *uint      `gorm:"index"`
	CreatedAt  time.Time  `gorm:"not null"`
	FinishedAt *time.Time `gorm:"index"`
	Plays      []Play
	Hands      []Hand
	Conditions []Condition
	Events     []Event
}
