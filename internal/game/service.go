package game

import (
	"context"
	"errors"
	"time"

	"bleff/internal/db"

	"gorm.io/gorm"
)

// Service implements the game rules on top of a relational store. Every
// operation re-reads state and validates inside the same transaction as its
// write; nothing is cached between requests.
type Service struct {
	db             *gorm.DB
	choicesPerHand int
	sink           EventSink
}

func New(conn *gorm.DB, choicesPerHand int, sink EventSink) *Service {
	if choicesPerHand <= 0 {
		choicesPerHand = 3
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Service{
		db:             conn,
		choicesPerHand: choicesPerHand,
		sink:           sink,
	}
}

func (s *Service) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func getGame(tx *gorm.DB, gameID uint) (*db.Game, error) {
	var game db.Game
	if err := tx.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

func getHand(tx *gorm.DB, handID uint) (*db.Hand, error) {
	var hand db.Hand
	if err := tx.First(&hand, handID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHandNotFound
		}
		return nil, err
	}
	return &hand, nil
}

func getUser(tx *gorm.DB, userID uint) (*db.User, error) {
	var user db.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// openHand returns the game's unfinished hand, if any.
func openHand(tx *gorm.DB, gameID uint) (*db.Hand, error) {
	var hand db.Hand
	err := tx.Where("game_id = ? AND finished_at IS NULL", gameID).First(&hand).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hand, nil
}

// CurrentHand returns the unfinished hand of a game.
func (s *Service) CurrentHand(ctx context.Context, gameID uint) (*db.Hand, error) {
	var hand *db.Hand
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if _, err := getGame(tx, gameID); err != nil {
			return err
		}
		open, err := openHand(tx, gameID)
		if err != nil {
			return err
		}
		if open == nil {
			return ErrHandNotFound
		}
		hand = open
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hand, nil
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
