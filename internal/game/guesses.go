package game

import (
	"context"
	"errors"
	"strings"

	"bleff/internal/db"

	"gorm.io/gorm"
)

// seedOriginalGuess creates the system guess carrying the real definition,
// together with its adjudication row. Exactly one per hand, writer unset.
func seedOriginalGuess(tx *gorm.DB, hand *db.Hand, definition string) error {
	guess := db.Guess{
		HandID:     hand.ID,
		WriterID:   nil,
		Content:    definition,
		IsOriginal: true,
	}
	if err := tx.Create(&guess).Error; err != nil {
		return err
	}
	handGuess := db.HandGuess{HandID: hand.ID, GuessID: guess.ID}
	return tx.Create(&handGuess).Error
}

// SubmitGuess records a player's fake (or real) definition for the hand's
// word and opens its adjudication row.
func (s *Service) SubmitGuess(ctx context.Context, handID, writerID uint, content string) (*db.Guess, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentTooShort
	}
	var guess *db.Guess
	var events []Event
	err := s.transact(ctx, func(tx *gorm.DB) error {
		hand, err := getHand(tx, handID)
		if err != nil {
			return err
		}
		if hand.FinishedAt != nil {
			return ErrHandClosed
		}
		writer, err := getUser(tx, writerID)
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&db.Guess{}).Where("hand_id = ? AND writer_id = ?", handID, writerID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateWriter
		}
		guess = &db.Guess{
			HandID:   handID,
			WriterID: &writer.ID,
			Content:  content,
		}
		if err := tx.Create(guess).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicateWriter
			}
			return err
		}
		handGuess := db.HandGuess{HandID: handID, GuessID: guess.ID}
		if err := tx.Create(&handGuess).Error; err != nil {
			return err
		}
		events = append(events, Event{
			Type:   EventNewGuess,
			GameID: hand.GameID,
			HandID: handID,
			Payload: EventPayload{
				GameID:   hand.GameID,
				HandID:   handID,
				Username: writer.Username,
			},
		})
		ready, err := guessesReady(tx, hand)
		if err != nil {
			return err
		}
		if ready {
			events = append(events, Event{
				Type:    EventGuessesReady,
				GameID:  hand.GameID,
				HandID:  handID,
				Payload: EventPayload{GameID: hand.GameID, HandID: handID},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(events)
	return guess, nil
}

// GuessesReady reports whether every player except the leader has submitted a
// guess for the hand.
func (s *Service) GuessesReady(ctx context.Context, handID uint) (bool, error) {
	var ready bool
	err := s.transact(ctx, func(tx *gorm.DB) error {
		hand, err := getHand(tx, handID)
		if err != nil {
			return err
		}
		result, err := guessesReady(tx, hand)
		if err != nil {
			return err
		}
		ready = result
		return nil
	})
	if err != nil {
		return false, err
	}
	return ready, nil
}

// guessesReady reports whether every player except the leader has submitted.
func guessesReady(tx *gorm.DB, hand *db.Hand) (bool, error) {
	var players int64
	if err := tx.Model(&db.Play{}).Where("game_id = ?", hand.GameID).Count(&players).Error; err != nil {
		return false, err
	}
	var written int64
	if err := tx.Model(&db.Guess{}).Where("hand_id = ? AND writer_id IS NOT NULL", hand.ID).Count(&written).Error; err != nil {
		return false, err
	}
	return written >= players-1 && players > 1, nil
}

// AdjudicateGuess records the leader's verdict on a guess. A verdict is
// written once; the system-seeded guess is never adjudicated.
func (s *Service) AdjudicateGuess(ctx context.Context, handGuessID uint, verdict bool) (*db.HandGuess, error) {
	var handGuess *db.HandGuess
	err := s.transact(ctx, func(tx *gorm.DB) error {
		var loaded db.HandGuess
		err := tx.Preload("Guess").First(&loaded, handGuessID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHandGuessNotFound
		}
		if err != nil {
			return err
		}
		if loaded.Guess.IsOriginal || loaded.Guess.WriterID == nil {
			return ErrProtectedGuess
		}
		hand, err := getHand(tx, loaded.HandID)
		if err != nil {
			return err
		}
		if hand.FinishedAt != nil {
			return ErrHandClosed
		}
		if loaded.IsCorrect != nil {
			return ErrAlreadyAdjudicated
		}
		result := tx.Model(&db.HandGuess{}).
			Where("id = ? AND is_correct IS NULL", handGuessID).
			Update("is_correct", verdict)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyAdjudicated
		}
		loaded.IsCorrect = &verdict
		handGuess = &loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return handGuess, nil
}

// HandGuesses lists the adjudication rows of a hand with their guesses.
func (s *Service) HandGuesses(ctx context.Context, handID uint) ([]db.HandGuess, error) {
	var handGuesses []db.HandGuess
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if _, err := getHand(tx, handID); err != nil {
			return err
		}
		return tx.Preload("Guess").Where("hand_id = ?", handID).Order("id").Find(&handGuesses).Error
	})
	if err != nil {
		return nil, err
	}
	return handGuesses, nil
}
