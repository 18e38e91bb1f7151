package game

import (
	"context"
	"errors"

	"bleff/internal/db"

	"gorm.io/gorm"
)

// CastVote records a player's pick of the definition they believe is real.
// One vote per user per hand. When no votes remain the hand ends on its own.
func (s *Service) CastVote(ctx context.Context, handGuessID, userID uint) (*db.Vote, error) {
	var vote *db.Vote
	var events []Event
	err := s.transact(ctx, func(tx *gorm.DB) error {
		var target db.HandGuess
		err := tx.First(&target, handGuessID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHandGuessNotFound
		}
		if err != nil {
			return err
		}
		hand, err := getHand(tx, target.HandID)
		if err != nil {
			return err
		}
		if hand.FinishedAt != nil {
			return ErrHandClosed
		}
		voter, err := getUser(tx, userID)
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&db.Vote{}).Where("hand_id = ? AND user_id = ?", hand.ID, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateVote
		}
		vote = &db.Vote{
			HandGuessID: handGuessID,
			HandID:      hand.ID,
			UserID:      userID,
		}
		if err := tx.Create(vote).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicateVote
			}
			return err
		}
		events = append(events, Event{
			Type:   EventNewVote,
			GameID: hand.GameID,
			HandID: hand.ID,
			Payload: EventPayload{
				GameID:   hand.GameID,
				HandID:   hand.ID,
				Username: voter.Username,
			},
		})

		remaining, err := votesRemaining(tx, hand)
		if err != nil {
			return err
		}
		if remaining <= 0 {
			if err := endHand(tx, hand); err != nil {
				return err
			}
			events = append(events, Event{
				Type:    EventHandFinished,
				GameID:  hand.GameID,
				HandID:  hand.ID,
				Payload: EventPayload{GameID: hand.GameID, HandID: hand.ID},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(events)
	return vote, nil
}

// VotesRemaining counts the votes still expected in the game's current hand:
// every player but the leader votes once.
func (s *Service) VotesRemaining(ctx context.Context, gameID uint) (int, error) {
	var remaining int
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if _, err := getGame(tx, gameID); err != nil {
			return err
		}
		hand, err := openHand(tx, gameID)
		if err != nil {
			return err
		}
		if hand == nil {
			return ErrHandNotFound
		}
		result, err := votesRemaining(tx, hand)
		if err != nil {
			return err
		}
		remaining = result
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func votesRemaining(tx *gorm.DB, hand *db.Hand) (int, error) {
	var players int64
	if err := tx.Model(&db.Play{}).Where("game_id = ?", hand.GameID).Count(&players).Error; err != nil {
		return 0, err
	}
	var cast int64
	if err := tx.Model(&db.Vote{}).Where("hand_id = ?", hand.ID).Count(&cast).Error; err != nil {
		return 0, err
	}
	remaining := int(players) - 1 - int(cast)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
