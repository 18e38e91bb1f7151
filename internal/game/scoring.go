package game

import (
	"context"

	"bleff/internal/db"

	"gorm.io/gorm"
)

// ComputeScore totals a user's points in a game:
// one per vote fooled by their bluff, the guessing-right multiplier per guess
// the leader marked correct, the clean-leader bonus per led hand where nobody
// found the real definition, and one per vote they landed on it.
// Users who never played the game score zero.
func (s *Service) ComputeScore(ctx context.Context, gameID, userID uint) (int, error) {
	var score int
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if _, err := getGame(tx, gameID); err != nil {
			return err
		}
		member, err := isMember(tx, gameID, userID)
		if err != nil {
			return err
		}
		if !member {
			score = 0
			return nil
		}

		bluffVotes, err := countBluffVotes(tx, gameID, userID)
		if err != nil {
			return err
		}
		score += bluffVotes

		rightGuesses, err := countRightGuesses(tx, gameID, userID)
		if err != nil {
			return err
		}
		rightPoints, err := conditionValue(tx, gameID, TagPointsForGuessingRight)
		if err != nil {
			return err
		}
		score += rightGuesses * rightPoints

		cleanHands, err := countCleanLeaderHands(tx, gameID, userID)
		if err != nil {
			return err
		}
		cleanPoints, err := conditionValue(tx, gameID, TagPointsForCleanLeader)
		if err != nil {
			return err
		}
		score += cleanHands * cleanPoints

		sharpVotes, err := countVotesOnOriginal(tx, gameID, userID)
		if err != nil {
			return err
		}
		score += sharpVotes
		return nil
	})
	if err != nil {
		return 0, err
	}
	return score, nil
}

// countBluffVotes counts votes received on the user's guesses that the leader
// marked incorrect, in hands the user did not lead.
func countBluffVotes(tx *gorm.DB, gameID, userID uint) (int, error) {
	var count int64
	err := tx.Model(&db.Vote{}).
		Joins("JOIN hand_guesses ON hand_guesses.id = votes.hand_guess_id").
		Joins("JOIN guesses ON guesses.id = hand_guesses.guess_id").
		Joins("JOIN hands ON hands.id = votes.hand_id").
		Where("hands.game_id = ?", gameID).
		Where("guesses.writer_id = ? AND guesses.is_original = ?", userID, false).
		Where("hand_guesses.is_correct = ?", false).
		Where("hands.leader_id IS NULL OR hands.leader_id <> ?", userID).
		Count(&count).Error
	return int(count), err
}

// countRightGuesses counts hands where the user's guess was marked correct.
func countRightGuesses(tx *gorm.DB, gameID, userID uint) (int, error) {
	var count int64
	err := tx.Model(&db.HandGuess{}).
		Joins("JOIN guesses ON guesses.id = hand_guesses.guess_id").
		Joins("JOIN hands ON hands.id = hand_guesses.hand_id").
		Where("hands.game_id = ?", gameID).
		Where("guesses.writer_id = ?", userID).
		Where("hand_guesses.is_correct = ?", true).
		Count(&count).Error
	return int(count), err
}

// countCleanLeaderHands counts finished hands the user led where no vote
// landed on the original definition.
func countCleanLeaderHands(tx *gorm.DB, gameID, userID uint) (int, error) {
	var hands []db.Hand
	err := tx.Where("game_id = ? AND leader_id = ? AND finished_at IS NOT NULL", gameID, userID).
		Find(&hands).Error
	if err != nil {
		return 0, err
	}
	clean := 0
	for _, hand := range hands {
		var votes int64
		err := tx.Model(&db.Vote{}).
			Joins("JOIN hand_guesses ON hand_guesses.id = votes.hand_guess_id").
			Joins("JOIN guesses ON guesses.id = hand_guesses.guess_id").
			Where("votes.hand_id = ?", hand.ID).
			Where("guesses.is_original = ?", true).
			Count(&votes).Error
		if err != nil {
			return 0, err
		}
		if votes == 0 {
			clean++
		}
	}
	return clean, nil
}

// countVotesOnOriginal counts the user's votes that landed on the real
// definition.
func countVotesOnOriginal(tx *gorm.DB, gameID, userID uint) (int, error) {
	var count int64
	err := tx.Model(&db.Vote{}).
		Joins("JOIN hand_guesses ON hand_guesses.id = votes.hand_guess_id").
		Joins("JOIN guesses ON guesses.id = hand_guesses.guess_id").
		Joins("JOIN hands ON hands.id = votes.hand_id").
		Where("hands.game_id = ?", gameID).
		Where("votes.user_id = ?", userID).
		Where("guesses.is_original = ?", true).
		Count(&count).Error
	return int(count), err
}
