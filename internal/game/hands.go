package game

import (
	"context"
	"errors"

	"bleff/internal/db"

	"gorm.io/gorm"
)

// CreateHand opens the next round of a game: it assigns a leader by rotation
// and seeds the word choices. Fails while another hand is open or once the
// game finished.
func (s *Service) CreateHand(ctx context.Context, gameID uint) (*db.Hand, error) {
	var hand *db.Hand
	err := s.transact(ctx, func(tx *gorm.DB) error {
		game, err := getGame(tx, gameID)
		if err != nil {
			return err
		}
		created, err := s.createHand(tx, game)
		if err != nil {
			return err
		}
		hand = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hand, nil
}

func (s *Service) createHand(tx *gorm.DB, game *db.Game) (*db.Hand, error) {
	if game.FinishedAt != nil {
		return nil, ErrPhaseViolation
	}
	open, err := openHand(tx, game.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrPhaseViolation
	}

	var players []db.User
	if err := playersOf(tx, game.ID, &players); err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, ErrNotMember
	}
	recent, err := recentLeaders(tx, game.ID, len(players)-1)
	if err != nil {
		return nil, err
	}
	leader := assignLeader(players, recent)

	hand := &db.Hand{GameID: game.ID, LeaderID: &leader.ID}
	if err := tx.Create(hand).Error; err != nil {
		if db.IsUniqueViolation(err) {
			// Lost the race on the one-open-hand index.
			return nil, ErrPhaseViolation
		}
		return nil, err
	}
	if err := s.seedChoices(tx, game, hand); err != nil {
		return nil, err
	}
	return hand, nil
}

// recentLeaders returns the leaders of the last window hands, most recent
// first.
func recentLeaders(tx *gorm.DB, gameID uint, window int) ([]uint, error) {
	if window <= 0 {
		return nil, nil
	}
	var ids []uint
	err := tx.Model(&db.Hand{}).
		Where("game_id = ? AND leader_id IS NOT NULL", gameID).
		Order("created_at DESC, id DESC").
		Limit(window).
		Pluck("leader_id", &ids).Error
	return ids, err
}

// assignLeader picks the first player, in join order, not found among the
// recent leaders. With a single player that player always leads.
func assignLeader(players []db.User, recentLeaders []uint) db.User {
	if len(players) == 1 {
		return players[0]
	}
	recent := make(map[uint]struct{}, len(recentLeaders))
	for _, id := range recentLeaders {
		recent[id] = struct{}{}
	}
	for _, player := range players {
		if _, led := recent[player.ID]; !led {
			return player
		}
	}
	return players[0]
}

// seedChoices offers up to choicesPerHand random words that have a meaning in
// the game's language and were never played in this game. Fewer candidates
// than the quota means fewer choices, possibly none.
func (s *Service) seedChoices(tx *gorm.DB, game *db.Game, hand *db.Hand) error {
	played, err := playedWordIDs(tx, game.ID)
	if err != nil {
		return err
	}
	var words []db.Word
	if err := randomPlayableWords(tx, game.IdiomTag, played, s.choicesPerHand, &words); err != nil {
		return err
	}
	for _, word := range words {
		choice := db.Choice{HandID: hand.ID, WordID: word.ID}
		if err := tx.Create(&choice).Error; err != nil {
			if db.IsUniqueViolation(err) {
				continue
			}
			return err
		}
	}
	return nil
}

// Choices lists the words offered to the hand's leader.
func (s *Service) Choices(ctx context.Context, handID uint) ([]db.Choice, error) {
	var choices []db.Choice
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if _, err := getHand(tx, handID); err != nil {
			return err
		}
		return tx.Preload("Word").Where("hand_id = ?", handID).Order("id").Find(&choices).Error
	})
	if err != nil {
		return nil, err
	}
	return choices, nil
}

// SetHandLeader reassigns the hand's leader. The leader must play the hand's
// game.
func (s *Service) SetHandLeader(ctx context.Context, handID, leaderID uint) (*db.Hand, error) {
	var hand *db.Hand
	err := s.transact(ctx, func(tx *gorm.DB) error {
		loaded, err := getHand(tx, handID)
		if err != nil {
			return err
		}
		if loaded.FinishedAt != nil {
			return ErrAlreadyEnded
		}
		member, err := isMember(tx, loaded.GameID, leaderID)
		if err != nil {
			return err
		}
		if !member {
			return ErrInvalidLeader
		}
		if err := tx.Model(&db.Hand{}).Where("id = ?", handID).Update("leader_id", leaderID).Error; err != nil {
			return err
		}
		loaded.LeaderID = &leaderID
		hand = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hand, nil
}

// ChooseWord binds the hand to one of its offered words and seeds the
// original guess from the word's meaning. Reapplying the word already chosen
// is a no-op; choosing a different one fails.
func (s *Service) ChooseWord(ctx context.Context, handID, wordID uint) (*db.Hand, error) {
	var hand *db.Hand
	var events []Event
	err := s.transact(ctx, func(tx *gorm.DB) error {
		loaded, err := getHand(tx, handID)
		if err != nil {
			return err
		}
		if loaded.FinishedAt != nil {
			return ErrHandClosed
		}
		if loaded.WordID != nil {
			if *loaded.WordID == wordID {
				hand = loaded
				return nil
			}
			return ErrWordAlreadySet
		}
		var choice db.Choice
		err = tx.Where("hand_id = ? AND word_id = ?", handID, wordID).First(&choice).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSuchChoice
		}
		if err != nil {
			return err
		}
		game, err := getGame(tx, loaded.GameID)
		if err != nil {
			return err
		}
		var meaning db.Meaning
		err = tx.Where("word_id = ? AND language_tag = ?", wordID, game.IdiomTag).First(&meaning).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeaningNotFound
		}
		if err != nil {
			return err
		}

		result := tx.Model(&db.Hand{}).
			Where("id = ? AND word_id IS NULL", handID).
			Update("word_id", wordID)
		if result.Error != nil {
			if db.IsUniqueViolation(result.Error) {
				// (word, game) unique across hands: the word slipped into
				// another hand since the choices were seeded.
				return ErrNoSuchChoice
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrWordAlreadySet
		}
		loaded.WordID = &wordID

		if err := seedOriginalGuess(tx, loaded, meaning.Definition); err != nil {
			return err
		}
		hand = loaded

		var word db.Word
		if err := tx.First(&word, wordID).Error; err != nil {
			return err
		}
		events = append(events, Event{
			Type:   EventWordChosen,
			GameID: loaded.GameID,
			HandID: loaded.ID,
			Payload: EventPayload{
				GameID: loaded.GameID,
				HandID: loaded.ID,
				Word:   word.Text,
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(events)
	return hand, nil
}

// EndHand closes a hand. The finish time never precedes the creation time.
func (s *Service) EndHand(ctx context.Context, handID uint) (*db.Hand, error) {
	var hand *db.Hand
	var events []Event
	err := s.transact(ctx, func(tx *gorm.DB) error {
		loaded, err := getHand(tx, handID)
		if err != nil {
			return err
		}
		if err := endHand(tx, loaded); err != nil {
			return err
		}
		hand = loaded
		events = append(events, Event{
			Type:    EventHandFinished,
			GameID:  loaded.GameID,
			HandID:  loaded.ID,
			Payload: EventPayload{GameID: loaded.GameID, HandID: loaded.ID},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(events)
	return hand, nil
}

func endHand(tx *gorm.DB, hand *db.Hand) error {
	if hand.FinishedAt != nil {
		return ErrAlreadyEnded
	}
	now := timeNowUTC()
	if now.Before(hand.CreatedAt) {
		now = hand.CreatedAt
	}
	result := tx.Model(&db.Hand{}).
		Where("id = ? AND finished_at IS NULL", hand.ID).
		Update("finished_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyEnded
	}
	hand.FinishedAt = &now
	return nil
}
