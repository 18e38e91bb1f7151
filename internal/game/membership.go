package game

import (
	"context"
	"errors"

	"bleff/internal/db"

	"gorm.io/gorm"
)

// CreateGame creates a game in the given language, makes the creator its first
// player and seeds the default per-game conditions.
func (s *Service) CreateGame(ctx context.Context, creatorID uint, languageTag string) (*db.Game, error) {
	var game *db.Game
	var events []Event
	err := s.transact(ctx, func(tx *gorm.DB) error {
		creator, err := getUser(tx, creatorID)
		if err != nil {
			return err
		}
		var language db.Language
		if err := tx.Where("tag = ?", languageTag).First(&language).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLanguageNotFound
			}
			return err
		}
		if err := ensureNotPlayingElsewhere(tx, creator.ID, 0); err != nil {
			return err
		}
		game = &db.Game{IdiomTag: language.Tag, CreatorID: &creator.ID}
		if err := tx.Create(game).Error; err != nil {
			return err
		}
		play := db.Play{GameID: game.ID, UserID: creator.ID}
		if err := tx.Create(&play).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicateMembership
			}
			return err
		}
		if err := seedConditions(tx, game.ID); err != nil {
			return err
		}
		events = append(events, Event{
			Type:   EventPlayerJoined,
			GameID: game.ID,
			Payload: EventPayload{
				GameID:   game.ID,
				Username: creator.Username,
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(events)
	return game, nil
}

// Join adds a user to a game.
func (s *Service) Join(ctx context.Context, gameID, userID uint) (*db.Play, error) {
	var play *db.Play
	var events []Event
	err := s.transact(ctx, func(tx *gorm.DB) error {
		game, err := getGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.FinishedAt != nil {
			return ErrGameFinished
		}
		user, err := getUser(tx, userID)
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&db.Play{}).Where("game_id = ? AND user_id = ?", gameID, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateMembership
		}
		if err := ensureNotPlayingElsewhere(tx, userID, gameID); err != nil {
			return err
		}
		play = &db.Play{GameID: gameID, UserID: userID}
		if err := tx.Create(play).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicateMembership
			}
			return err
		}
		events = append(events, Event{
			Type:   EventPlayerJoined,
			GameID: gameID,
			Payload: EventPayload{
				GameID:   gameID,
				Username: user.Username,
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(events)
	return play, nil
}

// ensureNotPlayingElsewhere rejects users holding a play in another
// unfinished game.
func ensureNotPlayingElsewhere(tx *gorm.DB, userID, gameID uint) error {
	var count int64
	query := tx.Model(&db.Play{}).
		Joins("JOIN games ON games.id = plays.game_id").
		Where("plays.user_id = ? AND games.finished_at IS NULL", userID)
	if gameID != 0 {
		query = query.Where("games.id <> ?", gameID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyPlayingElsewhere
	}
	return nil
}

// PlayersOf lists the players of a game in join order.
func (s *Service) PlayersOf(ctx context.Context, gameID uint) ([]db.User, error) {
	var users []db.User
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if _, err := getGame(tx, gameID); err != nil {
			return err
		}
		return playersOf(tx, gameID, &users)
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func playersOf(tx *gorm.DB, gameID uint, dest *[]db.User) error {
	return tx.Model(&db.User{}).
		Joins("JOIN plays ON plays.user_id = users.id").
		Where("plays.game_id = ?", gameID).
		Order("plays.created_at, plays.id").
		Find(dest).Error
}

// IsMember reports whether the user holds a play in the game.
func (s *Service) IsMember(ctx context.Context, gameID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&db.Play{}).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Count(&count).Error
	return count > 0, err
}

// StartGame creates the first hand. Starting an already started game just
// resolves to its open hand. Only the creator may start a game that has one.
func (s *Service) StartGame(ctx context.Context, gameID, userID uint) (*db.Hand, error) {
	var started bool
	var hand *db.Hand
	err := s.transact(ctx, func(tx *gorm.DB) error {
		game, err := getGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.FinishedAt != nil {
			return ErrGameFinished
		}
		member, err := isMember(tx, gameID, userID)
		if err != nil {
			return err
		}
		if !member {
			return ErrNotMember
		}
		var handCount int64
		if err := tx.Model(&db.Hand{}).Where("game_id = ?", gameID).Count(&handCount).Error; err != nil {
			return err
		}
		if handCount > 0 {
			open, err := openHand(tx, gameID)
			if err != nil {
				return err
			}
			if open == nil {
				return ErrPhaseViolation
			}
			hand = open
			return nil
		}
		if game.CreatorID != nil && *game.CreatorID != userID {
			return ErrNotCreator
		}
		unmet, err := conditionsMet(tx, gameID)
		if err != nil {
			return err
		}
		if len(unmet) > 0 {
			return ErrConditionsNotMet
		}
		created, err := s.createHand(tx, game)
		if err != nil {
			return err
		}
		hand = created
		started = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if started {
		s.sink.Emit(Event{
			Type:   EventGameStarted,
			GameID: gameID,
			HandID: hand.ID,
			Payload: EventPayload{
				GameID: gameID,
				HandID: hand.ID,
			},
		})
	}
	return hand, nil
}

func isMember(tx *gorm.DB, gameID, userID uint) (bool, error) {
	var count int64
	err := tx.Model(&db.Play{}).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Count(&count).Error
	return count > 0, err
}

// EndGame finishes a game. A game ends once; any open hand is closed with it.
func (s *Service) EndGame(ctx context.Context, gameID uint) (*db.Game, error) {
	var game *db.Game
	var events []Event
	err := s.transact(ctx, func(tx *gorm.DB) error {
		loaded, err := getGame(tx, gameID)
		if err != nil {
			return err
		}
		if loaded.FinishedAt != nil {
			return ErrGameFinished
		}
		open, err := openHand(tx, gameID)
		if err != nil {
			return err
		}
		if open != nil {
			if err := endHand(tx, open); err != nil {
				return err
			}
			events = append(events, Event{
				Type:    EventHandFinished,
				GameID:  gameID,
				HandID:  open.ID,
				Payload: EventPayload{GameID: gameID, HandID: open.ID},
			})
		}
		now := timeNowUTC()
		if now.Before(loaded.CreatedAt) {
			now = loaded.CreatedAt
		}
		result := tx.Model(&db.Game{}).
			Where("id = ? AND finished_at IS NULL", gameID).
			Update("finished_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGameFinished
		}
		loaded.FinishedAt = &now
		game = loaded
		events = append(events, Event{
			Type:    EventGameFinished,
			GameID:  gameID,
			Payload: EventPayload{GameID: gameID},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(events)
	return game, nil
}
