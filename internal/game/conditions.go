package game

import (
	"context"
	"errors"

	"bleff/internal/db"

	"gorm.io/gorm"
)

// Condition tags gating phase transitions and scoring.
const (
	TagMinPlayers             = "MIN_PLAYERS"
	TagMaxPlayers             = "MAX_PLAYERS"
	TagPointsForGuessingRight = "POINTS_FOR_GUESSING_RIGHT"
	TagPointsForCleanLeader   = "POINTS_FOR_CLEAN_LEADER"
)

var defaultTags = []db.ConditionTag{
	{Name: TagMinPlayers, Min: 1, Max: 32},
	{Name: TagMaxPlayers, Min: 2, Max: 32},
	{Name: TagPointsForGuessingRight, Min: 0, Max: 10},
	{Name: TagPointsForCleanLeader, Min: 0, Max: 10},
}

var defaultConditionValues = map[string]int{
	TagMinPlayers:             2,
	TagMaxPlayers:             8,
	TagPointsForGuessingRight: 2,
	TagPointsForCleanLeader:   3,
}

// UnmetCondition names a rule blocking a phase transition.
type UnmetCondition struct {
	Tag      string `json:"tag"`
	Required int    `json:"required"`
	Players  int    `json:"players"`
}

// seedConditions creates the tag catalog rows if missing and attaches the
// default per-game values.
func seedConditions(tx *gorm.DB, gameID uint) error {
	for _, tag := range defaultTags {
		entry := tag
		if err := tx.FirstOrCreate(&entry, db.ConditionTag{Name: tag.Name}).Error; err != nil {
			return err
		}
		condition := db.Condition{
			GameID:  gameID,
			TagName: tag.Name,
			Value:   defaultConditionValues[tag.Name],
		}
		if err := tx.Create(&condition).Error; err != nil {
			if db.IsUniqueViolation(err) {
				continue
			}
			return err
		}
	}
	return nil
}

// SetCondition updates a per-game rule value. Values outside the tag bounds
// are rejected, as are changes once the game has started.
func (s *Service) SetCondition(ctx context.Context, gameID uint, tagName string, value int) (*db.Condition, error) {
	var condition *db.Condition
	err := s.transact(ctx, func(tx *gorm.DB) error {
		game, err := getGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.FinishedAt != nil {
			return ErrGameFinished
		}
		var handCount int64
		if err := tx.Model(&db.Hand{}).Where("game_id = ?", gameID).Count(&handCount).Error; err != nil {
			return err
		}
		if handCount > 0 {
			return ErrPhaseViolation
		}
		var tag db.ConditionTag
		if err := tx.Where("name = ?", tagName).First(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownConditionTag
			}
			return err
		}
		if value < tag.Min || value > tag.Max {
			return ErrConditionOutOfBounds
		}
		var existing db.Condition
		err = tx.Where("game_id = ? AND tag_name = ?", gameID, tagName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			existing = db.Condition{GameID: gameID, TagName: tagName, Value: value}
			if err := tx.Create(&existing).Error; err != nil {
				return err
			}
			condition = &existing
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&existing).Update("value", value).Error; err != nil {
			return err
		}
		existing.Value = value
		condition = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return condition, nil
}

// Conditions lists the per-game rule values.
func (s *Service) Conditions(ctx context.Context, gameID uint) ([]db.Condition, error) {
	var conditions []db.Condition
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if _, err := getGame(tx, gameID); err != nil {
			return err
		}
		return tx.Where("game_id = ?", gameID).Order("tag_name").Find(&conditions).Error
	})
	if err != nil {
		return nil, err
	}
	return conditions, nil
}

// ConditionsMet returns the conditions currently blocking the game, empty when
// the game may proceed.
func (s *Service) ConditionsMet(ctx context.Context, gameID uint) ([]UnmetCondition, error) {
	var unmet []UnmetCondition
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if _, err := getGame(tx, gameID); err != nil {
			return err
		}
		result, err := conditionsMet(tx, gameID)
		if err != nil {
			return err
		}
		unmet = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unmet, nil
}

func conditionsMet(tx *gorm.DB, gameID uint) ([]UnmetCondition, error) {
	var playerCount int64
	if err := tx.Model(&db.Play{}).Where("game_id = ?", gameID).Count(&playerCount).Error; err != nil {
		return nil, err
	}
	players := int(playerCount)

	var conditions []db.Condition
	if err := tx.Where("game_id = ?", gameID).Find(&conditions).Error; err != nil {
		return nil, err
	}
	var unmet []UnmetCondition
	for _, condition := range conditions {
		switch condition.TagName {
		case TagMinPlayers:
			if players < condition.Value {
				unmet = append(unmet, UnmetCondition{Tag: condition.TagName, Required: condition.Value, Players: players})
			}
		case TagMaxPlayers:
			if players > condition.Value {
				unmet = append(unmet, UnmetCondition{Tag: condition.TagName, Required: condition.Value, Players: players})
			}
		}
	}
	return unmet, nil
}

// conditionValue reads a per-game rule value, falling back to the default.
func conditionValue(tx *gorm.DB, gameID uint, tagName string) (int, error) {
	var condition db.Condition
	err := tx.Where("game_id = ? AND tag_name = ?", gameID, tagName).First(&condition).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultConditionValues[tagName], nil
	}
	if err != nil {
		return 0, err
	}
	return condition.Value, nil
}
