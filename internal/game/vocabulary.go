package game

import (
	"context"
	"errors"
	"strings"

	"bleff/internal/db"

	"gorm.io/gorm"
)

const (
	minWordLength       = 3
	minLanguageName     = 4
	minTranslationChars = 3
	minDefinitionChars  = 10
)

// CreateUser registers a user. Authentication lives outside this system.
func (s *Service) CreateUser(ctx context.Context, username string) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	user := &db.User{Username: username}
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicateUsername
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) CreateLanguage(ctx context.Context, tag, name string) (*db.Language, error) {
	tag = strings.TrimSpace(tag)
	name = strings.TrimSpace(name)
	if tag == "" {
		return nil, ErrLanguageTagRequired
	}
	if len(name) < minLanguageName {
		return nil, ErrLanguageNameTooShort
	}
	language := &db.Language{Tag: tag, Name: name}
	err := s.transact(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.Language{}).Where("tag = ? OR name = ?", tag, name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateLanguage
		}
		if err := tx.Create(language).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicateLanguage
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return language, nil
}

func (s *Service) CreateWord(ctx context.Context, text string) (*db.Word, error) {
	text = strings.TrimSpace(text)
	if len(text) < minWordLength {
		return nil, ErrWordTooShort
	}
	word := &db.Word{Text: text}
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(word).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicateWord
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return word, nil
}

func (s *Service) CreateMeaning(ctx context.Context, wordID uint, languageTag, translation, definition string) (*db.Meaning, error) {
	translation = strings.TrimSpace(translation)
	definition = strings.TrimSpace(definition)
	if len(translation) < minTranslationChars {
		return nil, ErrTranslationTooShort
	}
	if len(definition) < minDefinitionChars {
		return nil, ErrDefinitionTooShort
	}
	meaning := &db.Meaning{
		WordID:      wordID,
		LanguageTag: languageTag,
		Translation: translation,
		Definition:  definition,
	}
	err := s.transact(ctx, func(tx *gorm.DB) error {
		var word db.Word
		if err := tx.First(&word, wordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWordNotFound
			}
			return err
		}
		var language db.Language
		if err := tx.Where("tag = ?", languageTag).First(&language).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLanguageNotFound
			}
			return err
		}
		if err := tx.Create(meaning).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicateMeaning
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return meaning, nil
}

// FindMeaning looks up the meaning of a word in a language.
func (s *Service) FindMeaning(ctx context.Context, wordID uint, languageTag string) (*db.Meaning, error) {
	var meaning db.Meaning
	err := s.db.WithContext(ctx).
		Where("word_id = ? AND language_tag = ?", wordID, languageTag).
		First(&meaning).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeaningNotFound
		}
		return nil, err
	}
	return &meaning, nil
}

// RandomUnplayedWords picks up to limit words, uniformly at random, that carry
// a meaning in the language and are not excluded.
func (s *Service) RandomUnplayedWords(ctx context.Context, languageTag string, excludeWordIDs []uint, limit int) ([]db.Word, error) {
	var words []db.Word
	err := randomPlayableWords(s.db.WithContext(ctx), languageTag, excludeWordIDs, limit, &words)
	return words, err
}

func randomPlayableWords(tx *gorm.DB, languageTag string, excludeWordIDs []uint, limit int, dest *[]db.Word) error {
	if limit <= 0 {
		*dest = nil
		return nil
	}
	query := tx.Model(&db.Word{}).
		Joins("JOIN meanings ON meanings.word_id = words.id").
		Where("meanings.language_tag = ?", languageTag)
	if len(excludeWordIDs) > 0 {
		query = query.Where("words.id NOT IN ?", excludeWordIDs)
	}
	return query.Order("RANDOM()").Limit(limit).Find(dest).Error
}

// playedWordIDs lists the word ids already bound to hands of a game.
func playedWordIDs(tx *gorm.DB, gameID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&db.Hand{}).
		Where("game_id = ? AND word_id IS NOT NULL", gameID).
		Pluck("word_id", &ids).Error
	return ids, err
}
