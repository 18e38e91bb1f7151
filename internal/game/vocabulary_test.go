package game

import (
	"context"
	"errors"
	"testing"
)

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "  "); !errors.Is(err, ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, "alice"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := svc.CreateUser(ctx, "alice"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestCreateLanguageValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateLanguage(ctx, "", "English"); !errors.Is(err, ErrLanguageTagRequired) {
		t.Fatalf("expected ErrLanguageTagRequired, got %v", err)
	}
	if _, err := svc.CreateLanguage(ctx, "en", "en"); !errors.Is(err, ErrLanguageNameTooShort) {
		t.Fatalf("expected ErrLanguageNameTooShort, got %v", err)
	}
	if _, err := svc.CreateLanguage(ctx, "en", "English"); err != nil {
		t.Fatalf("create language: %v", err)
	}
	if _, err := svc.CreateLanguage(ctx, "en", "Anglais"); !errors.Is(err, ErrDuplicateLanguage) {
		t.Fatalf("expected ErrDuplicateLanguage on tag, got %v", err)
	}
	if _, err := svc.CreateLanguage(ctx, "en-GB", "English"); !errors.Is(err, ErrDuplicateLanguage) {
		t.Fatalf("expected ErrDuplicateLanguage on name, got %v", err)
	}
}

func TestCreateWordValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateWord(ctx, "ab"); !errors.Is(err, ErrWordTooShort) {
		t.Fatalf("expected ErrWordTooShort, got %v", err)
	}
	if _, err := svc.CreateWord(ctx, "lexeme"); err != nil {
		t.Fatalf("create word: %v", err)
	}
	if _, err := svc.CreateWord(ctx, "lexeme"); !errors.Is(err, ErrDuplicateWord) {
		t.Fatalf("expected ErrDuplicateWord, got %v", err)
	}
}

func TestCreateMeaningValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.CreateLanguage(ctx, "en", "English"); err != nil {
		t.Fatalf("create language: %v", err)
	}
	word, err := svc.CreateWord(ctx, "lexeme")
	if err != nil {
		t.Fatalf("create word: %v", err)
	}

	if _, err := svc.CreateMeaning(ctx, word.ID, "en", "ab", "a unit of lexical meaning"); !errors.Is(err, ErrTranslationTooShort) {
		t.Fatalf("expected ErrTranslationTooShort, got %v", err)
	}
	if _, err := svc.CreateMeaning(ctx, word.ID, "en", "lexeme", "short"); !errors.Is(err, ErrDefinitionTooShort) {
		t.Fatalf("expected ErrDefinitionTooShort, got %v", err)
	}
	if _, err := svc.CreateMeaning(ctx, word.ID, "xx", "lexeme", "a unit of lexical meaning"); !errors.Is(err, ErrLanguageNotFound) {
		t.Fatalf("expected ErrLanguageNotFound, got %v", err)
	}
	if _, err := svc.CreateMeaning(ctx, 9999, "en", "lexeme", "a unit of lexical meaning"); !errors.Is(err, ErrWordNotFound) {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
	if _, err := svc.CreateMeaning(ctx, word.ID, "en", "lexeme", "a unit of lexical meaning"); err != nil {
		t.Fatalf("create meaning: %v", err)
	}
	if _, err := svc.CreateMeaning(ctx, word.ID, "en", "lexeme", "another wording of the same"); !errors.Is(err, ErrDuplicateMeaning) {
		t.Fatalf("expected ErrDuplicateMeaning, got %v", err)
	}
}

func TestFindMeaningMissing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	words := seedVocabulary(t, svc, 1)

	if _, err := svc.FindMeaning(ctx, words[0].ID, "xx"); !errors.Is(err, ErrMeaningNotFound) {
		t.Fatalf("expected ErrMeaningNotFound, got %v", err)
	}
}

func TestRandomUnplayedWords(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	words := seedVocabulary(t, svc, 5)

	exclude := []uint{words[0].ID, words[1].ID}
	picked, err := svc.RandomUnplayedWords(ctx, "en", exclude, 10)
	if err != nil {
		t.Fatalf("random words: %v", err)
	}
	if len(picked) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(picked))
	}
	for _, word := range picked {
		for _, id := range exclude {
			if word.ID == id {
				t.Fatalf("excluded word %d returned", id)
			}
		}
	}
	none, err := svc.RandomUnplayedWords(ctx, "en", nil, 0)
	if err != nil {
		t.Fatalf("random words limit 0: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no words for limit 0, got %d", len(none))
	}
}
