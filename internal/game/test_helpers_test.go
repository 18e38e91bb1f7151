package game

import (
	"context"
	"fmt"
	"testing"

	"bleff/internal/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) Emit(event Event) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) has(eventType string) bool {
	for _, event := range r.events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func newTestService(t *testing.T) (*Service, *eventRecorder) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	recorder := &eventRecorder{}
	return New(conn, 3, recorder), recorder
}

func seedVocabulary(t *testing.T, svc *Service, count int) []*db.Word {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.CreateLanguage(ctx, "en", "English"); err != nil {
		t.Fatalf("create language: %v", err)
	}
	words := make([]*db.Word, 0, count)
	for i := 0; i < count; i++ {
		word, err := svc.CreateWord(ctx, fmt.Sprintf("word-%02d", i))
		if err != nil {
			t.Fatalf("create word %d: %v", i, err)
		}
		_, err = svc.CreateMeaning(ctx, word.ID, "en",
			fmt.Sprintf("translation-%02d", i),
			fmt.Sprintf("the real definition of word number %02d", i))
		if err != nil {
			t.Fatalf("create meaning %d: %v", i, err)
		}
		words = append(words, word)
	}
	return words
}

func seedUsers(t *testing.T, svc *Service, names ...string) []*db.User {
	t.Helper()
	ctx := context.Background()
	users := make([]*db.User, 0, len(names))
	for _, name := range names {
		user, err := svc.CreateUser(ctx, name)
		if err != nil {
			t.Fatalf("create user %s: %v", name, err)
		}
		users = append(users, user)
	}
	return users
}

// newGame creates a game owned by the first user and joins the rest.
func newGame(t *testing.T, svc *Service, users []*db.User) *db.Game {
	t.Helper()
	ctx := context.Background()
	game, err := svc.CreateGame(ctx, users[0].ID, "en")
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	for _, user := range users[1:] {
		if _, err := svc.Join(ctx, game.ID, user.ID); err != nil {
			t.Fatalf("join game user=%s: %v", user.Username, err)
		}
	}
	return game
}

// startedGame builds the standard fixture: vocabulary, players, a game and
// its first hand.
func startedGame(t *testing.T, svc *Service, names ...string) (*db.Game, *db.Hand, []*db.User) {
	t.Helper()
	ctx := context.Background()
	seedVocabulary(t, svc, 12)
	users := seedUsers(t, svc, names...)
	game := newGame(t, svc, users)
	hand, err := svc.StartGame(ctx, game.ID, users[0].ID)
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	return game, hand, users
}

// chooseFirstOffer binds the hand to the first of its offered words.
func chooseFirstOffer(t *testing.T, svc *Service, hand *db.Hand) *db.Hand {
	t.Helper()
	ctx := context.Background()
	choices, err := svc.Choices(ctx, hand.ID)
	if err != nil {
		t.Fatalf("list choices: %v", err)
	}
	if len(choices) == 0 {
		t.Fatal("no choices seeded")
	}
	chosen, err := svc.ChooseWord(ctx, hand.ID, choices[0].WordID)
	if err != nil {
		t.Fatalf("choose word: %v", err)
	}
	return chosen
}
