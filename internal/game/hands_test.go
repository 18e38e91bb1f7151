package game

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bleff/internal/db"
)

func TestLeaderRotation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	game, hand, users := startedGame(t, svc, "alice", "bob", "carol")

	expected := []uint{users[0].ID, users[1].ID, users[2].ID, users[0].ID}
	for i, want := range expected {
		if hand.LeaderID == nil || *hand.LeaderID != want {
			t.Fatalf("hand %d: expected leader %d, got %v", i+1, want, hand.LeaderID)
		}
		if _, err := svc.EndHand(ctx, hand.ID); err != nil {
			t.Fatalf("end hand %d: %v", i+1, err)
		}
		if i == len(expected)-1 {
			break
		}
		next, err := svc.CreateHand(ctx, game.ID)
		if err != nil {
			t.Fatalf("create hand %d: %v", i+2, err)
		}
		hand = next
	}
}

func TestSinglePlayerAlwaysLeads(t *testing.T) {
	players := []db.User{{ID: 7, Username: "solo"}}
	leader := assignLeader(players, []uint{7})
	if leader.ID != 7 {
		t.Fatalf("expected the lone player to lead, got %d", leader.ID)
	}
}

func TestAssignLeaderFallsBackToFirst(t *testing.T) {
	players := []db.User{{ID: 1}, {ID: 2}}
	leader := assignLeader(players, []uint{2, 1})
	if leader.ID != 1 {
		t.Fatalf("expected fallback to first player, got %d", leader.ID)
	}
}

func TestSingleOpenHandPerGame(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	game, _, _ := startedGame(t, svc, "alice", "bob")

	if _, err := svc.CreateHand(ctx, game.ID); !errors.Is(err, ErrPhaseViolation) {
		t.Fatalf("expected ErrPhaseViolation, got %v", err)
	}
}

func TestOpenHandIndexBacksPhaseCheck(t *testing.T) {
	svc, _ := newTestService(t)
	game, _, _ := startedGame(t, svc, "alice", "bob")

	// A write slipping past the phase pre-check still hits the partial
	// unique index, and the failure reads as a unique violation.
	err := svc.db.Create(&db.Hand{GameID: game.ID}).Error
	if err == nil {
		t.Fatal("expected the one-open-hand index to reject a second open hand")
	}
	if !db.IsUniqueViolation(err) {
		t.Fatalf("expected a unique violation, got %v", err)
	}
}

func TestCreateHandOnFinishedGame(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	game, _, _ := startedGame(t, svc, "alice", "bob")

	if _, err := svc.EndGame(ctx, game.ID); err != nil {
		t.Fatalf("end game: %v", err)
	}
	if _, err := svc.CreateHand(ctx, game.ID); !errors.Is(err, ErrPhaseViolation) {
		t.Fatalf("expected ErrPhaseViolation, got %v", err)
	}
}

func TestChoicesSeeded(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, hand, _ := startedGame(t, svc, "alice", "bob")

	choices, err := svc.Choices(ctx, hand.ID)
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	if len(choices) != 3 {
		t.Fatalf("expected 3 choices, got %d", len(choices))
	}
	seen := make(map[uint]struct{})
	for _, choice := range choices {
		if _, dup := seen[choice.WordID]; dup {
			t.Fatalf("duplicate word %d among choices", choice.WordID)
		}
		seen[choice.WordID] = struct{}{}
		if choice.Word.Text == "" {
			t.Fatal("expected choice word preloaded")
		}
	}
}

func TestChoicesOnlyFromGameLanguage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedVocabulary(t, svc, 3)
	if _, err := svc.CreateLanguage(ctx, "fr", "French"); err != nil {
		t.Fatalf("create language: %v", err)
	}
	frenchOnly := make(map[uint]bool)
	for i := 0; i < 5; i++ {
		word, err := svc.CreateWord(ctx, fmt.Sprintf("mot-%02d", i))
		if err != nil {
			t.Fatalf("create word %d: %v", i, err)
		}
		_, err = svc.CreateMeaning(ctx, word.ID, "fr",
			fmt.Sprintf("mot-%02d", i),
			fmt.Sprintf("la vraie definition du mot numero %02d", i))
		if err != nil {
			t.Fatalf("create meaning %d: %v", i, err)
		}
		frenchOnly[word.ID] = true
	}
	users := seedUsers(t, svc, "alice", "bob")
	game := newGame(t, svc, users)
	hand, err := svc.StartGame(ctx, game.ID, users[0].ID)
	if err != nil {
		t.Fatalf("start game: %v", err)
	}

	choices, err := svc.Choices(ctx, hand.ID)
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	// Only the three english words are eligible in an english game.
	if len(choices) != 3 {
		t.Fatalf("expected 3 choices, got %d", len(choices))
	}
	for _, choice := range choices {
		if frenchOnly[choice.WordID] {
			t.Fatalf("word %d has no meaning in the game language", choice.WordID)
		}
	}
}

func TestChoicesExcludePlayedWords(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	game, hand, _ := startedGame(t, svc, "alice", "bob")

	chosen := chooseFirstOffer(t, svc, hand)
	if _, err := svc.EndHand(ctx, hand.ID); err != nil {
		t.Fatalf("end hand: %v", err)
	}
	next, err := svc.CreateHand(ctx, game.ID)
	if err != nil {
		t.Fatalf("create next hand: %v", err)
	}
	choices, err := svc.Choices(ctx, next.ID)
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	for _, choice := range choices {
		if choice.WordID == *chosen.WordID {
			t.Fatalf("word %d was already played", choice.WordID)
		}
	}
}

func TestChooseWordSeedsOriginalGuess(t *testing.T) {
	svc, recorder := newTestService(t)
	ctx := context.Background()
	game, hand, _ := startedGame(t, svc, "alice", "bob")

	chosen := chooseFirstOffer(t, svc, hand)
	meaning, err := svc.FindMeaning(ctx, *chosen.WordID, game.IdiomTag)
	if err != nil {
		t.Fatalf("find meaning: %v", err)
	}
	handGuesses, err := svc.HandGuesses(ctx, hand.ID)
	if err != nil {
		t.Fatalf("hand guesses: %v", err)
	}
	if len(handGuesses) != 1 {
		t.Fatalf("expected one seeded guess, got %d", len(handGuesses))
	}
	original := handGuesses[0]
	if !original.Guess.IsOriginal || original.Guess.WriterID != nil {
		t.Fatalf("expected system original guess, got %+v", original.Guess)
	}
	if original.Guess.Content != meaning.Definition {
		t.Fatalf("original content %q != definition %q", original.Guess.Content, meaning.Definition)
	}
	if !recorder.has(EventWordChosen) {
		t.Fatal("expected word-chosen event")
	}
}

func TestChooseWordIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, hand, _ := startedGame(t, svc, "alice", "bob")

	chosen := chooseFirstOffer(t, svc, hand)
	again, err := svc.ChooseWord(ctx, hand.ID, *chosen.WordID)
	if err != nil {
		t.Fatalf("re-choose same word: %v", err)
	}
	if *again.WordID != *chosen.WordID {
		t.Fatalf("word changed from %d to %d", *chosen.WordID, *again.WordID)
	}
	handGuesses, err := svc.HandGuesses(ctx, hand.ID)
	if err != nil {
		t.Fatalf("hand guesses: %v", err)
	}
	if len(handGuesses) != 1 {
		t.Fatalf("re-choose must not reseed the original guess, got %d rows", len(handGuesses))
	}
}

func TestChooseDifferentWordRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, hand, _ := startedGame(t, svc, "alice", "bob")

	choices, err := svc.Choices(ctx, hand.ID)
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	if _, err := svc.ChooseWord(ctx, hand.ID, choices[0].WordID); err != nil {
		t.Fatalf("choose word: %v", err)
	}
	if _, err := svc.ChooseWord(ctx, hand.ID, choices[1].WordID); !errors.Is(err, ErrWordAlreadySet) {
		t.Fatalf("expected ErrWordAlreadySet, got %v", err)
	}
}

func TestChooseWordOutsideOffer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, hand, _ := startedGame(t, svc, "alice", "bob")

	stray, err := svc.CreateWord(ctx, "afterthought")
	if err != nil {
		t.Fatalf("create word: %v", err)
	}
	if _, err := svc.ChooseWord(ctx, hand.ID, stray.ID); !errors.Is(err, ErrNoSuchChoice) {
		t.Fatalf("expected ErrNoSuchChoice, got %v", err)
	}
}

func TestSetHandLeader(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, hand, users := startedGame(t, svc, "alice", "bob")

	updated, err := svc.SetHandLeader(ctx, hand.ID, users[1].ID)
	if err != nil {
		t.Fatalf("set leader: %v", err)
	}
	if updated.LeaderID == nil || *updated.LeaderID != users[1].ID {
		t.Fatalf("expected leader %d, got %v", users[1].ID, updated.LeaderID)
	}
}

func TestSetHandLeaderOutsider(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, hand, _ := startedGame(t, svc, "alice", "bob")
	outsiders := seedUsers(t, svc, "mallory")

	if _, err := svc.SetHandLeader(ctx, hand.ID, outsiders[0].ID); !errors.Is(err, ErrInvalidLeader) {
		t.Fatalf("expected ErrInvalidLeader, got %v", err)
	}
}

func TestEndHandTwice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, hand, _ := startedGame(t, svc, "alice", "bob")

	ended, err := svc.EndHand(ctx, hand.ID)
	if err != nil {
		t.Fatalf("end hand: %v", err)
	}
	if ended.FinishedAt == nil {
		t.Fatal("expected finished_at set")
	}
	if ended.FinishedAt.Before(ended.CreatedAt) {
		t.Fatal("finish time precedes creation time")
	}
	if _, err := svc.EndHand(ctx, hand.ID); !errors.Is(err, ErrAlreadyEnded) {
		t.Fatalf("expected ErrAlreadyEnded, got %v", err)
	}
}
