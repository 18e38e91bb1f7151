package server

import (
	"errors"
	"log"
	"net/http"

	"bleff/internal/db"
	"bleff/internal/game"

	"gorm.io/gorm"
)

type createGameRequest struct {
	UserID   uint   `json:"user_id"`
	Language string `json:"language"`
}

type userActionRequest struct {
	UserID uint `json:"user_id"`
}

type chooseWordRequest struct {
	UserID uint `json:"user_id"`
	WordID uint `json:"word_id"`
}

type submitGuessRequest struct {
	UserID  uint   `json:"user_id"`
	Content string `json:"content"`
}

type verdictRequest struct {
	UserID  uint `json:"user_id"`
	Correct bool `json:"correct"`
}

type setConditionRequest struct {
	UserID uint `json:"user_id"`
	Value  int  `json:"value"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := s.svc.CreateGame(r.Context(), req.UserID, req.Language)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("game created game_id=%d idiom=%s", created.ID, created.IdiomTag)
	writeJSON(w, http.StatusCreated, map[string]any{
		"game_id": created.ID,
		"idiom":   created.IdiomTag,
	})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req userActionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	play, err := s.svc.Join(r.Context(), gameID, req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"game_id": play.GameID,
		"user_id": play.UserID,
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req userActionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hand, err := s.svc.StartGame(r.Context(), gameID, req.UserID)
	if errors.Is(err, game.ErrConditionsNotMet) {
		unmet, listErr := s.svc.ConditionsMet(r.Context(), gameID)
		if listErr != nil {
			writeServiceError(w, listErr)
			return
		}
		writeJSON(w, http.StatusConflict, map[string]any{
			"error": err.Error(),
			"unmet": unmet,
		})
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, handView(hand))
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req userActionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.svc.EnsureMember(r.Context(), gameID, req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	ended, err := s.svc.EndGame(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("game ended game_id=%d", ended.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id":     ended.ID,
		"finished_at": ended.FinishedAt,
	})
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	players, err := s.svc.PlayersOf(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	list := make([]map[string]any, 0, len(players))
	for _, player := range players {
		list = append(list, map[string]any{
			"user_id":  player.ID,
			"username": player.Username,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id": gameID,
		"players": list,
	})
}

func (s *Server) handleConditions(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	conditions, err := s.svc.Conditions(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	unmet, err := s.svc.ConditionsMet(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	list := make([]map[string]any, 0, len(conditions))
	for _, condition := range conditions {
		list = append(list, map[string]any{
			"tag":   condition.TagName,
			"value": condition.Value,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id":    gameID,
		"conditions": list,
		"unmet":      unmet,
	})
}

func (s *Server) handleSetCondition(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	tag := urlTag(r)
	var req setConditionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.svc.EnsureMember(r.Context(), gameID, req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	condition, err := s.svc.SetCondition(r.Context(), gameID, tag, req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id": gameID,
		"tag":     condition.TagName,
		"value":   condition.Value,
	})
}

func (s *Server) handleCurrentHand(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	hand, err := s.svc.CurrentHand(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, handView(hand))
}

func (s *Server) handleNextHand(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req userActionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.svc.EnsureMember(r.Context(), gameID, req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	hand, err := s.svc.CreateHand(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, handView(hand))
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	userID, ok := queryID(r, "user_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	score, err := s.svc.ComputeScore(r.Context(), gameID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id": gameID,
		"user_id": userID,
		"score":   score,
	})
}

func (s *Server) handleVotesRemaining(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	remaining, err := s.svc.VotesRemaining(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id":   gameID,
		"remaining": remaining,
	})
}

func (s *Server) handleChoices(w http.ResponseWriter, r *http.Request) {
	handID, ok := urlID(r, "handID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	userID, ok := queryID(r, "user_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	hand, err := s.lookupHand(handID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.svc.EnsureLeader(r.Context(), hand.GameID, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	choices, err := s.svc.Choices(r.Context(), handID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	list := make([]map[string]any, 0, len(choices))
	for _, choice := range choices {
		list = append(list, map[string]any{
			"word_id": choice.WordID,
			"word":    choice.Word.Text,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hand_id": handID,
		"choices": list,
	})
}

func (s *Server) handleChooseWord(w http.ResponseWriter, r *http.Request) {
	handID, ok := urlID(r, "handID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req chooseWordRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hand, err := s.lookupHand(handID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.svc.EnsureLeader(r.Context(), hand.GameID, req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	updated, err := s.svc.ChooseWord(r.Context(), handID, req.WordID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, handView(updated))
}

func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	handID, ok := urlID(r, "handID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req submitGuessRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hand, err := s.lookupHand(handID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.svc.EnsureMember(r.Context(), hand.GameID, req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	if hand.LeaderID != nil && *hand.LeaderID == req.UserID {
		writeError(w, http.StatusConflict, "the leader does not submit a guess")
		return
	}
	guess, err := s.svc.SubmitGuess(r.Context(), handID, req.UserID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"guess_id": guess.ID,
		"hand_id":  guess.HandID,
	})
}

func (s *Server) handleHandGuesses(w http.ResponseWriter, r *http.Request) {
	handID, ok := urlID(r, "handID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	handGuesses, err := s.svc.HandGuesses(r.Context(), handID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	list := make([]map[string]any, 0, len(handGuesses))
	for _, handGuess := range handGuesses {
		entry := map[string]any{
			"hand_guess_id": handGuess.ID,
			"content":       handGuess.Guess.Content,
		}
		if handGuess.IsCorrect != nil {
			entry["is_correct"] = *handGuess.IsCorrect
		}
		list = append(list, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hand_id": handID,
		"guesses": list,
	})
}

func (s *Server) handleVerdict(w http.ResponseWriter, r *http.Request) {
	handGuessID, ok := urlID(r, "handGuessID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req verdictRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hand, err := s.lookupHandOfHandGuess(handGuessID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.svc.EnsureLeader(r.Context(), hand.GameID, req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	handGuess, err := s.svc.AdjudicateGuess(r.Context(), handGuessID, req.Correct)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hand_guess_id": handGuess.ID,
		"is_correct":    *handGuess.IsCorrect,
	})
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	handGuessID, ok := urlID(r, "handGuessID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req userActionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hand, err := s.lookupHandOfHandGuess(handGuessID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.svc.EnsureMember(r.Context(), hand.GameID, req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	if hand.LeaderID != nil && *hand.LeaderID == req.UserID {
		writeError(w, http.StatusConflict, "the leader does not vote")
		return
	}
	vote, err := s.svc.CastVote(r.Context(), handGuessID, req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"vote_id": vote.ID,
		"hand_id": vote.HandID,
	})
}

func handView(hand *db.Hand) map[string]any {
	view := map[string]any{
		"hand_id":    hand.ID,
		"game_id":    hand.GameID,
		"created_at": hand.CreatedAt,
	}
	if hand.LeaderID != nil {
		view["leader_id"] = *hand.LeaderID
	}
	if hand.WordID != nil {
		view["word_id"] = *hand.WordID
	}
	if hand.FinishedAt != nil {
		view["finished_at"] = *hand.FinishedAt
	}
	return view
}

func (s *Server) lookupHand(handID uint) (*db.Hand, error) {
	var hand db.Hand
	if err := s.db.First(&hand, handID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrHandNotFound
		}
		return nil, err
	}
	return &hand, nil
}

func (s *Server) lookupHandOfHandGuess(handGuessID uint) (*db.Hand, error) {
	var handGuess db.HandGuess
	if err := s.db.First(&handGuess, handGuessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrHandGuessNotFound
		}
		return nil, err
	}
	return s.lookupHand(handGuess.HandID)
}
