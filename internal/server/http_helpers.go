package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"bleff/internal/db"
	"bleff/internal/game"

	"github.com/go-chi/chi/v5"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func urlID(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func urlTag(r *http.Request) string {
	return chi.URLParam(r, "tag")
}

func queryID(r *http.Request, name string) (uint, bool) {
	raw := r.URL.Query().Get(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// writeServiceError maps core errors onto HTTP statuses: missing rows to 404,
// rule violations to 409, bad input to 400.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound),
		errors.Is(err, game.ErrHandNotFound),
		errors.Is(err, game.ErrUserNotFound),
		errors.Is(err, game.ErrWordNotFound),
		errors.Is(err, game.ErrLanguageNotFound),
		errors.Is(err, game.ErrMeaningNotFound),
		errors.Is(err, game.ErrHandGuessNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrContentTooShort),
		errors.Is(err, game.ErrWordTooShort),
		errors.Is(err, game.ErrLanguageTagRequired),
		errors.Is(err, game.ErrLanguageNameTooShort),
		errors.Is(err, game.ErrTranslationTooShort),
		errors.Is(err, game.ErrDefinitionTooShort),
		errors.Is(err, game.ErrUsernameRequired),
		errors.Is(err, game.ErrConditionOutOfBounds),
		errors.Is(err, game.ErrUnknownConditionTag):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrNotMember),
		errors.Is(err, game.ErrNotLeader),
		errors.Is(err, game.ErrNotCreator):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, game.ErrPhaseViolation),
		errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrInvalidLeader),
		errors.Is(err, game.ErrNoSuchChoice),
		errors.Is(err, game.ErrWordAlreadySet),
		errors.Is(err, game.ErrAlreadyEnded),
		errors.Is(err, game.ErrHandClosed),
		errors.Is(err, game.ErrDuplicateWriter),
		errors.Is(err, game.ErrAlreadyAdjudicated),
		errors.Is(err, game.ErrProtectedGuess),
		errors.Is(err, game.ErrDuplicateVote),
		errors.Is(err, game.ErrDuplicateMembership),
		errors.Is(err, game.ErrAlreadyPlayingElsewhere),
		errors.Is(err, game.ErrConditionsNotMet),
		errors.Is(err, game.ErrDuplicateWord),
		errors.Is(err, game.ErrDuplicateLanguage),
		errors.Is(err, game.ErrDuplicateMeaning),
		errors.Is(err, game.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, err.Error())
	case db.IsForeignKeyViolation(err):
		writeError(w, http.StatusConflict, "referenced record does not exist")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
