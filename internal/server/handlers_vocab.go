package server

import (
	"net/http"
)

type createUserRequest struct {
	Username string `json:"username"`
}

type createLanguageRequest struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

type createWordRequest struct {
	Text string `json:"text"`
}

type createMeaningRequest struct {
	WordID      uint   `json:"word_id"`
	Language    string `json:"language"`
	Translation string `json:"translation"`
	Definition  string `json:"definition"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.svc.CreateUser(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
}

func (s *Server) handleCreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req createLanguageRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	language, err := s.svc.CreateLanguage(r.Context(), req.Tag, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"tag":  language.Tag,
		"name": language.Name,
	})
}

func (s *Server) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	var req createWordRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	word, err := s.svc.CreateWord(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"word_id": word.ID,
		"text":    word.Text,
	})
}

func (s *Server) handleCreateMeaning(w http.ResponseWriter, r *http.Request) {
	var req createMeaningRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	meaning, err := s.svc.CreateMeaning(r.Context(), req.WordID, req.Language, req.Translation, req.Definition)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"meaning_id": meaning.ID,
		"word_id":    meaning.WordID,
		"language":   meaning.LanguageTag,
	})
}
