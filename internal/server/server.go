package server

import (
	"net/http"

	"bleff/internal/config"
	"bleff/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type Server struct {
	svc *game.Service
	db  *gorm.DB
	ws  *wsHub
	cfg config.Config
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	s := &Server{
		db:  conn,
		ws:  newWSHub(),
		cfg: cfg,
	}
	s.svc = game.New(conn, cfg.ChoicesPerHand, s)
	return s
}

// Service exposes the core operations, mainly for tests.
func (s *Server) Service() *game.Service {
	return s.svc
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.handleCreateUser)
		r.Post("/languages", s.handleCreateLanguage)
		r.Post("/words", s.handleCreateWord)
		r.Post("/meanings", s.handleCreateMeaning)

		r.Post("/games", s.handleCreateGame)
		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Post("/join", s.handleJoin)
			r.Post("/start", s.handleStart)
			r.Post("/end", s.handleEndGame)
			r.Get("/players", s.handlePlayers)
			r.Get("/conditions", s.handleConditions)
			r.Put("/conditions/{tag}", s.handleSetCondition)
			r.Get("/hand", s.handleCurrentHand)
			r.Post("/hands", s.handleNextHand)
			r.Get("/score", s.handleScore)
			r.Get("/votes/remaining", s.handleVotesRemaining)
		})
		r.Route("/hands/{handID}", func(r chi.Router) {
			r.Get("/choices", s.handleChoices)
			r.Post("/word", s.handleChooseWord)
			r.Post("/guesses", s.handleSubmitGuess)
			r.Get("/guesses", s.handleHandGuesses)
		})
		r.Route("/handguesses/{handGuessID}", func(r chi.Router) {
			r.Post("/verdict", s.handleVerdict)
			r.Post("/votes", s.handleVote)
		})
	})
	r.Get("/ws/games/{gameID}", s.handleWebsocket)
	return r
}
