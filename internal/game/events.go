package game

// Event types broadcast to the game-scoped channel.
const (
	EventPlayerJoined = "player-joined"
	EventGameStarted  = "game-started"
	EventWordChosen   = "word-chosen"
	EventNewGuess     = "new-guess"
	EventGuessesReady = "guesses-ready"
	EventNewVote      = "new-vote"
	EventHandFinished = "hand-finished"
	EventGameFinished = "game-finished"
)

type EventPayload struct {
	GameID   uint   `json:"game_id,omitempty"`
	HandID   uint   `json:"hand_id,omitempty"`
	Username string `json:"username,omitempty"`
	Word     string `json:"word,omitempty"`
	Content  string `json:"content,omitempty"`
	Count    int    `json:"count,omitempty"`
}

type Event struct {
	Type    string
	GameID  uint
	HandID  uint
	Payload EventPayload
}

// EventSink receives events after the originating transaction committed.
// Delivery is fire-and-forget; a sink must never fail the operation.
type EventSink interface {
	Emit(event Event)
}

type NopSink struct{}

func (NopSink) Emit(Event) {}

func (s *Service) emit(events []Event) {
	for _, event := range events {
		s.sink.Emit(event)
	}
}
