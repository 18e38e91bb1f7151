package server

import (
	"encoding/json"
	"log"

	"bleff/internal/db"
	"bleff/internal/game"

	"gorm.io/datatypes"
)

// Emit persists the event and fans it out to the game's websocket group.
// Events arrive after their transaction committed, so failures here are
// logged and otherwise ignored.
func (s *Server) Emit(event game.Event) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		log.Printf("event marshal failed type=%s game_id=%d error=%v", event.Type, event.GameID, err)
		return
	}
	record := db.Event{
		GameID:  event.GameID,
		Type:    event.Type,
		Payload: datatypes.JSON(payload),
	}
	if event.HandID != 0 {
		handID := event.HandID
		record.HandID = &handID
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("event persist failed type=%s game_id=%d error=%v", event.Type, event.GameID, err)
	}
	s.ws.Broadcast(event.GameID, map[string]any{
		"type":    event.Type,
		"payload": event.Payload,
	})
}
