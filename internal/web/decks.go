package web

import (
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/game"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"`
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.decksFile)
	if err != nil {
		s.logger.Error("could not read decks file", zap.String("path", s.decksFile), zap.Error(err))
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}
	df, err := game.ParseDecks(data)
	if err != nil {
		s.logger.Error("could not parse decks file", zap.String("path", s.decksFile), zap.Error(err))
		http.Error(w, "could not parse decks file", http.StatusInternalServerError)
		return
	}

	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		decks = append(decks, DeckInfo{Number: i + 1, Name: d.Name, Cards: d.Cards})
	}
	writeJSON(w, http.StatusOK, decks)
}
