// internal/handlers/player.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rmsantos/fivestack/internal/ids"
	"github.com/rmsantos/fivestack/internal/models"
	"github.com/rmsantos/fivestack/internal/store"
)

// addPlayerRequest is the POST /players payload. agent_icon is optional;
// everything else is required. slot_number zero counts as missing.
type addPlayerRequest struct {
	LobbyID    string `json:"lobby_id"`
	SlotNumber int    `json:"slot_number"`
	PlayerName string `json:"player_name"`
	AgentName  string `json:"agent_name"`
	AgentRole  string `json:"agent_role"`
	AgentIcon  string `json:"agent_icon"`
}

// PlayersHandler serves the /players endpoint: claim a slot on POST,
// release one on DELETE.
func PlayersHandler(logger *logrus.Logger, s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			addPlayer(logger, s, w, r)
		case http.MethodDelete:
			removePlayer(logger, s, w, r)
		default:
			respondMethodNotAllowed(w)
		}
	}
}

func addPlayer(logger *logrus.Logger, s store.Store, w http.ResponseWriter, r *http.Request) {
	var req addPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LobbyID == "" || req.SlotNumber == 0 || req.PlayerName == "" ||
		req.AgentName == "" || req.AgentRole == "" {
		respondError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if req.SlotNumber < 1 || req.SlotNumber > models.MaxSlots {
		respondError(w, http.StatusBadRequest, "slot_number must be between 1 and 5")
		return
	}

	player, err := s.AddPlayer(r.Context(), models.Player{
		ID:         ids.NewPlayerID(),
		LobbyID:    req.LobbyID,
		SlotNumber: req.SlotNumber,
		PlayerName: req.PlayerName,
		AgentName:  req.AgentName,
		AgentRole:  req.AgentRole,
		AgentIcon:  req.AgentIcon,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		// a dangling lobby_id surfaces here as an FK violation
		logger.WithError(err).Error("failed to add player")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, player)
}

func removePlayer(logger *logrus.Logger, s store.Store, w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "player id is required")
		return
	}

	removed, err := s.RemovePlayer(r.Context(), id)
	if err != nil {
		logger.WithError(err).Error("failed to remove player")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
