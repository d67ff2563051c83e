// internal/handlers/lobby.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rmsantos/fivestack/internal/ids"
	"github.com/rmsantos/fivestack/internal/models"
	"github.com/rmsantos/fivestack/internal/store"
)

// createLobbyRequest is the POST /lobbies payload. game_time is the
// canonical timestamp; game_time_display is whatever label the client wants
// echoed back (typically the raw "HH:MM" the user typed).
type createLobbyRequest struct {
	GameTime        time.Time `json:"game_time"`
	GameTimeDisplay string    `json:"game_time_display"`
	Password        string    `json:"password"`
}

type deleteLobbyRequest struct {
	Password string `json:"password"`
}

// LobbiesHandler serves the /lobbies endpoint: list/get on GET, create on
// POST, delete on DELETE. Dispatch is by method; OPTIONS never reaches here
// because the CORS middleware answers preflight itself.
func LobbiesHandler(logger *logrus.Logger, s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getLobbies(logger, s, w, r)
		case http.MethodPost:
			createLobby(logger, s, w, r)
		case http.MethodDelete:
			deleteLobby(logger, s, w, r)
		default:
			respondMethodNotAllowed(w)
		}
	}
}

func getLobbies(logger *logrus.Logger, s store.Store, w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id != "" {
		lobby, err := s.GetLobby(r.Context(), id)
		if errors.Is(err, store.ErrLobbyNotFound) {
			respondError(w, http.StatusNotFound, "lobby not found")
			return
		}
		if err != nil {
			logger.WithError(err).Error("failed to get lobby")
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		respondJSON(w, http.StatusOK, lobby)
		return
	}

	lobbies, err := s.ListLobbies(r.Context())
	if err != nil {
		logger.WithError(err).Error("failed to list lobbies")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, lobbies)
}

func createLobby(logger *logrus.Logger, s store.Store, w http.ResponseWriter, r *http.Request) {
	var req createLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GameTime.IsZero() {
		respondError(w, http.StatusBadRequest, "game_time is required")
		return
	}

	lobby, err := s.CreateLobby(r.Context(), models.Lobby{
		ID:              ids.NewLobbyID(),
		GameTime:        req.GameTime,
		GameTimeDisplay: req.GameTimeDisplay,
		Password:        req.Password,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		logger.WithError(err).Error("failed to create lobby")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, lobby)
}

func deleteLobby(logger *logrus.Logger, s store.Store, w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "lobby id is required")
		return
	}

	// body is optional when the lobby has no password
	var req deleteLobbyRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	lobby, err := s.GetLobby(r.Context(), id)
	if errors.Is(err, store.ErrLobbyNotFound) {
		respondError(w, http.StatusNotFound, "lobby not found")
		return
	}
	if err != nil {
		logger.WithError(err).Error("failed to get lobby for delete")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// case-sensitive exact match; an unprotected lobby is deletable by anyone
	if lobby.HasPassword() && lobby.Password != req.Password {
		respondError(w, http.StatusUnauthorized, "incorrect password")
		return
	}

	deleted, err := s.DeleteLobby(r.Context(), id)
	if err != nil {
		logger.WithError(err).Error("failed to delete lobby")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		// raced with another delete between the get and here
		respondError(w, http.StatusInternalServerError, "failed to delete lobby")
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
