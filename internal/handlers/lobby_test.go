// internal/handlers/lobby_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/rmsantos/fivestack/internal/models"
	"github.com/rmsantos/fivestack/internal/store"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createTestLobby(t *testing.T, h http.HandlerFunc, password string) models.Lobby {
	t.Helper()
	body := fmt.Sprintf(`{"game_time":"2024-01-01T21:00:00Z","game_time_display":"21:00","password":%q}`, password)
	w := doJSON(t, h, "POST", "/lobbies", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var lobby models.Lobby
	if err := json.Unmarshal(w.Body.Bytes(), &lobby); err != nil {
		t.Fatalf("failed to decode lobby: %v", err)
	}
	return lobby
}

func TestCreateLobby(t *testing.T) {
	h := LobbiesHandler(testLogger(), store.NewMemoryStore())

	lobby := createTestLobby(t, h, "")
	if lobby.ID == "" {
		t.Fatalf("lobby has no id")
	}
	if lobby.Players == nil || len(lobby.Players) != 0 {
		t.Fatalf("expected empty players, got %v", lobby.Players)
	}
	if lobby.GameTimeDisplay != "21:00" {
		t.Fatalf("display string changed: %q", lobby.GameTimeDisplay)
	}
}

func TestCreateLobbyMissingGameTime(t *testing.T) {
	h := LobbiesHandler(testLogger(), store.NewMemoryStore())

	w := doJSON(t, h, "POST", "/lobbies", `{"password":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetLobbyNotFound(t *testing.T) {
	h := LobbiesHandler(testLogger(), store.NewMemoryStore())

	w := doJSON(t, h, "GET", "/lobbies?id=nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListLobbiesEmpty(t *testing.T) {
	h := LobbiesHandler(testLogger(), store.NewMemoryStore())

	w := doJSON(t, h, "GET", "/lobbies", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var lobbies []models.Lobby
	if err := json.Unmarshal(w.Body.Bytes(), &lobbies); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(lobbies) != 0 {
		t.Fatalf("expected empty list, got %d", len(lobbies))
	}
}

func TestDeleteLobbyPasswordMatrix(t *testing.T) {
	s := store.NewMemoryStore()
	h := LobbiesHandler(testLogger(), s)

	// protected lobby: wrong password 401, right password 200
	protected := createTestLobby(t, h, "segredo")

	w := doJSON(t, h, "DELETE", "/lobbies?id="+protected.ID, `{"password":"errada"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", w.Code)
	}

	w = doJSON(t, h, "DELETE", "/lobbies?id="+protected.ID, `{"password":"segredo"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("right password: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// unprotected lobby: deletable with any or no password
	open := createTestLobby(t, h, "")
	w = doJSON(t, h, "DELETE", "/lobbies?id="+open.ID, `{"password":"qualquer"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("open lobby: expected 200, got %d", w.Code)
	}
}

func TestDeleteLobbyMissingID(t *testing.T) {
	h := LobbiesHandler(testLogger(), store.NewMemoryStore())

	w := doJSON(t, h, "DELETE", "/lobbies", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDeleteLobbyNotFound(t *testing.T) {
	h := LobbiesHandler(testLogger(), store.NewMemoryStore())

	w := doJSON(t, h, "DELETE", "/lobbies?id=nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestLobbiesMethodNotAllowed(t *testing.T) {
	h := LobbiesHandler(testLogger(), store.NewMemoryStore())

	w := doJSON(t, h, "PUT", "/lobbies", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

// TestLobbyLifecycle walks the whole claim flow: create, claim slot 1, get,
// overwrite slot 1, delete, get again.
func TestLobbyLifecycle(t *testing.T) {
	s := store.NewMemoryStore()
	lobbiesH := LobbiesHandler(testLogger(), s)
	playersH := PlayersHandler(testLogger(), s)

	lobby := createTestLobby(t, lobbiesH, "")

	body := fmt.Sprintf(`{"lobby_id":%q,"slot_number":1,"player_name":"Ana","agent_name":"Jett","agent_role":"Duelist"}`, lobby.ID)
	w := doJSON(t, playersH, "POST", "/players", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("add player: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, lobbiesH, "GET", "/lobbies?id="+lobby.ID, "")
	var got models.Lobby
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode lobby: %v", err)
	}
	if len(got.Players) != 1 || got.Players[0].PlayerName != "Ana" {
		t.Fatalf("expected Ana in slot 1, got %+v", got.Players)
	}

	// second claim on the same slot replaces the first
	body = fmt.Sprintf(`{"lobby_id":%q,"slot_number":1,"player_name":"Beto","agent_name":"Sage","agent_role":"Sentinel"}`, lobby.ID)
	w = doJSON(t, playersH, "POST", "/players", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("overwrite slot: expected 201, got %d", w.Code)
	}

	w = doJSON(t, lobbiesH, "GET", "/lobbies?id="+lobby.ID, "")
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode lobby: %v", err)
	}
	if len(got.Players) != 1 || got.Players[0].PlayerName != "Beto" {
		t.Fatalf("expected only Beto in slot 1, got %+v", got.Players)
	}

	w = doJSON(t, lobbiesH, "DELETE", "/lobbies?id="+lobby.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	var res SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil || !res.Success {
		t.Fatalf("expected success response, got %s", w.Body.String())
	}

	w = doJSON(t, lobbiesH, "GET", "/lobbies?id="+lobby.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("after delete: expected 404, got %d", w.Code)
	}
}
