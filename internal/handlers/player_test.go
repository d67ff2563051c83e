// internal/handlers/player_test.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/rmsantos/fivestack/internal/models"
	"github.com/rmsantos/fivestack/internal/store"
)

func TestAddPlayerMissingFields(t *testing.T) {
	h := PlayersHandler(testLogger(), store.NewMemoryStore())

	cases := []string{
		`{}`,
		`{"lobby_id":"l1"}`,
		`{"lobby_id":"l1","slot_number":1}`,
		`{"lobby_id":"l1","slot_number":1,"player_name":"Ana"}`,
		`{"lobby_id":"l1","slot_number":1,"player_name":"Ana","agent_name":"Jett"}`,
	}
	for _, body := range cases {
		w := doJSON(t, h, "POST", "/players", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestAddPlayerSlotOutOfRange(t *testing.T) {
	s := store.NewMemoryStore()
	lobbiesH := LobbiesHandler(testLogger(), s)
	playersH := PlayersHandler(testLogger(), s)

	lobby := createTestLobby(t, lobbiesH, "")

	for _, slot := range []int{-1, 6, 99} {
		body := fmt.Sprintf(`{"lobby_id":%q,"slot_number":%d,"player_name":"Ana","agent_name":"Jett","agent_role":"Duelist"}`, lobby.ID, slot)
		w := doJSON(t, playersH, "POST", "/players", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("slot %d: expected 400, got %d", slot, w.Code)
		}
	}
}

func TestAddPlayerOptionalIcon(t *testing.T) {
	s := store.NewMemoryStore()
	lobbiesH := LobbiesHandler(testLogger(), s)
	playersH := PlayersHandler(testLogger(), s)

	lobby := createTestLobby(t, lobbiesH, "")

	body := fmt.Sprintf(`{"lobby_id":%q,"slot_number":2,"player_name":"Ana","agent_name":"Jett","agent_role":"Duelist"}`, lobby.ID)
	w := doJSON(t, playersH, "POST", "/players", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var p models.Player
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode player: %v", err)
	}
	if p.ID == "" || p.LobbyID != lobby.ID || p.SlotNumber != 2 {
		t.Fatalf("unexpected player %+v", p)
	}
	if p.AgentIcon != "" {
		t.Fatalf("expected empty icon, got %q", p.AgentIcon)
	}
}

func TestAddPlayerDanglingLobby(t *testing.T) {
	h := PlayersHandler(testLogger(), store.NewMemoryStore())

	body := `{"lobby_id":"nope","slot_number":1,"player_name":"Ana","agent_name":"Jett","agent_role":"Duelist"}`
	w := doJSON(t, h, "POST", "/players", body)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for dangling lobby_id, got %d", w.Code)
	}
}

func TestRemovePlayerMissingID(t *testing.T) {
	h := PlayersHandler(testLogger(), store.NewMemoryStore())

	w := doJSON(t, h, "DELETE", "/players", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRemovePlayerNotFound(t *testing.T) {
	h := PlayersHandler(testLogger(), store.NewMemoryStore())

	w := doJSON(t, h, "DELETE", "/players?id=nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRemovePlayerSuccess(t *testing.T) {
	s := store.NewMemoryStore()
	lobbiesH := LobbiesHandler(testLogger(), s)
	playersH := PlayersHandler(testLogger(), s)

	lobby := createTestLobby(t, lobbiesH, "")
	body := fmt.Sprintf(`{"lobby_id":%q,"slot_number":1,"player_name":"Ana","agent_name":"Jett","agent_role":"Duelist"}`, lobby.ID)
	w := doJSON(t, playersH, "POST", "/players", body)

	var p models.Player
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode player: %v", err)
	}

	w = doJSON(t, playersH, "DELETE", "/players?id="+p.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPlayersMethodNotAllowed(t *testing.T) {
	h := PlayersHandler(testLogger(), store.NewMemoryStore())

	w := doJSON(t, h, "GET", "/players", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
