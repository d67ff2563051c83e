// internal/ids/ids.go
package ids

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewLobbyID returns a fresh lobby identifier.
func NewLobbyID() string {
	return newID("lobby")
}

// NewPlayerID returns a fresh player identifier.
func NewPlayerID() string {
	return newID("player")
}

// newID builds "<kind>-<unix ms>-<suffix>". The millisecond prefix keeps ids
// roughly sortable and easy to eyeball in the DB; the uuid suffix is what
// actually makes collisions negligible, so no store-side collision check
// is performed.
func newID(kind string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", kind, time.Now().UnixMilli(), suffix)
}
