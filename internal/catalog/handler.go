// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Handler proxies the cached agent catalog to the browser, so the UI never
// talks to the upstream directly and a flaky upstream degrades to stale
// (not missing) data.
func Handler(logger *logrus.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		agents, err := svc.Agents(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to fetch agent catalog")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "agent catalog unavailable"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(agents)
	}
}
