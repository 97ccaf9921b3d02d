// internal/handlers/status.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sketchchain/sketchchain/internal/transport"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// HealthHandler reports process liveness and the running version.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"version": Version,
	})
}

// ConnectionsHandler enumerates live connection ids for operational
// debugging.
func ConnectionsHandler(hub *transport.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := hub.ConnIDs()
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			out = append(out, id.String())
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count":       len(out),
			"connections": out,
		})
	}
}
