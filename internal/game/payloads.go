package game

import (
	"encoding/json"

	"github.com/sketchchain/sketchchain/internal/models"
)

func decode(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return preconditionFailed("invalid event payload")
	}
	return nil
}

func errorPayload(msg string) map[string]interface{} {
	return map[string]interface{}{"message": msg}
}

func roomPayload(r *models.Room) map[string]interface{} {
	return map[string]interface{}{"room": r}
}

func phasePayload(r *models.Room) map[string]interface{} {
	return map[string]interface{}{"room": r, "phase": r.Phase}
}
