package dto

import (
	"encoding/json"
	"time"
)

// ActivityResponse entrada del feed de actividad (audit log).
type ActivityResponse struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actor_id"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Action     string          `json:"action"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ActivityListResponse listado paginado.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
