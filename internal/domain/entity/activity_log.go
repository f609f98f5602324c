package entity

import (
	"encoding/json"
	"time"
)

// ActivityLog entrada de auditoría. Se escribe post-commit y de forma
// best-effort: un fallo al registrar actividad no revierte la operación
// primaria.
type ActivityLog struct {
	ID         string
	CompanyID  string
	ActorID    string
	EntityType string // delivery | order | project | expense | profile | billing
	EntityID   string
	Action     string // created | updated | archived | actuals_auto_updated | ...
	Payload    json.RawMessage
	CreatedAt  time.Time
}
