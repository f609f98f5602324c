package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

var _ appdelivery.Auditor = (*Recorder)(nil)

// Recorder persiste entradas de auditoría en el activity log. Se invoca
// post-commit y es best-effort: un fallo se loggea y no se propaga.
type Recorder struct {
	repo repository.ActivityLogRepository
	log  *logger.Logger
}

// NewRecorder construye el adaptador.
func NewRecorder(repo repository.ActivityLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record registra la acción sobre la entidad con su detalle de cambios.
func (r *Recorder) Record(companyID, actorID, entityType, entityID, action string, changes map[string]any) {
	var payload json.RawMessage
	if len(changes) > 0 {
		raw, err := json.Marshal(changes)
		if err != nil {
			r.log.Warn().Err(err).Str("entity_id", entityID).Msg("serializar cambios de auditoría")
		} else {
			payload = raw
		}
	}

	entry := &entity.ActivityLog{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Payload:    payload,
		CreatedAt:  time.Now(),
	}
	if err := r.repo.Append(entry); err != nil {
		r.log.Error().Err(err).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Str("action", action).
			Msg("registrar actividad falló")
	}
}
