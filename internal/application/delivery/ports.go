package delivery

import (
	"context"

	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de entregas atado a esa tx. El update primario de la entrega se
// commitea aquí; el rollup y las notificaciones corren después del Commit,
// nunca antes ni en paralelo.
type TxRunner interface {
	Run(ctx context.Context, fn func(deliveryRepo repository.DeliveryRepository) error) error
}

// Broadcaster publica eventos realtime (fire-and-forget: el adaptador loggea
// sus propios fallos y jamás afecta la operación primaria).
type Broadcaster interface {
	Broadcast(ctx context.Context, channel, event string, payload any)
	DashboardUpdated(ctx context.Context, companyID string)
}

// Auditor registra actividad post-commit, también best-effort.
type Auditor interface {
	Record(companyID, actorID, entityType, entityID, action string, changes map[string]any)
}

// Counter contador monótono (lo satisface prometheus.Counter).
type Counter interface {
	Inc()
}

// NopCounter contador que descarta (tests, métricas deshabilitadas).
type NopCounter struct{}

func (NopCounter) Inc() {}
