package payments

import (
	"context"

	appbilling "github.com/siteproc/siteproc-api/internal/application/billing"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

var _ appbilling.SubscriptionGateway = (*NoopGateway)(nil)

// NoopGateway implementación del gateway de suscripciones para entornos sin
// proveedor de pagos conectado (desarrollo, staging). Registra lo que habría
// reportado y responde éxito, así el flujo de reconciliación se ejercita
// completo sin credenciales externas.
type NoopGateway struct {
	log *logger.Logger
}

// NewNoopGateway construye el adaptador.
func NewNoopGateway(log *logger.Logger) *NoopGateway {
	return &NoopGateway{log: log}
}

// UpdateSeatQuantity loggea la cantidad que se habría reportado al proveedor.
func (g *NoopGateway) UpdateSeatQuantity(ctx context.Context, companyID string, quantity int) error {
	g.log.Info().
		Str("company_id", companyID).
		Int("quantity", quantity).
		Msg("gateway noop: cantidad de asientos reportada")
	return nil
}
