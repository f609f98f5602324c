package billing

import "context"

// SubscriptionGateway abstrae al proveedor externo de suscripciones. La
// reconciliación de asientos le reporta la cantidad vigente; el adaptador
// decide cómo traducirla (item de suscripción, cantidad, proración).
type SubscriptionGateway interface {
	UpdateSeatQuantity(ctx context.Context, companyID string, quantity int) error
}
