package realtime

import (
	"context"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
)

var _ appdelivery.Broadcaster = NopBroadcaster{}

// NopBroadcaster descarta todos los eventos. Se usa cuando Redis no está
// disponible: la API sigue operando sin realtime.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(ctx context.Context, channel, event string, payload any) {}

func (NopBroadcaster) DashboardUpdated(ctx context.Context, companyID string) {}
