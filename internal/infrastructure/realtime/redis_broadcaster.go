package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/pkg/config"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

var _ appdelivery.Broadcaster = (*RedisBroadcaster)(nil)

// RedisBroadcaster publica eventos de dominio vía Redis pub/sub. Los frontends
// (u otro proceso que sirva websockets/SSE) se suscriben a los canales
// siteproc:* y reenvían a sus clientes. Todo publish es fire-and-forget: un
// Redis caído degrada frescura del dashboard, nunca la operación primaria.
type RedisBroadcaster struct {
	rdb *redis.Client
	log *logger.Logger
}

// envelope formato de los mensajes publicados.
type envelope struct {
	Channel string    `json:"channel"`
	Event   string    `json:"event"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// NewRedisClient abre el cliente con la configuración de la app y verifica
// conectividad.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// NewRedisBroadcaster construye el adaptador.
func NewRedisBroadcaster(rdb *redis.Client, log *logger.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{rdb: rdb, log: log}
}

// Broadcast publica un evento en el canal dado (prefijado siteproc:).
func (b *RedisBroadcaster) Broadcast(ctx context.Context, channel, event string, payload any) {
	raw, err := json.Marshal(envelope{
		Channel: channel,
		Event:   event,
		Payload: payload,
		At:      time.Now().UTC(),
	})
	if err != nil {
		b.log.Error().Err(err).Str("channel", channel).Msg("serializar evento realtime")
		return
	}
	if err := b.rdb.Publish(ctx, "siteproc:"+channel, raw).Err(); err != nil {
		b.log.Warn().Err(err).Str("channel", channel).Msg("publicar evento realtime")
	}
}

// DashboardUpdated notifica que los agregados del tenant cambiaron y el
// dashboard debe refrescarse.
func (b *RedisBroadcaster) DashboardUpdated(ctx context.Context, companyID string) {
	b.Broadcast(ctx, "dashboard:"+companyID, "refresh", nil)
}
