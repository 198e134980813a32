package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appsession "github.com/tu-usuario/erp-lite/internal/application/session"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
)

var _ appsession.Cache = (*SessionCache)(nil)

// SessionCache cache de sesiones validadas sobre Redis con TTL corto.
// Reduce un round-trip a PostgreSQL por petición protegida. Un TTL corto
// acota la ventana en que una sesión revocada sigue resolviendo.
type SessionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionCache construye el cache sobre un cliente Redis ya conectado.
func NewSessionCache(rdb *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{rdb: rdb, ttl: ttl}
}

func key(id string) string {
	return "session:" + id
}

// Get busca la sesión en Redis. Retorna (nil, nil) en miss.
func (c *SessionCache) Get(ctx context.Context, id string) (*entity.Session, error) {
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get session: %w", err)
	}
	var s entity.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("cache decode session: %w", err)
	}
	return &s, nil
}

// Set guarda la sesión con el TTL configurado.
func (c *SessionCache) Set(ctx context.Context, session *entity.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("cache encode session: %w", err)
	}
	if err := c.rdb.Set(ctx, key(session.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set session: %w", err)
	}
	return nil
}

// Delete invalida la sesión en el cache (cierre de sesión).
func (c *SessionCache) Delete(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete session: %w", err)
	}
	return nil
}
