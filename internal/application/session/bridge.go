package session

import (
	"context"
	"time"

	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/repository"
	"github.com/tu-usuario/erp-lite/pkg/token"
)

// sessionIDBytes bytes de entropía del id opaco (48 caracteres hex en la cookie).
const sessionIDBytes = 24

// Cache puerto opcional de cache de sesiones validadas (TTL corto).
// Get retorna (nil, nil) en miss. Un error de cache nunca tumba la petición:
// el puente cae al repositorio.
type Cache interface {
	Get(ctx context.Context, id string) (*entity.Session, error)
	Set(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id string) error
}

// Bridge es el puente de sesiones: mapea el id opaco que viaja en la cookie al
// registro servidor con los tokens del usuario. Toda petición protegida pasa
// por aquí antes de resolver identidad.
type Bridge struct {
	repo  repository.SessionRepository
	cache Cache // nil = sin cache
}

// NewBridge construye el puente. cache puede ser nil.
func NewBridge(repo repository.SessionRepository, cache Cache) *Bridge {
	return &Bridge{repo: repo, cache: cache}
}

// Create genera un id opaco aleatorio, persiste el registro y devuelve el id
// para la cookie. Sin reintento de unicidad: la entropía de 24 bytes lo hace
// innecesario en la práctica.
func (b *Bridge) Create(ctx context.Context, userID, accessToken, refreshToken string, expiresAt *time.Time) (string, error) {
	s := &entity.Session{
		ID:           token.NewOpaque(sessionIDBytes),
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now(),
	}
	if err := b.repo.Create(s); err != nil {
		return "", err
	}
	return s.ID, nil
}

// Get resuelve un id de sesión. Ausencia es un resultado válido (nil, nil):
// petición aún no autenticada. Consulta primero el cache y lo llena en miss.
func (b *Bridge) Get(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return nil, nil
	}
	if b.cache != nil {
		if s, err := b.cache.Get(ctx, id); err == nil && s != nil {
			return s, nil
		}
	}
	s, err := b.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s != nil && b.cache != nil {
		_ = b.cache.Set(ctx, s)
	}
	return s, nil
}

// Delete elimina la sesión y la invalida en el cache. Idempotente: borrar un
// id inexistente no es error.
func (b *Bridge) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if b.cache != nil {
		_ = b.cache.Delete(ctx, id)
	}
	return b.repo.Delete(id)
}
