package repository

import "github.com/tu-usuario/erp-lite/internal/domain/entity"

// SessionRepository define el puerto de persistencia para las sesiones de servidor.
// GetByID retorna (nil, nil) si la sesión no existe: ausencia no es error
// (petición aún no autenticada). Delete de un id inexistente tampoco es error.
type SessionRepository interface {
	Create(session *entity.Session) error
	GetByID(id string) (*entity.Session, error)
	Delete(id string) error
	DeleteByUser(userID string) error
}
