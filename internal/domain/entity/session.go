package entity

import "time"

// Session es el registro servidor de una sesión de navegador.
// El id opaco viaja en la cookie HTTP-only; los tokens nunca salen del servidor.
// ExpiresAt es nil cuando el backend de auth no informó expiración.
type Session struct {
	ID           string
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
	CreatedAt    time.Time
}

// Expired indica si la sesión tiene expiración conocida y ya pasó.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}
