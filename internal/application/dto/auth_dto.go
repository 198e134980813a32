package dto

import "time"

// SignupRequest entrada para registro (password en texto, se hashea en use case).
// El rol no se acepta del cliente: todo registro entra como staff.
type SignupRequest struct {
	Name      string `json:"name" validate:"omitempty,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	CompanyID string `json:"company_id" validate:"required,uuid"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SetSessionRequest entrada para crear una sesión a partir de tokens ya emitidos
// (flujo de callback externo; equivalente al endpoint "session-set").
type SetSessionRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds, 0 = desconocido
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResult salida interna del use case de login: el handler pone SessionID
// en la cookie y nunca lo serializa en el cuerpo.
type LoginResult struct {
	SessionID string
	ExpiresAt *time.Time
	User      UserResponse
}

// MeResponse usuario actual + módulos visibles para su rol.
type MeResponse struct {
	User    UserResponse `json:"user"`
	Modules []string     `json:"modules"`
}
