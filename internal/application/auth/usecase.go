package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/erp-lite/internal/application/dto"
	appsession "github.com/tu-usuario/erp-lite/internal/application/session"
	"github.com/tu-usuario/erp-lite/internal/domain"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/rbac"
	"github.com/tu-usuario/erp-lite/internal/domain/repository"
	"github.com/tu-usuario/erp-lite/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// TokenConfig configuración para la emisión de access tokens.
type TokenConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, sesión y signout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions *appsession.Bridge
	tokenCfg TokenConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions *appsession.Bridge, tokenCfg TokenConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, tokenCfg: tokenCfg}
}

// Signup crea un usuario: hashea password con bcrypt y persiste con rol staff.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Signup(in dto.SignupRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleStaff, // todo registro entra como staff
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, emite el par de tokens y crea la sesión de
// servidor. El handler pone el SessionID resultante en la cookie; con
// credenciales inválidas no se crea ningún registro de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	pair, err := token.Generate(uc.tokenCfg.Secret, user.ID, user.CompanyID, user.Role, uc.tokenCfg.Issuer, uc.tokenCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	expiresAt := pair.ExpiresAt
	sessionID, err := uc.sessions.Create(ctx, user.ID, pair.AccessToken, pair.RefreshToken, &expiresAt)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{
		SessionID: sessionID,
		ExpiresAt: &expiresAt,
		User:      *toUserResponse(user),
	}, nil
}

// SetSession crea una sesión a partir de tokens ya emitidos (callback externo).
// Valida el access token antes de persistir; token inválido = 401 en el handler.
func (uc *AuthUseCase) SetSession(ctx context.Context, in dto.SetSessionRequest) (*dto.LoginResult, error) {
	userID, _, _, err := token.Parse(uc.tokenCfg.Secret, in.AccessToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	var expiresAt *time.Time
	if in.ExpiresAt > 0 {
		t := time.Unix(in.ExpiresAt, 0)
		expiresAt = &t
	}
	sessionID, err := uc.sessions.Create(ctx, user.ID, in.AccessToken, in.RefreshToken, expiresAt)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{
		SessionID: sessionID,
		ExpiresAt: expiresAt,
		User:      *toUserResponse(user),
	}, nil
}

// Signout elimina la sesión (idempotente: id inexistente no es error).
func (uc *AuthUseCase) Signout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// Me devuelve el usuario actual y los módulos visibles para su rol.
// La identidad viene resuelta por petición (middleware), nunca de estado global.
func (uc *AuthUseCase) Me(userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.MeResponse{
		User:    *toUserResponse(user),
		Modules: rbac.ModulesForRole(user.Role),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
