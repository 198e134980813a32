package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-lite/internal/application/auth"
	"github.com/tu-usuario/erp-lite/internal/application/dto"
	appsession "github.com/tu-usuario/erp-lite/internal/application/session"
	"github.com/tu-usuario/erp-lite/internal/domain"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/pkg/token"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.Session{}}
}

func (r *fakeSessionRepo) Create(s *entity.Session) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(id string) (*entity.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Delete(id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteByUser(userID string) error {
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func buildAuthUC() (*auth.AuthUseCase, *fakeUserRepo, *fakeSessionRepo) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	uc := auth.NewAuthUseCase(userRepo, appsession.NewBridge(sessionRepo, nil), auth.TokenConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "erp-lite-test",
	})
	return uc, userRepo, sessionRepo
}

func signupUser(t *testing.T, uc *auth.AuthUseCase, email, password string) *dto.UserResponse {
	t.Helper()
	user, err := uc.Signup(dto.SignupRequest{
		Email:     email,
		Password:  password,
		CompanyID: testCompanyID,
	})
	require.NoError(t, err)
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// Signup
// ──────────────────────────────────────────────────────────────────────────────

// El registro hashea el password, entra con rol staff y status active.
func TestSignup(t *testing.T) {
	uc, userRepo, _ := buildAuthUC()

	out := signupUser(t, uc, "ana@example.com", "secreto-fuerte")
	assert.Equal(t, entity.RoleStaff, out.Role, "todo registro entra como staff")
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "ana@example.com", out.Name, "sin nombre, cae al email")

	stored, _ := userRepo.FindByEmail("ana@example.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto-fuerte", stored.PasswordHash, "el password nunca se guarda plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto-fuerte")))
}

// Email repetido → ErrEmailAlreadyExists.
func TestSignup_EmailDuplicado(t *testing.T) {
	uc, _, _ := buildAuthUC()
	signupUser(t, uc, "ana@example.com", "secreto-fuerte")

	_, err := uc.Signup(dto.SignupRequest{
		Email:     "ana@example.com",
		Password:  "otro-password",
		CompanyID: testCompanyID,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

// Login correcto crea una sesión de servidor con tokens válidos dentro.
func TestLogin_CreaSesion(t *testing.T) {
	uc, _, sessionRepo := buildAuthUC()
	signupUser(t, uc, "ana@example.com", "secreto-fuerte")

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "secreto-fuerte",
	})
	require.NoError(t, err)
	assert.Len(t, out.SessionID, 48)
	require.NotNil(t, out.ExpiresAt)

	s, err := sessionRepo.GetByID(out.SessionID)
	require.NoError(t, err)
	require.NotNil(t, s, "el login debe dejar un registro de sesión")

	// El access token guardado debe validar y llevar los claims del usuario.
	userID, companyID, role, err := token.Parse(testSecret, s.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, testCompanyID, companyID)
	assert.Equal(t, entity.RoleStaff, role)
}

// Credenciales inválidas: no se crea ninguna sesión.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, sessionRepo := buildAuthUC()
	signupUser(t, uc, "ana@example.com", "secreto-fuerte")

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "password-equivocado",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@example.com",
		Password: "lo-que-sea",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.Empty(t, sessionRepo.sessions, "con credenciales inválidas no debe quedar sesión")
}

// Cuenta no activa → ErrForbidden.
func TestLogin_CuentaInactiva(t *testing.T) {
	uc, userRepo, _ := buildAuthUC()
	out := signupUser(t, uc, "ana@example.com", "secreto-fuerte")
	userRepo.byID[out.ID].Status = "suspended"
	userRepo.byEmail["ana@example.com"].Status = "suspended"

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "secreto-fuerte",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetSession / Signout / Me
// ──────────────────────────────────────────────────────────────────────────────

// SetSession con tokens ya emitidos crea sesión; con token inválido, 401.
func TestSetSession(t *testing.T) {
	uc, _, sessionRepo := buildAuthUC()
	user := signupUser(t, uc, "ana@example.com", "secreto-fuerte")

	pair, err := token.Generate(testSecret, user.ID, testCompanyID, entity.RoleStaff, "erp-lite-test", 60)
	require.NoError(t, err)

	out, err := uc.SetSession(context.Background(), dto.SetSessionRequest{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.Unix(),
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	assert.NotEmpty(t, sessionRepo.sessions)

	_, err = uc.SetSession(context.Background(), dto.SetSessionRequest{
		AccessToken:  "no-es-un-jwt",
		RefreshToken: "da-igual",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Signout elimina la sesión y es idempotente.
func TestSignout(t *testing.T) {
	uc, _, sessionRepo := buildAuthUC()
	signupUser(t, uc, "ana@example.com", "secreto-fuerte")

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "secreto-fuerte",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Signout(context.Background(), out.SessionID))
	assert.Empty(t, sessionRepo.sessions)
	require.NoError(t, uc.Signout(context.Background(), out.SessionID), "signout repetido no debe fallar")
}

// Me devuelve el usuario y los módulos de su rol (staff sin dashboard/finance).
func TestMe(t *testing.T) {
	uc, _, _ := buildAuthUC()
	user := signupUser(t, uc, "ana@example.com", "secreto-fuerte")

	out, err := uc.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, out.User.Email)
	assert.NotContains(t, out.Modules, "dashboard")
	assert.NotContains(t, out.Modules, "finance")
	assert.Contains(t, out.Modules, "inventory")

	_, err = uc.Me("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
