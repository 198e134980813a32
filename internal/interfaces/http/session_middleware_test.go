package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsession "github.com/tu-usuario/erp-lite/internal/application/session"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/rbac"
	apphttp "github.com/tu-usuario/erp-lite/internal/interfaces/http"
	"github.com/tu-usuario/erp-lite/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testCompanyID  = "00000000-0000-0000-0000-000000000002"
	testIssuer     = "erp-lite-test"
	testCookieName = "SESSION_ID"
)

// fakeSessionRepo repositorio de sesiones en memoria para los tests HTTP.
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

// buildProtectedApp construye una app Fiber con:
//   - SessionMiddleware que resuelve la cookie contra el puente
//   - RequireModule sobre el módulo dado (si no está vacío)
//   - Un handler dummy que devuelve la identidad resuelta
func buildProtectedApp(bridge *appsession.Bridge, module string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.SessionMiddleware(bridge, testJWTSecret, testCookieName)}
	if module != "" {
		handlers = append(handlers, apphttp.RequireModule(module))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

// sessionForRole crea una sesión en el puente con un access token del rol dado
// y devuelve el id de sesión para la cookie.
func sessionForRole(t *testing.T, bridge *appsession.Bridge, role string) string {
	t.Helper()
	pair, err := token.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, 60)
	require.NoError(t, err)
	id, err := bridge.Create(context.Background(), testUserID, pair.AccessToken, pair.RefreshToken, &pair.ExpiresAt)
	require.NoError(t, err)
	return id
}

// doRequest lanza GET /protected con la cookie de sesión indicada.
func doRequest(t *testing.T, app *fiber.App, sessionID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionID})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: cookie con sesión válida → identidad resuelta en locals.
func TestSessionMiddleware_SesionValida(t *testing.T) {
	bridge := appsession.NewBridge(newFakeSessionRepo(), nil)
	app := buildProtectedApp(bridge, "")
	id := sessionForRole(t, bridge, entity.RoleManager)

	resp := doRequest(t, app, id)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleManager, body["role"])
}

// Caso 2: sin cookie → 401.
func TestSessionMiddleware_SinCookie(t *testing.T) {
	bridge := appsession.NewBridge(newFakeSessionRepo(), nil)
	app := buildProtectedApp(bridge, "")

	resp := doRequest(t, app, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: cookie con id que no resuelve (sesión borrada) → 401.
func TestSessionMiddleware_SesionInexistente(t *testing.T) {
	bridge := appsession.NewBridge(newFakeSessionRepo(), nil)
	app := buildProtectedApp(bridge, "")

	resp := doRequest(t, app, "id-que-no-existe")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 4: tras signout (delete de la sesión) la misma cookie deja de servir.
func TestSessionMiddleware_CookieViejaTrasSignout(t *testing.T) {
	bridge := appsession.NewBridge(newFakeSessionRepo(), nil)
	app := buildProtectedApp(bridge, "")
	id := sessionForRole(t, bridge, entity.RoleAdmin)

	resp := doRequest(t, app, id)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, bridge.Delete(context.Background(), id))

	resp = doRequest(t, app, id)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"después del signout la cookie vieja no debe resolver identidad")
}

// Caso 5: sesión con expiración pasada → 401 aunque el registro exista.
func TestSessionMiddleware_SesionExpirada(t *testing.T) {
	repo := newFakeSessionRepo()
	bridge := appsession.NewBridge(repo, nil)
	app := buildProtectedApp(bridge, "")

	pair, err := token.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleAdmin, testIssuer, 60)
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	id, err := bridge.Create(context.Background(), testUserID, pair.AccessToken, pair.RefreshToken, &past)
	require.NoError(t, err)

	resp := doRequest(t, app, id)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireModule
// ──────────────────────────────────────────────────────────────────────────────

// staff no ve finance (403); manager sí (200).
func TestRequireModule_StaffSinFinance(t *testing.T) {
	bridge := appsession.NewBridge(newFakeSessionRepo(), nil)
	app := buildProtectedApp(bridge, rbac.ModuleFinance)

	resp := doRequest(t, app, sessionForRole(t, bridge, entity.RoleStaff))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, sessionForRole(t, bridge, entity.RoleManager))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// staff tampoco ve dashboard.
func TestRequireModule_StaffSinDashboard(t *testing.T) {
	bridge := appsession.NewBridge(newFakeSessionRepo(), nil)
	app := buildProtectedApp(bridge, rbac.ModuleDashboard)

	resp := doRequest(t, app, sessionForRole(t, bridge, entity.RoleStaff))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Las rutas de finanzas exigen admin o manager.
func TestRequireRole_SoloAdminYManager(t *testing.T) {
	bridge := appsession.NewBridge(newFakeSessionRepo(), nil)
	app := fiber.New()
	app.Get("/finance",
		apphttp.SessionMiddleware(bridge, testJWTSecret, testCookieName),
		apphttp.RequireRole(entity.RoleAdmin, entity.RoleManager),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)

	resp := doRequestPath(t, app, "/finance", sessionForRole(t, bridge, entity.RoleStaff))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequestPath(t, app, "/finance", sessionForRole(t, bridge, entity.RoleAdmin))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// doRequestPath variante de doRequest para rutas arbitrarias.
func doRequestPath(t *testing.T, app *fiber.App, path, sessionID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionID})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
