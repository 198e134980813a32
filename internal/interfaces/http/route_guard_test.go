package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/erp-lite/internal/interfaces/http"
)

// buildGuardedApp construye una app con el guard de páginas y rutas dummy.
func buildGuardedApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RouteGuard(testCookieName))
	for _, path := range []string{"/", "/login", "/signup", "/dashboard", "/inventory", "/finance"} {
		p := path
		app.Get(p, func(c *fiber.Ctx) error {
			return c.SendString("page:" + p)
		})
	}
	app.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func getPage(t *testing.T, app *fiber.App, path string, withCookie bool) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: "alguna-sesion"})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Página protegida sin cookie → 302 a /login con la ruta original en redirect.
func TestRouteGuard_SinCookieRedirigeALogin(t *testing.T) {
	app := buildGuardedApp()

	resp := getPage(t, app, "/dashboard", false)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fdashboard", resp.Header.Get("Location"),
		"el destino original debe viajar en el query param redirect")
}

// Página protegida con cookie → pasa (la validez se verifica en la API).
func TestRouteGuard_ConCookiePasa(t *testing.T) {
	app := buildGuardedApp()

	resp := getPage(t, app, "/inventory", true)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// /login y /signup con cookie → 302 a /dashboard.
func TestRouteGuard_LoginConCookieRedirigeADashboard(t *testing.T) {
	app := buildGuardedApp()

	for _, path := range []string{"/login", "/signup"} {
		resp := getPage(t, app, path, true)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"), path)
	}
}

// Páginas públicas sin cookie pasan; /api no pasa por el guard.
func TestRouteGuard_PublicasYAPI(t *testing.T) {
	app := buildGuardedApp()

	for _, path := range []string{"/", "/login", "/signup", "/api/ping"} {
		resp := getPage(t, app, path, false)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
