package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpiface "github.com/dvintimilla/andina-api/internal/interfaces/http"
	pkgjwt "github.com/dvintimilla/andina-api/pkg/jwt"
)

const testSecret = "secreto-de-test"

// newAuthApp arma una app mínima con el middleware y una ruta que devuelve el
// UserID extraído de los Locals.
func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/protegida", httpiface.AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(httpiface.GetUserID(c))
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// Caso 1: sin header Authorization.
func TestAuthMiddleware_SinHeaderRechaza(t *testing.T) {
	resp := doRequest(t, newAuthApp(), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Caso 2: header sin el prefijo Bearer.
func TestAuthMiddleware_FormatoInvalidoRechaza(t *testing.T) {
	resp := doRequest(t, newAuthApp(), "Basic abc123")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: Bearer con token vacío.
func TestAuthMiddleware_TokenVacioRechaza(t *testing.T) {
	resp := doRequest(t, newAuthApp(), "Bearer ")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Caso 4: token firmado con otro secret.
func TestAuthMiddleware_FirmaIncorrectaRechaza(t *testing.T) {
	token, err := pkgjwt.Generate("otro-secreto", "user-1", "andina-api", 60)
	require.NoError(t, err)

	resp := doRequest(t, newAuthApp(), "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token expirado.
func TestAuthMiddleware_TokenExpiradoRechaza(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, "user-1", "andina-api", -5)
	require.NoError(t, err)

	resp := doRequest(t, newAuthApp(), "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: token válido pasa y el handler ve el UserID.
func TestAuthMiddleware_TokenValidoExponeUserID(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, "user-42", "andina-api", 60)
	require.NoError(t, err)

	resp := doRequest(t, newAuthApp(), "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "user-42", string(body[:n]))
}
