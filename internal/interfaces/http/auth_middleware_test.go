package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Bodega-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testActorID   = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "bodega-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con el AuthMiddleware y un
// handler dummy que devuelve el ActorID extraído del token.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":       true,
				"actor_id": apphttp.GetActorID(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT válido firmado con el secreto de test.
func tokenFor(t *testing.T, actorID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, actorID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Token válido → pasa el middleware y el handler ve el ActorID.
func TestAuthMiddleware_TokenValidoExtraeActor(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, tokenFor(t, testActorID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, testActorID, payload["actor_id"])
}

// Sin header Authorization → 401.
func TestAuthMiddleware_SinHeaderRechaza(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Formatos de header inválidos → 401.
func TestAuthMiddleware_FormatoInvalidoRechaza(t *testing.T) {
	app := buildTestApp()

	for _, header := range []string{
		"token-sin-esquema",
		"Basic dXNlcjpwYXNz",
		"Bearer ",
	} {
		resp := doRequest(t, app, header)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

// Token firmado con otro secreto → 401.
func TestAuthMiddleware_FirmaIncorrectaRechaza(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate("otro-secreto", testActorID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token expirado → 401.
func TestAuthMiddleware_TokenExpiradoRechaza(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testActorID, testIssuer, -5)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests pkg/jwt
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerarYParsear(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testActorID, testIssuer, testExpMin)
	require.NoError(t, err)

	actorID, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testActorID, actorID)
}

func TestJWT_SecretoVacioFalla(t *testing.T) {
	_, err := pkgjwt.Generate("", testActorID, testIssuer, testExpMin)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "cualquier-token")
	assert.Error(t, err)
}
