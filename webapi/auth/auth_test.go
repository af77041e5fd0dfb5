package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/ledger/config"
	"github.com/amirasaad/ledger/internal/fixtures"
	"github.com/amirasaad/ledger/pkg/dto"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, *fixtures.MemoryUoW) {
	t.Helper()
	uow := fixtures.NewMemoryUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.JwtConfig{Secret: "test-secret", Expiry: time.Hour}
	authSvc := authsvc.NewService(uow, cfg, logger)
	app := fiber.New()
	Routes(app, authSvc)
	return app, uow
}

func seedUser(t *testing.T, uow *fixtures.MemoryUoW, email, password string) {
	t.Helper()
	repo, err := uow.UserRepository()
	require.NoError(t, err)
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), dto.UserCreate{
		ID:       uuid.New(),
		Email:    email,
		Password: hash,
		Name:     "Jo",
	}))
}

func login(t *testing.T, app *fiber.App, email, password string) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(fiber.Map{"email": email, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestLoginEndpoint(t *testing.T) {
	app, uow := setupApp(t)
	seedUser(t, uow, "jo@example.com", "correct horse")

	status, body := login(t, app, "jo@example.com", "correct horse")
	require.Equal(t, fiber.StatusOK, status)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["accessToken"])
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	app, uow := setupApp(t)
	seedUser(t, uow, "jo@example.com", "correct horse")

	status, _ := login(t, app, "jo@example.com", "wrong")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// Unknown email looks identical to a wrong password.
	status, _ = login(t, app, "nobody@example.com", "whatever")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginEndpointValidation(t *testing.T) {
	app, _ := setupApp(t)

	status, _ := login(t, app, "not-an-email", "pw")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = login(t, app, "jo@example.com", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
