package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"dejargonizer/internal/api/handlers"
	"dejargonizer/internal/dto"
	"dejargonizer/internal/repository"
	"dejargonizer/internal/service"
	"dejargonizer/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticGenerator struct{}

func (staticGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return `{"plain_summary": "A simple document."}`, nil
}

type echoTranslator struct{}

func (echoTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return text, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()

	users := repository.NewMemoryUserRepository()
	docs := repository.NewMemoryDocumentRepository()
	analyses := repository.NewMemoryAnalysisRepository()

	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour)

	authService := service.NewAuthService(users, jwtManager, logger)
	extractService := service.NewExtractService("eng", logger)
	docService := service.NewDocumentService(docs, analyses, extractService, logger)
	analysisService := service.NewAnalysisService(docs, analyses, staticGenerator{}, logger)
	translateService := service.NewTranslateService(echoTranslator{}, logger)

	return SetupRouter(
		handlers.NewAuthHandler(authService, logger),
		handlers.NewDocumentHandler(docService, logger),
		handlers.NewAnalysisHandler(analysisService, logger),
		handlers.NewTranslateHandler(translateService, logger),
		jwtManager,
		logger,
	)
}

func registerUser(t *testing.T, app *fiber.App) string {
	t.Helper()
	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "router@example.com",
		Password: "password123",
		Name:     "Router Test",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var authResp dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&authResp))
	require.NotEmpty(t, authResp.Token)
	return authResp.Token
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRouter_LanguagesIsPublic(t *testing.T) {
	app := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/languages", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.LanguagesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "English", body.Languages["en"])
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/documents"},
		{http.MethodGet, "/api/auth/verify"},
		{http.MethodPost, "/api/analyze/" + uuid.NewString()},
		{http.MethodGet, "/api/analysis/" + uuid.NewString()},
		{http.MethodPost, "/api/translate"},
	} {
		req, _ := http.NewRequest(route.method, route.path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestRouter_RegisterAndVerify(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.VerifyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Valid)
	assert.Equal(t, "router@example.com", body.User.Email)
}

func TestRouter_AnalyzeUnknownDocumentIs404(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app)

	req, _ := http.NewRequest(http.MethodPost, "/api/analyze/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_TranslateValidation(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app)

	body, _ := json.Marshal(dto.TranslateRequest{Text: "", TargetLang: "es"})
	req, _ := http.NewRequest(http.MethodPost, "/api/translate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRouter_EmptyBearerTokenRejected(t *testing.T) {
	app := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer ")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
