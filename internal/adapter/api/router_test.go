package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/metrics"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/repository/memory"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/seed"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"
)

var apiNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// testServer stands up the full stack on in-memory stores with a fixed
// clock and three demo accounts hashed at minimum cost.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return apiNow }

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	users := []domain.User{
		{ID: "u-admin", Email: "admin@test.com", Role: domain.RoleAdmin, PasswordHash: string(hash)},
		{ID: "u-analyst", Email: "analyst@test.com", Role: domain.RoleAnalyst, PasswordHash: string(hash)},
		{ID: "u-viewer", Email: "viewer@test.com", Role: domain.RoleViewer, PasswordHash: string(hash)},
	}

	events := memory.NewEventRepository(logger)
	events.Init(seed.Events(seed.DefaultSeed, seed.DefaultCount, apiNow))
	userRepo := memory.NewUserRepository(users)
	sessions := memory.NewSessionRepository(now)

	auth := usecase.NewAuthService(userRepo, sessions, time.Hour, logger)
	svc := Services{
		Auth:     auth,
		Events:   usecase.NewEventService(events, logger, now),
		Insights: usecase.NewInsightService(events, logger, now),
		Users:    usecase.NewUserService(userRepo, logger),
		Now:      now,
	}

	cfg := Config{
		// High enough that no test trips the limiter.
		LoginRate:  rate.Limit(1000),
		LoginBurst: 1000,
	}
	router := NewRouter(cfg, svc, logger, metrics.New(prometheus.NewRegistry()))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// client returns an http.Client with a cookie jar, optionally logged in.
func client(t *testing.T, srv *httptest.Server, email string) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c := &http.Client{Jar: jar}

	if email == "" {
		return c
	}

	body, _ := json.Marshal(map[string]string{"email": email, "password": "password"})
	resp, err := c.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login as %s", email)
	return c
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	envelope := decodeEnvelope(t, resp)
	errObj, ok := envelope["error"].(map[string]any)
	require.True(t, ok, "expected an error envelope, got %v", envelope)
	code, _ := errObj["code"].(string)
	return code
}

func TestLogin(t *testing.T) {
	srv := testServer(t)

	t.Run("bad credentials", func(t *testing.T) {
		c := client(t, srv, "")
		body, _ := json.Marshal(map[string]string{"email": "admin@test.com", "password": "wrong"})
		resp, err := c.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, resp))
	})

	t.Run("missing fields", func(t *testing.T) {
		c := client(t, srv, "")
		resp, err := c.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader([]byte(`{}`)))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
	})

	t.Run("success sets session cookie and me resolves", func(t *testing.T) {
		c := client(t, srv, "viewer@test.com")

		resp, err := c.Get(srv.URL + "/api/auth/me")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		data := envelope["data"].(map[string]any)
		user := data["user"].(map[string]any)
		assert.Equal(t, "viewer@test.com", user["email"])
		assert.Equal(t, "Viewer", user["role"])
	})

	t.Run("logout invalidates the session", func(t *testing.T) {
		c := client(t, srv, "viewer@test.com")

		resp, err := c.Post(srv.URL+"/api/auth/logout", "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = c.Get(srv.URL + "/api/auth/me")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestEventEndpoints(t *testing.T) {
	srv := testServer(t)

	t.Run("anonymous list is unauthenticated", func(t *testing.T) {
		c := client(t, srv, "")
		resp, err := c.Get(srv.URL + "/api/events/")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
	})

	t.Run("viewer lists the seeded collection", func(t *testing.T) {
		c := client(t, srv, "viewer@test.com")
		resp, err := c.Get(srv.URL + "/api/events/?pageSize=100")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		data := envelope["data"].(map[string]any)
		items := data["items"].([]any)
		assert.Len(t, items, seed.DefaultCount)
		meta := data["meta"].(map[string]any)
		assert.EqualValues(t, seed.DefaultCount, meta["total"])
	})

	t.Run("invalid query is a validation error", func(t *testing.T) {
		c := client(t, srv, "viewer@test.com")
		resp, err := c.Get(srv.URL + "/api/events/?severity=Critical&page=0")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
	})

	t.Run("viewer may not create", func(t *testing.T) {
		c := client(t, srv, "viewer@test.com")
		resp, err := c.Post(srv.URL+"/api/events/", "application/json", bytes.NewReader(eventPayload()))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
	})

	t.Run("analyst creates then reads back", func(t *testing.T) {
		c := client(t, srv, "analyst@test.com")
		resp, err := c.Post(srv.URL+"/api/events/", "application/json", bytes.NewReader(eventPayload()))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		created := envelope["data"].(map[string]any)["item"].(map[string]any)
		id := created["id"].(string)
		require.NotEmpty(t, id)

		resp, err = c.Get(srv.URL + "/api/events/" + id)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		envelope = decodeEnvelope(t, resp)
		got := envelope["data"].(map[string]any)["item"].(map[string]any)
		assert.Equal(t, "Checkout conversion dip", got["title"])
	})

	t.Run("unknown event id", func(t *testing.T) {
		c := client(t, srv, "viewer@test.com")
		resp, err := c.Get(srv.URL + "/api/events/evt-does-not-exist")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
	})

	t.Run("malformed body", func(t *testing.T) {
		c := client(t, srv, "analyst@test.com")
		resp, err := c.Post(srv.URL+"/api/events/", "application/json", bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
	})

	t.Run("analyst may not delete", func(t *testing.T) {
		c := client(t, srv, "analyst@test.com")
		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/events/evt-1", nil)
		resp, err := c.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("admin deletes", func(t *testing.T) {
		c := client(t, srv, "admin@test.com")
		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/events/evt-1", nil)
		resp, err := c.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})
}

func eventPayload() []byte {
	payload, _ := json.Marshal(map[string]any{
		"title":       "Checkout conversion dip",
		"description": "Observed decline in checkout conversion for mobile traffic.",
		"category":    "Sales",
		"severity":    "Medium",
		"location":    map[string]float64{"lat": 18.52, "lng": 73.85},
		"metrics":     map[string]float64{"score": 62, "confidence": 0.7, "impact": 150},
		"tags":        []string{"conversion", "checkout"},
	})
	return payload
}

func TestInsights(t *testing.T) {
	srv := testServer(t)
	c := client(t, srv, "viewer@test.com")

	resp, err := c.Get(srv.URL + "/api/insights")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]any)

	narrative := data["narrative"].([]any)
	assert.Len(t, narrative, 3)
	trend := data["trend"].([]any)
	assert.Len(t, trend, 14)
	assert.NotEmpty(t, data["categoryBreakdown"])
	assert.NotEmpty(t, data["severityBreakdown"])
}

func TestExport(t *testing.T) {
	srv := testServer(t)
	c := client(t, srv, "viewer@test.com")

	resp, err := c.Get(srv.URL + "/api/events/export?category=Fraud")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "insight-events_2025-06-15.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("id,title,")))
}

func TestUserManagement(t *testing.T) {
	srv := testServer(t)

	t.Run("admin lists users", func(t *testing.T) {
		c := client(t, srv, "admin@test.com")
		resp, err := c.Get(srv.URL + "/api/users/")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		users := envelope["data"].(map[string]any)["items"].([]any)
		assert.Len(t, users, 3)
		// Password hashes never leave the server.
		first := users[0].(map[string]any)
		_, leaked := first["passwordHash"]
		assert.False(t, leaked)
	})

	t.Run("viewer may not list users", func(t *testing.T) {
		c := client(t, srv, "viewer@test.com")
		resp, err := c.Get(srv.URL + "/api/users/")
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("role update round trip", func(t *testing.T) {
		c := client(t, srv, "admin@test.com")
		body := bytes.NewReader([]byte(`{"role":"Analyst"}`))
		req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/api/users/u-viewer/role", body)
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		updated := envelope["data"].(map[string]any)["item"].(map[string]any)
		assert.Equal(t, "Analyst", updated["role"])
	})

	t.Run("self role change conflicts", func(t *testing.T) {
		c := client(t, srv, "admin@test.com")
		body := bytes.NewReader([]byte(`{"role":"Viewer"}`))
		req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/api/users/u-admin/role", body)
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "SELF_ROLE_CHANGE", errorCode(t, resp))
	})

	t.Run("unknown role", func(t *testing.T) {
		c := client(t, srv, "admin@test.com")
		body := bytes.NewReader([]byte(`{"role":"Root"}`))
		req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/api/users/u-analyst/role", body)
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
