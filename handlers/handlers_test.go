package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"showcase/api/logger"
	"showcase/api/models"
	"showcase/api/requestdata"
	"showcase/api/store"
	"showcase/api/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUsers struct {
	mu     sync.Mutex
	byMail map[string]*models.User
	err    error
}

func newMemUsers() *memUsers {
	return &memUsers{byMail: map[string]*models.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, email string, hashed []byte, role models.Role) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.byMail[email]; ok {
		return nil, fmt.Errorf("user %s: %w", email, store.ErrConflict)
	}
	u := &models.User{ID: len(m.byMail) + 1, Email: email, HashedPassword: hashed, Role: role}
	m.byMail[email] = u
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byMail[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, store.ErrNotFound)
	}
	return u, nil
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// withInfo installs a fixed caller on the request context.
func withInfo(info requestdata.Info) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(requestdata.WithInfo(c.Request.Context(), info))
		c.Next()
	}
}

func newAuth(t *testing.T) (*AuthHandlers, *memUsers, *utils.JWTManager) {
	t.Helper()
	users := newMemUsers()
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	h := NewAuthHandlers(users, jwt, false, logger.Nop())
	require.NoError(t, h.EnsureSuperAdmin(context.Background(), " Root@Example.com ", "correct horse"))
	return h, users, jwt
}

func TestLogin(t *testing.T) {
	h, _, jwt := newAuth(t)
	router := gin.New()
	router.POST("/api/login", h.Login)

	tests := []struct {
		name     string
		body     interface{}
		wantCode int
	}{
		{name: "success", body: models.LoginRequest{Email: "root@example.com", Password: "correct horse"}, wantCode: http.StatusOK},
		{name: "wrong password", body: models.LoginRequest{Email: "root@example.com", Password: "nope"}, wantCode: http.StatusUnauthorized},
		{name: "unknown user", body: models.LoginRequest{Email: "who@example.com", Password: "correct horse"}, wantCode: http.StatusUnauthorized},
		{name: "malformed", body: map[string]string{"email": "not-an-email"}, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/login", jsonBody(t, tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp struct {
				Token string `json:"token"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			claims, err := jwt.Validate(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, models.RoleSuperAdmin, claims.Role)
			assert.Contains(t, w.Header().Get("Set-Cookie"), "jwt_token=")
			assert.NotContains(t, w.Body.String(), "correct horse")
		})
	}
}

func TestLoginStoreFailure(t *testing.T) {
	h, users, _ := newAuth(t)
	users.err = errors.New("connection refused")
	router := gin.New()
	router.POST("/api/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", jsonBody(t, models.LoginRequest{Email: "root@example.com", Password: "x"}))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _, _ := newAuth(t)
	router := gin.New()
	router.POST("/api/logout", h.Logout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestCreateUser(t *testing.T) {
	body := models.CreateUserRequest{Email: "ed@example.com", Password: "long enough"}
	tests := []struct {
		name     string
		caller   requestdata.Info
		wantCode int
	}{
		{name: "api key", caller: requestdata.Info{Superuser: true}, wantCode: http.StatusCreated},
		{name: "superadmin", caller: requestdata.Info{Claims: &utils.Claims{UserID: 1, Role: models.RoleSuperAdmin}}, wantCode: http.StatusCreated},
		{name: "editor", caller: requestdata.Info{Claims: &utils.Claims{UserID: 2, Role: models.RoleEditor}}, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, users, _ := newAuth(t)
			router := gin.New()
			router.POST("/api/admin/users", withInfo(tt.caller), h.CreateUser)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/users", jsonBody(t, body)))
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode != http.StatusCreated {
				return
			}
			u, err := users.GetUserByEmail(context.Background(), "ed@example.com")
			require.NoError(t, err)
			assert.Equal(t, models.RoleViewer, u.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword(u.HashedPassword, []byte("long enough")))

			w = httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/users", jsonBody(t, body)))
			assert.Equal(t, http.StatusConflict, w.Code)
		})
	}
}

func TestEnsureSuperAdminIsIdempotent(t *testing.T) {
	h, users, _ := newAuth(t)
	require.NoError(t, h.EnsureSuperAdmin(context.Background(), "root@example.com", "another"))
	assert.Len(t, users.byMail, 1)

	require.NoError(t, NewAuthHandlers(newMemUsers(), nil, false, logger.Nop()).EnsureSuperAdmin(context.Background(), "root@example.com", ""))
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	router := gin.New()
	router.GET("/ok", Health(map[string]Pinger{"postgres": stubPinger{}, "clickhouse": stubPinger{}}))
	router.GET("/degraded", Health(map[string]Pinger{"postgres": stubPinger{}, "clickhouse": stubPinger{errors.New("down")}}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/degraded", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"clickhouse":"down"`)
}

type recordingTracker struct {
	mu     sync.Mutex
	pages  []models.TrackPageViewInput
	events []models.TrackEventInput
	info   requestdata.Info
	err    error
}

func (r *recordingTracker) TrackPageView(_ context.Context, info requestdata.Info, in models.TrackPageViewInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.info = info
	r.pages = append(r.pages, in)
	return r.err
}

func (r *recordingTracker) TrackProductView(context.Context, requestdata.Info, models.TrackProductViewInput) error {
	return r.err
}

func (r *recordingTracker) TrackEvent(_ context.Context, _ requestdata.Info, in models.TrackEventInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, in)
	return r.err
}

func TestTrackBatch(t *testing.T) {
	tracker := &recordingTracker{}
	h := NewTrackHandlers(tracker, logger.Nop())
	router := gin.New()
	router.POST("/api/track", withInfo(requestdata.Info{IP: "203.0.113.1"}), h.TrackBatch)

	body := `[
		{"type": "page_view", "pageView": {"path": "/about", "durationSeconds": 12}},
		{"type": "event", "event": {"eventName": "cta_click", "properties": {"button": "quote"}}},
		{"type": "event"}
	]`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(body)))

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"accepted": 2, "rejected": 1}`, w.Body.String())
	require.Len(t, tracker.pages, 1)
	assert.Equal(t, "/about", tracker.pages[0].Path)
	assert.Equal(t, "203.0.113.1", tracker.info.IP)
	require.Len(t, tracker.events, 1)
	assert.Equal(t, "quote", tracker.events[0].Properties["button"])
}

func TestTrackBatchRejectsBadInput(t *testing.T) {
	h := NewTrackHandlers(&recordingTracker{}, logger.Nop())
	router := gin.New()
	router.POST("/api/track", h.TrackBatch)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(`[{"type": "pageview"}]`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	big := "[" + strings.TrimSuffix(strings.Repeat(`{"type":"event","event":{"eventName":"x"}},`, maxBatchSize+1), ",") + "]"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(big)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
