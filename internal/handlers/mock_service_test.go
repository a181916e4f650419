package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nevochat/internal/models"
	"nevochat/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockCredentials struct {
	registerErr error
	verifyID    string
	verifyErr   error

	lastRegisterUsername string
	lastRegisterPassword string
	verifyCalls          int
}

func (m *mockCredentials) Register(_ context.Context, username, password string) error {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerErr
}

func (m *mockCredentials) Verify(_ context.Context, username, password string) (string, error) {
	m.verifyCalls++
	return m.verifyID, m.verifyErr
}

type mockSessions struct {
	token      string
	createErr  error
	resolved   *models.Session
	resolveErr error
	revoked    int64
	revokeErr  error

	lastCreateUserID   string
	lastCreateUsername string
	lastResolveToken   string
	lastRevokeUsername string
	revokeCalls        int
}

func (m *mockSessions) CreateSession(_ context.Context, userID, username string) (string, error) {
	m.lastCreateUserID = userID
	m.lastCreateUsername = username
	return m.token, m.createErr
}

func (m *mockSessions) ResolveSession(_ context.Context, token string) (*models.Session, error) {
	m.lastResolveToken = token
	return m.resolved, m.resolveErr
}

func (m *mockSessions) RevokeSessions(_ context.Context, username string) (int64, error) {
	m.revokeCalls++
	m.lastRevokeUsername = username
	return m.revoked, m.revokeErr
}

type mockMessageLog struct {
	appendID  string
	appendErr error
	list      []models.Message
	listErr   error

	lastAppendUser    string
	lastAppendContent string
	appendCalls       int
}

func (m *mockMessageLog) Append(_ context.Context, username, content string) (string, error) {
	m.appendCalls++
	m.lastAppendUser = username
	m.lastAppendContent = content
	return m.appendID, m.appendErr
}

func (m *mockMessageLog) ListAll(context.Context) ([]models.Message, error) {
	return m.list, m.listErr
}

type mockHealth struct{ err error }

func (m *mockHealth) Ping(context.Context) error { return m.err }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, CookieOptions{})
	return h.InitRoutes()
}

func doJSON(t *testing.T, r http.Handler, method, path, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func withCookie(name, value string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: name, Value: value}) }
}

func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}
