package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tradedesk/internal/auth"
	"tradedesk/internal/middleware"
	"tradedesk/internal/models"
	"tradedesk/internal/services"
	"tradedesk/internal/session"
	"tradedesk/internal/validator"
)

// --- mock services ---

type mockRecordService[T any] struct {
	saveFn       func(actor *auth.Principal, rec *T) (*T, error)
	getAllFn     func(actor *auth.Principal) ([]T, error)
	findByIDFn   func(actor *auth.Principal, id uint) (*T, bool, error)
	updateByIDFn func(actor *auth.Principal, id uint, rec *T) (*T, error)
	deleteByIDFn func(actor *auth.Principal, id uint) error
}

func (m *mockRecordService[T]) Save(_ context.Context, actor *auth.Principal, rec *T) (*T, error) {
	if m.saveFn != nil {
		return m.saveFn(actor, rec)
	}
	return rec, nil
}

func (m *mockRecordService[T]) GetAll(_ context.Context, actor *auth.Principal) ([]T, error) {
	if m.getAllFn != nil {
		return m.getAllFn(actor)
	}
	return []T{}, nil
}

func (m *mockRecordService[T]) FindByID(_ context.Context, actor *auth.Principal, id uint) (*T, bool, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(actor, id)
	}
	return nil, false, nil
}

func (m *mockRecordService[T]) UpdateByID(_ context.Context, actor *auth.Principal, id uint, rec *T) (*T, error) {
	if m.updateByIDFn != nil {
		return m.updateByIDFn(actor, id, rec)
	}
	return rec, nil
}

func (m *mockRecordService[T]) DeleteByID(_ context.Context, actor *auth.Principal, id uint) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(actor, id)
	}
	return nil
}

type mockUserService struct {
	mockRecordService[models.User]
	findForEditFn func(actor *auth.Principal, id uint) (*models.User, bool, error)
	ensureAdminFn func(username, password string) (bool, error)
}

func (m *mockUserService) FindForEdit(_ context.Context, actor *auth.Principal, id uint) (*models.User, bool, error) {
	if m.findForEditFn != nil {
		return m.findForEditFn(actor, id)
	}
	return nil, false, nil
}

func (m *mockUserService) EnsureAdmin(_ context.Context, username, password string) (bool, error) {
	if m.ensureAdminFn != nil {
		return m.ensureAdminFn(username, password)
	}
	return false, nil
}

type mockAuthenticationService struct {
	authenticateFn func(username string) (*auth.Principal, error)
}

func (m *mockAuthenticationService) Authenticate(_ context.Context, username string) (*auth.Principal, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(username)
	}
	return &auth.Principal{Username: username, Role: models.RoleUser}, nil
}

type mockSessionIssuer struct {
	issueFn  func(principal *auth.Principal) (*session.Session, string, error)
	revokeFn func(token string) error
	revoked  []string
}

func (m *mockSessionIssuer) Issue(_ context.Context, principal *auth.Principal) (*session.Session, string, error) {
	if m.issueFn != nil {
		return m.issueFn(principal)
	}
	return &session.Session{ID: "sid", Username: principal.Username, Role: principal.Role}, "signed-token", nil
}

func (m *mockSessionIssuer) Revoke(_ context.Context, token string) error {
	m.revoked = append(m.revoked, token)
	if m.revokeFn != nil {
		return m.revokeFn(token)
	}
	return nil
}

func (m *mockSessionIssuer) TTL() time.Duration { return 30 * time.Minute }

// plainHasher treats the digest as "hashed:" + plaintext.
type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }
func (plainHasher) Verify(plaintext, digest string) bool  { return digest == "hashed:"+plaintext }

// verify interface compliance
var (
	_ services.RecordServicer[models.Trade] = (*mockRecordService[models.Trade])(nil)
	_ services.UserServicer                 = (*mockUserService)(nil)
	_ services.AuthenticationServicer       = (*mockAuthenticationService)(nil)
	_ SessionIssuer                         = (*mockSessionIssuer)(nil)
	_ auth.PasswordHasher                   = plainHasher{}
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectPrincipal(p *auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetPrincipal(c, p)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doFormRequest(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func httptestRecorder(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func errorFields(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	errObj, _ := result["error"].(map[string]interface{})
	fields, ok := errObj["fields"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected field errors in response, got: %v", result)
	}
	return fields
}
