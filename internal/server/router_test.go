package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
	"golang.org/x/crypto/bcrypt"

	"tradedesk/internal/auth"
	"tradedesk/internal/logger"
	"tradedesk/internal/models"
	"tradedesk/internal/session"
	"tradedesk/internal/testutil"
)

const metricsKey = "scrape-key"

// testApp holds the full application stack for end-to-end tests.
type testApp struct {
	Router   *gin.Engine
	Sessions *session.MemoryStore
	Services *Services
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database, with one ADMIN ("admin") and one USER ("trader") account.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	return newTestApp(t, NewSQLServices(db, auth.NewBcryptHasher(bcrypt.MinCost)))
}

func newTestApp(t *testing.T, svcs *Services) *testApp {
	t.Helper()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	store := session.NewMemoryStore()
	sessions := session.NewManager(store, "test-secret", 30*time.Minute)

	ctx := context.Background()
	if _, err := svcs.Users.EnsureAdmin(ctx, "admin", "Admin#123"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	if _, err := svcs.Users.Save(ctx, nil, &models.User{
		Username: "trader", Password: "Trader#123", FullName: "Trader", Role: models.RoleUser,
	}); err != nil {
		t.Fatalf("failed to seed trader: %v", err)
	}

	router := NewRouter(svcs, sessions, auth.DefaultPolicy(), hasher, Options{MetricsAPIKey: metricsKey})
	return &testApp{Router: router, Sessions: store, Services: svcs}
}

// request makes an HTTP request carrying the session cookie, if any.
func (app *testApp) request(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// login posts the login form and returns the session cookie.
func (app *testApp) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != auth.LandingRoute {
		t.Fatalf("login redirected to %q", loc)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func TestPublicEndpoints(t *testing.T) {
	app := setupApp(t)

	if rec := app.request(http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}
	if rec := app.request(http.MethodGet, "/login", "", nil); rec.Code != http.StatusOK {
		t.Errorf("login page: expected 200, got %d", rec.Code)
	}
	rec := app.request(http.MethodGet, "/app/error", "", nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("access denied page: expected 403, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupApp(t)

	if rec := app.request(http.MethodGet, "/metrics", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	req.Header.Set("X-API-Key", metricsKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tradedesk_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	app := setupApp(t)

	for _, path := range []string{"/", "/bidList/list", "/trade/add", "/user/list", "/nowhere"} {
		rec := app.request(http.MethodGet, path, "", nil)
		if rec.Code != http.StatusFound {
			t.Errorf("%s: expected 302, got %d", path, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestLoginFailures(t *testing.T) {
	app := setupApp(t)

	for _, creds := range [][2]string{{"trader", "wrong"}, {"ghost", "Trader#123"}, {"TRADER", "Trader#123"}} {
		form := url.Values{"username": {creds[0]}, "password": {creds[1]}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)

		if loc := rec.Header().Get("Location"); rec.Code != http.StatusFound || loc != "/login?error" {
			t.Errorf("%v: expected redirect to /login?error, got %d %q", creds, rec.Code, loc)
		}
	}
	if app.Sessions.Len() != 0 {
		t.Errorf("expected no sessions, found %d", app.Sessions.Len())
	}
}

func TestRoleGating(t *testing.T) {
	app := setupApp(t)
	traderCookie := app.login(t, "trader", "Trader#123")
	adminCookie := app.login(t, "admin", "Admin#123")

	rec := app.request(http.MethodGet, "/user/list", "", traderCookie)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("trader: expected 403, got %d", rec.Code)
	}
	denied := parseJSON(t, rec)
	errObj := denied["error"].(map[string]interface{})
	if errObj["message"] != auth.AccessDeniedMessage {
		t.Errorf("unexpected message %v", errObj["message"])
	}
	page := parseJSON(t, app.request(http.MethodGet, "/app/error", "", traderCookie))
	if !reflect.DeepEqual(denied, page) {
		t.Errorf("policy 403 body %v differs from access-denied page %v", denied, page)
	}
	if denied["remoteUser"] != "trader" {
		t.Errorf("expected remoteUser trader, got %v", denied["remoteUser"])
	}

	rec = app.request(http.MethodGet, "/bidList/../user/list", "", traderCookie)
	if rec.Code != http.StatusForbidden {
		t.Errorf("dot-segment path: expected 403, got %d", rec.Code)
	}

	rec = app.request(http.MethodGet, "/user/list", "", adminCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["remoteUser"] != "admin" {
		t.Errorf("expected remoteUser admin, got %v", result["remoteUser"])
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Error("password digests leaked")
	}

	rec = app.request(http.MethodGet, "/bidList/list", "", traderCookie)
	if rec.Code != http.StatusOK {
		t.Errorf("trader on bid list: expected 200, got %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp(t)
	cookie := app.login(t, "trader", "Trader#123")

	rec := app.request(http.MethodGet, "/no/such/page", "", cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "NOT_FOUND" || errObj["message"] != "Page not found" {
		t.Errorf("unexpected error %v", errObj)
	}

	rec = app.request(http.MethodGet, "/no/such/page", "", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != auth.LoginRoute {
		t.Errorf("anonymous: expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestCurvePointLifecycle(t *testing.T) {
	app := setupApp(t)
	cookie := app.login(t, "trader", "Trader#123")

	// Create
	rec := app.request(http.MethodPost, "/curvePoint/validate", `{"curveId":1,"term":100,"value":200}`, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	id := uint(parseJSON(t, rec)["curvePoint"].(map[string]interface{})["id"].(float64))

	// Update term 100 -> 200
	rec = app.request(http.MethodPost, fmt.Sprintf("/curvePoint/update/%d", id), `{"term":200,"value":200}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// List shows the updated point, same id
	rec = app.request(http.MethodGet, "/curvePoint/list", "", cookie)
	points := parseJSON(t, rec)["curvePoints"].([]interface{})
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	point := points[0].(map[string]interface{})
	if uint(point["id"].(float64)) != id || point["term"] != float64(200) {
		t.Errorf("unexpected point after update: %v", point)
	}

	// Update of an unknown id
	rec = app.request(http.MethodPost, "/curvePoint/update/9999", `{"term":1,"value":1}`, cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("update unknown: expected 404, got %d", rec.Code)
	}

	// Delete, then delete again
	path := fmt.Sprintf("/curvePoint/delete/%d", id)
	if rec = app.request(http.MethodGet, path, "", cookie); rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec = app.request(http.MethodGet, path, "", cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["message"] != fmt.Sprintf("Invalid curvePoint id: %d", id) {
		t.Errorf("unexpected message %v", errObj["message"])
	}
}

func TestTradeAuditStamps(t *testing.T) {
	app := setupApp(t)
	cookie := app.login(t, "trader", "Trader#123")

	rec := app.request(http.MethodPost, "/trade/validate",
		`{"account":"ACC","type":"BUY","buyQuantity":10,"creationName":"mallory"}`, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	trade := parseJSON(t, rec)["trade"].(map[string]interface{})
	if trade["creationName"] != "trader" {
		t.Errorf("expected server-stamped creation name, got %v", trade["creationName"])
	}
}

func TestUserAdministration(t *testing.T) {
	app := setupApp(t)
	adminCookie := app.login(t, "admin", "Admin#123")

	rec := app.request(http.MethodPost, "/user/validate",
		`{"username":"carol","password":"Carol#123","fullname":"Carol","role":"USER"}`, adminCookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	id := uint(parseJSON(t, rec)["user"].(map[string]interface{})["id"].(float64))

	// The new account can log in
	app.login(t, "carol", "Carol#123")

	// Duplicate username
	rec = app.request(http.MethodPost, "/user/validate",
		`{"username":"carol","password":"Other#123","fullname":"Other","role":"USER"}`, adminCookie)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate: expected 409, got %d", rec.Code)
	}

	// Edit form blanks the password
	rec = app.request(http.MethodGet, fmt.Sprintf("/user/update/%d", id), "", adminCookie)
	if pw := parseJSON(t, rec)["user"].(map[string]interface{})["password"]; pw != "" {
		t.Errorf("expected blank password, got %v", pw)
	}

	// Password change takes effect
	rec = app.request(http.MethodPost, fmt.Sprintf("/user/update/%d", id),
		`{"username":"carol","password":"Changed#123","fullname":"Carol","role":"USER"}`, adminCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	app.login(t, "carol", "Changed#123")
}

func TestLogoutRevokesSession(t *testing.T) {
	app := setupApp(t)
	cookie := app.login(t, "trader", "Trader#123")

	rec := app.request(http.MethodPost, "/app-logout", "", cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login?logout" {
		t.Fatalf("logout: got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	// The old cookie no longer authenticates
	rec = app.request(http.MethodGet, "/bidList/list", "", cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected redirect to login after logout, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestMemoryBackend(t *testing.T) {
	app := newTestApp(t, NewMemoryServices(auth.NewBcryptHasher(bcrypt.MinCost)))
	cookie := app.login(t, "trader", "Trader#123")

	rec := app.request(http.MethodPost, "/rating/validate",
		`{"moodysRating":"Aaa","sandPRating":"AAA","fitchRating":"AAA","orderNumber":1}`, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	first := parseJSON(t, rec)["rating"].(map[string]interface{})["id"].(float64)

	app.request(http.MethodGet, fmt.Sprintf("/rating/delete/%d", uint(first)), "", cookie)

	rec = app.request(http.MethodPost, "/rating/validate",
		`{"moodysRating":"Aa1","sandPRating":"AA+","fitchRating":"AA+","orderNumber":2}`, cookie)
	second := parseJSON(t, rec)["rating"].(map[string]interface{})["id"].(float64)
	if second == first {
		t.Errorf("id %v was reused after delete", first)
	}
}

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	app := setupApp(t)

	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("failed to read swagger doc: %v", err)
	}
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("swagger doc is not valid JSON: %v", err)
	}

	undocumented := map[string]bool{"/": true, "/user": true, "/error": true, "/health": true, "/metrics": true, "/swagger/*any": true}
	for _, r := range app.Router.Routes() {
		if undocumented[r.Path] {
			continue
		}
		path := strings.ReplaceAll(r.Path, ":id", "{id}")
		if _, ok := doc.Paths[path][strings.ToLower(r.Method)]; !ok {
			t.Errorf("%s %s is missing from the swagger doc", r.Method, path)
		}
	}
}
