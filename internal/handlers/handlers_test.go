package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/config"
	"github.com/example/kerapido/internal/database"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/models"
	"github.com/example/kerapido/internal/ratelimit"
	"github.com/example/kerapido/internal/routes"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedCatalogs(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: 30 * time.Minute,
	}

	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	routes.Register(app, db, cfg)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

var emailSeq int

func nextEmail() string {
	emailSeq++
	return fmt.Sprintf("rider%d@example.com", emailSeq)
}

const testPassword = "sup3rsecret"

// signupActive registers a customer account and marks its email verified so
// the account passes the auth middleware.
func signupActive(t *testing.T, app *fiber.App, db *gorm.DB) (email, userID string) {
	t.Helper()

	email = nextEmail()
	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"first_name": "Rosa",
		"last_name":  "Fernandez",
		"email":      email,
		"password":   testPassword,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	userID, _ = body["id"].(string)
	if userID == "" {
		t.Fatal("signup response missing id")
	}

	if err := db.Model(&models.User{}).Where("email = ?", email).
		Update("email_verified", true).Error; err != nil {
		t.Fatalf("activate account: %v", err)
	}
	return email, userID
}

func tokenFor(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/auth/token", "", fiber.Map{
		"email": email, "password": testPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("token status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["token_type"] != "bearer" {
		t.Errorf("token_type = %v, want bearer", body["token_type"])
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("token response missing access_token")
	}
	return token
}

func makeAdmin(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	if err := db.Model(&models.User{}).Where("email = ?", email).
		Update("is_admin", true).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestSignupTokenMeRoundTrip(t *testing.T) {
	app, db := newTestApp(t)
	email, _ := signupActive(t, app, db)
	token := tokenFor(t, app, email)

	resp := doJSON(t, app, http.MethodGet, "/users/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/users/me status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["email"] != email {
		t.Errorf("email = %v, want %s", body["email"], email)
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Error("password hash must never appear in responses")
	}
}

func TestToken_InvalidCredentialsAreUniform(t *testing.T) {
	app, db := newTestApp(t)
	email, _ := signupActive(t, app, db)

	cases := []fiber.Map{
		{"email": "nobody@example.com", "password": testPassword},
		{"email": email, "password": "wrong-password"},
	}
	for _, body := range cases {
		resp := doJSON(t, app, http.MethodPost, "/auth/token", "", body)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
		detail := decodeBody(t, resp)["detail"]
		if detail != "invalid credentials" {
			t.Errorf("detail = %v; both failure modes must read identically", detail)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/users/me", "/solicitudes/", "/notificaciones/"} {
		resp := doJSON(t, app, http.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, resp.StatusCode)
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/users/me", "not-a-real-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", resp.StatusCode)
	}
}

func TestUnverifiedAccountRejected(t *testing.T) {
	app, _ := newTestApp(t)

	email := nextEmail()
	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"first_name": "Luis", "email": email, "password": testPassword,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201", resp.StatusCode)
	}

	// Credentials are valid, so the token endpoint still answers.
	token := tokenFor(t, app, email)

	resp = doJSON(t, app, http.MethodGet, "/users/me", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unverified account: status = %d, want 400", resp.StatusCode)
	}
	if detail := decodeBody(t, resp)["detail"]; detail != "inactive user" {
		t.Errorf("detail = %v, want inactive user", detail)
	}
}

func TestSignupValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"first_name": "Eva", "email": nextEmail(),
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing password: status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"first_name": "Eva", "email": nextEmail(), "password": "short",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("short password: status = %d, want 400", resp.StatusCode)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	app, db := newTestApp(t)
	email, _ := signupActive(t, app, db)

	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"first_name": "Rosa", "email": email, "password": testPassword,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email: status = %d, want 409", resp.StatusCode)
	}
}

func TestRegistroClienteAlias(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/registro/cliente", "", fiber.Map{
		"first_name": "Mario", "email": nextEmail(), "password": testPassword,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
}

func TestUserAccess_SelfOrAdmin(t *testing.T) {
	app, db := newTestApp(t)

	emailA, idA := signupActive(t, app, db)
	emailB, _ := signupActive(t, app, db)
	adminEmail, _ := signupActive(t, app, db)
	makeAdmin(t, db, adminEmail)

	tokenA := tokenFor(t, app, emailA)
	tokenB := tokenFor(t, app, emailB)
	adminToken := tokenFor(t, app, adminEmail)

	// Owner reads their own record.
	resp := doJSON(t, app, http.MethodGet, "/users/"+idA, tokenA, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("self read: status = %d, want 200", resp.StatusCode)
	}

	// Another user is refused, and the refusal is explicit.
	resp = doJSON(t, app, http.MethodGet, "/users/"+idA, tokenB, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("stranger read: status = %d, want 403", resp.StatusCode)
	}

	// Admin may read anyone.
	resp = doJSON(t, app, http.MethodGet, "/users/"+idA, adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin read: status = %d, want 200", resp.StatusCode)
	}

	// Listing is admin only.
	resp = doJSON(t, app, http.MethodGet, "/users/", tokenA, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-admin list: status = %d, want 403", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodGet, "/users/", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin list: status = %d, want 200", resp.StatusCode)
	}
}

func TestServiceRequestOwnership(t *testing.T) {
	app, db := newTestApp(t)

	ownerEmail, _ := signupActive(t, app, db)
	otherEmail, _ := signupActive(t, app, db)
	adminEmail, _ := signupActive(t, app, db)
	makeAdmin(t, db, adminEmail)

	ownerToken := tokenFor(t, app, ownerEmail)
	otherToken := tokenFor(t, app, otherEmail)
	adminToken := tokenFor(t, app, adminEmail)

	resp := doJSON(t, app, http.MethodPost, "/solicitudes/", ownerToken, fiber.Map{
		"origin_lat": 23.1136, "origin_lon": -82.3666,
		"origin_address": "Calle 23 y L, Vedado",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create request: status = %d, want 201", resp.StatusCode)
	}
	requestID, _ := decodeBody(t, resp)["id"].(string)
	if requestID == "" {
		t.Fatal("request response missing id")
	}

	resp = doJSON(t, app, http.MethodGet, "/solicitudes/"+requestID, ownerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("owner read: status = %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/solicitudes/"+requestID, otherToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("other customer read: status = %d, want 403", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/solicitudes/"+requestID, adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin read: status = %d, want 200", resp.StatusCode)
	}

	// Coordinates are mandatory.
	resp = doJSON(t, app, http.MethodPost, "/solicitudes/", ownerToken, fiber.Map{
		"origin_address": "Calle 23 y L, Vedado",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing coordinates: status = %d, want 400", resp.StatusCode)
	}
}

func TestCatalogsArePublic(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/catalogos/monedas", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var currencies []models.Currency
	if err := json.NewDecoder(resp.Body).Decode(&currencies); err != nil {
		t.Fatalf("decode currencies: %v", err)
	}
	codes := map[string]bool{}
	for _, c := range currencies {
		codes[c.Code] = true
	}
	if !codes["CUP"] || !codes["USD"] {
		t.Errorf("seeded currencies missing, got %v", codes)
	}
}

func TestRateLimitRejectsAfterBudget(t *testing.T) {
	db := openTestDB(t)
	limiter := ratelimit.New(3, time.Minute)
	limited := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	limited.Use(middleware.RateLimit(limiter))
	routes.Register(limited, db, &config.Config{JWTSecret: "test-secret", TokenExpires: time.Minute})

	for i := 0; i < 3; i++ {
		resp := doJSON(t, limited, http.MethodGet, "/", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, resp.StatusCode)
		}
	}

	resp := doJSON(t, limited, http.MethodGet, "/", "", nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("over budget: status = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
	if detail := decodeBody(t, resp)["detail"]; detail == nil {
		t.Error("429 response missing detail body")
	}
}
