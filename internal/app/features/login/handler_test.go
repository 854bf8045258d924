package login_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/bughub/internal/app/features/login"
	"github.com/dalemusser/bughub/internal/app/system/auth"
	"github.com/dalemusser/bughub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens, err := auth.NewManager("test-secret-key-for-login-tests", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	return login.NewHandler(db, tokens, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestLoginSuccess(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateDeveloper(ctx, "Dev User", "dev@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{
		"email":    "dev@example.com",
		"password": testutil.FixturePassword,
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Role != "developer" {
		t.Fatalf("expected role developer, got %q", resp.Role)
	}
	if resp.User.Email != "dev@example.com" {
		t.Fatalf("unexpected user email %q", resp.User.Email)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateTester(ctx, "QA User", "qa@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{
		"email":    "  QA@Example.COM ",
		"password": testutil.FixturePassword,
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginBadCredentials(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateDeveloper(ctx, "Dev User", "dev@example.com")

	cases := []map[string]string{
		{"email": "dev@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": testutil.FixturePassword},
	}
	for i, body := range cases {
		req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", body)
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("case %d: expected 401, got %d", i, rec.Code)
		}
		var resp struct {
			Message string `json:"message"`
		}
		testutil.DecodeJSON(t, rec, &resp)
		if resp.Message != "Invalid credentials" {
			t.Errorf("case %d: unexpected message %q", i, resp.Message)
		}
	}
}

func TestLoginMissingFields(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{"email": "dev@example.com"})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateDeactivatedUser(ctx, "Gone", "gone@example.com", "developer")

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{
		"email":    "gone@example.com",
		"password": testutil.FixturePassword,
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Account is deactivated" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestRegisterBootstrapOnly(t *testing.T) {
	h, _ := newHandler(t)

	// Empty install: the first registration creates an admin.
	req := testutil.NewJSONRequest(t, "POST", "/api/auth/register", map[string]string{
		"name":     "First Admin",
		"email":    "first@example.com",
		"password": "bootstrappw",
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.User.Role != "admin" {
		t.Fatalf("expected an admin account, got role %q", resp.User.Role)
	}

	// An admin now exists: registration is closed.
	req = testutil.NewJSONRequest(t, "POST", "/api/auth/register", map[string]string{
		"name":     "Second Admin",
		"email":    "second@example.com",
		"password": "bootstrappw",
	})
	rec = httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateDeveloper(ctx, "Dev User", "dev@example.com")

	// The per-email window allows 5 attempts; the 6th is rejected before
	// credentials are checked.
	for i := 0; i < 5; i++ {
		req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{
			"email":    "dev@example.com",
			"password": "wrong-password",
		})
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, rec.Code)
		}
	}

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{
		"email":    "dev@example.com",
		"password": testutil.FixturePassword,
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated failures, got %d", rec.Code)
	}
}
