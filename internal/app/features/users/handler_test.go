package users_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/bughub/internal/app/features/users"
	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/domain/models"
	"github.com/dalemusser/bughub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func asUser(u models.User) testutil.TestUser {
	return testutil.AsUser(u.ID, u.Name, u.Email, u.Role)
}

func TestCreateUserByAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.MustEnsureIndexes(t, db)
	h := users.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := testutil.NewFixtures(t, db).CreateAdmin(ctx, "Admin", "admin@example.com")

	req := testutil.NewAuthenticatedRequest(t, "POST", "/api/users", asUser(admin), map[string]string{
		"name":     "New Dev",
		"email":    "newdev@example.com",
		"password": "secret123",
		"role":     "developer",
	})
	rec := httptest.NewRecorder()
	h.HandleCreateUser(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Duplicate email rejected.
	req = testutil.NewAuthenticatedRequest(t, "POST", "/api/users", asUser(admin), map[string]string{
		"name":     "Same Email",
		"email":    "newdev@example.com",
		"password": "secret123",
		"role":     "tester",
	})
	rec = httptest.NewRecorder()
	h.HandleCreateUser(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "User already exists" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestCreateUserBootstrap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := users.NewHandler(db, zap.NewNop())

	// No admin exists: an unauthenticated create succeeds.
	req := testutil.NewJSONRequest(t, "POST", "/api/users", map[string]string{
		"name":     "Seed Admin",
		"email":    "seed@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	rec := httptest.NewRecorder()
	h.HandleCreateUser(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// With an admin in place, unauthenticated and non-admin creates are
	// rejected.
	req = testutil.NewJSONRequest(t, "POST", "/api/users", map[string]string{
		"name":     "Walk In",
		"email":    "walkin@example.com",
		"password": "secret123",
		"role":     "tester",
	})
	rec = httptest.NewRecorder()
	h.HandleCreateUser(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Only admin can create users" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestCreateUserValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := users.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := testutil.NewFixtures(t, db).CreateAdmin(ctx, "Admin", "admin@example.com")

	cases := []map[string]string{
		{"email": "x@example.com", "password": "secret123", "role": "tester"},
		{"name": "X", "email": "x@example.com", "password": "secret123", "role": "manager"},
		{"name": "X", "email": "x@example.com", "password": "short", "role": "tester"},
	}
	for i, body := range cases {
		req := testutil.NewAuthenticatedRequest(t, "POST", "/api/users", asUser(admin), body)
		rec := httptest.NewRecorder()
		h.HandleCreateUser(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d", i, rec.Code)
		}
	}
}

func TestListUsersByRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := users.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")
	fixtures.CreateDeveloper(ctx, "Dev One", "dev1@example.com")
	fixtures.CreateDeveloper(ctx, "Dev Two", "dev2@example.com")
	fixtures.CreateTester(ctx, "QA", "qa@example.com")

	req := testutil.NewAuthenticatedRequest(t, "GET", "/api/users?role=developer", asUser(admin), nil)
	rec := httptest.NewRecorder()
	h.HandleListUsers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var listed []struct {
		Role string `json:"role"`
	}
	testutil.DecodeJSON(t, rec, &listed)
	if len(listed) != 2 {
		t.Fatalf("expected 2 developers, got %d", len(listed))
	}
	for _, u := range listed {
		if u.Role != "developer" {
			t.Fatalf("unexpected role %q in filtered listing", u.Role)
		}
	}

	// Unfiltered listing returns everyone, hashes never included.
	req = testutil.NewAuthenticatedRequest(t, "GET", "/api/users", asUser(admin), nil)
	rec = httptest.NewRecorder()
	h.HandleListUsers(rec, req)

	var full []map[string]any
	testutil.DecodeJSON(t, rec, &full)
	if len(full) != 4 {
		t.Fatalf("expected 4 users, got %d", len(full))
	}
	for _, u := range full {
		if _, leaked := u["password"]; leaked {
			t.Fatal("password hash leaked in listing")
		}
	}
}

func TestUpdateRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := users.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")
	dev := fixtures.CreateDeveloper(ctx, "Dev", "dev@example.com")

	req := testutil.NewAuthenticatedRequest(t, "PUT", "/api/users/role", asUser(admin),
		map[string]string{"userId": dev.ID.Hex(), "role": "viewer"})
	rec := httptest.NewRecorder()
	h.HandleUpdateRole(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got, err := userstore.New(db).GetByID(ctx, dev.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleViewer {
		t.Fatalf("expected viewer, got %q", got.Role)
	}

	// Unknown user answers 404.
	req = testutil.NewAuthenticatedRequest(t, "PUT", "/api/users/role", asUser(admin),
		map[string]string{"userId": primitive.NewObjectID().Hex(), "role": "viewer"})
	rec = httptest.NewRecorder()
	h.HandleUpdateRole(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	// Role outside the enum answers 400.
	req = testutil.NewAuthenticatedRequest(t, "PUT", "/api/users/role", asUser(admin),
		map[string]string{"userId": dev.ID.Hex(), "role": "owner"})
	rec = httptest.NewRecorder()
	h.HandleUpdateRole(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeactivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := users.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")
	dev := fixtures.CreateDeveloper(ctx, "Dev", "dev@example.com")

	req := testutil.NewAuthenticatedRequest(t, "PUT", "/api/users/deactivate", asUser(admin),
		map[string]string{"userId": dev.ID.Hex()})
	rec := httptest.NewRecorder()
	h.HandleDeactivate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got, err := userstore.New(db).GetByID(ctx, dev.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsActive {
		t.Fatal("user still active after deactivation")
	}
}

func TestDeleteUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := users.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")
	dev := fixtures.CreateDeveloper(ctx, "Dev", "dev@example.com")

	req := testutil.NewAuthenticatedRequest(t, "DELETE", "/api/users/"+dev.ID.Hex(), asUser(admin), nil)
	req = testutil.WithChiURLParam(req, "id", dev.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDeleteUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := userstore.New(db).GetByID(ctx, dev.ID); err != userstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Self-deletion is refused.
	req = testutil.NewAuthenticatedRequest(t, "DELETE", "/api/users/"+admin.ID.Hex(), asUser(admin), nil)
	req = testutil.WithChiURLParam(req, "id", admin.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleDeleteUser(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSetPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := users.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")
	dev := fixtures.CreateDeveloper(ctx, "Dev", "dev@example.com")

	req := testutil.NewAuthenticatedRequest(t, "PUT", "/api/users/"+dev.ID.Hex()+"/password", asUser(admin),
		map[string]string{"password": "brand-new-pw"})
	req = testutil.WithChiURLParam(req, "id", dev.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleSetPassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := userstore.New(db).GetByID(ctx, dev.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.PasswordHash == "" {
		t.Fatal("password hash missing")
	}

	// Too-short replacement rejected.
	req = testutil.NewAuthenticatedRequest(t, "PUT", "/api/users/"+dev.ID.Hex()+"/password", asUser(admin),
		map[string]string{"password": "tiny"})
	req = testutil.WithChiURLParam(req, "id", dev.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleSetPassword(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
