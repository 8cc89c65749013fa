package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/car-service/apiserver/internal/auth"
	"github.com/car-service/apiserver/internal/services"
	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
)

// memUserRepo is a minimal in-memory services.UserRepository for
// handler tests.
type memUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int]types.User{}}
}

func (r *memUserRepo) List(ctx context.Context) ([]types.User, error) {
	users := make([]types.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *memUserRepo) Get(ctx context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	for _, user := range r.users {
		if user.Name == name && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func newAuthTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	userService := services.NewUserService(newMemUserRepo(), tokens)
	authMiddleware := RequireAuth(tokens)

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, tokens)
	})
	router.Route("/users", func(r chi.Router) {
		UserRouter(r, userService, authMiddleware)
	})
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/users", "", CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	return resp.Token
}

func TestRegisterLoginAndMe(t *testing.T) {
	router := newAuthTestRouter(t)
	token := registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodGet, "/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var user types.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected alice@example.com, got %q", user.Email)
	}
}

func TestRegisterNeverEchoesPassword(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", "", CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("password123")) {
		t.Fatal("response must not contain the plaintext password")
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("password_hash")) {
		t.Fatal("response must not contain the password hash")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router := newAuthTestRouter(t)
	registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	router := newAuthTestRouter(t)
	registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodGet, "/users", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/users", "garbage-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestRegistrationIsOpen(t *testing.T) {
	router := newAuthTestRouter(t)

	// No Authorization header at all.
	rec := doJSON(t, router, http.MethodPost, "/users", "", CreateUserRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newAuthTestRouter(t)
	registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/users", "", CreateUserRequest{
		Name:     "Other",
		Email:    "alice@example.com",
		Password: "pw",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserCRUDOverHTTP(t *testing.T) {
	router := newAuthTestRouter(t)
	token := registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodGet, "/users/1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	name := "Alice Updated"
	rec = doJSON(t, router, http.MethodPut, "/users/1", token, types.UserPatch{Name: &name})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/users/99", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/users/abc", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/users/1", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
}
