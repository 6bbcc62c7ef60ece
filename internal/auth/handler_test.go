package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/darie-immo/darie-api/internal/auth"
	"github.com/darie-immo/darie-api/internal/shared"
	_ "github.com/darie-immo/darie-api/testing"
)

type stubRepo struct {
	users  map[string]*auth.User
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: make(map[string]*auth.User), nextID: 1}
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (s *stubRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := s.users[email]
	return ok, nil
}

func (s *stubRepo) Create(ctx context.Context, user auth.NewUser) (*auth.User, error) {
	created := &auth.User{
		ID:           s.nextID,
		Nom:          user.Nom,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		PhotoURL:     user.PhotoURL,
		DateCreation: time.Now(),
	}
	s.nextID++
	s.users[user.Email] = created
	return created, nil
}

// failingRepo simulates a storage outage on every lookup.
type failingRepo struct {
	stubRepo
}

func (f *failingRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return nil, errors.New("connection pool exhausted")
}

func newAuthHandler(t *testing.T, repo auth.Repository) (*auth.Handler, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := auth.NewHandler(nil, auth.NewService(repo), tokens)
	return handler, tokens
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler(res, req)
	return res
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := newStubRepo()
	repo.users["user@test.local"] = &auth.User{ID: 1, Email: "user@test.local", PasswordHash: string(hashed)}
	handler, _ := newAuthHandler(t, repo)

	wrongPass := postJSON(t, handler.HandleLoginForTest, `{"email":"user@test.local","mot_de_passe":"wrongpass"}`)
	unknown := postJSON(t, handler.HandleLoginForTest, `{"email":"nobody@test.local","mot_de_passe":"whatever"}`)

	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("failure responses must be indistinguishable:\n%s\n%s", wrongPass.Body.String(), unknown.Body.String())
	}
}

func TestLoginStoreFailureIsNotUnauthorized(t *testing.T) {
	repo := &failingRepo{stubRepo: *newStubRepo()}
	handler, _ := newAuthHandler(t, repo)

	res := postJSON(t, handler.HandleLoginForTest, `{"email":"a@b.com","mot_de_passe":"secret1"}`)
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for store failure, got %d: %s", res.Code, res.Body.String())
	}
	if strings.Contains(res.Body.String(), "connection pool") {
		t.Fatalf("store failure detail leaked in response: %s", res.Body.String())
	}
}

func TestLoginSuccessIssuesVerifiableToken(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := newStubRepo()
	repo.users["a@b.com"] = &auth.User{ID: 7, Nom: "A", Email: "a@b.com", PasswordHash: string(hashed)}
	handler, tokens := newAuthHandler(t, repo)

	res := postJSON(t, handler.HandleLoginForTest, `{"email":"a@b.com","mot_de_passe":"secret1"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var payload struct {
		Token       string          `json:"token"`
		Utilisateur json.RawMessage `json:"utilisateur"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	claims, err := tokens.Verify(payload.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "a@b.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if strings.Contains(string(payload.Utilisateur), "mot_de_passe") {
		t.Fatalf("password leaked in response: %s", payload.Utilisateur)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	handler, _ := newAuthHandler(t, newStubRepo())

	body := `{"nom":"A","email":"a@b.com","mot_de_passe":"secret1"}`
	first := postJSON(t, handler.HandleRegisterForTest, body)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}
	if !strings.Contains(first.Body.String(), `"id":1`) {
		t.Fatalf("expected created user id in body, got: %s", first.Body.String())
	}

	second := postJSON(t, handler.HandleRegisterForTest, body)
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d: %s", second.Code, second.Body.String())
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	handler, _ := newAuthHandler(t, newStubRepo())

	cases := map[string]string{
		"missing fields": `{"email":"a@b.com"}`,
		"short password": `{"nom":"A","email":"a@b.com","mot_de_passe":"abc"}`,
		"bad email":      `{"nom":"A","email":"not an email","mot_de_passe":"secret1"}`,
	}
	for name, body := range cases {
		res := postJSON(t, handler.HandleRegisterForTest, body)
		if res.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", name, res.Code, res.Body.String())
		}
	}
}

func TestRequireAuthGate(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	mw := auth.NewMiddleware(nil, tokens)

	var gotClaims *shared.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = shared.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	protected := mw.RequireAuth(next)

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Bearer",
		"garbage":   "Bearer not-a-token",
		"basic":     "Basic abc",
	} {
		req := httptest.NewRequest(http.MethodPost, "/annonces", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		res := httptest.NewRecorder()
		protected.ServeHTTP(res, req)
		if res.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, res.Code)
		}
	}

	signed, err := tokens.Issue(9, "a@b.com", "A")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/annonces", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	res := httptest.NewRecorder()
	protected.ServeHTTP(res, req)
	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	if gotClaims == nil || gotClaims.UserID != 9 {
		t.Fatalf("expected claims in context, got %+v", gotClaims)
	}
}
