package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecopickup-service/pkg/kvstore"
	"ecopickup-service/pkg/token"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	if err := token.Init("test-secret"); err != nil {
		t.Fatal(err)
	}
	svc, err := NewService(context.Background(), kvstore.NewMemory(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewHandler(svc)
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	h := newTestHandler(t).Routes()

	rec := post(h, "/register", `{"name":"Asha","email":"asha@example.com","password":"secret123","confirm_password":"different"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "passwords do not match" {
		t.Errorf("unexpected error message %q", resp["error"])
	}
}

func TestLoginIssuesToken(t *testing.T) {
	h := newTestHandler(t).Routes()

	rec := post(h, "/login", `{"email":"demo@example.com","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	claims, err := token.Validate(resp.Token)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims.UserID != DemoUserID {
		t.Errorf("token carries user %q", claims.UserID)
	}
	if resp.User == nil || resp.User.Points != 150 {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}
}

func TestLoginRejectsMalformedEmail(t *testing.T) {
	h := newTestHandler(t).Routes()

	rec := post(h, "/login", `{"email":"not-an-email","password":"secret123"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegisterThenMe(t *testing.T) {
	h := newTestHandler(t).Routes()

	rec := post(h, "/register", `{"name":"Asha","email":"asha@example.com","password":"secret123","confirm_password":"secret123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp AuthResponse
	json.NewDecoder(rec.Body).Decode(&resp)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	me := httptest.NewRecorder()
	// OptionalAuth lives on the outer router in production.
	token.OptionalAuth(h).ServeHTTP(me, req)

	if me.Code != http.StatusOK {
		t.Fatalf("expected 200 from /me, got %d: %s", me.Code, me.Body.String())
	}
	var u User
	json.NewDecoder(me.Body).Decode(&u)
	if u.Email != "asha@example.com" || u.Points != 0 {
		t.Errorf("unexpected user from /me: %+v", u)
	}
}

func TestMeRequiresToken(t *testing.T) {
	h := newTestHandler(t).Routes()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	token.OptionalAuth(h).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
