package session

import (
	"context"
	"encoding/json"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"ecopickup-service/pkg/kvstore"
)

func newTestService(t *testing.T, kv kvstore.Store) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), kv, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestLoginYieldsDemoIdentity(t *testing.T) {
	kv := kvstore.NewMemory()
	svc := newTestService(t, kv)

	u, err := svc.Login(context.Background(), "someone@example.com", "whatever")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != DemoUserID {
		t.Errorf("expected demo user id %q, got %q", DemoUserID, u.ID)
	}
	if u.Points != 150 {
		t.Errorf("expected 150 points, got %d", u.Points)
	}
	if u.Email != "someone@example.com" {
		t.Errorf("expected caller's email to be kept, got %q", u.Email)
	}
	if u.Name != "Demo User" {
		t.Errorf("unexpected name %q", u.Name)
	}

	data, ok, err := kv.Get(context.Background(), "user")
	if err != nil || !ok {
		t.Fatalf("expected persisted user record, ok=%v err=%v", ok, err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal stored record: %v", err)
	}
	if rec.User.ID != DemoUserID {
		t.Errorf("stored record has id %q", rec.User.ID)
	}
}

func TestRegisterStartsAtZeroPoints(t *testing.T) {
	kv := kvstore.NewMemory()
	svc := newTestService(t, kv)

	u, err := svc.Register(context.Background(), "Asha", "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Points != 0 {
		t.Errorf("expected zero points for a fresh account, got %d", u.Points)
	}
	if u.ID == "" || u.ID == DemoUserID {
		t.Errorf("expected a fresh unique id, got %q", u.ID)
	}

	// The hash lands in the stored record and verifies against the input.
	data, _, _ := kv.Get(context.Background(), "user")
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal stored record: %v", err)
	}
	if rec.PasswordHash == "" {
		t.Fatal("expected a password hash in the stored record")
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte("secret123")) != nil {
		t.Error("stored hash does not match the password")
	}
}

func TestRegisterGeneratesDistinctIDs(t *testing.T) {
	kv := kvstore.NewMemory()
	svc := newTestService(t, kv)

	a, err := svc.Register(context.Background(), "A", "a@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Register(context.Background(), "B", "b@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both %q", a.ID)
	}
}

func TestRestoreFromPersistedRecord(t *testing.T) {
	kv := kvstore.NewMemory()
	svc := newTestService(t, kv)

	if svc.Current() != nil {
		t.Fatal("expected unauthenticated state on an empty medium")
	}

	if _, err := svc.Login(context.Background(), "demo@example.com", "pw1234"); err != nil {
		t.Fatal(err)
	}

	// A second service over the same medium restores the session.
	restored := newTestService(t, kv)
	u := restored.Current()
	if u == nil {
		t.Fatal("expected restored user")
	}
	if u.ID != DemoUserID || u.Email != "demo@example.com" {
		t.Errorf("restored wrong user: %+v", u)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	kv := kvstore.NewMemory()
	svc := newTestService(t, kv)

	if _, err := svc.Login(context.Background(), "demo@example.com", "pw1234"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if svc.Current() != nil {
		t.Error("expected nil user after logout")
	}
	if _, ok, _ := kv.Get(context.Background(), "user"); ok {
		t.Error("expected persisted record to be cleared")
	}
	if newTestService(t, kv).Current() != nil {
		t.Error("expected no restore after logout")
	}
}

func TestInjectedDelayRuns(t *testing.T) {
	kv := kvstore.NewMemory()
	calls := 0
	svc, err := NewService(context.Background(), kv, func() { calls++ })
	if err != nil {
		t.Fatal(err)
	}

	svc.Login(context.Background(), "demo@example.com", "pw1234")
	svc.Register(context.Background(), "Asha", "asha@example.com", "pw1234")
	if calls != 2 {
		t.Errorf("expected the delay to run once per call, got %d", calls)
	}
}
