package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ecopickup-service/pkg/kvstore"
	"ecopickup-service/pkg/metrics"
)

// storageKey is the single session slot in the key-value medium.
const storageKey = "user"

// The mock login path always yields this identity, regardless of input.
const (
	DemoUserID  = "1"
	demoName    = "Demo User"
	demoAddress = "123 Green St, Eco City"
	demoPoints  = 150
)

// Delay models the simulated API latency inside Login and Register. It is
// injectable so tests run without wall-clock waits; once invoked it always
// runs to completion, there is no cancellation path.
type Delay func()

// SleepDelay returns the production Delay.
func SleepDelay(d time.Duration) Delay {
	return func() { time.Sleep(d) }
}

// Service owns the current session: who is logged in, restored once from
// the key-value medium at construction and persisted on every change.
type Service struct {
	kv    kvstore.Store
	delay Delay

	mu   sync.RWMutex
	user *User
}

// NewService creates a session service and performs the one-shot restore
// read of a previously persisted user. A nil delay disables the simulated
// latency.
func NewService(ctx context.Context, kv kvstore.Store, delay Delay) (*Service, error) {
	s := &Service{kv: kv, delay: delay}

	data, ok, err := kv.Get(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("session: corrupt stored user: %w", err)
		}
		s.user = &rec.User
		log.Printf("[session] restored user %s (%s)", rec.User.ID, rec.User.Email)
	}
	return s, nil
}

// Login accepts any well-formed credentials. There is no invalid-credential
// path: the backend is mocked and always yields the demo identity carrying
// the caller's email.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	s.wait()

	u := User{
		ID:      DemoUserID,
		Name:    demoName,
		Email:   email,
		Points:  demoPoints,
		Address: demoAddress,
	}
	if err := s.persist(ctx, record{User: u}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()

	metrics.Logins.Inc()
	return s.Current(), nil
}

// Register creates a fresh account with a zero points balance. The
// password is hashed into the stored record and never read back.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	s.wait()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}
	if err := s.persist(ctx, record{User: u, PasswordHash: string(hash)}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()

	metrics.Logins.Inc()
	return s.Current(), nil
}

// Logout clears the persisted record and the in-memory user synchronously.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storageKey); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the logged-in user, or nil.
func (s *Service) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Service) persist(ctx context.Context, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKey, data)
}

func (s *Service) wait() {
	if s.delay != nil {
		s.delay()
	}
}
