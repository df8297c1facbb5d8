package pickups

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"ecopickup-service/internal/events"
	"ecopickup-service/internal/session"
	"ecopickup-service/pkg/kvstore"
	"ecopickup-service/pkg/metrics"
	"ecopickup-service/pkg/stream"
	"ecopickup-service/pkg/validation"
)

// Publisher pushes lifecycle events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// Broadcaster pushes live status changes to a user's subscribers.
type Broadcaster interface {
	BroadcastStatus(userID, pickupID, status string, pointsEarned int)
}

// Service owns the pickup collection of the active user and the metrics
// derived from it. The key-value medium is the source of truth: the list
// is read back on every operation and rewritten whole, so the last writer
// for a user's key wins.
type Service struct {
	kv       kvstore.Store
	sessions *session.Service
	pub      Publisher   // optional
	bcast    Broadcaster // optional
	now      func() time.Time
}

// NewService creates a pickup service. pub and bcast may be nil.
func NewService(kv kvstore.Store, sessions *session.Service, pub Publisher, bcast Broadcaster) *Service {
	return &Service{kv: kv, sessions: sessions, pub: pub, bcast: bcast, now: time.Now}
}

func storageKey(userID string) string { return "pickups-" + userID }

// List returns the active user's pickups. The first read for the demo
// login identity seeds the demo records; with no active user the
// collection is empty and nothing is persisted.
func (s *Service) List(ctx context.Context) ([]Pickup, error) {
	user := s.sessions.Current()
	if user == nil {
		return nil, nil
	}
	return s.load(ctx, user)
}

// Get returns a single pickup of the active user by id, or nil.
func (s *Service) Get(ctx context.Context, id string) (*Pickup, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

// Schedule appends a new pickup for the active user. Without an active
// user it is a silent no-op, per the single-tenant demo semantics.
func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (*Pickup, error) {
	user := s.sessions.Current()
	if user == nil {
		return nil, nil
	}
	if err := validateSchedule(req); err != nil {
		return nil, err
	}

	list, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := Pickup{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Address:   req.Address,
		Date:      req.Date,
		Time:      req.Time,
		Status:    StatusScheduled,
		Items:     req.Items,
		CreatedAt: now,
	}
	list = append(list, p)
	if err := s.persist(ctx, user.ID, list); err != nil {
		return nil, err
	}

	s.publish(stream.TopicPickupScheduled, p.ID, events.PickupScheduledEvent{
		PickupID:    p.ID,
		UserID:      p.UserID,
		Address:     p.Address,
		Date:        p.Date,
		TimeSlot:    p.Time,
		ItemCount:   len(p.Items),
		ScheduledAt: now.Format(time.RFC3339),
	})
	s.broadcast(user.ID, p.ID, StatusScheduled, 0)
	metrics.PickupsScheduled.Inc()

	return &p, nil
}

// Cancel marks a scheduled pickup cancelled in place. Terminal states and
// unknown ids are left untouched, so repeated calls are idempotent; the
// record itself is never removed from the list.
func (s *Service) Cancel(ctx context.Context, id string) (*Pickup, error) {
	return s.transition(ctx, id, StatusCancelled, nil)
}

// Complete marks a scheduled pickup completed and records the points it
// earned. The user's balance is a separate ledger and is deliberately not
// incremented here.
func (s *Service) Complete(ctx context.Context, id string, pointsEarned int) (*Pickup, error) {
	if pointsEarned < 0 {
		return nil, errors.New("points earned cannot be negative")
	}
	return s.transition(ctx, id, StatusCompleted, &pointsEarned)
}

// Stats recomputes the dashboard metrics from current state.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	user := s.sessions.Current()
	if user == nil {
		return &Stats{}, nil
	}
	list, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	st := &Stats{TotalPoints: user.Points}
	for _, p := range list {
		switch p.Status {
		case StatusCompleted:
			st.CompletedPickups++
		case StatusScheduled:
			st.ScheduledPickups++
		}
	}
	return st, nil
}

func (s *Service) transition(ctx context.Context, id, target string, points *int) (*Pickup, error) {
	user := s.sessions.Current()
	if user == nil {
		return nil, nil
	}
	list, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	var result *Pickup
	changed := false
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].Status == StatusScheduled {
			list[i].Status = target
			if points != nil {
				list[i].PointsEarned = points
			}
			changed = true
		}
		result = &list[i]
	}
	if result == nil {
		return nil, nil
	}

	// The whole collection is rewritten whether or not anything matched.
	if err := s.persist(ctx, user.ID, list); err != nil {
		return nil, err
	}

	if changed {
		switch target {
		case StatusCancelled:
			s.publish(stream.TopicPickupCancelled, id, events.PickupCancelledEvent{
				PickupID: id,
				UserID:   user.ID,
			})
			s.broadcast(user.ID, id, StatusCancelled, 0)
			metrics.PickupsCancelled.Inc()
		case StatusCompleted:
			s.publish(stream.TopicPickupCompleted, id, events.PickupCompletedEvent{
				PickupID:     id,
				UserID:       user.ID,
				Address:      result.Address,
				PointsEarned: *points,
				ItemCount:    len(result.Items),
				CompletedAt:  s.now().Format(time.RFC3339),
			})
			s.broadcast(user.ID, id, StatusCompleted, *points)
			metrics.PickupsCompleted.Inc()
		}
	}
	return result, nil
}

func (s *Service) load(ctx context.Context, user *session.User) ([]Pickup, error) {
	data, ok, err := s.kv.Get(ctx, storageKey(user.ID))
	if err != nil {
		return nil, err
	}
	if ok {
		var list []Pickup
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("pickups: corrupt stored list: %w", err)
		}
		return list, nil
	}

	// Only the demo login identity gets the demo seed; registered users
	// start with an empty collection.
	if user.ID != session.DemoUserID {
		return nil, nil
	}
	seed := demoSeed(user.ID)
	if err := s.persist(ctx, user.ID, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func (s *Service) persist(ctx context.Context, userID string, list []Pickup) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKey(userID), data)
}

func (s *Service) publish(topic, key string, ev any) {
	if s.pub == nil {
		return
	}
	go func() {
		if err := s.pub.Publish(context.Background(), topic, key, ev); err != nil {
			log.Printf("[pickups] failed to publish %s: %v", topic, err)
		}
	}()
}

func (s *Service) broadcast(userID, pickupID, status string, pointsEarned int) {
	if s.bcast == nil {
		return
	}
	s.bcast.BroadcastStatus(userID, pickupID, status, pointsEarned)
}

func validateSchedule(req ScheduleRequest) error {
	if !validation.ValidateAddress(req.Address) {
		return errors.New("invalid address")
	}
	if !validation.ValidateDate(req.Date) {
		return errors.New("invalid pickup date")
	}
	if !validation.ValidateTimeSlot(req.Time) {
		return errors.New("invalid time slot")
	}
	if len(req.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for _, it := range req.Items {
		if !validation.ValidateWasteType(it.Type) {
			return fmt.Errorf("unknown item type %q", it.Type)
		}
		if it.Quantity < 1 {
			return errors.New("item quantity must be at least 1")
		}
	}
	return nil
}

// demoSeed mirrors the demo data the mock login identity always starts
// with: one completed pickup with points earned and one still scheduled.
func demoSeed(userID string) []Pickup {
	earned := 50
	return []Pickup{
		{
			ID:      "1",
			UserID:  userID,
			Address: "123 Green St, Eco City",
			Date:    "2025-02-15",
			Time:    "10:00",
			Status:  StatusCompleted,
			Items: []PickupItem{
				{ID: "1", Type: "Computer", Quantity: 1},
				{ID: "2", Type: "Mobile Phone", Quantity: 2},
			},
			PointsEarned: &earned,
			CreatedAt:    time.Date(2025, 2, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:      "2",
			UserID:  userID,
			Address: "456 Recycle Ave, Eco City",
			Date:    "2025-03-20",
			Time:    "14:00",
			Status:  StatusScheduled,
			Items: []PickupItem{
				{ID: "3", Type: "Television", Quantity: 1},
				{ID: "4", Type: "Printer", Quantity: 1},
			},
			CreatedAt: time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC),
		},
	}
}
