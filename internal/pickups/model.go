package pickups

import "time"

// Pickup lifecycle states. scheduled is the initial and only non-terminal
// state; completed and cancelled are terminal.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Pickup is one requested e-waste collection event.
type Pickup struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	Address      string       `json:"address"`
	Date         string       `json:"date"`
	Time         string       `json:"time"`
	Status       string       `json:"status"`
	Items        []PickupItem `json:"items"`
	PointsEarned *int         `json:"pointsEarned,omitempty"` // set only on completion
	CreatedAt    time.Time    `json:"createdAt"`
}

// PickupItem is one category/quantity line within a pickup.
type PickupItem struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Quantity int      `json:"quantity"`
	Weight   *float64 `json:"weight,omitempty"`
}

// ScheduleRequest is the body for POST /pickups.
type ScheduleRequest struct {
	Address string       `json:"address"`
	Date    string       `json:"date"`
	Time    string       `json:"time"`
	Items   []PickupItem `json:"items"`
}

// CompleteRequest is the body for PATCH /pickups/{id}/complete.
type CompleteRequest struct {
	PointsEarned int `json:"pointsEarned"`
}

// Stats are the dashboard metrics, recomputed from current state on every
// read. TotalPoints is the user record's balance, not a sum over pickups.
type Stats struct {
	CompletedPickups int `json:"completedPickups"`
	ScheduledPickups int `json:"scheduledPickups"`
	TotalPoints      int `json:"totalPoints"`
}
