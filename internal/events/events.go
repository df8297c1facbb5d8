package events

// PickupScheduledEvent is published to pickup.scheduled.
type PickupScheduledEvent struct {
	PickupID    string `json:"pickup_id"`
	UserID      string `json:"user_id"`
	Address     string `json:"address"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	ItemCount   int    `json:"item_count"`
	ScheduledAt string `json:"scheduled_at"`
}

// PickupCancelledEvent is published to pickup.cancelled.
type PickupCancelledEvent struct {
	PickupID string `json:"pickup_id"`
	UserID   string `json:"user_id"`
}

// PickupCompletedEvent is published to pickup.completed.
type PickupCompletedEvent struct {
	PickupID     string `json:"pickup_id"`
	UserID       string `json:"user_id"`
	Address      string `json:"address"`
	PointsEarned int    `json:"points_earned"`
	ItemCount    int    `json:"item_count"`
	CompletedAt  string `json:"completed_at"`
}
