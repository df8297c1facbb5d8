package archive

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ecopickup-service/internal/events"
	"ecopickup-service/pkg/stream"
)

// Archiver consumes pickup.completed events and writes a permanent row to
// Postgres. The key-value medium stays the source of truth; this table is
// a write-only reporting sink.
type Archiver struct {
	db     *pgxpool.Pool
	stream *stream.Client
}

// NewArchiver creates an archiver.
func NewArchiver(db *pgxpool.Pool, st *stream.Client) *Archiver {
	return &Archiver{db: db, stream: st}
}

// Start begins consuming pickup.completed in a background goroutine.
func (a *Archiver) Start(ctx context.Context) {
	a.stream.Subscribe(ctx, stream.TopicPickupCompleted, "pickup-archive", func(data []byte) error {
		var ev events.PickupCompletedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}

		completedAt, err := time.Parse(time.RFC3339, ev.CompletedAt)
		if err != nil {
			completedAt = time.Now()
		}

		_, err = a.db.Exec(ctx,
			`INSERT INTO completed_pickups (pickup_id,user_id,address,points_earned,item_count,completed_at)
			 VALUES ($1,$2,$3,$4,$5,$6)
			 ON CONFLICT (pickup_id) DO NOTHING`,
			ev.PickupID, ev.UserID, ev.Address, ev.PointsEarned, ev.ItemCount, completedAt)
		if err != nil {
			log.Printf("[archive] failed to archive pickup %s: %v", ev.PickupID, err)
			return err
		}

		log.Printf("[archive] archived pickup %s (user=%s points=%d)", ev.PickupID, ev.UserID, ev.PointsEarned)
		return nil
	})
}
