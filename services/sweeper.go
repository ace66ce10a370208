package services

import (
	"context"
	"log"
	"time"
)

// StartSweeper runs the expiry sweep on a fixed interval until ctx is
// cancelled. The sweep itself scans row by row, so room creation and
// lookups are never locked out for its duration.
func StartSweeper(ctx context.Context, rooms *RoomService, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := rooms.SweepExpired()
				if err != nil {
					log.Printf("room sweep failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("room sweep deactivated %d expired room(s)", n)
				}
			}
		}
	}()
}
