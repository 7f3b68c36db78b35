package dashboard

import (
	"time"

	"cryosure/internal/models"

	"github.com/google/uuid"
)

// MaxNotifications bounds the recent-events log.
const MaxNotifications = 5

// NotificationLog is a most-recent-first list capped at MaxNotifications.
type NotificationLog []models.Notification

// Push prepends an entry and drops the oldest beyond the cap.
func (l NotificationLog) Push(text string, kind models.NotificationKind, now time.Time) NotificationLog {
	n := models.Notification{
		ID:        uuid.NewString(),
		Text:      text,
		Kind:      kind,
		Timestamp: now.UTC(),
	}
	out := make(NotificationLog, 0, MaxNotifications)
	out = append(out, n)
	for _, old := range l {
		if len(out) == MaxNotifications {
			break
		}
		out = append(out, old)
	}
	return out
}
