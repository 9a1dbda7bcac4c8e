// Package domain contains application usecases orchestrating domain logic by reminder.
package domain

import (
	"context"
	"fmt"
	"time"
)

// SendReminders scans loops whose reminder schedule matches the given instant
// and texts every member, best effort. It reads loop and member data only and
// returns the number of messages delivered.
func (u *Usecase) SendReminders(ctx context.Context, now time.Time) (int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	loops, err := u.repo.LoopsDueForReminder(ctx, now.Weekday(), now.Format("15:04"))
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, loop := range loops {
		members, err := u.repo.Members(ctx, loop.ID)
		if err != nil {
			u.log.Errorw("reminder member lookup failed", "error", err, "loop_id", loop.ID)
			continue
		}

		body := fmt.Sprintf("It's time to share your update with %s! Reply to this number with text or photos.", loop.Name)
		for _, m := range members {
			if m.PhoneNumber == "" {
				continue
			}
			if err := u.collab.SMS.SendSMS(ctx, m.PhoneNumber, body); err != nil {
				u.log.Errorw("reminder send failed", "error", err, "loop_id", loop.ID, "user_id", m.ID)
				continue
			}
			delivered++
		}
	}

	if delivered > 0 {
		u.log.Infow("reminders sent", "loops", len(loops), "messages", delivered)
	}
	return delivered, nil
}
