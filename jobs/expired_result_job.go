package jobs

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/quiz_backend/notifications"
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/robfig/cron/v3"
)

type ExpiredResultStore interface {
	ListExpired(ctx context.Context, cutoff time.Time) ([]repository.ExpiredResult, error)
	MarkNotified(ctx context.Context, resultID uint, at time.Time) error
}

// ExpiredResultNotifier emails users whose quiz results are older than the
// expiry window. Each result is reminded about once.
type ExpiredResultNotifier struct {
	results ExpiredResultStore
	sender  notifications.Sender
	expiry  time.Duration
	now     func() time.Time
}

func NewExpiredResultNotifier(results ExpiredResultStore, sender notifications.Sender, expiry time.Duration) *ExpiredResultNotifier {
	return &ExpiredResultNotifier{results: results, sender: sender, expiry: expiry, now: time.Now}
}

// Run sends the pending reminders and returns how many were delivered. A
// failed delivery is logged and retried on the next run.
func (n *ExpiredResultNotifier) Run(ctx context.Context) (int, error) {
	log.Println("Running job: ExpiredResultNotifier...")

	now := n.now().UTC()
	expired, err := n.results.ListExpired(ctx, now.Add(-n.expiry))
	if err != nil {
		log.Printf("Error checking for expired results: %v", err)
		return 0, err
	}
	if len(expired) == 0 {
		log.Println("No expired results found.")
		return 0, nil
	}

	sent := 0
	for _, r := range expired {
		subject, body := notifications.ExpiredQuizEmail(r.UserName, r.QuizTitle, r.FinishedAt)
		if err := n.sender.Send(ctx, r.UserName, r.UserEmail, subject, body); err != nil {
			log.Printf("🔥 Failed to send expiry reminder for result %d: %v", r.ResultID, err)
			continue
		}
		if err := n.results.MarkNotified(ctx, r.ResultID, now); err != nil {
			log.Printf("🔥 Failed to mark result %d as notified: %v", r.ResultID, err)
			return sent, err
		}
		sent++
	}

	log.Printf("✅ Sent %d expiry reminder(s).", sent)
	return sent, nil
}

// Schedule registers the notifier on c with a cron schedule.
func (n *ExpiredResultNotifier) Schedule(c *cron.Cron, schedule string) (cron.EntryID, error) {
	return c.AddFunc(schedule, func() {
		if _, err := n.Run(context.Background()); err != nil {
			log.Printf("🔥 Expired result notifier failed: %v", err)
		}
	})
}
