package notifier

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hray3182/RemindSnap/internal/messenger"
	"github.com/hray3182/RemindSnap/internal/models"
	"github.com/hray3182/RemindSnap/internal/rrule"
)

var (
	scansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remindsnap_notifier_scans_total",
		Help: "Number of due-reminder scans performed.",
	})
	sentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remindsnap_notifications_sent_total",
		Help: "Number of reminder notifications delivered.",
	})
	sendFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remindsnap_notification_failures_total",
		Help: "Number of reminder notification deliveries that failed.",
	})
)

// Store is the persistence surface the notifier needs.
type Store interface {
	GetDue(ctx context.Context, until time.Time) ([]*models.Reminder, error)
	ClaimForNotification(ctx context.Context, id int, now time.Time) (bool, error)
	ReleaseClaim(ctx context.Context, id int) error
	Reschedule(ctx context.Context, id int, next time.Time) error
}

// Notifier periodically scans for due reminders and delivers each one
// exactly once per occurrence. All work runs sequentially inside the loop
// goroutine, so two scans can never overlap.
type Notifier struct {
	store         Store
	sender        messenger.Sender
	checkInterval time.Duration
	notifyCh      chan struct{}
}

func New(store Store, sender messenger.Sender, checkInterval time.Duration) *Notifier {
	if checkInterval <= 0 {
		checkInterval = time.Second
	}
	return &Notifier{
		store:         store,
		sender:        sender,
		checkInterval: checkInterval,
		notifyCh:      make(chan struct{}, 1),
	}
}

// Notify triggers an immediate check. Non-blocking if a check is already pending.
func (n *Notifier) Notify() {
	select {
	case n.notifyCh <- struct{}{}:
	default:
		// Channel already has a pending notification, skip
	}
}

// Start runs the scan loop until ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	log.Println("Notifier started")
	ticker := time.NewTicker(n.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Notifier stopped")
			return
		case <-ticker.C:
			n.Check(ctx)
		case <-n.notifyCh:
			n.Check(ctx)
		}
	}
}

// Check performs one scan for due reminders. For each due reminder: claim
// the notified flag with a check-and-set, deliver, and on delivery failure
// release the claim so a later scan retries it. A reminder is therefore
// never left marked notified without having been delivered.
func (n *Notifier) Check(ctx context.Context) {
	scansTotal.Inc()

	now := time.Now()
	reminders, err := n.store.GetDue(ctx, now)
	if err != nil {
		log.Printf("Failed to get due reminders: %v", err)
		return
	}

	for _, reminder := range reminders {
		if !reminder.Due(now) {
			continue
		}

		claimed, err := n.store.ClaimForNotification(ctx, reminder.ID, now)
		if err != nil {
			log.Printf("Failed to claim reminder %d: %v", reminder.ID, err)
			continue
		}
		if !claimed {
			// Already delivered or deleted since the scan
			continue
		}

		if err := n.sender.Send(ctx, reminder.Message); err != nil {
			sendFailuresTotal.Inc()
			log.Printf("Failed to send reminder %d: %v", reminder.ID, err)
			if err := n.store.ReleaseClaim(ctx, reminder.ID); err != nil {
				log.Printf("Failed to release claim on reminder %d: %v", reminder.ID, err)
			}
			continue
		}

		sentTotal.Inc()
		log.Printf("Sent reminder %d (%q)", reminder.ID, reminder.Message)

		if reminder.IsRecurring() {
			n.reschedule(ctx, reminder, now)
		}
	}
}

// reschedule moves a recurring reminder to its next occurrence after the
// delivery that just happened.
func (n *Notifier) reschedule(ctx context.Context, reminder *models.Reminder, now time.Time) {
	next, err := rrule.NextOccurrence(reminder.RecurrenceRule, reminder.RemindAt, now)
	if err != nil {
		log.Printf("Failed to calculate next occurrence for reminder %d: %v", reminder.ID, err)
		return
	}
	if next == nil {
		// Rule exhausted, reminder stays delivered
		return
	}

	if err := n.store.Reschedule(ctx, reminder.ID, *next); err != nil {
		log.Printf("Failed to reschedule reminder %d: %v", reminder.ID, err)
		return
	}
	log.Printf("Rescheduled reminder %d for %s", reminder.ID, next.Format("2006-01-02 15:04"))
}
