// Package reminder periodically checks a learner's history for topics
// whose spaced-repetition review is due.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/quizmind/internal/attempt"
	"github.com/abhisek/quizmind/internal/spacedrep"
)

// DefaultInterval is how often a watching reminder re-checks.
const DefaultInterval = time.Hour

// HistorySource loads a learner's attempts in chronological order.
// store.AttemptRepo satisfies it.
type HistorySource interface {
	History(ctx context.Context, learner string) ([]attempt.Record, error)
}

// Notifier is told about due reviews.
type Notifier interface {
	NotifyDue(learner string, due []spacedrep.DueReview) error
}

// Reminder runs due-review checks on a gocron schedule.
type Reminder struct {
	source   HistorySource
	notifier Notifier
	learner  string
	every    time.Duration

	scheduler *gocron.Scheduler
	now       func() time.Time

	mu       sync.Mutex
	lastSent string
}

// New creates a Reminder for learner. A non-positive interval falls back
// to DefaultInterval.
func New(source HistorySource, notifier Notifier, learner string, every time.Duration) *Reminder {
	if every <= 0 {
		every = DefaultInterval
	}
	return &Reminder{
		source:    source,
		notifier:  notifier,
		learner:   learner,
		every:     every,
		scheduler: gocron.NewScheduler(time.UTC),
		now:       time.Now,
	}
}

// CheckNow loads history, computes due reviews and notifies when the due
// set differs from the last one sent. It returns the due reviews either way.
func (r *Reminder) CheckNow(ctx context.Context) ([]spacedrep.DueReview, error) {
	history, err := r.source.History(ctx, r.learner)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	due := spacedrep.DueReviews(history, r.now())

	key := fingerprint(due)
	r.mu.Lock()
	changed := key != r.lastSent
	r.mu.Unlock()

	if len(due) == 0 || !changed {
		r.remember(key)
		return due, nil
	}
	if err := r.notifier.NotifyDue(r.learner, due); err != nil {
		return due, fmt.Errorf("notify: %w", err)
	}
	r.remember(key)
	return due, nil
}

func (r *Reminder) remember(key string) {
	r.mu.Lock()
	r.lastSent = key
	r.mu.Unlock()
}

// Start schedules CheckNow every interval, beginning immediately. Checks
// never overlap. ctx is handed to each check.
func (r *Reminder) Start(ctx context.Context) error {
	_, err := r.scheduler.Every(r.every).SingletonMode().Do(r.tick, ctx)
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}
	r.scheduler.StartAsync()
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

func (r *Reminder) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := r.CheckNow(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "warning: review check failed: %v\n", err)
	}
}

func fingerprint(due []spacedrep.DueReview) string {
	var b strings.Builder
	for _, d := range due {
		fmt.Fprintf(&b, "%s\x00%d\x00", d.Topic, d.Interval)
	}
	return b.String()
}

// WriterNotifier prints one line per due topic.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) NotifyDue(learner string, due []spacedrep.DueReview) error {
	_, err := fmt.Fprintf(n.W, "%d review(s) due for %s:\n", len(due), learner)
	if err != nil {
		return err
	}
	for _, d := range due {
		if _, err := fmt.Fprintf(n.W, "  - %s (interval %dd, %s)\n", d.Topic, d.Interval, Overdue(d.DueInDays)); err != nil {
			return err
		}
	}
	return nil
}

// Overdue renders a DueInDays value for humans. Zero means due today;
// negative values count days overdue.
func Overdue(dueInDays int) string {
	switch {
	case dueInDays == 0:
		return "due today"
	case dueInDays == -1:
		return "1 day overdue"
	case dueInDays < 0:
		return fmt.Sprintf("%d days overdue", -dueInDays)
	case dueInDays == 1:
		return "due in 1 day"
	default:
		return fmt.Sprintf("due in %d days", dueInDays)
	}
}
