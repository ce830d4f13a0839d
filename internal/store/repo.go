package store

import (
	"context"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizmind/internal/attempt"
	"github.com/abhisek/quizmind/internal/gamification"
)

// builder renders SQL for the SQLite dialect.
var builder = entsql.Dialect(dialect.SQLite)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose filter (empty = all)
}

// AttemptRepo stores completed quizzes.
type AttemptRepo interface {
	// Append stores a new attempt. A missing ID or Timestamp is filled in.
	Append(ctx context.Context, rec *attempt.Record) error

	// History returns the learner's attempts in ascending timestamp order.
	History(ctx context.Context, learner string) ([]attempt.Record, error)

	// Recent returns up to limit attempts, newest first (0 = all).
	Recent(ctx context.Context, learner string, limit int) ([]attempt.Record, error)

	// Get returns the attempt with the given ID, or nil if none exists.
	Get(ctx context.Context, id string) (*attempt.Record, error)

	// AppendBatch stores recs in one transaction. A record whose learner and
	// topic match a stored attempt within the same second is skipped. It
	// returns the number stored; on error nothing is stored.
	AppendBatch(ctx context.Context, recs []attempt.Record) (int, error)

	// Global totals every learner's attempts.
	Global(ctx context.Context) (GlobalStats, error)
}

// GlobalStats covers all learners.
type GlobalStats struct {
	Learners        int
	QuestionsSolved int
}

// QueueRepo persists the study queue the caller round-trips through
// studyqueue.Apply.
type QueueRepo interface {
	// Load returns the learner's queue, or an empty queue if none was saved.
	Load(ctx context.Context, learner string) ([]string, error)

	// Save replaces the learner's queue.
	Save(ctx context.Context, learner string, queue []string) error
}

// ProfileRepo persists learner XP and badges.
type ProfileRepo interface {
	// Get returns the learner's profile, or a zero profile if none was saved.
	Get(ctx context.Context, learner string) (*gamification.Profile, error)

	// Save upserts the profile.
	Save(ctx context.Context, p *gamification.Profile) error

	// Top returns up to limit profiles by XP, highest first, skipping offset.
	// Equal XP is ordered by learner name.
	Top(ctx context.Context, limit, offset int) ([]gamification.Profile, error)

	// Count returns the number of stored profiles.
	Count(ctx context.Context) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}

// LLMUsage is the aggregate for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}
