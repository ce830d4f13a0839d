package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/quizmind/internal/attempt"
)

// attemptRepo implements AttemptRepo with the ent SQL builder.
type attemptRepo struct {
	db *sql.DB
}

var attemptSelectColumns = []string{
	"uuid", "learner", "topic", "difficulty",
	"score", "total_questions", "time_taken", "attempted_at",
}

func (r *attemptRepo) Append(ctx context.Context, rec *attempt.Record) error {
	return insertAttempt(ctx, r.db, rec)
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertAttempt(ctx context.Context, db execer, rec *attempt.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	query, args := builder.Insert(attemptsTableName).
		Columns(attemptSelectColumns...).
		Values(
			rec.ID, rec.Learner, rec.Topic, rec.Difficulty,
			rec.Score, rec.TotalQuestions, rec.TimeTakenSeconds, rec.Timestamp.UnixNano(),
		).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) AppendBatch(ctx context.Context, recs []attempt.Record) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for i := range recs {
		dup, err := hasAttemptInSecond(ctx, tx, &recs[i])
		if err != nil {
			return 0, err
		}
		if dup {
			continue
		}
		if err := insertAttempt(ctx, tx, &recs[i]); err != nil {
			return 0, err
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return added, nil
}

// hasAttemptInSecond reports whether the learner already has an attempt on
// the same topic within rec's second. Exported files keep second precision.
func hasAttemptInSecond(ctx context.Context, db execer, rec *attempt.Record) (bool, error) {
	lo := rec.Timestamp.Truncate(time.Second).UnixNano()
	query, args := builder.Select(entsql.Count("id")).
		From(entsql.Table(attemptsTableName)).
		Where(entsql.And(
			entsql.EQ("learner", rec.Learner),
			entsql.EQ("topic", rec.Topic),
			entsql.GTE("attempted_at", lo),
			entsql.LT("attempted_at", lo+int64(time.Second)),
		)).
		Query()

	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("check duplicate attempt: %w", err)
	}
	return n > 0, nil
}

func (r *attemptRepo) Global(ctx context.Context) (GlobalStats, error) {
	query, args := builder.Select(
		entsql.Count(entsql.Distinct("learner")),
		entsql.Sum("total_questions"),
	).
		From(entsql.Table(attemptsTableName)).
		Query()

	var (
		st     GlobalStats
		solved sql.NullInt64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.Learners, &solved); err != nil {
		return GlobalStats{}, fmt.Errorf("query global stats: %w", err)
	}
	st.QuestionsSolved = int(solved.Int64)
	return st, nil
}

func (r *attemptRepo) History(ctx context.Context, learner string) ([]attempt.Record, error) {
	query, args := builder.Select(attemptSelectColumns...).
		From(entsql.Table(attemptsTableName)).
		Where(entsql.EQ("learner", learner)).
		OrderBy(entsql.Asc("attempted_at"), entsql.Asc("id")).
		Query()
	return r.query(ctx, query, args)
}

func (r *attemptRepo) Recent(ctx context.Context, learner string, limit int) ([]attempt.Record, error) {
	sel := builder.Select(attemptSelectColumns...).
		From(entsql.Table(attemptsTableName)).
		Where(entsql.EQ("learner", learner)).
		OrderBy(entsql.Desc("attempted_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *attemptRepo) Get(ctx context.Context, id string) (*attempt.Record, error) {
	query, args := builder.Select(attemptSelectColumns...).
		From(entsql.Table(attemptsTableName)).
		Where(entsql.EQ("uuid", id)).
		Query()
	row := r.db.QueryRowContext(ctx, query, args...)
	rec, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return &rec, nil
}

func (r *attemptRepo) query(ctx context.Context, query string, args []any) ([]attempt.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	out := []attempt.Record{}
	for rows.Next() {
		rec, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(s scanner) (attempt.Record, error) {
	var (
		rec attempt.Record
		ts  int64
	)
	err := s.Scan(
		&rec.ID, &rec.Learner, &rec.Topic, &rec.Difficulty,
		&rec.Score, &rec.TotalQuestions, &rec.TimeTakenSeconds, &ts,
	)
	if err != nil {
		return attempt.Record{}, err
	}
	rec.Timestamp = time.Unix(0, ts).UTC()
	return rec, nil
}
