package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// queueRepo implements QueueRepo. Each learner has one row holding the
// queue as a JSON array.
type queueRepo struct {
	db *sql.DB
}

func (r *queueRepo) Load(ctx context.Context, learner string) ([]string, error) {
	query, args := builder.Select("topics").
		From(entsql.Table(queuesTableName)).
		Where(entsql.EQ("learner", learner)).
		Query()

	var raw string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load study queue: %w", err)
	}

	queue := []string{}
	if err := json.Unmarshal([]byte(raw), &queue); err != nil {
		return nil, fmt.Errorf("decode study queue: %w", err)
	}
	return queue, nil
}

func (r *queueRepo) Save(ctx context.Context, learner string, queue []string) error {
	if queue == nil {
		queue = []string{}
	}
	b, err := json.Marshal(queue)
	if err != nil {
		return fmt.Errorf("encode study queue: %w", err)
	}

	query, args := builder.Insert(queuesTableName).
		Columns("learner", "topics", "updated_at").
		Values(learner, string(b), time.Now().UnixNano()).
		OnConflict(
			entsql.ConflictColumns("learner"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save study queue: %w", err)
	}
	return nil
}
