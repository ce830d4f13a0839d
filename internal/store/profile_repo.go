package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizmind/internal/gamification"
)

// profileRepo implements ProfileRepo.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Get(ctx context.Context, learner string) (*gamification.Profile, error) {
	query, args := builder.Select("xp", "badges").
		From(entsql.Table(profilesTableName)).
		Where(entsql.EQ("learner", learner)).
		Query()

	p := &gamification.Profile{Learner: learner, Badges: []string{}}
	var raw string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.XP, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &p.Badges); err != nil {
		return nil, fmt.Errorf("decode badges: %w", err)
	}
	return p, nil
}

func (r *profileRepo) Save(ctx context.Context, p *gamification.Profile) error {
	badges := p.Badges
	if badges == nil {
		badges = []string{}
	}
	b, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("encode badges: %w", err)
	}

	query, args := builder.Insert(profilesTableName).
		Columns("learner", "xp", "badges").
		Values(p.Learner, p.XP, string(b)).
		OnConflict(
			entsql.ConflictColumns("learner"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *profileRepo) Top(ctx context.Context, limit, offset int) ([]gamification.Profile, error) {
	sel := builder.Select("learner", "xp", "badges").
		From(entsql.Table(profilesTableName)).
		OrderBy(entsql.Desc("xp"), entsql.Asc("learner"))
	if limit > 0 {
		sel.Limit(limit)
	}
	if offset > 0 {
		sel.Offset(offset)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	out := []gamification.Profile{}
	for rows.Next() {
		var (
			p   gamification.Profile
			raw string
		)
		if err := rows.Scan(&p.Learner, &p.XP, &raw); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &p.Badges); err != nil {
			return nil, fmt.Errorf("decode badges for %s: %w", p.Learner, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *profileRepo) Count(ctx context.Context) (int, error) {
	query, args := builder.Select(entsql.Count("id")).
		From(entsql.Table(profilesTableName)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}
