package store

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	attemptsTableName = "attempts"
	queuesTableName   = "study_queues"
	profilesTableName = "profiles"
	llmEventTableName = "llm_request_events"
)

var (
	attemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "uuid", Type: field.TypeString, Unique: true},
		{Name: "learner", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "time_taken", Type: field.TypeInt},
		{Name: "attempted_at", Type: field.TypeInt64, Comment: "Unix nanoseconds"},
	}
	attemptsTable = &schema.Table{
		Name:       attemptsTableName,
		Columns:    attemptsColumns,
		PrimaryKey: []*schema.Column{attemptsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attempt_learner_attempted_at",
				Columns: []*schema.Column{attemptsColumns[2], attemptsColumns[8]},
			},
		},
	}

	queuesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "learner", Type: field.TypeString, Unique: true},
		{Name: "topics", Type: field.TypeString, Comment: "JSON array of topic names"},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	queuesTable = &schema.Table{
		Name:       queuesTableName,
		Columns:    queuesColumns,
		PrimaryKey: []*schema.Column{queuesColumns[0]},
	}

	profilesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "learner", Type: field.TypeString, Unique: true},
		{Name: "xp", Type: field.TypeInt},
		{Name: "badges", Type: field.TypeString, Comment: "JSON array of badge names"},
	}
	profilesTable = &schema.Table{
		Name:       profilesTableName,
		Columns:    profilesColumns,
		PrimaryKey: []*schema.Column{profilesColumns[0]},
	}

	llmEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString},
		{Name: "request_body", Type: field.TypeString},
		{Name: "response_body", Type: field.TypeString},
	}
	llmEventTable = &schema.Table{
		Name:       llmEventTableName,
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_purpose",
				Columns: []*schema.Column{llmEventColumns[4]},
			},
		},
	}

	tables = []*schema.Table{attemptsTable, queuesTable, profilesTable, llmEventTable}
)

// migrate creates or updates all tables to match the declarations above.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
