package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the migration and the query builders.
const (
	kvTable         = "kv_entries"
	llmEventsTable  = "llm_request_events"
	answerEvtsTable = "answer_events"
	hintEventsTable = "hint_events"
)

// eventColumns returns the columns every event table starts with: the row
// ID, the global sequence number and the wall-clock timestamp.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

var (
	// kvColumns holds the columns for the "kv_entries" table.
	kvColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// kvSchema holds the schema information for the "kv_entries" table.
	kvSchema = &schema.Table{
		Name:       kvTable,
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
	}

	// llmEventColumns holds the columns for the "llm_request_events" table.
	llmEventColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmEventSchema = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventColumns[5]}},
		},
	}

	// answerEventColumns holds the columns for the "answer_events" table.
	answerEventColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "difficulty", Type: field.TypeString},
		&schema.Column{Name: "question_type", Type: field.TypeString},
		&schema.Column{Name: "question_text", Type: field.TypeString},
		&schema.Column{Name: "correct_answer", Type: field.TypeString},
		&schema.Column{Name: "learner_answer", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	)
	answerEventSchema = &schema.Table{
		Name:       answerEvtsTable,
		Columns:    answerEventColumns,
		PrimaryKey: []*schema.Column{answerEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{answerEventColumns[3]}},
			{Name: "answerevent_question_type", Columns: []*schema.Column{answerEventColumns[5]}},
		},
	}

	// hintEventColumns holds the columns for the "hint_events" table.
	hintEventColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_type", Type: field.TypeString},
		&schema.Column{Name: "question_text", Type: field.TypeString},
		&schema.Column{Name: "hint_text", Type: field.TypeString},
		&schema.Column{Name: "fallback", Type: field.TypeBool, Default: false},
	)
	hintEventSchema = &schema.Table{
		Name:       hintEventsTable,
		Columns:    hintEventColumns,
		PrimaryKey: []*schema.Column{hintEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "hintevent_session_id", Columns: []*schema.Column{hintEventColumns[3]}},
		},
	}

	// tables lists everything Open migrates.
	tables = []*schema.Table{
		kvSchema,
		llmEventSchema,
		answerEventSchema,
		hintEventSchema,
	}
)
