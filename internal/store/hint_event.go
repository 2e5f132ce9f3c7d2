package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendHint(ctx context.Context, data HintEventData) error {
	_, err := r.insertEvent(ctx, hintEventsTable,
		[]string{"session_id", "question_type", "question_text", "hint_text", "fallback"},
		[]any{data.SessionID, data.QuestionType, data.QuestionText, data.HintText, data.Fallback},
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) CountHints(ctx context.Context, opts QueryOpts) (int, error) {
	sel := builder().Select(entsql.Count("*")).From(entsql.Table(hintEventsTable))
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	query, args := sel.Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count hint events: %w", err)
	}
	return n, nil
}
