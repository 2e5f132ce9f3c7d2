package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	_, err := r.insertEvent(ctx, answerEvtsTable,
		[]string{"session_id", "difficulty", "question_type", "question_text",
			"correct_answer", "learner_answer", "correct", "time_ms"},
		[]any{data.SessionID, data.Difficulty, data.QuestionType, data.QuestionText,
			data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) ListAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	sel := builder().Select(
		"id", "sequence", "timestamp", "session_id", "difficulty", "question_type",
		"question_text", "correct_answer", "learner_answer", "correct", "time_ms",
	).
		From(entsql.Table(answerEvtsTable)).
		OrderBy(entsql.Desc("sequence"))
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var out []AnswerEvent
	query, args := sel.Query()
	err := r.scanRows(ctx, query, args, func(rows *sql.Rows) error {
		var e AnswerEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Difficulty,
			&e.QuestionType, &e.QuestionText, &e.CorrectAnswer, &e.LearnerAnswer,
			&e.Correct, &e.TimeMs); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list answer events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) AnswerStats(ctx context.Context) ([]AnswerStats, error) {
	query, args := builder().Select("question_type", "correct", entsql.Count("*")).
		From(entsql.Table(answerEvtsTable)).
		GroupBy("question_type", "correct").
		OrderBy("question_type").
		Query()

	var out []AnswerStats
	index := map[string]int{}
	err := r.scanRows(ctx, query, args, func(rows *sql.Rows) error {
		var (
			typ     string
			correct bool
			n       int
		)
		if err := rows.Scan(&typ, &correct, &n); err != nil {
			return err
		}
		i, ok := index[typ]
		if !ok {
			i = len(out)
			index[typ] = i
			out = append(out, AnswerStats{QuestionType: typ})
		}
		out[i].Attempts += n
		if correct {
			out[i].Correct += n
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate answers: %w", err)
	}
	return out, nil
}
