package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventFields = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.insertEvent(ctx, llmEventsTable,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func scanLLMEvent(rows *sql.Rows) (LLMRequestEvent, error) {
	var e LLMRequestEvent
	err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	return e, err
}

func (r *eventRepo) ListLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := builder().Select(llmEventFields...).
		From(entsql.Table(llmEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var out []LLMRequestEvent
	query, args := sel.Query()
	err := r.scanRows(ctx, query, args, func(rows *sql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list LLM request events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetLLMRequest(ctx context.Context, id int) (*LLMRequestEvent, error) {
	query, args := builder().Select(llmEventFields...).
		From(entsql.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var found *LLMRequestEvent
	err := r.scanRows(ctx, query, args, func(rows *sql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		found = &e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM request event %d: %w", id, err)
	}
	return found, nil
}

func (r *eventRepo) LLMUsage(ctx context.Context) ([]LLMUsage, error) {
	query, args := builder().Select(
		"purpose", "model", "success",
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
		entsql.Sum("latency_ms"),
	).
		From(entsql.Table(llmEventsTable)).
		GroupBy("purpose", "model", "success").
		OrderBy("purpose", "model").
		Query()

	var out []LLMUsage
	index := map[[2]string]int{}
	err := r.scanRows(ctx, query, args, func(rows *sql.Rows) error {
		var (
			purpose, model         string
			success                bool
			calls                  int
			in, outTok, latencySum int64
		)
		if err := rows.Scan(&purpose, &model, &success, &calls, &in, &outTok, &latencySum); err != nil {
			return err
		}
		key := [2]string{purpose, model}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, LLMUsage{Purpose: purpose, Model: model})
		}
		u := &out[i]
		u.Calls += calls
		if !success {
			u.Failures += calls
		}
		u.InputTokens += int(in)
		u.OutputTokens += int(outTok)
		u.LatencyMs += latencySum
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate LLM usage: %w", err)
	}
	return out, nil
}
