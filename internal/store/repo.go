package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	SessionID string // only events from this game session
	Purpose   string // LLM events only: filter by purpose label
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

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates stored LLM requests for one purpose and model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
}

// AnswerEventData records one graded answer.
type AnswerEventData struct {
	SessionID     string
	Difficulty    string
	QuestionType  string
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	TimeMs        int64
}

// AnswerEvent is a stored answer.
type AnswerEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// AnswerStats aggregates stored answers for one question type.
type AnswerStats struct {
	QuestionType string
	Attempts     int
	Correct      int
}

// HintEventData records that a hint was shown.
type HintEventData struct {
	SessionID    string
	QuestionType string
	QuestionText string
	HintText     string
	// Fallback is true when the fixed fallback hint was shown instead of a
	// generated one.
	Fallback bool
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendAnswer records a graded answer.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendHint records a shown hint.
	AppendHint(ctx context.Context, data HintEventData) error

	// ListLLMRequests returns LLM events, newest first.
	ListLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMRequest returns a single LLM event by ID, or nil if absent.
	GetLLMRequest(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsage aggregates LLM events by purpose and model.
	LLMUsage(ctx context.Context) ([]LLMUsage, error)

	// ListAnswers returns answer events, newest first.
	ListAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)

	// AnswerStats aggregates answer events by question type.
	AnswerStats(ctx context.Context) ([]AnswerStats, error)

	// CountHints returns how many hints were shown, optionally for one session.
	CountHints(ctx context.Context, opts QueryOpts) (int, error)
}
