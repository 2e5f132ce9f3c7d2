package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/mathquest/internal/logging"
	"github.com/abhisek/mathquest/internal/store"
)

// EventRecorder persists one row per LLM call.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner  Provider
	name   string
	events EventRecorder
	log    logrus.FieldLogger
}

// WithLogging wraps a Provider with event recording and diagnostic logging.
// Both events and log may be nil.
func WithLogging(p Provider, name string, events EventRecorder, log logrus.FieldLogger) Provider {
	if log == nil {
		log = logging.Discard()
	}
	return &LoggingProvider{inner: p, name: name, events: events, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Content
	}

	entry := l.log.WithFields(logrus.Fields{
		"provider":   data.Provider,
		"model":      data.Model,
		"purpose":    purpose,
		"latency_ms": latencyMs,
	})
	if err != nil {
		data.ErrorMessage = err.Error()
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.WithFields(logrus.Fields{
			"input_tokens":  data.InputTokens,
			"output_tokens": data.OutputTokens,
		}).Debug("llm request completed")
	}

	// Recording failures never fail the request.
	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.WithError(logErr).Warn("failed to record llm request event")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
