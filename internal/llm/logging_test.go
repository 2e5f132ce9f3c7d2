package llm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/mathquest/internal/store"
)

type recordedEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordedEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: `{"problem":"x","answer":1}`,
		Usage:   Usage{InputTokens: 30, OutputTokens: 12},
	})
	rec := &recordedEvents{}
	p := WithLogging(mock, ProviderGemini, rec, nil)

	ctx := WithPurpose(context.Background(), "story-problem")
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: UserPrompt("make a story"), Schema: testStorySchema()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.Provider != ProviderGemini || e.Model != "mock" || e.Purpose != "story-problem" {
		t.Errorf("event identity = %+v", e)
	}
	if !e.Success || e.InputTokens != 30 || e.OutputTokens != 12 {
		t.Errorf("event outcome = %+v", e)
	}
	if e.ResponseBody != `{"problem":"x","answer":1}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	for _, want := range []string{"[system]\nsys", "[user]\nmake a story", "[schema: test-story]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
}

func TestLogging_RecordsFailureAndLogs(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	rec := &recordedEvents{}

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	p := WithLogging(mock, ProviderOpenAI, rec, log)
	_, err := p.Generate(WithPurpose(context.Background(), "hint"), Request{Messages: UserPrompt("hint")})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(rec.events) != 1 || rec.events[0].Success {
		t.Fatalf("events = %+v", rec.events)
	}
	if !strings.Contains(rec.events[0].ErrorMessage, "down") {
		t.Errorf("error message = %q", rec.events[0].ErrorMessage)
	}
	out := buf.String()
	if !strings.Contains(out, "llm request failed") || !strings.Contains(out, "purpose=hint") {
		t.Errorf("log output = %q", out)
	}
}

func TestLogging_RecorderErrorDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "Count up."})
	rec := &recordedEvents{err: errors.New("disk full")}
	p := WithLogging(mock, ProviderMock, rec, nil)

	resp, err := p.Generate(context.Background(), Request{Messages: UserPrompt("hint")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Count up." {
		t.Fatalf("content = %q", resp.Content)
	}
}

func TestLogging_NilRecorder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "ok"})
	p := WithLogging(mock, ProviderMock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}

// slowProvider blocks until its context is done.
type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestTimeout_CancelsSlowProvider(t *testing.T) {
	p := WithTimeout(slowProvider{}, 20*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("timeout did not fire")
	}
	if p.ModelID() != "slow" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}

func TestTimeout_ZeroIsPassThrough(t *testing.T) {
	mock := NewMockProvider()
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatal("expected zero timeout to return the provider unchanged")
	}
}

func TestDecoratorChain_RetryRecordsEachAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: "Try adding 2 and 3."},
	)
	rec := &recordedEvents{}
	p := WithTimeout(WithRetry(WithLogging(mock, ProviderMock, rec, nil), retryConfig(), nil), time.Second)

	resp, err := p.Generate(context.Background(), Request{Messages: UserPrompt("hint")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Try adding 2 and 3." {
		t.Fatalf("content = %q", resp.Content)
	}
	if len(rec.events) != 2 || rec.events[0].Success || !rec.events[1].Success {
		t.Fatalf("events = %+v", rec.events)
	}
}
