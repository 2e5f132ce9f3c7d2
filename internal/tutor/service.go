package tutor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/logging"
	"github.com/abhisek/mathquest/internal/problemgen"
)

// FallbackHint is shown whenever a hint cannot be generated.
const FallbackHint = "Try counting on your fingers!"

// Service produces remote story problems and hints. Every public method
// returns a usable value; backend failures are logged and replaced with
// local fallbacks.
type Service struct {
	provider llm.Provider
	cfg      Config
	local    *problemgen.Generator
	log      logrus.FieldLogger
}

// New creates a tutor service backed by provider.
func New(provider llm.Provider, cfg Config) *Service {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		provider: provider,
		cfg:      cfg,
		local:    problemgen.New(cfg.Source),
		log:      log.WithField("component", "tutor"),
	}
}

type storyOutput struct {
	Problem string  `json:"problem"`
	Answer  float64 `json:"answer"`
}

// StoryProblem asks the backend for a word problem at difficulty d. Any
// failure yields Fallback instead.
func (s *Service) StoryProblem(ctx context.Context, d problemgen.Difficulty) problemgen.Question {
	q, err := s.generateStory(ctx, d)
	if err != nil {
		s.log.WithError(err).WithField("difficulty", d).Warn("story problem generation failed, using fallback")
		return s.Fallback()
	}
	return q
}

// Fallback returns a plain addition question over two numbers in [1, 10].
func (s *Service) Fallback() problemgen.Question {
	return s.local.Addition(problemgen.Easy)
}

func (s *Service) generateStory(ctx context.Context, d problemgen.Difficulty) (problemgen.Question, error) {
	if s.provider == nil {
		return problemgen.Question{}, errors.New("no provider configured")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeStory)

	resp, err := s.provider.Generate(ctx, s.request(buildStoryPrompt(d), StorySchema))
	if err != nil {
		return problemgen.Question{}, fmt.Errorf("story generation: %w", err)
	}

	raw := llm.StripCodeFence(resp.Content)
	if raw == "" {
		return problemgen.Question{}, errors.New("empty story response")
	}
	if err := llm.ValidateJSON(StorySchema, raw); err != nil {
		return problemgen.Question{}, err
	}

	var out storyOutput
	if err := resp.Decode(&out); err != nil {
		return problemgen.Question{}, err
	}
	return storyQuestion(out, d, s.log)
}

// storyQuestion converts a decoded response into a question. Answers must
// be whole numbers that fit in an int32; values outside [1, 2R] are
// accepted but logged.
func storyQuestion(out storyOutput, d problemgen.Difficulty, log logrus.FieldLogger) (problemgen.Question, error) {
	text := strings.TrimSpace(out.Problem)
	if out.Answer != math.Trunc(out.Answer) || math.IsInf(out.Answer, 0) {
		return problemgen.Question{}, fmt.Errorf("story answer %v is not a whole number", out.Answer)
	}
	if math.Abs(out.Answer) > math.MaxInt32 {
		return problemgen.Question{}, fmt.Errorf("story answer %v is too large", out.Answer)
	}
	answer := int(out.Answer)
	if answer < 1 || answer > 2*d.Range() {
		log.WithFields(logrus.Fields{
			"answer":     answer,
			"difficulty": d,
		}).Warn("story answer outside the expected range")
	}

	q := problemgen.Question{
		Type:   problemgen.TypeAIStory,
		Text:   text,
		Answer: problemgen.NumberAnswer(answer),
	}
	if verr := problemgen.Validate(q); verr != nil {
		return problemgen.Question{}, verr
	}
	return q, nil
}

// Hint asks the backend for a one-sentence hint for q. The reply is
// trimmed with internal whitespace collapsed. Any failure or an empty
// reply yields FallbackHint.
func (s *Service) Hint(ctx context.Context, q problemgen.Question) string {
	hint, err := s.generateHint(ctx, q)
	if err != nil {
		s.log.WithError(err).WithField("question_type", q.Type).Warn("hint generation failed, using fallback")
		return FallbackHint
	}
	return hint
}

func (s *Service) generateHint(ctx context.Context, q problemgen.Question) (string, error) {
	if s.provider == nil {
		return "", errors.New("no provider configured")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeHint)

	resp, err := s.provider.Generate(ctx, s.request(buildHintPrompt(q), nil))
	if err != nil {
		return "", fmt.Errorf("hint generation: %w", err)
	}

	hint := strings.Join(strings.Fields(resp.Content), " ")
	if hint == "" {
		return "", errors.New("empty hint response")
	}
	return hint, nil
}

func (s *Service) request(prompt string, schema *llm.Schema) llm.Request {
	return llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(prompt),
		Schema:      schema,
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
}
