package session

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/mathquest/internal/badges"
	"github.com/abhisek/mathquest/internal/logging"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/tutor"
)

// storyChance is the probability of asking the tutor for a story problem
// on easy and medium. Hard always asks.
const storyChance = 0.3

var (
	// ErrNoQuestion is returned by Submit before any question was asked.
	ErrNoQuestion = errors.New("no question to answer")

	// ErrAlreadyAnswered is returned by Submit when the current question
	// has already been graded.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrEmptyAnswer is returned by Submit for blank input.
	ErrEmptyAnswer = errors.New("answer is empty")
)

// Tutor supplies remote story problems and hints. Implementations never
// fail; they fall back to local content.
type Tutor interface {
	StoryProblem(ctx context.Context, d problemgen.Difficulty) problemgen.Question
	Hint(ctx context.Context, q problemgen.Question) string
}

// Recorder persists answer and hint events.
type Recorder interface {
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
	AppendHint(ctx context.Context, data store.HintEventData) error
}

// Deps wires a Session to its collaborators. KV is required; everything
// else is optional.
type Deps struct {
	KV        store.KV
	Events    Recorder
	Generator *problemgen.Generator

	// Tutor enables story problems and hints. Leave nil when no LLM
	// credentials are configured.
	Tutor Tutor

	// Source drives the story-or-local decision and message choice.
	Source problemgen.Source

	Logger logrus.FieldLogger
}

// Result is the outcome of grading one answer.
type Result struct {
	Correct bool

	// Badge is set when this answer unlocked a badge.
	Badge *badges.Badge

	// Message is a cheer or an encouragement, or the badge announcement.
	Message string

	// Expected is the correct answer in display form.
	Expected string
}

// Session is the play-loop controller for the single local player. It is
// safe for use from multiple goroutines, but callers should not overlap
// NextQuestion or Hint calls for the same player.
type Session struct {
	id     string
	kv     store.KV
	events Recorder
	gen    *problemgen.Generator
	tutor  Tutor
	src    problemgen.Source
	log    logrus.FieldLogger
	now    func() time.Time

	mu       sync.Mutex
	state    State
	current  *problemgen.Question
	lastType problemgen.QuestionType
	answered bool
	askedAt  time.Time
}

// New loads the persisted state and returns a ready Session.
func New(ctx context.Context, deps Deps) (*Session, error) {
	if deps.KV == nil {
		return nil, errors.New("session: KV store is required")
	}
	src := deps.Source
	if src == nil {
		src = problemgen.DefaultSource
	}
	gen := deps.Generator
	if gen == nil {
		gen = problemgen.New(src)
	}
	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}

	st, err := LoadState(ctx, deps.KV)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	return &Session{
		id:     id,
		kv:     deps.KV,
		events: deps.Events,
		gen:    gen,
		tutor:  deps.Tutor,
		src:    src,
		log:    log.WithField("session_id", id),
		now:    time.Now,
		state:  st,
	}, nil
}

// ID returns the UUID correlating this session's events.
func (s *Session) ID() string { return s.id }

// AIEnabled reports whether a tutor is configured.
func (s *Session) AIEnabled() bool { return s.tutor != nil }

// State returns a copy of the player's progress.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Badges = slices.Clone(s.state.Badges)
	return st
}

// Current returns the question being asked, if any.
func (s *Session) Current() (problemgen.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return problemgen.Question{}, false
	}
	return *s.current, true
}

// Answered reports whether the current question has been graded.
func (s *Session) Answered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answered
}

// NewGame resets score, counts and badges, switches to difficulty d and
// persists the fresh state. The next question may be of any type.
func (s *Session) NewGame(ctx context.Context, d problemgen.Difficulty) error {
	st := ResetState(d)
	if err := SaveState(ctx, s.kv, st); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.current = nil
	s.lastType = problemgen.TypeNone
	s.answered = false
	return nil
}

// NextQuestion produces the next question. With a tutor configured it asks
// for a story problem always on hard and with probability 0.3 otherwise;
// every other question comes from the local generator, avoiding an
// immediate repeat of the previous type.
func (s *Session) NextQuestion(ctx context.Context) problemgen.Question {
	s.mu.Lock()
	d, last := s.state.Difficulty, s.lastType
	s.mu.Unlock()

	var q problemgen.Question
	if s.tutor != nil && (d == problemgen.Hard || s.src() < storyChance) {
		q = s.tutor.StoryProblem(ctx, d)
	} else {
		q = s.gen.Generate(d, last)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &q
	s.lastType = q.Type
	s.answered = false
	s.askedAt = s.now()
	return q
}

// Submit grades input against the current question, updates and persists
// the player's progress, and records an answer event.
func (s *Session) Submit(ctx context.Context, input string) (Result, error) {
	if strings.TrimSpace(input) == "" {
		return Result{}, ErrEmptyAnswer
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return Result{}, ErrNoQuestion
	}
	if s.answered {
		s.mu.Unlock()
		return Result{}, ErrAlreadyAnswered
	}
	q := *s.current
	correct := problemgen.CheckAnswer(input, q)
	res := Result{Correct: correct, Expected: q.Answer.String()}

	if correct {
		s.state.Score += PointsPerCorrect
		s.state.Correct++
		res.Message = pickMessage(s.src, correctMessages)
		if b := badges.Earned(s.state.Correct, s.state.Badges); b != nil {
			s.state.Badges = append(s.state.Badges, *b)
			res.Badge = b
			res.Message = badgeMessage(b.Name)
		}
	} else {
		s.state.Incorrect++
		res.Message = pickMessage(s.src, incorrectMessages)
	}
	s.answered = true
	st := s.state
	elapsed := s.now().Sub(s.askedAt)
	s.mu.Unlock()

	if err := SaveState(ctx, s.kv, st); err != nil {
		return res, err
	}

	if s.events != nil {
		err := s.events.AppendAnswer(ctx, store.AnswerEventData{
			SessionID:     s.id,
			Difficulty:    string(st.Difficulty),
			QuestionType:  q.Type.String(),
			QuestionText:  q.Text,
			CorrectAnswer: q.Answer.String(),
			LearnerAnswer: strings.TrimSpace(input),
			Correct:       correct,
			TimeMs:        elapsed.Milliseconds(),
		})
		if err != nil {
			s.log.WithError(err).Warn("failed to record answer event")
		}
	}
	return res, nil
}

// Hint returns the tutor message for the current question. Without a
// tutor or a question it returns HintUnavailable.
func (s *Session) Hint(ctx context.Context) string {
	q, ok := s.Current()
	if !ok || s.tutor == nil {
		return HintUnavailable
	}

	hint := s.tutor.Hint(ctx, q)

	if s.events != nil {
		err := s.events.AppendHint(ctx, store.HintEventData{
			SessionID:    s.id,
			QuestionType: q.Type.String(),
			QuestionText: q.Text,
			HintText:     hint,
			Fallback:     hint == tutor.FallbackHint,
		})
		if err != nil {
			s.log.WithError(err).Warn("failed to record hint event")
		}
	}
	return hintMessage(hint)
}

func pickMessage(src problemgen.Source, msgs []string) string {
	i := int(src() * float64(len(msgs)))
	return msgs[min(max(i, 0), len(msgs)-1)]
}
