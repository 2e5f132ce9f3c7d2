package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screen"
	sess "github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

type phase int

const (
	phaseLoading phase = iota
	phaseAsking
	phaseGraded
)

// answerLimit caps typed answers; ordering answers are the longest.
const answerLimit = 24

// SessionScreen is the quiz screen: one question at a time, a tutor panel
// underneath, hints and new questions on demand.
type SessionScreen struct {
	ctx     context.Context
	sess    *sess.Session
	newGame *problemgen.Difficulty

	phase    phase
	question problemgen.Question
	input    components.AnswerInput
	choice   components.MultiChoice
	result   *sess.Result

	// busy is set while a session call is in flight; it blocks new
	// requests until the result message arrives.
	busy    bool
	pending uint64
	mood    Mood
	message string
	spinner spinner.Model
	errMsg  string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a quiz screen that continues the saved game.
func New(ctx context.Context, s *sess.Session) *SessionScreen {
	return &SessionScreen{
		ctx:     ctx,
		sess:    s,
		mood:    MoodHappy,
		message: sess.WelcomeMessage,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ArcadeCyan)),
		),
	}
}

// NewGame creates a quiz screen that resets progress and starts over at
// difficulty d.
func NewGame(ctx context.Context, s *sess.Session, d problemgen.Difficulty) *SessionScreen {
	scr := New(ctx, s)
	scr.newGame = &d
	return scr
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.newGame != nil {
		d := *s.newGame
		s.newGame = nil
		return s.startBusy(MoodThinking, sess.NewGameMessage, s.startGame(d))
	}
	return s.startBusy(MoodThinking, sess.ThinkingMessage, s.fetchQuestion())
}

func (s *SessionScreen) Title() string {
	return "Quiz · " + levelName(s.sess.State().Difficulty)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	hint := layout.KeyHint{Key: "Ctrl+H", Description: "Hint"}
	if s.busy {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	switch s.phase {
	case phaseGraded:
		return []layout.KeyHint{
			{Key: "N", Description: "Next"},
			hint,
			{Key: "Esc", Description: "Back"},
		}
	case phaseAsking:
		submit := layout.KeyHint{Key: "Enter", Description: "Check"}
		if s.question.HasOptions() {
			submit = layout.KeyHint{Key: pickKeys(len(s.question.Options)), Description: "Pick"}
		}
		return []layout.KeyHint{
			submit,
			hint,
			{Key: "Ctrl+N", Description: "New question"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		if !s.awaiting(msg.req) {
			return s, nil
		}
		return s.handleQuestionReady(msg)

	case answerGradedMsg:
		if !s.awaiting(msg.req) {
			return s, nil
		}
		return s.handleGraded(msg)

	case hintReadyMsg:
		if !s.awaiting(msg.req) {
			return s, nil
		}
		s.busy = false
		s.mood = MoodIdea
		s.message = msg.Text
		return s, nil

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and paste messages.
	if s.phase == phaseAsking && !s.question.HasOptions() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Progress is saved on every answer, so leaving is always safe. A
	// request still in flight reports to whichever screen is active and
	// is dropped there by its request number.
	if s.errMsg != "" || key == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.busy {
		return s, nil
	}

	switch key {
	case "ctrl+n":
		return s, s.startBusy(MoodThinking, sess.ThinkingMessage, s.fetchQuestion())
	case "ctrl+h":
		if s.phase == phaseLoading {
			return s, nil
		}
		return s, s.startBusy(MoodIdea, sess.HintingMessage, s.fetchHint())
	}

	switch s.phase {
	case phaseGraded:
		if key == "n" || key == "enter" {
			return s, s.startBusy(MoodThinking, sess.ThinkingMessage, s.fetchQuestion())
		}

	case phaseAsking:
		if key == "enter" {
			return s.submit(s.answerValue())
		}
		if s.question.HasOptions() {
			var pick bool
			s.choice, pick = s.choice.Update(msg)
			if pick {
				return s.submit(s.choice.Value())
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) answerValue() string {
	if s.question.HasOptions() {
		return s.choice.Value()
	}
	return s.input.Value()
}

// submit grades the answer. Blank input only nudges the player.
func (s *SessionScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	if strings.TrimSpace(answer) == "" {
		s.message = emptyAnswerMessage
		return s, nil
	}
	s.busy = true
	s.pending = nextRequest()
	req, ctx, session := s.pending, s.ctx, s.sess
	return s, func() tea.Msg {
		res, err := session.Submit(ctx, answer)
		return answerGradedMsg{req: req, Result: res, Err: err}
	}
}

// awaiting reports whether req is the request this screen is waiting on.
func (s *SessionScreen) awaiting(req uint64) bool {
	return s.busy && req == s.pending
}

func (s *SessionScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.question = msg.Question
	s.phase = phaseAsking
	s.result = nil
	s.mood = MoodHappy
	s.message = sess.PromptMessage

	if s.question.HasOptions() {
		s.choice = components.NewMultiChoice(s.question.Options)
		return s, nil
	}
	s.input = components.NewAnswerInput("Type your answer", s.question.Type.Numeric(), answerLimit)
	return s, s.input.Init()
}

func (s *SessionScreen) handleGraded(msg answerGradedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	switch {
	case errors.Is(msg.Err, sess.ErrEmptyAnswer):
		s.message = emptyAnswerMessage
		return s, nil
	case errors.Is(msg.Err, sess.ErrNoQuestion), errors.Is(msg.Err, sess.ErrAlreadyAnswered):
		return s, nil
	}

	res := msg.Result
	s.result = &res
	s.phase = phaseGraded
	s.message = res.Message
	if res.Correct {
		s.mood = MoodHappy
	} else {
		s.mood = MoodSad
	}
	if msg.Err != nil {
		s.message += " " + saveFailedMessage
	}

	if s.question.HasOptions() {
		s.choice.Lock(res.Expected)
	} else {
		s.input.Grade(res.Correct)
	}
	return s, nil
}

// startBusy marks a request in flight and starts the spinner. The request
// builder receives the number its reply must carry.
func (s *SessionScreen) startBusy(mood Mood, message string, request func(req uint64) tea.Cmd) tea.Cmd {
	s.busy = true
	s.pending = nextRequest()
	s.mood = mood
	s.message = message
	return tea.Batch(request(s.pending), s.spinner.Tick)
}

func (s *SessionScreen) startGame(d problemgen.Difficulty) func(uint64) tea.Cmd {
	ctx, session := s.ctx, s.sess
	return func(req uint64) tea.Cmd {
		return func() tea.Msg {
			if err := session.NewGame(ctx, d); err != nil {
				return questionReadyMsg{req: req, Err: err}
			}
			return questionReadyMsg{req: req, Question: session.NextQuestion(ctx)}
		}
	}
}

func (s *SessionScreen) fetchQuestion() func(uint64) tea.Cmd {
	ctx, session := s.ctx, s.sess
	return func(req uint64) tea.Cmd {
		return func() tea.Msg {
			return questionReadyMsg{req: req, Question: session.NextQuestion(ctx)}
		}
	}
}

func (s *SessionScreen) fetchHint() func(uint64) tea.Cmd {
	ctx, session := s.ctx, s.sess
	return func(req uint64) tea.Cmd {
		return func() tea.Msg {
			return hintReadyMsg{req: req, Text: session.Hint(ctx)}
		}
	}
}

// pickKeys labels the option letters, "A-C" for three options.
func pickKeys(n int) string {
	if n <= 1 {
		return "A"
	}
	return fmt.Sprintf("A-%c", 'A'+rune(n-1))
}

func levelName(d problemgen.Difficulty) string {
	switch d {
	case problemgen.Medium:
		return "Medium"
	case problemgen.Hard:
		return "Hard"
	default:
		return "Easy"
	}
}
