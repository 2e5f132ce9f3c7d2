package session

import (
	"sync/atomic"

	"github.com/abhisek/mathquest/internal/problemgen"
	sess "github.com/abhisek/mathquest/internal/session"
)

// requestSeq numbers session requests across all quiz screens, so a reply
// only matches the screen and request that asked for it.
var requestSeq atomic.Uint64

func nextRequest() uint64 {
	return requestSeq.Add(1)
}

// questionReadyMsg carries the next question, or the error from starting
// a new game.
type questionReadyMsg struct {
	req      uint64
	Question problemgen.Question
	Err      error
}

// answerGradedMsg carries the outcome of Submit.
type answerGradedMsg struct {
	req    uint64
	Result sess.Result
	Err    error
}

// hintReadyMsg carries the tutor's hint message.
type hintReadyMsg struct {
	req  uint64
	Text string
}
