// Package interview runs mock interview sessions over a fixed list of questions.
package interview

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikogura/career-kit/pkg/questions"
	"github.com/pkg/errors"
)

// Phase is the state of a mock interview.
type Phase int

// Session phases. A session moves forward only:
// NotStarted -> InProgress(0) -> AnswerRevealed(0) -> InProgress(1) -> ... -> Completed.
const (
	NotStarted Phase = iota
	InProgress
	AnswerRevealed
	Completed
)

func (p Phase) String() (name string) {
	switch p {
	case NotStarted:
		name = "not_started"
	case InProgress:
		name = "in_progress"
	case AnswerRevealed:
		name = "answer_revealed"
	case Completed:
		name = "completed"
	default:
		name = fmt.Sprintf("phase(%d)", int(p))
	}
	return name
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() (text []byte, err error) {
	text = []byte(p.String())
	return text, err
}

// UnmarshalText decodes a phase name written by MarshalText.
func (p *Phase) UnmarshalText(text []byte) (err error) {
	for _, candidate := range []Phase{NotStarted, InProgress, AnswerRevealed, Completed} {
		if candidate.String() == string(text) {
			*p = candidate
			return err
		}
	}
	err = errors.Errorf("unknown mock interview phase: %q", string(text))
	return err
}

var (
	// ErrEmptySession is returned when starting a session without questions.
	ErrEmptySession = errors.New("mock interview needs at least one question")

	// ErrInvalidTransition is matched by every rejected transition.
	ErrInvalidTransition = errors.New("invalid mock interview transition")
)

// TransitionError reports an operation attempted from a phase that does not
// allow it. The session is left unchanged.
type TransitionError struct {
	Op    string
	Phase Phase
}

func (e *TransitionError) Error() (msg string) {
	msg = fmt.Sprintf("cannot %s while %s", e.Op, e.Phase)
	return msg
}

// Is makes every TransitionError match ErrInvalidTransition.
func (e *TransitionError) Is(target error) (ok bool) {
	ok = target == ErrInvalidTransition
	return ok
}

// Session walks a caller through an ordered list of questions. Sessions are
// owned by a single caller and are not safe for concurrent use.
type Session struct {
	id        uuid.UUID
	questions []questions.Question
	cursor    int
	phase     Phase
	startedAt time.Time
	now       func() time.Time
}

// State is a snapshot of a session.
type State struct {
	ID             string              `json:"id"`
	Phase          Phase               `json:"phase"`
	Index          int                 `json:"index"`
	Total          int                 `json:"total"`
	Question       *questions.Question `json:"question,omitempty"`
	AnswerRevealed bool                `json:"answer_revealed"`
	StartedAt      *time.Time          `json:"started_at,omitempty"`
}

// NewSession creates a session in the NotStarted phase.
func NewSession() (s *Session) {
	s = &Session{
		id:    uuid.New(),
		phase: NotStarted,
		now:   time.Now,
	}
	return s
}

// ID identifies the session.
func (s *Session) ID() (id uuid.UUID) {
	id = s.id
	return id
}

// Phase returns the current phase.
func (s *Session) Phase() (phase Phase) {
	phase = s.phase
	return phase
}

// Start fixes the question list and moves to the first question.
func (s *Session) Start(list []questions.Question) (err error) {
	if s.phase != NotStarted {
		err = &TransitionError{Op: "start", Phase: s.phase}
		return err
	}
	if len(list) == 0 {
		err = ErrEmptySession
		return err
	}

	s.questions = make([]questions.Question, len(list))
	copy(s.questions, list)
	s.cursor = 0
	s.phase = InProgress
	s.startedAt = s.now()

	return err
}

// Reveal shows the answer to the current question.
func (s *Session) Reveal() (err error) {
	if s.phase != InProgress {
		err = &TransitionError{Op: "reveal", Phase: s.phase}
		return err
	}
	s.phase = AnswerRevealed
	return err
}

// Next advances past a revealed answer, completing the session after the
// last question.
func (s *Session) Next() (err error) {
	if s.phase != AnswerRevealed {
		err = &TransitionError{Op: "advance", Phase: s.phase}
		return err
	}

	if s.cursor+1 < len(s.questions) {
		s.cursor++
		s.phase = InProgress
		return err
	}

	s.phase = Completed
	return err
}

// Reset discards the question list and returns to NotStarted so a new
// interview can begin.
func (s *Session) Reset() {
	s.questions = nil
	s.cursor = 0
	s.phase = NotStarted
	s.startedAt = time.Time{}
}

// Current returns the question under the cursor. ok is false before the
// session starts and after it completes.
func (s *Session) Current() (q questions.Question, ok bool) {
	if s.phase != InProgress && s.phase != AnswerRevealed {
		return q, ok
	}
	q = s.questions[s.cursor]
	ok = true
	return q, ok
}

// State returns a snapshot of the session. The answer is only included
// once revealed.
func (s *Session) State() (st State) {
	st = State{
		ID:             s.id.String(),
		Phase:          s.phase,
		Index:          s.cursor,
		Total:          len(s.questions),
		AnswerRevealed: s.phase == AnswerRevealed,
	}

	if !s.startedAt.IsZero() {
		started := s.startedAt
		st.StartedAt = &started
	}

	if q, ok := s.Current(); ok {
		if !st.AnswerRevealed {
			q.Answer = ""
			q.Tips = nil
		}
		st.Question = &q
	}

	return st
}
