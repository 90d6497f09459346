package interview

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Controls shown under the current question.
const (
	RevealHint = "[r] reveal answer  [q] quit"
	NextHint   = "[n] next question  [q] quit"
	FinishHint = "[n] finish  [q] quit"
)

const rule = "----------------------------------------"

// Render writes a plain-text view of a session snapshot.
func Render(w io.Writer, st State) (err error) {
	var b strings.Builder

	switch st.Phase {
	case NotStarted:
		b.WriteString("Mock interview not started.\n")
	case Completed:
		b.WriteString(rule + "\n")
		b.WriteString(fmt.Sprintf("Mock interview complete. You answered %d question(s).\n", st.Total))
	case InProgress, AnswerRevealed:
		if st.Question == nil {
			break
		}
		q := st.Question
		b.WriteString(rule + "\n")
		b.WriteString(fmt.Sprintf("Question %d of %d", st.Index+1, st.Total))
		if q.Category != "" {
			b.WriteString(" (" + q.Category + ")")
		}
		b.WriteString("\n\n" + q.Question + "\n\n")

		if !st.AnswerRevealed {
			b.WriteString(RevealHint + "\n")
			break
		}

		b.WriteString("Answer:\n" + q.Answer + "\n")
		if len(q.Tips) > 0 {
			b.WriteString("\nTips:\n")
			for _, tip := range q.Tips {
				b.WriteString("  - " + tip + "\n")
			}
		}
		b.WriteString("\n")
		if st.Index+1 < st.Total {
			b.WriteString(NextHint + "\n")
		} else {
			b.WriteString(FinishHint + "\n")
		}
	}

	_, err = io.WriteString(w, b.String())
	if err != nil {
		err = errors.Wrap(err, "failed to write mock interview view")
		return err
	}

	return err
}
