package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nikogura/career-kit/pkg/config"
	"github.com/nikogura/career-kit/pkg/interview"
	"github.com/nikogura/career-kit/pkg/questions"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var interviewCategories []string

//nolint:gochecknoglobals // Cobra boilerplate
var interviewCount int

//nolint:gochecknoglobals // Cobra boilerplate
var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive mock interview",
	Long: `Run a mock interview in the terminal. Questions are drawn from the chosen
categories; each question is shown on its own, and the model answer and
tips appear once you reveal them.

Keys: r = reveal answer, n = next question, q = quit.

Example:
  career-kit interview
  career-kit interview --categories technical,behavioral --count 3 --seed 42`,
	RunE: runInterview,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(interviewCmd)
	interviewCmd.Flags().StringSliceVar(&interviewCategories, "categories", nil, "Categories to draw from (default all)")
	interviewCmd.Flags().IntVar(&interviewCount, "count", 5, "Number of questions")
}

func runInterview(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	var bank *questions.Bank
	cfg, bank, err = setupBank()
	if err != nil {
		return err
	}

	categories := interviewCategories
	if len(categories) == 0 {
		categories = bank.Categories()
	}

	selected := questions.NewSampler(bank, newRand(cfg)).MockInterview(categories, interviewCount)

	session := interview.NewSession()
	err = session.Start(selected)
	if errors.Is(err, interview.ErrEmptySession) {
		err = errors.Errorf("no questions matched categories %v", categories)
		return err
	}
	if err != nil {
		return err
	}

	if getVerbose() {
		fmt.Printf("Mock interview %s with %d question(s)\n", session.ID(), len(selected))
	}

	err = playInterview(os.Stdin, os.Stdout, session)
	return err
}

// playInterview drives a started session from line-oriented input until it
// completes, the user quits, or input ends.
func playInterview(in io.Reader, out io.Writer, session *interview.Session) (err error) {
	scanner := bufio.NewScanner(in)

	for {
		err = interview.Render(out, session.State())
		if err != nil {
			return err
		}
		if session.Phase() == interview.Completed {
			return err
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "r":
			err = session.Reveal()
		case "n":
			err = session.Next()
		case "q":
			fmt.Fprintln(out, "Mock interview ended.")
			return err
		default:
			fmt.Fprintln(out, "Use r, n or q.")
			continue
		}

		if errors.Is(err, interview.ErrInvalidTransition) {
			fmt.Fprintf(out, "Not now: %v\n", err)
			err = nil
		}
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to read input")
	}
	return err
}
