package cmd

import (
	"fmt"
	"os"

	"github.com/nikogura/career-kit/pkg/jd"
	"github.com/nikogura/career-kit/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var atsJD string

//nolint:gochecknoglobals // Cobra boilerplate
var atsCmd = &cobra.Command{
	Use:   "ats <resume-file>",
	Short: "Score resume text for ATS compatibility",
	Long: `Score a resume with a keyword and structure heuristic. The score (0-100)
combines keyword coverage, standard section headings, length, and contact
details, and comes with a list of missing keywords and suggestions.

A job description can be supplied for reference; it does not change the score.

Example:
  career-kit ats resume.md
  career-kit ats resume.pdf
  career-kit ats resume.md --jd https://example.com/jobs/123`,
	Args: cobra.ExactArgs(1),
	RunE: runATS,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(atsCmd)
	atsCmd.Flags().StringVar(&atsJD, "jd", "", "Job description file or URL")
}

func runATS(cmd *cobra.Command, args []string) (err error) {
	var resumeText string
	resumeText, err = jd.ReadDocument(args[0])
	if err != nil {
		err = errors.Wrapf(err, "failed to read resume: %s", args[0])
		return err
	}

	var jobDescription string
	if atsJD != "" {
		if getVerbose() {
			fmt.Printf("Loading job description from: %s\n", atsJD)
		}
		jobDescription, err = jd.Fetch(atsJD)
		if err != nil {
			// The score never depends on the job description.
			fmt.Printf("Warning: Failed to load job description: %v\n", err)
			err = nil
		} else if getVerbose() {
			fmt.Printf("Job description loaded (%d characters)\n", len(jobDescription))
		}
	}

	report := scorer.NewScorer().Score(resumeText, jobDescription)
	printReport(os.Stdout, report)

	return err
}
