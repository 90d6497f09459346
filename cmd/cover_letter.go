package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikogura/career-kit/pkg/config"
	"github.com/nikogura/career-kit/pkg/history"
	"github.com/nikogura/career-kit/pkg/profile"
	"github.com/nikogura/career-kit/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var coverJobFile string

//nolint:gochecknoglobals // Cobra boilerplate
var coverInput profile.CoverLetterInput

//nolint:gochecknoglobals // Cobra boilerplate
var coverSave bool

//nolint:gochecknoglobals // Cobra boilerplate
var coverOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Write a cover letter for a job posting",
	Long: `Fill the standard five-paragraph cover letter from a job posting and a few
facts about you. Details come from a JSON file (--job) or flags; flags
override the file. Letters naming a company and position are recorded in
the history.

Example:
  career-kit cover-letter --job acme.json
  career-kit cover-letter --company Acme --position "Staff Engineer" --name "Ada Lovelace" --save`,
	RunE: runCoverLetter,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(coverLetterCmd)
	flags := coverLetterCmd.Flags()
	flags.StringVar(&coverJobFile, "job", "", "JSON file with job and applicant details")
	flags.StringVar(&coverInput.Job.Company, "company", "", "Company name")
	flags.StringVar(&coverInput.Job.Position, "position", "", "Position title")
	flags.StringVar(&coverInput.Job.HiringManager, "hiring-manager", "", "Hiring manager name")
	flags.StringVar(&coverInput.Job.Motivation, "motivation", "", "Why you want this role")
	flags.StringVar(&coverInput.Applicant.Name, "name", "", "Your name")
	flags.StringVar(&coverInput.Applicant.Skills, "skills", "", "Key skills, e.g. \"Go, Kubernetes and SQL\"")
	flags.StringVar(&coverInput.Applicant.Experience, "experience", "", "A paragraph about your experience")
	flags.StringVar(&coverInput.Applicant.Contact, "contact", "", "Contact line printed under your name")
	flags.BoolVar(&coverSave, "save", false, "Also write the letter to the output directory")
	flags.StringVar(&coverOutputDir, "output-dir", "", "Output directory (default from config)")
}

func runCoverLetter(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()

	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	in := coverInput
	if coverJobFile != "" {
		var fromFile profile.CoverLetterInput
		fromFile, err = profile.LoadCoverLetter(coverJobFile)
		if err != nil {
			err = errors.Wrap(err, "failed to load job details")
			return err
		}
		in = mergeCoverLetterInput(fromFile, coverInput)
	}

	letter := renderer.RenderCoverLetter(in.Job, in.Applicant)
	fmt.Print(letter)

	if coverSave {
		path := renderer.DocumentPath(getOutputDir(coverOutputDir, cfg.Defaults.OutputDir), "cover-letter", ".txt",
			in.Applicant.WithDefaults().Name, in.Job.Company, in.Job.Position)
		err = renderer.WriteDocument(letter, path)
		if err != nil {
			err = errors.Wrap(err, "failed to write cover letter")
			return err
		}
		fmt.Printf("\nCover letter saved at: %s\n", path)
	}

	err = recordCoverLetter(ctx, cfg, in.Job, letter)
	if err != nil {
		fmt.Printf("Warning: Cover letter not recorded: %v\n", err)
		err = nil
	}

	return err
}

// recordCoverLetter keeps the letter in history. Letters without a company
// and position are not recorded.
func recordCoverLetter(ctx context.Context, cfg config.Config, job profile.JobPosting, letter string) (err error) {
	company := strings.TrimSpace(job.Company)
	position := strings.TrimSpace(job.Position)
	if company == "" || position == "" {
		if getVerbose() {
			fmt.Println("Cover letter not recorded: company and position are required")
		}
		return err
	}

	var store *history.SQLiteStore
	store, err = openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveCoverLetter(ctx, history.CoverLetter{
		Company:  company,
		Position: position,
		Content:  letter,
	})
	return err
}

// mergeCoverLetterInput lets non-empty flag values override file values.
func mergeCoverLetterInput(base, override profile.CoverLetterInput) (merged profile.CoverLetterInput) {
	merged = base
	pick := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	pick(&merged.Job.Company, override.Job.Company)
	pick(&merged.Job.Position, override.Job.Position)
	pick(&merged.Job.HiringManager, override.Job.HiringManager)
	pick(&merged.Job.Motivation, override.Job.Motivation)
	pick(&merged.Applicant.Name, override.Applicant.Name)
	pick(&merged.Applicant.Skills, override.Applicant.Skills)
	pick(&merged.Applicant.Experience, override.Applicant.Experience)
	pick(&merged.Applicant.Contact, override.Applicant.Contact)
	return merged
}
