package cmd

import (
	"fmt"
	"os"

	"github.com/nikogura/career-kit/pkg/config"
	"github.com/nikogura/career-kit/pkg/profile"
	"github.com/nikogura/career-kit/pkg/renderer"
	"github.com/nikogura/career-kit/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var resumeOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var resumeScore bool

//nolint:gochecknoglobals // Cobra boilerplate
var resumePlain bool

//nolint:gochecknoglobals // Cobra boilerplate
var resumeStdout bool

//nolint:gochecknoglobals // Cobra boilerplate
var resumeCmd = &cobra.Command{
	Use:   "resume <input.json>",
	Short: "Render an ATS-friendly markdown resume",
	Long: `Render an ATS-friendly markdown resume from a JSON description of your
profile, experience, education, skills and projects. Missing fields are
filled with placeholders so partial input still produces a complete layout.

Example:
  career-kit resume me.json
  career-kit resume me.json --score --plain --output-dir ~/Documents/Applications`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.Flags().StringVar(&resumeOutputDir, "output-dir", "", "Output directory (default from config)")
	resumeCmd.Flags().BoolVar(&resumeScore, "score", false, "Score the rendered resume")
	resumeCmd.Flags().BoolVar(&resumePlain, "plain", false, "Also write a plain-text copy without icons")
	resumeCmd.Flags().BoolVar(&resumeStdout, "stdout", false, "Print the resume instead of writing files")
}

func runResume(cmd *cobra.Command, args []string) (err error) {
	var in profile.ResumeInput
	in, err = profile.Load(args[0])
	if err != nil {
		err = errors.Wrap(err, "failed to load resume input")
		return err
	}

	if getVerbose() {
		stats := in.Stats()
		fmt.Printf("Loaded %d experience entries, %d projects, %d skills\n", len(in.Experience), stats.TotalProjects, stats.TotalSkills)
	}

	resume := renderer.RenderResume(in)

	if resumeStdout {
		fmt.Print(resume)
	} else {
		err = writeResume(in, resume)
		if err != nil {
			return err
		}
	}

	if resumeScore {
		report := scorer.NewScorer().Score(resume, "")
		fmt.Println()
		printReport(os.Stdout, report)
	}

	return err
}

func writeResume(in profile.ResumeInput, resume string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}
	outDir := getOutputDir(resumeOutputDir, cfg.Defaults.OutputDir)

	p := in.Profile.WithDefaults()
	docs := []document{{
		path:    renderer.DocumentPath(outDir, "resume", ".md", p.Name, in.Profile.TargetCompany),
		content: resume,
	}}
	if resumePlain {
		docs = append(docs, document{
			path:    renderer.DocumentPath(outDir, "resume", ".txt", p.Name, in.Profile.TargetCompany),
			content: renderer.PlainText(resume),
		})
	}

	err = writeDocuments(docs...)
	if err != nil {
		err = errors.Wrap(err, "failed to write resume")
		return err
	}

	for _, doc := range docs {
		fmt.Printf("Resume saved at: %s\n", doc.path)
	}
	return err
}
