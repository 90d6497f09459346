package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/nikogura/career-kit/pkg/config"
	"github.com/nikogura/career-kit/pkg/history"
	"github.com/nikogura/career-kit/pkg/questions"
	"github.com/nikogura/career-kit/pkg/renderer"
	"github.com/nikogura/career-kit/pkg/scorer"
	"github.com/pkg/errors"
)

func loadConfig() (cfg config.Config, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, err
	}
	return cfg, err
}

// loadBank returns the configured question bank, or the bundled one.
func loadBank(cfg config.Config) (bank *questions.Bank, err error) {
	if cfg.QuestionBankLocation == "" {
		bank = questions.DefaultBank()
		return bank, err
	}

	if getVerbose() {
		fmt.Printf("Loading question bank from: %s\n", cfg.QuestionBankLocation)
	}

	bank, err = questions.Load(cfg.QuestionBankLocation)
	if err != nil {
		err = errors.Wrap(err, "failed to load question bank")
		return bank, err
	}
	return bank, err
}

// newRand picks the sampling generator: --seed, then the config seed. A nil
// result lets the sampler seed itself randomly.
func newRand(cfg config.Config) (rng questions.Rand) {
	if value, ok := getSeed(); ok {
		rng = questions.NewRand(value)
		return rng
	}
	if cfg.Seed != nil {
		rng = questions.NewRand(*cfg.Seed)
	}
	return rng
}

func openHistory(cfg config.Config) (store *history.SQLiteStore, err error) {
	if getVerbose() {
		fmt.Printf("Opening history at: %s\n", cfg.HistoryLocation)
	}

	store, err = history.OpenSQLite(cfg.HistoryLocation)
	if err != nil {
		err = errors.Wrap(err, "failed to open history")
		return store, err
	}
	return store, err
}

func getOutputDir(flagValue, configValue string) (outDir string) {
	outDir = flagValue
	if outDir == "" {
		outDir = configValue
	}
	return outDir
}

// document is a rendered file waiting to be written.
type document struct {
	path    string
	content string
}

// writeDocuments writes every document or none: files already written are
// removed when a later one fails.
func writeDocuments(docs ...document) (err error) {
	written := make([]string, 0, len(docs))
	for _, doc := range docs {
		err = renderer.WriteDocument(doc.content, doc.path)
		if err != nil {
			cleanupErr := renderer.RemoveDocuments(written...)
			if cleanupErr != nil {
				fmt.Printf("Warning: Failed to clean up partial output: %v\n", cleanupErr)
			}
			return err
		}
		written = append(written, doc.path)
	}
	return err
}

func printReport(w io.Writer, report scorer.Report) {
	fmt.Fprintf(w, "ATS score: %d/100 (%s)\n", report.Score, scorer.Rating(report.Score))
	fmt.Fprintf(w, "  keywords %d, sections %d, length %d, contact %d (%d words)\n",
		report.Breakdown.Keywords, report.Breakdown.Sections, report.Breakdown.Length, report.Breakdown.Contact, report.WordCount)

	if len(report.FoundKeywords) > 0 {
		fmt.Fprintf(w, "Found keywords: %s\n", strings.Join(report.FoundKeywords, ", "))
	}
	if len(report.MissingKeywords) > 0 {
		fmt.Fprintf(w, "Consider adding: %s\n", strings.Join(report.MissingKeywords, ", "))
	}
	for _, feedback := range report.Feedback {
		fmt.Fprintf(w, "  - %s\n", feedback)
	}
}
