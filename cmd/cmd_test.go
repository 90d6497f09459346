package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nikogura/career-kit/pkg/config"
	"github.com/nikogura/career-kit/pkg/history"
	"github.com/nikogura/career-kit/pkg/interview"
	"github.com/nikogura/career-kit/pkg/profile"
	"github.com/nikogura/career-kit/pkg/questions"
	"github.com/nikogura/career-kit/pkg/scorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedSession(t *testing.T) (session *interview.Session) {
	t.Helper()
	session = interview.NewSession()
	err := session.Start([]questions.Question{
		{Question: "What is a goroutine?", Answer: "A lightweight thread.", Category: "technical", Tips: []string{"Mention the scheduler"}},
		{Question: "Tell me about a conflict.", Answer: "Use STAR.", Category: "behavioral"},
	})
	require.NoError(t, err)
	return session
}

func TestPlayInterviewToCompletion(t *testing.T) {
	session := startedSession(t)
	var out bytes.Buffer

	err := playInterview(strings.NewReader("r\nn\nr\nn\n"), &out, session)
	require.NoError(t, err)

	assert.Equal(t, interview.Completed, session.Phase())
	text := out.String()
	assert.Contains(t, text, "Question 1 of 2 (technical)")
	assert.Contains(t, text, "A lightweight thread.")
	assert.Contains(t, text, "  - Mention the scheduler")
	assert.Contains(t, text, "Question 2 of 2 (behavioral)")
	assert.Contains(t, text, interview.FinishHint)
	assert.Contains(t, text, "Mock interview complete. You answered 2 question(s).")
}

func TestPlayInterviewRejectsOutOfOrderKeys(t *testing.T) {
	session := startedSession(t)
	var out bytes.Buffer

	err := playInterview(strings.NewReader("n\nx\nr\nr\nq\n"), &out, session)
	require.NoError(t, err)

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Not now:"))
	assert.Contains(t, text, "Use r, n or q.")
	assert.Contains(t, text, "Mock interview ended.")
	assert.Equal(t, interview.AnswerRevealed, session.Phase())
}

func TestPlayInterviewEndOfInput(t *testing.T) {
	session := startedSession(t)
	var out bytes.Buffer

	err := playInterview(strings.NewReader("r\n"), &out, session)
	require.NoError(t, err)
	assert.Equal(t, interview.AnswerRevealed, session.Phase())
}

func TestMergeCoverLetterInput(t *testing.T) {
	base := profile.CoverLetterInput{
		Job:       profile.JobPosting{Company: "Acme", Position: "Engineer", Motivation: "mission"},
		Applicant: profile.ApplicantInfo{Name: "Ada", Skills: "Go"},
	}
	override := profile.CoverLetterInput{
		Job:       profile.JobPosting{Position: "Staff Engineer"},
		Applicant: profile.ApplicantInfo{Contact: "ada@example.com"},
	}

	merged := mergeCoverLetterInput(base, override)

	assert.Equal(t, "Acme", merged.Job.Company)
	assert.Equal(t, "Staff Engineer", merged.Job.Position)
	assert.Equal(t, "mission", merged.Job.Motivation)
	assert.Equal(t, "Ada", merged.Applicant.Name)
	assert.Equal(t, "ada@example.com", merged.Applicant.Contact)
	assert.Equal(t, "Engineer", base.Job.Position, "base must not change")
}

func TestWriteDocuments(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "out", "a.md")
	second := filepath.Join(dir, "out", "b.txt")

	err := writeDocuments(document{path: first, content: "A"}, document{path: second, content: "B"})
	require.NoError(t, err)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "B\n", string(data))
}

func TestWriteDocumentsRollsBack(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	first := filepath.Join(dir, "a.md")
	err := writeDocuments(
		document{path: first, content: "A"},
		document{path: filepath.Join(blocker, "b.txt"), content: "B"},
	)
	require.Error(t, err)

	_, statErr := os.Stat(first)
	assert.True(t, os.IsNotExist(statErr), "first document should be removed")
}

func TestGetOutputDir(t *testing.T) {
	assert.Equal(t, "flag", getOutputDir("flag", "config"))
	assert.Equal(t, "config", getOutputDir("", "config"))
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer
	printReport(&out, scorer.Report{
		Score:           72,
		FoundKeywords:   []string{"Python"},
		MissingKeywords: []string{"SQL"},
		Feedback:        []string{"Add more keywords from the job description."},
		WordCount:       320,
		Breakdown:       scorer.Breakdown{Keywords: 22, Sections: 30, Length: 20, Contact: 0},
	})

	text := out.String()
	assert.Contains(t, text, "ATS score: 72/100 (good)")
	assert.Contains(t, text, "(320 words)")
	assert.Contains(t, text, "Found keywords: Python")
	assert.Contains(t, text, "Consider adding: SQL")
	assert.Contains(t, text, "  - Add more keywords")
}

func TestPrintApplicationsAndStats(t *testing.T) {
	var out bytes.Buffer
	printApplications(&out, nil)
	assert.Contains(t, out.String(), "No applications tracked yet")

	out.Reset()
	printApplications(&out, []history.Application{{
		Company:   "Acme",
		Position:  "Engineer",
		Status:    history.StatusOnsite,
		Notes:     "panel Friday",
		AppliedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}})
	text := out.String()
	assert.Contains(t, text, history.StatusOnsite.Icon()+" Acme - Engineer")
	assert.Contains(t, text, "Date: 2024-03-01")
	assert.Contains(t, text, "Notes: panel Friday")

	out.Reset()
	printStats(&out, history.Stats{
		Applications: 1,
		ByStatus:     map[history.Status]int{history.StatusOnsite: 1, history.StatusApplied: 0},
	})
	text = out.String()
	assert.Contains(t, text, "Applications: 1")
	assert.Contains(t, text, "Cover letters: 0")
	assert.Contains(t, text, "Projects: 0")
	assert.Contains(t, text, "Skills: 0")
	assert.Contains(t, text, string(history.StatusOnsite))
	assert.NotContains(t, text, string(history.StatusApplied)+" ")
}

func TestPrintQuestion(t *testing.T) {
	var out bytes.Buffer
	printQuestion(&out, 3, questions.Question{Question: "Q?", Answer: "A.", Category: "behavioral", Tips: []string{"Be brief"}})

	assert.Equal(t, "3. [behavioral] Q?\n   Answer: A.\n   Tip: Be brief\n\n", out.String())
}

func TestRecordCoverLetter(t *testing.T) {
	tests := []struct {
		name     string
		job      profile.JobPosting
		recorded bool
	}{
		{name: "named company and position", job: profile.JobPosting{Company: " Initech ", Position: "Platform Engineer"}, recorded: true},
		{name: "missing company", job: profile.JobPosting{Position: "Platform Engineer"}},
		{name: "missing position", job: profile.JobPosting{Company: "Initech"}},
		{name: "blank company", job: profile.JobPosting{Company: "   ", Position: "Platform Engineer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "history")
			cfg := config.Config{HistoryLocation: dir}

			err := recordCoverLetter(context.Background(), cfg, tt.job, "Dear Hiring Manager")
			require.NoError(t, err)

			if !tt.recorded {
				_, statErr := os.Stat(dir)
				assert.True(t, os.IsNotExist(statErr), "history should not be opened")
				return
			}

			store, err := history.OpenSQLite(dir)
			require.NoError(t, err)
			defer store.Close()

			letters, err := store.ListCoverLetters(context.Background())
			require.NoError(t, err)
			require.Len(t, letters, 1)
			assert.Equal(t, "Initech", letters[0].Company)
			assert.Equal(t, "Platform Engineer", letters[0].Position)
			assert.Equal(t, "Dear Hiring Manager", letters[0].Content)
		})
	}
}

func TestPrintPortfolio(t *testing.T) {
	var out bytes.Buffer
	printPortfolio(&out, nil, nil)
	assert.Contains(t, out.String(), "Total projects: 0 | Total skills: 0")
	assert.Contains(t, out.String(), "No projects added yet")

	out.Reset()
	printPortfolio(&out, []history.Project{{
		Title:        "Shop",
		Description:  "E-commerce website",
		Technologies: []string{"React", "Node.js"},
		GitHubURL:    "https://github.com/example/shop",
	}}, []history.Skill{
		{Name: "Go", Category: "programming_languages", Proficiency: 8},
		{Name: "Postgres", Category: "databases", Proficiency: 6},
		{Name: "Python", Category: "programming_languages", Proficiency: 7},
	})
	text := out.String()
	assert.Contains(t, text, "Total projects: 1 | Total skills: 3")
	assert.Contains(t, text, "📁 Shop")
	assert.Contains(t, text, "Technologies: React, Node.js")
	assert.Contains(t, text, "GitHub: https://github.com/example/shop")
	assert.NotContains(t, text, "Live Demo")
	assert.Equal(t, 1, strings.Count(text, "programming_languages:"))
	assert.Less(t, strings.Index(text, "Python"), strings.Index(text, "databases:"))
}
