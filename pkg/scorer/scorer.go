package scorer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Report is the outcome of scoring a resume.
type Report struct {
	Score           int       `json:"score"`
	FoundKeywords   []string  `json:"found_keywords"`
	MissingKeywords []string  `json:"missing_keywords"`
	Feedback        []string  `json:"feedback"`
	WordCount       int       `json:"word_count"`
	Breakdown       Breakdown `json:"breakdown"`
}

// Breakdown holds the raw points each heuristic contributed before clamping.
type Breakdown struct {
	Keywords int `json:"keywords"`
	Sections int `json:"sections"`
	Length   int `json:"length"`
	Contact  int `json:"contact"`
}

// Total sums the breakdown.
func (b Breakdown) Total() (total int) {
	total = b.Keywords + b.Sections + b.Length + b.Contact
	return total
}

// Scorer computes ATS compatibility scores.
type Scorer struct {
	vocabulary []string
}

// NewScorer creates a scorer over the standard vocabulary.
func NewScorer() (scorer *Scorer) {
	scorer = &Scorer{
		vocabulary: Vocabulary(),
	}
	return scorer
}

// Score rates resume text with a fixed linear heuristic: keyword coverage,
// structural sections, length, and contact signals, clamped to [0, 100].
// jobDescription is accepted for callers that have one; it does not affect
// the score.
func (s *Scorer) Score(resumeText, jobDescription string) (report Report) {
	_ = jobDescription

	lower := strings.ToLower(resumeText)

	report = Report{
		FoundKeywords:   []string{},
		MissingKeywords: []string{},
		Feedback:        []string{},
	}

	// Keyword coverage
	for _, keyword := range s.vocabulary {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			report.FoundKeywords = append(report.FoundKeywords, keyword)
			report.Breakdown.Keywords += KeywordPoints
			continue
		}
		if len(report.MissingKeywords) < MaxMissingKeywords {
			report.MissingKeywords = append(report.MissingKeywords, keyword)
		}
	}

	// Structural sections
	for _, section := range SectionKeys {
		if strings.Contains(lower, section) {
			report.Breakdown.Sections += SectionPoints
			continue
		}
		report.Feedback = append(report.Feedback, sectionFeedback(section))
	}

	// Length
	report.WordCount = len(strings.Fields(resumeText))
	if report.WordCount >= MinWords && report.WordCount <= MaxWords {
		report.Breakdown.Length = LengthPoints
	} else {
		report.Feedback = append(report.Feedback, LengthFeedback)
	}

	// Contact signals
	for _, signal := range ContactSignals {
		if strings.Contains(lower, signal) {
			report.Breakdown.Contact += ContactPoints
		}
	}

	report.Score = clamp(report.Breakdown.Total())

	return report
}

// Rating gives a short label for a score.
func Rating(score int) (rating string) {
	switch {
	case score >= 80:
		rating = "excellent"
	case score >= 60:
		rating = "good"
	case score >= 40:
		rating = "fair"
	default:
		rating = "needs work"
	}
	return rating
}

func sectionFeedback(section string) (feedback string) {
	feedback = "Consider adding a '" + cases.Title(language.English).String(section) + "' section."
	return feedback
}

func clamp(score int) (clamped int) {
	clamped = score
	if clamped > MaxScore {
		clamped = MaxScore
	}
	if clamped < 0 {
		clamped = 0
	}
	return clamped
}
