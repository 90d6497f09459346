package scorer

// Points awarded by each heuristic.
const (
	KeywordPoints = 2
	SectionPoints = 5
	LengthPoints  = 10
	ContactPoints = 5

	MaxScore = 100
)

// Word count range that earns the length bonus, inclusive.
const (
	MinWords = 400
	MaxWords = 800
)

// MaxMissingKeywords caps the missing keyword list in a report.
const MaxMissingKeywords = 10

// LengthFeedback is reported when the word count is outside the ideal range.
const LengthFeedback = "Resume length should be between 400-800 words for optimal ATS performance."

//nolint:gochecknoglobals // Scoring vocabulary
var TechnicalKeywords = []string{
	"Python", "JavaScript", "Java", "C++", "SQL", "React", "Node.js", "AWS", "Docker", "Kubernetes",
	"Machine Learning", "Data Analysis", "Web Development", "API", "REST", "Git", "Agile", "Scrum",
	"DevOps", "CI/CD", "Testing", "Debugging", "Optimization", "Automation", "Security",
}

//nolint:gochecknoglobals // Scoring vocabulary
var SoftSkillKeywords = []string{
	"Leadership", "Communication", "Teamwork", "Problem Solving", "Project Management",
	"Critical Thinking", "Time Management", "Adaptability", "Creativity", "Collaboration",
}

//nolint:gochecknoglobals // Structural sections every resume should carry
var SectionKeys = []string{"experience", "education", "skills", "projects", "summary"}

//nolint:gochecknoglobals // Contact details screeners look for
var ContactSignals = []string{"@", "linkedin", "github"}

// Vocabulary returns the full keyword list in scoring order.
func Vocabulary() (vocabulary []string) {
	vocabulary = make([]string, 0, len(TechnicalKeywords)+len(SoftSkillKeywords))
	vocabulary = append(vocabulary, TechnicalKeywords...)
	vocabulary = append(vocabulary, SoftSkillKeywords...)
	return vocabulary
}
