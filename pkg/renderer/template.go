package renderer

import (
	"embed"
	"strings"
	"text/template"

	"github.com/nikogura/career-kit/pkg/profile"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholder lines for sections with no entries.
const (
	NoSkillsPlaceholder     = "No skills added yet."
	NoExperiencePlaceholder = "No experience added yet."
	NoProjectsPlaceholder   = "No projects added yet."
	NoEducationPlaceholder  = "No education added yet."
)

// Fallbacks for an unnamed employer inside a cover letter.
const (
	companyReferenceFallback = "your company"
	companyClosingFallback   = "your organization"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//nolint:gochecknoglobals // Parsed once from embedded files
var templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// resumeData is the view passed to the resume template.
type resumeData struct {
	Name           string
	Title          string
	Email          string
	Phone          string
	LinkedIn       string
	Portfolio      string
	Location       string
	Summary        string
	Skills         string
	Experience     string
	Projects       string
	Education      string
	Certifications string
}

// coverLetterData is the view passed to the cover letter template.
type coverLetterData struct {
	HiringManager    string
	Position         string
	Company          string
	Skills           string
	Experience       string
	Motivation       string
	CompanyReference string
	CompanyClosing   string
	Name             string
	Contact          string
}

// RenderResume renders an ATS-friendly markdown resume. Any missing field is
// replaced by its placeholder, so incomplete input never fails.
func RenderResume(in profile.ResumeInput) (resume string) {
	p := in.Profile.WithDefaults()

	data := resumeData{
		Name:           strings.ToUpper(p.Name),
		Title:          p.Title,
		Email:          p.Email,
		Phone:          p.Phone,
		LinkedIn:       p.LinkedIn,
		Portfolio:      p.Portfolio,
		Location:       p.Location,
		Summary:        professionalSummary(in),
		Skills:         skillsSection(in.Skills),
		Experience:     experienceSection(in.Experience),
		Projects:       projectsSection(in.Projects),
		Education:      educationSection(in.Education),
		Certifications: p.Certifications,
	}

	resume = execute("resume.md.tmpl", data)
	return resume
}

// RenderCoverLetter fills the five-paragraph cover letter template.
func RenderCoverLetter(job profile.JobPosting, applicant profile.ApplicantInfo) (letter string) {
	j := job.WithDefaults()
	a := applicant.WithDefaults()

	data := coverLetterData{
		HiringManager:    j.HiringManager,
		Position:         j.Position,
		Company:          j.Company,
		Skills:           a.Skills,
		Experience:       a.Experience,
		Motivation:       j.Motivation,
		CompanyReference: job.CompanyOr(companyReferenceFallback),
		CompanyClosing:   job.CompanyOr(companyClosingFallback),
		Name:             a.Name,
		Contact:          a.Contact,
	}

	letter = execute("cover_letter.txt.tmpl", data)
	return letter
}

// execute runs a named embedded template. The templates only read string
// fields, so a failure here is a programming error.
func execute(name string, data interface{}) (text string) {
	var b strings.Builder
	err := templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		panic(errors.Wrapf(err, "failed to execute template %s", name))
	}
	text = b.String()
	return text
}

func professionalSummary(in profile.ResumeInput) (summary string) {
	years := profile.DefaultYears
	if len(in.Experience) > 0 {
		years = in.Experience[0].WithDefaults().Years
	}

	p := in.Profile.WithDefaults()
	languages := strings.Join(in.Skills.PrimaryLanguages(), ", ")

	lines := []string{
		"Results-driven " + in.Profile.SummaryTitle() + " with " + years + " years of experience in " + p.Domain + ".",
		"Proficient in " + languages + " with demonstrated success in delivering high-quality solutions.",
		"Strong problem-solving abilities combined with excellent communication and teamwork skills.",
		"Seeking to leverage technical expertise and innovative thinking to drive success at " + p.TargetCompany + ".",
	}

	summary = strings.Join(lines, "\n")
	return summary
}

func skillsSection(skills profile.SkillSet) (section string) {
	blocks := make([]string, 0)
	for _, category := range skills.Categories() {
		list := skills.Get(category)
		if len(list) == 0 {
			continue
		}
		blocks = append(blocks, "**"+CategoryTitle(category)+":** "+strings.Join(list, ", "))
	}

	if len(blocks) == 0 {
		section = NoSkillsPlaceholder
		return section
	}

	section = strings.Join(blocks, "\n\n")
	return section
}

func experienceSection(entries []profile.Experience) (section string) {
	if len(entries) == 0 {
		section = NoExperiencePlaceholder
		return section
	}

	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		e := entry.WithDefaults()

		var b strings.Builder
		b.WriteString("### " + e.Position + "\n")
		b.WriteString("**" + e.Company + "** | " + e.Duration)
		if len(e.Responsibilities) > 0 {
			b.WriteString("\n")
			for _, responsibility := range e.Responsibilities {
				b.WriteString("\n• " + responsibility)
			}
		}
		blocks = append(blocks, b.String())
	}

	section = strings.Join(blocks, "\n\n")
	return section
}

func projectsSection(entries []profile.Project) (section string) {
	if len(entries) == 0 {
		section = NoProjectsPlaceholder
		return section
	}

	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		p := entry.WithDefaults()

		var b strings.Builder
		b.WriteString("### " + p.Name + "\n")
		if len(p.Technologies) > 0 {
			b.WriteString("*Technologies: " + strings.Join(p.Technologies, ", ") + "*\n")
		}
		b.WriteString("\n" + p.Description)

		links := make([]string, 0, 2)
		if p.GitHubURL != "" {
			links = append(links, p.GitHubURL)
		}
		if p.LiveURL != "" {
			links = append(links, p.LiveURL)
		}
		if len(links) > 0 {
			b.WriteString("\nLinks: " + strings.Join(links, " | "))
		}

		blocks = append(blocks, b.String())
	}

	section = strings.Join(blocks, "\n\n")
	return section
}

func educationSection(entries []profile.Education) (section string) {
	if len(entries) == 0 {
		section = NoEducationPlaceholder
		return section
	}

	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		e := entry.WithDefaults()

		var b strings.Builder
		b.WriteString("### " + e.Degree + "\n")
		b.WriteString("**" + e.Institution + "** | " + e.Year)
		if e.GPA != "" {
			b.WriteString("\nGPA: " + e.GPA)
		}
		if e.Details != "" {
			b.WriteString("\n*" + e.Details + "*")
		}
		blocks = append(blocks, b.String())
	}

	section = strings.Join(blocks, "\n\n")
	return section
}

// CategoryTitle turns a snake_case skill category into Title Case.
func CategoryTitle(category string) (title string) {
	title = cases.Title(language.English).String(strings.ReplaceAll(category, "_", " "))
	return title
}
