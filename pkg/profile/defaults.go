package profile

import "strings"

// Placeholders substituted for missing fields.
const (
	DefaultName           = "Your Name"
	DefaultTitle          = "Professional Title"
	DefaultSummaryTitle   = "Professional"
	DefaultEmail          = "your.email@example.com"
	DefaultPhone          = "+1 (555) 123-4567"
	DefaultLinkedIn       = "linkedin.com/in/yourprofile"
	DefaultPortfolio      = "yourportfolio.com"
	DefaultLocation       = "City, State"
	DefaultDomain         = "software development"
	DefaultTargetCompany  = "a forward-thinking organization"
	DefaultCertifications = "• Relevant certifications will appear here"

	DefaultCompany  = "Company"
	DefaultPosition = "Position"
	DefaultDuration = "Duration"
	DefaultYears    = "2+"

	DefaultDegree      = "Degree"
	DefaultInstitution = "Institution"
	DefaultYear        = "Year"

	DefaultProjectName        = "Project Name"
	DefaultProjectDescription = "Project description"

	DefaultHiringManager       = "Hiring Manager"
	DefaultMotivation          = "it aligns perfectly with my skills and career goals"
	DefaultApplicantSkills     = "relevant skills"
	DefaultApplicantExperience = "My professional experience has prepared me well for this opportunity."
)

// WithDefaults returns a copy of the profile with every empty field replaced
// by its placeholder.
func (p Profile) WithDefaults() (result Profile) {
	result = Profile{
		Name:           orDefault(p.Name, DefaultName),
		Title:          orDefault(p.Title, DefaultTitle),
		Email:          orDefault(p.Email, DefaultEmail),
		Phone:          orDefault(p.Phone, DefaultPhone),
		LinkedIn:       orDefault(p.LinkedIn, DefaultLinkedIn),
		Portfolio:      orDefault(p.Portfolio, DefaultPortfolio),
		Location:       orDefault(p.Location, DefaultLocation),
		Domain:         orDefault(p.Domain, DefaultDomain),
		TargetCompany:  orDefault(p.TargetCompany, DefaultTargetCompany),
		Certifications: orDefault(p.Certifications, DefaultCertifications),
	}
	return result
}

// SummaryTitle is the title used inside the professional summary, which
// reads better with a shorter placeholder than the header.
func (p Profile) SummaryTitle() (title string) {
	title = orDefault(p.Title, DefaultSummaryTitle)
	return title
}

// WithDefaults returns a copy of the experience entry with placeholders applied.
func (e Experience) WithDefaults() (result Experience) {
	result = Experience{
		Company:          orDefault(e.Company, DefaultCompany),
		Position:         orDefault(e.Position, DefaultPosition),
		Duration:         orDefault(e.Duration, DefaultDuration),
		Years:            orDefault(e.Years, DefaultYears),
		Responsibilities: nonEmpty(e.Responsibilities),
	}
	return result
}

// WithDefaults returns a copy of the education entry with placeholders applied.
// GPA and Details stay empty when absent; they are optional lines.
func (e Education) WithDefaults() (result Education) {
	result = Education{
		Degree:      orDefault(e.Degree, DefaultDegree),
		Institution: orDefault(e.Institution, DefaultInstitution),
		Year:        orDefault(e.Year, DefaultYear),
		GPA:         trim(e.GPA),
		Details:     trim(e.Details),
	}
	return result
}

// WithDefaults returns a copy of the project with placeholders applied.
func (p Project) WithDefaults() (result Project) {
	result = Project{
		Name:         orDefault(p.Name, DefaultProjectName),
		Description:  orDefault(p.Description, DefaultProjectDescription),
		Technologies: nonEmpty(p.Technologies),
		GitHubURL:    trim(p.GitHubURL),
		LiveURL:      trim(p.LiveURL),
	}
	return result
}

// WithDefaults returns a copy of the job posting with placeholders applied.
func (j JobPosting) WithDefaults() (result JobPosting) {
	result = JobPosting{
		Company:       orDefault(j.Company, DefaultCompany),
		Position:      orDefault(j.Position, DefaultPosition),
		HiringManager: orDefault(j.HiringManager, DefaultHiringManager),
		Motivation:    orDefault(j.Motivation, DefaultMotivation),
	}
	return result
}

// CompanyOr returns the company name, or fallback when none was supplied.
// Cover letters refer to an unnamed employer differently depending on the
// sentence.
func (j JobPosting) CompanyOr(fallback string) (company string) {
	company = orDefault(j.Company, fallback)
	return company
}

// WithDefaults returns a copy of the applicant info with placeholders applied.
// Contact stays empty when absent.
func (a ApplicantInfo) WithDefaults() (result ApplicantInfo) {
	result = ApplicantInfo{
		Name:       orDefault(a.Name, DefaultName),
		Skills:     orDefault(a.Skills, DefaultApplicantSkills),
		Experience: orDefault(a.Experience, DefaultApplicantExperience),
		Contact:    trim(a.Contact),
	}
	return result
}

func orDefault(value, fallback string) (result string) {
	result = trim(value)
	if result == "" {
		result = fallback
	}
	return result
}

// nonEmpty drops blank entries while keeping input order.
func nonEmpty(values []string) (result []string) {
	result = make([]string, 0, len(values))
	for _, v := range values {
		v = trim(v)
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

func trim(value string) (result string) {
	result = strings.TrimSpace(value)
	return result
}
