package profile

// ResumeInput bundles every record a resume is rendered from.
type ResumeInput struct {
	Profile    Profile      `json:"profile"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     SkillSet     `json:"skills"`
	Projects   []Project    `json:"projects"`
}

// Profile represents personal information shown in the resume header.
type Profile struct {
	Name           string `json:"name,omitempty"`
	Title          string `json:"title,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
	Portfolio      string `json:"portfolio,omitempty"`
	Location       string `json:"location,omitempty"`
	Domain         string `json:"domain,omitempty"`
	TargetCompany  string `json:"target_company,omitempty"`
	Certifications string `json:"certifications,omitempty"`
}

// Experience represents a single position held.
type Experience struct {
	Company          string   `json:"company,omitempty"`
	Position         string   `json:"position,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	Years            string   `json:"years,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// Education represents a degree or course of study.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Details     string `json:"details,omitempty"`
}

// Project represents a portfolio project.
type Project struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	GitHubURL    string   `json:"github_url,omitempty"`
	LiveURL      string   `json:"live_url,omitempty"`
}

// JobPosting is the employer half of a cover letter.
type JobPosting struct {
	Company       string `json:"company,omitempty"`
	Position      string `json:"position,omitempty"`
	HiringManager string `json:"hiring_manager,omitempty"`
	Motivation    string `json:"motivation,omitempty"`
}

// ApplicantInfo is the applicant half of a cover letter.
type ApplicantInfo struct {
	Name       string `json:"name,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
	Contact    string `json:"contact,omitempty"`
}

// CoverLetterInput bundles both halves of a cover letter.
type CoverLetterInput struct {
	Job       JobPosting    `json:"job"`
	Applicant ApplicantInfo `json:"applicant"`
}

// Stats summarizes the size of a portfolio.
type Stats struct {
	TotalProjects int `json:"total_projects"`
	TotalSkills   int `json:"total_skills"`
}

// Stats counts projects and skills across all categories.
func (in ResumeInput) Stats() (stats Stats) {
	stats = Stats{
		TotalProjects: len(in.Projects),
		TotalSkills:   in.Skills.Len(),
	}
	return stats
}
