package history

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultProficiency is used for a skill saved without a proficiency.
const DefaultProficiency = 5

// Proficiency bounds, inclusive.
const (
	MinProficiency = 1
	MaxProficiency = 10
)

// Project is a portfolio project. Its title identifies it.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	Technologies []string  `json:"technologies" validate:"min=1,dive,required"`
	GitHubURL    string    `json:"github_url,omitempty" validate:"omitempty,url"`
	LiveURL      string    `json:"live_url,omitempty" validate:"omitempty,url"`
	CreatedAt    time.Time `json:"created_at"`
}

// Skill is a portfolio skill with a self-rated proficiency. Category and
// name together identify it.
type Skill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Proficiency int       `json:"proficiency" validate:"min=1,max=10"`
	CreatedAt   time.Time `json:"created_at"`
}

// SplitTechnologies parses a comma-separated technology list.
func SplitTechnologies(list string) (technologies []string) {
	technologies = make([]string, 0)
	for _, tech := range strings.Split(list, ",") {
		if tech = strings.TrimSpace(tech); tech != "" {
			technologies = append(technologies, tech)
		}
	}
	return technologies
}

func prepareProject(project Project, now time.Time) (prepared Project, err error) {
	prepared = project
	prepared.Title = strings.TrimSpace(prepared.Title)
	prepared.Description = strings.TrimSpace(prepared.Description)
	prepared.GitHubURL = strings.TrimSpace(prepared.GitHubURL)
	prepared.LiveURL = strings.TrimSpace(prepared.LiveURL)

	technologies := make([]string, 0, len(project.Technologies))
	for _, tech := range project.Technologies {
		if tech = strings.TrimSpace(tech); tech != "" {
			technologies = append(technologies, tech)
		}
	}
	prepared.Technologies = technologies

	err = Validate(prepared)
	if err != nil {
		return prepared, err
	}

	if prepared.ID == "" {
		prepared.ID = uuid.NewString()
	}
	if prepared.CreatedAt.IsZero() {
		prepared.CreatedAt = now
	}
	prepared.CreatedAt = prepared.CreatedAt.UTC()

	return prepared, err
}

func prepareSkill(skill Skill, now time.Time) (prepared Skill, err error) {
	prepared = skill
	prepared.Name = strings.TrimSpace(prepared.Name)
	prepared.Category = strings.ToLower(strings.TrimSpace(prepared.Category))
	if prepared.Proficiency == 0 {
		prepared.Proficiency = DefaultProficiency
	}

	err = Validate(prepared)
	if err != nil {
		return prepared, err
	}

	if prepared.ID == "" {
		prepared.ID = uuid.NewString()
	}
	if prepared.CreatedAt.IsZero() {
		prepared.CreatedAt = now
	}
	prepared.CreatedAt = prepared.CreatedAt.UTC()

	return prepared, err
}
