package history

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps history in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu           sync.Mutex
	applications []Application
	coverLetters []CoverLetter
	projects     []Project
	skills       []Skill
	now          func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() (store *MemoryStore) {
	store = &MemoryStore{
		applications: make([]Application, 0),
		coverLetters: make([]CoverLetter, 0),
		projects:     make([]Project, 0),
		skills:       make([]Skill, 0),
		now:          time.Now,
	}
	return store
}

// SaveApplication validates and stores an application.
func (m *MemoryStore) SaveApplication(ctx context.Context, app Application) (saved Application, err error) {
	saved, err = prepareApplication(app, m.now())
	if err != nil {
		return saved, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.applications {
		if existing.Company == saved.Company && existing.Position == saved.Position {
			saved.ID = existing.ID
			m.applications[i] = saved
			return saved, err
		}
	}

	m.applications = append(m.applications, saved)
	return saved, err
}

// ListApplications returns applications in the order they were first saved.
func (m *MemoryStore) ListApplications(ctx context.Context) (apps []Application, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	apps = make([]Application, len(m.applications))
	copy(apps, m.applications)
	return apps, err
}

// SaveCoverLetter validates and stores a cover letter.
func (m *MemoryStore) SaveCoverLetter(ctx context.Context, letter CoverLetter) (saved CoverLetter, err error) {
	saved, err = prepareCoverLetter(letter, m.now())
	if err != nil {
		return saved, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.coverLetters {
		if existing.Company == saved.Company && existing.Position == saved.Position {
			saved.ID = existing.ID
			m.coverLetters[i] = saved
			return saved, err
		}
	}

	m.coverLetters = append(m.coverLetters, saved)
	return saved, err
}

// ListCoverLetters returns cover letters in the order they were first saved.
func (m *MemoryStore) ListCoverLetters(ctx context.Context) (letters []CoverLetter, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	letters = make([]CoverLetter, len(m.coverLetters))
	copy(letters, m.coverLetters)
	return letters, err
}

// GetCoverLetter finds the letter for a company and position.
func (m *MemoryStore) GetCoverLetter(ctx context.Context, company, position string) (letter CoverLetter, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.coverLetters {
		if existing.Company == company && existing.Position == position {
			letter = existing
			return letter, err
		}
	}

	err = ErrNotFound
	return letter, err
}

// SaveProject validates and stores a portfolio project.
func (m *MemoryStore) SaveProject(ctx context.Context, project Project) (saved Project, err error) {
	saved, err = prepareProject(project, m.now())
	if err != nil {
		return saved, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.projects {
		if existing.Title == saved.Title {
			saved.ID = existing.ID
			saved.CreatedAt = existing.CreatedAt
			m.projects[i] = saved
			return saved, err
		}
	}

	m.projects = append(m.projects, saved)
	return saved, err
}

// ListProjects returns projects in the order they were first saved.
func (m *MemoryStore) ListProjects(ctx context.Context) (projects []Project, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	projects = make([]Project, len(m.projects))
	for i, project := range m.projects {
		project.Technologies = append([]string(nil), project.Technologies...)
		projects[i] = project
	}
	return projects, err
}

// SaveSkill validates and stores a portfolio skill.
func (m *MemoryStore) SaveSkill(ctx context.Context, skill Skill) (saved Skill, err error) {
	saved, err = prepareSkill(skill, m.now())
	if err != nil {
		return saved, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.skills {
		if existing.Category == saved.Category && existing.Name == saved.Name {
			saved.ID = existing.ID
			saved.CreatedAt = existing.CreatedAt
			m.skills[i] = saved
			return saved, err
		}
	}

	m.skills = append(m.skills, saved)
	return saved, err
}

// ListSkills returns skills in the order they were first saved.
func (m *MemoryStore) ListSkills(ctx context.Context) (skills []Skill, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	skills = make([]Skill, len(m.skills))
	copy(skills, m.skills)
	return skills, err
}

// Stats counts records and applications per status.
func (m *MemoryStore) Stats(ctx context.Context) (stats Stats, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats = emptyStats()
	stats.Applications = len(m.applications)
	stats.CoverLetters = len(m.coverLetters)
	stats.Projects = len(m.projects)
	stats.Skills = len(m.skills)
	for _, app := range m.applications {
		stats.ByStatus[app.Status]++
	}
	return stats, err
}

// Close is a no-op.
func (m *MemoryStore) Close() (err error) {
	return err
}
