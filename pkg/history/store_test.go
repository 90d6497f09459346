package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type storeFactory func(t *testing.T) Store

func backends() (factories map[string]storeFactory) {
	factories = map[string]storeFactory{
		"memory": func(t *testing.T) Store {
			s := NewMemoryStore()
			s.now = func() time.Time { return fixedNow }
			return s
		},
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLite(MemoryLocation)
			require.NoError(t, err)
			s.now = func() time.Time { return fixedNow }
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
	return factories
}

func TestSaveAndListApplications(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			first, err := store.SaveApplication(ctx, Application{Company: " Acme ", Position: "Engineer", Status: StatusApplied})
			require.NoError(t, err)
			assert.NotEmpty(t, first.ID)
			assert.Equal(t, "Acme", first.Company)
			assert.True(t, fixedNow.Equal(first.AppliedAt))

			_, err = store.SaveApplication(ctx, Application{Company: "Globex", Position: "SRE", Status: StatusOnsite, Notes: "panel on Friday"})
			require.NoError(t, err)

			apps, err := store.ListApplications(ctx)
			require.NoError(t, err)
			require.Len(t, apps, 2)
			assert.Equal(t, "Acme", apps[0].Company)
			assert.Equal(t, "Globex", apps[1].Company)
			assert.Equal(t, "panel on Friday", apps[1].Notes)
			assert.Equal(t, StatusOnsite, apps[1].Status)
			assert.True(t, fixedNow.Equal(apps[1].AppliedAt))
		})
	}
}

func TestSaveApplicationUpsertsByCompanyAndPosition(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			original, err := store.SaveApplication(ctx, Application{Company: "Acme", Position: "Engineer", Status: StatusApplied})
			require.NoError(t, err)

			updated, err := store.SaveApplication(ctx, Application{Company: "Acme", Position: "Engineer", Status: StatusOffer, Notes: "signed"})
			require.NoError(t, err)
			assert.Equal(t, original.ID, updated.ID)

			apps, err := store.ListApplications(ctx)
			require.NoError(t, err)
			require.Len(t, apps, 1)
			assert.Equal(t, StatusOffer, apps[0].Status)
			assert.Equal(t, "signed", apps[0].Notes)

			_, err = store.SaveApplication(ctx, Application{Company: "Acme", Position: "Manager", Status: StatusApplied})
			require.NoError(t, err)
			apps, err = store.ListApplications(ctx)
			require.NoError(t, err)
			assert.Len(t, apps, 2)
		})
	}
}

func TestSaveApplicationRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		app   Application
		field string
	}{
		{name: "missing company", app: Application{Position: "Engineer", Status: StatusApplied}, field: "company is required"},
		{name: "blank position", app: Application{Company: "Acme", Position: "   ", Status: StatusApplied}, field: "position is required"},
		{name: "unknown status", app: Application{Company: "Acme", Position: "Engineer", Status: "Ghosted"}, field: "status must be one of"},
	}

	for name, open := range backends() {
		for _, tc := range tests {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				ctx := context.Background()
				store := open(t)

				_, err := store.SaveApplication(ctx, tc.app)
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRecord))
				assert.Contains(t, err.Error(), tc.field)

				apps, err := store.ListApplications(ctx)
				require.NoError(t, err)
				assert.Empty(t, apps)
			})
		}
	}
}

func TestSaveApplicationDefaultsStatus(t *testing.T) {
	store := NewMemoryStore()
	saved, err := store.SaveApplication(context.Background(), Application{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, saved.Status)
}

func TestCoverLetters(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			_, err := store.GetCoverLetter(ctx, "Acme", "Engineer")
			assert.ErrorIs(t, err, ErrNotFound)

			first, err := store.SaveCoverLetter(ctx, CoverLetter{Company: "Acme", Position: "Engineer", Content: "Dear team"})
			require.NoError(t, err)

			second, err := store.SaveCoverLetter(ctx, CoverLetter{Company: "Acme", Position: "Engineer", Content: "Dear hiring manager"})
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)

			got, err := store.GetCoverLetter(ctx, "Acme", "Engineer")
			require.NoError(t, err)
			assert.Equal(t, "Dear hiring manager", got.Content)
			assert.True(t, fixedNow.Equal(got.CreatedAt))

			letters, err := store.ListCoverLetters(ctx)
			require.NoError(t, err)
			assert.Len(t, letters, 1)

			_, err = store.SaveCoverLetter(ctx, CoverLetter{Company: "Acme", Position: "Engineer"})
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestStats(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			stats, err := store.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, stats.Applications)
			assert.Len(t, stats.ByStatus, len(Statuses()))

			for _, app := range []Application{
				{Company: "A", Position: "x", Status: StatusApplied},
				{Company: "B", Position: "x", Status: StatusApplied},
				{Company: "C", Position: "x", Status: StatusRejected},
			} {
				_, err = store.SaveApplication(ctx, app)
				require.NoError(t, err)
			}
			_, err = store.SaveCoverLetter(ctx, CoverLetter{Company: "A", Position: "x", Content: "letter"})
			require.NoError(t, err)
			_, err = store.SaveProject(ctx, Project{Title: "Tracker", Description: "Job tracker", Technologies: []string{"Go"}})
			require.NoError(t, err)
			for _, skill := range []Skill{{Name: "Go", Category: "programming_languages"}, {Name: "Postgres", Category: "databases"}} {
				_, err = store.SaveSkill(ctx, skill)
				require.NoError(t, err)
			}

			stats, err = store.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, stats.Applications)
			assert.Equal(t, 1, stats.CoverLetters)
			assert.Equal(t, 1, stats.Projects)
			assert.Equal(t, 2, stats.Skills)
			assert.Equal(t, 2, stats.ByStatus[StatusApplied])
			assert.Equal(t, 1, stats.ByStatus[StatusRejected])
			assert.Equal(t, 0, stats.ByStatus[StatusOffer])
		})
	}
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := OpenSQLite(dir)
	require.NoError(t, err)
	_, err = s1.SaveApplication(ctx, Application{Company: "Acme", Position: "Engineer", Status: StatusApplied})
	require.NoError(t, err)
	v1, err := s1.AppliedMigrations(ctx)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(dir)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	v2, err := s2.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
	assert.Equal(t, []int{1, 2}, v2)

	apps, err := s2.ListApplications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1, "history survives reopening")
	assert.Equal(t, "Acme", apps[0].Company)
}

func TestProjects(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			first, err := store.SaveProject(ctx, Project{
				Title:        " Shop ",
				Description:  "E-commerce website",
				Technologies: []string{"React", " Node.js ", ""},
				GitHubURL:    "https://github.com/ada/shop",
			})
			require.NoError(t, err)
			assert.NotEmpty(t, first.ID)
			assert.Equal(t, "Shop", first.Title)
			assert.Equal(t, []string{"React", "Node.js"}, first.Technologies)
			assert.True(t, fixedNow.Equal(first.CreatedAt))

			updated, err := store.SaveProject(ctx, Project{
				Title:        "Shop",
				Description:  "E-commerce website on AWS",
				Technologies: []string{"React", "AWS"},
				LiveURL:      "https://shop.example.com",
			})
			require.NoError(t, err)
			assert.Equal(t, first.ID, updated.ID)

			_, err = store.SaveProject(ctx, Project{Title: "Blog", Description: "Static blog", Technologies: []string{"Hugo"}})
			require.NoError(t, err)

			projects, err := store.ListProjects(ctx)
			require.NoError(t, err)
			require.Len(t, projects, 2)
			assert.Equal(t, "Shop", projects[0].Title)
			assert.Equal(t, "E-commerce website on AWS", projects[0].Description)
			assert.Equal(t, []string{"React", "AWS"}, projects[0].Technologies)
			assert.Empty(t, projects[0].GitHubURL)
			assert.Equal(t, "https://shop.example.com", projects[0].LiveURL)
			assert.Equal(t, "Blog", projects[1].Title)
		})
	}
}

func TestSaveProjectRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		field   string
	}{
		{name: "missing title", project: Project{Description: "d", Technologies: []string{"Go"}}, field: "title is required"},
		{name: "missing description", project: Project{Title: "t", Technologies: []string{"Go"}}, field: "description is required"},
		{name: "no technologies", project: Project{Title: "t", Description: "d", Technologies: []string{" "}}, field: "technologies must list at least 1"},
		{name: "bad url", project: Project{Title: "t", Description: "d", Technologies: []string{"Go"}, GitHubURL: "not a url"}, field: "github_url must be a valid URL"},
	}

	for name, open := range backends() {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				_, err := open(t).SaveProject(context.Background(), tt.project)
				require.ErrorIs(t, err, ErrInvalidRecord)

				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Contains(t, verr.Fields, tt.field)
			})
		}
	}
}

func TestSkills(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			first, err := store.SaveSkill(ctx, Skill{Name: "Go", Category: " Programming_Languages "})
			require.NoError(t, err)
			assert.Equal(t, DefaultProficiency, first.Proficiency)
			assert.Equal(t, "programming_languages", first.Category)

			updated, err := store.SaveSkill(ctx, Skill{Name: "Go", Category: "programming_languages", Proficiency: 9})
			require.NoError(t, err)
			assert.Equal(t, first.ID, updated.ID)

			_, err = store.SaveSkill(ctx, Skill{Name: "Go", Category: "tools", Proficiency: 3})
			require.NoError(t, err, "same name in another category is a separate skill")

			skills, err := store.ListSkills(ctx)
			require.NoError(t, err)
			require.Len(t, skills, 2)
			assert.Equal(t, 9, skills[0].Proficiency)
			assert.Equal(t, "tools", skills[1].Category)

			for _, proficiency := range []int{-1, MaxProficiency + 1} {
				_, err = store.SaveSkill(ctx, Skill{Name: "SQL", Category: "databases", Proficiency: proficiency})
				assert.ErrorIs(t, err, ErrInvalidRecord, "proficiency %d", proficiency)
			}
		})
	}
}

func TestSplitTechnologies(t *testing.T) {
	assert.Equal(t, []string{"React", "Node.js", "MongoDB"}, SplitTechnologies("React, Node.js,, MongoDB "))
	assert.Empty(t, SplitTechnologies(" , "))
}

func TestStatusHelpers(t *testing.T) {
	assert.Equal(t, "📝", StatusApplied.Icon())
	assert.Equal(t, "🎉", StatusOffer.Icon())
	assert.Equal(t, "📌", Status("Ghosted").Icon())
	assert.False(t, Status("Ghosted").Valid())

	status, err := ParseStatus("phone screen")
	require.NoError(t, err)
	assert.Equal(t, StatusPhoneScreen, status)

	_, err = ParseStatus("hired")
	assert.Error(t, err)
}
