package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// MemoryLocation opens a SQLite database that lives only as long as the store.
const MemoryLocation = ":memory:"

// databaseFile is the file created inside a history directory.
const databaseFile = "history.db"

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps history in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the history database in dir and applies
// pending migrations. Pass MemoryLocation for a throwaway database.
func OpenSQLite(dir string) (store *SQLiteStore, err error) {
	dsn := MemoryLocation
	if dir != MemoryLocation {
		err = os.MkdirAll(dir, 0750)
		if err != nil {
			err = errors.Wrapf(err, "failed to create history directory: %s", dir)
			return store, err
		}
		dsn = filepath.Join(dir, databaseFile)
	}

	var db *sql.DB
	db, err = sql.Open("sqlite", dsn)
	if err != nil {
		err = errors.Wrapf(err, "failed to open history database: %s", dsn)
		return store, err
	}

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		err = errors.Wrapf(err, "failed to connect to history database: %s", dsn)
		return store, err
	}

	// One connection keeps an in-memory database alive and avoids lock errors.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA journal_mode=WAL"} {
		_, err = db.Exec(pragma)
		if err != nil {
			_ = db.Close()
			err = errors.Wrapf(err, "failed to apply %q", pragma)
			return store, err
		}
	}

	store = &SQLiteStore{db: db, now: time.Now}

	err = store.migrate()
	if err != nil {
		_ = db.Close()
		store = nil
		err = errors.Wrap(err, "failed to migrate history database")
		return store, err
	}

	return store, err
}

// Close closes the database.
func (s *SQLiteStore) Close() (err error) {
	err = s.db.Close()
	if err != nil {
		err = errors.Wrap(err, "failed to close history database")
	}
	return err
}

func (s *SQLiteStore) migrate() (err error) {
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		err = errors.Wrap(err, "failed to create schema_version table")
		return err
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		err = errors.Wrap(err, "failed to read migrations")
		return err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		err = s.applyMigration(entry.Name())
		if err != nil {
			return err
		}
	}

	return err
}

func (s *SQLiteStore) applyMigration(name string) (err error) {
	var version int
	_, err = fmt.Sscanf(name, "%d_", &version)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse migration version from %q", name)
		return err
	}

	var applied int
	err = s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&applied)
	if err != nil {
		err = errors.Wrapf(err, "failed to check migration %d", version)
		return err
	}
	if applied > 0 {
		return err
	}

	content, err := migrationsFS.ReadFile("migrations/" + name)
	if err != nil {
		err = errors.Wrapf(err, "failed to read migration %s", name)
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		err = errors.Wrapf(err, "failed to begin migration %d", version)
		return err
	}

	_, err = tx.Exec(string(content))
	if err != nil {
		_ = tx.Rollback()
		err = errors.Wrapf(err, "failed to apply migration %d", version)
		return err
	}

	_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version)
	if err != nil {
		_ = tx.Rollback()
		err = errors.Wrapf(err, "failed to record migration %d", version)
		return err
	}

	err = tx.Commit()
	if err != nil {
		err = errors.Wrapf(err, "failed to commit migration %d", version)
		return err
	}

	return err
}

// AppliedMigrations lists applied migration versions in ascending order.
func (s *SQLiteStore) AppliedMigrations(ctx context.Context) (versions []int, err error) {
	rows, err := s.db.QueryContext(ctx, "SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		err = errors.Wrap(err, "failed to query migrations")
		return versions, err
	}
	defer rows.Close()

	versions = make([]int, 0)
	for rows.Next() {
		var v int
		err = rows.Scan(&v)
		if err != nil {
			err = errors.Wrap(err, "failed to scan migration version")
			return versions, err
		}
		versions = append(versions, v)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to read migrations")
	}
	return versions, err
}

// SaveApplication validates and upserts an application.
func (s *SQLiteStore) SaveApplication(ctx context.Context, app Application) (saved Application, err error) {
	saved, err = prepareApplication(app, s.now())
	if err != nil {
		return saved, err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO applications (id, company, position, status, notes, applied_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (company, position) DO UPDATE SET
			status = excluded.status,
			notes = excluded.notes,
			applied_at = excluded.applied_at
		RETURNING id`,
		saved.ID, saved.Company, saved.Position, string(saved.Status), saved.Notes, formatTime(saved.AppliedAt),
	).Scan(&saved.ID)
	if err != nil {
		err = errors.Wrapf(err, "failed to save application: %s / %s", saved.Company, saved.Position)
		return saved, err
	}

	return saved, err
}

// ListApplications returns applications in the order they were first saved.
func (s *SQLiteStore) ListApplications(ctx context.Context) (apps []Application, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company, position, status, notes, applied_at
		FROM applications ORDER BY rowid ASC`)
	if err != nil {
		err = errors.Wrap(err, "failed to query applications")
		return apps, err
	}
	defer rows.Close()

	apps = make([]Application, 0)
	for rows.Next() {
		var app Application
		var status, appliedAt string
		err = rows.Scan(&app.ID, &app.Company, &app.Position, &status, &app.Notes, &appliedAt)
		if err != nil {
			err = errors.Wrap(err, "failed to scan application")
			return apps, err
		}
		app.Status = Status(status)
		app.AppliedAt, err = parseTime(appliedAt)
		if err != nil {
			return apps, err
		}
		apps = append(apps, app)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to read applications")
	}
	return apps, err
}

// SaveCoverLetter validates and upserts a cover letter.
func (s *SQLiteStore) SaveCoverLetter(ctx context.Context, letter CoverLetter) (saved CoverLetter, err error) {
	saved, err = prepareCoverLetter(letter, s.now())
	if err != nil {
		return saved, err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO cover_letters (id, company, position, content, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (company, position) DO UPDATE SET
			content = excluded.content,
			created_at = excluded.created_at
		RETURNING id`,
		saved.ID, saved.Company, saved.Position, saved.Content, formatTime(saved.CreatedAt),
	).Scan(&saved.ID)
	if err != nil {
		err = errors.Wrapf(err, "failed to save cover letter: %s / %s", saved.Company, saved.Position)
		return saved, err
	}

	return saved, err
}

// ListCoverLetters returns cover letters in the order they were first saved.
func (s *SQLiteStore) ListCoverLetters(ctx context.Context) (letters []CoverLetter, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company, position, content, created_at
		FROM cover_letters ORDER BY rowid ASC`)
	if err != nil {
		err = errors.Wrap(err, "failed to query cover letters")
		return letters, err
	}
	defer rows.Close()

	letters = make([]CoverLetter, 0)
	for rows.Next() {
		var letter CoverLetter
		letter, err = scanCoverLetter(rows)
		if err != nil {
			return letters, err
		}
		letters = append(letters, letter)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to read cover letters")
	}
	return letters, err
}

// GetCoverLetter finds the letter for a company and position.
func (s *SQLiteStore) GetCoverLetter(ctx context.Context, company, position string) (letter CoverLetter, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, company, position, content, created_at
		FROM cover_letters WHERE company = ? AND position = ?`, company, position)

	letter, err = scanCoverLetter(row)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	}
	return letter, err
}

// SaveProject validates and upserts a portfolio project. An existing project
// keeps its ID and creation time.
func (s *SQLiteStore) SaveProject(ctx context.Context, project Project) (saved Project, err error) {
	saved, err = prepareProject(project, s.now())
	if err != nil {
		return saved, err
	}

	var technologies []byte
	technologies, err = json.Marshal(saved.Technologies)
	if err != nil {
		err = errors.Wrap(err, "failed to encode technologies")
		return saved, err
	}

	var createdAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO projects (id, title, description, technologies, github_url, live_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (title) DO UPDATE SET
			description = excluded.description,
			technologies = excluded.technologies,
			github_url = excluded.github_url,
			live_url = excluded.live_url
		RETURNING id, created_at`,
		saved.ID, saved.Title, saved.Description, string(technologies), saved.GitHubURL, saved.LiveURL, formatTime(saved.CreatedAt),
	).Scan(&saved.ID, &createdAt)
	if err != nil {
		err = errors.Wrapf(err, "failed to save project: %s", saved.Title)
		return saved, err
	}

	saved.CreatedAt, err = parseTime(createdAt)
	return saved, err
}

// ListProjects returns projects in the order they were first saved.
func (s *SQLiteStore) ListProjects(ctx context.Context) (projects []Project, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, technologies, github_url, live_url, created_at
		FROM projects ORDER BY rowid ASC`)
	if err != nil {
		err = errors.Wrap(err, "failed to query projects")
		return projects, err
	}
	defer rows.Close()

	projects = make([]Project, 0)
	for rows.Next() {
		var project Project
		var technologies, createdAt string
		err = rows.Scan(&project.ID, &project.Title, &project.Description, &technologies, &project.GitHubURL, &project.LiveURL, &createdAt)
		if err != nil {
			err = errors.Wrap(err, "failed to scan project")
			return projects, err
		}

		err = json.Unmarshal([]byte(technologies), &project.Technologies)
		if err != nil {
			err = errors.Wrapf(err, "failed to decode technologies of %s", project.Title)
			return projects, err
		}

		project.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return projects, err
		}
		projects = append(projects, project)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to read projects")
	}
	return projects, err
}

// SaveSkill validates and upserts a portfolio skill. An existing skill keeps
// its ID and creation time.
func (s *SQLiteStore) SaveSkill(ctx context.Context, skill Skill) (saved Skill, err error) {
	saved, err = prepareSkill(skill, s.now())
	if err != nil {
		return saved, err
	}

	var createdAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO skills (id, name, category, proficiency, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (category, name) DO UPDATE SET
			proficiency = excluded.proficiency
		RETURNING id, created_at`,
		saved.ID, saved.Name, saved.Category, saved.Proficiency, formatTime(saved.CreatedAt),
	).Scan(&saved.ID, &createdAt)
	if err != nil {
		err = errors.Wrapf(err, "failed to save skill: %s / %s", saved.Category, saved.Name)
		return saved, err
	}

	saved.CreatedAt, err = parseTime(createdAt)
	return saved, err
}

// ListSkills returns skills in the order they were first saved.
func (s *SQLiteStore) ListSkills(ctx context.Context) (skills []Skill, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, proficiency, created_at
		FROM skills ORDER BY rowid ASC`)
	if err != nil {
		err = errors.Wrap(err, "failed to query skills")
		return skills, err
	}
	defer rows.Close()

	skills = make([]Skill, 0)
	for rows.Next() {
		var skill Skill
		var createdAt string
		err = rows.Scan(&skill.ID, &skill.Name, &skill.Category, &skill.Proficiency, &createdAt)
		if err != nil {
			err = errors.Wrap(err, "failed to scan skill")
			return skills, err
		}
		skill.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return skills, err
		}
		skills = append(skills, skill)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to read skills")
	}
	return skills, err
}

// Stats counts records and applications per status.
func (s *SQLiteStore) Stats(ctx context.Context) (stats Stats, err error) {
	stats = emptyStats()

	err = s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM cover_letters),
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM skills)`,
	).Scan(&stats.CoverLetters, &stats.Projects, &stats.Skills)
	if err != nil {
		err = errors.Wrap(err, "failed to count history records")
		return stats, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM applications GROUP BY status")
	if err != nil {
		err = errors.Wrap(err, "failed to count applications")
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		err = rows.Scan(&status, &count)
		if err != nil {
			err = errors.Wrap(err, "failed to scan application count")
			return stats, err
		}
		stats.ByStatus[Status(status)] += count
		stats.Applications += count
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to read application counts")
	}
	return stats, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCoverLetter(row scanner) (letter CoverLetter, err error) {
	var createdAt string
	err = row.Scan(&letter.ID, &letter.Company, &letter.Position, &letter.Content, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return letter, err
		}
		err = errors.Wrap(err, "failed to scan cover letter")
		return letter, err
	}

	letter.CreatedAt, err = parseTime(createdAt)
	return letter, err
}

func formatTime(t time.Time) (text string) {
	text = t.UTC().Format(time.RFC3339Nano)
	return text
}

func parseTime(text string) (t time.Time, err error) {
	t, err = time.Parse(time.RFC3339Nano, text)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse stored time %q", text)
	}
	return t, err
}
