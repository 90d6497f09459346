// Package history records job applications, generated cover letters and
// the portfolio of projects and skills.
package history

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Status is the stage an application has reached.
type Status string

// Application statuses in pipeline order.
const (
	StatusApplied            Status = "Applied"
	StatusPhoneScreen        Status = "Phone Screen"
	StatusTechnicalInterview Status = "Technical Interview"
	StatusOnsite             Status = "Onsite"
	StatusOffer              Status = "Offer"
	StatusRejected           Status = "Rejected"
)

// unknownStatusIcon marks a status outside the known list.
const unknownStatusIcon = "📌"

//nolint:gochecknoglobals // Fixed status catalog
var statusIcons = map[Status]string{
	StatusApplied:            "📝",
	StatusPhoneScreen:        "📞",
	StatusTechnicalInterview: "💻",
	StatusOnsite:             "🏢",
	StatusOffer:              "🎉",
	StatusRejected:           "❌",
}

var (
	// ErrNotFound is returned when no record matches a lookup.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord is matched by every ValidationError.
	ErrInvalidRecord = errors.New("invalid record")
)

// Statuses lists every known status in pipeline order.
func Statuses() (statuses []Status) {
	statuses = []Status{
		StatusApplied,
		StatusPhoneScreen,
		StatusTechnicalInterview,
		StatusOnsite,
		StatusOffer,
		StatusRejected,
	}
	return statuses
}

// Valid reports whether s is a known status.
func (s Status) Valid() (ok bool) {
	_, ok = statusIcons[s]
	return ok
}

// Icon returns the display icon for a status.
func (s Status) Icon() (icon string) {
	icon, ok := statusIcons[s]
	if !ok {
		icon = unknownStatusIcon
	}
	return icon
}

// ParseStatus matches a status name case-insensitively.
func ParseStatus(name string) (status Status, err error) {
	name = strings.TrimSpace(name)
	for _, candidate := range Statuses() {
		if strings.EqualFold(string(candidate), name) {
			status = candidate
			return status, err
		}
	}
	err = errors.Errorf("unknown application status: %q", name)
	return status, err
}

// Application is a tracked job application. Company and position together
// identify it.
type Application struct {
	ID        string    `json:"id"`
	Company   string    `json:"company" validate:"required"`
	Position  string    `json:"position" validate:"required"`
	Status    Status    `json:"status" validate:"required,status"`
	Notes     string    `json:"notes,omitempty"`
	AppliedAt time.Time `json:"applied_at"`
}

// CoverLetter is a generated letter kept for later reference.
type CoverLetter struct {
	ID        string    `json:"id"`
	Company   string    `json:"company" validate:"required"`
	Position  string    `json:"position" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats summarizes the history.
type Stats struct {
	Applications int            `json:"applications"`
	CoverLetters int            `json:"cover_letters"`
	Projects     int            `json:"projects"`
	Skills       int            `json:"skills"`
	ByStatus     map[Status]int `json:"by_status"`
}

// Store persists applications, cover letters and the portfolio. Saving an
// application or cover letter whose company and position match an existing
// one replaces it and keeps its ID; projects are keyed by title and skills
// by category and name the same way.
type Store interface {
	SaveApplication(ctx context.Context, app Application) (saved Application, err error)
	ListApplications(ctx context.Context) (apps []Application, err error)
	SaveCoverLetter(ctx context.Context, letter CoverLetter) (saved CoverLetter, err error)
	ListCoverLetters(ctx context.Context) (letters []CoverLetter, err error)
	GetCoverLetter(ctx context.Context, company, position string) (letter CoverLetter, err error)
	SaveProject(ctx context.Context, project Project) (saved Project, err error)
	ListProjects(ctx context.Context) (projects []Project, err error)
	SaveSkill(ctx context.Context, skill Skill) (saved Skill, err error)
	ListSkills(ctx context.Context) (skills []Skill, err error)
	Stats(ctx context.Context) (stats Stats, err error)
	Close() (err error)
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() (msg string) {
	msg = "invalid record: " + strings.Join(e.Fields, "; ")
	return msg
}

// Is makes every ValidationError match ErrInvalidRecord.
func (e *ValidationError) Is(target error) (ok bool) {
	ok = target == ErrInvalidRecord
	return ok
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var validate = newValidator()

func newValidator() (v *validator.Validate) {
	v = validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	err := v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	if err != nil {
		panic(errors.Wrap(err, "failed to register status validation"))
	}
	return v
}

// Validate checks a record against its validation tags.
func Validate(record interface{}) (err error) {
	err = validate.Struct(record)
	if err == nil {
		return err
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		err = errors.Wrap(err, "failed to validate record")
		return err
	}

	verr := &ValidationError{Fields: make([]string, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			verr.Fields = append(verr.Fields, fe.Field()+" is required")
		case "status":
			verr.Fields = append(verr.Fields, fe.Field()+" must be one of "+statusList())
		case "min":
			if fe.Kind() == reflect.Slice {
				verr.Fields = append(verr.Fields, fe.Field()+" must list at least "+fe.Param())
				break
			}
			verr.Fields = append(verr.Fields, fe.Field()+" must be at least "+fe.Param())
		case "max":
			verr.Fields = append(verr.Fields, fe.Field()+" must be at most "+fe.Param())
		case "url":
			verr.Fields = append(verr.Fields, fe.Field()+" must be a valid URL")
		default:
			verr.Fields = append(verr.Fields, fe.Field()+" failed "+fe.Tag())
		}
	}

	err = verr
	return err
}

func statusList() (list string) {
	names := make([]string, 0, len(statusIcons))
	for _, s := range Statuses() {
		names = append(names, string(s))
	}
	list = strings.Join(names, ", ")
	return list
}

// prepareApplication trims, validates and stamps an application before it
// is stored.
func prepareApplication(app Application, now time.Time) (prepared Application, err error) {
	prepared = app
	prepared.Company = strings.TrimSpace(prepared.Company)
	prepared.Position = strings.TrimSpace(prepared.Position)
	prepared.Notes = strings.TrimSpace(prepared.Notes)
	if prepared.Status == "" {
		prepared.Status = StatusApplied
	}

	err = Validate(prepared)
	if err != nil {
		return prepared, err
	}

	if prepared.ID == "" {
		prepared.ID = uuid.NewString()
	}
	if prepared.AppliedAt.IsZero() {
		prepared.AppliedAt = now
	}
	prepared.AppliedAt = prepared.AppliedAt.UTC()

	return prepared, err
}

func prepareCoverLetter(letter CoverLetter, now time.Time) (prepared CoverLetter, err error) {
	prepared = letter
	prepared.Company = strings.TrimSpace(prepared.Company)
	prepared.Position = strings.TrimSpace(prepared.Position)

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

func emptyStats() (stats Stats) {
	stats.ByStatus = make(map[Status]int, len(statusIcons))
	for _, s := range Statuses() {
		stats.ByStatus[s] = 0
	}
	return stats
}
