package profile

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Portfolio skill categories created by NewSkillSet.
const (
	CategoryProgrammingLanguages = "programming_languages"
	CategoryFrameworks           = "frameworks"
	CategoryTools                = "tools"
	CategoryDatabases            = "databases"
)

// primarySkillCount is how many languages the professional summary mentions.
const primarySkillCount = 3

//nolint:gochecknoglobals // Summary fallback when no languages are listed
var defaultPrimarySkills = []string{"Python", "JavaScript"}

// SkillSet maps a skill category to an ordered list of skill names.
// Categories keep insertion order and are unique. The zero value is an
// empty, usable set.
type SkillSet struct {
	order  []string
	skills map[string][]string
}

// NewSkillSet creates a skill set with the standard portfolio categories.
func NewSkillSet() (s SkillSet) {
	for _, category := range []string{CategoryProgrammingLanguages, CategoryFrameworks, CategoryTools, CategoryDatabases} {
		s.ensure(category)
	}
	return s
}

// Add appends a skill to a category, creating the category on first use.
func (s *SkillSet) Add(category, skill string) {
	category = strings.TrimSpace(category)
	skill = strings.TrimSpace(skill)
	if category == "" || skill == "" {
		return
	}
	s.ensure(category)
	s.skills[category] = append(s.skills[category], skill)
}

// Set replaces the skills of a category, creating it if needed.
func (s *SkillSet) Set(category string, skills []string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return
	}
	s.ensure(category)
	s.skills[category] = nonEmpty(skills)
}

func (s *SkillSet) ensure(category string) {
	if s.skills == nil {
		s.skills = make(map[string][]string)
	}
	if _, exists := s.skills[category]; exists {
		return
	}
	s.order = append(s.order, category)
	s.skills[category] = []string{}
}

// Categories returns category names in insertion order.
func (s SkillSet) Categories() (categories []string) {
	categories = make([]string, len(s.order))
	copy(categories, s.order)
	return categories
}

// Get returns a copy of the skills in a category.
func (s SkillSet) Get(category string) (skills []string) {
	skills = make([]string, len(s.skills[category]))
	copy(skills, s.skills[category])
	return skills
}

// Len returns the total number of skills across categories.
func (s SkillSet) Len() (total int) {
	for _, skills := range s.skills {
		total += len(skills)
	}
	return total
}

// PrimaryLanguages returns up to three programming languages for the
// professional summary, falling back to a generic pair when none are listed.
func (s SkillSet) PrimaryLanguages() (languages []string) {
	languages = s.Get(CategoryProgrammingLanguages)
	if len(languages) == 0 {
		languages = make([]string, len(defaultPrimarySkills))
		copy(languages, defaultPrimarySkills)
		return languages
	}
	if len(languages) > primarySkillCount {
		languages = languages[:primarySkillCount]
	}
	return languages
}

// MarshalJSON encodes the set as a JSON object in category order.
func (s SkillSet) MarshalJSON() (data []byte, err error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, category := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}

		var key, value []byte
		key, err = json.Marshal(category)
		if err != nil {
			err = errors.Wrapf(err, "failed to marshal skill category: %s", category)
			return data, err
		}
		value, err = json.Marshal(s.skills[category])
		if err != nil {
			err = errors.Wrapf(err, "failed to marshal skills for category: %s", category)
			return data, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	data = buf.Bytes()
	return data, err
}

// UnmarshalJSON decodes a JSON object, keeping the document's category order.
func (s *SkillSet) UnmarshalJSON(data []byte) (err error) {
	*s = SkillSet{}

	if string(bytes.TrimSpace(data)) == "null" {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	var tok json.Token
	tok, err = dec.Token()
	if err != nil {
		err = errors.Wrap(err, "failed to read skills object")
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		err = errors.New("skills must be a JSON object of category to skill list")
		return err
	}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			err = errors.Wrap(err, "failed to read skill category")
			return err
		}
		category, _ := tok.(string)

		var skills []string
		err = dec.Decode(&skills)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse skills for category: %s", category)
			return err
		}

		s.Set(category, skills)
	}

	_, err = dec.Token()
	if err != nil {
		err = errors.Wrap(err, "failed to close skills object")
		return err
	}

	return err
}
