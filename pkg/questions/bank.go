package questions

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// Question categories.
const (
	CategoryTechnical    = "technical"
	CategoryBehavioral   = "behavioral"
	CategorySystemDesign = "system_design"
)

//go:embed data/bank.json
var defaultBankJSON []byte

//go:embed data/bank.schema.json
var bankSchemaJSON []byte

// Question is a single interview question with a model answer.
type Question struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category,omitempty"`
	Tips     []string `json:"tips,omitempty"`
}

// document is the on-disk layout of a question bank.
type document struct {
	Technical     map[string][]Question `json:"technical"`
	Behavioral    []Question            `json:"behavioral"`
	SystemDesign  []Question            `json:"system_design"`
	InterviewTips []string              `json:"interview_tips,omitempty"`
}

// Bank is a read-only catalog of interview questions. Technical questions
// are partitioned by subcategory; other categories are flat lists. A Bank
// never changes after construction and is safe to share.
type Bank struct {
	subcategories []string
	technical     map[string][]Question
	flat          map[string][]Question
	tips          []string
}

// SchemaError reports a bank document that does not match the bank schema.
type SchemaError struct {
	Errors []string
}

func (e *SchemaError) Error() (msg string) {
	var sb strings.Builder
	sb.WriteString("question bank failed schema validation:\n")
	for i, desc := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, desc))
	}
	msg = sb.String()
	return msg
}

// New builds a bank from in-memory question lists. Subcategories are kept
// in name order.
func New(technical map[string][]Question, behavioral, systemDesign []Question) (bank *Bank) {
	bank = &Bank{
		subcategories: make([]string, 0, len(technical)),
		technical:     make(map[string][]Question, len(technical)),
		flat: map[string][]Question{
			CategoryBehavioral:   cloneQuestions(behavioral),
			CategorySystemDesign: cloneQuestions(systemDesign),
		},
		tips: []string{},
	}

	for name, list := range technical {
		bank.subcategories = append(bank.subcategories, name)
		bank.technical[name] = cloneQuestions(list)
	}
	sort.Strings(bank.subcategories)

	return bank
}

// DefaultBank returns the question bank shipped with the binary.
func DefaultBank() (bank *Bank) {
	bank, err := Parse(defaultBankJSON)
	if err != nil {
		panic(errors.Wrap(err, "embedded question bank is invalid"))
	}
	return bank
}

// Load reads and validates a question bank from a JSON file.
func Load(path string) (bank *Bank, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read question bank: %s", path)
		return bank, err
	}

	bank, err = Parse(data)
	if err != nil {
		err = errors.Wrapf(err, "failed to load question bank: %s", path)
		return bank, err
	}

	return bank, err
}

// Parse validates a question bank document against the bank schema and
// builds the bank from it.
func Parse(data []byte) (bank *Bank, err error) {
	err = validate(data)
	if err != nil {
		return bank, err
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	err = dec.Decode(&doc)
	if err != nil {
		err = errors.Wrap(err, "failed to parse question bank JSON")
		return bank, err
	}

	bank = New(doc.Technical, doc.Behavioral, doc.SystemDesign)
	bank.tips = append(bank.tips, doc.InterviewTips...)

	return bank, err
}

func validate(data []byte) (err error) {
	schemaLoader := gojsonschema.NewBytesLoader(bankSchemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	var result *gojsonschema.Result
	result, err = gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		err = errors.Wrap(err, "failed to validate question bank")
		return err
	}

	if result.Valid() {
		return err
	}

	schemaErr := &SchemaError{Errors: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, field+": "+desc.Description())
	}

	err = schemaErr
	return err
}

// Categories lists the top-level categories.
func (b *Bank) Categories() (categories []string) {
	categories = []string{CategoryTechnical, CategoryBehavioral, CategorySystemDesign}
	return categories
}

// Subcategories lists technical subcategories in alphabetical order.
func (b *Bank) Subcategories() (subcategories []string) {
	subcategories = make([]string, len(b.subcategories))
	copy(subcategories, b.subcategories)
	return subcategories
}

// Tips returns general interview advice.
func (b *Bank) Tips() (tips []string) {
	tips = make([]string, len(b.tips))
	copy(tips, b.tips)
	return tips
}

// ByCategory returns the questions of a category. For technical questions a
// subcategory selects one partition; without one, every technical question
// is returned. Unknown categories and subcategories yield an empty list.
func (b *Bank) ByCategory(category, subcategory string) (result []Question) {
	if category == CategoryTechnical {
		if subcategory != "" {
			result = cloneQuestions(b.technical[subcategory])
			return result
		}
		result = cloneQuestions(b.allTechnical())
		return result
	}

	result = cloneQuestions(b.flat[category])
	return result
}

// All returns every question: technical subcategories in order, then
// behavioral, then system design.
func (b *Bank) All() (result []Question) {
	result = cloneQuestions(b.pool(""))
	return result
}

// Len counts every question in the bank.
func (b *Bank) Len() (total int) {
	total = len(b.pool(""))
	return total
}

// HasCategory reports whether category is known to the bank.
func (b *Bank) HasCategory(category string) (ok bool) {
	if category == CategoryTechnical {
		ok = true
		return ok
	}
	_, ok = b.flat[category]
	return ok
}

// pool returns the uncopied questions drawn from by a category, or the
// whole bank for an empty category.
func (b *Bank) pool(category string) (result []Question) {
	switch category {
	case "":
		result = b.allTechnical()
		result = append(result, b.flat[CategoryBehavioral]...)
		result = append(result, b.flat[CategorySystemDesign]...)
	case CategoryTechnical:
		result = b.allTechnical()
	default:
		result = b.flat[category]
	}
	return result
}

func (b *Bank) allTechnical() (result []Question) {
	result = make([]Question, 0)
	for _, name := range b.subcategories {
		result = append(result, b.technical[name]...)
	}
	return result
}

func cloneQuestions(in []Question) (out []Question) {
	out = make([]Question, len(in))
	for i, q := range in {
		out[i] = q.clone()
	}
	return out
}

func (q Question) clone() (c Question) {
	c = q
	if q.Tips != nil {
		c.Tips = make([]string, len(q.Tips))
		copy(c.Tips, q.Tips)
	}
	return c
}
