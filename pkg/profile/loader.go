package profile

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Load reads a resume input document from a JSON file. Missing fields are
// left empty; rendering substitutes placeholders for them.
func Load(path string) (in ResumeInput, err error) {
	err = loadJSON(path, "resume input", &in)
	return in, err
}

// LoadCoverLetter reads a cover letter input document from a JSON file.
func LoadCoverLetter(path string) (in CoverLetterInput, err error) {
	err = loadJSON(path, "cover letter input", &in)
	return in, err
}

func loadJSON(path, kind string, v interface{}) (err error) {
	// Read file
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s file: %s", kind, path)
		return err
	}

	// Parse JSON
	err = json.Unmarshal(fileData, v)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse %s JSON: %s", kind, path)
		return err
	}

	return err
}
