package renderer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// WriteDocument writes rendered content to a file, creating parent
// directories as needed. Content always ends with a single newline.
func WriteDocument(content, outputPath string) (err error) {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	content = strings.TrimRight(content, "\n") + "\n"

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write document: %s", outputPath)
		return err
	}

	return err
}

// RemoveDocuments deletes previously written documents.
func RemoveDocuments(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove document: %s", path)
			return err
		}
	}
	return err
}

// DocumentPath builds the output path for a rendered document, e.g.
// <dir>/ada-lovelace-acme-staff-engineer-resume.md.
func DocumentPath(outDir, kind, ext string, parts ...string) (path string) {
	names := make([]string, 0, len(parts)+1)
	for _, part := range parts {
		sanitized := SanitizeFilename(part)
		if sanitized != "" {
			names = append(names, sanitized)
		}
	}
	names = append(names, kind)

	path = filepath.Join(outDir, strings.Join(names, "-")+ext)
	return path
}

// SanitizeFilename lowercases a name and collapses everything but letters
// and digits into single hyphens. Common company suffixes are dropped.
func SanitizeFilename(name string) (sanitized string) {
	suffixes := []string{
		", LLC", ", Inc.", ", Inc",
		" LLC", " Inc.", " Inc", " Corporation", " Corp.", " Corp",
		" Limited", " Ltd.", " Ltd", " Co.",
	}

	sanitized = strings.TrimSpace(name)
	for _, suffix := range suffixes {
		if len(sanitized) > len(suffix) && strings.EqualFold(sanitized[len(sanitized)-len(suffix):], suffix) {
			sanitized = sanitized[:len(sanitized)-len(suffix)]
		}
	}

	sanitized = strings.ToLower(sanitized)

	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}

// PlainText turns a rendered markdown document into plain text: heading
// markers, bold and italic asterisks and the contact-section pictographs are
// removed.
func PlainText(text string) (plain string) {
	result := strings.Builder{}
	for _, r := range text {
		if r >= 0x1F300 && r <= 0x1F9FF { // Miscellaneous Symbols and Pictographs, Emoticons
			continue
		}
		if r >= 0x2600 && r <= 0x27BF { // Miscellaneous Symbols, Dingbats
			continue
		}
		result.WriteRune(r)
	}

	lines := strings.Split(result.String(), "\n")
	for i, line := range lines {
		line = stripMarkdown(line)
		for strings.Contains(line, "  ") {
			line = strings.ReplaceAll(line, "  ", " ")
		}
		lines[i] = line
	}

	plain = strings.Join(lines, "\n")
	return plain
}

// stripMarkdown removes the markup the resume template emits on one line.
func stripMarkdown(line string) (stripped string) {
	stripped = line

	if trimmed := strings.TrimLeft(stripped, "#"); len(trimmed) < len(stripped) && strings.HasPrefix(trimmed, " ") {
		stripped = strings.TrimPrefix(trimmed, " ")
	}

	stripped = strings.ReplaceAll(stripped, "**", "")

	if len(stripped) > 2 && strings.HasPrefix(stripped, "*") && strings.HasSuffix(stripped, "*") {
		stripped = stripped[1 : len(stripped)-1]
	}

	return stripped
}
