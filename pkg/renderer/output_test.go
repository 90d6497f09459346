package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikogura/career-kit/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDocument(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "resume.md")

	require.NoError(t, WriteDocument("# Test\n\n\n", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Test\n", string(data))
}

func TestRemoveDocuments(t *testing.T) {
	tmpDir := t.TempDir()
	first := filepath.Join(tmpDir, "one.md")
	second := filepath.Join(tmpDir, "two.md")
	require.NoError(t, os.WriteFile(first, []byte("x"), 0600))
	require.NoError(t, os.WriteFile(second, []byte("x"), 0600))

	require.NoError(t, RemoveDocuments(first, second))

	_, err := os.Stat(first)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(second)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, RemoveDocuments("/nonexistent/file.md"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Acme Corp", want: "acme"},
		{input: "Widgets, Inc.", want: "widgets"},
		{input: "Staff Engineer (Platform)", want: "staff-engineer-platform"},
		{input: "  --Ada  Lovelace--  ", want: "ada-lovelace"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestDocumentPath(t *testing.T) {
	got := DocumentPath("out", "resume", ".md", "Ada Lovelace", "", "Acme Inc")
	assert.Equal(t, filepath.Join("out", "ada-lovelace-acme-resume.md"), got)
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "contact icons", input: "- 📧 Email: a@b.c\n• item", expected: "- Email: a@b.c\n• item"},
		{name: "headings", input: "# ADA\n## Projects\n### Compiler", expected: "ADA\nProjects\nCompiler"},
		{name: "bold", input: "**Acme** | 2020-2024\n**Languages:** Go, C++", expected: "Acme | 2020-2024\nLanguages: Go, C++"},
		{name: "italic line", input: "*Technologies: Go, SQL*", expected: "Technologies: Go, SQL"},
		{name: "hash without space kept", input: "#hashtag and C#", expected: "#hashtag and C#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlainText(tt.input))
		})
	}
}

func TestPlainTextRenderedResume(t *testing.T) {
	plain := PlainText(RenderResume(profile.ResumeInput{}))

	assert.NotContains(t, plain, "**")
	assert.NotContains(t, plain, "## ")
	assert.Contains(t, plain, "\nContact Information\n")
	assert.Contains(t, plain, "- Email: your.email@example.com")
}
