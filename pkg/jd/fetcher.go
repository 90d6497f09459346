package jd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// fetchTimeout bounds a single job description download.
const fetchTimeout = 30 * time.Second

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 5 << 20

const (
	noiseSelector = "nav, footer, header, script, style, noscript, form, .ad, .ads, .sidebar, .cookie-banner, .popup"
	blockSelector = "p, div, li, h1, h2, h3, h4, h5, h6, tr, section, article, ul, ol"
)

// postingSelectors are tried in order to find the posting on a job board page.
//
//nolint:gochecknoglobals // Fixed selector list
var postingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
}

// Fetch retrieves a job description from a file or an http(s) URL.
func Fetch(input string) (content string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext retrieves job description with context.
func FetchWithContext(ctx context.Context, input string) (content string, err error) {
	// Check if input is a URL
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		// It's a URL - fetch via HTTP
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch JD from URL: %s", input)
			return content, err
		}
		return content, err
	}

	// It's a file path - read from disk
	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch JD from file: %s", input)
		return content, err
	}

	return content, err
}

// fetchFromFile reads job description from a file.
func fetchFromFile(path string) (content string, err error) {
	content, err = ReadDocument(path)
	return content, err
}

// fetchFromURL retrieves job description from a URL.
func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "career-kit/1.0")
	req.Header.Set("Accept", "text/html,text/plain;q=0.9")

	client := &http.Client{
		Timeout: fetchTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content, err = ExtractText(string(bodyBytes))
	if err != nil {
		return content, err
	}

	if content == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

// ExtractText reduces an HTML page to the text of its job posting. Page
// chrome is dropped, the first matching posting container is preferred over
// the whole body, and each block element ends up on its own line.
func ExtractText(html string) (text string, err error) {
	var doc *goquery.Document
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		err = errors.Wrap(err, "failed to parse HTML")
		return text, err
	}

	doc.Find(noiseSelector).Remove()

	var main *goquery.Selection
	for _, selector := range postingSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find("br").ReplaceWithHtml("\n")
	main.Find(blockSelector).AppendHtml("\n")

	text = cleanLines(main.Text())
	return text, err
}

// cleanLines collapses runs of whitespace and drops blank lines.
func cleanLines(raw string) (text string) {
	lines := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	text = strings.Join(lines, "\n")
	return text
}
