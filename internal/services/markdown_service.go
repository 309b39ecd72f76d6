package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MaxMarkdownLength bounds every markdown or HTML payload, in characters.
const MaxMarkdownLength = 65535

var (
	allowedHTMLTags = []string{
		"p", "br", "div", "span",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "b", "em", "i", "u",
		"ul", "ol", "li",
		"a", "img",
		"table", "thead", "tbody", "tr", "th", "td",
		"blockquote", "code", "pre", "hr",
	}
	markdownElements = []string{
		"headers", "emphasis", "lists", "links", "images",
		"tables", "blockquotes", "code", "horizontal_rules",
	}

	dangerousPatterns = []struct {
		message string
		pattern *regexp.Regexp
	}{
		{"script tags are not allowed", regexp.MustCompile(`(?i)<\s*script`)},
		{"javascript: URLs are not allowed", regexp.MustCompile(`(?i)javascript\s*:`)},
		{"inline event handlers are not allowed", regexp.MustCompile(`(?i)\son[a-z]+\s*=`)},
		{"iframes are not allowed", regexp.MustCompile(`(?i)<\s*iframe`)},
	}
	markdownPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^#{1,6}\s+\S`),
		regexp.MustCompile(`\*\*[^*\n]+\*\*|__[^_\n]+__`),
		regexp.MustCompile(`(?m)^\s*[-*+]\s+\S`),
		regexp.MustCompile(`(?m)^\s*\d+\.\s+\S`),
		regexp.MustCompile(`!?\[[^\]]*\]\([^)]+\)`),
		regexp.MustCompile("(?m)`[^`\n]+`|^```"),
		regexp.MustCompile(`(?m)^>\s+\S`),
		regexp.MustCompile(`(?m)^\|.+\|\s*$`),
		regexp.MustCompile(`(?m)^(-{3,}|\*{3,}|_{3,})\s*$`),
	}
	htmlTagPattern = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
)

// MarkdownCheck is the outcome of Validate.
type MarkdownCheck struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type AllowedElements struct {
	HTMLTags         []string `json:"html_tags"`
	MarkdownElements []string `json:"markdown_elements"`
}

type MarkdownService interface {
	ToHTML(content string) (string, error)
	FromHTML(html string) (string, error)
	Validate(content string) MarkdownCheck
	Preview(content string) string
	IsMarkdown(content string) bool
	AllowedElements() AllowedElements
}

type markdownService struct {
	renderer  goldmark.Markdown
	converter *md.Converter
	policy    *bluemonday.Policy
	logger    *logrus.Logger
}

func NewMarkdownService(logger *logrus.Logger) MarkdownService {
	return &markdownService{
		// Raw HTML and dangerous link targets are dropped by the default renderer.
		renderer: goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough)),
		converter: md.NewConverter("", true, &md.Options{
			HeadingStyle:     "atx",
			StrongDelimiter:  "**",
			EmDelimiter:      "*",
			BulletListMarker: "-",
			CodeBlockStyle:   "fenced",
		}),
		policy: newMarkdownPolicy(),
		logger: logger,
	}
}

func newMarkdownPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(allowedHTMLTags...)

	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)

	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowImages()

	p.AllowTables()
	p.AllowAttrs("align").Matching(regexp.MustCompile(`^(left|center|right)$`)).OnElements("th", "td")

	return p
}

func (s *markdownService) ToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := s.renderer.Convert([]byte(content), &buf); err != nil {
		s.logger.WithError(err).Error("Failed to render markdown")
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.TrimSpace(s.policy.Sanitize(buf.String())), nil
}

func (s *markdownService) FromHTML(html string) (string, error) {
	markdown, err := s.converter.ConvertString(s.policy.Sanitize(html))
	if err != nil {
		s.logger.WithError(err).Error("Failed to convert HTML to markdown")
		return "", fmt.Errorf("failed to convert html: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

func (s *markdownService) Validate(content string) MarkdownCheck {
	check := MarkdownCheck{Errors: []string{}, Warnings: []string{}}

	for _, d := range dangerousPatterns {
		if d.pattern.MatchString(content) {
			check.Errors = append(check.Errors, d.message)
		}
	}
	if len(check.Errors) == 0 && htmlTagPattern.MatchString(content) {
		check.Warnings = append(check.Warnings, "raw HTML is removed when rendering")
	}
	if strings.Count(content, "```")%2 != 0 {
		check.Warnings = append(check.Warnings, "unclosed code block")
	}

	check.Valid = len(check.Errors) == 0
	return check
}

// Preview renders like ToHTML; a render error yields the escaped source.
func (s *markdownService) Preview(content string) string {
	html, err := s.ToHTML(content)
	if err != nil {
		return "<pre>" + bluemonday.StrictPolicy().Sanitize(content) + "</pre>"
	}
	return html
}

func (s *markdownService) IsMarkdown(content string) bool {
	for _, pattern := range markdownPatterns {
		if pattern.MatchString(content) {
			return true
		}
	}
	return false
}

func (s *markdownService) AllowedElements() AllowedElements {
	return AllowedElements{
		HTMLTags:         append([]string(nil), allowedHTMLTags...),
		MarkdownElements: append([]string(nil), markdownElements...),
	}
}
