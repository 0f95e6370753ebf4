package llm

import (
	_ "embed"
	"errors"
	"strings"
)

var (
	//go:embed prompts/analysis.txt
	analysisTemplate string
	//go:embed prompts/cover_letter.txt
	coverLetterTemplate string
)

// ErrUnknownPrompt is returned for a prompt kind without a template.
var ErrUnknownPrompt = errors.New("unknown prompt kind")

// DefaultLanguage is used when a request does not name one.
const DefaultLanguage = "English"

// PromptKind selects one of the fixed templates.
type PromptKind string

const (
	PromptAnalysis    PromptKind = "analysis"
	PromptCoverLetter PromptKind = "cover_letter"
)

// PromptRequest binds a job description and résumé text to a template.
type PromptRequest struct {
	Kind           PromptKind
	JobDescription string
	ResumeText     string
	Language       string
}

// NewPromptRequest builds a request in the default language.
func NewPromptRequest(kind PromptKind, jobDescription, resumeText string) PromptRequest {
	return PromptRequest{
		Kind:           kind,
		JobDescription: jobDescription,
		ResumeText:     resumeText,
		Language:       DefaultLanguage,
	}
}

// WithLanguage returns a copy answering in the given language.
func (r PromptRequest) WithLanguage(language string) PromptRequest {
	if strings.TrimSpace(language) != "" {
		r.Language = strings.TrimSpace(language)
	}
	return r
}

// Build fills the template. Inputs are substituted verbatim, without escaping.
func (r PromptRequest) Build() (string, error) {
	template, ok := PromptTemplate(r.Kind)
	if !ok {
		return "", ErrUnknownPrompt
	}
	language := r.Language
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	replacer := strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", r.JobDescription,
		"{{RESUME_TEXT}}", r.ResumeText,
		"{{LANGUAGE}}", language,
	)
	return replacer.Replace(template), nil
}

// PromptTemplate returns the raw template text and whether the kind was recognized.
func PromptTemplate(kind PromptKind) (string, bool) {
	switch kind {
	case PromptAnalysis:
		return analysisTemplate, true
	case PromptCoverLetter:
		return coverLetterTemplate, true
	default:
		return "", false
	}
}
