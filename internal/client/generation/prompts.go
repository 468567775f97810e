package generation

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed prompts/extract_profile.tmpl
var extractProfilePromptRaw string

//go:embed prompts/generate_cv.tmpl
var generateCVPromptRaw string

//go:embed prompts/revise_cv.tmpl
var reviseCVPromptRaw string

// Parsed once at package init.
var (
	extractProfileTemplate = template.Must(template.New("extract_profile").Parse(extractProfilePromptRaw))
	generateCVTemplate     = template.Must(template.New("generate_cv").Parse(generateCVPromptRaw))
	reviseCVTemplate       = template.Must(template.New("revise_cv").Parse(reviseCVPromptRaw))
)

type extractProfileData struct {
	CVText string
}

type generateCVData struct {
	ProfileJSON    string
	JobDescription string
}

type reviseCVData struct {
	ChangeRequest  string
	OriginalBody   string
	ProfileJSON    string
	JobDescription string
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
