// Package rendering maps a resume record to one of the two built-in
// visual layouts. Rendering is a pure function of the record and the
// variant flag: no hidden state, identical input yields identical HTML.
package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/Ragbaje/FrameMe/internal/types"
)

// Variant selects one of the two built-in layouts.
type Variant string

// The built-in template variants.
const (
	VariantModern   Variant = "modern"
	VariantCreative Variant = "creative"
)

// Variants lists every supported variant.
func Variants() []Variant {
	return []Variant{VariantModern, VariantCreative}
}

// ParseVariant validates a variant name from user input.
func ParseVariant(name string) (Variant, error) {
	switch Variant(name) {
	case VariantModern:
		return VariantModern, nil
	case VariantCreative:
		return VariantCreative, nil
	default:
		return "", &RenderError{Message: fmt.Sprintf("unknown template variant %q", name)}
	}
}

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

var layouts = template.Must(template.ParseFS(templateFiles, "templates/*.html.tmpl"))

// templateData is the root object the layout templates execute against.
// Experience is passed through a view type so the transient raw notes
// never reach the page.
type templateData struct {
	Personal   types.PersonalDetails
	Profile    string
	Education  []types.EducationEntry
	Experience []experienceView
	Skills     []string
}

type experienceView struct {
	Company          string
	JobTitle         string
	StartDate        string
	EndDate          string
	Responsibilities []string
}

// Render produces the full HTML document for a record in the given
// variant. It never mutates the record.
func Render(record types.ResumeRecord, variant Variant) (string, error) {
	if _, err := ParseVariant(string(variant)); err != nil {
		return "", err
	}

	data := templateData{
		Personal:  record.PersonalDetails,
		Profile:   record.Profile,
		Education: record.Education,
		Skills:    record.Skills,
	}
	for _, exp := range record.Experience {
		data.Experience = append(data.Experience, experienceView{
			Company:          exp.Company,
			JobTitle:         exp.JobTitle,
			StartDate:        exp.StartDate,
			EndDate:          exp.EndDate,
			Responsibilities: exp.Responsibilities,
		})
	}

	var sb strings.Builder
	name := string(variant) + ".html.tmpl"
	if err := layouts.ExecuteTemplate(&sb, name, data); err != nil {
		return "", &TemplateError{Message: "failed to execute " + name, Cause: err}
	}
	return sb.String(), nil
}
