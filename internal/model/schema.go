package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

// ValidateResumeMap validates a generic map (typically LLM output) against
// the embedded resume schema before it is accepted as ResumeData.
func ValidateResumeMap(m map[string]any) error {
	schemaLoader := gojsonschema.NewBytesLoader(resumeSchema)
	docLoader := gojsonschema.NewGoLoader(m)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validating resume data: %w", err)
	}
	if res.Valid() {
		return nil
	}

	var msgs []string
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("resume data failed schema validation: %s", strings.Join(msgs, "; "))
}
