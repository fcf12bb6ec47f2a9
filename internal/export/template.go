package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed templates/proposal.html
var proposalTemplateText string

var proposalTemplate = template.Must(template.New("proposal").Parse(proposalTemplateText))

// RenderHTML fills the proposal template with a generated payload. The
// template keys off the exact persisted field names, so the payload is
// passed through as-is.
func RenderHTML(payload map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := proposalTemplate.Execute(&buf, payload); err != nil {
		return nil, fmt.Errorf("render proposal template: %w", err)
	}
	return buf.Bytes(), nil
}
