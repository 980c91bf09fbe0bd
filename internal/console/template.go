package console

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// ExpandTemplate expands a template string using the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

type statusView struct {
	Good     int
	Bad      int
	GameOver bool
	Won      bool
	Spawning bool
	Visitors int
}

const statusTemplate = `Deliveries: {{ .Good }} good, {{ .Bad }} bad.
{{- if .GameOver }}
Session over: {{ if .Won }}won{{ else }}lost{{ end }}. Use 'reset' to play again.
{{- end }}
Spawning: {{ ternary "running" "paused" .Spawning }}. Visitors in scene: {{ .Visitors }}.`

type visitorView struct {
	ID       uint64
	Race     string
	State    string
	SpotID   int
	Patience string
}

const visitorTemplate = `#{{ .ID }} {{ .Race }} at spot {{ .SpotID }}: {{ .State }}{{ if .Patience }} ({{ .Patience }} patience left){{ end }}`
