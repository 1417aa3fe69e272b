package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/tenant-atlas/pkg/models/domain"
)

// PlainReporter outputs reports as "name: value unit" lines, one per detail.
type PlainReporter struct {
	writer io.Writer
}

func NewPlainReporter(writer io.Writer) *PlainReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &PlainReporter{writer: writer}
}

func (c *PlainReporter) Handle(report *domain.Report) error {
	tmpl := `{{.Title}}
{{range .Sections}}
[{{.Title}}]
{{range .Details}}{{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}
{{end}}{{end}}`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
