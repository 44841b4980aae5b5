package runner

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// ReportFormat selects how a Summary is printed.
type ReportFormat string

const (
	ReportFormatText ReportFormat = "text"
	ReportFormatJSON ReportFormat = "json"
	ReportFormatYAML ReportFormat = "yaml"
)

// WriteReport writes s to w. JSON output is indented with indent; empty means
// compact.
func WriteReport(w io.Writer, s Summary, format ReportFormat, indent string) error {
	switch format {
	case ReportFormatText, "":
		line := fmt.Sprintf("%d member(s), %d without filename, %d payload bytes, %d archive bytes",
			s.Members, s.Anonymous, s.PayloadBytes, s.ArchiveBytes)
		if s.Invalid > 0 {
			line += fmt.Sprintf(", %d with header problems", s.Invalid)
		}
		_, err := fmt.Fprintln(w, line)
		return err
	case ReportFormatJSON:
		encoder := json.NewEncoder(w)
		if indent != "" {
			encoder.SetIndent("", indent)
		}
		if err := encoder.Encode(s); err != nil {
			return fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		return nil
	case ReportFormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
