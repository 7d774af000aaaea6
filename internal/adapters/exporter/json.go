package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// JSONExporter реализует интерфейс Exporter и пишет отчёт в JSON.
type JSONExporter struct {
	out    io.Writer
	indent bool
}

// NewJSONExporter создает новый экземпляр JSONExporter. nil out означает os.Stdout.
func NewJSONExporter(out io.Writer, indent bool) ports.Exporter {
	if out == nil {
		out = os.Stdout
	}
	return &JSONExporter{out: out, indent: indent}
}

// Export кодирует отчёт в JSON.
func (e *JSONExporter) Export(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}
	enc := json.NewEncoder(e.out)
	enc.SetEscapeHTML(false)
	if e.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
