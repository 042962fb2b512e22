package formatter

import (
	"encoding/json"
	"io"

	"github.com/gitgovernance/core/internal/projector"
)

// JSONLFormatter streams projector views as JSON Lines: one task or cycle
// view per line, suitable for piping into jq or another tool without
// buffering the whole projection.
type JSONLFormatter struct {
	// Pretty enables indented JSON (not recommended for JSONL).
	Pretty bool
}

// NewJSONLFormatter creates a new JSONL formatter.
func NewJSONLFormatter() *JSONLFormatter {
	return &JSONLFormatter{Pretty: false}
}

// Extension returns the file extension for JSONL.
func (jf *JSONLFormatter) Extension() string {
	return ".jsonl"
}

func (jf *JSONLFormatter) encoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc
}

// FormatTasks writes one JSON line per task view.
func (jf *JSONLFormatter) FormatTasks(w io.Writer, tasks []projector.TaskView) error {
	enc := jf.encoder(w)
	for _, t := range tasks {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return nil
}

// FormatCycles writes one JSON line per cycle view.
func (jf *JSONLFormatter) FormatCycles(w io.Writer, cycles []projector.CycleView) error {
	enc := jf.encoder(w)
	for _, c := range cycles {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return nil
}

// FormatHealth writes the health summary as a single JSON line.
func (jf *JSONLFormatter) FormatHealth(w io.Writer, health projector.HealthMetrics) error {
	return jf.encoder(w).Encode(health)
}
