package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/slieker-ics/internal/event"
)

// OutputFormat specifies the summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunResult summarises one run
type RunResult struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Source      string         `json:"source"`
	Output      string         `json:"output"`
	EventCount  int            `json:"event_count"`
	Events      []*event.Event `json:"events"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *RunResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText, "":
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *RunResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText prints one line per showing followed by the total
func writeText(w io.Writer, result *RunResult) error {
	for _, evt := range result.Events {
		line := fmt.Sprintf("%s  %s-%s  %s  %s",
			evt.Start.Format("Mon 02 Jan 2006"),
			evt.Start.Format("15:04"),
			evt.End.Format("15:04"),
			evt.Title,
			evt.URL,
		)
		if evt.SoldOut {
			line += "  [sold out]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "wrote %d events to %s\n", result.EventCount, result.Output)
	return err
}
