package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/synbench/logger"
)

// ProgressEmitter receives benchmark run events.
//
// Implementations include:
// - CLIEmitter: Pretty-printed terminal output using pterm
// - JSONEmitter: Structured JSON events, one per line
type ProgressEmitter interface {
	// EmitStage announces that a strategy started
	EmitStage(stage string, message string)

	// EmitProgress reports a finished strategy with its generation count
	EmitProgress(count int, metadata map[string]interface{})

	// EmitComplete reports the end of the run
	EmitComplete(summary map[string]interface{})

	// EmitError reports the error that stopped the run
	EmitError(stage string, err error)

	// EmitInfo prints an informational message
	EmitInfo(message string)
}

// ProgressEvent represents a structured JSON progress event
type ProgressEvent struct {
	Type      string                 `json:"type"`      // "stage", "progress", "complete", "error", "info"
	Timestamp time.Time              `json:"timestamp"` // When this event occurred
	Data      map[string]interface{} `json:"data"`      // Event-specific data
}

// CLIEmitter outputs pretty-printed progress to the terminal using pterm
type CLIEmitter struct {
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter for terminal output
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

// EmitStage prints a stage announcement
func (e *CLIEmitter) EmitStage(stage string, message string) {
	if logger.ShouldOutput(e.verbosity, logger.OutputProgress) {
		pterm.Printf("%s: %s\n", pterm.LightCyan(stage), message)
	}
}

// EmitProgress prints the generation count of a finished strategy
func (e *CLIEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	if !logger.ShouldOutput(e.verbosity, logger.OutputProgress) {
		return
	}
	failures, _ := metadata["failures"].(int)
	if failures > 0 {
		pterm.Printf("  %s generations, %s failed\n", pterm.Green(fmt.Sprintf("%d", count)), pterm.Yellow(fmt.Sprintf("%d", failures)))
		return
	}
	pterm.Printf("  %s generations\n", pterm.Green(fmt.Sprintf("%d", count)))
}

// EmitComplete prints the completion summary
func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	if !logger.ShouldOutput(e.verbosity, logger.OutputProgress) {
		return
	}
	pterm.Success.Println("Benchmark complete")
	if logger.ShouldOutput(e.verbosity, logger.OutputTiming) {
		for key, value := range summary {
			pterm.Printf("  %s: %v\n", key, value)
		}
	}
}

// EmitError prints an error
func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Error.Printf("Error in %s: %v\n", stage, err)
}

// EmitInfo prints an informational message
func (e *CLIEmitter) EmitInfo(message string) {
	if logger.ShouldOutput(e.verbosity, logger.OutputProgress) {
		pterm.Info.Println(message)
	}
}

// JSONEmitter writes structured JSON events, one per line
type JSONEmitter struct {
	encoder *json.Encoder
}

// NewJSONEmitter creates a JSON progress emitter writing to w
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{
		encoder: json.NewEncoder(w),
	}
}

func (e *JSONEmitter) emit(eventType string, data map[string]interface{}) {
	e.encoder.Encode(ProgressEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	})
}

// EmitStage emits a stage event as JSON
func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]interface{}{
		"stage":   stage,
		"message": message,
	})
}

// EmitProgress emits a progress event as JSON
func (e *JSONEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	data := map[string]interface{}{
		"count": count,
	}
	// Merge metadata into data
	for k, v := range metadata {
		data[k] = v
	}
	e.emit("progress", data)
}

// EmitComplete emits a completion event as JSON
func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.emit("complete", summary)
}

// EmitError emits an error event as JSON
func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
	})
}

// EmitInfo emits an info event as JSON
func (e *JSONEmitter) EmitInfo(message string) {
	e.emit("info", map[string]interface{}{
		"message": message,
	})
}

// nopEmitter discards all events
type nopEmitter struct{}

func (nopEmitter) EmitStage(string, string) {}
func (nopEmitter) EmitProgress(int, map[string]interface{}) {}
func (nopEmitter) EmitComplete(map[string]interface{}) {}
func (nopEmitter) EmitError(string, error) {}
func (nopEmitter) EmitInfo(string) {}
