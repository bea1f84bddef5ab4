package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
)

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	if err := encode(w, v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes err as an ErrorResponse and returns the process exit
// code for it. Errors without a code are reported as INTERNAL_ERROR.
func JSONError(w io.Writer, err error) int {
	resp := ErrorResponse{Error: err.Error(), Code: clierr.InternalError}
	exit := 2 //nolint:mnd // exit code 2 for internal errors

	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		resp = ErrorResponse{Error: cliErr.Message, Code: cliErr.Code, Details: cliErr.Details}
		exit = cliErr.ExitCode()
	}
	_ = encode(w, resp) // best-effort; the exit code still reports the failure
	return exit
}

// BatchResult represents the outcome of a single operation within a batch.
type BatchResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// NewBatchResult records the outcome of the operation on id.
func NewBatchResult(id string, err error) BatchResult {
	if err == nil {
		return BatchResult{ID: id, OK: true}
	}
	r := BatchResult{ID: id, Error: err.Error()}
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		r.Error, r.Code = cliErr.Message, cliErr.Code
	}
	return r
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
