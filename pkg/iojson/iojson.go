// Package iojson reads command input from files or stdin and writes command
// output and failures as indented JSON.
package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
)

// Error is the body written for a failed command in JSON mode.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// FieldError is one entry of the "fields" list in Error data.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ErrorData describes err for an Error body. Validation errors are expanded
// into a "fields" list; anything else becomes a single "error" string.
func ErrorData(err error) map[string]any {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]any{"error": err.Error()}
	}

	fields := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = FieldError{Field: fe.Field, Error: fe.Err.Error()}
	}
	return map[string]any{"fields": fields}
}

// marshalFailure is written when an Error itself cannot be marshaled.
func marshalFailure(msg string, cause error) string {
	msgBytes, _ := json.Marshal(msg)
	causeBytes, _ := json.Marshal(cause.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"marshal_error":%s}}`, msgBytes, causeBytes)
}

// MarshalError renders msg and data as an indented Error.
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	if err != nil {
		return marshalFailure(msg, err)
	}
	return string(bits)
}

// WriteError writes msg and data to w as an Error.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	_, err := fmt.Fprintln(w, MarshalError(msg, data))
	return err
}

// WriteWith writes obj to w as indented JSON. Marshaling failures are reported
// on ew as an Error.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return WriteError(ew, "marshal output", map[string]any{"marshal_error": err.Error()})
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
