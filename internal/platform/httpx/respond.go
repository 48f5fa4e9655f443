// Package httpx provides the JSON envelope and request decoding helpers.
package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
)

// Envelope types.
const (
	TypeCreate    = "create"
	TypeUpdate    = "update"
	TypeDelete    = "delete"
	TypeSelect    = "select"
	TypeSelectAll = "select_all"
)

// Envelope is the uniform response body of every entity endpoint.
type Envelope struct {
	Status int               `json:"status"`
	Type   string            `json:"type"`
	Msg    string            `json:"msg"`
	Data   any               `json:"data,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Toast carries the status, type and message of a response.
type Toast struct {
	Status int
	Type   string
	Msg    string
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Respond writes the envelope for toast with data attached.
func Respond(w http.ResponseWriter, toast Toast, data any) {
	JSON(w, toast.Status, Envelope{
		Status: toast.Status,
		Type:   toast.Type,
		Msg:    toast.Msg,
		Data:   data,
	})
}

// DecodeJSONFields decodes the request body into target, rejecting unknown
// fields, and returns the top-level field names present in the body.
func DecodeJSONFields(r *http.Request, target any) ([]string, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrValidation, err)
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return nil, fmt.Errorf("%w: body must be a JSON object: %v", ErrValidation, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fields := make([]string, 0, len(present))
	for name := range present {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields, nil
}
