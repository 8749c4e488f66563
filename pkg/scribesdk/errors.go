package scribesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrAuthExpired reports that the credential pair could not be refreshed.
// By the time a caller sees it the forced logout has already happened, so
// the only recovery is a fresh login.
var ErrAuthExpired = errors.New("session_expired")

// ErrNotAuthenticated reports an authorized call attempted with no stored
// credentials at all.
var ErrNotAuthenticated = errors.New("not_authenticated")

// APIError is a non-2xx response from the backend with its status and
// server-provided detail preserved for presentation.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: HTTP %d: %s", e.StatusCode, e.Detail)
}

// Forbidden reports whether the caller is authenticated but lacks the
// required role.
func (e *APIError) Forbidden() bool { return e.StatusCode == http.StatusForbidden }

// ValidationError is a 400 whose body maps request fields to messages, the
// shape the backend uses for malformed payloads and conflicts such as a
// duplicate email on registration.
type ValidationError struct {
	StatusCode int
	Fields     map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return "validation error: " + strings.Join(parts, ", ")
}

// Field returns the first message recorded for the named field, or "".
func (e *ValidationError) Field(name string) string {
	if msgs := e.Fields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// parseErrorResponse turns a non-2xx body into a typed error. The backend
// speaks two dialects: {"detail": "..."} (and occasionally {"error": "..."})
// for general failures, and {"field": ["msg", ...]} for validation failures.
func parseErrorResponse(status int, body []byte) error {
	var general struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &general); err == nil {
		if general.Detail != "" {
			return &APIError{StatusCode: status, Detail: general.Detail}
		}
		if general.Error != "" {
			return &APIError{StatusCode: status, Detail: general.Error}
		}
	}

	if status == http.StatusBadRequest {
		if fields := parseFieldErrors(body); len(fields) > 0 {
			return &ValidationError{StatusCode: status, Fields: fields}
		}
	}

	return &APIError{StatusCode: status}
}

// parseFieldErrors decodes a field->messages map, tolerating both
// single-string and string-list values.
func parseFieldErrors(body []byte) map[string][]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return nil
	}

	fields := make(map[string][]string, len(raw))
	for name, msg := range raw {
		var list []string
		if err := json.Unmarshal(msg, &list); err == nil {
			fields[name] = list
			continue
		}
		var single string
		if err := json.Unmarshal(msg, &single); err == nil {
			fields[name] = []string{single}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
