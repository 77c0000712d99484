package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
)

// APIError is the decoded failure answer from the marketplace API.
type APIError struct {
	Status  int
	Path    string
	Message string
	Fields  map[string]string
	RawBody string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("upstream %s returned %d: %s", e.Path, e.Status, msg)
}

// HTTPStatus reports the upstream response status for error dumps.
func (e *APIError) HTTPStatus() int {
	if e == nil {
		return 0
	}
	return e.Status
}

// Endpoint reports the failing path for error dumps.
func (e *APIError) Endpoint() string {
	if e == nil {
		return ""
	}
	return e.Path
}

// FieldErrors returns the per-field validation messages, if any.
func (e *APIError) FieldErrors() map[string]string {
	if e == nil {
		return nil
	}
	return e.Fields
}

// wireError covers the two error shapes the marketplace API emits: a flat
// field→message map and a list of {field,message} pairs.
type wireError struct {
	Message   string          `json:"message"`
	Error     string          `json:"error"`
	Errors    json.RawMessage `json:"errors"`
	FieldList []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"field_errors"`
}

func decodeAPIError(path string, status int, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Path:    path,
		RawBody: string(body),
	}

	var wire wireError
	if err := json.Unmarshal(body, &wire); err != nil {
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(wire.Message)
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(wire.Error)
	}

	fields := map[string]string{}
	if len(wire.Errors) > 0 {
		var asMap map[string]string
		if err := json.Unmarshal(wire.Errors, &asMap); err == nil {
			for k, v := range asMap {
				fields[k] = v
			}
		} else {
			var asList []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(wire.Errors, &asList); err == nil {
				for _, entry := range asList {
					fields[entry.Field] = entry.Message
				}
			}
		}
	}
	for _, entry := range wire.FieldList {
		fields[entry.Field] = entry.Message
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
	}

	return apiErr
}

// toTyped maps an upstream failure into the service error taxonomy.
func (e *APIError) toTyped() *pkgerrors.Error {
	msg := e.Message
	switch {
	case e.Status == http.StatusUnauthorized:
		if msg == "" {
			msg = "session expired"
		}
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, e, msg)
	case e.Status == http.StatusLocked:
		if msg == "" {
			msg = "account is temporarily locked"
		}
		return pkgerrors.Wrap(pkgerrors.CodeLocked, e, msg)
	case e.Status == http.StatusForbidden:
		return pkgerrors.Wrap(pkgerrors.CodeForbidden, e, "access denied")
	case e.Status == http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, e, msg)
	case e.Status == http.StatusConflict:
		if msg == "" {
			msg = "conflict detected"
		}
		return pkgerrors.Wrap(pkgerrors.CodeConflict, e, msg)
	case e.Status == http.StatusTooManyRequests:
		return pkgerrors.Wrap(pkgerrors.CodeRateLimit, e, "rate limit exceeded")
	case e.Status >= 400 && e.Status < 500:
		if msg == "" {
			msg = "request rejected"
		}
		typed := pkgerrors.Wrap(pkgerrors.CodeValidation, e, msg)
		if len(e.Fields) > 0 {
			typed = typed.WithDetails(e.Fields)
		}
		return typed
	default:
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, e, "marketplace API error")
	}
}
