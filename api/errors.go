package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrTransport wraps network failures: refused connections, DNS, timeouts.
	ErrTransport = errors.New("api: transport failure")
	// ErrDecode wraps bodies that are not valid JSON or hold invalid records.
	ErrDecode = errors.New("api: malformed response")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("api error: %d %s", e.Code, http.StatusText(e.Code))
	if body := strings.TrimSpace(e.Body); body != "" {
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		msg += ": " + body
	}
	return msg
}

// IsStatus reports whether err carries an HTTP status of code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
