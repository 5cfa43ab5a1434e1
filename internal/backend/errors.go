package backend

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrMalformed marks a response body that does not have the expected shape.
var ErrMalformed = errors.New("malformed backend response")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: backend responded with status %d", e.Method, e.URL, e.Code)
}

func malformed(err error) error {
	return errors.Wrap(ErrMalformed, err.Error())
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// StatusCode extracts the backend status from err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
