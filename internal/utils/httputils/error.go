package httputils

import "net/http"

type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// HandleError writes err as a plain-text response. Errors that are not an
// *HTTPError are reported as a generic 500.
func HandleError(w http.ResponseWriter, err error) {
	if httpErr, ok := err.(*HTTPError); ok {
		http.Error(w, httpErr.Message, httpErr.Code)
	} else {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
