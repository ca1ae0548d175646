// Package responsewriter wraps http.ResponseWriter to record the status code
// and body size for logging and metrics.
package responsewriter

import (
	"net/http"
)

// ResponseWriter records what the wrapped handler wrote.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int
	headerWritten bool
}

// Wrap returns w unchanged when it is already a *ResponseWriter, so nested
// middlewares share one recorder.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader records the first status code only.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if !w.headerWritten {
		w.statusCode = statusCode
		w.headerWritten = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// StatusCode returns the recorded HTTP status code.
func (w *ResponseWriter) StatusCode() int {
	return w.statusCode
}

// BytesWritten returns the number of body bytes written.
func (w *ResponseWriter) BytesWritten() int {
	return w.bytesWritten
}

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool {
	return w.headerWritten
}

// Unwrap returns the underlying http.ResponseWriter (for http.ResponseController support).
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
