// Package logging builds the log/slog loggers used by the binaries.
//
// Servers log JSON to stdout; the widget CLI logs text to stderr so that its
// stdout stays clean for output.
//
//	logger := logging.NewLogger()
//	logger = logging.Component(logger, "api")
//
//	func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logging.WithRequestID(r.Context(), h.Logger).Info("processing request")
//	}
package logging
