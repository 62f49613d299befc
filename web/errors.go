package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrorBody is the JSON body of error responses.
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorHandler captures error responses that are not JSON, such as the 404
// and 405 answers of http.ServeMux, and replaces their body with an ErrorBody.
func ErrorHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseWriter{
			ResponseWriter: w,
		}
		h.ServeHTTP(writer, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	noWrite bool
	err     error
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.noWrite {
		return len(b), w.err
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if statusCode >= 400 && !strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		b, err := json.Marshal(ErrorBody{Error: http.StatusText(statusCode)})
		if err == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Del("Content-Length")
			w.ResponseWriter.WriteHeader(statusCode)
			w.noWrite = true
			_, w.err = w.ResponseWriter.Write(append(b, '\n'))
			return
		}
	}
	// normal processing
	w.ResponseWriter.WriteHeader(statusCode)
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, err = w.Write(append(b, '\n'))
	return err
}

// ServerError logs err and answers 500 with an ErrorBody.
func ServerError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	_ = JSON(w, http.StatusInternalServerError, ErrorBody{Error: err.Error()})
}
