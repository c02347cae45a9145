package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/cicconee/marine-forecast/internal/web"
)

type LogWriter struct {
	logger *log.Logger
	rw     http.ResponseWriter
	r      *http.Request
}

func NewLogWriter(l *log.Logger, rw http.ResponseWriter, r *http.Request) *LogWriter {
	return &LogWriter{l, rw, r}
}

func (l *LogWriter) log(format string, v ...any) {
	l.logger.Printf("%s %s %s", l.r.Method, l.r.URL.Path, fmt.Sprintf(format, v...))
}

func (l *LogWriter) Write(r Response) {
	l.rw.Header().Set("Content-Type", "application/json")
	l.rw.WriteHeader(r.Status)
	if err := json.NewEncoder(l.rw).Encode(r.Body); err != nil {
		l.log("*LogWriter.Write: failed to write json to http.ResponseWriter: %v", err)
	}
}

// Render renders page into a buffer first so a template error can still
// be answered with a 500.
func (l *LogWriter) Render(pages *web.Pages, page string, data any) {
	var buf bytes.Buffer
	if err := pages.Render(&buf, page, data); err != nil {
		l.log("*LogWriter.Render: failed to render page %q: %v", page, err)
		http.Error(l.rw, "Something went wrong", http.StatusInternalServerError)
		return
	}

	l.rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	l.rw.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(l.rw); err != nil {
		l.log("*LogWriter.Render: failed to write page %q: %v", page, err)
	}
}

type ServerErrorResponser interface {
	ServerErrorResponse() (int, string)
}

// WriteError writes err as an ErrorResponse. Only errors implementing
// ServerErrorResponser expose their message; anything else is a generic
// 500.
func (l *LogWriter) WriteError(err error) {
	errResp := ErrorResponse{
		Status:   http.StatusInternalServerError,
		ErrorMsg: "Something went wrong",
	}

	var apiError ServerErrorResponser
	if errors.As(err, &apiError) {
		errResp.Status, errResp.ErrorMsg = apiError.ServerErrorResponse()
	}

	l.Write(errResp.AsResponse())
}
