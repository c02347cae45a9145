package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs the method, path, status and duration of every
// request to l, tagged with the chi request ID when there is one.
func RequestLogger(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			l.Printf("%s %s %d %s (requestID=%s)",
				r.Method,
				r.URL.Path,
				status,
				time.Since(start).Round(time.Microsecond),
				middleware.GetReqID(r.Context()))
		})
	}
}
