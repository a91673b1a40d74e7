// Package middleware holds the http.Handler wrappers applied to every route.
package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/aanand-mishra/campus-api/internal/utils/response"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// statusRecorder remembers the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// requestID returns the client's X-Request-ID when it is a UUID, in
// canonical form, and a fresh UUID otherwise.
func requestID(r *http.Request) string {
	if id, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// Logger assigns a request id, logs one line per request and turns a
// panic in next into a 500.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := requestID(r)
			w.Header().Set(RequestIDHeader, reqID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			reqLog := log.With(
				slog.String("request_id", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					reqLog.Error("recovered from panic",
						slog.Any("panic", p),
						slog.String("stack", string(debug.Stack())))
					if !rec.wroteHeader {
						response.WriteJSON(rec, http.StatusInternalServerError,
							response.Message("internal server error"))
					}
				}

				level := slog.LevelInfo
				switch {
				case rec.status >= 500:
					level = slog.LevelError
				case rec.status >= 400:
					level = slog.LevelWarn
				}
				reqLog.Log(r.Context(), level, "http request",
					slog.Int("status", rec.status),
					slog.Duration("duration", time.Since(start)))
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
