package handler

import (
	"net/http"
	"runtime/debug"

	"github.com/bytedance/sonic"
	"github.com/pawtalk/pet-translator/internal/models"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, msgInternalError, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// Recoverer turns a panic into a 500 "Unknown error" body.
func Recoverer(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logger.Errorw("panic while serving request",
					"panic", rvr,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msgUnknownError})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
