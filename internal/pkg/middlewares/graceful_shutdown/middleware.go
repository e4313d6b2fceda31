package graceful_shutdown

import (
	"context"
	"encoding/json"
	"net/http"
)

type ShutdownState interface {
	Load() bool
}

// Middleware отклоняет новые запросы, когда ongoingCtx уже отменён
// и сервис помечен как останавливающийся.
func Middleware(isShuttingDown ShutdownState, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-ongoingCtx.Done():
				if isShuttingDown.Load() {
					w.Header().Set("Content-Type", "application/json")
					w.Header().Set("Connection", "close")
					w.WriteHeader(http.StatusServiceUnavailable)
					_ = json.NewEncoder(w).Encode(map[string]string{"message": "Service is shutting down"})
					return
				}
			default:
			}
			next.ServeHTTP(w, r)
		})
	}
}
