package healthcheck_head

import (
	"net/http"
)

// ShutdownState сообщает, что сервис начал останавливаться.
// *atomic.Bool подходит как есть.
type ShutdownState interface {
	Load() bool
}

type Handler struct {
	shutdown ShutdownState
}

func New(shutdown ShutdownState) *Handler {
	return &Handler{
		shutdown: shutdown,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if h.shutdown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
