package ping_get

import (
	"context"
	"net/http"
	"time"

	"carriers/internal/generated/dto"
	"carriers/internal/handlers/rest/response"
	"carriers/pkg/logger"
)

const pingTimeout = time.Second

type Handler struct {
	log     handlerLogger
	storage Pinger
}

func New(log handlerLogger, storage Pinger) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		storage: storage,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	err := h.storage.Ping(ctx)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("storage ping failed")

		message := "storage unavailable"
		response.JSON(w, h.log, http.StatusServiceUnavailable, dto.PingResponse{Message: &message})
		return
	}

	message := "pong"
	response.JSON(w, h.log, http.StatusOK, dto.PingResponse{Message: &message})
}
