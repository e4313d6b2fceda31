package carrier_get

import (
	"errors"
	"net/http"

	"carriers/internal/handlers/rest/pathparam"
	"carriers/internal/handlers/rest/response"
	"carriers/internal/service/carrier"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathparam.ID(r)
	if !ok {
		response.Error(w, h.log, http.StatusNotFound, response.MessageCarrierNotFound)
		return
	}

	carrierEntity, err := h.service.GetCarrier(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, carrier.ErrCarrierNotFound),
			errors.Is(err, carrier.ErrInvalidCarrierID):
			response.Error(w, h.log, http.StatusNotFound, response.MessageCarrierNotFound)
		default:
			response.Internal(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, response.Carrier(carrierEntity))
}
