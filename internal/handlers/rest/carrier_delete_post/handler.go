package carrier_delete_post

import (
	"errors"
	"net/http"

	"carriers/internal/generated/dto"
	"carriers/internal/handlers/rest/pathparam"
	"carriers/internal/handlers/rest/response"
	"carriers/internal/service/carrier"
	"carriers/internal/validation"
	"carriers/pkg/logger"

	"github.com/AlekSi/pointer"
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

	var carrierDeleteDTO dto.CarrierDelete
	if !response.DecodeBody(w, h.log, r, &carrierDeleteDTO) {
		return
	}

	err := h.service.DeleteCarrier(r.Context(), id, pointer.Get(carrierDeleteDTO.Pin))
	if err != nil {
		var validationErr *validation.Error
		switch {
		case errors.As(err, &validationErr):
			response.Invalid(w, h.log, validationErr)
		case errors.Is(err, carrier.ErrCarrierNotFound),
			errors.Is(err, carrier.ErrInvalidCarrierID):
			response.Error(w, h.log, http.StatusNotFound, response.MessageCarrierNotFound)
		case errors.Is(err, carrier.ErrInvalidPIN):
			h.log.Warn("invalid PIN on delete",
				logger.NewField("carrier_id", id),
			)
			response.Error(w, h.log, http.StatusUnauthorized, response.MessageInvalidPIN)
		default:
			response.Internal(w, h.log, err)
		}
		return
	}

	h.log.Info("carrier deleted",
		logger.NewField("carrier_id", id),
	)

	w.WriteHeader(http.StatusNoContent)
}
