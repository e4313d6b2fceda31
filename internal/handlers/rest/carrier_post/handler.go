package carrier_post

import (
	"errors"
	"net/http"

	"carriers/internal/entities"
	"carriers/internal/generated/dto"
	"carriers/internal/handlers/rest/response"
	"carriers/internal/validation"
	"carriers/pkg/logger"
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
	var carrierCreateDTO dto.CarrierCreate
	if !response.DecodeBody(w, h.log, r, &carrierCreateDTO) {
		return
	}

	carrierModifyEntity := entities.CarrierModify{
		Phone:       carrierCreateDTO.Phone,
		Description: carrierCreateDTO.Description,
		PIN:         carrierCreateDTO.Pin,
	}

	created, err := h.service.CreateCarrier(r.Context(), carrierModifyEntity)
	if err != nil {
		var validationErr *validation.Error
		switch {
		case errors.As(err, &validationErr):
			response.Invalid(w, h.log, validationErr)
		default:
			response.Internal(w, h.log, err)
		}
		return
	}

	h.log.Info("carrier created",
		logger.NewField("carrier_id", created.ID),
	)

	response.JSON(w, h.log, http.StatusCreated, response.Carrier(created))
}
