package carrier_rules_get

import (
	"net/http"

	"carriers/internal/generated/dto"
	"carriers/internal/handlers/rest/response"
	"carriers/internal/validation"
)

// Handler отдаёт ту же таблицу правил, по которой валидирует сервер.
type Handler struct {
	log   handlerLogger
	rules []dto.ValidationRule
}

func New(log handlerLogger) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:   handlerLog,
		rules: toDTO(validation.Rules),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, h.log, http.StatusOK, h.rules)
}

func toDTO(rules []validation.Rule) []dto.ValidationRule {
	res := make([]dto.ValidationRule, 0, len(rules))
	for _, rule := range rules {
		res = append(res, dto.ValidationRule{
			Field:    rule.Field,
			Create:   nonEmpty(rule.Create),
			Update:   nonEmpty(rule.Update),
			Delete:   nonEmpty(rule.Delete),
			Messages: rule.Messages,
		})
	}
	return res
}

func nonEmpty(tag string) *string {
	if tag == "" {
		return nil
	}
	return &tag
}
