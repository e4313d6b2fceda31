package carrier_events

import (
	"encoding/json"
	"strconv"
	"time"

	"carriers/internal/entities"
)

const headerEventType = "event-type"

type carrierPayload struct {
	ID          int64     `json:"id"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// eventMessage не содержит PIN: в топик уходит только то, что и так видно в листинге.
type eventMessage struct {
	Type       string          `json:"type"`
	CarrierID  int64           `json:"carrierId"`
	Carrier    *carrierPayload `json:"carrier,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

func toMessage(event entities.CarrierEvent) eventMessage {
	msg := eventMessage{
		Type:       event.Type.String(),
		CarrierID:  event.CarrierID,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.Carrier != nil {
		msg.Carrier = &carrierPayload{
			ID:          event.Carrier.ID,
			Phone:       event.Carrier.Phone,
			Description: event.Carrier.Description,
			CreatedAt:   event.Carrier.CreatedAt.UTC(),
		}
	}
	return msg
}

func messageKey(carrierID int64) string {
	return strconv.FormatInt(carrierID, 10)
}

func marshal(event entities.CarrierEvent) ([]byte, error) {
	return json.Marshal(toMessage(event))
}
