package entities

import (
	"time"
)

type Carrier struct {
	ID          int64
	Phone       string
	Description string
	PIN         string
	CreatedAt   time.Time
}

// CarrierModify описывает поля для создания и частичного обновления,
// nil означает "не менять".
type CarrierModify struct {
	Phone       *string
	Description *string
	PIN         *string
}

func (m CarrierModify) IsEmpty() bool {
	return m.Phone == nil && m.Description == nil && m.PIN == nil
}

type CarrierEventType string

const (
	CarrierCreated CarrierEventType = "carrier.created"
	CarrierUpdated CarrierEventType = "carrier.updated"
	CarrierDeleted CarrierEventType = "carrier.deleted"
)

func (t CarrierEventType) String() string {
	return string(t)
}

// CarrierEvent публикуется после успешного изменения листинга.
type CarrierEvent struct {
	Type       CarrierEventType
	CarrierID  int64
	Carrier    *Carrier
	OccurredAt time.Time
}
