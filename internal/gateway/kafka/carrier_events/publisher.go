package carrier_events

import (
	"context"

	"carriers/internal/entities"
	"carriers/pkg/logger"

	"github.com/IBM/sarama"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Publisher отправляет события в Kafka синхронно. Ошибки только логируются:
// изменение уже зафиксировано, и ответ клиенту от доставки не зависит.
type Publisher struct {
	log      logger.Logger
	producer producer
	topic    string
}

func New(log logger.Logger, producer producer, topic string) *Publisher {
	return &Publisher{
		log: log.With(
			logger.NewField("component", "carrier-events"),
			logger.NewField("topic", topic),
		),
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) Publish(_ context.Context, event entities.CarrierEvent) {
	eventLog := p.log.With(
		logger.NewField("type", event.Type.String()),
		logger.NewField("carrier_id", event.CarrierID),
	)

	value, err := marshal(event)
	if err != nil {
		EventsPublishedTotal.WithLabelValues(event.Type.String(), statusError).Inc()
		eventLog.Error("failed to encode carrier event", logger.NewField("error", err))
		return
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(messageKey(event.CarrierID)),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventType), Value: []byte(event.Type.String())},
		},
		Timestamp: event.OccurredAt,
	})
	if err != nil {
		EventsPublishedTotal.WithLabelValues(event.Type.String(), statusError).Inc()
		eventLog.Error("failed to publish carrier event", logger.NewField("error", err))
		return
	}

	EventsPublishedTotal.WithLabelValues(event.Type.String(), statusOK).Inc()
	eventLog.Info("carrier event published",
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	)
}

// LogPublisher используется, когда Kafka не настроена: события остаются только в логе.
type LogPublisher struct {
	log logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{log: log.With(logger.NewField("component", "carrier-events"))}
}

func (p *LogPublisher) Publish(_ context.Context, event entities.CarrierEvent) {
	p.log.Info("carrier event",
		logger.NewField("type", event.Type.String()),
		logger.NewField("carrier_id", event.CarrierID),
	)
}
