package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

var _ inventory.EventPublisher = (*Publisher)(nil)

// Publisher publica eventos de movimiento en Kafka. Es un efecto secundario
// post-commit: una falla aquí se registra y no revierte la escritura.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewPublisher crea el productor síncrono contra los brokers indicados.
func NewPublisher(brokers []string, topic string, log *logger.Logger) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("crear productor Kafka: %w", err)
	}

	log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("publicador Kafka inicializado")

	return &Publisher{producer: producer, topic: topic, log: log}, nil
}

// PublishMovementRecorded serializa y envía el evento; registra la falla si la hay.
func (p *Publisher) PublishMovementRecorded(ctx context.Context, event inventory.MovementRecordedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Int64("movement_id", event.MovementID).Msg("serializar evento de movimiento")
		return fmt.Errorf("serializar evento: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(fmt.Sprintf("movement_%d", event.MovementID)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).Int64("movement_id", event.MovementID).Msg("publicar evento de movimiento")
		return fmt.Errorf("publicar evento: %w", err)
	}

	p.log.Debug().
		Int64("movement_id", event.MovementID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("evento de movimiento publicado")
	return nil
}

// Close cierra el productor subyacente.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
