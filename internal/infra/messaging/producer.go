package messaging

import (
	"context"
	"time"

	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            5,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}

	return &Producer{writer: w}
}

// Publish writes msgs synchronously. Messages sharing a key land on the
// same partition, so events of one order stay ordered.
func (p *Producer) Publish(ctx context.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toKafkaMessage(m))
	}
	if err := p.writer.WriteMessages(ctx, out...); err != nil {
		return errs.Wrap(err, "failed to write message")
	}
	return nil
}

func (p *Producer) Topic() string {
	return p.writer.Topic
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func toKafkaMessage(m Message) kafka.Message {
	headers := make([]kafka.Header, 0, len(m.Headers))
	for k, v := range m.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: headers,
	}
}
