package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vitrine-shop/go-backend/internal/cfg"
	"github.com/vitrine-shop/go-backend/internal/usecase"
	"github.com/vitrine-shop/go-backend/pkg/e"
	"github.com/vitrine-shop/go-backend/pkg/jitter"
	"github.com/vitrine-shop/go-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

// changeEventPayload — wire-формат события изменения каталога.
type changeEventPayload struct {
	EventID        string          `json:"event_id"`
	EventTimestamp int64           `json:"event_timestamp"`
	Op             string          `json:"op"`
	ProductID      string          `json:"product_id"`
	Product        *productPayload `json:"product,omitempty"`
}

type productPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// Producer публикует события изменения каталога в Kafka.
// Публикация выполняется в фоне с ограниченным числом повторов:
// доставка события не является условием успеха пользовательской операции.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
	wg     sync.WaitGroup
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// PublishChange ставит событие в фоновую отправку и возвращается сразу.
func (p *Producer) PublishChange(_ context.Context, event *usecase.ChangeEvent) error {
	value, err := p.payloadBytes(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: value,
	}

	p.wg.Add(1)
	go p.writeWithRetry(msg)

	return nil
}

// writeWithRetry отправляет сообщение с экспоненциальным backoff'ом и джиттером.
func (p *Producer) writeWithRetry(msg kafka.Message) {
	defer p.wg.Done()

	const (
		maxAttempts = 3
		baseBackoff = time.Second
		maxBackoff  = 10 * time.Second
	)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		lastErr = p.writer.WriteMessages(ctx, msg)
		cancel()

		if lastErr == nil {
			return
		}

		if attempt < maxAttempts-1 {
			time.Sleep(jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter))
		}
	}

	p.logger.Warnf("Change event dropped after %d attempts: %v", maxAttempts, lastErr)
}

// EnsureTopic создаёт топик, если он ещё не существует.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

// Close дожидается фоновых отправок и закрывает writer.
func (p *Producer) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		p.logger.Warnf("Kafka producer close: in-flight events abandoned: %v", ctx.Err())
	}

	return p.writer.Close()
}

func (p *Producer) payloadBytes(event *usecase.ChangeEvent) ([]byte, error) {
	payload := changeEventPayload{
		EventID:        uuid.NewString(),
		EventTimestamp: time.Now().UnixNano(),
		Op:             string(event.Op),
		ProductID:      event.ProductID,
	}

	if event.Product != nil {
		payload.Product = &productPayload{
			ID:    event.Product.ID,
			Name:  event.Product.Name,
			Price: event.Product.Price,
			Image: event.Product.Image,
		}
	}

	return json.Marshal(payload)
}
