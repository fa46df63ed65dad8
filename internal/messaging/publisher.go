package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// amqpChannel - часть *amqp.Channel, которой пользуется издатель.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ interfaces.StoryEventPublisher = (*RabbitMQStoryPublisher)(nil)

// RabbitMQStoryPublisher публикует события историй в durable очередь.
// Канал AMQP не потокобезопасен, поэтому публикация идет под мьютексом.
type RabbitMQStoryPublisher struct {
	mu     sync.Mutex
	ch     amqpChannel
	queue  string
	logger *zap.Logger
}

// NewRabbitMQStoryPublisher открывает канал и объявляет очередь queueName.
func NewRabbitMQStoryPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (*RabbitMQStoryPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue '%s': %w", queueName, err)
	}
	logger.Info("Story events queue declared", zap.String("queue", queueName))
	return newStoryPublisher(ch, queueName, logger), nil
}

func newStoryPublisher(ch amqpChannel, queueName string, logger *zap.Logger) *RabbitMQStoryPublisher {
	return &RabbitMQStoryPublisher{ch: ch, queue: queueName, logger: logger.Named("StoryPublisher")}
}

// PublishStoryEvent отправляет событие в очередь через exchange по умолчанию.
func (p *RabbitMQStoryPublisher) PublishStoryEvent(ctx context.Context, event models.StoryEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal story event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg)
	p.mu.Unlock()
	if err != nil {
		p.logger.Error("Failed to publish story event",
			zap.String("type", event.Type),
			zap.Stringer("storyID", event.StoryID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish story event: %w", err)
	}

	p.logger.Debug("Story event published", zap.String("type", event.Type), zap.Stringer("storyID", event.StoryID))
	return nil
}

// Close закрывает канал.
func (p *RabbitMQStoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return nil
	}
	return p.ch.Close()
}

type noopPublisher struct{}

// NewNoopPublisher возвращает издателя, который ничего не делает.
// Используется, когда RABBITMQ_URL не задан.
func NewNoopPublisher() interfaces.StoryEventPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishStoryEvent(context.Context, models.StoryEvent) error { return nil }

// Connect подключается к RabbitMQ с повторами.
func Connect(ctx context.Context, url string, attempts int, delay time.Duration, logger *zap.Logger) (*amqp.Connection, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 1; i <= attempts; i++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			logger.Info("Connected to RabbitMQ", zap.Int("attempt", i))
			return conn, nil
		}
		lastErr = err
		logger.Warn("Failed to connect to RabbitMQ",
			zap.Int("attempt", i),
			zap.Int("max_attempts", attempts),
			zap.Duration("retry_delay", delay),
			zap.Error(err),
		)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, lastErr)
}
