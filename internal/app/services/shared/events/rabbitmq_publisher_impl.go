package events

import (
	"context"
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	eventPublisherInstance contracts.EventPublisher
	onceEventPublisher     sync.Once
)

type rabbitMQPublisher struct {
	conn      *amqp091.Connection
	queueName string
	Log       *zap.Logger
}

func NewRabbitMQPublisher(conn *amqp091.Connection, queueName string, logger *zap.Logger) contracts.EventPublisher {
	onceEventPublisher.Do(func() {
		eventPublisherInstance = &rabbitMQPublisher{
			conn:      conn,
			queueName: queueName,
			Log:       logger,
		}
	})
	return eventPublisherInstance
}

func (p *rabbitMQPublisher) PublishBookingEvent(ctx context.Context, event *contracts.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	channel, err := p.conn.Channel()
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err)
	}
	defer channel.Close()

	_, err = channel.QueueDeclare(p.queueName, true, false, false, false, nil)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err)
	}

	err = channel.PublishWithContext(ctx, "", p.queueName, false, false, amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err)
	}

	p.Log.Info("rabbitMQPublisher.PublishBookingEvent published",
		zap.String(constvars.LoggingQueueKey, p.queueName),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingOrderIDKey, event.OrderID),
	)
	return nil
}
