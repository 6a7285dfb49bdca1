package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/SakerDakak/taxipay-dashboard/pkg/metrics"
	"github.com/rabbitmq/amqp091-go"
)

const (
	ActivityExchange   = "driver_activity"
	ActivityRoutingKey = "activity.top_drivers"

	publishAttempts = 3
	publishBackoff  = 200 * time.Millisecond
)

// Broker is the part of *rabbit.RabbitMQ the producer needs.
type Broker interface {
	EnsureConnection(ctx context.Context) error
	Publish(ctx context.Context, exchange, key string, msg amqp091.Publishing) error
}

type ActivityProducer struct {
	broker     Broker
	exchange   string
	routingKey string
}

func NewActivityProducer(broker Broker, exchange, routingKey string) *ActivityProducer {
	if exchange == "" {
		exchange = ActivityExchange
	}
	if routingKey == "" {
		routingKey = ActivityRoutingKey
	}
	return &ActivityProducer{
		broker:     broker,
		exchange:   exchange,
		routingKey: routingKey,
	}
}

// activityMessage is the wire format of a published report.
type activityMessage struct {
	GeneratedAt              time.Time               `json:"generated_at"`
	Limit                    int                     `json:"limit"`
	TotalTransactions        int                     `json:"total_transactions"`
	AttributableTransactions int                     `json:"attributable_transactions"`
	Drivers                  []models.DriverActivity `json:"drivers"`
}

// PublishActivityReport publishes a computed top drivers report.
func (p *ActivityProducer) PublishActivityReport(ctx context.Context, report *models.ActivityReport) (err error) {
	const op = "ActivityProducer.PublishActivityReport"
	ctx = wrap.WithAction(ctx, types.ActionPublishActivity)

	defer func() {
		metrics.RecordRabbitMQPublish(p.exchange, err)
	}()

	if report == nil {
		return wrap.Error(ctx, fmt.Errorf("%s: nil report", op))
	}

	body, err := json.Marshal(activityMessage{
		GeneratedAt:              report.GeneratedAt,
		Limit:                    report.Limit,
		TotalTransactions:        report.TotalTransactions,
		AttributableTransactions: report.AttributableTransactions,
		Drivers:                  report.Drivers,
	})
	if err != nil {
		ctx = wrap.WithAction(ctx, "marshal_activity_report")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal message: %w", op, err))
	}

	msg := amqp091.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp091.Persistent,
		Body:          body,
		Timestamp:     time.Now(),
		CorrelationId: wrap.RequestID(ctx),
	}

	err = retry(ctx, publishAttempts, publishBackoff, func() error {
		if err := p.broker.EnsureConnection(ctx); err != nil {
			return err
		}
		return p.broker.Publish(ctx, p.exchange, p.routingKey, msg)
	})
	if err != nil {
		ctx = wrap.WithAction(ctx, "publish_message")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish with context: %w", op, err))
	}

	return nil
}

// NopPublisher drops every report. Used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishActivityReport(context.Context, *models.ActivityReport) error {
	return nil
}
