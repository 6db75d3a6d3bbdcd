package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/meeting-room-booking/internal/service"
)

// Publisher sends booking events to the durable booking queue.  Each
// publish opens its own connection, so a broker outage only costs the
// events raised while it lasts.
type Publisher struct {
    url   string
    queue string
    log   *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
    if log == nil {
        log = zap.NewNop()
    }
    return &Publisher{url: url, queue: BookingQueue, log: log}
}

// BookingChanged implements service.Notifier.
func (p *Publisher) BookingChanged(ctx context.Context, ev service.BookingEvent) error {
    return p.Publish(ctx, NewBookingEvent(ev))
}

// Publish marshals ev and publishes it as a persistent message on the
// default exchange, routed to the booking queue.
func (p *Publisher) Publish(ctx context.Context, ev BookingEvent) error {
    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal booking event: %w", err)
    }

    conn, err := amqp.Dial(p.url)
    if err != nil {
        return fmt.Errorf("rabbitmq dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(
        p.queue, // name
        true,    // durable
        false,   // autoDelete
        false,   // exclusive
        false,   // noWait
        nil,     // args
    ); err != nil {
        return fmt.Errorf("rabbitmq queue declare: %w", err)
    }

    if err := ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Type:         ev.Type,
        Body:         body,
    }); err != nil {
        return fmt.Errorf("rabbitmq publish: %w", err)
    }
    p.log.Debug("Booking event published", zap.String("event", ev.Type), zap.Uint64("booking_id", ev.BookingID))
    return nil
}
