package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"
)

// LogFileName is the audit log written inside the consumer's directory.
const LogFileName = "booking.log"

// StartBookingConsumer consumes the booking queue until ctx is cancelled,
// appending one line per event to <dir>/booking.log.  Broker failures are
// retried with exponential backoff capped at 30s.  Malformed messages are
// rejected without requeue.
func StartBookingConsumer(ctx context.Context, url, dir string, log *zap.Logger) error {
    if log == nil {
        log = zap.NewNop()
    }
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Warn("Booking consumer failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
            if !sleepCtx(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consume(ctx, conn, dir, log)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Warn("Booking consumer loop ended, reconnecting", zap.Error(err))
        if !sleepCtx(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func consume(ctx context.Context, conn *amqp.Connection, dir string, log *zap.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Warn("Booking consumer QoS failed", zap.Error(err))
    }
    if _, err := ch.QueueDeclare(BookingQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.ConsumeWithContext(ctx, BookingQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := AppendEvent(dir, d.Body); err != nil {
            log.Error("Booking event rejected", zap.Error(err))
            _ = d.Nack(false, false)
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// AppendEvent decodes body and appends its log line to <dir>/booking.log.
func AppendEvent(dir string, body []byte) error {
    var ev BookingEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" {
        return errors.New("event without type")
    }
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", dir, err)
    }
    f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.WriteString(FormatEvent(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatEvent renders ev as a single newline-terminated log line.
func FormatEvent(ev BookingEvent) string {
    return fmt.Sprintf("[%s] %s | booking_id=%d | name=%q | contact=%q | room=%q | date=%s | time=%s-%s\n",
        ev.OccurredAt, ev.Type, ev.BookingID, ev.Name, ev.Contact, ev.Room, ev.Date, ev.Start, ev.End)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
