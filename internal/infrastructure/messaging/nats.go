package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/pkg/logger"
)

// NATSPublisher publishes reconciled events to a NATS subject
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  logger.Logger
}

// NewNATSPublisher connects to NATS. The connection keeps retrying in the background.
func NewNATSPublisher(url, token, subject string, logger logger.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("boardingpass-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("NATS reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSPublisher{conn: nc, subject: subject, logger: logger}, nil
}

// PublishReconciled publishes the event as JSON
func (p *NATSPublisher) PublishReconciled(ctx context.Context, event entity.ReconciledEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := nats.NewMsg(p.subject)
	msg.Data = payload
	msg.Header.Set("Run-Id", event.RunID)
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	p.logger.Debug("Published reconciled event", "subject", p.subject, "run_id", event.RunID)
	return nil
}

// Close drains and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
