// Package notify turns order events into customer notifications.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	kafkax "github.com/ariefcatur/boutique-orders/internal/kafka"
	"github.com/ariefcatur/boutique-orders/internal/orders"
	"github.com/ariefcatur/boutique-orders/internal/redisx"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Deduper interface {
	First(ctx context.Context, eventID string) (bool, error)
	Forget(ctx context.Context, eventID string) error
}

type Inbox interface {
	Push(ctx context.Context, customerID int64, n redisx.Notification) error
}

type Service struct {
	Dedup Deduper
	Inbox Inbox
	Log   *zap.Logger
}

func New(d Deduper, in Inbox, log *zap.Logger) *Service {
	return &Service{Dedup: d, Inbox: in, Log: log}
}

// Topics lists the topics Handle understands.
func Topics() []string {
	return []string{orders.TopicOrderPlaced, orders.TopicOrderStatusChanged}
}

// Handle is installed as the consumer handler. Events are processed at most
// once per event id; a failed push releases the id and returns the error so
// the consumer retries the message before committing it.
func (s *Service) Handle(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		s.Log.Warn("drop undecodable event", zap.String("topic", m.Topic), zap.Error(err))
		return nil
	}

	customerID, n, ok, err := Build(env)
	if err != nil {
		s.Log.Warn("drop malformed payload", zap.String("event_id", env.EventID), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	first, err := s.Dedup.First(ctx, env.EventID)
	if err != nil {
		return err
	}
	if !first {
		s.Log.Debug("duplicate event", zap.String("event_id", env.EventID))
		return nil
	}

	if err := s.Inbox.Push(ctx, customerID, n); err != nil {
		_ = s.Dedup.Forget(ctx, env.EventID)
		return err
	}
	s.Log.Info("customer notified",
		zap.String("event_id", env.EventID),
		zap.String("event_type", env.EventType),
		zap.Int64("order_id", n.OrderID),
		zap.Int64("customer_id", customerID),
		zap.String("trace_id", env.TraceID))
	return nil
}

// Build renders the notification for env. ok is false for event types the
// notifier does not handle.
func Build(env orders.Envelope) (customerID int64, n redisx.Notification, ok bool, err error) {
	n = redisx.Notification{EventID: env.EventID, EventType: env.EventType, CreatedAt: env.OccurredAt}
	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return 0, n, false, err
		}
		n.OrderID = p.OrderID
		n.Message = fmt.Sprintf("We received your %s order #%d.", p.Kind, p.OrderID)
		return p.CustomerID, n, true, nil
	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return 0, n, false, err
		}
		n.OrderID = p.OrderID
		n.Message = fmt.Sprintf("Your %s order #%d is now %s.", p.Kind, p.OrderID, p.To)
		return p.CustomerID, n, true, nil
	default:
		return 0, n, false, nil
	}
}
