package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"unicube-hr/internal/recordstore"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

const LeaveEventsTopic = "hr.leave.events"

type OutboxEvent struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     string          `json:"eventType"`
	Topic         string          `json:"topic"`
	Payload       json.RawMessage `json:"payload"`
	Status        string          `json:"status"`
	RetryCount    int             `json:"retryCount"`
	NextRetryAt   string          `json:"nextRetryAt,omitempty"`
	ErrorMessage  string          `json:"errorMessage,omitempty"`
	CreatedAt     string          `json:"createdAt"`
}

//go:generate mockgen -source=outbox.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	Append(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	store recordstore.Store
}

func NewOutboxRepository(store recordstore.Store) OutboxRepository {
	return &outboxRepository{store: store}
}

func (r *outboxRepository) readAll(ctx context.Context) ([]OutboxEvent, error) {
	var events []OutboxEvent
	if err := r.store.ReadAll(ctx, recordstore.CollectionOutbox, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *outboxRepository) Append(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	events, err := r.readAll(ctx)
	if err != nil {
		return err
	}
	events = append(events, event)
	return r.store.WriteAll(ctx, recordstore.CollectionOutbox, events)
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	events, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	pending := make([]OutboxEvent, 0, limit)
	for _, e := range events {
		if e.Status != OutboxStatusPending && e.Status != OutboxStatusFailed {
			continue
		}
		if e.NextRetryAt != "" && e.NextRetryAt > now {
			continue
		}
		pending = append(pending, e)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.update(ctx, id, func(e *OutboxEvent) {
		e.Status = OutboxStatusSent
		e.ErrorMessage = ""
		e.NextRetryAt = ""
	})
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.update(ctx, id, func(e *OutboxEvent) {
		e.Status = OutboxStatusFailed
		e.RetryCount++
		if len(reason) > 500 {
			reason = reason[:500]
		}
		e.ErrorMessage = reason
		backoff := min(e.RetryCount, 10)
		e.NextRetryAt = time.Now().UTC().
			Add(time.Duration(backoff) * 15 * time.Second).
			Format(time.RFC3339)
	})
}

func (r *outboxRepository) update(ctx context.Context, id string, apply func(*OutboxEvent)) error {
	events, err := r.readAll(ctx)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == id {
			apply(&events[i])
			return r.store.WriteAll(ctx, recordstore.CollectionOutbox, events)
		}
	}
	return fmt.Errorf("outbox event not found: %s", id)
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
