package events

import (
	"context"
	"time"

	"referral-server/internal/clients/kafka"
	"referral-server/internal/observability"
	"referral-server/internal/store"

	"github.com/google/uuid"
)

const (
	TypeReferralCreated = "referral.created"
	TypeReferralUpdated = "referral.updated"
	TypeReferralDeleted = "referral.deleted"
)

// Publisher handles publishing referral change events to Kafka. A Publisher
// without a producer drops every event.
type Publisher struct {
	kafkaProducer *kafka.Producer
	logger        *observability.Logger
}

// NewPublisher creates a new event publisher. kafkaProducer may be nil.
func NewPublisher(kafkaProducer *kafka.Producer, logger *observability.Logger) *Publisher {
	return &Publisher{
		kafkaProducer: kafkaProducer,
		logger:        logger,
	}
}

// PublishReferralCreated publishes a referral.created event
func (p *Publisher) PublishReferralCreated(ctx context.Context, referral store.Referral) error {
	return p.publish(ctx, TypeReferralCreated, referral.ID, referralData(referral))
}

// PublishReferralUpdated publishes a referral.updated event
func (p *Publisher) PublishReferralUpdated(ctx context.Context, referral store.Referral) error {
	return p.publish(ctx, TypeReferralUpdated, referral.ID, referralData(referral))
}

// PublishReferralDeleted publishes a referral.deleted event
func (p *Publisher) PublishReferralDeleted(ctx context.Context, referralID uuid.UUID) error {
	return p.publish(ctx, TypeReferralDeleted, referralID, map[string]interface{}{
		"referral_id": referralID.String(),
	})
}

func (p *Publisher) publish(ctx context.Context, eventType string, referralID uuid.UUID, data map[string]interface{}) error {
	if p == nil || p.kafkaProducer == nil {
		return nil
	}

	event := kafka.EventMessage{
		ID:        uuid.New().String(),
		Type:      eventType,
		Key:       referralID.String(),
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return p.kafkaProducer.PublishEvent(ctx, event)
}

func referralData(r store.Referral) map[string]interface{} {
	data := map[string]interface{}{
		"referral_id": r.ID.String(),
		"given_name":  r.GivenName,
		"surname":     r.Surname,
		"email":       r.Email,
		"created_at":  r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.AvatarURL != nil {
		data["avatar_url"] = *r.AvatarURL
	}
	return data
}
