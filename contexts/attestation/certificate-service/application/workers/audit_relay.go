package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "popchain/contexts/attestation/certificate-service/application"
	"popchain/contexts/attestation/certificate-service/ports"
)

// AuditRelay drains the audit outbox and publishes envelopes to the event
// bus. Commands never publish directly; they only enqueue outbox rows inside
// their own transaction, so emission is all-or-nothing with the state change.
type AuditRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (r AuditRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	topic := r.Topic
	if topic == "" {
		topic = "attestation.audit"
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("audit outbox list pending failed",
			"event", "audit_relay_list_failed",
			"module", "attestation/certificate-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, message := range pending {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("audit outbox payload decode failed",
				"event", "audit_relay_decode_failed",
				"module", "attestation/certificate-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		if err := r.Publisher.Publish(ctx, topic, envelope); err != nil {
			logger.Error("audit outbox publish failed",
				"event", "audit_relay_publish_failed",
				"module", "attestation/certificate-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, message.OutboxID, now); err != nil {
			logger.Error("audit outbox mark sent failed",
				"event", "audit_relay_mark_sent_failed",
				"module", "attestation/certificate-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("audit relay cycle completed",
			"event", "audit_relay_completed",
			"module", "attestation/certificate-service",
			"layer", "worker",
			"sent_count", len(pending),
		)
	}
	return nil
}
