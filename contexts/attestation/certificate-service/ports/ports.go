package ports

import (
	"context"
	"time"

	"popchain/contexts/attestation/certificate-service/domain/entities"
	contractsv1 "popchain/contracts/gen/events/v1"
)

// AccountRepository is read-only access to account state owned by the
// external account module.
type AccountRepository interface {
	GetAccount(ctx context.Context, accountID string) (entities.Account, error)
}

// MintedEvent is the audit payload enqueued atomically with a mint.
type MintedEvent struct {
	EventID        string
	EventType      string
	CertificateID  string
	AttestedEvent  string
	TierName       string
	IssuedTo       string
	IssuedAtMillis int64
	MintPrice      uint64
	PartitionKey   string
	OccurredAt     time.Time
}

// TransferredEvent is the audit payload enqueued atomically with a custody
// transfer.
type TransferredEvent struct {
	EventID       string
	EventType     string
	CertificateID string
	AccountID     string
	Destination   string
	PartitionKey  string
	OccurredAt    time.Time
}

// CertificateRepository owns certificate persistence and the transaction
// boundaries that keep state changes and audit rows all-or-nothing.
type CertificateRepository interface {
	GetCertificate(ctx context.Context, certificateID string) (entities.Certificate, error)
	GetCertificateByRequestID(ctx context.Context, requestID string) (entities.Certificate, bool, error)
	// ListAccountCertificates returns the account's certificates in list
	// (mint) order.
	ListAccountCertificates(ctx context.Context, accountID string) ([]entities.Certificate, error)
	// CreateCertificateWithAudit must atomically persist the certificate,
	// append its id to the account's certificate list, and enqueue the
	// audit outbox row.
	CreateCertificateWithAudit(
		ctx context.Context,
		certificate entities.Certificate,
		accountID string,
		requestID string,
		event MintedEvent,
	) error
	// DeliverCustodyWithAudit must atomically move custody of the
	// certificate to the destination wallet and enqueue the audit outbox
	// row. The issued-to snapshot is never touched.
	DeliverCustodyWithAudit(
		ctx context.Context,
		certificateID string,
		destination entities.WalletAddress,
		event TransferredEvent,
	) error
}

// OutboxMessage is a row ready to relay from the audit outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// Clock allows deterministic issuance timestamps in tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts certificate/event identifier allocation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
