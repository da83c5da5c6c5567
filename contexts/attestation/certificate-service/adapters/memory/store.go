package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	application "popchain/contexts/attestation/certificate-service/application"
	"popchain/contexts/attestation/certificate-service/domain/entities"
	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
	"popchain/contexts/attestation/certificate-service/ports"
)

// Store is an in-memory ledger adapter implementing every certificate-service
// port for local runtime and tests. It is not intended as production
// persistence; atomicity is one mutex section instead of a DB transaction.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]entities.Account
	certificates map[string]entities.Certificate
	certsByReqID map[string]string
	outbox       map[string]ports.OutboxMessage
	outboxOrder  []string
	outboxSent   map[string]time.Time
	logger       *slog.Logger
}

// NewStore seeds account state and initializes certificate/outbox stores.
func NewStore(seedAccounts []entities.Account, logger *slog.Logger) *Store {
	accountMap := make(map[string]entities.Account, len(seedAccounts))
	for _, account := range seedAccounts {
		accountMap[account.AccountID] = cloneAccount(account)
	}
	return &Store{
		accounts:     accountMap,
		certificates: make(map[string]entities.Certificate),
		certsByReqID: make(map[string]string),
		outbox:       make(map[string]ports.OutboxMessage),
		outboxOrder:  make([]string, 0),
		outboxSent:   make(map[string]time.Time),
		logger:       application.ResolveLogger(logger),
	}
}

func (s *Store) GetAccount(_ context.Context, accountID string) (entities.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return entities.Account{}, domainerrors.ErrAccountNotFound
	}
	return cloneAccount(account), nil
}

// LinkWallet attaches a wallet to a seeded account. Test/runtime helper for
// the external account module's claim flow.
func (s *Store) LinkWallet(accountID string, owner entities.WalletAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return domainerrors.ErrAccountNotFound
	}
	account.Owner = &owner
	s.accounts[accountID] = account
	return nil
}

func (s *Store) GetCertificate(_ context.Context, certificateID string) (entities.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	certificate, ok := s.certificates[certificateID]
	if !ok {
		return entities.Certificate{}, domainerrors.ErrCertificateNotFound
	}
	return certificate, nil
}

func (s *Store) GetCertificateByRequestID(_ context.Context, requestID string) (entities.Certificate, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	certificateID, ok := s.certsByReqID[requestID]
	if !ok {
		return entities.Certificate{}, false, nil
	}
	certificate, ok := s.certificates[certificateID]
	if !ok {
		return entities.Certificate{}, false, domainerrors.ErrRepositoryInvariantBroke
	}
	return certificate, true, nil
}

func (s *Store) ListAccountCertificates(_ context.Context, accountID string) ([]entities.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, domainerrors.ErrAccountNotFound
	}
	certificates := make([]entities.Certificate, 0, len(account.CertificateIDs))
	for _, id := range account.CertificateIDs {
		certificate, ok := s.certificates[id]
		if !ok {
			return nil, domainerrors.ErrRepositoryInvariantBroke
		}
		certificates = append(certificates, certificate)
	}
	return certificates, nil
}

func (s *Store) CreateCertificateWithAudit(
	_ context.Context,
	certificate entities.Certificate,
	accountID string,
	requestID string,
	event ports.MintedEvent,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return domainerrors.ErrAccountNotFound
	}
	if _, exists := s.certsByReqID[requestID]; exists {
		return domainerrors.ErrDuplicateRequestID
	}
	if _, exists := s.certificates[certificate.CertificateID]; exists {
		return domainerrors.ErrRepositoryInvariantBroke
	}

	envelope, err := buildMintedEnvelope(event)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.certificates[certificate.CertificateID] = certificate
	s.certsByReqID[requestID] = certificate.CertificateID
	account.CertificateIDs = append(account.CertificateIDs, certificate.CertificateID)
	s.accounts[accountID] = account
	s.appendOutboxLocked(event.EventID, event.EventType, event.PartitionKey, payload, event.OccurredAt)

	s.logger.Debug("certificate stored",
		"event", "memory_certificate_stored",
		"module", "attestation/certificate-service",
		"layer", "adapter",
		"certificate_id", certificate.CertificateID,
		"account_id", accountID,
	)
	return nil
}

func (s *Store) DeliverCustodyWithAudit(
	_ context.Context,
	certificateID string,
	destination entities.WalletAddress,
	event ports.TransferredEvent,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	certificate, ok := s.certificates[certificateID]
	if !ok {
		return domainerrors.ErrCertificateNotFound
	}

	envelope, err := buildTransferredEnvelope(event)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	certificate.Custodian = destination
	s.certificates[certificateID] = certificate
	s.appendOutboxLocked(event.EventID, event.EventType, event.PartitionKey, payload, event.OccurredAt)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	pending := make([]ports.OutboxMessage, 0, limit)
	for _, outboxID := range s.outboxOrder {
		if _, sent := s.outboxSent[outboxID]; sent {
			continue
		}
		message := s.outbox[outboxID]
		message.Payload = append([]byte(nil), message.Payload...)
		pending = append(pending, message)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outbox[outboxID]; !ok {
		return fmt.Errorf("outbox message %s not found", outboxID)
	}
	s.outboxSent[outboxID] = sentAt.UTC()
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) appendOutboxLocked(outboxID string, eventType string, partitionKey string, payload []byte, createdAt time.Time) {
	s.outbox[outboxID] = ports.OutboxMessage{
		OutboxID:     outboxID,
		EventType:    eventType,
		PartitionKey: partitionKey,
		Payload:      payload,
		CreatedAt:    createdAt.UTC(),
	}
	s.outboxOrder = append(s.outboxOrder, outboxID)
}

func cloneAccount(account entities.Account) entities.Account {
	clone := account
	if account.Owner != nil {
		owner := *account.Owner
		clone.Owner = &owner
	}
	clone.CertificateIDs = append([]string(nil), account.CertificateIDs...)
	return clone
}
