package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"popchain/contexts/attestation/certificate-service/domain/entities"
	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
	"popchain/contexts/attestation/certificate-service/ports"
)

func mustCertificate(t *testing.T, certificateID string, custodian entities.WalletAddress) entities.Certificate {
	t.Helper()
	tiers := entities.DefaultPopchainTiers()
	certificate, err := entities.NewCertificate(
		certificateID,
		"E1",
		"https://meta.example/e1",
		tiers[1],
		nil,
		1700000000000,
		custodian,
	)
	if err != nil {
		t.Fatalf("fixture certificate invalid: %v", err)
	}
	return certificate
}

func mintedFixture(eventID string, certificateID string) ports.MintedEvent {
	return ports.MintedEvent{
		EventID:        eventID,
		EventType:      "attestation.certificate_minted",
		CertificateID:  certificateID,
		AttestedEvent:  "E1",
		TierName:       "PopBadge",
		IssuedAtMillis: 1700000000000,
		MintPrice:      30_000_000,
		PartitionKey:   certificateID,
		OccurredAt:     time.UnixMilli(1700000000000).UTC(),
	}
}

func TestCreateCertificateWithAuditPersistsAtomically(t *testing.T) {
	store := NewStore([]entities.Account{{AccountID: "acct-1"}}, nil)
	ctx := context.Background()

	certificate := mustCertificate(t, "cert-1", "0xFEED")
	if err := store.CreateCertificateWithAudit(ctx, certificate, "acct-1", "req-1", mintedFixture("evt-1", "cert-1")); err != nil {
		t.Fatalf("create should succeed: %v", err)
	}

	account, err := store.GetAccount(ctx, "acct-1")
	if err != nil {
		t.Fatalf("account lookup failed: %v", err)
	}
	if len(account.CertificateIDs) != 1 || account.CertificateIDs[0] != "cert-1" {
		t.Fatalf("certificate id not appended: %v", account.CertificateIDs)
	}

	stored, found, err := store.GetCertificateByRequestID(ctx, "req-1")
	if err != nil || !found {
		t.Fatalf("request id index missing: found=%v err=%v", found, err)
	}
	if stored.CertificateID != "cert-1" {
		t.Fatalf("request id resolved to %s", stored.CertificateID)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if len(pending) != 1 || pending[0].OutboxID != "evt-1" {
		t.Fatalf("expected one pending audit row, got %v", pending)
	}
}

func TestCreateCertificateWithAuditRejectsDuplicateRequestID(t *testing.T) {
	store := NewStore([]entities.Account{{AccountID: "acct-1"}}, nil)
	ctx := context.Background()

	first := mustCertificate(t, "cert-1", "0xFEED")
	if err := store.CreateCertificateWithAudit(ctx, first, "acct-1", "req-1", mintedFixture("evt-1", "cert-1")); err != nil {
		t.Fatalf("first create should succeed: %v", err)
	}

	second := mustCertificate(t, "cert-2", "0xFEED")
	err := store.CreateCertificateWithAudit(ctx, second, "acct-1", "req-1", mintedFixture("evt-2", "cert-2"))
	if !errors.Is(err, domainerrors.ErrDuplicateRequestID) {
		t.Fatalf("expected duplicate request id, got %v", err)
	}

	// The rejected create must leave no partial state behind.
	account, err := store.GetAccount(ctx, "acct-1")
	if err != nil {
		t.Fatalf("account lookup failed: %v", err)
	}
	if len(account.CertificateIDs) != 1 {
		t.Fatalf("rejected create appended to account list: %v", account.CertificateIDs)
	}
	if _, err := store.GetCertificate(ctx, "cert-2"); !errors.Is(err, domainerrors.ErrCertificateNotFound) {
		t.Fatalf("rejected create stored the certificate: %v", err)
	}
	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("rejected create enqueued an audit row: %v", pending)
	}
}

func TestCreateCertificateWithAuditUnknownAccount(t *testing.T) {
	store := NewStore(nil, nil)
	certificate := mustCertificate(t, "cert-1", "0xFEED")
	err := store.CreateCertificateWithAudit(context.Background(), certificate, "missing", "req-1", mintedFixture("evt-1", "cert-1"))
	if !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}

func TestDeliverCustodyWithAuditMovesCustodianOnly(t *testing.T) {
	store := NewStore([]entities.Account{{AccountID: "acct-1"}}, nil)
	ctx := context.Background()

	certificate := mustCertificate(t, "cert-1", "0xFEED")
	if err := store.CreateCertificateWithAudit(ctx, certificate, "acct-1", "req-1", mintedFixture("evt-1", "cert-1")); err != nil {
		t.Fatalf("create should succeed: %v", err)
	}

	err := store.DeliverCustodyWithAudit(ctx, "cert-1", "0xABC", ports.TransferredEvent{
		EventID:       "evt-2",
		EventType:     "attestation.certificate_transferred_to_wallet",
		CertificateID: "cert-1",
		AccountID:     "acct-1",
		Destination:   "0xABC",
		PartitionKey:  "cert-1",
		OccurredAt:    time.UnixMilli(1700000001000).UTC(),
	})
	if err != nil {
		t.Fatalf("deliver should succeed: %v", err)
	}

	stored, err := store.GetCertificate(ctx, "cert-1")
	if err != nil {
		t.Fatalf("certificate lookup failed: %v", err)
	}
	if stored.Custodian != "0xABC" {
		t.Fatalf("custody not moved: %s", stored.Custodian)
	}
	if stored.IssuedTo != nil {
		t.Fatalf("issued-to snapshot rewritten: %v", stored.IssuedTo)
	}
}

func TestDeliverCustodyWithAuditUnknownCertificate(t *testing.T) {
	store := NewStore(nil, nil)
	err := store.DeliverCustodyWithAudit(context.Background(), "missing", "0xABC", ports.TransferredEvent{EventID: "evt-1"})
	if !errors.Is(err, domainerrors.ErrCertificateNotFound) {
		t.Fatalf("expected certificate not found, got %v", err)
	}
}

func TestOutboxPendingOrderAndAcknowledgement(t *testing.T) {
	store := NewStore([]entities.Account{{AccountID: "acct-1"}}, nil)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		certificateID := fmt.Sprintf("cert-%d", i)
		certificate := mustCertificate(t, certificateID, "0xFEED")
		event := mintedFixture(fmt.Sprintf("evt-%d", i), certificateID)
		if err := store.CreateCertificateWithAudit(ctx, certificate, "acct-1", fmt.Sprintf("req-%d", i), event); err != nil {
			t.Fatalf("create %d should succeed: %v", i, err)
		}
	}

	limited, err := store.ListPendingOutbox(ctx, 2)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if len(limited) != 2 || limited[0].OutboxID != "evt-1" || limited[1].OutboxID != "evt-2" {
		t.Fatalf("expected first two rows in enqueue order, got %v", limited)
	}

	if err := store.MarkOutboxSent(ctx, "evt-1", time.Now()); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if len(pending) != 2 || pending[0].OutboxID != "evt-2" {
		t.Fatalf("acknowledged row still pending: %v", pending)
	}

	if err := store.MarkOutboxSent(ctx, "missing", time.Now()); err == nil {
		t.Fatalf("expected error for unknown outbox id")
	}
}

func TestGetAccountReturnsIsolatedCopy(t *testing.T) {
	owner := entities.WalletAddress("0xABC")
	store := NewStore([]entities.Account{{AccountID: "acct-1", Owner: &owner}}, nil)
	ctx := context.Background()

	account, err := store.GetAccount(ctx, "acct-1")
	if err != nil {
		t.Fatalf("account lookup failed: %v", err)
	}
	*account.Owner = "0xEVIL"
	account.CertificateIDs = append(account.CertificateIDs, "cert-x")

	reread, err := store.GetAccount(ctx, "acct-1")
	if err != nil {
		t.Fatalf("account lookup failed: %v", err)
	}
	if *reread.Owner != "0xABC" || len(reread.CertificateIDs) != 0 {
		t.Fatalf("caller mutation leaked into the store: %+v", reread)
	}
}
