package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "popchain/contexts/attestation/certificate-service/application"
	"popchain/contexts/attestation/certificate-service/domain/entities"
	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
	"popchain/contexts/attestation/certificate-service/ports"
)

const mintedEventType = "attestation.certificate_minted"

type MintCertificateCommand struct {
	AccountID   string
	EventID     string
	MetadataURL string
	Tier        entities.Tier
	RequestID   string
}

type MintCertificateResult struct {
	Certificate entities.Certificate
	Created     bool
	Replayed    bool
}

// MintCertificateUseCase issues a new certificate from a tier template.
// Price collection is an external concern and must have happened before
// this use case runs; the tier price is recorded, not charged.
type MintCertificateUseCase struct {
	Accounts      ports.AccountRepository
	Certificates  ports.CertificateRepository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	ServiceWallet entities.WalletAddress
	Logger        *slog.Logger
}

// Execute runs the mint workflow in this order:
// 1) request_id replay lookup
// 2) account owner resolution
// 3) custody resolution (escrow to service wallet when no wallet is linked)
// 4) atomic certificate + account append + audit outbox persistence.
func (u MintCertificateUseCase) Execute(ctx context.Context, cmd MintCertificateCommand) (MintCertificateResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.AccountID) == "" ||
		strings.TrimSpace(cmd.EventID) == "" ||
		strings.TrimSpace(cmd.MetadataURL) == "" ||
		strings.TrimSpace(cmd.RequestID) == "" {
		return MintCertificateResult{}, domainerrors.ErrInvalidMintRequest
	}
	if err := cmd.Tier.Validate(); err != nil {
		return MintCertificateResult{}, err
	}
	if u.ServiceWallet == "" {
		return MintCertificateResult{}, domainerrors.ErrInvalidMintRequest
	}

	logger.Info("mint certificate started",
		"event", "mint_certificate_started",
		"module", "attestation/certificate-service",
		"layer", "application",
		"account_id", cmd.AccountID,
		"event_id", cmd.EventID,
		"tier_name", cmd.Tier.Name,
	)

	// request_id dedupe so callers can safely retry a rejected transaction
	// without double-minting.
	if existing, found, err := u.Certificates.GetCertificateByRequestID(ctx, cmd.RequestID); err != nil {
		return MintCertificateResult{}, err
	} else if found {
		logger.Info("mint certificate replayed",
			"event", "mint_certificate_replayed",
			"module", "attestation/certificate-service",
			"layer", "application",
			"certificate_id", existing.CertificateID,
			"request_id", cmd.RequestID,
		)
		return MintCertificateResult{Certificate: existing, Replayed: true}, nil
	}

	account, err := u.Accounts.GetAccount(ctx, cmd.AccountID)
	if err != nil {
		logger.Error("mint certificate failed loading account",
			"event", "mint_certificate_get_account_failed",
			"module", "attestation/certificate-service",
			"layer", "application",
			"account_id", cmd.AccountID,
			"error", err.Error(),
		)
		return MintCertificateResult{}, err
	}

	now := u.now()
	issuedAtMillis := now.UnixMilli()

	// The issued-to snapshot is the owner value at mint time, including
	// its absence. Copy the address so the certificate never aliases
	// account state.
	var issuedTo *entities.WalletAddress
	custodian := u.ServiceWallet
	if account.WalletLinked() {
		owner := *account.Owner
		issuedTo = &owner
		custodian = owner
	}

	certificateID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return MintCertificateResult{}, err
	}
	certificate, err := entities.NewCertificate(
		certificateID,
		cmd.EventID,
		cmd.MetadataURL,
		cmd.Tier,
		issuedTo,
		issuedAtMillis,
		custodian,
	)
	if err != nil {
		return MintCertificateResult{}, err
	}

	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return MintCertificateResult{}, err
	}
	event := ports.MintedEvent{
		EventID:        eventID,
		EventType:      mintedEventType,
		CertificateID:  certificate.CertificateID,
		AttestedEvent:  certificate.EventID,
		TierName:       certificate.TierName,
		IssuedTo:       certificate.IssuedToAddress(),
		IssuedAtMillis: certificate.IssuedAtMillis,
		MintPrice:      certificate.MintPrice,
		PartitionKey:   certificate.CertificateID,
		OccurredAt:     now,
	}

	// Write boundary: certificate row, account list append and audit outbox
	// row are committed together by the repository adapter.
	if err := u.Certificates.CreateCertificateWithAudit(ctx, certificate, cmd.AccountID, cmd.RequestID, event); err != nil {
		// Concurrent retry lost the insert race; surface the winner.
		if errors.Is(err, domainerrors.ErrDuplicateRequestID) {
			if existing, found, lookupErr := u.Certificates.GetCertificateByRequestID(ctx, cmd.RequestID); lookupErr == nil && found {
				return MintCertificateResult{Certificate: existing, Replayed: true}, nil
			}
		}
		logger.Error("mint certificate failed on write transaction",
			"event", "mint_certificate_write_failed",
			"module", "attestation/certificate-service",
			"layer", "application",
			"account_id", cmd.AccountID,
			"event_id", cmd.EventID,
			"error", err.Error(),
		)
		return MintCertificateResult{}, err
	}

	logger.Info("certificate minted",
		"event", "certificate_minted",
		"module", "attestation/certificate-service",
		"layer", "application",
		"certificate_id", certificate.CertificateID,
		"event_id", certificate.EventID,
		"tier_name", certificate.TierName,
		"issued_to", certificate.IssuedToAddress(),
		"custodian", string(certificate.Custodian),
		"mint_price", certificate.MintPrice,
	)

	return MintCertificateResult{Certificate: certificate, Created: true}, nil
}

func (u MintCertificateUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
