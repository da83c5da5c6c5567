package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "popchain/contexts/attestation/certificate-service/application"
	"popchain/contexts/attestation/certificate-service/domain/entities"
	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
	"popchain/contexts/attestation/certificate-service/ports"
)

const transferredEventType = "attestation.certificate_transferred_to_wallet"

type TransferCertificateCommand struct {
	AccountID     string
	CertificateID string
}

type TransferCertificateResult struct {
	Certificate entities.Certificate
	Destination entities.WalletAddress
}

// TransferCertificateUseCase releases custody of an issued certificate to
// the wallet linked to an account, after proving the certificate belongs
// to that account.
type TransferCertificateUseCase struct {
	Accounts     ports.AccountRepository
	Certificates ports.CertificateRepository
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	Logger       *slog.Logger
}

// Execute checks preconditions in a fixed order, each aborting the whole
// operation:
// 1) the account must have a linked wallet
// 2) the certificate's recorded recipient must be absent (escrowed) or
//    exactly the account's wallet
// 3) the certificate id must appear in the account's certificate list.
// On success custody moves to the account's wallet; the issued-to snapshot
// keeps its mint-time value.
func (u TransferCertificateUseCase) Execute(ctx context.Context, cmd TransferCertificateCommand) (TransferCertificateResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.AccountID) == "" || strings.TrimSpace(cmd.CertificateID) == "" {
		return TransferCertificateResult{}, domainerrors.ErrInvalidTransferRequest
	}

	logger.Info("transfer certificate started",
		"event", "transfer_certificate_started",
		"module", "attestation/certificate-service",
		"layer", "application",
		"account_id", cmd.AccountID,
		"certificate_id", cmd.CertificateID,
	)

	account, err := u.Accounts.GetAccount(ctx, cmd.AccountID)
	if err != nil {
		return TransferCertificateResult{}, err
	}
	if !account.WalletLinked() {
		logger.Warn("transfer certificate rejected",
			"event", "transfer_certificate_wallet_not_linked",
			"module", "attestation/certificate-service",
			"layer", "application",
			"account_id", cmd.AccountID,
		)
		return TransferCertificateResult{}, domainerrors.ErrWalletNotLinked
	}
	owner := *account.Owner

	certificate, err := u.Certificates.GetCertificate(ctx, cmd.CertificateID)
	if err != nil {
		return TransferCertificateResult{}, err
	}
	if !certificate.RecipientMatches(owner) {
		logger.Warn("transfer certificate rejected",
			"event", "transfer_certificate_recipient_mismatch",
			"module", "attestation/certificate-service",
			"layer", "application",
			"account_id", cmd.AccountID,
			"certificate_id", cmd.CertificateID,
		)
		return TransferCertificateResult{}, domainerrors.ErrTransferUnauthorized
	}
	if !account.HoldsCertificate(certificate.CertificateID) {
		logger.Warn("transfer certificate rejected",
			"event", "transfer_certificate_not_registered",
			"module", "attestation/certificate-service",
			"layer", "application",
			"account_id", cmd.AccountID,
			"certificate_id", cmd.CertificateID,
		)
		return TransferCertificateResult{}, domainerrors.ErrTransferUnauthorized
	}

	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return TransferCertificateResult{}, err
	}
	event := ports.TransferredEvent{
		EventID:       eventID,
		EventType:     transferredEventType,
		CertificateID: certificate.CertificateID,
		AccountID:     account.AccountID,
		Destination:   string(owner),
		PartitionKey:  certificate.CertificateID,
		OccurredAt:    u.now(),
	}

	// Write boundary: custody update and audit outbox row commit together.
	if err := u.Certificates.DeliverCustodyWithAudit(ctx, certificate.CertificateID, owner, event); err != nil {
		logger.Error("transfer certificate failed on write transaction",
			"event", "transfer_certificate_write_failed",
			"module", "attestation/certificate-service",
			"layer", "application",
			"certificate_id", cmd.CertificateID,
			"error", err.Error(),
		)
		return TransferCertificateResult{}, err
	}
	certificate.Custodian = owner

	logger.Info("certificate transferred to wallet",
		"event", "certificate_transferred_to_wallet",
		"module", "attestation/certificate-service",
		"layer", "application",
		"certificate_id", certificate.CertificateID,
		"account_id", account.AccountID,
		"destination", string(owner),
	)

	return TransferCertificateResult{Certificate: certificate, Destination: owner}, nil
}

func (u TransferCertificateUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
