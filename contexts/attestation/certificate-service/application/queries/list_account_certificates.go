package queries

import (
	"context"
	"log/slog"
	"strings"

	application "popchain/contexts/attestation/certificate-service/application"
	"popchain/contexts/attestation/certificate-service/domain/entities"
	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
	"popchain/contexts/attestation/certificate-service/ports"
)

type ListAccountCertificatesQuery struct {
	AccountID string
}

type ListAccountCertificatesResult struct {
	Account      entities.Account
	Certificates []entities.Certificate
}

// ListAccountCertificatesUseCase projects an account's certificates in the
// order they were minted.
type ListAccountCertificatesUseCase struct {
	Accounts     ports.AccountRepository
	Certificates ports.CertificateRepository
	Logger       *slog.Logger
}

func (u ListAccountCertificatesUseCase) Execute(ctx context.Context, query ListAccountCertificatesQuery) (ListAccountCertificatesResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(query.AccountID) == "" {
		return ListAccountCertificatesResult{}, domainerrors.ErrAccountNotFound
	}
	account, err := u.Accounts.GetAccount(ctx, query.AccountID)
	if err != nil {
		return ListAccountCertificatesResult{}, err
	}
	certificates, err := u.Certificates.ListAccountCertificates(ctx, query.AccountID)
	if err != nil {
		logger.Error("list account certificates failed",
			"event", "list_account_certificates_failed",
			"module", "attestation/certificate-service",
			"layer", "application",
			"account_id", query.AccountID,
			"error", err.Error(),
		)
		return ListAccountCertificatesResult{}, err
	}
	return ListAccountCertificatesResult{Account: account, Certificates: certificates}, nil
}
