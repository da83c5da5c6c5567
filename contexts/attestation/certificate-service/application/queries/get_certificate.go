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

type GetCertificateQuery struct {
	CertificateID string
}

type GetCertificateResult struct {
	Certificate entities.Certificate
}

type GetCertificateUseCase struct {
	Certificates ports.CertificateRepository
	Logger       *slog.Logger
}

func (u GetCertificateUseCase) Execute(ctx context.Context, query GetCertificateQuery) (GetCertificateResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(query.CertificateID) == "" {
		return GetCertificateResult{}, domainerrors.ErrCertificateNotFound
	}
	certificate, err := u.Certificates.GetCertificate(ctx, query.CertificateID)
	if err != nil {
		logger.Warn("get certificate failed",
			"event", "get_certificate_failed",
			"module", "attestation/certificate-service",
			"layer", "application",
			"certificate_id", query.CertificateID,
			"error", err.Error(),
		)
		return GetCertificateResult{}, err
	}
	return GetCertificateResult{Certificate: certificate}, nil
}
