package httpadapter

import (
	"context"
	"log/slog"

	application "popchain/contexts/attestation/certificate-service/application"
	"popchain/contexts/attestation/certificate-service/application/commands"
	"popchain/contexts/attestation/certificate-service/application/queries"
	"popchain/contexts/attestation/certificate-service/domain/entities"
	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
	httptransport "popchain/contexts/attestation/certificate-service/transport/http"
)

type Handler struct {
	DecodeTier       commands.DecodeTierUseCase
	CreateTierBatch  commands.CreateTierBatchUseCase
	MintCertificate  commands.MintCertificateUseCase
	Transfer         commands.TransferCertificateUseCase
	GetCertificate   queries.GetCertificateUseCase
	ListCertificates queries.ListAccountCertificatesUseCase
	ListDefaultTiers queries.ListDefaultTiersUseCase
	Logger           *slog.Logger
}

// DecodeTierHandler godoc
// @Summary Decode a tier template from raw bytes
// @Description Builds a tier from base64 byte columns; all columns must decode to valid UTF-8 text.
// @Tags attestation
// @Accept json
// @Produce json
// @Param request body httptransport.DecodeTierRequest true "Tier byte columns"
// @Success 200 {object} httptransport.DecodeTierResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/tiers/decode [post]
func (h Handler) DecodeTierHandler(ctx context.Context, req httptransport.DecodeTierRequest) (httptransport.DecodeTierResponse, error) {
	result, err := h.DecodeTier.Execute(ctx, commands.DecodeTierCommand{
		NameBytes:        req.NameBytes,
		DescriptionBytes: req.DescriptionBytes,
		ArtworkURLBytes:  req.ArtworkURLBytes,
		Price:            req.Price,
	})
	if err != nil {
		return httptransport.DecodeTierResponse{}, err
	}
	return httptransport.DecodeTierResponse{Item: mapTier(result.Tier)}, nil
}

// CreateTierBatchHandler godoc
// @Summary Create tier templates from parallel columns
// @Description Zips name/description/artwork/price columns index-wise; columns must share one length.
// @Tags attestation
// @Accept json
// @Produce json
// @Param request body httptransport.CreateTierBatchRequest true "Tier columns"
// @Success 200 {object} httptransport.CreateTierBatchResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/tiers/batch [post]
func (h Handler) CreateTierBatchHandler(ctx context.Context, req httptransport.CreateTierBatchRequest) (httptransport.CreateTierBatchResponse, error) {
	result, err := h.CreateTierBatch.Execute(ctx, commands.CreateTierBatchCommand{
		Names:        req.Names,
		Descriptions: req.Descriptions,
		ArtworkURLs:  req.ArtworkURLs,
		Prices:       req.Prices,
	})
	if err != nil {
		return httptransport.CreateTierBatchResponse{}, err
	}
	return httptransport.CreateTierBatchResponse{Items: mapTiers(result.Tiers)}, nil
}

// ListDefaultTiersHandler godoc
// @Summary List the canonical popchain tier ladder
// @Description Returns the four default tiers in contractual order.
// @Tags attestation
// @Produce json
// @Success 200 {object} httptransport.ListDefaultTiersResponse
// @Router /v1/tiers/defaults [get]
func (h Handler) ListDefaultTiersHandler(ctx context.Context) (httptransport.ListDefaultTiersResponse, error) {
	result, err := h.ListDefaultTiers.Execute(ctx)
	if err != nil {
		return httptransport.ListDefaultTiersResponse{}, err
	}
	return httptransport.ListDefaultTiersResponse{Items: mapTiers(result.Tiers)}, nil
}

// MintCertificateHandler godoc
// @Summary Mint an attestation certificate
// @Description Issues a certificate for an event to an account; custody falls back to the service escrow wallet when the account has no linked wallet.
// @Tags attestation
// @Accept json
// @Produce json
// @Param request body httptransport.MintCertificateRequest true "Mint payload"
// @Success 200 {object} httptransport.MintCertificateResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/certificates/mint [post]
func (h Handler) MintCertificateHandler(ctx context.Context, req httptransport.MintCertificateRequest) (httptransport.MintCertificateResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("mint certificate request received",
		"event", "http_mint_certificate_received",
		"module", "attestation/certificate-service",
		"layer", "transport",
		"account_id", req.AccountID,
		"event_id", req.EventID,
	)

	tier, err := resolveTier(req)
	if err != nil {
		return httptransport.MintCertificateResponse{}, err
	}

	result, err := h.MintCertificate.Execute(ctx, commands.MintCertificateCommand{
		AccountID:   req.AccountID,
		EventID:     req.EventID,
		MetadataURL: req.MetadataURL,
		Tier:        tier,
		RequestID:   req.RequestID,
	})
	if err != nil {
		logger.Error("mint certificate request failed",
			"event", "http_mint_certificate_failed",
			"module", "attestation/certificate-service",
			"layer", "transport",
			"account_id", req.AccountID,
			"error", err.Error(),
		)
		return httptransport.MintCertificateResponse{}, err
	}
	return httptransport.MintCertificateResponse{
		CertificateID: result.Certificate.CertificateID,
		Item:          mapCertificate(result.Certificate),
		Replayed:      result.Replayed,
	}, nil
}

// TransferCertificateHandler godoc
// @Summary Transfer certificate custody to an account's wallet
// @Description Releases custody to the wallet linked to the account after ownership checks; the issued-to snapshot is left unchanged.
// @Tags attestation
// @Accept json
// @Produce json
// @Param certificate_id path string true "Certificate id"
// @Param request body httptransport.TransferCertificateRequest true "Transfer payload"
// @Success 200 {object} httptransport.TransferCertificateResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/certificates/{certificate_id}/transfer [post]
func (h Handler) TransferCertificateHandler(ctx context.Context, certificateID string, req httptransport.TransferCertificateRequest) (httptransport.TransferCertificateResponse, error) {
	result, err := h.Transfer.Execute(ctx, commands.TransferCertificateCommand{
		AccountID:     req.AccountID,
		CertificateID: certificateID,
	})
	if err != nil {
		return httptransport.TransferCertificateResponse{}, err
	}
	return httptransport.TransferCertificateResponse{
		CertificateID: result.Certificate.CertificateID,
		Destination:   string(result.Destination),
		IssuedTo:      result.Certificate.IssuedToAddress(),
	}, nil
}

// GetCertificateHandler godoc
// @Summary Get certificate details
// @Description Returns one certificate by id.
// @Tags attestation
// @Produce json
// @Param certificate_id path string true "Certificate id"
// @Success 200 {object} httptransport.GetCertificateResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/certificates/{certificate_id} [get]
func (h Handler) GetCertificateHandler(ctx context.Context, certificateID string) (httptransport.GetCertificateResponse, error) {
	result, err := h.GetCertificate.Execute(ctx, queries.GetCertificateQuery{CertificateID: certificateID})
	if err != nil {
		return httptransport.GetCertificateResponse{}, err
	}
	return httptransport.GetCertificateResponse{Item: mapCertificate(result.Certificate)}, nil
}

// ListAccountCertificatesHandler godoc
// @Summary List an account's certificates
// @Description Returns the account's certificates in mint order.
// @Tags attestation
// @Produce json
// @Param account_id path string true "Account id"
// @Success 200 {object} httptransport.ListAccountCertificatesResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/accounts/{account_id}/certificates [get]
func (h Handler) ListAccountCertificatesHandler(ctx context.Context, accountID string) (httptransport.ListAccountCertificatesResponse, error) {
	result, err := h.ListCertificates.Execute(ctx, queries.ListAccountCertificatesQuery{AccountID: accountID})
	if err != nil {
		return httptransport.ListAccountCertificatesResponse{}, err
	}
	owner := ""
	if result.Account.Owner != nil {
		owner = string(*result.Account.Owner)
	}
	return httptransport.ListAccountCertificatesResponse{
		AccountID: result.Account.AccountID,
		Owner:     owner,
		Items:     mapCertificates(result.Certificates),
	}, nil
}

func resolveTier(req httptransport.MintCertificateRequest) (entities.Tier, error) {
	if req.TierLevel != nil {
		ladder := entities.DefaultPopchainTiers()
		level := *req.TierLevel
		if level < 0 || level >= len(ladder) {
			return entities.Tier{}, domainerrors.ErrInvalidMintRequest
		}
		return ladder[level], nil
	}
	if req.Tier == nil {
		return entities.Tier{}, domainerrors.ErrInvalidMintRequest
	}
	return entities.NewTier(req.Tier.Name, req.Tier.Description, req.Tier.ArtworkURL, req.Tier.Price), nil
}

func mapTier(tier entities.Tier) httptransport.TierDTO {
	return httptransport.TierDTO{
		Name:        tier.Name,
		Description: tier.Description,
		ArtworkURL:  tier.ArtworkURL,
		Price:       tier.Price,
	}
}

func mapTiers(tiers []entities.Tier) []httptransport.TierDTO {
	items := make([]httptransport.TierDTO, 0, len(tiers))
	for _, tier := range tiers {
		items = append(items, mapTier(tier))
	}
	return items
}

func mapCertificate(certificate entities.Certificate) httptransport.CertificateDTO {
	return httptransport.CertificateDTO{
		CertificateID:  certificate.CertificateID,
		EventID:        certificate.EventID,
		TierName:       certificate.TierName,
		MetadataURL:    certificate.MetadataURL,
		TierArtworkURL: certificate.TierArtworkURL,
		IssuedTo:       certificate.IssuedToAddress(),
		IssuedAtMillis: certificate.IssuedAtMillis,
		MintPrice:      certificate.MintPrice,
		Custodian:      string(certificate.Custodian),
	}
}

func mapCertificates(certificates []entities.Certificate) []httptransport.CertificateDTO {
	items := make([]httptransport.CertificateDTO, 0, len(certificates))
	for _, certificate := range certificates {
		items = append(items, mapCertificate(certificate))
	}
	return items
}
