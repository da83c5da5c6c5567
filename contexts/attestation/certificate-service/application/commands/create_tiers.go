package commands

import (
	"context"
	"log/slog"

	application "popchain/contexts/attestation/certificate-service/application"
	"popchain/contexts/attestation/certificate-service/domain/entities"
)

type DecodeTierCommand struct {
	NameBytes        []byte
	DescriptionBytes []byte
	ArtworkURLBytes  []byte
	Price            uint64
}

type DecodeTierResult struct {
	Tier entities.Tier
}

// DecodeTierUseCase builds a tier template from raw byte columns, the entry
// point used by ledger clients that submit unparsed payloads.
type DecodeTierUseCase struct {
	Logger *slog.Logger
}

func (u DecodeTierUseCase) Execute(_ context.Context, cmd DecodeTierCommand) (DecodeTierResult, error) {
	logger := application.ResolveLogger(u.Logger)
	tier, err := entities.TierFromBytes(cmd.NameBytes, cmd.DescriptionBytes, cmd.ArtworkURLBytes, cmd.Price)
	if err != nil {
		logger.Warn("tier decode rejected",
			"event", "decode_tier_rejected",
			"module", "attestation/certificate-service",
			"layer", "application",
			"error", err.Error(),
		)
		return DecodeTierResult{}, err
	}
	return DecodeTierResult{Tier: tier}, nil
}

type CreateTierBatchCommand struct {
	Names        []string
	Descriptions []string
	ArtworkURLs  []string
	Prices       []uint64
}

type CreateTierBatchResult struct {
	Tiers []entities.Tier
}

// CreateTierBatchUseCase zips parallel columns into tier templates. Column
// lengths are validated upfront so a mismatch is a checked rejection, not a
// bounds panic mid-batch.
type CreateTierBatchUseCase struct {
	Logger *slog.Logger
}

func (u CreateTierBatchUseCase) Execute(_ context.Context, cmd CreateTierBatchCommand) (CreateTierBatchResult, error) {
	logger := application.ResolveLogger(u.Logger)
	tiers, err := entities.NewTiersFromColumns(cmd.Names, cmd.Descriptions, cmd.ArtworkURLs, cmd.Prices)
	if err != nil {
		logger.Warn("tier batch rejected",
			"event", "create_tier_batch_rejected",
			"module", "attestation/certificate-service",
			"layer", "application",
			"names", len(cmd.Names),
			"descriptions", len(cmd.Descriptions),
			"artwork_urls", len(cmd.ArtworkURLs),
			"prices", len(cmd.Prices),
			"error", err.Error(),
		)
		return CreateTierBatchResult{}, err
	}

	logger.Info("tier batch created",
		"event", "create_tier_batch_created",
		"module", "attestation/certificate-service",
		"layer", "application",
		"count", len(tiers),
	)
	return CreateTierBatchResult{Tiers: tiers}, nil
}
