package queries

import (
	"context"

	"popchain/contexts/attestation/certificate-service/domain/entities"
)

type ListDefaultTiersResult struct {
	Tiers []entities.Tier
}

// ListDefaultTiersUseCase exposes the canonical tier ladder in its
// contractual order.
type ListDefaultTiersUseCase struct{}

func (ListDefaultTiersUseCase) Execute(_ context.Context) (ListDefaultTiersResult, error) {
	return ListDefaultTiersResult{Tiers: entities.DefaultPopchainTiers()}, nil
}
