package entities

import (
	"net/url"
	"strings"
	"unicode/utf8"

	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
)

// Tier is a priced certificate template. It carries no identity and is
// immutable once constructed; minting snapshots its fields into a certificate.
type Tier struct {
	Name        string
	Description string
	ArtworkURL  string
	Price       uint64
}

func NewTier(name string, description string, artworkURL string, price uint64) Tier {
	return Tier{
		Name:        name,
		Description: description,
		ArtworkURL:  artworkURL,
		Price:       price,
	}
}

// TierFromBytes decodes raw byte columns into a tier. Every column must be
// valid UTF-8 and the artwork column must parse as a URL.
func TierFromBytes(nameBytes []byte, descriptionBytes []byte, artworkURLBytes []byte, price uint64) (Tier, error) {
	for _, column := range [][]byte{nameBytes, descriptionBytes, artworkURLBytes} {
		if !utf8.Valid(column) {
			return Tier{}, domainerrors.ErrTierEncoding
		}
	}
	artworkURL := string(artworkURLBytes)
	if _, err := url.Parse(artworkURL); err != nil {
		return Tier{}, domainerrors.ErrTierEncoding
	}
	return NewTier(string(nameBytes), string(descriptionBytes), artworkURL, price), nil
}

// DefaultPopchainTiers returns the canonical four-tier ladder. Order is part
// of the contract: callers index into it by tier level.
func DefaultPopchainTiers() []Tier {
	return []Tier{
		NewTier("PopPass", "General admission attestation", "https://cdn.popchain.io/tiers/pop-pass.png", 10_000_000),
		NewTier("PopBadge", "Supporter attestation", "https://cdn.popchain.io/tiers/pop-badge.png", 30_000_000),
		NewTier("PopMedal", "Patron attestation", "https://cdn.popchain.io/tiers/pop-medal.png", 50_000_000),
		NewTier("PopTrophy", "Founding patron attestation", "https://cdn.popchain.io/tiers/pop-trophy.png", 70_000_000),
	}
}

// NewTiersFromColumns zips four parallel columns into tiers index-wise.
// All columns must share one length; a mismatch rejects the whole batch.
func NewTiersFromColumns(names []string, descriptions []string, artworkURLs []string, prices []uint64) ([]Tier, error) {
	if len(descriptions) != len(names) ||
		len(artworkURLs) != len(names) ||
		len(prices) != len(names) {
		return nil, domainerrors.ErrTierColumnMismatch
	}
	tiers := make([]Tier, 0, len(names))
	for i := range names {
		tiers = append(tiers, NewTier(names[i], descriptions[i], artworkURLs[i], prices[i]))
	}
	return tiers, nil
}

// Validate reports whether the tier is usable as a mint template.
func (t Tier) Validate() error {
	if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.ArtworkURL) == "" {
		return domainerrors.ErrInvalidMintRequest
	}
	return nil
}
