package entities

import (
	"strings"

	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
)

// Certificate is an issued, uniquely identified attestation bound to one
// event and one tier snapshot. Every field except Custodian is frozen at
// mint time. IssuedTo records the originally intended recipient (nil when
// the account had no wallet yet) and is never rewritten by later custody
// transfers; current custody lives in Custodian only.
type Certificate struct {
	CertificateID  string
	EventID        string
	TierName       string
	MetadataURL    string
	TierArtworkURL string
	IssuedTo       *WalletAddress
	IssuedAtMillis int64
	MintPrice      uint64
	Custodian      WalletAddress
}

func NewCertificate(
	certificateID string,
	eventID string,
	metadataURL string,
	tier Tier,
	issuedTo *WalletAddress,
	issuedAtMillis int64,
	custodian WalletAddress,
) (Certificate, error) {
	if strings.TrimSpace(certificateID) == "" ||
		strings.TrimSpace(eventID) == "" ||
		strings.TrimSpace(metadataURL) == "" {
		return Certificate{}, domainerrors.ErrInvalidMintRequest
	}
	if err := tier.Validate(); err != nil {
		return Certificate{}, err
	}
	if custodian == "" {
		return Certificate{}, domainerrors.ErrInvalidMintRequest
	}
	return Certificate{
		CertificateID:  certificateID,
		EventID:        eventID,
		TierName:       tier.Name,
		MetadataURL:    metadataURL,
		TierArtworkURL: tier.ArtworkURL,
		IssuedTo:       issuedTo,
		IssuedAtMillis: issuedAtMillis,
		MintPrice:      tier.Price,
		Custodian:      custodian,
	}, nil
}

// RecipientMatches reports whether the certificate may be released to the
// given wallet: either it was escrowed (no recorded recipient) or the
// recorded recipient is exactly this wallet.
func (c Certificate) RecipientMatches(owner WalletAddress) bool {
	return c.IssuedTo == nil || *c.IssuedTo == owner
}

// IssuedToAddress renders the recipient snapshot for wire and storage edges,
// empty when the account was unlinked at mint time.
func (c Certificate) IssuedToAddress() string {
	if c.IssuedTo == nil {
		return ""
	}
	return string(*c.IssuedTo)
}
