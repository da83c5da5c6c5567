package entities

import (
	"errors"
	"testing"

	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
)

func TestNewCertificateSnapshotsTier(t *testing.T) {
	tier := DefaultPopchainTiers()[1]
	owner := WalletAddress("0xABC")

	certificate, err := NewCertificate("C1", "E1", "https://meta.example/c1", tier, &owner, 1700000000000, owner)
	if err != nil {
		t.Fatalf("mint inputs should be valid: %v", err)
	}
	if certificate.TierName != "PopBadge" {
		t.Fatalf("expected tier name snapshot PopBadge, got %s", certificate.TierName)
	}
	if certificate.MintPrice != 30_000_000 {
		t.Fatalf("expected mint price snapshot 30000000, got %d", certificate.MintPrice)
	}
	if certificate.TierArtworkURL != tier.ArtworkURL {
		t.Fatalf("expected artwork snapshot %s, got %s", tier.ArtworkURL, certificate.TierArtworkURL)
	}
}

func TestNewCertificateRejectsMissingFields(t *testing.T) {
	tier := DefaultPopchainTiers()[0]
	owner := WalletAddress("0xABC")

	_, err := NewCertificate("", "E1", "https://meta.example/c1", tier, &owner, 1, owner)
	if !errors.Is(err, domainerrors.ErrInvalidMintRequest) {
		t.Fatalf("expected invalid mint request for empty id, got %v", err)
	}
	_, err = NewCertificate("C1", "E1", "https://meta.example/c1", Tier{}, &owner, 1, owner)
	if !errors.Is(err, domainerrors.ErrInvalidMintRequest) {
		t.Fatalf("expected invalid mint request for empty tier, got %v", err)
	}
	_, err = NewCertificate("C1", "E1", "https://meta.example/c1", tier, &owner, 1, "")
	if !errors.Is(err, domainerrors.ErrInvalidMintRequest) {
		t.Fatalf("expected invalid mint request for empty custodian, got %v", err)
	}
}

func TestRecipientMatches(t *testing.T) {
	owner := WalletAddress("0xABC")
	other := WalletAddress("0xDEF")

	escrowed := Certificate{IssuedTo: nil}
	if !escrowed.RecipientMatches(owner) {
		t.Fatalf("escrowed certificate should match any wallet")
	}

	issued := Certificate{IssuedTo: &owner}
	if !issued.RecipientMatches(owner) {
		t.Fatalf("recorded recipient should match its own wallet")
	}
	if issued.RecipientMatches(other) {
		t.Fatalf("recorded recipient must not match a different wallet")
	}
}

func TestHoldsCertificateScansInOrder(t *testing.T) {
	account := Account{
		AccountID:      "acct-1",
		CertificateIDs: []string{"C1", "C2"},
	}
	if !account.HoldsCertificate("C2") {
		t.Fatalf("expected account to hold C2")
	}
	if account.HoldsCertificate("C3") {
		t.Fatalf("account must not report certificates it does not hold")
	}
}
