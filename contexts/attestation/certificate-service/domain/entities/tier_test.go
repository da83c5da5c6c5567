package entities

import (
	"errors"
	"testing"

	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
)

func TestDefaultPopchainTiersLadder(t *testing.T) {
	tiers := DefaultPopchainTiers()
	if len(tiers) != 4 {
		t.Fatalf("expected 4 default tiers, got %d", len(tiers))
	}

	expected := []struct {
		name  string
		price uint64
	}{
		{"PopPass", 10_000_000},
		{"PopBadge", 30_000_000},
		{"PopMedal", 50_000_000},
		{"PopTrophy", 70_000_000},
	}
	for i, want := range expected {
		if tiers[i].Name != want.name {
			t.Fatalf("tier %d: expected name %s, got %s", i, want.name, tiers[i].Name)
		}
		if tiers[i].Price != want.price {
			t.Fatalf("tier %d: expected price %d, got %d", i, want.price, tiers[i].Price)
		}
		if tiers[i].Description == "" || tiers[i].ArtworkURL == "" {
			t.Fatalf("tier %d: description and artwork url must be set", i)
		}
	}
}

func TestNewTiersFromColumnsZipsIndexWise(t *testing.T) {
	names := []string{"Bronze", "Silver", "Gold"}
	descriptions := []string{"b", "s", "g"}
	urls := []string{"https://cdn.example/b.png", "https://cdn.example/s.png", "https://cdn.example/g.png"}
	prices := []uint64{1, 2, 3}

	tiers, err := NewTiersFromColumns(names, descriptions, urls, prices)
	if err != nil {
		t.Fatalf("equal-length columns should zip: %v", err)
	}
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(tiers))
	}
	for i := range tiers {
		if tiers[i].Name != names[i] ||
			tiers[i].Description != descriptions[i] ||
			tiers[i].ArtworkURL != urls[i] ||
			tiers[i].Price != prices[i] {
			t.Fatalf("tier %d fields do not match inputs: %+v", i, tiers[i])
		}
	}
}

func TestNewTiersFromColumnsRejectsMismatchedLengths(t *testing.T) {
	_, err := NewTiersFromColumns(
		[]string{"Bronze", "Silver"},
		[]string{"b"},
		[]string{"https://cdn.example/b.png", "https://cdn.example/s.png"},
		[]uint64{1, 2},
	)
	if !errors.Is(err, domainerrors.ErrTierColumnMismatch) {
		t.Fatalf("expected column mismatch, got %v", err)
	}
}

func TestNewTiersFromColumnsEmptyColumns(t *testing.T) {
	tiers, err := NewTiersFromColumns(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("empty columns of equal length should zip: %v", err)
	}
	if len(tiers) != 0 {
		t.Fatalf("expected no tiers, got %d", len(tiers))
	}
}

func TestTierFromBytesDecodesValidColumns(t *testing.T) {
	tier, err := TierFromBytes(
		[]byte("PopPass"),
		[]byte("General admission attestation"),
		[]byte("https://cdn.example/pass.png"),
		10_000_000,
	)
	if err != nil {
		t.Fatalf("valid byte columns should decode: %v", err)
	}
	if tier.Name != "PopPass" || tier.Price != 10_000_000 {
		t.Fatalf("decoded tier fields wrong: %+v", tier)
	}
}

func TestTierFromBytesRejectsInvalidEncoding(t *testing.T) {
	invalid := []byte{0xff, 0xfe, 0xfd}

	for _, columns := range [][3][]byte{
		{invalid, []byte("d"), []byte("https://cdn.example/a.png")},
		{[]byte("n"), invalid, []byte("https://cdn.example/a.png")},
		{[]byte("n"), []byte("d"), invalid},
	} {
		_, err := TierFromBytes(columns[0], columns[1], columns[2], 1)
		if !errors.Is(err, domainerrors.ErrTierEncoding) {
			t.Fatalf("expected encoding failure, got %v", err)
		}
	}
}
