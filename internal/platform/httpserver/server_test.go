package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	certificateservice "popchain/contexts/attestation/certificate-service"
	"popchain/contexts/attestation/certificate-service/domain/entities"
	attestationhttp "popchain/contexts/attestation/certificate-service/transport/http"
)

func newTestServer(t *testing.T, seedAccounts []entities.Account) *Server {
	t.Helper()
	module := certificateservice.NewInMemoryModule(seedAccounts, "0xFEED", nil)
	return New(module, nil, "")
}

func doJSON(t *testing.T, handler http.Handler, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("request marshal failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response decode failed: %v (%s)", err, rec.Body.String())
	}
	return out
}

func linkedAccount(accountID string, address string) entities.Account {
	owner := entities.WalletAddress(address)
	return entities.Account{AccountID: accountID, Owner: &owner}
}

func TestListDefaultTiersRoute(t *testing.T) {
	server := newTestServer(t, nil)

	rec := doJSON(t, server.Handler(), http.MethodGet, "/v1/tiers/defaults", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[attestationhttp.ListDefaultTiersResponse](t, rec)
	if len(resp.Items) != 4 {
		t.Fatalf("expected 4 default tiers, got %d", len(resp.Items))
	}
	if resp.Items[1].Name != "PopBadge" || resp.Items[1].Price != 30_000_000 {
		t.Fatalf("tier ladder order broken: %+v", resp.Items[1])
	}
}

func TestCreateTierBatchRouteRejectsMismatchedColumns(t *testing.T) {
	server := newTestServer(t, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/tiers/batch", attestationhttp.CreateTierBatchRequest{
		Names:        []string{"A", "B"},
		Descriptions: []string{"only one"},
		ArtworkURLs:  []string{"https://cdn.example/a.png", "https://cdn.example/b.png"},
		Prices:       []uint64{1, 2},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody[attestationhttp.ErrorResponse](t, rec)
	if resp.Code != "tier_column_mismatch" {
		t.Fatalf("unexpected error code %s", resp.Code)
	}
}

func TestDecodeTierRouteRejectsInvalidEncoding(t *testing.T) {
	server := newTestServer(t, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/tiers/decode", attestationhttp.DecodeTierRequest{
		NameBytes:        []byte{0xff, 0xfe},
		DescriptionBytes: []byte("desc"),
		ArtworkURLBytes:  []byte("https://cdn.example/a.png"),
		Price:            1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody[attestationhttp.ErrorResponse](t, rec)
	if resp.Code != "tier_encoding_failure" {
		t.Fatalf("unexpected error code %s", resp.Code)
	}
}

func TestMintAndListRoutes(t *testing.T) {
	server := newTestServer(t, []entities.Account{linkedAccount("acct-1", "0xABC")})
	level := 1

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/certificates/mint", attestationhttp.MintCertificateRequest{
		AccountID:   "acct-1",
		EventID:     "E1",
		MetadataURL: "https://meta.example/e1",
		TierLevel:   &level,
		RequestID:   "req-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	minted := decodeBody[attestationhttp.MintCertificateResponse](t, rec)
	if minted.Item.TierName != "PopBadge" || minted.Item.MintPrice != 30_000_000 {
		t.Fatalf("mint projection wrong: %+v", minted.Item)
	}
	if minted.Item.Custodian != "0xABC" || minted.Item.IssuedTo != "0xABC" {
		t.Fatalf("custody/recipient wrong: %+v", minted.Item)
	}

	rec = doJSON(t, server.Handler(), http.MethodGet, "/v1/certificates/"+minted.CertificateID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", rec.Code)
	}
	got := decodeBody[attestationhttp.GetCertificateResponse](t, rec)
	if got.Item.CertificateID != minted.CertificateID || got.Item.EventID != "E1" {
		t.Fatalf("get projection wrong: %+v", got.Item)
	}

	rec = doJSON(t, server.Handler(), http.MethodGet, "/v1/accounts/acct-1/certificates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on list, got %d", rec.Code)
	}
	list := decodeBody[attestationhttp.ListAccountCertificatesResponse](t, rec)
	if list.Owner != "0xABC" || len(list.Items) != 1 || list.Items[0].CertificateID != minted.CertificateID {
		t.Fatalf("list projection wrong: %+v", list)
	}
}

func TestMintRouteRejectsUnknownTierLevel(t *testing.T) {
	server := newTestServer(t, []entities.Account{linkedAccount("acct-1", "0xABC")})
	level := 9

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/certificates/mint", attestationhttp.MintCertificateRequest{
		AccountID:   "acct-1",
		EventID:     "E1",
		MetadataURL: "https://meta.example/e1",
		TierLevel:   &level,
		RequestID:   "req-1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody[attestationhttp.ErrorResponse](t, rec)
	if resp.Code != "invalid_mint_request" {
		t.Fatalf("unexpected error code %s", resp.Code)
	}
}

func TestMintRouteUnknownAccountIs404(t *testing.T) {
	server := newTestServer(t, nil)
	level := 0

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/certificates/mint", attestationhttp.MintCertificateRequest{
		AccountID:   "missing",
		EventID:     "E1",
		MetadataURL: "https://meta.example/e1",
		TierLevel:   &level,
		RequestID:   "req-1",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decodeBody[attestationhttp.ErrorResponse](t, rec)
	if resp.Code != "account_not_found" {
		t.Fatalf("unexpected error code %s", resp.Code)
	}
}

func TestTransferRouteEndToEnd(t *testing.T) {
	server := newTestServer(t, []entities.Account{linkedAccount("acct-1", "0xABC")})
	level := 0

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/certificates/mint", attestationhttp.MintCertificateRequest{
		AccountID:   "acct-1",
		EventID:     "E1",
		MetadataURL: "https://meta.example/e1",
		TierLevel:   &level,
		RequestID:   "req-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("mint failed: %d %s", rec.Code, rec.Body.String())
	}
	minted := decodeBody[attestationhttp.MintCertificateResponse](t, rec)

	rec = doJSON(t, server.Handler(), http.MethodPost, "/v1/certificates/"+minted.CertificateID+"/transfer", attestationhttp.TransferCertificateRequest{
		AccountID: "acct-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on transfer, got %d: %s", rec.Code, rec.Body.String())
	}
	transferred := decodeBody[attestationhttp.TransferCertificateResponse](t, rec)
	if transferred.Destination != "0xABC" || transferred.IssuedTo != "0xABC" {
		t.Fatalf("transfer projection wrong: %+v", transferred)
	}
}

func TestTransferRouteErrorMapping(t *testing.T) {
	server := newTestServer(t, []entities.Account{
		{AccountID: "acct-unlinked"},
		linkedAccount("acct-1", "0xABC"),
	})

	// Unlinked wallet maps to 400 before any certificate lookup.
	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/certificates/whatever/transfer", attestationhttp.TransferCertificateRequest{
		AccountID: "acct-unlinked",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unlinked wallet, got %d", rec.Code)
	}
	if resp := decodeBody[attestationhttp.ErrorResponse](t, rec); resp.Code != "invalid_address" {
		t.Fatalf("unexpected error code %s", resp.Code)
	}

	// Linked wallet but unknown certificate maps to 404.
	rec = doJSON(t, server.Handler(), http.MethodPost, "/v1/certificates/missing/transfer", attestationhttp.TransferCertificateRequest{
		AccountID: "acct-1",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown certificate, got %d", rec.Code)
	}
	if resp := decodeBody[attestationhttp.ErrorResponse](t, rec); resp.Code != "certificate_not_found" {
		t.Fatalf("unexpected error code %s", resp.Code)
	}
}

func TestTransferRouteForeignAccountIs403(t *testing.T) {
	server := newTestServer(t, []entities.Account{
		linkedAccount("acct-1", "0xABC"),
		linkedAccount("acct-2", "0xDEF"),
	})
	level := 0

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/certificates/mint", attestationhttp.MintCertificateRequest{
		AccountID:   "acct-1",
		EventID:     "E1",
		MetadataURL: "https://meta.example/e1",
		TierLevel:   &level,
		RequestID:   "req-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("mint failed: %d", rec.Code)
	}
	minted := decodeBody[attestationhttp.MintCertificateResponse](t, rec)

	rec = doJSON(t, server.Handler(), http.MethodPost, "/v1/certificates/"+minted.CertificateID+"/transfer", attestationhttp.TransferCertificateRequest{
		AccountID: "acct-2",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if resp := decodeBody[attestationhttp.ErrorResponse](t, rec); resp.Code != "unauthorized_transfer" {
		t.Fatalf("unexpected error code %s", resp.Code)
	}
}

func TestMintRouteRejectsMalformedJSON(t *testing.T) {
	server := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/certificates/mint", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeBody[attestationhttp.ErrorResponse](t, rec); resp.Code != "invalid_json" {
		t.Fatalf("unexpected error code %s", resp.Code)
	}
}
