package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	certificateservice "popchain/contexts/attestation/certificate-service"
	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
	attestationhttp "popchain/contexts/attestation/certificate-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "popchain/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	attestation certificateservice.Module
}

func New(
	attestation certificateservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		attestation: attestation,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/tiers/decode", s.handleDecodeTier)
	s.mux.HandleFunc("POST /v1/tiers/batch", s.handleCreateTierBatch)
	s.mux.HandleFunc("GET /v1/tiers/defaults", s.handleListDefaultTiers)
	s.mux.HandleFunc("POST /v1/certificates/mint", s.handleMintCertificate)
	s.mux.HandleFunc("POST /v1/certificates/{certificate_id}/transfer", s.handleTransferCertificate)
	s.mux.HandleFunc("GET /v1/certificates/{certificate_id}", s.handleGetCertificate)
	s.mux.HandleFunc("GET /v1/accounts/{account_id}/certificates", s.handleListAccountCertificates)
}

func (s *Server) handleDecodeTier(w http.ResponseWriter, r *http.Request) {
	var req attestationhttp.DecodeTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAttestationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.attestation.Handler.DecodeTierHandler(r.Context(), req)
	if err != nil {
		writeAttestationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTierBatch(w http.ResponseWriter, r *http.Request) {
	var req attestationhttp.CreateTierBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAttestationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.attestation.Handler.CreateTierBatchHandler(r.Context(), req)
	if err != nil {
		writeAttestationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDefaultTiers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.attestation.Handler.ListDefaultTiersHandler(r.Context())
	if err != nil {
		writeAttestationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMintCertificate(w http.ResponseWriter, r *http.Request) {
	var req attestationhttp.MintCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAttestationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.attestation.Handler.MintCertificateHandler(r.Context(), req)
	if err != nil {
		writeAttestationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferCertificate(w http.ResponseWriter, r *http.Request) {
	var req attestationhttp.TransferCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAttestationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	certificateID := r.PathValue("certificate_id")
	resp, err := s.attestation.Handler.TransferCertificateHandler(r.Context(), certificateID, req)
	if err != nil {
		writeAttestationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCertificate(w http.ResponseWriter, r *http.Request) {
	certificateID := r.PathValue("certificate_id")
	resp, err := s.attestation.Handler.GetCertificateHandler(r.Context(), certificateID)
	if err != nil {
		writeAttestationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAccountCertificates(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	resp, err := s.attestation.Handler.ListAccountCertificatesHandler(r.Context(), accountID)
	if err != nil {
		writeAttestationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAttestationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrAccountNotFound):
		writeAttestationError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrCertificateNotFound):
		writeAttestationError(w, http.StatusNotFound, "certificate_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrWalletNotLinked):
		writeAttestationError(w, http.StatusBadRequest, "invalid_address", err.Error())
	case errors.Is(err, domainerrors.ErrTransferUnauthorized):
		writeAttestationError(w, http.StatusForbidden, "unauthorized_transfer", err.Error())
	case errors.Is(err, domainerrors.ErrTierColumnMismatch):
		writeAttestationError(w, http.StatusBadRequest, "tier_column_mismatch", err.Error())
	case errors.Is(err, domainerrors.ErrTierEncoding):
		writeAttestationError(w, http.StatusBadRequest, "tier_encoding_failure", err.Error())
	case errors.Is(err, domainerrors.ErrDuplicateRequestID):
		writeAttestationError(w, http.StatusConflict, "duplicate_request_id", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidMintRequest):
		writeAttestationError(w, http.StatusBadRequest, "invalid_mint_request", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidTransferRequest):
		writeAttestationError(w, http.StatusBadRequest, "invalid_transfer_request", err.Error())
	default:
		writeAttestationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAttestationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, attestationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
