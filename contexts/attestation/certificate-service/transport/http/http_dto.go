package httptransport

type TierDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ArtworkURL  string `json:"artwork_url"`
	Price       uint64 `json:"price"`
}

// DecodeTierRequest carries raw byte columns; JSON renders []byte as base64.
type DecodeTierRequest struct {
	NameBytes        []byte `json:"name_bytes"`
	DescriptionBytes []byte `json:"description_bytes"`
	ArtworkURLBytes  []byte `json:"artwork_url_bytes"`
	Price            uint64 `json:"price"`
}

type DecodeTierResponse struct {
	Item TierDTO `json:"item"`
}

type CreateTierBatchRequest struct {
	Names        []string `json:"names"`
	Descriptions []string `json:"descriptions"`
	ArtworkURLs  []string `json:"artwork_urls"`
	Prices       []uint64 `json:"prices"`
}

type CreateTierBatchResponse struct {
	Items []TierDTO `json:"items"`
}

type ListDefaultTiersResponse struct {
	Items []TierDTO `json:"items"`
}

type TierInputDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ArtworkURL  string `json:"artwork_url"`
	Price       uint64 `json:"price"`
}

type MintCertificateRequest struct {
	AccountID   string        `json:"account_id"`
	EventID     string        `json:"event_id"`
	MetadataURL string        `json:"metadata_url"`
	Tier        *TierInputDTO `json:"tier,omitempty"`
	TierLevel   *int          `json:"tier_level,omitempty"`
	RequestID   string        `json:"request_id"`
}

type CertificateDTO struct {
	CertificateID  string `json:"certificate_id"`
	EventID        string `json:"event_id"`
	TierName       string `json:"tier_name"`
	MetadataURL    string `json:"metadata_url"`
	TierArtworkURL string `json:"tier_artwork_url"`
	IssuedTo       string `json:"issued_to,omitempty"`
	IssuedAtMillis int64  `json:"issued_at_ms"`
	MintPrice      uint64 `json:"mint_price"`
	Custodian      string `json:"custodian"`
}

type MintCertificateResponse struct {
	CertificateID string         `json:"certificate_id"`
	Item          CertificateDTO `json:"item"`
	Replayed      bool           `json:"replayed,omitempty"`
}

type TransferCertificateRequest struct {
	AccountID string `json:"account_id"`
}

type TransferCertificateResponse struct {
	CertificateID string `json:"certificate_id"`
	Destination   string `json:"destination"`
	IssuedTo      string `json:"issued_to,omitempty"`
}

type GetCertificateResponse struct {
	Item CertificateDTO `json:"item"`
}

type ListAccountCertificatesResponse struct {
	AccountID string           `json:"account_id"`
	Owner     string           `json:"owner,omitempty"`
	Items     []CertificateDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
