package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"popchain/contexts/attestation/certificate-service/domain/entities"
	domainerrors "popchain/contexts/attestation/certificate-service/domain/errors"
	"popchain/contexts/attestation/certificate-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

// Repository is the Postgres-backed ledger adapter. Certificates and the
// per-account certificate list live in their own tables; audit events are
// written to an outbox row in the same transaction as the state change.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{}, domainerrors.ErrAccountNotFound
		}
		return entities.Account{}, err
	}

	var listRows []accountCertificateModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("position ASC").
		Find(&listRows).
		Error; err != nil {
		return entities.Account{}, err
	}

	account := row.toEntity()
	account.CertificateIDs = make([]string, 0, len(listRows))
	for _, listRow := range listRows {
		account.CertificateIDs = append(account.CertificateIDs, listRow.CertificateID)
	}
	return account, nil
}

func (r *Repository) GetCertificate(ctx context.Context, certificateID string) (entities.Certificate, error) {
	var row certificateModel
	err := r.db.WithContext(ctx).
		Where("certificate_id = ?", certificateID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Certificate{}, domainerrors.ErrCertificateNotFound
		}
		return entities.Certificate{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCertificateByRequestID(ctx context.Context, requestID string) (entities.Certificate, bool, error) {
	var row certificateModel
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Certificate{}, false, nil
		}
		return entities.Certificate{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListAccountCertificates(ctx context.Context, accountID string) ([]entities.Certificate, error) {
	var rows []certificateModel
	err := r.db.WithContext(ctx).
		Joins("JOIN account_certificates ON account_certificates.certificate_id = certificates.certificate_id").
		Where("account_certificates.account_id = ?", accountID).
		Order("account_certificates.position ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Certificate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateCertificateWithAudit(
	ctx context.Context,
	certificate entities.Certificate,
	accountID string,
	requestID string,
	event ports.MintedEvent,
) error {
	envelope, err := buildMintedEnvelope(event)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account accountModel
		if err := tx.Where("account_id = ?", accountID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		row := certificateModelFromEntity(certificate, requestID)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				if constraintName(err) == "certificates_request_id_key" {
					return domainerrors.ErrDuplicateRequestID
				}
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return err
		}

		var position int64
		if err := tx.Model(&accountCertificateModel{}).
			Where("account_id = ?", accountID).
			Count(&position).
			Error; err != nil {
			return err
		}
		listRow := accountCertificateModel{
			AccountID:     accountID,
			Position:      int(position),
			CertificateID: certificate.CertificateID,
			CreatedAt:     event.OccurredAt.UTC(),
		}
		if err := tx.Create(&listRow).Error; err != nil {
			return err
		}

		outboxRow := outboxModel{
			OutboxID:     event.EventID,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      payload,
			Status:       outboxStatusPending,
			CreatedAt:    event.OccurredAt.UTC(),
		}
		return tx.Create(&outboxRow).Error
	})
}

func (r *Repository) DeliverCustodyWithAudit(
	ctx context.Context,
	certificateID string,
	destination entities.WalletAddress,
	event ports.TransferredEvent,
) error {
	envelope, err := buildTransferredEnvelope(event)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&certificateModel{}).
			Where("certificate_id = ?", certificateID).
			Updates(map[string]any{
				"custodian":  string(destination),
				"updated_at": event.OccurredAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrCertificateNotFound
		}

		outboxRow := outboxModel{
			OutboxID:     event.EventID,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      payload,
			Status:       outboxStatusPending,
			CreatedAt:    event.OccurredAt.UTC(),
		}
		return tx.Create(&outboxRow).Error
	})
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	sent := sentAt.UTC()
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": &sent,
		}).
		Error
}

type accountModel struct {
	AccountID    string    `gorm:"column:account_id;primaryKey"`
	OwnerAddress string    `gorm:"column:owner_address"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string {
	return "accounts"
}

func (m accountModel) toEntity() entities.Account {
	account := entities.Account{AccountID: m.AccountID}
	if m.OwnerAddress != "" {
		owner := entities.WalletAddress(m.OwnerAddress)
		account.Owner = &owner
	}
	return account
}

type accountCertificateModel struct {
	AccountID     string    `gorm:"column:account_id;primaryKey"`
	Position      int       `gorm:"column:position;primaryKey"`
	CertificateID string    `gorm:"column:certificate_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (accountCertificateModel) TableName() string {
	return "account_certificates"
}

type certificateModel struct {
	CertificateID  string    `gorm:"column:certificate_id;primaryKey"`
	EventID        string    `gorm:"column:event_id"`
	TierName       string    `gorm:"column:tier_name"`
	MetadataURL    string    `gorm:"column:metadata_url"`
	TierArtworkURL string    `gorm:"column:tier_artwork_url"`
	IssuedTo       string    `gorm:"column:issued_to"`
	IssuedAtMillis int64     `gorm:"column:issued_at_ms"`
	MintPrice      uint64    `gorm:"column:mint_price"`
	Custodian      string    `gorm:"column:custodian"`
	RequestID      string    `gorm:"column:request_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (certificateModel) TableName() string {
	return "certificates"
}

func certificateModelFromEntity(certificate entities.Certificate, requestID string) certificateModel {
	issuedAt := time.UnixMilli(certificate.IssuedAtMillis).UTC()
	return certificateModel{
		CertificateID:  certificate.CertificateID,
		EventID:        certificate.EventID,
		TierName:       certificate.TierName,
		MetadataURL:    certificate.MetadataURL,
		TierArtworkURL: certificate.TierArtworkURL,
		IssuedTo:       certificate.IssuedToAddress(),
		IssuedAtMillis: certificate.IssuedAtMillis,
		MintPrice:      certificate.MintPrice,
		Custodian:      string(certificate.Custodian),
		RequestID:      requestID,
		CreatedAt:      issuedAt,
		UpdatedAt:      issuedAt,
	}
}

func (m certificateModel) toEntity() entities.Certificate {
	certificate := entities.Certificate{
		CertificateID:  m.CertificateID,
		EventID:        m.EventID,
		TierName:       m.TierName,
		MetadataURL:    m.MetadataURL,
		TierArtworkURL: m.TierArtworkURL,
		IssuedAtMillis: m.IssuedAtMillis,
		MintPrice:      m.MintPrice,
		Custodian:      entities.WalletAddress(m.Custodian),
	}
	if m.IssuedTo != "" {
		issuedTo := entities.WalletAddress(m.IssuedTo)
		certificate.IssuedTo = &issuedTo
	}
	return certificate
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "attestation_audit_outbox"
}

func (m outboxModel) toPort() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      append([]byte(nil), m.Payload...),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func buildMintedEnvelope(event ports.MintedEvent) (ports.EventEnvelope, error) {
	data, err := json.Marshal(map[string]string{
		"certificate_id": event.CertificateID,
		"event_id":       event.AttestedEvent,
		"tier_name":      event.TierName,
		"issued_to":      event.IssuedTo,
		"issued_at_ms":   strconv.FormatInt(event.IssuedAtMillis, 10),
		"mint_price":     strconv.FormatUint(event.MintPrice, 10),
	})
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          event.EventID,
		EventType:        event.EventType,
		OccurredAt:       event.OccurredAt.UTC(),
		SourceService:    "certificate-service",
		SchemaVersion:    1,
		PartitionKeyPath: "certificate_id",
		PartitionKey:     event.PartitionKey,
		Data:             data,
	}, nil
}

func buildTransferredEnvelope(event ports.TransferredEvent) (ports.EventEnvelope, error) {
	data, err := json.Marshal(map[string]string{
		"certificate_id": event.CertificateID,
		"account_id":     event.AccountID,
		"destination":    event.Destination,
	})
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          event.EventID,
		EventType:        event.EventType,
		OccurredAt:       event.OccurredAt.UTC(),
		SourceService:    "certificate-service",
		SchemaVersion:    1,
		PartitionKeyPath: "certificate_id",
		PartitionKey:     event.PartitionKey,
		Data:             data,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
