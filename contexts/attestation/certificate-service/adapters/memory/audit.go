package memory

import (
	"encoding/json"
	"strconv"

	"popchain/contexts/attestation/certificate-service/ports"
)

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
