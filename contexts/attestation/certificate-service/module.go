package certificateservice

import (
	"log/slog"

	httpadapter "popchain/contexts/attestation/certificate-service/adapters/http"
	"popchain/contexts/attestation/certificate-service/adapters/memory"
	"popchain/contexts/attestation/certificate-service/application/commands"
	"popchain/contexts/attestation/certificate-service/application/queries"
	"popchain/contexts/attestation/certificate-service/domain/entities"
	"popchain/contexts/attestation/certificate-service/ports"
)

// Module is the composition surface for the attestation certificate service.
// Runtime wiring should consume Handler; Store is exposed for tests/inspection.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Accounts      ports.AccountRepository
	Certificates  ports.CertificateRepository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	ServiceWallet entities.WalletAddress
	Logger        *slog.Logger
}

// NewModule wires the certificate-service use cases against explicit ports.
func NewModule(deps Dependencies) Module {
	decodeTier := commands.DecodeTierUseCase{
		Logger: deps.Logger,
	}
	createTierBatch := commands.CreateTierBatchUseCase{
		Logger: deps.Logger,
	}
	mintCertificate := commands.MintCertificateUseCase{
		Accounts:      deps.Accounts,
		Certificates:  deps.Certificates,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		ServiceWallet: deps.ServiceWallet,
		Logger:        deps.Logger,
	}
	transfer := commands.TransferCertificateUseCase{
		Accounts:     deps.Accounts,
		Certificates: deps.Certificates,
		Clock:        deps.Clock,
		IDGenerator:  deps.IDGenerator,
		Logger:       deps.Logger,
	}
	getCertificate := queries.GetCertificateUseCase{
		Certificates: deps.Certificates,
		Logger:       deps.Logger,
	}
	listCertificates := queries.ListAccountCertificatesUseCase{
		Accounts:     deps.Accounts,
		Certificates: deps.Certificates,
		Logger:       deps.Logger,
	}

	handler := httpadapter.Handler{
		DecodeTier:       decodeTier,
		CreateTierBatch:  createTierBatch,
		MintCertificate:  mintCertificate,
		Transfer:         transfer,
		GetCertificate:   getCertificate,
		ListCertificates: listCertificates,
		ListDefaultTiers: queries.ListDefaultTiersUseCase{},
		Logger:           deps.Logger,
	}

	return Module{Handler: handler}
}

// NewInMemoryModule wires the service against in-memory adapters, the
// developer/runtime bootstrap path when no Postgres DSN is configured.
func NewInMemoryModule(seedAccounts []entities.Account, serviceWallet entities.WalletAddress, logger *slog.Logger) Module {
	store := memory.NewStore(seedAccounts, logger)
	module := NewModule(Dependencies{
		Accounts:      store,
		Certificates:  store,
		Clock:         store,
		IDGenerator:   store,
		ServiceWallet: serviceWallet,
		Logger:        logger,
	})
	module.Store = store
	return module
}
