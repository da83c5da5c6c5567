package entities

// WalletAddress identifies a custody destination on the host ledger.
type WalletAddress string

// Account is the projection of the external account module this service
// consumes: a wallet link (absent until the account is claimed) and the
// ordered, append-only list of certificate ids issued to the account.
type Account struct {
	AccountID      string
	Owner          *WalletAddress
	CertificateIDs []string
}

// WalletLinked reports whether the account has been claimed by a wallet.
func (a Account) WalletLinked() bool {
	return a.Owner != nil
}

// HoldsCertificate scans the certificate-id list for the given id.
func (a Account) HoldsCertificate(certificateID string) bool {
	for _, id := range a.CertificateIDs {
		if id == certificateID {
			return true
		}
	}
	return false
}
