package errors

import "errors"

var (
	ErrAccountNotFound          = errors.New("account not found")
	ErrCertificateNotFound      = errors.New("certificate not found")
	ErrInvalidMintRequest       = errors.New("invalid mint request")
	ErrInvalidTransferRequest   = errors.New("invalid transfer request")
	ErrWalletNotLinked          = errors.New("account has no linked wallet")
	ErrTransferUnauthorized     = errors.New("certificate is not registered to this account")
	ErrTierColumnMismatch       = errors.New("tier input columns differ in length")
	ErrTierEncoding             = errors.New("tier bytes are not valid text")
	ErrDuplicateRequestID       = errors.New("request_id already used")
	ErrRepositoryInvariantBroke = errors.New("repository invariant violated")
)
