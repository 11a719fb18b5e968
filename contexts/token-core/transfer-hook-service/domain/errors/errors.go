package errors

import "errors"

var (
	// ErrUnauthorized rejects a caller that does not hold the hook authority.
	ErrUnauthorized = errors.New("caller is not authorized for this hook operation")

	// ErrTransferPaused rejects transfers while the hook-level pause is set.
	ErrTransferPaused = errors.New("transfers are paused for this asset")

	// ErrTokenPaused rejects transfers while the controlling token config
	// is paused.
	ErrTokenPaused = errors.New("token is paused")

	// ErrSenderBlacklisted rejects transfers out of a restricted account.
	ErrSenderBlacklisted = errors.New("sender is blacklisted")

	// ErrRecipientBlacklisted rejects transfers into a restricted account.
	ErrRecipientBlacklisted = errors.New("recipient is blacklisted")

	// ErrNotFound covers missing hook registrations; validation fails closed.
	ErrNotFound = errors.New("hook registration not found")

	// ErrAlreadyExists rejects double registration of the same asset.
	ErrAlreadyExists = errors.New("hook registration already exists")

	// ErrAddressMismatch rejects caller-supplied addresses that do not match
	// the re-derived value.
	ErrAddressMismatch = errors.New("supplied address does not match derivation")

	// ErrInvalidPrincipal rejects empty or malformed principals.
	ErrInvalidPrincipal = errors.New("principal is invalid")
)
