package errors

import "errors"

var (
	ErrUnauthorized                = errors.New("unauthorized access")
	ErrInvalidPrincipal            = errors.New("invalid principal")
	ErrInvalidAmount               = errors.New("invalid amount")
	ErrQuotaExceeded               = errors.New("mint quota exceeded")
	ErrTokenPaused                 = errors.New("token is paused")
	ErrComplianceNotEnabled        = errors.New("compliance module not enabled")
	ErrPermanentDelegateNotEnabled = errors.New("permanent delegate not enabled")
	ErrAlreadyBlacklisted          = errors.New("already in blacklist")
	ErrNotFound                    = errors.New("record not found")
	ErrAlreadyExists               = errors.New("record already exists")
	ErrStringTooLong               = errors.New("string exceeds maximum length")
	ErrAddressMismatch             = errors.New("derived address mismatch")
)
