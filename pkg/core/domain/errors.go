package domain

import "errors"

var (
	ErrInvalidURL    = errors.New("invalid url format")
	ErrInvalidCode   = errors.New("invalid short code")
	ErrDuplicateCode = errors.New("short code already exists")
	ErrDuplicateID   = errors.New("link id already exists")
	ErrNotFound      = errors.New("link not found")
	ErrLinkInactive  = errors.New("link is inactive")

	// ErrCapacity is returned when no free short code was found within the
	// configured number of attempts.
	ErrCapacity = errors.New("unable to allocate a unique short code")
)
