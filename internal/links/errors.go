package links

import "errors"

var (
	// ErrNotFound: no record exists for the code or id.
	ErrNotFound = errors.New("link not found")

	// ErrForbidden: the record exists but the requester may not resolve
	// it. The HTTP layer renders this identically to ErrNotFound so a
	// probe cannot tell a private code from a missing one.
	ErrForbidden = errors.New("link access denied")

	// ErrUnauthorized: mutation attempted by someone other than the
	// owner (or, for delete, an admin).
	ErrUnauthorized = errors.New("not allowed to modify this link")

	// ErrCodeSpaceExhausted: the registry ran out of collision retries.
	// Operationally unreachable at our scale; surfacing it beats
	// retrying forever.
	ErrCodeSpaceExhausted = errors.New("short code space exhausted")
)
