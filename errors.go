package pagekit

import "errors"

var (
	// ErrInvalidParams reports pagination parameters outside their allowed
	// bounds. HTTP layers map it to a 400 response.
	ErrInvalidParams = errors.New("pagekit: invalid pagination params")

	// ErrInvalidToken reports a page token that cannot be decoded or does not
	// match the requested ordering. HTTP layers map it to a 400 response.
	ErrInvalidToken = errors.New("pagekit: invalid page token")
)
