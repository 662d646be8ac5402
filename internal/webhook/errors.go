package webhook

import "errors"

var (
	// ErrBadStatus reports a non-2xx response from the webhook endpoint.
	ErrBadStatus = errors.New("webhook endpoint returned a non-success status")

	// ErrBadBody reports a 2xx response whose body could not be parsed as a
	// JSON object.
	ErrBadBody = errors.New("webhook endpoint returned an unparseable body")
)
