package cli

import "errors"

// ErrInvalidPayload indicates the --payload flag is not valid JSON.
var ErrInvalidPayload = errors.New("payload is not valid JSON")
