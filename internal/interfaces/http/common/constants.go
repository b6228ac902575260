package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies for survey and user endpoints.
	MaxRequestBody = 1 << 20
	// RequestTimeout bounds the storage work of a single request.
	RequestTimeout = 5 * time.Second
	// DefaultPageLimit is used when the caller omits ?limit.
	DefaultPageLimit = 20
)
