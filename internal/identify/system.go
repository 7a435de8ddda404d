package identify

import "context"

// System defines the public contract for identify domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Identify classifies in and wraps the outcome in a new Identification.
	// It fails only when ctx is already done.
	Identify(ctx context.Context, in Input) (*Identification, error)

	// Options reports the collector defaults and accepted ranges.
	Options() Options
}
