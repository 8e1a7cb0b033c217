package booking

import "fmt"

// FormatError reports a malformed date or time string. It is fatal to the
// single call; nothing in the engine retries.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// NotFoundError reports missing club or court configuration. Surfaced to the
// caller untouched; a failed lookup must never degrade to "available".
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}
