package repository

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable is returned when the durable store could not be
// reached or answered with a transient failure. Callers are expected to
// degrade gracefully rather than surface this to the client.
var ErrStoreUnavailable = errors.New("submission store unavailable")

// MisconfiguredError reports a deployment defect in the store configuration
// (rejected credential, missing project). Unlike ErrStoreUnavailable this
// must be surfaced, not silently recovered.
type MisconfiguredError struct {
	Reason string
}

func (e *MisconfiguredError) Error() string {
	return fmt.Sprintf("submission store misconfigured: %s", e.Reason)
}
