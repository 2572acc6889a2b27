package repository

import "errors"

// ErrNoUnits is returned by the conditional stock decrement when no row
// matched, meaning the room type has no available unit left (or is gated
// off). Callers decide how to surface it.
var ErrNoUnits = errors.New("no available units")
