package scenedesc

import "errors"

// ErrConfig is the root of the fatal configuration-error class. Every error
// returned by Load wraps it, as do camera-construction errors downstream, so
// callers can errors.Is the whole taxonomy at once.
var ErrConfig = errors.New("invalid scene description")
