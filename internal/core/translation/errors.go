package translation

import "errors"

// Sentinel errors for store operations. Callers check them with errors.Is.
var (
	ErrDuplicateID      = errors.New("string id already exists")
	ErrNotFound         = errors.New("string not found")
	ErrIndexOutOfRange  = errors.New("target value index out of range")
	ErrCapacityExceeded = errors.New("target value limit reached")
)
