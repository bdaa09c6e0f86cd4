package ports

import "errors"

var ErrNotFound = errors.New("not found")

// ErrLocked is returned when another process holds the refresh lock.
var ErrLocked = errors.New("refresh already in progress")
