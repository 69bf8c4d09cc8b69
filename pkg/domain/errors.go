package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrMissingSession is returned when a turn arrives without a session identity.
var ErrMissingSession = errors.New("turn has no session id")
