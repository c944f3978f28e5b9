package game

import "errors"

// ErrMalformedRecord means a game record is missing or inconsistent in a way
// that rules out even partial verification.
var ErrMalformedRecord = errors.New("malformed game record")
