package application

import "errors"

// Client rejections. These are disallowed operations reported verbatim to
// the caller, never retried and never logged as failures.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchFinished = errors.New("match already finished")
	ErrNotYourTurn   = errors.New("not your turn to ban")
	ErrUnknownMap    = errors.New("map does not exist in the pool")
	ErrAlreadyBanned = errors.New("map has already been banned")
)

// ErrConflict means a concurrent writer committed first. Unlike the client
// rejections above it is retryable: the caller should re-fetch the match
// state and resubmit if the intent still applies.
var ErrConflict = errors.New("match was updated concurrently, retry")
