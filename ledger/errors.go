// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
)

// Categories. Handlers map them to status codes with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrRateLimited = errors.New("rate limited")
	ErrForbidden   = errors.New("forbidden")
)

var ( // Votes
	ErrUnknownRegion  = fmt.Errorf("%w: unknown region", ErrValidation)
	ErrInvalidSurname = fmt.Errorf("%w: invalid surname", ErrValidation)
	ErrInvalidGender  = fmt.Errorf("%w: invalid gender", ErrValidation)
	ErrAlreadyVoted   = fmt.Errorf("%w: already voted today", ErrRateLimited)
)

var ( // Broadcasts
	ErrEmptyMessage      = fmt.Errorf("%w: empty message", ErrValidation)
	ErrMessageTooLong    = fmt.Errorf("%w: message too long", ErrValidation)
	ErrCooldown          = fmt.Errorf("%w: message cooldown active", ErrRateLimited)
	ErrBroadcastDisabled = fmt.Errorf("%w: broadcast disabled", ErrForbidden)
)
