package fair

import "errors"

// Error kinds surfaced by the fairness core. All derivations are pure, so none
// of these are retryable; callers must treat them as terminal for the operation.
var (
	// ErrCommitmentMismatch means a recomputed commitment hash disagrees with
	// the published one. Never auto-corrected.
	ErrCommitmentMismatch = errors.New("commitment mismatch")

	// ErrUnsupportedVersion means the protocol version tag is outside the
	// closed set of frozen versions.
	ErrUnsupportedVersion = errors.New("unsupported protocol version")

	// ErrInsufficientPlayers / ErrTooManyPlayers bound the table at 2-9 seats.
	ErrInsufficientPlayers = errors.New("at least 2 players required")
	ErrTooManyPlayers      = errors.New("at most 9 players allowed")

	// ErrDeckExhausted means a deal would need more cards than a single
	// 52-card deck holds. Unreachable for valid player counts, checked anyway.
	ErrDeckExhausted = errors.New("deck exhausted")

	// ErrLedgerSealed rejects new commitments after the ledger seals.
	ErrLedgerSealed = errors.New("ledger is sealed")

	// ErrNotSealed rejects reveals before all commitments exist.
	ErrNotSealed = errors.New("ledger is not sealed yet")

	// ErrDuplicatePlayer rejects a second commitment for the same player ID.
	ErrDuplicatePlayer = errors.New("player already committed")

	// ErrSeedTooLong bounds client seeds at 64 UTF-8 bytes, matching the
	// published protocol.
	ErrSeedTooLong = errors.New("client seed too long (max 64 bytes)")

	// ErrUnknownPlayer means a reveal names a player with no commitment.
	ErrUnknownPlayer = errors.New("no commitment for player")
)
