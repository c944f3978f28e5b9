package fair

import (
	"fmt"
	"sync"
)

// MaxClientSeedBytes bounds client seeds, matching the published protocol.
const MaxClientSeedBytes = 64

// ClientSeed is one player's revealed seed material. Salt guards short or
// guessable seeds against commitment preimage search.
type ClientSeed struct {
	PlayerID string
	Seed     string
	Salt     string
}

// Commit computes a player commitment: the hex digest of
// "MiacatPoker_<version>:<gameID>:<seed>:<salt>". Pure, no side effects.
func Commit(params Params, gameID, seed, salt string) string {
	return params.HexHash([]byte(params.LabelPrefix + ":" + gameID + ":" + seed + ":" + salt))
}

// VerifyCommitment recomputes a commitment and compares it with the published
// value, returning ErrCommitmentMismatch on disagreement.
func VerifyCommitment(params Params, gameID, seed, salt, commitment string) error {
	if Commit(params, gameID, seed, salt) != commitment {
		return ErrCommitmentMismatch
	}
	return nil
}

// ServerCommit derives the dealer's published commitment pair: the server
// hash binds the server seed, and its double hash is what seat derivation
// entropy was historically taken from, so both are part of the record.
func ServerCommit(params Params, gameID, serverSeed string) (serverHash, doubleHash string) {
	serverHash = params.HexHash([]byte(params.LabelPrefix + ":" + gameID + ":" + serverSeed))
	doubleHash = params.HexHash([]byte(serverHash))
	return serverHash, doubleHash
}

// Ledger records commit/reveal pairs for one game. It enforces the protocol
// ordering: every commitment must exist before any seed is revealed. Seal is
// a one-way latch; the mutex makes the check-and-set atomic so a commitment
// can never slip in after a seed becomes known.
type Ledger struct {
	mu     sync.Mutex
	params Params
	gameID string

	sealed      bool
	order       []string
	commitments map[string]string
	revealed    map[string]ClientSeed
}

// NewLedger creates an open ledger for one game under frozen params.
func NewLedger(params Params, gameID string) *Ledger {
	return &Ledger{
		params:      params,
		gameID:      gameID,
		commitments: make(map[string]string),
		revealed:    make(map[string]ClientSeed),
	}
}

// Commit records a player's commitment and returns it. Fails once sealed,
// on duplicate players, and on oversized seeds.
func (l *Ledger) Commit(playerID, seed, salt string) (string, error) {
	if len([]byte(seed)) > MaxClientSeedBytes {
		return "", fmt.Errorf("player %s: %w", playerID, ErrSeedTooLong)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sealed {
		return "", fmt.Errorf("commit %s: %w", playerID, ErrLedgerSealed)
	}
	if _, dup := l.commitments[playerID]; dup {
		return "", fmt.Errorf("commit %s: %w", playerID, ErrDuplicatePlayer)
	}

	c := Commit(l.params, l.gameID, seed, salt)
	l.order = append(l.order, playerID)
	l.commitments[playerID] = c
	return c, nil
}

// Seal closes the ledger to new commitments. Idempotent, never reversed.
func (l *Ledger) Seal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sealed = true
}

// Sealed reports whether the seal latch has fired.
func (l *Ledger) Sealed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sealed
}

// Reveal discloses a player's seed and salt. Only valid after sealing, and
// only if the recomputed commitment matches the recorded one.
func (l *Ledger) Reveal(playerID, seed, salt string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.sealed {
		return fmt.Errorf("reveal %s: %w", playerID, ErrNotSealed)
	}
	commitment, ok := l.commitments[playerID]
	if !ok {
		return fmt.Errorf("reveal %s: %w", playerID, ErrUnknownPlayer)
	}
	if err := VerifyCommitment(l.params, l.gameID, seed, salt, commitment); err != nil {
		return fmt.Errorf("reveal %s: %w", playerID, err)
	}
	l.revealed[playerID] = ClientSeed{PlayerID: playerID, Seed: seed, Salt: salt}
	return nil
}

// Commitments returns a copy of the recorded player commitments.
func (l *Ledger) Commitments() map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]string, len(l.commitments))
	for id, c := range l.commitments {
		out[id] = c
	}
	return out
}

// Revealed returns the revealed seeds in commitment order. Players that have
// not revealed are absent.
func (l *Ledger) Revealed() []ClientSeed {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ClientSeed, 0, len(l.revealed))
	for _, id := range l.order {
		if cs, ok := l.revealed[id]; ok {
			out = append(out, cs)
		}
	}
	return out
}
