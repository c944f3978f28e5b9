// Package fair implements the deterministic commit-reveal dealing protocol:
// hash-chain randomness, commitments, seat assignment and the deck shuffle.
// Every derivation is a pure function of seed material plus frozen per-version
// parameters, so anyone holding the revealed seeds can replay it byte for byte.
package fair

import "encoding/binary"

// Chain is a deterministic, restartable byte-stream generator. Each draw is
// the digest of (label, counter, seed material) under the version's hash
// function. Distinct labels yield computationally independent streams even
// over identical seed material, which is what keeps the seat derivation from
// leaking anything about the deck derivation and vice versa.
type Chain struct {
	params Params
	label  []byte
	seed   []byte
}

// NewChain builds a chain over seedMaterial separated under domainLabel.
func NewChain(params Params, domainLabel string, seedMaterial []byte) *Chain {
	return &Chain{
		params: params,
		label:  []byte(domainLabel),
		seed:   seedMaterial,
	}
}

// Draw returns the digest at the given counter. Re-requesting the same
// counter always returns identical bytes; the chain holds no cursor state.
//
// The preimage is length-prefix framed so no (label, counter, seed) triple
// can collide with another by shifting bytes across field boundaries:
//
//	uvarint(len(label)) || label || counter as 8 bytes big-endian || seed
func (c *Chain) Draw(counter uint64) []byte {
	buf := make([]byte, 0, binary.MaxVarintLen64+len(c.label)+8+len(c.seed))
	buf = binary.AppendUvarint(buf, uint64(len(c.label)))
	buf = append(buf, c.label...)
	buf = binary.BigEndian.AppendUint64(buf, counter)
	buf = append(buf, c.seed...)
	return c.params.Hash(buf)
}
