package fair

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
)

// SeedOrder selects the canonical ordering of client seeds when they are
// folded into the shared seed material.
type SeedOrder int

const (
	// SeedOrderCommit concatenates client seeds in commitment order.
	SeedOrderCommit SeedOrder = iota
	// SeedOrderPlayerID concatenates client seeds sorted by player ID.
	SeedOrderPlayerID
)

// BurnSchedule describes how many cards are set aside before each dealing
// stage. The table convention burns one card before hole cards are dealt;
// early protocol versions did not.
type BurnSchedule struct {
	BeforeHole  int
	BeforeFlop  int
	BeforeTurn  int
	BeforeRiver int
}

// Total returns the number of cards the schedule consumes.
func (b BurnSchedule) Total() int {
	return b.BeforeHole + b.BeforeFlop + b.BeforeTurn + b.BeforeRiver
}

// Params fixes every protocol constant for one released version. Entries are
// frozen once released: historical records stay verifiable only if these
// never change, so treat every field as part of the wire protocol.
type Params struct {
	Version       string
	LabelPrefix   string
	PositionLabel string
	DeckLabel     string

	// DrawBytes is how many digest bytes each rejection-sampling attempt
	// consumes, interpreted as a big-endian unsigned integer.
	DrawBytes int

	SeedOrder SeedOrder
	Burns     BurnSchedule

	newHash func() hash.Hash
}

// Hash digests data with the version's hash function.
func (p Params) Hash(data []byte) []byte {
	h := p.newHash()
	h.Write(data)
	return h.Sum(nil)
}

// HexHash digests data and returns the lowercase hex string, the form every
// commitment and record field uses.
func (p Params) HexHash(data []byte) string {
	return fmt.Sprintf("%x", p.Hash(data))
}

func makeParams(version string, newHash func() hash.Hash, drawBytes int, order SeedOrder, burns BurnSchedule) Params {
	return Params{
		Version:       version,
		LabelPrefix:   "MiacatPoker_" + version,
		PositionLabel: "position",
		DeckLabel:     "deck",
		DrawBytes:     drawBytes,
		SeedOrder:     order,
		Burns:         burns,
		newHash:       newHash,
	}
}

var noHoleBurn = BurnSchedule{BeforeHole: 0, BeforeFlop: 1, BeforeTurn: 1, BeforeRiver: 1}
var fullBurns = BurnSchedule{BeforeHole: 1, BeforeFlop: 1, BeforeTurn: 1, BeforeRiver: 1}

// versions is the closed set of released protocol variants. The progression:
// 0.0.3 added the pre-deal burn and widened draws to 32 bits, 0.0.4 moved to
// player-ID seed ordering, 0.0.5 switched SHA-256 to SHA-512.
var versions = map[string]Params{
	"0.0.1": makeParams("0.0.1", sha256.New, 2, SeedOrderCommit, noHoleBurn),
	"0.0.2": makeParams("0.0.2", sha256.New, 2, SeedOrderCommit, noHoleBurn),
	"0.0.3": makeParams("0.0.3", sha256.New, 4, SeedOrderCommit, fullBurns),
	"0.0.4": makeParams("0.0.4", sha256.New, 4, SeedOrderPlayerID, fullBurns),
	"0.0.5": makeParams("0.0.5", sha512.New, 4, SeedOrderPlayerID, fullBurns),
	"0.0.6": makeParams("0.0.6", sha512.New, 4, SeedOrderPlayerID, fullBurns),
	"0.0.7": makeParams("0.0.7", sha512.New, 4, SeedOrderPlayerID, fullBurns),
	"0.0.8": makeParams("0.0.8", sha512.New, 4, SeedOrderPlayerID, fullBurns),
}

// CurrentVersion is the version new games are produced under.
const CurrentVersion = "0.0.8"

// ParamsFor returns the frozen parameters for a released version, or
// ErrUnsupportedVersion for anything outside the closed set.
func ParamsFor(version string) (Params, error) {
	p, ok := versions[version]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}
	return p, nil
}

// SupportedVersions lists every verifiable version in ascending order.
func SupportedVersions() []string {
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
