package engine

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Source is the only randomness the rules see: a float in [0,1).
type Source interface {
	Float64() float64
}

// SeedFromString returns a 64-bit seed from an arbitrary string using SHA256.
func SeedFromString(s string) uint64 {
	h := sha256.Sum256([]byte(s))
	return binary.LittleEndian.Uint64(h[:8])
}

// Derive returns a deterministic child seed based on a base seed and a label using HMAC-SHA256.
// Labels should be stable strings such as "choice:3" or "scenario:next".
func Derive(base uint64, label string) uint64 {
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, base)
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(label))
	sum := m.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

var seedAlphabet = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// NewSeedText returns a random 24 character seed for sessions started without one.
func NewSeedText() (string, error) {
	buf := make([]byte, 15)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(seedAlphabet.EncodeToString(buf)), nil
}

// SessionSeed holds the canonical seed string for a play session and exposes deterministic streams.
type SessionSeed struct {
	Text string
	root uint64
}

// NewSessionSeed creates a deterministic SessionSeed from a textual seed. Empty text is rejected.
func NewSessionSeed(seedText string) (SessionSeed, error) {
	if seedText == "" {
		return SessionSeed{}, fmt.Errorf("seed text must not be empty")
	}
	return SessionSeed{Text: seedText, root: SeedFromString(seedText)}, nil
}

// ForPlayer mixes the player id and rules version into the root so two players
// sharing a seed text still get independent streams.
func (r SessionSeed) ForPlayer(userID, rulesVersion string) SessionSeed {
	if userID == "" && rulesVersion == "" {
		return r
	}
	return SessionSeed{Text: r.Text, root: Derive(r.root, userID+"|"+rulesVersion)}
}

// Stream returns a new deterministic RNG stream derived from the session's root seed.
func (r SessionSeed) Stream(label string) *Stream {
	return newStream(Derive(r.root, label))
}

// SplitMix64 PRNG implementation for deterministic streams.
type SplitMix64 struct{ state uint64 }

func newSplitMix64(seed uint64) *SplitMix64 { return &SplitMix64{state: seed} }

func (s *SplitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (s *SplitMix64) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.next() % uint64(n))
}

func (s *SplitMix64) float64() float64 {
	return float64(s.next()>>11) / (1 << 53)
}

// Stream provides deterministic random numbers with support for labelled child streams.
// Not safe for concurrent use.
type Stream struct {
	base uint64
	sm   *SplitMix64
}

func newStream(seed uint64) *Stream {
	return &Stream{base: seed, sm: newSplitMix64(seed)}
}

// Intn mirrors math/rand.Intn but is deterministic per stream.
func (s *Stream) Intn(n int) int { return s.sm.intn(n) }

// Float64 returns a float in [0,1).
func (s *Stream) Float64() float64 { return s.sm.float64() }

// Child creates a stable sub-stream derived from this stream's base seed and label.
func (s *Stream) Child(label string) *Stream { return newStream(Derive(s.base, label)) }

// FixedSource replays a fixed sequence of draws, cycling when exhausted.
type FixedSource struct {
	vals []float64
	next int
}

// Fixed returns a FixedSource over vals. With no values every draw is 0.
func Fixed(vals ...float64) *FixedSource {
	return &FixedSource{vals: append([]float64(nil), vals...)}
}

func (f *FixedSource) Float64() float64 {
	if len(f.vals) == 0 {
		return 0
	}
	v := f.vals[f.next%len(f.vals)]
	f.next++
	return v
}

// Drawn reports how many values have been consumed.
func (f *FixedSource) Drawn() int { return f.next }

// Intn makes FixedSource usable as a catalog picker in tests.
func (f *FixedSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(unit(f.Float64()) * float64(n))
}

// unit forces a draw into [0,1) so a misbehaving source cannot push a branch out of range.
func unit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v >= 1:
		return math.Nextafter(1, 0)
	default:
		return v
	}
}
