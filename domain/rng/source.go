package rng

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"sort"
)

// Source defines the random number generation capabilities needed by the
// ticket and prize services. Implementations must produce uniformly
// distributed values; the production implementation draws from a
// cryptographically secure generator.
type Source interface {
	// Int returns a uniformly distributed integer in [min, max] inclusive.
	Int(min, max int) (int, error)

	// UniqueInts returns count distinct integers drawn from [min, max],
	// sorted ascending.
	UniqueInts(count, min, max int) ([]int, error)

	// Shuffle returns a new slice with the input values in random order.
	// The input slice is not modified.
	Shuffle(values []int) ([]int, error)

	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() (float64, error)

	// SeedFingerprint returns a SHA-256 hex digest over 32 fresh random
	// bytes, usable as an auditability fingerprint for display.
	SeedFingerprint() (string, error)
}

// InvalidRangeError indicates a sampling request that cannot be satisfied,
// either because the range is empty or because more unique values were
// requested than the range contains. Retrying with the same arguments
// cannot succeed.
type InvalidRangeError struct {
	Min   int
	Max   int
	Count int
}

func (e *InvalidRangeError) Error() string {
	if e.Count > 0 {
		return fmt.Sprintf("cannot draw %d unique values from range [%d, %d]", e.Count, e.Min, e.Max)
	}
	return fmt.Sprintf("invalid range [%d, %d]", e.Min, e.Max)
}

// CryptoSource implements Source on top of a cryptographically secure byte
// stream. Modulo bias is eliminated with rejection sampling: values at or
// above the largest multiple of the range representable in the drawn bytes
// are discarded and redrawn.
type CryptoSource struct {
	reader io.Reader
}

// NewCryptoSource creates a Source backed by crypto/rand.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{reader: rand.Reader}
}

// NewCryptoSourceFromReader creates a Source backed by an arbitrary byte
// stream. Intended for tests that need a deterministic stream.
func NewCryptoSourceFromReader(r io.Reader) *CryptoSource {
	return &CryptoSource{reader: r}
}

// Int returns a uniformly distributed integer in [min, max] inclusive.
func (s *CryptoSource) Int(min, max int) (int, error) {
	if min > max {
		return 0, &InvalidRangeError{Min: min, Max: max}
	}
	span := uint64(max-min) + 1
	if span == 1 {
		return min, nil
	}

	// Draw just enough bytes to cover the range, then reject values that
	// would wrap unevenly under the modulo.
	bytesNeeded := (bits.Len64(span-1) + 7) / 8
	maxValue := uint64(1) << (8 * bytesNeeded)
	threshold := maxValue - maxValue%span

	buf := make([]byte, bytesNeeded)
	for {
		if _, err := io.ReadFull(s.reader, buf); err != nil {
			return 0, fmt.Errorf("failed to read random bytes: %w", err)
		}
		var value uint64
		for _, b := range buf {
			value = value<<8 | uint64(b)
		}
		if value < threshold {
			return min + int(value%span), nil
		}
	}
}

// UniqueInts returns count distinct integers from [min, max], sorted
// ascending. Fails with InvalidRangeError when the range cannot supply
// count distinct values.
func (s *CryptoSource) UniqueInts(count, min, max int) ([]int, error) {
	if min > max || count < 0 || count > max-min+1 {
		return nil, &InvalidRangeError{Min: min, Max: max, Count: count}
	}

	seen := make(map[int]struct{}, count)
	values := make([]int, 0, count)
	for len(values) < count {
		n, err := s.Int(min, max)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		values = append(values, n)
	}

	sort.Ints(values)
	return values, nil
}

// Shuffle returns a new slice containing the input values in Fisher-Yates
// shuffled order.
func (s *CryptoSource) Shuffle(values []int) ([]int, error) {
	shuffled := make([]int, len(values))
	copy(shuffled, values)
	for i := len(shuffled) - 1; i > 0; i-- {
		j, err := s.Int(0, i)
		if err != nil {
			return nil, err
		}
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled, nil
}

// Float64 returns a uniformly distributed value in [0, 1) with 53 bits of
// precision.
func (s *CryptoSource) Float64() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(s.reader, buf[:]); err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	value := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(value) / (1 << 53), nil
}

// SeedFingerprint returns a SHA-256 hex digest over 32 fresh random bytes.
func (s *CryptoSource) SeedFingerprint() (string, error) {
	var seed [32]byte
	if _, err := io.ReadFull(s.reader, seed[:]); err != nil {
		return "", fmt.Errorf("failed to read seed bytes: %w", err)
	}
	digest := sha256.Sum256(seed[:])
	return fmt.Sprintf("%x", digest), nil
}
