// Package orderno generates and verifies the customer-facing order number
//
//	PREFIX-<13 digit unix millis><4 chars [A-Z0-9]>-<millis mod 97, 2 digits>
//
// The checksum lets support staff and the webhook path reject typos and
// forged numbers without a storage lookup.
package orderno

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"time"
)

const (
	timestampDigits = 13
	randomChars     = 4
	checksumMod     = 97
	alphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrMalformed        = errors.New("malformed order number")
	ErrChecksumMismatch = errors.New("order number checksum mismatch")

	pattern       = regexp.MustCompile(`^([A-Z]{2,8})-(\d{13})([A-Z0-9]{4})-(\d{2})$`)
	prefixPattern = regexp.MustCompile(`^[A-Z]{2,8}$`)
)

type Parts struct {
	Prefix    string
	Timestamp int64
	Random    string
	Checksum  int
}

func (p Parts) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

func Checksum(timestamp int64) int {
	return int(timestamp % checksumMod)
}

// ValidPrefix reports whether prefix can start a number that Parse accepts.
func ValidPrefix(prefix string) bool {
	return prefixPattern.MatchString(prefix)
}

// Generate never emits a number Parse would reject: a bad prefix or a clock
// outside the 13 digit millis range returns ErrMalformed.
func Generate(prefix string, now time.Time) (string, error) {
	if !ValidPrefix(prefix) {
		return "", fmt.Errorf("prefix %q: %w", prefix, ErrMalformed)
	}
	ts := now.UnixMilli()
	if ts < 0 || ts > 9_999_999_999_999 {
		return "", fmt.Errorf("timestamp %d: %w", ts, ErrMalformed)
	}
	suffix, err := randomSuffix()
	if err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	return fmt.Sprintf("%s-%0*d%s-%02d", prefix, timestampDigits, ts, suffix, Checksum(ts)), nil
}

// Parse splits an order number and checks its checksum.
func Parse(s string) (Parts, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Parts{}, ErrMalformed
	}

	ts, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Parts{}, ErrMalformed
	}
	sum, err := strconv.Atoi(m[4])
	if err != nil {
		return Parts{}, ErrMalformed
	}

	parts := Parts{Prefix: m[1], Timestamp: ts, Random: m[3], Checksum: sum}
	if Checksum(ts) != sum {
		return parts, ErrChecksumMismatch
	}
	return parts, nil
}

func Verify(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func randomSuffix() (string, error) {
	buf := make([]byte, randomChars)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
