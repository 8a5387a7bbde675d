// Package signature seals the amount-affecting fields of an order with an
// HMAC-SHA256 keyed by a server-held secret. The secret never leaves the
// server; clients only ever see the order number.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	canonicalVersion = "v1"
	minSecretLen     = 32
)

var (
	ErrSecretTooShort    = fmt.Errorf("signing secret must be at least %d bytes", minSecretLen)
	ErrSignatureMismatch = errors.New("order signature mismatch")
	ErrOrderExpired      = errors.New("order has expired")
)

type Item struct {
	ProductID string
	UnitPrice int64
	Quantity  int32
	IsFree    bool
}

// Payload is every field that changes what the customer pays.
type Payload struct {
	OrderNumber    string
	Items          []Item
	Subtotal       int64
	DiscountAmount int64
	PromoCode      string
	Total          int64
	PaymentMethod  string
	ExpiresAt      time.Time
}

type Signer struct {
	secret []byte
}

func NewSigner(secret string) (*Signer, error) {
	if len(secret) < minSecretLen {
		return nil, ErrSecretTooShort
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Canonical renders p as a single unambiguous line. Items keep their order
// sequence; free-text fields are quoted so separators inside them cannot
// shift field boundaries.
func Canonical(p Payload) string {
	var b strings.Builder
	b.WriteString(canonicalVersion)
	b.WriteString("|order=")
	b.WriteString(strconv.Quote(p.OrderNumber))
	b.WriteString("|items=")
	for i, it := range p.Items {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Quote(it.ProductID))
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(it.UnitPrice, 10))
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(int64(it.Quantity), 10))
		b.WriteByte(':')
		b.WriteString(strconv.FormatBool(it.IsFree))
	}
	b.WriteString("|subtotal=")
	b.WriteString(strconv.FormatInt(p.Subtotal, 10))
	b.WriteString("|discount=")
	b.WriteString(strconv.FormatInt(p.DiscountAmount, 10))
	b.WriteString("|promo=")
	b.WriteString(strconv.Quote(strings.ToUpper(p.PromoCode)))
	b.WriteString("|total=")
	b.WriteString(strconv.FormatInt(p.Total, 10))
	b.WriteString("|method=")
	b.WriteString(strconv.Quote(p.PaymentMethod))
	b.WriteString("|expires=")
	b.WriteString(strconv.FormatInt(p.ExpiresAt.UTC().Unix(), 10))
	return b.String()
}

func (s *Signer) Sign(p Payload) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(Canonical(p)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature from the current field values. Expiry is
// checked independently so an untampered but stale order is still refused.
func (s *Signer) Verify(p Payload, sig string, now time.Time) error {
	got, err := hex.DecodeString(strings.TrimSpace(sig))
	if err != nil {
		return ErrSignatureMismatch
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(Canonical(p)))
	if !hmac.Equal(mac.Sum(nil), got) {
		return ErrSignatureMismatch
	}

	if now.After(p.ExpiresAt) {
		return ErrOrderExpired
	}
	return nil
}
