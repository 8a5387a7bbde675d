// Package money holds the integer rupiah arithmetic used by checkout, promo
// validation and payment reconciliation. All amounts are int64 rupiah.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrFractionalAmount = errors.New("amount has a fractional rupiah part")
)

type Item struct {
	UnitPrice int64
	Quantity  int32
	IsFree    bool
}

type Promo struct {
	DiscountPercent int32
	MaxDiscount     *int64
}

type Totals struct {
	Subtotal       int64
	DiscountAmount int64
	Total          int64
}

// Calculate returns subtotal, discount and payable total for a cart.
// Free items count at zero regardless of the price they carry.
func Calculate(items []Item, promo *Promo) Totals {
	var subtotal int64
	for _, it := range items {
		if it.IsFree || it.Quantity <= 0 {
			continue
		}
		subtotal += it.UnitPrice * int64(it.Quantity)
	}

	discount := Discount(subtotal, promo)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          Payable(subtotal, discount),
	}
}

// Discount is floor(subtotal * percent / 100), capped by MaxDiscount and by
// the subtotal itself.
func Discount(subtotal int64, promo *Promo) int64 {
	if promo == nil || promo.DiscountPercent <= 0 || subtotal <= 0 {
		return 0
	}

	percent := int64(promo.DiscountPercent)
	if percent > 100 {
		percent = 100
	}

	discount := subtotal * percent / 100
	if promo.MaxDiscount != nil && *promo.MaxDiscount >= 0 && discount > *promo.MaxDiscount {
		discount = *promo.MaxDiscount
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

func Payable(subtotal, discount int64) int64 {
	if total := subtotal - discount; total > 0 {
		return total
	}
	return 0
}

// ParseAmount converts a processor amount such as "90000.00" into rupiah.
func ParseAmount(raw string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, raw)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%w: %q", ErrFractionalAmount, raw)
	}
	return d.IntPart(), nil
}

// FormatAmount renders rupiah the way midtrans echoes gross_amount.
func FormatAmount(amount int64) string {
	return decimal.NewFromInt(amount).StringFixed(2)
}
