// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MaxAmount caps submitted prices and budgets. It sits well inside the
// NUMERIC(10, 2) price column and keeps every affordable count in an int64.
var MaxAmount = decimal.NewFromInt(1_000_000)

// maxAmountDigits is the number of integer digits in MaxAmount.
const maxAmountDigits = 7

var (
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountTooLarge    = errors.New("amount must be at most " + MaxAmount.String())
)

// NormalizeAmount rounds d to the penny and checks it lies in (0, MaxAmount].
// The magnitude is read from the digit count and exponent before any
// arithmetic, so inputs like 1e9000000 are rejected without being expanded.
func NormalizeAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if d.Sign() <= 0 {
		return decimal.Zero, ErrAmountNotPositive
	}

	// d < 10^magnitude
	magnitude := d.NumDigits() + int(d.Exponent())
	if magnitude > maxAmountDigits {
		return decimal.Zero, ErrAmountTooLarge
	}
	if magnitude < -2 {
		// Below a tenth of a penny
		return decimal.Zero, ErrAmountNotPositive
	}

	rounded := d.Round(2)
	if !rounded.IsPositive() {
		return decimal.Zero, ErrAmountNotPositive
	}
	if rounded.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	return rounded, nil
}
