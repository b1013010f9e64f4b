package usecase

import (
	"fmt"

	"car-rental/internal/data/entity"

	"github.com/shopspring/decimal"
)

// Quote computes the total booking amount: pricePerDay * days plus the sum of
// extras. Arithmetic runs in decimal space and the result is rounded half-up
// to 2 decimal places at the final sum only, so per-term rounding never
// compounds. Deterministic, no side effects.
func Quote(pricePerDay float64, days int, extras []entity.Extra) (float64, error) {
	if pricePerDay < 0 {
		return 0, fmt.Errorf("%w: price per day cannot be negative", entity.ErrInvalidInput)
	}
	if days < 1 {
		return 0, fmt.Errorf("%w: rental must be at least 1 day", entity.ErrInvalidInput)
	}

	total := decimal.NewFromFloat(pricePerDay).Mul(decimal.NewFromInt(int64(days)))
	for _, extra := range extras {
		if extra.Amount < 0 {
			return 0, fmt.Errorf("%w: extra %q cannot have a negative amount", entity.ErrInvalidInput, extra.Name)
		}
		total = total.Add(decimal.NewFromFloat(extra.Amount))
	}

	// Round rounds half away from zero; amounts are non-negative here, so
	// this is round half-up.
	return total.Round(2).InexactFloat64(), nil
}
