package usecase

import (
	"errors"
	"testing"

	"car-rental/internal/data/entity"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name        string
		pricePerDay float64
		days        int
		extras      []entity.Extra
		want        float64
	}{
		{
			name:        "base rate times days",
			pricePerDay: 50,
			days:        4,
			want:        200,
		},
		{
			name:        "with extra",
			pricePerDay: 50,
			days:        3,
			extras:      []entity.Extra{{Name: "GPS", Amount: 10}},
			want:        160,
		},
		{
			name:        "multiple extras",
			pricePerDay: 39.99,
			days:        2,
			extras: []entity.Extra{
				{Name: "child seat", Amount: 7.50},
				{Name: "insurance", Amount: 24.99},
			},
			want: 112.47,
		},
		{
			name:        "free of charge",
			pricePerDay: 0,
			days:        5,
			want:        0,
		},
		{
			name:        "rounds half up at the final sum",
			pricePerDay: 33.335,
			days:        1,
			want:        33.34,
		},
		{
			name:        "no per-term rounding",
			pricePerDay: 10.004,
			days:        1,
			extras:      []entity.Extra{{Name: "fee", Amount: 10.004}},
			// Per-term rounding would give 10.00 + 10.00 = 20.00; summing
			// first gives 20.008 -> 20.01.
			want: 20.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quote(tt.pricePerDay, tt.days, tt.extras)
			if err != nil {
				t.Fatalf("Quote() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Quote() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuoteInvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		pricePerDay float64
		days        int
		extras      []entity.Extra
	}{
		{"negative price", -1, 3, nil},
		{"zero days", 50, 0, nil},
		{"negative days", 50, -2, nil},
		{"negative extra", 50, 3, []entity.Extra{{Name: "discount", Amount: -5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Quote(tt.pricePerDay, tt.days, tt.extras); !errors.Is(err, entity.ErrInvalidInput) {
				t.Errorf("Quote() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
