package entity

import (
	"fmt"
	"time"
)

// PaymentOutcome is what the payment provider reports back for a booking.
type PaymentOutcome string

const (
	PaymentOutcomeSuccess PaymentOutcome = "success"
	PaymentOutcomeFailure PaymentOutcome = "failure"
)

// Lifecycle transitions. Each method either applies the full transition or
// returns ErrIllegalTransition leaving the booking untouched.
//
//	pending -> confirmed -> active -> completed
//	pending/confirmed -> cancelled
//	cancelled/completed -> refunded (paid bookings only)

func (b *Booking) Confirm(now time.Time) error {
	if b.Status != BookingStatusPending {
		return fmt.Errorf("%w: cannot confirm booking in status %s", ErrIllegalTransition, b.Status)
	}
	b.Status = BookingStatusConfirmed
	b.UpdatedAt = now
	return nil
}

// Activate moves a confirmed booking into its rental period. Activating an
// already-active booking is a no-op so the periodic sweep can safely fire
// more than once.
func (b *Booking) Activate(now time.Time) error {
	if b.Status == BookingStatusActive {
		return nil
	}
	if b.Status != BookingStatusConfirmed {
		return fmt.Errorf("%w: cannot activate booking in status %s", ErrIllegalTransition, b.Status)
	}
	b.Status = BookingStatusActive
	b.UpdatedAt = now
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if b.Status != BookingStatusActive {
		return fmt.Errorf("%w: cannot complete booking in status %s", ErrIllegalTransition, b.Status)
	}
	b.Status = BookingStatusCompleted
	b.UpdatedAt = now
	return nil
}

// Cancel is only legal before the rental starts; an active rental is already
// underway. Cancelling frees the booking's date range for other requesters.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
		return fmt.Errorf("%w: cannot cancel booking in status %s", ErrIllegalTransition, b.Status)
	}
	b.Status = BookingStatusCancelled
	b.CancellationReason = &reason
	cancelledAt := now
	b.CancellationDate = &cancelledAt
	b.UpdatedAt = now
	return nil
}

func (b *Booking) Refund(now time.Time) error {
	if b.Status != BookingStatusCancelled && b.Status != BookingStatusCompleted {
		return fmt.Errorf("%w: cannot refund booking in status %s", ErrIllegalTransition, b.Status)
	}
	if b.PaymentStatus != PaymentStatusPaid {
		return fmt.Errorf("%w: cannot refund booking with payment status %s", ErrIllegalTransition, b.PaymentStatus)
	}
	b.Status = BookingStatusRefunded
	b.PaymentStatus = PaymentStatusRefunded
	b.UpdatedAt = now
	return nil
}

// RecordPayment applies a payment-provider outcome. A successful payment on a
// pending booking auto-confirms it; a failed payment only marks the payment
// status and leaves the booking where it is until resolved or cancelled.
func (b *Booking) RecordPayment(outcome PaymentOutcome, paymentRef *string, now time.Time) error {
	switch outcome {
	case PaymentOutcomeSuccess:
		b.PaymentStatus = PaymentStatusPaid
		if paymentRef != nil {
			b.PaymentRef = paymentRef
		}
		if b.Status == BookingStatusPending {
			b.Status = BookingStatusConfirmed
		}
	case PaymentOutcomeFailure:
		b.PaymentStatus = PaymentStatusFailed
		if paymentRef != nil {
			b.PaymentRef = paymentRef
		}
	default:
		return fmt.Errorf("%w: unknown payment outcome %q", ErrInvalidInput, outcome)
	}
	b.UpdatedAt = now
	return nil
}
