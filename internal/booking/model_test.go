package booking

import (
	"errors"
	"testing"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},

		{StatusConfirmed, StatusConfirmed, true}, // idempotent retry
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},

		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCompleted, false},

		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.ok {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	for status, want := range map[Status]bool{
		StatusPending:   false,
		StatusConfirmed: false,
		StatusCancelled: true,
		StatusCompleted: true,
	} {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestBookingLifecycle(t *testing.T) {
	b := &Booking{Status: StatusPending}

	if err := b.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if b.Status != StatusConfirmed {
		t.Fatalf("status after Confirm = %s", b.Status)
	}

	// Confirming again is a no-op, not an error.
	if err := b.Confirm(); err != nil {
		t.Fatalf("second Confirm() error = %v", err)
	}

	if err := b.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	// Completed is terminal.
	if err := b.Cancel(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Cancel() after Complete = %v, want ErrInvalidTransition", err)
	}
}

func TestBookingCancelFromPending(t *testing.T) {
	b := &Booking{Status: StatusPending}
	if err := b.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if err := b.Confirm(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Confirm() after Cancel = %v, want ErrInvalidTransition", err)
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for _, valid := range []string{"pending", "paid", "refunded"} {
		if _, err := ParsePaymentStatus(valid); err != nil {
			t.Errorf("ParsePaymentStatus(%q) error = %v", valid, err)
		}
	}

	if _, err := ParsePaymentStatus("chargeback"); !errors.Is(err, ErrInvalidPaymentStatus) {
		t.Errorf("ParsePaymentStatus(invalid) = %v, want ErrInvalidPaymentStatus", err)
	}
}

func TestSetPaymentStatus(t *testing.T) {
	b := &Booking{PaymentStatus: PaymentPending}

	if err := b.SetPaymentStatus(PaymentPaid, "txn_123"); err != nil {
		t.Fatalf("SetPaymentStatus() error = %v", err)
	}
	if b.PaymentStatus != PaymentPaid || b.PaymentReference != "txn_123" {
		t.Fatalf("payment state = %s/%s", b.PaymentStatus, b.PaymentReference)
	}

	// An empty reference keeps the previous one.
	if err := b.SetPaymentStatus(PaymentRefunded, ""); err != nil {
		t.Fatalf("SetPaymentStatus() error = %v", err)
	}
	if b.PaymentReference != "txn_123" {
		t.Fatalf("reference overwritten: %q", b.PaymentReference)
	}

	if err := b.SetPaymentStatus("chargeback", ""); !errors.Is(err, ErrInvalidPaymentStatus) {
		t.Fatalf("invalid status = %v, want ErrInvalidPaymentStatus", err)
	}
}
