// ABOUTME: Payment provider abstraction for the booking checkout step
// ABOUTME: The shipped provider is a dummy that always approves

package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Receipt records a settled charge.
type Receipt struct {
	Reference string
	Amount    float64
	ChargedAt time.Time
}

// Provider settles the payment for a booking. Swapping in a real
// gateway must not touch booking logic.
type Provider interface {
	Charge(ctx context.Context, amount float64) (*Receipt, error)
}

// Dummy approves every charge. Real payment processing is explicitly
// out of scope for this client.
type Dummy struct{}

// Charge returns a successful receipt for any non-negative amount.
func (Dummy) Charge(_ context.Context, amount float64) (*Receipt, error) {
	if amount < 0 {
		return nil, fmt.Errorf("invalid amount %.2f", amount)
	}
	return &Receipt{
		Reference: "dummy-" + uuid.NewString(),
		Amount:    amount,
		ChargedAt: time.Now().UTC(),
	}, nil
}
