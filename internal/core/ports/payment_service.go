package ports

import (
	"context"

	"github.com/acme/account-service/internal/core/domain"
)

// PaymentInput is one payroll record as submitted by an accountant.
// Salary is in cents and must be non-negative; Period is MM-YYYY.
type PaymentInput struct {
	Employee string
	Period   string
	Salary   int64
}

// PaymentService manages the payroll ledger. It holds no authorization
// logic of its own; the capability gate decides which roles may call which
// operation.
type PaymentService interface {
	// AddBulk validates every record first and inserts none unless all pass.
	AddBulk(ctx context.Context, payments []PaymentInput) error
	Update(ctx context.Context, payment PaymentInput) error
	// PaymentsFor returns the employee's records, newest period first.
	PaymentsFor(ctx context.Context, employee string) ([]*domain.Payment, error)
	PaymentFor(ctx context.Context, employee, period string) (*domain.Payment, error)
}
