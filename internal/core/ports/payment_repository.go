package ports

import (
	"context"

	"github.com/acme/account-service/internal/core/domain"
)

// PaymentRepository persists payroll records. The employee+period pair is
// unique; Create returns domain.ErrDuplicatePayment when violated.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	FindByEmployeeAndPeriod(ctx context.Context, employee, period string) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	ListByEmployee(ctx context.Context, employee string) ([]*domain.Payment, error)
}
