package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
)

var periodPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-\d{4}$`)

// PayrollService implements ports.PaymentService. It is plumbing around a
// keyed record store; which roles may call which operation is decided by
// the capability gate at the boundary.
type PayrollService struct {
	payments ports.PaymentRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

// NewPayrollService wires the payroll ledger.
func NewPayrollService(payments ports.PaymentRepository, users ports.UserRepository, log zerolog.Logger) *PayrollService {
	return &PayrollService{payments: payments, users: users, log: log}
}

// AddBulk inserts a batch of payroll records. The whole batch is validated
// first; nothing is inserted unless every record passes.
func (s *PayrollService) AddBulk(ctx context.Context, payments []ports.PaymentInput) error {
	for _, p := range payments {
		if err := s.validate(ctx, p); err != nil {
			return err
		}
		exists, err := s.payments.FindByEmployeeAndPeriod(ctx, domain.NormalizeEmail(p.Employee), p.Period)
		if err != nil && err != domain.ErrPaymentNotFound {
			return fmt.Errorf("payments: %w", err)
		}
		if exists != nil {
			return domain.ErrDuplicatePayment
		}
	}

	for _, p := range payments {
		payment := &domain.Payment{
			Employee: domain.NormalizeEmail(p.Employee),
			Period:   p.Period,
			Salary:   p.Salary,
		}
		if err := s.payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("payments: %w", err)
		}
	}
	s.log.Info().Int("count", len(payments)).Msg("payroll records added")
	return nil
}

// Update changes the salary of an existing employee+period record.
func (s *PayrollService) Update(ctx context.Context, in ports.PaymentInput) error {
	if err := s.validate(ctx, in); err != nil {
		return err
	}

	payment, err := s.payments.FindByEmployeeAndPeriod(ctx, domain.NormalizeEmail(in.Employee), in.Period)
	if err != nil {
		return err
	}
	payment.Salary = in.Salary
	if err := s.payments.Update(ctx, payment); err != nil {
		return fmt.Errorf("payments: %w", err)
	}
	return nil
}

// PaymentsFor returns the employee's records, newest period first.
func (s *PayrollService) PaymentsFor(ctx context.Context, employee string) ([]*domain.Payment, error) {
	payments, err := s.payments.ListByEmployee(ctx, domain.NormalizeEmail(employee))
	if err != nil {
		return nil, fmt.Errorf("payments: %w", err)
	}
	sort.Slice(payments, func(i, j int) bool {
		return periodKey(payments[i].Period) > periodKey(payments[j].Period)
	})
	return payments, nil
}

// PaymentFor returns a single record for the employee and period.
func (s *PayrollService) PaymentFor(ctx context.Context, employee, period string) (*domain.Payment, error) {
	if !periodPattern.MatchString(period) {
		return nil, domain.ErrWrongPeriod
	}
	return s.payments.FindByEmployeeAndPeriod(ctx, domain.NormalizeEmail(employee), period)
}

func (s *PayrollService) validate(ctx context.Context, in ports.PaymentInput) error {
	if !periodPattern.MatchString(in.Period) {
		return domain.ErrWrongPeriod
	}
	if in.Salary < 0 {
		return domain.ErrNegativeSalary
	}
	if _, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(in.Employee)); err != nil {
		if err == domain.ErrUserNotFound {
			return domain.ErrEmployeeNotFound
		}
		return fmt.Errorf("payments: %w", err)
	}
	return nil
}

// periodKey turns "MM-YYYY" into a sortable "YYYYMM" string.
func periodKey(period string) string {
	if len(period) != 7 {
		return period
	}
	return period[3:] + period[:2]
}
