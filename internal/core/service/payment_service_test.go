package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
)

func newPayrollFixture(t *testing.T) (*stubPaymentRepo, *PayrollService) {
	t.Helper()
	users := newStubUserRepo()
	seedUser(t, users, "jane@acme.com", domain.RoleUser)
	payments := newStubPaymentRepo()
	return payments, NewPayrollService(payments, users, zerolog.Nop())
}

func TestAddBulk(t *testing.T) {
	_, svc := newPayrollFixture(t)

	err := svc.AddBulk(context.Background(), []ports.PaymentInput{
		{Employee: "Jane@Acme.com", Period: "01-2026", Salary: 123456},
		{Employee: "jane@acme.com", Period: "02-2026", Salary: 234567},
	})
	if err != nil {
		t.Fatalf("AddBulk returned error: %v", err)
	}

	listed, err := svc.PaymentsFor(context.Background(), "jane@acme.com")
	if err != nil {
		t.Fatalf("PaymentsFor: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(listed))
	}
	if listed[0].Period != "02-2026" || listed[1].Period != "01-2026" {
		t.Fatalf("payments must be newest first, got %s then %s", listed[0].Period, listed[1].Period)
	}
}

func TestAddBulk_Validation(t *testing.T) {
	payments, svc := newPayrollFixture(t)

	cases := []struct {
		name  string
		input ports.PaymentInput
		want  error
	}{
		{"bad period month", ports.PaymentInput{Employee: "jane@acme.com", Period: "13-2026", Salary: 100}, domain.ErrWrongPeriod},
		{"bad period format", ports.PaymentInput{Employee: "jane@acme.com", Period: "2026-01", Salary: 100}, domain.ErrWrongPeriod},
		{"negative salary", ports.PaymentInput{Employee: "jane@acme.com", Period: "01-2026", Salary: -1}, domain.ErrNegativeSalary},
		{"unknown employee", ports.PaymentInput{Employee: "ghost@acme.com", Period: "01-2026", Salary: 100}, domain.ErrEmployeeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.AddBulk(context.Background(), []ports.PaymentInput{tc.input}); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// Nothing may be inserted when any record of the batch fails.
	err := svc.AddBulk(context.Background(), []ports.PaymentInput{
		{Employee: "jane@acme.com", Period: "03-2026", Salary: 100},
		{Employee: "jane@acme.com", Period: "14-2026", Salary: 100},
	})
	if err != domain.ErrWrongPeriod {
		t.Fatalf("expected ErrWrongPeriod, got %v", err)
	}
	if len(payments.payments) != 0 {
		t.Fatalf("failed batch must insert nothing, got %d records", len(payments.payments))
	}
}

func TestAddBulk_DuplicatePeriod(t *testing.T) {
	_, svc := newPayrollFixture(t)

	if err := svc.AddBulk(context.Background(), []ports.PaymentInput{
		{Employee: "jane@acme.com", Period: "01-2026", Salary: 100},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	err := svc.AddBulk(context.Background(), []ports.PaymentInput{
		{Employee: "jane@acme.com", Period: "01-2026", Salary: 200},
	})
	if err != domain.ErrDuplicatePayment {
		t.Fatalf("expected ErrDuplicatePayment, got %v", err)
	}
}

func TestUpdatePayment(t *testing.T) {
	_, svc := newPayrollFixture(t)

	if err := svc.AddBulk(context.Background(), []ports.PaymentInput{
		{Employee: "jane@acme.com", Period: "01-2026", Salary: 100},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := svc.Update(context.Background(), ports.PaymentInput{
		Employee: "jane@acme.com", Period: "01-2026", Salary: 999,
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, err := svc.PaymentFor(context.Background(), "jane@acme.com", "01-2026")
	if err != nil {
		t.Fatalf("PaymentFor: %v", err)
	}
	if got.Salary != 999 {
		t.Fatalf("salary = %d, want 999", got.Salary)
	}

	if err := svc.Update(context.Background(), ports.PaymentInput{
		Employee: "jane@acme.com", Period: "05-2026", Salary: 1,
	}); err != domain.ErrPaymentNotFound {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestPaymentFor_BadPeriod(t *testing.T) {
	_, svc := newPayrollFixture(t)
	if _, err := svc.PaymentFor(context.Background(), "jane@acme.com", "January-2026"); err != domain.ErrWrongPeriod {
		t.Fatalf("expected ErrWrongPeriod, got %v", err)
	}
}
