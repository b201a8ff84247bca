package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
)

// PaymentHandler handles HTTP requests for the payroll ledger.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Upload handles POST /api/acct/payments. The batch is all-or-nothing.
//
// @Summary      Upload a batch of payroll records
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      []paymentRequest  true  "Payroll records"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/acct/payments [post]
func (h *PaymentHandler) Upload(c echo.Context) error {
	var reqs []paymentRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.PaymentInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("payment[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toPaymentInput(req))
	}

	if err := h.service.AddBulk(c.Request().Context(), inputs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "Added successfully!"})
}

// Update handles PUT /api/acct/payments.
//
// @Summary      Update one payroll record
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      paymentRequest  true  "Payroll record"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/acct/payments [put]
func (h *PaymentHandler) Update(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), toPaymentInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "Updated successfully!"})
}

// OwnPayrolls handles GET /api/empl/payment. With ?period=MM-YYYY it returns
// the single record for that period; without it, all records newest first.
//
// @Summary      View own payroll records
// @Tags         payroll
// @Produce      json
// @Security     BasicAuth
// @Param        period  query     string  false  "Period (MM-YYYY)"
// @Success      200     {array}   paymentView
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/empl/payment [get]
func (h *PaymentHandler) OwnPayrolls(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if period := c.QueryParam("period"); period != "" {
		payment, err := h.service.PaymentFor(ctx, user.Email, period)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toPaymentView(user, payment))
	}

	payments, err := h.service.PaymentsFor(ctx, user.Email)
	if err != nil {
		return err
	}

	views := make([]paymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, toPaymentView(user, p))
	}
	return c.JSON(http.StatusOK, views)
}

func toPaymentInput(r paymentRequest) ports.PaymentInput {
	return ports.PaymentInput{
		Employee: r.Employee,
		Period:   r.Period,
		Salary:   r.Salary,
	}
}

func toPaymentView(user *domain.User, p *domain.Payment) paymentView {
	return paymentView{
		Name:     user.Name,
		Lastname: user.Lastname,
		Period:   formatPeriod(p.Period),
		Salary:   formatSalary(p.Salary),
	}
}

// formatPeriod renders "01-2021" as "January-2021". Stored periods have
// already passed validation, so a parse failure only happens on corrupted
// data; the raw value is returned in that case.
func formatPeriod(period string) string {
	t, err := time.Parse("01-2006", period)
	if err != nil {
		return period
	}
	return fmt.Sprintf("%s-%d", t.Month(), t.Year())
}

// formatSalary renders cents as "X dollar(s) Y cent(s)".
func formatSalary(cents int64) string {
	return fmt.Sprintf("%d dollar(s) %d cent(s)", cents/100, cents%100)
}
