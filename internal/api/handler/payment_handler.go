package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// PaymentHandler executes payments and records confirmed transfers.
type PaymentHandler struct {
	payments ports.PaymentService
	balances ports.BalanceService
}

func NewPaymentHandler(payments ports.PaymentService, balances ports.BalanceService) *PaymentHandler {
	return &PaymentHandler{payments: payments, balances: balances}
}

type payRequest struct {
	JobID string `json:"job_id" validate:"required"`
}

type payResponse struct {
	TxHash          string `json:"tx_hash"`
	Amount          string `json:"amount"`
	AlreadyRecorded bool   `json:"already_recorded,omitempty"`
}

type recordPaymentRequest struct {
	TxHash       string `json:"tx_hash" validate:"required"`
	ContractorID string `json:"contractor_id" validate:"required"`
	Price        string `json:"usdc_price" validate:"required"`
	Amount       string `json:"usdc_amount" validate:"required"`
}

type recordPaymentResponse struct {
	TxHash   string `json:"tx_hash"`
	Recorded bool   `json:"recorded"`
}

type balancesResponse struct {
	APT  string `json:"apt"`
	USDC string `json:"usdc"`
}

// Pay handles POST /v1/payments (employer only): transfer one hour of the
// posting's rate to its freelancer, then record the confirmed hash.
func (h *PaymentHandler) Pay(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req payRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.payments.Pay(c.Request().Context(), ports.PayInput{
		EmployerID: session.Principal.ID,
		JobID:      req.JobID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payResponse{
		TxHash:          result.TxHash,
		Amount:          result.Amount.String(),
		AlreadyRecorded: result.AlreadyRecorded,
	})
}

// Record handles POST /v1/payments/record (employer only): persist a
// transfer confirmed out-of-band. Replays of the same hash are no-ops.
func (h *PaymentHandler) Record(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "usdc_price must be a decimal number"})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "usdc_amount must be a decimal number"})
	}

	recorded, err := h.payments.RecordPayment(c.Request().Context(), ports.RecordPaymentInput{
		TxHash:       req.TxHash,
		EmployerID:   session.Principal.ID,
		ContractorID: req.ContractorID,
		Price:        price,
		Amount:       amount,
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if !recorded {
		status = http.StatusOK
	}
	return c.JSON(status, recordPaymentResponse{TxHash: req.TxHash, Recorded: recorded})
}

// Balances handles GET /v1/balances?address=0x...
func (h *PaymentHandler) Balances(c echo.Context) error {
	address := c.QueryParam("address")
	if address == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "address is required"})
	}

	balances, err := h.balances.Balances(c.Request().Context(), address)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balancesResponse{
		APT:  balances.APT.String(),
		USDC: balances.USDC.String(),
	})
}
