package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cropbank/banking-system/internal/api/metrics"
	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
)

// CreditHandler handles HTTP requests for the credit request lifecycle.
type CreditHandler struct {
	creditService ports.CreditService
}

func NewCreditHandler(creditService ports.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

type createCreditRequest struct {
	ClientID      string  `json:"client_id"      validate:"required"`
	RequestAmount float64 `json:"request_amount" validate:"required,gt=0"`
	TenureMonths  int     `json:"tenure_months"  validate:"required,gt=0"`
	Purpose       string  `json:"purpose"        validate:"required"`
}

type creditDecisionRequest struct {
	Status  string `json:"status"  validate:"required,oneof=APPROVED REJECTED"`
	Remarks string `json:"remarks" validate:"required"`
}

// Create raises a credit request against one of the caller's clients.
//
// @Summary      Create a credit request
// @Tags         credits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCreditRequest  true  "Credit request details"
// @Success      201   {object}  domain.Credit
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/credit-requests [post]
func (h *CreditHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createCreditRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformedInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	credit, err := h.creditService.Create(c.Request().Context(), claims, ports.CreditInput{
		ClientID:      req.ClientID,
		RequestAmount: req.RequestAmount,
		TenureMonths:  req.TenureMonths,
		Purpose:       req.Purpose,
	})
	if err != nil {
		return err
	}

	metrics.CreditsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, credit)
}

// List returns credit requests: all of them for analysts, only the caller's
// own submissions for relationship managers.
//
// @Summary      List credit requests
// @Tags         credits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CreditDetails
// @Failure      403  {object}  map[string]string
// @Router       /api/credit-requests [get]
func (h *CreditHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	credits, err := h.creditService.List(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, credits)
}

// Get returns a single credit request by id.
//
// @Summary      Get a credit request by id
// @Tags         credits
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Credit request id"
// @Success      200  {object}  domain.Credit
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/credit-requests/{id} [get]
func (h *CreditHandler) Get(c echo.Context) error {
	credit, err := h.creditService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, credit)
}

// Decide applies an analyst's verdict to a pending credit request.
//
// @Summary      Decide a credit request
// @Tags         credits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Credit request id"
// @Param        body  body      creditDecisionRequest  true  "Decision"
// @Success      200   {object}  domain.Credit
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/credit-requests/{id} [put]
func (h *CreditHandler) Decide(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req creditDecisionRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformedInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, _ := domain.ParseCreditStatus(req.Status)
	credit, err := h.creditService.Decide(c.Request().Context(), claims, c.Param("id"), ports.DecisionInput{
		Status:  status,
		Remarks: req.Remarks,
	})
	if err != nil {
		return err
	}

	metrics.CreditDecisionsTotal.WithLabelValues(string(credit.Status)).Inc()
	return c.JSON(http.StatusOK, credit)
}
