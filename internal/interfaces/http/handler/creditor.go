package handler

import (
	"net/http"

	financeapp "github.com/erp/pdv/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// CreditorHandler handles creditors, their payments and carnê booklets
type CreditorHandler struct {
	BaseHandler
	creditService *financeapp.CreditService
}

// NewCreditorHandler creates a new CreditorHandler
func NewCreditorHandler(creditService *financeapp.CreditService) *CreditorHandler {
	return &CreditorHandler{creditService: creditService}
}

// Create godoc
// @ID           createCreditor
// @Summary      Register a debt manually
// @Tags         creditors
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateCreditorRequest true "Creditor"
// @Success      201 {object} APIResponse[financeapp.CreditorResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors [post]
func (h *CreditorHandler) Create(c *gin.Context) {
	var req financeapp.CreateCreditorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	creditor, err := h.creditService.CreateCreditor(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, creditor)
}

// GetByID godoc
// @ID           getCreditor
// @Summary      Get a creditor
// @Description  Status is projected at read time; a past-due unpaid debt reads as overdue
// @Tags         creditors
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Success      200 {object} APIResponse[financeapp.CreditorResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors/{id} [get]
func (h *CreditorHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	creditor, err := h.creditService.GetCreditor(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, creditor)
}

// List godoc
// @ID           listCreditors
// @Summary      List creditors
// @Tags         creditors
// @Produce      json
// @Param        search query string false "Customer name or description"
// @Param        customer_id query int false "Customer ID"
// @Param        status query string false "Status" Enums(pending, overdue, paid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]financeapp.CreditorResponse]
// @Security     BearerAuth
// @Router       /creditors [get]
func (h *CreditorHandler) List(c *gin.Context) {
	var filter financeapp.CreditorListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	pageDefaults(&filter.Page, &filter.PageSize)

	creditors, total, err := h.creditService.ListCreditors(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, creditors, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateCreditor
// @Summary      Edit a creditor's debt, due date and description
// @Tags         creditors
// @Accept       json
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Param        request body financeapp.UpdateCreditorRequest true "Creditor"
// @Success      200 {object} APIResponse[financeapp.CreditorResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors/{id} [put]
func (h *CreditorHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req financeapp.UpdateCreditorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	creditor, err := h.creditService.UpdateCreditor(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, creditor)
}

// Delete godoc
// @ID           deleteCreditor
// @Summary      Delete a creditor with its installments and payment history
// @Tags         creditors
// @Param        id path int true "Creditor ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors/{id} [delete]
func (h *CreditorHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.creditService.DeleteCreditor(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkPaid godoc
// @ID           payCreditor
// @Summary      Settle a creditor in full
// @Tags         creditors
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Success      200 {object} APIResponse[financeapp.CreditorResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors/{id}/pay [post]
func (h *CreditorHandler) MarkPaid(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	creditor, err := h.creditService.MarkCreditorPaid(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, creditor)
}

// RecordPayment godoc
// @ID           recordCreditorPayment
// @Summary      Record a partial payment
// @Tags         creditors
// @Accept       json
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Param        request body financeapp.RecordPaymentRequest true "Payment"
// @Success      201 {object} APIResponse[financeapp.PaymentResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors/{id}/payments [post]
func (h *CreditorHandler) RecordPayment(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req financeapp.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.creditService.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithWarnings(c, http.StatusCreated, result, result.Warnings)
}

// ListPayments godoc
// @ID           listCreditorPayments
// @Summary      Payment history of a creditor
// @Tags         creditors
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Success      200 {object} APIResponse[[]financeapp.PaymentResponse]
// @Security     BearerAuth
// @Router       /creditors/{id}/payments [get]
func (h *CreditorHandler) ListPayments(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	payments, err := h.creditService.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// GenerateSchedule godoc
// @ID           generateCarneSchedule
// @Summary      Generate the carnê installments
// @Description  Replaces an unpaid schedule; refused once any installment is paid
// @Tags         creditors
// @Accept       json
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Param        request body financeapp.GenerateScheduleRequest true "Schedule"
// @Success      201 {object} APIResponse[financeapp.ScheduleResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors/{id}/schedule [post]
func (h *CreditorHandler) GenerateSchedule(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req financeapp.GenerateScheduleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.creditService.GenerateInstallmentSchedule(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithWarnings(c, http.StatusCreated, result, result.Warnings)
}

// ListInstallments godoc
// @ID           listCreditorInstallments
// @Summary      Installments of a creditor's carnê
// @Tags         creditors
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Success      200 {object} APIResponse[[]financeapp.InstallmentResponse]
// @Security     BearerAuth
// @Router       /creditors/{id}/installments [get]
func (h *CreditorHandler) ListInstallments(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	installments, err := h.creditService.ListInstallments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, installments)
}

// NextDue godoc
// @ID           nextDueInstallment
// @Summary      Earliest unpaid installment
// @Tags         creditors
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Success      200 {object} APIResponse[financeapp.InstallmentResponse]
// @Security     BearerAuth
// @Router       /creditors/{id}/next-due [get]
func (h *CreditorHandler) NextDue(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	next, err := h.creditService.NextDueDate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, next)
}

// Stats godoc
// @ID           creditorStats
// @Summary      Carnê totals for a creditor
// @Tags         creditors
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Success      200 {object} APIResponse[financeapp.CreditorStatsResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors/{id}/stats [get]
func (h *CreditorHandler) Stats(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	stats, err := h.creditService.Stats(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// SaleReport godoc
// @ID           creditorSaleReport
// @Summary      Render the creditor's sale report as PDF
// @Tags         creditors
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Success      200 {object} APIResponse[financeapp.Document]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors/{id}/report [get]
func (h *CreditorHandler) SaleReport(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	doc, err := h.creditService.SaleReport(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// SendCarne godoc
// @ID           sendCarne
// @Summary      Send the carnê to the configured webhook
// @Tags         creditors
// @Accept       json
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Param        request body financeapp.SendCarneRequest false "Delivery"
// @Success      200 {object} APIResponse[financeapp.SendCarneResult]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /creditors/{id}/carne/send [post]
func (h *CreditorHandler) SendCarne(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req financeapp.SendCarneRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}

	result, err := h.creditService.SendCarne(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithWarnings(c, http.StatusOK, result, result.Warnings)
}

// ListCreditSales godoc
// @ID           listCreditSales
// @Summary      Per-sale installment rows carried over from the legacy store
// @Tags         creditors
// @Produce      json
// @Param        id path int true "Creditor ID"
// @Success      200 {object} APIResponse[[]financeapp.CreditSaleResponse]
// @Security     BearerAuth
// @Router       /creditors/{id}/credit-sales [get]
func (h *CreditorHandler) ListCreditSales(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	rows, err := h.creditService.ListCreditSales(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// PayInstallment godoc
// @ID           payInstallment
// @Summary      Mark a carnê installment as paid
// @Description  The creditor balance is not changed; record a payment to move it
// @Tags         installments
// @Produce      json
// @Param        id path int true "Installment ID"
// @Success      200 {object} APIResponse[financeapp.InstallmentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /installments/{id}/pay [post]
func (h *CreditorHandler) PayInstallment(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	installment, err := h.creditService.MarkInstallmentPaid(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, installment)
}

// RescheduleInstallment godoc
// @ID           rescheduleInstallment
// @Summary      Change an unpaid installment's due date
// @Tags         installments
// @Accept       json
// @Produce      json
// @Param        id path int true "Installment ID"
// @Param        request body financeapp.RescheduleInstallmentRequest true "New due date"
// @Success      200 {object} APIResponse[financeapp.InstallmentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /installments/{id}/due-date [put]
func (h *CreditorHandler) RescheduleInstallment(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req financeapp.RescheduleInstallmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	installment, err := h.creditService.RescheduleInstallment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, installment)
}
