package handler

import (
	"net/http"

	tradeapp "github.com/erp/pdv/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets the register retry a checkout safely
const IdempotencyKeyHeader = "Idempotency-Key"

// SaleHandler handles checkout and the sales history
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Finalize godoc
// @ID           finalizeSale
// @Summary      Finalize a sale
// @Description  Commit the cart, decrement stock and open a creditor for credit sales.
// @Description  Failed secondary steps are reported in meta.warnings; the sale stays committed.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Repeating a key within its TTL is rejected with ALREADY_EXISTS"
// @Param        request body tradeapp.FinalizeSaleInput true "Cart"
// @Success      201 {object} APIResponse[tradeapp.FinalizeSaleResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales [post]
func (h *SaleHandler) Finalize(c *gin.Context) {
	var req tradeapp.FinalizeSaleInput
	if !h.BindJSON(c, &req) {
		return
	}
	req.OperatorID = session(c).UserID
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	result, err := h.saleService.FinalizeSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithWarnings(c, http.StatusCreated, result, result.Warnings)
}

// GetByID godoc
// @ID           getSale
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Param        id path int true "Sale ID"
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List godoc
// @ID           listSales
// @Summary      Sales history
// @Tags         sales
// @Produce      json
// @Param        customer_id query int false "Customer ID"
// @Param        payment_method query string false "Payment method"
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]tradeapp.SaleResponse]
// @Security     BearerAuth
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter tradeapp.SaleListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	pageDefaults(&filter.Page, &filter.PageSize)

	sales, total, err := h.saleService.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// ReturnHandler handles returns and exchanges
type ReturnHandler struct {
	BaseHandler
	returnService *tradeapp.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *tradeapp.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// Process godoc
// @ID           processReturn
// @Summary      Register a return or exchange
// @Description  Returned quantities are checked against the sale; new and used items go back to stock
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.ProcessReturnInput true "Return"
// @Success      201 {object} APIResponse[tradeapp.ProcessReturnResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /returns [post]
func (h *ReturnHandler) Process(c *gin.Context) {
	var req tradeapp.ProcessReturnInput
	if !h.BindJSON(c, &req) {
		return
	}
	req.OperatorID = session(c).UserID

	result, err := h.returnService.ProcessReturn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithWarnings(c, http.StatusCreated, result, result.Warnings)
}

// GetReturn godoc
// @ID           getReturn
// @Summary      Get a return
// @Tags         returns
// @Produce      json
// @Param        id path int true "Return ID"
// @Success      200 {object} APIResponse[tradeapp.ReturnResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /returns/{id} [get]
func (h *ReturnHandler) GetReturn(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// ListReturns godoc
// @ID           listReturns
// @Summary      List returns
// @Tags         returns
// @Produce      json
// @Param        sale_id query int false "Sale ID"
// @Param        status query string false "Status" Enums(pending, processed, cancelled)
// @Param        type query string false "Type" Enums(return, exchange)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]tradeapp.ReturnResponse]
// @Security     BearerAuth
// @Router       /returns [get]
func (h *ReturnHandler) ListReturns(c *gin.Context) {
	var filter tradeapp.ReturnListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	pageDefaults(&filter.Page, &filter.PageSize)

	returns, total, err := h.returnService.ListReturns(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, returns, total, filter.Page, filter.PageSize)
}

// UpdateReturnStatus godoc
// @ID           updateReturnStatus
// @Summary      Process or cancel a pending return
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        id path int true "Return ID"
// @Param        request body tradeapp.UpdateStatusRequest true "Status"
// @Success      200 {object} APIResponse[tradeapp.ReturnResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /returns/{id}/status [put]
func (h *ReturnHandler) UpdateReturnStatus(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ret, err := h.returnService.UpdateReturnStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// GetExchange godoc
// @ID           getExchange
// @Summary      Get an exchange
// @Tags         exchanges
// @Produce      json
// @Param        id path int true "Exchange ID"
// @Success      200 {object} APIResponse[tradeapp.ExchangeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /exchanges/{id} [get]
func (h *ReturnHandler) GetExchange(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	exchange, err := h.returnService.GetExchange(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, exchange)
}

// ListExchanges godoc
// @ID           listExchanges
// @Summary      List exchanges
// @Tags         exchanges
// @Produce      json
// @Param        sale_id query int false "Original sale ID"
// @Param        status query string false "Status" Enums(pending, processed, cancelled)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]tradeapp.ExchangeResponse]
// @Security     BearerAuth
// @Router       /exchanges [get]
func (h *ReturnHandler) ListExchanges(c *gin.Context) {
	var filter tradeapp.ReturnListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	pageDefaults(&filter.Page, &filter.PageSize)

	exchanges, total, err := h.returnService.ListExchanges(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, exchanges, total, filter.Page, filter.PageSize)
}

// CompleteExchange godoc
// @ID           completeExchange
// @Summary      Finalize the replacement sale of an exchange
// @Tags         exchanges
// @Accept       json
// @Produce      json
// @Param        id path int true "Exchange ID"
// @Param        request body tradeapp.FinalizeSaleInput true "Replacement cart"
// @Success      200 {object} APIResponse[tradeapp.CompleteExchangeResult]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /exchanges/{id}/complete [post]
func (h *ReturnHandler) CompleteExchange(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.FinalizeSaleInput
	if !h.BindJSON(c, &req) {
		return
	}
	req.OperatorID = session(c).UserID
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	result, err := h.returnService.CompleteExchange(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithWarnings(c, http.StatusOK, result, result.Warnings)
}

// UpdateExchangeStatus godoc
// @ID           updateExchangeStatus
// @Summary      Process or cancel a pending exchange
// @Tags         exchanges
// @Accept       json
// @Produce      json
// @Param        id path int true "Exchange ID"
// @Param        request body tradeapp.UpdateStatusRequest true "Status"
// @Success      200 {object} APIResponse[tradeapp.ExchangeResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /exchanges/{id}/status [put]
func (h *ReturnHandler) UpdateExchangeStatus(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	exchange, err := h.returnService.UpdateExchangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, exchange)
}
