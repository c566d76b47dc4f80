package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/SscSPs/crew_ledger/internal/dto"
	"github.com/SscSPs/crew_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler serves the order lifecycle: creation, claim, status, expenses and settlement.
type orderHandler struct {
	orderService      portssvc.OrderSvcFacade
	settlementService portssvc.SettlementSvc
}

func newOrderHandler(orders portssvc.OrderSvcFacade, settlement portssvc.SettlementSvc) *orderHandler {
	return &orderHandler{orderService: orders, settlementService: settlement}
}

func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, settlementService portssvc.SettlementSvc) {
	h := newOrderHandler(orderService, settlementService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("/:id", h.getOrder)
		orders.POST("/:id/claim", h.claimOrder)
		orders.PUT("/:id/status", h.updateStatus)
		orders.POST("/:id/finalize", h.finalize)
		orders.GET("/:id/settlement-preview", h.previewSettlement)
		orders.GET("/:id/expenses", h.listExpenses)
		orders.POST("/:id/expenses", h.addExpense)
	}
}

// bindOptionalJSON binds a body that may be omitted entirely.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(obj)
}

// createOrder godoc
// @Summary Create an order
// @Description Creates an order in status new. Without a total price the bill of materials total is used.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create order"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// getOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce  json
// @Param   id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// claimOrder godoc
// @Summary Claim an order for a brigade
// @Description Assigns a new order to a brigade and moves it to work. Without a brigade ID the caller's own brigade claims it.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   claim body dto.ClaimOrderRequest false "Brigade to assign"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order or brigade not found"
// @Failure 409 {object} map[string]string "Order already claimed"
// @Failure 422 {object} map[string]string "Brigade is not active"
// @Security BearerAuth
// @Router /orders/{id}/claim [post]
func (h *orderHandler) claimOrder(c *gin.Context) {
	var req dto.ClaimOrderRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	orderID := c.Param("id")
	var order *domain.Order
	var err error
	if req.BrigadeID != "" {
		order, err = h.orderService.ClaimOrder(ctx, orderID, req.BrigadeID)
	} else {
		order, err = h.orderService.ClaimOrderForBrigadier(ctx, orderID, userID)
	}
	if err != nil {
		respondWithError(c, err, "Failed to claim order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateStatus godoc
// @Summary Change an order's status
// @Description Direct status write for cancellation and corrections. Completing an order requires finalize.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   status body dto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order changed concurrently"
// @Failure 422 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /orders/{id}/status [put]
func (h *orderHandler) updateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// finalize godoc
// @Summary Settle an order
// @Description Splits the net profit between the crew and the owner, credits both and marks the order done, all or nothing
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   settlement body dto.FinalizeOrderRequest false "Owner account (defaults to cash)"
// @Success 200 {object} dto.SettlementResponse
// @Failure 409 {object} map[string]string "Order settled concurrently"
// @Failure 422 {object} map[string]string "Order not settleable or nothing to distribute"
// @Failure 500 {object} map[string]string "Settlement failed"
// @Failure 503 {object} map[string]string "Temporarily unavailable"
// @Security BearerAuth
// @Router /orders/{id}/finalize [post]
func (h *orderHandler) finalize(c *gin.Context) {
	var req dto.FinalizeOrderRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orderID := c.Param("id")
	summary, err := h.settlementService.Finalize(c.Request.Context(), orderID, req.OwnerAccountID, userID)
	if err != nil {
		respondWithError(c, err, "Settlement failed")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Order finalized", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, dto.ToSettlementResponse(orderID, *summary))
}

// previewSettlement godoc
// @Summary Preview an order's settlement
// @Description Computes the split finalize would perform now without writing anything
// @Tags orders
// @Produce  json
// @Param   id path string true "Order ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 422 {object} map[string]string "Order not settleable or nothing to distribute"
// @Security BearerAuth
// @Router /orders/{id}/settlement-preview [get]
func (h *orderHandler) previewSettlement(c *gin.Context) {
	orderID := c.Param("id")
	summary, err := h.settlementService.PreviewSettlement(c.Request.Context(), orderID)
	if err != nil {
		respondWithError(c, err, "Failed to preview settlement")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(orderID, *summary))
}

// listExpenses godoc
// @Summary List an order's object expenses
// @Tags orders
// @Produce  json
// @Param   id path string true "Order ID"
// @Success 200 {array} dto.ObjectExpenseResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Security BearerAuth
// @Router /orders/{id}/expenses [get]
func (h *orderHandler) listExpenses(c *gin.Context) {
	expenses, err := h.orderService.ListObjectExpenses(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListObjectExpensesResponse(expenses))
}

// addExpense godoc
// @Summary Book an object expense
// @Description Records a cost against an open order; it is deducted before the profit split
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   expense body dto.CreateObjectExpenseRequest true "Expense details"
// @Success 201 {object} dto.ObjectExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 422 {object} map[string]string "Order already closed"
// @Security BearerAuth
// @Router /orders/{id}/expenses [post]
func (h *orderHandler) addExpense(c *gin.Context) {
	var req dto.CreateObjectExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.orderService.AddObjectExpense(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to add expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToObjectExpenseResponse(*expense))
}
