package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	fulfillmentapp "github.com/vintrade/backend/internal/application/fulfillment"
)

// ShippingHandler handles shipping order and binding API endpoints
type ShippingHandler struct {
	BaseHandler
	shippingService *fulfillmentapp.ShippingService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(shippingService *fulfillmentapp.ShippingService) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

// CreateOrder godoc
// @Summary      Create a shipping order
// @Description  Open a shipping order over a customer's vouchers, one line per voucher
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        request body fulfillment.CreateOrderRequest true "Order creation request"
// @Success      201 {object} dto.Response{data=fulfillment.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-orders [post]
func (h *ShippingHandler) CreateOrder(c *gin.Context) {
	var req fulfillmentapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shippingService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetOrder godoc
// @Summary      Get shipping order by ID
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Shipping Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=fulfillment.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-orders/{id} [get]
func (h *ShippingHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.shippingService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListOrders godoc
// @Summary      List a customer's shipping orders
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]fulfillment.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers/{customer_id}/shipping-orders [get]
func (h *ShippingHandler) ListOrders(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.shippingService.ListOrders(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orders)
}

// ValidateLine godoc
// @Summary      Validate a shipping order line
// @Description  Run pre-fulfillment checks on the line's voucher and advance it to validated
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID" format(uuid)
// @Success      200 {object} dto.Response{data=fulfillment.LineResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-lines/{id}/validate [post]
func (h *ShippingHandler) ValidateLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	resp, err := h.shippingService.ValidateLine(c.Request.Context(), lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// EarlyBind godoc
// @Summary      Reserve a bottle for a line ahead of picking
// @Description  Record a provisional serial assignment to be confirmed at pick time
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID" format(uuid)
// @Param        request body fulfillment.BindLineRequest true "Binding request"
// @Success      200 {object} dto.Response{data=fulfillment.LineResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-lines/{id}/early-bind [post]
func (h *ShippingHandler) EarlyBind(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req fulfillmentapp.BindLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shippingService.EarlyBind(c.Request.Context(), lineID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// LateBind godoc
// @Summary      Bind a picked bottle to a line
// @Description  Assign the bottle scanned at pick time. When the request carries a WMS event ID, binding failures queue an order exception instead of failing the call.
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID" format(uuid)
// @Param        request body fulfillment.BindLineRequest true "Binding request"
// @Success      200 {object} dto.Response{data=fulfillment.BindResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-lines/{id}/bind [post]
func (h *ShippingHandler) LateBind(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req fulfillmentapp.BindLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shippingService.LateBind(c.Request.Context(), lineID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ConfirmPick godoc
// @Summary      Confirm the pick for an early-bound line
// @Description  Promote the provisional serial to a confirmed binding on the warehouse pick event
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID" format(uuid)
// @Param        request body fulfillment.ConfirmPickRequest true "Pick confirmation"
// @Success      200 {object} dto.Response{data=fulfillment.BindResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-lines/{id}/confirm-pick [post]
func (h *ShippingHandler) ConfirmPick(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req fulfillmentapp.ConfirmPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shippingService.ConfirmPick(c.Request.Context(), lineID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ShipLine godoc
// @Summary      Ship a bound line
// @Description  Mark the line shipped, consume its voucher, and close the order when every line is settled
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID" format(uuid)
// @Param        request body fulfillment.ShipLineRequest true "Ship request"
// @Success      200 {object} dto.Response{data=fulfillment.BindResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-lines/{id}/ship [post]
func (h *ShippingHandler) ShipLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req fulfillmentapp.ShipLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shippingService.ShipLine(c.Request.Context(), lineID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// CancelLine godoc
// @Summary      Cancel a shipping order line
// @Description  Release the line's voucher and any bound bottle back to stock
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID" format(uuid)
// @Success      200 {object} dto.Response{data=fulfillment.LineResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-lines/{id}/cancel [post]
func (h *ShippingHandler) CancelLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	resp, err := h.shippingService.CancelLine(c.Request.Context(), lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ResolveException godoc
// @Summary      Resolve a shipping order exception
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Exception ID" format(uuid)
// @Param        request body fulfillment.ResolveExceptionRequest true "Resolution request"
// @Success      200 {object} dto.Response{data=fulfillment.ExceptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-exceptions/{id}/resolve [post]
func (h *ShippingHandler) ResolveException(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid exception ID format")
		return
	}

	var req fulfillmentapp.ResolveExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shippingService.ResolveException(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListOpenExceptions godoc
// @Summary      List open shipping order exceptions
// @Tags         shipping-orders
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]fulfillment.ExceptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping-exceptions [get]
func (h *ShippingHandler) ListOpenExceptions(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	exceptions, err := h.shippingService.ListOpenExceptions(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, exceptions)
}
