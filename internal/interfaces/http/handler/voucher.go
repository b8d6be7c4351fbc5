package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradingapp "github.com/vintrade/backend/internal/application/trading"
)

// VoucherHandler handles voucher and case entitlement API endpoints
type VoucherHandler struct {
	BaseHandler
	voucherService *tradingapp.VoucherService
}

// NewVoucherHandler creates a new VoucherHandler
func NewVoucherHandler(voucherService *tradingapp.VoucherService) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucherService,
	}
}

// Issue godoc
// @Summary      Issue vouchers for a sale
// @Description  Convert a confirmed sale into vouchers drawn from an allocation. Replaying the same sale reference returns the original voucher set.
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        request body trading.IssueVouchersRequest true "Voucher issuance request"
// @Success      201 {object} dto.Response{data=trading.IssueVouchersResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vouchers [post]
func (h *VoucherHandler) Issue(c *gin.Context) {
	var req tradingapp.IssueVouchersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.voucherService.IssueVouchers(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if resp.Replayed {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @Summary      Get voucher by ID
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.VoucherResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vouchers/{id} [get]
func (h *VoucherHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	resp, err := h.voucherService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListByCustomer godoc
// @Summary      List a customer's vouchers
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]trading.VoucherResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers/{customer_id}/vouchers [get]
func (h *VoucherHandler) ListByCustomer(c *gin.Context) {
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

	vouchers, err := h.voucherService.ListByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vouchers)
}

// History godoc
// @Summary      Get a voucher's change history
// @Description  List the audit trail entries recorded for a voucher, oldest first
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]shared.AuditEntry}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vouchers/{id}/history [get]
func (h *VoucherHandler) History(c *gin.Context) {
	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.voucherService.History(c.Request.Context(), voucherID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// ListByAllocation godoc
// @Summary      List vouchers drawn from an allocation
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id path string true "Allocation ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]trading.VoucherResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /allocations/{id}/vouchers [get]
func (h *VoucherHandler) ListByAllocation(c *gin.Context) {
	allocationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vouchers, err := h.voucherService.ListByAllocation(c.Request.Context(), allocationID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vouchers)
}

// GetTransfer godoc
// @Summary      Get transfer by ID
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.TransferResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /transfers/{id} [get]
func (h *VoucherHandler) GetTransfer(c *gin.Context) {
	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	resp, err := h.voucherService.GetTransfer(c.Request.Context(), transferID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetPendingTransfer godoc
// @Summary      Get a voucher's pending transfer offer
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.TransferResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vouchers/{id}/transfer [get]
func (h *VoucherHandler) GetPendingTransfer(c *gin.Context) {
	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	resp, err := h.voucherService.GetPendingTransfer(c.Request.Context(), voucherID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Transfer godoc
// @Summary      Offer a voucher to another customer
// @Description  Open a pending transfer. The voucher is locked until the recipient accepts, the sender cancels, or the offer expires.
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Param        request body trading.TransferRequest true "Transfer request"
// @Success      201 {object} dto.Response{data=trading.TransferResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vouchers/{id}/transfer [post]
func (h *VoucherHandler) Transfer(c *gin.Context) {
	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	var req tradingapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.voucherService.Transfer(c.Request.Context(), voucherID, req.ToCustomerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// AcceptTransfer godoc
// @Summary      Accept a pending transfer
// @Description  Move the voucher to the recipient and close the transfer
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.TransferResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /transfers/{id}/accept [post]
func (h *VoucherHandler) AcceptTransfer(c *gin.Context) {
	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	resp, err := h.voucherService.AcceptTransfer(c.Request.Context(), transferID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// CancelTransfer godoc
// @Summary      Cancel a pending transfer
// @Description  Withdraw the offer and release the voucher back to the sender
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.TransferResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /transfers/{id}/cancel [post]
func (h *VoucherHandler) CancelTransfer(c *gin.Context) {
	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	resp, err := h.voucherService.CancelTransfer(c.Request.Context(), transferID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Redeem godoc
// @Summary      Redeem a voucher
// @Description  Mark a voucher as consumed outside fulfillment, for example at an on-site tasting
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.VoucherResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vouchers/{id}/redeem [post]
func (h *VoucherHandler) Redeem(c *gin.Context) {
	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	resp, err := h.voucherService.Redeem(c.Request.Context(), voucherID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel godoc
// @Summary      Cancel a voucher
// @Description  Void a voucher and return its unit to the allocation
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.VoucherResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vouchers/{id}/cancel [post]
func (h *VoucherHandler) Cancel(c *gin.Context) {
	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	resp, err := h.voucherService.Cancel(c.Request.Context(), voucherID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Flag godoc
// @Summary      Flag a voucher for attention
// @Description  Mark a voucher for manual review and block fulfillment until cleared
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Param        request body trading.FlagRequest true "Attention reason"
// @Success      200 {object} dto.Response{data=trading.VoucherResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vouchers/{id}/flag [post]
func (h *VoucherHandler) Flag(c *gin.Context) {
	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	var req tradingapp.FlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.voucherService.FlagForAttention(c.Request.Context(), voucherID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ClearFlag godoc
// @Summary      Clear a voucher's attention flag
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.VoucherResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vouchers/{id}/flag [delete]
func (h *VoucherHandler) ClearFlag(c *gin.Context) {
	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	resp, err := h.voucherService.ClearAttention(c.Request.Context(), voucherID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetCase godoc
// @Summary      Get case entitlement by ID
// @Tags         case-entitlements
// @Accept       json
// @Produce      json
// @Param        id path string true "Case Entitlement ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.CaseEntitlementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /case-entitlements/{id} [get]
func (h *VoucherHandler) GetCase(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case entitlement ID format")
		return
	}

	resp, err := h.voucherService.GetCase(c.Request.Context(), caseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// BreakCase godoc
// @Summary      Break a case entitlement
// @Description  Release the member vouchers for individual handling. Irreversible.
// @Tags         case-entitlements
// @Accept       json
// @Produce      json
// @Param        id path string true "Case Entitlement ID" format(uuid)
// @Success      200 {object} dto.Response{data=trading.CaseEntitlementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /case-entitlements/{id}/break [post]
func (h *VoucherHandler) BreakCase(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case entitlement ID format")
		return
	}

	resp, err := h.voucherService.BreakCase(c.Request.Context(), caseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
