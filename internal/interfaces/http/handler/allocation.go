package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	allocationapp "github.com/vintrade/backend/internal/application/allocation"
)

// AllocationHandler handles allocation-related API endpoints
type AllocationHandler struct {
	BaseHandler
	allocationService *allocationapp.AllocationService
}

// NewAllocationHandler creates a new AllocationHandler
func NewAllocationHandler(allocationService *allocationapp.AllocationService) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
	}
}

// Create godoc
// @Summary      Create a new allocation
// @Description  Register a supply commitment for a wine product
// @Tags         allocations
// @Accept       json
// @Produce      json
// @Param        request body allocation.CreateAllocationRequest true "Allocation creation request"
// @Success      201 {object} dto.Response{data=allocation.AllocationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /allocations [post]
func (h *AllocationHandler) Create(c *gin.Context) {
	var req allocationapp.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.allocationService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// Activate godoc
// @Summary      Activate an allocation
// @Description  Open a draft allocation for voucher issuance
// @Tags         allocations
// @Accept       json
// @Produce      json
// @Param        id path string true "Allocation ID" format(uuid)
// @Success      200 {object} dto.Response{data=allocation.AllocationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /allocations/{id}/activate [post]
func (h *AllocationHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID format")
		return
	}

	resp, err := h.allocationService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Close godoc
// @Summary      Close an allocation
// @Description  Stop further voucher issuance against an allocation
// @Tags         allocations
// @Accept       json
// @Produce      json
// @Param        id path string true "Allocation ID" format(uuid)
// @Success      200 {object} dto.Response{data=allocation.AllocationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /allocations/{id}/close [post]
func (h *AllocationHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID format")
		return
	}

	resp, err := h.allocationService.Close(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByID godoc
// @Summary      Get allocation by ID
// @Description  Retrieve an allocation with its remaining supply
// @Tags         allocations
// @Accept       json
// @Produce      json
// @Param        id path string true "Allocation ID" format(uuid)
// @Success      200 {object} dto.Response{data=allocation.AllocationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /allocations/{id} [get]
func (h *AllocationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID format")
		return
	}

	resp, err := h.allocationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List allocations
// @Description  Retrieve a paginated list of allocations with optional status filtering
// @Tags         allocations
// @Accept       json
// @Produce      json
// @Param        status query string false "Allocation status" Enums(draft, active, closed)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]allocation.AllocationResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /allocations [get]
func (h *AllocationHandler) List(c *gin.Context) {
	var filter allocationapp.AllocationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.allocationService.List(c.Request.Context(), &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
